package handshake

import (
	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/hkdf"
	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/sha256"
	"github.com/yourusername/shocktls/pkg/shocktls/record"
	"github.com/yourusername/shocktls/pkg/shocktls/status"
)

// Phase3 is steady-state application data: deriving the application
// traffic keys and shuttling ApplicationData records, Alerts, and
// ignorable post-handshake Handshake messages (session tickets, key
// updates — this client asks for and performs neither). RFC 8446 §4.6,
// §7.1, §8.
type Phase3 struct {
	serverWrapper *record.Wrapper
	clientWrapper *record.Wrapper
}

// newPhase3 derives the application traffic keys from the handshake
// secret and the transcript hash through ServerFinished (excluding
// ClientFinished), per the RFC 8446 §7.1 key schedule.
func newPhase3(handshakeSecret, handshakeHash [32]byte) *Phase3 {
	var zeroKey [32]byte
	emptyHash := sha256.Sum(nil)

	var derivedApp [32]byte
	_ = hkdf.ExpandLabel(handshakeSecret[:], "derived", emptyHash[:], derivedApp[:])

	masterSecret := hkdf.Extract(derivedApp[:], zeroKey[:])

	var clientApp, serverApp [32]byte
	_ = hkdf.ExpandLabel(masterSecret[:], "c ap traffic", handshakeHash[:], clientApp[:])
	_ = hkdf.ExpandLabel(masterSecret[:], "s ap traffic", handshakeHash[:], serverApp[:])

	serverWrapper := &record.Wrapper{}
	_ = hkdf.ExpandLabel(serverApp[:], "key", nil, serverWrapper.Key[:])
	_ = hkdf.ExpandLabel(serverApp[:], "iv", nil, serverWrapper.IV[:])

	clientWrapper := &record.Wrapper{}
	_ = hkdf.ExpandLabel(clientApp[:], "key", nil, clientWrapper.Key[:])
	_ = hkdf.ExpandLabel(clientApp[:], "iv", nil, clientWrapper.IV[:])

	return &Phase3{serverWrapper: serverWrapper, clientWrapper: clientWrapper}
}

// ProcessRecord handles one application-data-phase record. Every record
// must carry the ApplicationData outer type; the true content type lives
// inside the AEAD-protected payload.
func (p *Phase3) ProcessRecord(cs *ConnState, header record.Header, contents []byte) (Phase, *status.Frame) {
	if header.Type != record.TypeApplicationData {
		return p, status.New(status.StateViolation, "received record type 0x%02x in application data phase", header.Type)
	}

	hdrBytes := header.Bytes()
	innerType, plaintext, errFrame := p.serverWrapper.Unwrap(hdrBytes, contents)
	if errFrame != nil {
		return p, errFrame
	}

	switch innerType {
	case record.TypeAlert:
		if len(plaintext) != 2 {
			return p, status.New(status.ProtocolDecode, "alert record body length %d, want 2", len(plaintext))
		}
		level, desc := plaintext[0], plaintext[1]
		name := alertDescriptionName(desc)
		if level == alertLevelWarning && desc == alertCloseNotify {
			return p, status.New(status.RemoteAlert, "received close_notify")
		}
		return p, status.New(status.RemoteAlert, "received alert level=%d description=%s", level, name)

	case record.TypeHandshake:
		// Post-handshake messages (NewSessionTicket, KeyUpdate) are
		// accepted and discarded: this client requests no session
		// resumption and never triggers a key update itself.
		return p, nil

	case record.TypeApplicationData:
		cs.AppIn.Append(plaintext)
		if cs.OnReceive != nil {
			cs.OnReceive(plaintext)
		}
		return p, nil

	default:
		return p, status.New(status.StateViolation, "decrypted record carries unexpected inner type 0x%02x", innerType)
	}
}

// OnUserSend wraps everything currently queued in cs.AppOut into a single
// ApplicationData record appended to cs.NetOut, then empties AppOut.
func (p *Phase3) OnUserSend(cs *ConnState) *status.Frame {
	if cs.AppOut.Len() == 0 {
		return nil
	}
	payload := make([]byte, cs.AppOut.Len())
	copy(payload, cs.AppOut.Bytes())
	p.clientWrapper.Wrap(cs.NetOut, record.TypeApplicationData, payload)
	cs.AppOut.Reset()
	return nil
}

// CloseNotify wraps a close_notify alert as the connection's last
// outgoing record. Close-time use only; errors from it are ignored by the
// caller since the socket is being torn down regardless.
func (p *Phase3) CloseNotify(cs *ConnState) {
	p.clientWrapper.Wrap(cs.NetOut, record.TypeAlert, []byte{alertLevelWarning, alertCloseNotify})
}
