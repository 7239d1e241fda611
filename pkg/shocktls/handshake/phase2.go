package handshake

import (
	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/hkdf"
	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/hmac"
	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/sha256"
	"github.com/yourusername/shocktls/pkg/shocktls/record"
	"github.com/yourusername/shocktls/pkg/shocktls/status"
	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

// Phase2 owns the encrypted-handshake leg: deriving the handshake traffic
// keys, passing EncryptedExtensions/Certificate/CertificateVerify through
// unexamined (this client does not validate the server's certificate
// chain), and responding to server Finished. The server's Finished
// verify_data is not checked. RFC 8446 §4.4, §7.1.
type Phase2 struct {
	transcript        Transcript
	handshakeSecret   [32]byte
	clientHSSecret    [32]byte
	serverWrapper     *record.Wrapper
	clientWrapper     *record.Wrapper
	userSendRequested bool
}

// newPhase2 derives the handshake secret and both handshake traffic
// secrets from the transcript up to and including ServerHello and the
// ECDHE shared secret, per the RFC 8446 §7.1 key schedule.
func newPhase2(transcript Transcript, sharedSecret [32]byte) *Phase2 {
	var zeroKey [32]byte
	emptyHash := sha256.Sum(nil)

	earlySecret := hkdf.Extract(zeroKey[:], zeroKey[:])

	var derived [32]byte
	_ = hkdf.ExpandLabel(earlySecret[:], "derived", emptyHash[:], derived[:])

	handshakeSecret := hkdf.Extract(derived[:], sharedSecret[:])

	helloHash := transcript.Clone().Finalize()

	var clientHS, serverHS [32]byte
	_ = hkdf.ExpandLabel(handshakeSecret[:], "c hs traffic", helloHash[:], clientHS[:])
	_ = hkdf.ExpandLabel(handshakeSecret[:], "s hs traffic", helloHash[:], serverHS[:])

	serverWrapper := &record.Wrapper{}
	_ = hkdf.ExpandLabel(serverHS[:], "key", nil, serverWrapper.Key[:])
	_ = hkdf.ExpandLabel(serverHS[:], "iv", nil, serverWrapper.IV[:])

	clientWrapper := &record.Wrapper{}
	_ = hkdf.ExpandLabel(clientHS[:], "key", nil, clientWrapper.Key[:])
	_ = hkdf.ExpandLabel(clientHS[:], "iv", nil, clientWrapper.IV[:])

	return &Phase2{
		transcript:      transcript,
		handshakeSecret: handshakeSecret,
		clientHSSecret:  clientHS,
		serverWrapper:   serverWrapper,
		clientWrapper:   clientWrapper,
	}
}

// ProcessRecord handles one record of the encrypted handshake leg.
// ChangeCipherSpec is a TLS 1.2 compatibility artifact and is ignored
// outright; everything real arrives wrapped as ApplicationData.
func (p *Phase2) ProcessRecord(cs *ConnState, header record.Header, contents []byte) (Phase, *status.Frame) {
	switch header.Type {
	case record.TypeChangeCipherSpec:
		return p, nil
	case record.TypeApplicationData:
		// fall through below
	default:
		return p, status.New(status.StateViolation, "received record type 0x%02x during encrypted handshake", header.Type)
	}

	hdrBytes := header.Bytes()
	innerType, plaintext, errFrame := p.serverWrapper.Unwrap(hdrBytes, contents)
	if errFrame != nil {
		return p, errFrame
	}
	if innerType != record.TypeHandshake {
		return p, status.New(status.StateViolation, "encrypted handshake record carries inner type 0x%02x, want handshake", innerType)
	}

	p.transcript.Add(plaintext)

	view := wire.View(plaintext)
	var next Phase = p
	for len(view) > 0 {
		msgType, body, ok := nextHandshakeMessage(&view)
		if !ok {
			return p, status.New(status.ProtocolDecode, "truncated handshake message in encrypted handshake flight")
		}

		switch msgType {
		case msgEncryptedExtensions, msgCertificate, msgCertificateVerify:
			// No extension or certificate validation: RFC 8446 §4.3/§4.4.2
			// processing is out of scope for this client.
		case msgFinished:
			n, errFrame := p.handleServerFinished(cs, body)
			if errFrame != nil {
				return p, errFrame
			}
			next = n
		default:
			return p, status.New(status.StateViolation, "unexpected handshake type 0x%02x during encrypted handshake", msgType)
		}
	}
	return next, nil
}

// handleServerFinished computes the handshake hash over the transcript
// through ServerFinished (ProcessRecord has already added the whole
// decrypted flight), does not check the server's verify_data, emits
// ClientChangeCipherSpec and ClientFinished as a single contiguous write,
// and derives the Phase3 application keys.
func (p *Phase2) handleServerFinished(cs *ConnState, serverFinishedBody wire.View) (Phase, *status.Frame) {
	handshakeHash := p.transcript.Clone().Finalize()

	var ccs [6]byte = [6]byte{
		record.TypeChangeCipherSpec, 3, 3, 0x00, 0x01, 0x01,
	}
	cs.NetOut.Append(ccs[:])

	var finishedKey [32]byte
	_ = hkdf.ExpandLabel(p.clientHSSecret[:], "finished", nil, finishedKey[:])
	verifyData := hmac.Sum(finishedKey[:], handshakeHash[:])

	finishedMsg := encodeHandshakeMessage(msgFinished, verifyData[:])
	p.clientWrapper.Wrap(cs.NetOut, record.TypeHandshake, finishedMsg)

	phase3 := newPhase3(p.handshakeSecret, handshakeHash)
	if p.userSendRequested {
		if errFrame := phase3.OnUserSend(cs); errFrame != nil {
			return p, errFrame
		}
	}
	return phase3, nil
}

// OnUserSend records that the user asked to send application data while
// still in the encrypted handshake. Phase3, once reached, flushes it as
// part of the same network write that carries ClientFinished.
func (p *Phase2) OnUserSend(cs *ConnState) *status.Frame {
	p.userSendRequested = true
	return nil
}
