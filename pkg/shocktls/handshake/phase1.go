package handshake

import (
	"io"

	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/x25519"
	"github.com/yourusername/shocktls/pkg/shocktls/record"
	"github.com/yourusername/shocktls/pkg/shocktls/status"
	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

// Phase1 owns the plaintext part of the handshake: sending ClientHello and
// validating ServerHello. RFC 8446 §4.1, §4.1.3.
type Phase1 struct {
	clientPrivate     x25519.PrivateKey
	clientPublic      [32]byte
	transcript        Transcript
	userSendRequested bool
}

// NewPhase1 generates the client's ephemeral x25519 key share. rand is the
// entropy source for both that key and the ClientHello random fields.
func NewPhase1(rand io.Reader) (*Phase1, *status.Frame) {
	priv, err := x25519.GeneratePrivateKey(rand)
	if err != nil {
		return nil, status.New(status.CryptographicFailure, "generate client key share: %v", err)
	}
	return &Phase1{
		clientPrivate: priv,
		clientPublic:  priv.Public(),
		transcript:    NewTranscript(),
	}, nil
}

// SendClientHello builds and appends the ClientHello record to cs.NetOut,
// adding the handshake message (without the record header) to the
// transcript.
func (p *Phase1) SendClientHello(cs *ConnState) *status.Frame {
	var clientRandom [32]byte
	if _, err := io.ReadFull(cs.Rand, clientRandom[:]); err != nil {
		return status.New(status.CryptographicFailure, "read client random: %v", err)
	}
	var sessionID [32]byte
	if _, err := io.ReadFull(cs.Rand, sessionID[:]); err != nil {
		return status.New(status.CryptographicFailure, "read session id: %v", err)
	}

	body := wire.NewBuffer()
	defer body.Release()

	body.AppendU16BE(0x0303) // legacy_version
	body.Append(clientRandom[:])
	body.AppendByte(0x20)
	body.Append(sessionID[:])

	body.AppendU16BE(4 * 2) // cipher_suites length
	body.AppendU16BE(cipherChaCha20Poly1305Sha256)
	body.AppendU16BE(cipherAes128GcmSha256)
	body.AppendU16BE(cipherAes256GcmSha384)
	body.AppendU16BE(cipherEmptyRenegotiationSCSV)

	body.AppendByte(0x01) // compression_methods length
	body.AppendByte(0x00) // null

	extensions := buildExtensions(cs.ServerName, p.clientPublic)
	body.AppendU16BE(uint16(len(extensions)))
	body.Append(extensions)

	bodyBytes := make([]byte, body.Len())
	copy(bodyBytes, body.Bytes())

	msg := encodeHandshakeMessage(msgClientHello, bodyBytes)
	p.transcript.Add(msg)

	hdr := record.Header{Type: record.TypeHandshake, Major: 3, Minor: 1, Length: uint16(len(msg))}
	hdrBytes := hdr.Bytes()
	cs.NetOut.Append(hdrBytes[:])
	cs.NetOut.Append(msg)
	return nil
}

// ProcessRecord expects exactly one record carrying the ServerHello
// handshake message. Anything else is a state violation: no other message
// is legal before the handshake key schedule is derived.
func (p *Phase1) ProcessRecord(cs *ConnState, header record.Header, contents []byte) (Phase, *status.Frame) {
	if header.Type != record.TypeHandshake {
		return p, status.New(status.StateViolation, "received record type 0x%02x before ServerHello", header.Type)
	}

	view := wire.View(contents)
	msgType, body, ok := nextHandshakeMessage(&view)
	if !ok {
		return p, status.New(status.ProtocolDecode, "truncated ServerHello handshake message")
	}
	if msgType != msgServerHello {
		return p, status.New(status.StateViolation, "expected ServerHello, got handshake type 0x%02x", msgType)
	}

	p.transcript.Add(encodeHandshakeMessage(msgType, body))

	serverPublic, errFrame := parseServerHello(body)
	if errFrame != nil {
		return p, errFrame
	}

	sharedSecret, err := p.clientPrivate.SharedSecret(&serverPublic)
	if err != nil {
		return p, status.New(status.CryptographicFailure, "x25519 shared secret: %v", err)
	}

	phase2 := newPhase2(p.transcript, sharedSecret)
	phase2.userSendRequested = p.userSendRequested
	return phase2, nil
}

// OnUserSend records that the user asked to send before the handshake
// completed; there is nothing to wrap until traffic keys exist, so the
// request is only remembered, to be honored once Phase3 is reached.
func (p *Phase1) OnUserSend(cs *ConnState) *status.Frame {
	p.userSendRequested = true
	return nil
}

// parseServerHello validates and extracts the server's x25519 key share
// from a ServerHello body.
func parseServerHello(body wire.View) (serverPublic [32]byte, errFrame *status.Frame) {
	if len(body) < 2+32+1 {
		return serverPublic, status.New(status.ProtocolDecode, "ServerHello too short")
	}
	body = body.Skip(2)  // legacy_version; the real version is in supported_versions
	body = body.Skip(32) // server_random; unused, it only feeds the transcript

	sessionLen := wire.ConsumeU8(&body)
	if int(sessionLen) > len(body) {
		return serverPublic, status.New(status.ProtocolDecode, "ServerHello session id overruns body")
	}
	body = body.Skip(int(sessionLen))

	if len(body) < 3 {
		return serverPublic, status.New(status.ProtocolDecode, "ServerHello missing cipher suite/compression")
	}
	cipherSuite := wire.ConsumeU16(&body)
	if cipherSuite != cipherChaCha20Poly1305Sha256 {
		return serverPublic, status.New(status.UnsupportedParameter, "server selected cipher suite 0x%04x, want TLS_CHACHA20_POLY1305_SHA256", cipherSuite)
	}
	compression := wire.ConsumeU8(&body)
	if compression != 0 {
		return serverPublic, status.New(status.ProtocolDecode, "ServerHello compression method 0x%02x, want 0", compression)
	}

	if len(body) < 2 {
		return serverPublic, status.New(status.ProtocolDecode, "ServerHello missing extensions")
	}
	extLen := wire.ConsumeU16(&body)
	if int(extLen) > len(body) {
		return serverPublic, status.New(status.ProtocolDecode, "ServerHello extensions length overruns body")
	}
	extView := wire.ConsumeBytes(&body, int(extLen))

	ext, errFrame := parseServerHelloExtensions(extView)
	if errFrame != nil {
		return serverPublic, errFrame
	}
	if ext.selectedVersionMajor != 3 || ext.selectedVersionMinor != 4 {
		return serverPublic, status.New(status.UnsupportedParameter, "server selected TLS %d.%d, want 1.3", ext.selectedVersionMajor, ext.selectedVersionMinor)
	}
	if !ext.haveKeyShare {
		return serverPublic, status.New(status.ProtocolDecode, "ServerHello missing key_share extension")
	}
	return ext.serverPublic, nil
}
