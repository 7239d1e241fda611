package handshake

import "github.com/yourusername/shocktls/pkg/shocktls/wire"

// Handshake message type codes (RFC 8446 §4).
const (
	msgClientHello        byte = 0x01
	msgServerHello        byte = 0x02
	msgEncryptedExtensions byte = 0x08
	msgCertificate        byte = 0x0b
	msgCertificateVerify  byte = 0x0f
	msgFinished           byte = 0x14
)

// nextHandshakeMessage reads one u8-type/u24-length/body handshake message
// from the front of v and advances past it. ok is false, and v is left
// unchanged, when v holds fewer than 4 header bytes or fewer bytes than the
// declared length. Phase1 and Phase2 report ok=false as a protocol decode
// error: a handshake message split across records is not reassembled.
func nextHandshakeMessage(v *wire.View) (msgType byte, body wire.View, ok bool) {
	if len(*v) < 4 {
		return 0, nil, false
	}
	saved := *v
	msgType = wire.ConsumeU8(v)
	length := wire.ConsumeU24(v)
	if uint32(len(*v)) < length {
		*v = saved
		return 0, nil, false
	}
	body = wire.ConsumeBytes(v, int(length))
	return msgType, body, true
}

// encodeHandshakeMessage prepends the u8 type / u24 length header to body
// and returns the complete message bytes.
func encodeHandshakeMessage(msgType byte, body []byte) []byte {
	buf := wire.NewBuffer()
	defer buf.Release()
	buf.AppendByte(msgType)
	buf.AppendU24BE(uint32(len(body)))
	buf.Append(body)
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out
}
