// Package record implements TLS 1.3 record framing (RFC 8446 §5.1): the
// 5-byte header, version validation, and the per-direction AEAD wrapping
// and unwrapping of record contents.
package record

import (
	"github.com/yourusername/shocktls/pkg/shocktls/status"
	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

// Content type byte values (RFC 8446 §5.1).
const (
	TypeChangeCipherSpec byte = 0x14
	TypeAlert            byte = 0x15
	TypeHandshake        byte = 0x16
	TypeApplicationData  byte = 0x17
)

// HeaderSize is the fixed size of a TLS record header.
const HeaderSize = 5

// Header is a parsed 5-byte record header.
type Header struct {
	Type   byte
	Major  byte
	Minor  byte
	Length uint16
}

// Bytes encodes the header back into its 5-byte wire form.
func (h Header) Bytes() [HeaderSize]byte {
	return [HeaderSize]byte{h.Type, h.Major, h.Minor, byte(h.Length >> 8), byte(h.Length)}
}

// ParseHeader reads a record header from buf. It returns ok=false when
// fewer than HeaderSize bytes are buffered — the record driver's "wait for
// more data" case, not an error. A present-but-invalid version is reported
// via the returned status.Frame.
func ParseHeader(buf wire.View) (hdr Header, ok bool, errFrame *status.Frame) {
	if len(buf) < HeaderSize {
		return Header{}, false, nil
	}
	hdr = Header{
		Type:   buf[0],
		Major:  buf[1],
		Minor:  buf[2],
		Length: uint16(buf[3])<<8 | uint16(buf[4]),
	}
	if hdr.Major != 3 || (hdr.Minor != 1 && hdr.Minor != 3 && hdr.Minor != 4) {
		return hdr, true, status.New(status.ProtocolDecode, "bad record version %d.%d", hdr.Major, hdr.Minor)
	}
	return hdr, true, nil
}
