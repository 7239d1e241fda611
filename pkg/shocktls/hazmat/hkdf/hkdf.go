// Package hkdf implements RFC 5869 HKDF-SHA256, including the TLS 1.3
// HKDF-Expand-Label construction (RFC 8446 §7.1).
package hkdf

import (
	"fmt"

	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/hmac"
	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

const hashSize = hmac.Size

// maxExpandLength is 255 * HashLen, the hard limit from RFC 5869 §2.3.
const maxExpandLength = 255 * hashSize

// Extract computes HKDF-Extract(salt, ikm) = HMAC-SHA256(salt, ikm).
func Extract(salt, ikm []byte) [hashSize]byte {
	return hmac.Sum(salt, ikm)
}

// Expand computes HKDF-Expand(prk, info, length), returning exactly length
// bytes of output key material. It errors only if length exceeds the
// 255*HashLen ceiling RFC 5869 places on a single expansion.
func Expand(prk, info []byte, length int) ([]byte, error) {
	if length > maxExpandLength {
		return nil, fmt.Errorf("hkdf: requested length %d exceeds maximum %d", length, maxExpandLength)
	}

	okm := make([]byte, 0, length+hashSize)
	var t []byte
	for i := 1; len(okm) < length; i++ {
		block := make([]byte, 0, len(t)+len(info)+1)
		block = append(block, t...)
		block = append(block, info...)
		block = append(block, byte(i))
		sum := hmac.Sum(prk, block)
		t = sum[:]
		okm = append(okm, t...)
	}
	return okm[:length], nil
}

// ExpandLabel builds the HkdfLabel structure
//
//	u16(len(out)) ‖ u8(len("tls13 "+label)) ‖ ("tls13 "+label) ‖ u8(len(context)) ‖ context
//
// and calls Expand(secret, hkdfLabel, len(out)), copying the result into
// out. Callers pass label without the "tls13 " prefix; ExpandLabel adds it.
func ExpandLabel(secret []byte, label string, context []byte, out []byte) error {
	fullLabel := "tls13 " + label

	var buf wire.Buffer
	defer buf.Release()
	buf.AppendU16BE(uint16(len(out)))
	buf.AppendByte(byte(len(fullLabel)))
	buf.Append([]byte(fullLabel))
	buf.AppendByte(byte(len(context)))
	buf.Append(context)

	okm, err := Expand(secret, buf.Bytes(), len(out))
	if err != nil {
		return err
	}
	copy(out, okm)
	return nil
}
