package record

import (
	"encoding/binary"

	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/aead"
	"github.com/yourusername/shocktls/pkg/shocktls/status"
	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

// Wrapper holds one direction's AEAD state: the traffic key, the static
// IV, and the monotonic record counter XORed into the IV to build each
// record's nonce. A connection owns two Wrappers, one per direction, and
// neither is ever reset once created.
type Wrapper struct {
	Key     [aead.KeySize]byte
	IV      [aead.NonceSize]byte
	Counter uint64
}

// Nonce XORs the big-endian counter into the low 8 bytes of IV, per RFC
// 8446 §5.3.
func (w *Wrapper) Nonce() [aead.NonceSize]byte {
	nonce := w.IV
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], w.Counter)
	for i := 0; i < 8; i++ {
		nonce[aead.NonceSize-8+i] ^= ctr[i]
	}
	return nonce
}

// Wrap seals plaintext as a single ApplicationData record carrying
// innerType as its true content type, appending the resulting bytes
// (header ‖ ciphertext ‖ tag) to dst and advancing Counter.
func (w *Wrapper) Wrap(dst *wire.Buffer, innerType byte, plaintext []byte) {
	inner := make([]byte, len(plaintext)+1)
	copy(inner, plaintext)
	inner[len(plaintext)] = innerType

	hdr := Header{Type: TypeApplicationData, Major: 3, Minor: 3, Length: uint16(len(inner) + aead.TagSize)}
	hdrBytes := hdr.Bytes()

	nonce := w.Nonce()
	ciphertext, tag := aead.Seal(&w.Key, &nonce, inner, hdrBytes[:])

	dst.Append(hdrBytes[:])
	dst.Append(ciphertext)
	dst.Append(tag[:])
	w.Counter++
}

// Unwrap opens a received record's contents (everything after the 5-byte
// header) using header as the AAD, and returns the true inner content
// type and the plaintext stripped of its trailing type byte. It advances
// Counter whether or not verification succeeds, matching the "counter
// advances per wrap/unwrap" invariant.
func (w *Wrapper) Unwrap(header [HeaderSize]byte, contents []byte) (innerType byte, data []byte, errFrame *status.Frame) {
	defer func() { w.Counter++ }()

	if len(contents) < aead.TagSize {
		return 0, nil, status.New(status.ProtocolDecode, "record contents shorter than AEAD tag")
	}
	ciphertext := contents[:len(contents)-aead.TagSize]
	var tag [aead.TagSize]byte
	copy(tag[:], contents[len(contents)-aead.TagSize:])

	nonce := w.Nonce()
	plaintext, ok := aead.Open(&w.Key, &nonce, ciphertext, header[:], &tag)
	if !ok {
		return 0, nil, status.New(status.CryptographicFailure, "AEAD tag verification failed")
	}
	if len(plaintext) == 0 {
		return 0, nil, status.New(status.ProtocolDecode, "decrypted record has no inner content type")
	}

	innerType = plaintext[len(plaintext)-1]
	data = plaintext[:len(plaintext)-1]
	return innerType, data, nil
}
