// Package aead implements AEAD_CHACHA20_POLY1305 (RFC 7539 §2.8): ChaCha20
// for confidentiality, Poly1305 for integrity, keyed from the first
// keystream block of the cipher.
package aead

import (
	"encoding/binary"

	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/chacha20"
	"github.com/yourusername/shocktls/pkg/shocktls/hazmat/poly1305"
)

// KeySize is the AEAD key size in bytes.
const KeySize = chacha20.KeySize

// NonceSize is the AEAD nonce size in bytes.
const NonceSize = chacha20.NonceSize

// TagSize is the authentication tag size in bytes.
const TagSize = poly1305.TagSize

// Seal encrypts plaintext in place with the ChaCha20 keystream and returns
// it (aliasing the same backing array) alongside the Poly1305 tag over
// aad||ciphertext.
func Seal(key *[KeySize]byte, nonce *[NonceSize]byte, plaintext, aad []byte) (ciphertext []byte, tag [TagSize]byte) {
	otk := oneTimeKey(key, nonce)

	cipher := chacha20.New(key, 1, nonce)
	cipher.XORKeyStream(plaintext, plaintext)
	ciphertext = plaintext

	tag = poly1305.Sum(&otk, macData(aad, ciphertext))
	return ciphertext, tag
}

// Open verifies tag over aad||ciphertext and, if it matches, decrypts
// ciphertext in place and returns it with ok true. On mismatch it returns
// nil, false and leaves ciphertext untouched.
func Open(key *[KeySize]byte, nonce *[NonceSize]byte, ciphertext, aad []byte, tag *[TagSize]byte) (plaintext []byte, ok bool) {
	otk := oneTimeKey(key, nonce)
	wantTag := poly1305.Sum(&otk, macData(aad, ciphertext))
	if !poly1305.Equal(tag, &wantTag) {
		return nil, false
	}

	cipher := chacha20.New(key, 1, nonce)
	cipher.XORKeyStream(ciphertext, ciphertext)
	return ciphertext, true
}

// oneTimeKey derives the Poly1305 one-time key from the first 32 bytes of
// the ChaCha20 keystream generated with block counter zero (RFC 7539 §2.6).
func oneTimeKey(key *[KeySize]byte, nonce *[NonceSize]byte) [poly1305.KeySize]byte {
	cipher := chacha20.New(key, 0, nonce)
	block := cipher.Block()
	var otk [poly1305.KeySize]byte
	copy(otk[:], block[:poly1305.KeySize])
	return otk
}

// macData builds the Poly1305 input per RFC 7539 §2.8:
//
//	aad ‖ pad16(aad) ‖ ciphertext ‖ pad16(ciphertext) ‖ u64le(len(aad)) ‖ u64le(len(ciphertext))
func macData(aad, ciphertext []byte) []byte {
	out := make([]byte, 0, len(aad)+pad16Len(len(aad))+len(ciphertext)+pad16Len(len(ciphertext))+16)
	out = append(out, aad...)
	out = append(out, make([]byte, pad16Len(len(aad)))...)
	out = append(out, ciphertext...)
	out = append(out, make([]byte, pad16Len(len(ciphertext)))...)

	var lens [16]byte
	binary.LittleEndian.PutUint64(lens[0:8], uint64(len(aad)))
	binary.LittleEndian.PutUint64(lens[8:16], uint64(len(ciphertext)))
	out = append(out, lens[:]...)
	return out
}

func pad16Len(n int) int {
	if n%16 == 0 {
		return 0
	}
	return 16 - n%16
}
