// Package poly1305 implements the RFC 7539 Poly1305 one-time authenticator.
package poly1305

import (
	"crypto/subtle"
	"math/big"
)

// KeySize is the one-time key size in bytes.
const KeySize = 32

// TagSize is the MAC size in bytes.
const TagSize = 16

var (
	// p is the Poly1305 field modulus 2^130 - 5.
	p = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 130), big.NewInt(5))
	// mod128 reduces the final accumulator+s sum mod 2^128 (RFC 7539 §2.5.1
	// step "a += s; Serialize a, n the bottom 16 bytes").
	mod128 = new(big.Int).Lsh(big.NewInt(1), 128)
)

// Sum computes the 16-byte Poly1305 tag over msg using the given one-time
// key: clamp r, accumulate ((acc + block) * r) mod (2^130-5) per 16-byte
// block (RFC 7539 §2.5), then add s mod 2^128 and serialize little-endian.
func Sum(key *[KeySize]byte, msg []byte) [TagSize]byte {
	var rBytes [16]byte
	copy(rBytes[:], key[:16])
	clamp(&rBytes)
	r := leToInt(rBytes[:])
	s := leToInt(key[16:32])

	acc := new(big.Int)
	for len(msg) > 0 {
		n := 16
		if n > len(msg) {
			n = len(msg)
		}
		block := make([]byte, n+1)
		copy(block, msg[:n])
		block[n] = 0x01 // the "add one bit beyond the number of octets" step

		blockNum := leToInt(block)
		acc.Add(acc, blockNum)
		acc.Mul(acc, r)
		acc.Mod(acc, p)

		msg = msg[n:]
	}

	acc.Add(acc, s)
	acc.Mod(acc, mod128)

	var tag [TagSize]byte
	intToLE(acc, tag[:])
	return tag
}

// Equal performs a constant-time comparison of two tags.
func Equal(a, b *[TagSize]byte) bool {
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

func clamp(r *[16]byte) {
	r[3] &= 15
	r[7] &= 15
	r[11] &= 15
	r[15] &= 15
	r[4] &= 252
	r[8] &= 252
	r[12] &= 252
}

// leToInt interprets b as a little-endian unsigned integer.
func leToInt(b []byte) *big.Int {
	rev := make([]byte, len(b))
	for i, c := range b {
		rev[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(rev)
}

// intToLE serializes x as a little-endian integer into out, zero-padded.
func intToLE(x *big.Int, out []byte) {
	for i := range out {
		out[i] = 0
	}
	be := x.Bytes()
	for i, c := range be {
		out[len(be)-1-i] = c
	}
}
