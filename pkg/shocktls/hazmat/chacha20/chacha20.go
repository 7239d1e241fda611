// Package chacha20 implements the RFC 7539 ChaCha20 stream cipher: a
// 20-round, little-endian 32-bit state of 16 words (4 constants, 8 key
// words, 1 block-counter word, 3 nonce words).
package chacha20

import (
	"encoding/binary"

	"github.com/yourusername/shocktls/pkg/shocktls/internal/xorbuf"
)

const (
	// KeySize is the key size in bytes.
	KeySize = 32
	// NonceSize is the nonce size in bytes.
	NonceSize = 12
	// BlockSize is the keystream block size in bytes.
	BlockSize = 64
)

var constants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574} // "expand 32-byte k"

// Cipher holds the initial ChaCha20 state (constants, key, counter, nonce).
// Each keystream block XORKeyStream generates advances the counter by one,
// so a Cipher is consumed as a normal stream cipher.
type Cipher struct {
	state [16]uint32
}

// New builds a Cipher from a 32-byte key, an initial block counter
// (1 for the AEAD payload, 0 for the Poly1305 one-time key), and a 12-byte
// nonce.
func New(key *[KeySize]byte, counter uint32, nonce *[NonceSize]byte) Cipher {
	var c Cipher
	c.state[0], c.state[1], c.state[2], c.state[3] = constants[0], constants[1], constants[2], constants[3]
	for i := 0; i < 8; i++ {
		c.state[4+i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	c.state[12] = counter
	for i := 0; i < 3; i++ {
		c.state[13+i] = binary.LittleEndian.Uint32(nonce[i*4:])
	}
	return c
}

// Block returns the raw 64-byte keystream block for the wire-format test
// vector in RFC 7539 §2.3.2, without consuming it via XORKeyStream.
func (c *Cipher) Block() [BlockSize]byte {
	working := c.state
	block(&working)
	var out [BlockSize]byte
	for i, w := range working {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

// XORKeyStream XORs src with the keystream and writes the result to dst
// (which may alias src for in-place operation), advancing the block
// counter by the number of full or partial blocks consumed.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	var keystream [BlockSize]byte
	for len(src) > 0 {
		working := c.state
		block(&working)
		for i, w := range working {
			binary.LittleEndian.PutUint32(keystream[i*4:], w)
		}
		c.state[12]++

		n := len(src)
		if n > BlockSize {
			n = BlockSize
		}
		xorbuf.XOR(dst[:n], src[:n], keystream[:n])
		dst = dst[n:]
		src = src[n:]
	}
}

func quarterRound(state *[16]uint32, a, b, c, d int) {
	state[a] += state[b]
	state[d] ^= state[a]
	state[d] = rotl(state[d], 16)

	state[c] += state[d]
	state[b] ^= state[c]
	state[b] = rotl(state[b], 12)

	state[a] += state[b]
	state[d] ^= state[a]
	state[d] = rotl(state[d], 8)

	state[c] += state[d]
	state[b] ^= state[c]
	state[b] = rotl(state[b], 7)
}

func rotl(x uint32, n uint) uint32 {
	return x<<n | x>>(32-n)
}

func block(state *[16]uint32) {
	initial := *state
	for i := 0; i < 10; i++ {
		quarterRound(state, 0, 4, 8, 12)
		quarterRound(state, 1, 5, 9, 13)
		quarterRound(state, 2, 6, 10, 14)
		quarterRound(state, 3, 7, 11, 15)

		quarterRound(state, 0, 5, 10, 15)
		quarterRound(state, 1, 6, 11, 12)
		quarterRound(state, 2, 7, 8, 13)
		quarterRound(state, 3, 4, 9, 14)
	}
	for i := range state {
		state[i] += initial[i]
	}
}
