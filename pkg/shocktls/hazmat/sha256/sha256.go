// Package sha256 implements FIPS 180-4 SHA-256, one-shot and incremental.
//
// This is a from-scratch implementation: it exists so the TLS transcript
// hash, HMAC, and HKDF primitives in this module do not reach for
// crypto/sha256, per the hand-rolled-primitives purpose of this repository.
package sha256

import "encoding/binary"

// Size is the digest size in bytes.
const Size = 32

// BlockSize is the block size in bytes.
const BlockSize = 64

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var initState = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// Builder is an incremental SHA-256 computation. Its zero value is not
// ready to use; call NewBuilder. Builder is a plain value (state array +
// block buffer + counters), so copying a Builder clones it — the transcript
// hash relies on this to take a non-destructive snapshot before
// finalization.
type Builder struct {
	state  [8]uint32
	block  [BlockSize]byte
	nbuf   int   // bytes currently buffered in block
	length uint64 // total bytes written, for the length suffix
}

// NewBuilder returns a Builder ready to accept Write calls.
func NewBuilder() Builder {
	return Builder{state: initState}
}

// Clone returns an independent copy of b. Because Builder holds no
// pointers, this is just a value copy.
func (b Builder) Clone() Builder {
	return b
}

// Write absorbs p into the running hash. It never returns an error.
func (b *Builder) Write(p []byte) (int, error) {
	n := len(p)
	b.length += uint64(n)

	if b.nbuf > 0 {
		copied := copy(b.block[b.nbuf:], p)
		b.nbuf += copied
		p = p[copied:]
		if b.nbuf == BlockSize {
			compress(&b.state, b.block[:])
			b.nbuf = 0
		}
	}

	for len(p) >= BlockSize {
		compress(&b.state, p[:BlockSize])
		p = p[BlockSize:]
	}

	if len(p) > 0 {
		b.nbuf = copy(b.block[:], p)
	}

	return n, nil
}

// Sum32 finalizes a clone of b and returns the digest, leaving b
// untouched so it can keep accumulating.
func (b Builder) Sum32() [Size]byte {
	return finalize(b)
}

// Finalize is an alias for Sum32 kept for readability at handshake call
// sites ("transcript.Finalize()" reads better than "transcript.Sum32()").
func (b Builder) Finalize() [Size]byte {
	return finalize(b)
}

func finalize(b Builder) [Size]byte {
	lengthBits := b.length * 8

	// Padding: 0x80, then zeros, then the 64-bit big-endian bit length, so
	// the total length is a multiple of the block size.
	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	padLen := BlockSize - ((b.nbuf + 1 + 8) % BlockSize)
	if padLen == BlockSize {
		padLen = 0
	}
	total := 1 + padLen + 8
	binary.BigEndian.PutUint64(pad[1+padLen:1+padLen+8], lengthBits)
	_, _ = b.Write(pad[:total])

	var out [Size]byte
	for i, s := range b.state {
		binary.BigEndian.PutUint32(out[i*4:], s)
	}
	return out
}

// Sum computes the SHA-256 digest of b in one call.
func Sum(b []byte) [Size]byte {
	builder := NewBuilder()
	_, _ = builder.Write(b)
	return builder.Sum32()
}

func rotr(x uint32, n uint) uint32 {
	return x>>n | x<<(32-n)
}

func compress(state *[8]uint32, block []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(block[i*4:])
	}
	for i := 16; i < 64; i++ {
		s0 := rotr(w[i-15], 7) ^ rotr(w[i-15], 18) ^ (w[i-15] >> 3)
		s1 := rotr(w[i-2], 17) ^ rotr(w[i-2], 19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, bb, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]

	for i := 0; i < 64; i++ {
		s1 := rotr(e, 6) ^ rotr(e, 11) ^ rotr(e, 25)
		ch := (e & f) ^ (^e & g)
		temp1 := h + s1 + ch + k[i] + w[i]
		s0 := rotr(a, 2) ^ rotr(a, 13) ^ rotr(a, 22)
		maj := (a & bb) ^ (a & c) ^ (bb & c)
		temp2 := s0 + maj

		h = g
		g = f
		f = e
		e = d + temp1
		d = c
		c = bb
		bb = a
		a = temp1 + temp2
	}

	state[0] += a
	state[1] += bb
	state[2] += c
	state[3] += d
	state[4] += e
	state[5] += f
	state[6] += g
	state[7] += h
}
