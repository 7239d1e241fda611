// Package x25519 implements the RFC 7748 X25519 function over Curve25519:
// scalar clamping and the Montgomery-ladder scalar multiplication used for
// the key-share exchange.
package x25519

import (
	"fmt"
	"io"
	"math/big"
)

// Size is the length in bytes of a private key, public key, or shared
// secret.
const Size = 32

// PrivateKey is a clamped X25519 scalar.
type PrivateKey [Size]byte

var (
	// p is the field modulus 2^255 - 19.
	p = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))
	// a24 is the Montgomery curve constant (486662-2)/4 from RFC 7748 §4.1.
	a24 = big.NewInt(121665)
	// basePoint is the curve's standard base point u-coordinate, 9.
	basePoint = leBytes(9)
)

// GeneratePrivateKey reads 32 bytes from rand and clamps them into a valid
// X25519 scalar per RFC 7748 §5. Callers pass crypto/rand.Reader; this
// package never reads entropy itself.
func GeneratePrivateKey(rand io.Reader) (PrivateKey, error) {
	var key PrivateKey
	if _, err := io.ReadFull(rand, key[:]); err != nil {
		return PrivateKey{}, fmt.Errorf("x25519: reading random scalar: %w", err)
	}
	clamp(&key)
	return key, nil
}

// Public computes the public key corresponding to priv: X25519(priv, 9).
func (priv PrivateKey) Public() [Size]byte {
	return scalarMult(priv[:], basePoint)
}

// SharedSecret computes X25519(priv, peerPublic). It returns an error if
// the result is the all-zero point, a low-order-point rejection RFC 7748
// §6.1 recommends but does not require; we perform it as a hardening
// supplement.
func (priv PrivateKey) SharedSecret(peerPublic *[Size]byte) ([Size]byte, error) {
	out := scalarMult(priv[:], peerPublic[:])
	var zero [Size]byte
	if out == zero {
		return [Size]byte{}, fmt.Errorf("x25519: shared secret is the all-zero low-order point")
	}
	return out, nil
}

func clamp(key *PrivateKey) {
	key[0] &= 248
	key[31] &= 127
	key[31] |= 64
}

// scalarMult implements the RFC 7748 §5 Montgomery-ladder X25519 function
// over the field GF(2^255-19).
func scalarMult(scalar, u []byte) [Size]byte {
	var clamped [Size]byte
	copy(clamped[:], scalar)
	clamp((*PrivateKey)(&clamped))
	k := leToInt(clamped[:])

	var uBytes [Size]byte
	copy(uBytes[:], u)
	uBytes[31] &= 0x7f // mask the top bit per decodeUCoordinate, bits=255
	x1 := leToInt(uBytes[:])

	x2 := big.NewInt(1)
	z2 := big.NewInt(0)
	x3 := new(big.Int).Set(x1)
	z3 := big.NewInt(1)
	swap := 0

	for t := 254; t >= 0; t-- {
		kT := int(k.Bit(t))
		swap ^= kT
		if swap == 1 {
			x2, x3 = x3, x2
			z2, z3 = z3, z2
		}
		swap = kT

		a := addMod(x2, z2)
		aa := mulMod(a, a)
		b := subMod(x2, z2)
		bb := mulMod(b, b)
		e := subMod(aa, bb)
		c := addMod(x3, z3)
		d := subMod(x3, z3)
		da := mulMod(d, a)
		cb := mulMod(c, b)

		x3 = sqrMod(addMod(da, cb))
		z3 = mulMod(x1, sqrMod(subMod(da, cb)))
		x2 = mulMod(aa, bb)
		z2 = mulMod(e, addMod(aa, mulMod(a24, e)))
	}

	if swap == 1 {
		x2, x3 = x3, x2
		z2, z3 = z3, z2
	}

	zInv := new(big.Int).Exp(z2, new(big.Int).Sub(p, big.NewInt(2)), p)
	result := mulMod(x2, zInv)

	var out [Size]byte
	intToLE(result, out[:])
	return out
}

func addMod(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Add(a, b), p)
}

func subMod(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Sub(a, b), p)
}

func mulMod(a, b *big.Int) *big.Int {
	return new(big.Int).Mod(new(big.Int).Mul(a, b), p)
}

func sqrMod(a *big.Int) *big.Int {
	return mulMod(a, a)
}

func leBytes(v int64) []byte {
	var b [Size]byte
	x := big.NewInt(v)
	intToLE(x, b[:])
	return b[:]
}

func leToInt(b []byte) *big.Int {
	rev := make([]byte, len(b))
	for i, c := range b {
		rev[len(b)-1-i] = c
	}
	return new(big.Int).SetBytes(rev)
}

func intToLE(x *big.Int, out []byte) {
	for i := range out {
		out[i] = 0
	}
	be := x.Bytes()
	for i, c := range be {
		out[len(be)-1-i] = c
	}
}
