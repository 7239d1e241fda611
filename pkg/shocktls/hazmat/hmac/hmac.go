// Package hmac implements RFC 2104 HMAC-SHA256, the base primitive for
// HKDF-Extract and the Finished MAC.
package hmac

import "github.com/yourusername/shocktls/pkg/shocktls/hazmat/sha256"

const (
	blockSize = sha256.BlockSize
	ipad      = 0x36
	opad      = 0x5c
)

// Size is the output size in bytes.
const Size = sha256.Size

// Sum computes HMAC-SHA256(key, msg). Keys longer than the block size are
// first hashed; shorter keys are zero-padded, per RFC 2104.
func Sum(key, msg []byte) [Size]byte {
	fixedKey := fixKey(key)

	var innerPad, outerPad [blockSize]byte
	for i := 0; i < blockSize; i++ {
		innerPad[i] = fixedKey[i] ^ ipad
		outerPad[i] = fixedKey[i] ^ opad
	}

	inner := sha256.NewBuilder()
	_, _ = inner.Write(innerPad[:])
	_, _ = inner.Write(msg)
	innerSum := inner.Sum32()

	outer := sha256.NewBuilder()
	_, _ = outer.Write(outerPad[:])
	_, _ = outer.Write(innerSum[:])
	return outer.Sum32()
}

func fixKey(key []byte) [blockSize]byte {
	var fixed [blockSize]byte
	if len(key) > blockSize {
		h := sha256.Sum(key)
		copy(fixed[:], h[:])
	} else {
		copy(fixed[:], key)
	}
	return fixed
}
