// Package xorbuf provides byte-slice XOR helpers used by the stream-cipher
// primitives in hazmat.
package xorbuf

// XOR sets dst[i] = a[i] ^ b[i] for each i < len(dst). dst may alias a or b.
func XOR(dst, a, b []byte) {
	for i := range dst {
		dst[i] = a[i] ^ b[i]
	}
}
