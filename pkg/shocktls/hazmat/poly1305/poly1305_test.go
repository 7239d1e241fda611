package poly1305

import (
	"encoding/hex"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	return b
}

func TestSumRFC7539TestVector(t *testing.T) {
	var key [KeySize]byte
	copy(key[:], mustHex(t, "85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b"))

	msg := []byte("Cryptographic Forum Research Group")

	tag := Sum(&key, msg)
	want := mustHex(t, "a8061dc1305136c6c22b8baf0c0127a9")

	var wantTag [TagSize]byte
	copy(wantTag[:], want)

	if !Equal(&tag, &wantTag) {
		t.Errorf("Sum = %x, want %x", tag, want)
	}
}

func TestSumEmptyMessage(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	tag := Sum(&key, nil)
	if len(tag) != TagSize {
		t.Fatalf("tag length = %d, want %d", len(tag), TagSize)
	}
}

func TestEqualRejectsMismatch(t *testing.T) {
	a := [TagSize]byte{1, 2, 3}
	b := [TagSize]byte{1, 2, 4}
	if Equal(&a, &b) {
		t.Fatal("Equal reported a match for differing tags")
	}
	if !Equal(&a, &a) {
		t.Fatal("Equal reported a mismatch for identical tags")
	}
}
