package chacha20

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

func TestBlockRFC7539TestVector(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	var nonce [NonceSize]byte
	copy(nonce[:], mustHex(t, "000000090000004a00000000"))

	c := New(&key, 1, &nonce)
	got := c.Block()

	want := "10f1e7e4d13b5915500fdd1fa32071c4c7d1f4c733c068030422aa9ac3d46c4ed2826446079faa0914c2d705d98b02a2b5129cd1de164eb9cbd083e8a2503c4e"
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("Block = %x, want %s", got, want)
	}
}

func TestXORKeyStreamRFC7539TestVector(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	var nonce [NonceSize]byte
	copy(nonce[:], mustHex(t, "000000000000004a00000000"))

	msg := []byte("Ladies and Gentlemen of the class of '99: If I could offer you " +
		"only one tip for the future, sunscreen would be it.")

	c := New(&key, 1, &nonce)
	out := make([]byte, len(msg))
	c.XORKeyStream(out, msg)

	want := "6e2e359a2568f98041ba0728dd0d6981e97e7aec1d4360c20a27afccfd9fae0" +
		"bf91b65c5524733ab8f593dabcd62b3571639d624e65152ab8f530c359f0861" +
		"d807ca0dbf500d6a6156a38e088a22b65e52bc514d16ccf806818ce91ab7793" +
		"7365af90bbf74a35be6b40b8eedf2785e42874d"
	if hex.EncodeToString(out) != want {
		t.Errorf("XORKeyStream = %x, want %s", out, want)
	}
}

func TestXORKeyStreamRoundTrips(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	for i := range key {
		key[i] = byte(i * 7)
	}
	for i := range nonce {
		nonce[i] = byte(i + 1)
	}

	plaintext := make([]byte, 200)
	for i := range plaintext {
		plaintext[i] = byte(i)
	}

	enc := New(&key, 1, &nonce)
	ciphertext := make([]byte, len(plaintext))
	enc.XORKeyStream(ciphertext, plaintext)

	dec := New(&key, 1, &nonce)
	roundTrip := make([]byte, len(ciphertext))
	dec.XORKeyStream(roundTrip, ciphertext)

	if hex.EncodeToString(roundTrip) != hex.EncodeToString(plaintext) {
		t.Fatal("round-tripped plaintext does not match original")
	}
}
