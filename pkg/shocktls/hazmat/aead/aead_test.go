package aead

import (
	"bytes"
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

func TestSealRFC7539Section282Vector(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(0x80 + i)
	}
	var nonce [NonceSize]byte
	copy(nonce[:], mustHex(t, "070000004041424344454647"))
	aad := mustHex(t, "50515253c0c1c2c3c4c5c6c7")
	plaintext := []byte("Ladies and Gentlemen of the class of '99: If I could offer you " +
		"only one tip for the future, sunscreen would be it.")
	buf := append([]byte(nil), plaintext...)

	ciphertext, tag := Seal(&key, &nonce, buf, aad)

	wantCiphertext := mustHex(t, "d31a8d34648e60db7b86afbc53ef7ec2a4aded51296e08fea9e2b5a736ee62d"+
		"63dbea45e8ca9671282fafb69da92728b1a71de0a9e060b2905d6a5b67ecd3b"+
		"3692ddbd7f2d778b8c9803aee328091b58fab324e4fad675945585808b4831d"+
		"7bc3ff4def08e4b7a9de576d26586cec64b6116")
	wantTag := mustHex(t, "1ae10b594f09e26a7e902ecbd0600691")

	if !bytes.Equal(ciphertext, wantCiphertext) {
		t.Errorf("ciphertext = %x, want %x", ciphertext, wantCiphertext)
	}
	if !bytes.Equal(tag[:], wantTag) {
		t.Errorf("tag = %x, want %x", tag, wantTag)
	}
}

func TestOpenRoundTrips(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	for i := range key {
		key[i] = byte(i * 3)
	}
	for i := range nonce {
		nonce[i] = byte(i + 5)
	}
	aad := []byte("header")
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	buf := append([]byte(nil), plaintext...)

	ciphertext, tag := Seal(&key, &nonce, buf, aad)

	opened, ok := Open(&key, &nonce, ciphertext, aad, &tag)
	if !ok {
		t.Fatal("Open reported failure on an untampered message")
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("Open = %q, want %q", opened, plaintext)
	}
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	for i := range key {
		key[i] = byte(i)
	}
	plaintext := []byte("authenticate me")
	buf := append([]byte(nil), plaintext...)
	ciphertext, tag := Seal(&key, &nonce, buf, nil)
	ciphertext[0] ^= 0xff

	if _, ok := Open(&key, &nonce, ciphertext, nil, &tag); ok {
		t.Fatal("Open accepted a tampered ciphertext")
	}
}

func TestOpenRejectsWrongAAD(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	plaintext := []byte("payload")
	buf := append([]byte(nil), plaintext...)
	ciphertext, tag := Seal(&key, &nonce, buf, []byte("aad-one"))

	if _, ok := Open(&key, &nonce, ciphertext, []byte("aad-two"), &tag); ok {
		t.Fatal("Open accepted mismatched AAD")
	}
}
