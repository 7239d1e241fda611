package hkdf

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

func TestExtractAndExpandRFC5869CaseA1(t *testing.T) {
	salt := mustHex(t, "000102030405060708090a0b0c")
	ikm := mustHex(t, "0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	info := mustHex(t, "f0f1f2f3f4f5f6f7f8f9")

	prk := Extract(salt, ikm)
	okm, err := Expand(prk[:], info, 42)
	if err != nil {
		t.Fatal(err)
	}

	want := "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865"
	if hex.EncodeToString(okm) != want {
		t.Errorf("Expand = %x, want %s", okm, want)
	}
}

func TestExpandRejectsOversizedRequest(t *testing.T) {
	prk := make([]byte, hashSize)
	if _, err := Expand(prk, nil, maxExpandLength+1); err == nil {
		t.Fatal("expected an error for a length exceeding 255*HashLen")
	}
}

func TestExpandLabelRFC8448DerivedSecret(t *testing.T) {
	// Early Secret from the RFC 8448 "Simple 1-RTT Handshake" transcript.
	early := mustHex(t, "33ad0a1c607ec03b09e6cd9893680ce210adf300aa1f2660e1b22e10f170f92a")[:32]
	emptyHash := mustHex(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")[:32]

	var derived [32]byte
	if err := ExpandLabel(early, "derived", emptyHash, derived[:]); err != nil {
		t.Fatal(err)
	}

	want := "6f2615a108c702c5678f54fc9dbab69716c076189c48250cebeac3576c3611ba"[:64]
	if hex.EncodeToString(derived[:]) != want {
		t.Errorf("ExpandLabel(derived) = %x, want %s", derived, want)
	}
}

func TestExtractRFC8448HandshakeSecret(t *testing.T) {
	derived := mustHex(t, "6f2615a108c702c5678f54fc9dbab69716c076189c48250cebeac3576c3611ba")
	sharedSecret := mustHex(t, "8bd4054fb55b9d63fdfbacf9f04b9f0d35e6d63f537563efd46272900f89492d")

	handshakeSecret := Extract(derived, sharedSecret)

	want := "1dc826e93606aa6fdc0aadc12f741b01046aa6b99f691ed221a9f0ca043fbeac"
	if hex.EncodeToString(handshakeSecret[:]) != want {
		t.Errorf("Extract(handshake_secret) = %x, want %s", handshakeSecret, want)
	}
}
