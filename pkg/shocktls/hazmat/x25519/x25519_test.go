package x25519

import (
	"bytes"
	"crypto/rand"
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

func TestDiffieHellmanAgreement(t *testing.T) {
	var alicePriv, bobPriv PrivateKey
	copy(alicePriv[:], mustHex(t, "8b70bb2dcea2c0b949bfe5580b2350f22616f975281562b398ef956c2a63cb7b"))
	copy(bobPriv[:], mustHex(t, "68bf44927e62b4c11f62f8c5d3850501cf58ca0821b7201aa3c7a8f9c39c11a9"))

	wantAlicePub := mustHex(t, "c4ab870a0adfda2d8cd77601924a2e74d2da4500c94421a1e4f94a0a2993591e")
	wantBobPub := mustHex(t, "2a12212eeaa7173c2770f9a923bfb40b033069f7f9bbd9541a0046d47cbea753")
	wantShared := mustHex(t, "71b4cb7dd697a995ba955a8494384488686e4d9f38d929aa7a9c5eb913cff36b")

	alicePub := alicePriv.Public()
	bobPub := bobPriv.Public()

	if !bytes.Equal(alicePub[:], wantAlicePub) {
		t.Errorf("alice public = %x, want %x", alicePub, wantAlicePub)
	}
	if !bytes.Equal(bobPub[:], wantBobPub) {
		t.Errorf("bob public = %x, want %x", bobPub, wantBobPub)
	}

	sharedFromAlice, err := alicePriv.SharedSecret(&bobPub)
	if err != nil {
		t.Fatalf("alice SharedSecret: %v", err)
	}
	sharedFromBob, err := bobPriv.SharedSecret(&alicePub)
	if err != nil {
		t.Fatalf("bob SharedSecret: %v", err)
	}

	if sharedFromAlice != sharedFromBob {
		t.Fatalf("shared secrets disagree: alice=%x bob=%x", sharedFromAlice, sharedFromBob)
	}
	if !bytes.Equal(sharedFromAlice[:], wantShared) {
		t.Errorf("shared secret = %x, want %x", sharedFromAlice, wantShared)
	}
}

func TestGeneratePrivateKeyClampsAndAgrees(t *testing.T) {
	alicePriv, err := GeneratePrivateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	bobPriv, err := GeneratePrivateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}

	if alicePriv[0]&0x07 != 0 || alicePriv[31]&0x80 != 0 || alicePriv[31]&0x40 == 0 {
		t.Errorf("generated key is not clamped: %x", alicePriv)
	}

	alicePub := alicePriv.Public()
	bobPub := bobPriv.Public()

	sharedA, err := alicePriv.SharedSecret(&bobPub)
	if err != nil {
		t.Fatalf("SharedSecret: %v", err)
	}
	sharedB, err := bobPriv.SharedSecret(&alicePub)
	if err != nil {
		t.Fatalf("SharedSecret: %v", err)
	}
	if sharedA != sharedB {
		t.Fatal("random key pair shared secrets disagree")
	}
}

func TestSharedSecretRejectsAllZeroPeer(t *testing.T) {
	var priv PrivateKey
	for i := range priv {
		priv[i] = byte(i + 1)
	}
	var zeroPeer [Size]byte
	if _, err := priv.SharedSecret(&zeroPeer); err == nil {
		t.Fatal("expected an error for the all-zero low-order peer public key")
	}
}
