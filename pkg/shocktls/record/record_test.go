package record

import (
	"bytes"
	"testing"

	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

func TestParseHeaderWaitsForFiveBytes(t *testing.T) {
	_, ok, errFrame := ParseHeader(wire.View{0x16, 0x03})
	if ok || errFrame != nil {
		t.Fatal("expected ok=false, no error, for a short buffer")
	}
}

func TestParseHeaderRejectsBadVersion(t *testing.T) {
	_, ok, errFrame := ParseHeader(wire.View{0x16, 0x03, 0x09, 0x00, 0x01})
	if !ok || errFrame == nil {
		t.Fatal("expected ok=true with an error for an invalid minor version")
	}
}

func TestParseHeaderAcceptsKnownVersions(t *testing.T) {
	for _, minor := range []byte{1, 3, 4} {
		hdr, ok, errFrame := ParseHeader(wire.View{TypeHandshake, 3, minor, 0x00, 0x05})
		if !ok || errFrame != nil {
			t.Fatalf("minor=%d: expected ok=true, no error; got ok=%v err=%v", minor, ok, errFrame)
		}
		if hdr.Length != 5 {
			t.Errorf("minor=%d: Length = %d, want 5", minor, hdr.Length)
		}
	}
}

func TestWrapUnwrapRoundTrips(t *testing.T) {
	var key [32]byte
	var iv [12]byte
	for i := range key {
		key[i] = byte(i)
	}
	for i := range iv {
		iv[i] = byte(i * 2)
	}

	sender := &Wrapper{Key: key, IV: iv}
	receiver := &Wrapper{Key: key, IV: iv}

	plaintext := []byte("client finished payload")
	buf := wire.NewBuffer()
	defer buf.Release()

	sender.Wrap(&buf, TypeHandshake, plaintext)
	if sender.Counter != 1 {
		t.Fatalf("sender counter = %d, want 1", sender.Counter)
	}

	raw := buf.Bytes()
	var header [HeaderSize]byte
	copy(header[:], raw[:HeaderSize])

	innerType, data, errFrame := receiver.Unwrap(header, raw[HeaderSize:])
	if errFrame != nil {
		t.Fatalf("Unwrap failed: %v", errFrame)
	}
	if innerType != TypeHandshake {
		t.Errorf("innerType = %x, want %x", innerType, TypeHandshake)
	}
	if !bytes.Equal(data, plaintext) {
		t.Errorf("data = %q, want %q", data, plaintext)
	}
	if receiver.Counter != 1 {
		t.Errorf("receiver counter = %d, want 1", receiver.Counter)
	}
}

func TestUnwrapRejectsTamperedCiphertext(t *testing.T) {
	var key [32]byte
	var iv [12]byte
	sender := &Wrapper{Key: key, IV: iv}
	receiver := &Wrapper{Key: key, IV: iv}

	buf := wire.NewBuffer()
	defer buf.Release()
	sender.Wrap(&buf, TypeApplicationData, []byte("hello"))

	raw := buf.Bytes()
	raw[len(raw)-1] ^= 0xff // corrupt the tag

	var header [HeaderSize]byte
	copy(header[:], raw[:HeaderSize])
	if _, _, errFrame := receiver.Unwrap(header, raw[HeaderSize:]); errFrame == nil {
		t.Fatal("expected Unwrap to reject a tampered tag")
	}
}
