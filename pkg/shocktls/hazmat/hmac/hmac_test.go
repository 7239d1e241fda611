package hmac

import (
	"encoding/hex"
	"testing"
)

func TestSumRFC2104QuickBrownFox(t *testing.T) {
	got := Sum([]byte("key"), []byte("The quick brown fox jumps over the lazy dog"))
	want := "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"
	if hex.EncodeToString(got[:]) != want {
		t.Errorf("Sum = %x, want %s", got, want)
	}
}
