package sha256

import (
	"encoding/hex"
	"testing"
)

func TestSumVectors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sum([]byte(tt.in))
			if hex.EncodeToString(got[:]) != tt.want {
				t.Errorf("Sum(%q) = %x, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestIncrementalMatchesOneShot(t *testing.T) {
	msg := []byte("The quick brown fox jumps over the lazy dog, twice over for good measure.")

	for split := 0; split <= len(msg); split++ {
		b := NewBuilder()
		_, _ = b.Write(msg[:split])
		_, _ = b.Write(msg[split:])
		got := b.Sum32()
		want := Sum(msg)
		if got != want {
			t.Fatalf("split at %d: incremental %x != one-shot %x", split, got, want)
		}
	}
}

func TestCloneIsNonDestructive(t *testing.T) {
	b := NewBuilder()
	_, _ = b.Write([]byte("hello "))

	snapshot := b.Clone()
	snapshotSum := snapshot.Sum32()

	_, _ = b.Write([]byte("world"))
	full := b.Sum32()

	if snapshotSum == full {
		t.Fatal("snapshot digest should not equal the digest after further writes")
	}
	if snapshotSum != Sum([]byte("hello ")) {
		t.Fatal("snapshot digest should match the hash of the bytes written before cloning")
	}
	if full != Sum([]byte("hello world")) {
		t.Fatal("final digest should match the hash of all bytes written")
	}
}
