package handshake

import "github.com/yourusername/shocktls/pkg/shocktls/hazmat/sha256"

// Transcript accumulates the running hash of every handshake message sent
// or received, in order, per RFC 8446 §4.4.1. It wraps a sha256.Builder;
// because Builder holds no pointers, Clone and Finalize never disturb the
// live accumulation.
type Transcript struct {
	b sha256.Builder
}

// NewTranscript returns an empty transcript.
func NewTranscript() Transcript {
	return Transcript{b: sha256.NewBuilder()}
}

// Add absorbs msg (a complete handshake message, including its own
// type/length header) into the running hash.
func (t *Transcript) Add(msg []byte) {
	_, _ = t.b.Write(msg)
}

// Clone returns an independent copy that can be finalized without
// affecting t.
func (t Transcript) Clone() Transcript {
	return Transcript{b: t.b.Clone()}
}

// Finalize returns the SHA-256 digest of everything added so far. It does
// not consume the transcript; Add can still be called afterward.
func (t Transcript) Finalize() [32]byte {
	return t.b.Finalize()
}
