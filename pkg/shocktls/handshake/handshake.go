// Package handshake implements the TLS 1.3 client handshake state machine
// (RFC 8446 §4): the three-phase progression from a plaintext ClientHello
// through the encrypted handshake to application data, as three Phase
// implementations that hand off to one another.
package handshake

import (
	"io"

	"github.com/yourusername/shocktls/pkg/shocktls/record"
	"github.com/yourusername/shocktls/pkg/shocktls/status"
	"github.com/yourusername/shocktls/pkg/shocktls/wire"
)

// ConnState is the slice of a Connection's state a Phase needs to read
// handshake configuration and to emit bytes, without the handshake package
// importing the façade or socket packages (which would be circular: the
// façade owns a Phase, not the other way around).
type ConnState struct {
	// ServerName is sent in the ClientHello server_name extension. Empty
	// means the extension is omitted.
	ServerName string
	// Rand is the entropy source for the client's ephemeral key share and
	// the ClientHello/session-id random fields. Tests can substitute a
	// deterministic reader; production callers pass crypto/rand.Reader.
	Rand io.Reader

	// NetOut receives bytes to hand to the TCP connection. A Phase appends
	// complete records here; the caller flushes it after each dispatch.
	NetOut *wire.Buffer
	// AppOut holds plaintext the user has queued with Connection.Send but
	// that has not yet been wrapped into a record. Only Phase3 drains it;
	// earlier phases leave it untouched until the handshake completes.
	AppOut *wire.Buffer
	// AppIn receives decrypted application data delivered to the user,
	// once Phase3 is reached.
	AppIn *wire.Buffer
	// OnReceive, if set, is invoked once per ProcessRecord call that
	// appended to AppIn.
	OnReceive func([]byte)
}

// Phase is one stage of the handshake state machine. ProcessRecord handles
// one decoded record — header is the parsed 5-byte record header (needed
// as AEAD associated data once a phase is encrypting), contents is
// everything after it — and returns the phase that should handle the next
// record: itself, unless the handshake has advanced, in which case it
// returns the next Phase. OnUserSend is invoked when the user calls
// Connection.Send while this phase is current; only Phase3 wraps queued
// data, while Phase1 and Phase2 record the request for Phase3 to honor.
type Phase interface {
	ProcessRecord(cs *ConnState, header record.Header, contents []byte) (next Phase, errFrame *status.Frame)
	OnUserSend(cs *ConnState) *status.Frame
}
