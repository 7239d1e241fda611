// Package status implements the ordered error-frame list the TLS client
// exposes to callers in place of a single terminal error: a chain of
// entries, each carrying its own call site, rather than one wrapped error.
package status

import (
	"fmt"
	"runtime"
	"strings"
)

// Kind classifies a frame into the small set of error categories this
// client's callers need to distinguish.
type Kind int

const (
	// Transport covers TCP connect/read/write failure, or the remote
	// closing before the handshake completed.
	Transport Kind = iota
	// ProtocolDecode covers bad record version, length overflow, or a
	// missing required extension.
	ProtocolDecode
	// UnsupportedParameter covers a non-TLS_CHACHA20_POLY1305_SHA256 cipher
	// suite or a non-x25519 key share/group.
	UnsupportedParameter
	// CryptographicFailure covers an AEAD tag mismatch or unavailable
	// entropy.
	CryptographicFailure
	// RemoteAlert covers a decoded Alert record.
	RemoteAlert
	// StateViolation covers a record or handshake message type the current
	// phase does not accept, including handshake types this client does not
	// recognize.
	StateViolation
)

func (k Kind) String() string {
	switch k {
	case Transport:
		return "transport error"
	case ProtocolDecode:
		return "protocol decode error"
	case UnsupportedParameter:
		return "unsupported parameter"
	case CryptographicFailure:
		return "cryptographic failure"
	case RemoteAlert:
		return "remote alert"
	case StateViolation:
		return "state violation"
	default:
		return "unknown error"
	}
}

// Frame is a single error entry: its kind, message, and call site.
type Frame struct {
	Kind Kind
	Msg  string
	File string
	Line int
}

func (f *Frame) Error() string {
	return fmt.Sprintf("%s: %s (%s:%d)", f.Kind, f.Msg, f.File, f.Line)
}

// New builds a Frame with the caller's file:line already filled in.
func New(kind Kind, format string, args ...any) *Frame {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}
	return &Frame{Kind: kind, Msg: fmt.Sprintf(format, args...), File: file, Line: line}
}

// List is the ordered sequence of frames a Connection accumulates. Once
// non-empty, the connection is considered terminal: there is no retry path
// in this client, so every append effectively closes the connection.
type List struct {
	frames []*Frame
}

// Add appends a frame built from the caller's site and returns it, so call
// sites can both record the error and propagate it with a single
// expression: `return list.Add(status.Transport, "dial: %v", err)`.
func (l *List) Add(kind Kind, format string, args ...any) *Frame {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file, line = "unknown", 0
	}
	f := &Frame{Kind: kind, Msg: fmt.Sprintf(format, args...), File: file, Line: line}
	l.frames = append(l.frames, f)
	return f
}

// Append records a frame built elsewhere (typically by a lower layer that
// has no *List of its own to append to directly, such as the handshake
// package's Phase implementations) and returns it unchanged.
func (l *List) Append(f *Frame) *Frame {
	l.frames = append(l.frames, f)
	return f
}

// Ok reports whether no frame has been recorded yet.
func (l *List) Ok() bool {
	return len(l.frames) == 0
}

// Frames returns the recorded frames in the order they were added.
func (l *List) Frames() []*Frame {
	return l.frames
}

// String renders all frames, most recent last, one per line.
func (l *List) String() string {
	if l.Ok() {
		return ""
	}
	var b strings.Builder
	for i, f := range l.frames {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.Error())
	}
	return b.String()
}
