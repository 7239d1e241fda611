// Package socket wraps a dialed TCP connection with the read/write buffers
// and tuning the TLS client layer runs on top of.
package socket

import (
	"net"
)

// Tuning holds the socket options applied to a freshly dialed client
// connection. Zero values mean "leave the system default".
type Tuning struct {
	// NoDelay disables Nagle's algorithm. A TLS handshake is a sequence of
	// small, latency-sensitive writes, so this defaults to true.
	NoDelay bool

	// KeepAlive enables SO_KEEPALIVE so a silently dead peer is eventually
	// detected instead of leaving the connection open forever.
	KeepAlive bool

	// QuickAck requests immediate ACKs instead of the delayed-ACK timer
	// (Linux only; a no-op elsewhere).
	QuickAck bool

	// FastOpenConnect requests TCP_FASTOPEN_CONNECT so a future dial can
	// carry the first write in the SYN (Linux only; a no-op elsewhere).
	FastOpenConnect bool
}

// DefaultTuning returns the tuning this client applies unless the caller
// overrides it via Config.
func DefaultTuning() Tuning {
	return Tuning{
		NoDelay:   true,
		KeepAlive: true,
		QuickAck:  true,
	}
}

// apply tunes the dialed connection. Failure to apply a platform-specific
// option is not fatal — it is best-effort exactly as the handshake itself
// does not depend on any of these for correctness, only latency.
func apply(conn net.Conn, tuning Tuning) {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return
	}

	if tuning.NoDelay {
		_ = tcpConn.SetNoDelay(true)
	}
	if tuning.KeepAlive {
		_ = tcpConn.SetKeepAlive(true)
	}

	rawConn, err := tcpConn.SyscallConn()
	if err != nil {
		return
	}
	_ = rawConn.Control(func(fd uintptr) {
		applyPlatformOptions(int(fd), tuning)
	})
}
