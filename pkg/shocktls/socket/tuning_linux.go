//go:build linux

package socket

import "golang.org/x/sys/unix"

// applyPlatformOptions sets the Linux-specific options that reduce
// handshake latency: immediate ACKs and, best-effort, TCP Fast Open on the
// connect path. All failures are swallowed — these are latency
// optimizations, not correctness requirements.
func applyPlatformOptions(fd int, tuning Tuning) {
	if tuning.QuickAck {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_QUICKACK, 1)
	}
	if tuning.FastOpenConnect {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_FASTOPEN_CONNECT, 1)
	}
}
