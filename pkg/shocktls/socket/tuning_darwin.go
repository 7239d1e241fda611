//go:build darwin

package socket

import "golang.org/x/sys/unix"

// applyPlatformOptions sets the Darwin-specific options. macOS has no
// TCP_QUICKACK equivalent, so this only attempts SO_NOSIGPIPE so a peer
// reset surfaces as a Write error instead of a process-terminating signal.
func applyPlatformOptions(fd int, tuning Tuning) {
	_ = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_NOSIGPIPE, 1)
}
