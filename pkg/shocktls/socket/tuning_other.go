//go:build !linux && !darwin

package socket

// applyPlatformOptions is a no-op on platforms without a specific tuning
// implementation.
func applyPlatformOptions(fd int, tuning Tuning) {}
