// Package security scrubs secret material held in memory.
//
// Go strings are immutable and cannot be erased. Anything that must be
// scrubbed (key bytes, matrix buffers) is kept in slices and passed through
// these helpers on release.
package security

import (
	"runtime"
)

// ZeroBytes securely zeros a byte slice so key material does not linger
// after release.
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}

	patterns := []byte{0x00, 0xFF, 0xAA, 0x55, 0x00}
	for _, pattern := range patterns {
		for i := range data {
			data[i] = pattern
		}
		// Compiler barrier to prevent optimization
		runtime.KeepAlive(data)
	}

	for i := range data {
		data[i] = 0
	}
	runtime.KeepAlive(data)
}

// ZeroFloats zeros a float64 slice in place.
func ZeroFloats(data []float64) {
	for i := range data {
		data[i] = 0
	}
	runtime.KeepAlive(data)
}

// SecureCopy returns an independent copy of src.
func SecureCopy(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}
