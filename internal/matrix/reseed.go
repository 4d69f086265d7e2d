package matrix

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/hengadev/blindx/internal/crypto"
)

// MaxAttempts bounds how many seeds Derive tries: the original seed plus
// MaxAttempts-1 reseeds.
const MaxAttempts = 16

// ReseedSeed returns the seed used by attempt k (k ≥ 1):
// hex(SHA-256(seed + ":" + k)), with k in decimal. Every reseed derives from
// the original seed, not from the previous attempt.
func ReseedSeed(seed string, attempt int) string {
	sum := crypto.SHA256([]byte(seed + ":" + strconv.Itoa(attempt)))
	return hex.EncodeToString(sum[:])
}

// Derive builds an n×n orthogonal matrix from seed. When a row degenerates
// it rebuilds from ReseedSeed(seed, 1), ReseedSeed(seed, 2), ... and returns
// the attempt that succeeded (0 for the original seed). Other build errors
// are returned immediately.
func Derive(n int, seed string) (*Matrix, int, error) {
	return derive(n, seed, MaxAttempts, Build)
}

func derive(n int, seed string, attempts int, build func(int, string) (*Matrix, error)) (*Matrix, int, error) {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		s := seed
		if attempt > 0 {
			s = ReseedSeed(seed, attempt)
		}
		m, err := build(n, s)
		if err == nil {
			return m, attempt, nil
		}
		if !errors.Is(err, ErrDegenerateRow) {
			return nil, attempt, err
		}
		lastErr = err
	}
	return nil, attempts, fmt.Errorf("no usable matrix after %d attempts: %w", attempts, lastErr)
}
