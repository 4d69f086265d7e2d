package blindx

import (
	"context"
	"time"
)

// Provider is the set of cryptographic capabilities a Session needs.
//
// The default implementation, returned by NewStdProvider, uses the Go
// standard library. Tests and alternative runtimes can inject their own
// implementation with WithProvider.
type Provider interface {
	// SHA256 returns the SHA-256 digest of data.
	SHA256(data []byte) [32]byte

	// RandomBytes returns n cryptographically secure random bytes.
	RandomBytes(n int) ([]byte, error)

	// ImportAESKey turns 32 raw bytes into an opaque AES-256-GCM key.
	// Implementations must copy raw; the caller zeroes its copy afterwards.
	ImportAESKey(raw []byte) (AEADKey, error)

	// AESGCMEncrypt seals plaintext and returns ciphertext‖tag.
	AESGCMEncrypt(ctx context.Context, key AEADKey, nonce, plaintext []byte) ([]byte, error)

	// AESGCMDecrypt verifies and opens ciphertext‖tag. It must fail rather
	// than return unauthenticated data.
	AESGCMDecrypt(ctx context.Context, key AEADKey, nonce, ciphertext []byte) ([]byte, error)
}

// AEADKey is an imported symmetric key. It never exposes its bytes.
type AEADKey interface {
	// Destroy zeroes the key material. The key is unusable afterwards.
	Destroy()
}

// TraceHook receives non-sensitive events from a Session: the session id,
// the entry point, operation names, durations and errors. It never sees
// credentials, seeds, hashes, keys or plaintext.
type TraceHook interface {
	OnInitializeStart(ctx context.Context, sessionID string, metadata map[string]any)
	OnInitializeComplete(ctx context.Context, sessionID string, duration time.Duration, err error, metadata map[string]any)
	OnOperation(ctx context.Context, sessionID string, operation string, duration time.Duration, err error)
	OnClear(ctx context.Context, sessionID string)
}
