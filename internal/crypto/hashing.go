package crypto

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/hengadev/blindx/internal/security"
)

// CredentialsHashLength is the byte length of a credentials hash before hex
// encoding, matching a SHA-256 digest.
const CredentialsHashLength = 32

var ErrEmptySalt = errors.New("salt cannot be empty")

// Argon2ParamsInterface defines the interface for Argon2 parameters
type Argon2ParamsInterface interface {
	GetMemory() uint32
	GetIterations() uint32
	GetParallelism() uint8
	GetSaltLength() uint32
}

// SHA256 returns the SHA-256 digest of data.
func SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// HashCredentials runs Argon2id over "username:password" with the given salt
// and returns a 64-character lowercase hex digest, the same shape as a
// SHA-256 credentials hash. A done ctx is reported before any hashing work.
func HashCredentials(ctx context.Context, username, password string, salt []byte, params Argon2ParamsInterface) (string, error) {
	if params == nil {
		return "", fmt.Errorf("argon2 parameters cannot be nil")
	}
	if len(salt) == 0 {
		return "", ErrEmptySalt
	}
	if uint32(len(salt)) < params.GetSaltLength() {
		return "", fmt.Errorf("salt must be at least %d bytes, got %d", params.GetSaltLength(), len(salt))
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	secret := []byte(username + ":" + password)
	defer security.ZeroBytes(secret)

	digest := argon2.IDKey(
		secret,
		salt,
		params.GetIterations(),
		params.GetMemory(),
		params.GetParallelism(),
		CredentialsHashLength,
	)
	defer security.ZeroBytes(digest)

	return hex.EncodeToString(digest), nil
}
