package blindx

import (
	"context"
	"fmt"

	"github.com/hengadev/blindx/internal/crypto"
)

// HardenedCredentialsHash produces a credentials hash suitable for
// InitializeWithCredentialsHash using Argon2id over "username:password".
//
// It is meant for the authentication layer that mints credentials hashes
// (for example into an access token). The salt must be stable per user,
// otherwise the derived matrix and key change between sign-ins. A nil params
// uses DefaultArgon2Params.
func HardenedCredentialsHash(ctx context.Context, username, password string, salt []byte, params *Argon2Params) (string, error) {
	if params == nil {
		params = DefaultArgon2Params()
	}
	if err := params.Validate(); err != nil {
		return "", fmt.Errorf("%w: argon2 params: %w", ErrInvalidConfiguration, err)
	}
	h, err := crypto.HashCredentials(ctx, username, password, salt, params)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return h, nil
}
