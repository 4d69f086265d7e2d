package blindx

import (
	"errors"
)

var (
	// Validation errors, raised before any derivation begins.
	ErrInvalidSeedFormat      = errors.New("invalid seed format")
	ErrInvalidCredentialsHash = errors.New("invalid credentials hash")
	ErrDimensionMismatch      = errors.New("embedding dimension mismatch")

	// Lifecycle errors
	ErrNotInitialized = errors.New("session not initialized")

	// Operation errors
	ErrMatrixConstruction = errors.New("matrix construction failed")
	ErrEncryptionFailed   = errors.New("encryption failed")
	ErrDecryptionFailed   = errors.New("decryption failed")

	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsValidationError returns true if the error was caused by malformed caller
// input: a bad seed, credentials hash or embedding length.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidSeedFormat) ||
		errors.Is(err, ErrInvalidCredentialsHash) ||
		errors.Is(err, ErrDimensionMismatch)
}

// IsLifecycleError returns true if the session was not in the Ready state.
func IsLifecycleError(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}

// IsOperationError returns true if the error represents a failure during
// derivation, encryption or decryption.
func IsOperationError(err error) bool {
	return errors.Is(err, ErrMatrixConstruction) ||
		errors.Is(err, ErrEncryptionFailed) ||
		errors.Is(err, ErrDecryptionFailed)
}

// IsConfigurationError returns true if the error represents a configuration problem.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
