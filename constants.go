package blindx

// Engine constants
const (
	// Dimension is the embedding length produced by the upstream embedding
	// model and the size of the blinding matrix.
	Dimension = 384

	// SeedLength is the number of ASCII digits in a privacy seed.
	SeedLength = 6

	// CredentialsHashLength is the length of a hex-encoded credentials hash.
	CredentialsHashLength = 64

	// IVSize is the AES-GCM nonce length prefixed to every ciphertext.
	IVSize = 12

	// TagSize is the AES-GCM authentication tag length.
	TagSize = 16
)

// Environment variable names
const (
	// EnvVerifyOrthonormality toggles the post-build M·Mᵀ ≈ I check.
	EnvVerifyOrthonormality = "BLINDX_VERIFY_ORTHONORMALITY"

	// EnvTolerance is the maximum deviation from the identity accepted by
	// the orthonormality check.
	EnvTolerance = "BLINDX_TOLERANCE"

	// EnvInitTimeout bounds how long Initialize waits for a derivation.
	// Accepts time.ParseDuration syntax, e.g. "5s".
	EnvInitTimeout = "BLINDX_INIT_TIMEOUT"

	// EnvLogLevel is one of debug, info, warn, error.
	EnvLogLevel = "BLINDX_LOG_LEVEL"

	// EnvLogFormat is one of json, text, console.
	EnvLogFormat = "BLINDX_LOG_FORMAT"
)

// Default values
const (
	DefaultTolerance = 1e-9
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Entry point names reported in trace events.
const (
	EntryPointCredentials     = "credentials"
	EntryPointCredentialsHash = "credentials_hash"
)

// Operation names reported in trace events.
const (
	OperationTransform      = "transform"
	OperationTransformBatch = "transform_batch"
	OperationEncrypt        = "encrypt"
	OperationDecrypt        = "decrypt"
)
