// Package blindx blinds semantic embeddings and encrypts text with keys
// derived from a user's credentials and a six-digit privacy seed.
//
// Two secrets come out of one derivation:
//
//   - a 384×384 orthogonal matrix. Multiplying embeddings by it hides the
//     original vectors from a vector store while preserving dot products,
//     norms and cosine similarity, so nearest-neighbour search still works.
//   - an AES-256-GCM key used to encrypt the text stored next to those
//     vectors.
//
// Both are deterministic: the same credentials and seed always give the
// same matrix and key, on any machine. Nothing is persisted; a user rebuilds
// their session after every sign-in.
//
// # Quick Start
//
//	session, err := blindx.NewSession()
//	if err != nil {
//	    return err
//	}
//	defer session.Clear()
//
//	if err := session.Initialize(ctx, "alice", password, "654321"); err != nil {
//	    return err
//	}
//
//	blinded, err := session.Transform(ctx, embedding) // len(embedding) == 384
//	ciphertext, err := session.EncryptText(ctx, "meeting notes")
//	plaintext, err := session.DecryptText(ctx, ciphertext)
//
// # Entry Points
//
// Initialize hashes "username:password:seed" with SHA-256.
// InitializeWithCredentialsHash hashes "credentialsHash:seed", where the
// credentials hash is a 64-character hex string minted elsewhere, for
// example by HardenedCredentialsHash at sign-in. The two entry points do not
// produce the same material for the same user.
//
// # Determinism
//
// Another implementation reproduces a session's material from the final
// seed hash h (64 lowercase hex characters) as follows.
//
// The matrix stream is seeded by folding h over its UTF-16 code units into
// a signed 32-bit integer (acc = acc*31 + c, wrapping). Each step computes
// state = (state*9301 + 49297) mod 233280 with a floored modulo, so a
// negative folded seed lands in [0, 233280) on the first step. A truncating
// % as in JavaScript or C keeps the state negative and diverges from here.
//
// Roughly a third of seeds fill a rank-deficient matrix, where a
// Gram-Schmidt row norm drops below 1e-10. Such a seed is replaced by
//
//	hex(SHA-256(h + ":" + k))
//
// for k = 1, 2, ... in decimal, each derived from h itself, until a build
// succeeds. At most 15 reseeds are tried before Initialize fails with
// ErrMatrixConstruction. Seeds that build on the first attempt are used
// unchanged. The AES key is always the first 32 bytes of h, whichever seed
// built the matrix.
//
// # Lifecycle
//
// A Session is Uninitialized, Initializing or Ready. Concurrent Initialize
// calls share a single derivation. Clear zeroes the matrix and destroys the
// key at any time, and wins over a derivation that is still running.
//
// # Errors
//
// Errors wrap the sentinels in errors.go and can be grouped with
// IsValidationError, IsLifecycleError, IsOperationError and
// IsConfigurationError.
//
// # Observability
//
// Trace hooks (NewLoggingTraceHook, NewMetricsTraceHook) receive the session
// id, operation names, durations and errors. They never receive
// credentials, seeds, hashes, keys or plaintext.
package blindx
