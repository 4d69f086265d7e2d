package blindx

import (
	"encoding/hex"
	"fmt"
)

// ValidateSeed checks that seed is exactly six ASCII digits. Whitespace is
// not trimmed. The returned error never contains the seed itself.
func ValidateSeed(seed string) error {
	if len(seed) != SeedLength {
		return fmt.Errorf("%w: seed must be exactly %d digits, got %d characters", ErrInvalidSeedFormat, SeedLength, len(seed))
	}
	for i := 0; i < len(seed); i++ {
		if seed[i] < '0' || seed[i] > '9' {
			return fmt.Errorf("%w: seed must contain only digits 0-9", ErrInvalidSeedFormat)
		}
	}
	return nil
}

// IsValidSeed reports whether seed is exactly six ASCII digits.
func IsValidSeed(seed string) bool {
	return ValidateSeed(seed) == nil
}

// ValidateCredentialsHash checks that h is 64 hex characters.
func ValidateCredentialsHash(h string) error {
	if len(h) != CredentialsHashLength {
		return fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidCredentialsHash, CredentialsHashLength, len(h))
	}
	for i := 0; i < len(h); i++ {
		if !isHexDigit(h[i]) {
			return fmt.Errorf("%w: non-hex character at position %d", ErrInvalidCredentialsHash, i)
		}
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// SeedHashFromCredentials derives the final seed hash from plaintext
// credentials: hex(SHA-256(username + ":" + password + ":" + seed)).
func SeedHashFromCredentials(username, password, seed string) (string, error) {
	return seedHashFromCredentials(NewStdProvider(), username, password, seed)
}

// SeedHashFromCredentialsHash derives the final seed hash from a
// precomputed credentials hash: hex(SHA-256(credentialsHash + ":" + seed)).
//
// The result is not guaranteed to match SeedHashFromCredentials for the
// same user. Whatever produced credentialsHash owns that equivalence.
func SeedHashFromCredentialsHash(credentialsHash, seed string) (string, error) {
	return seedHashFromCredentialsHash(NewStdProvider(), credentialsHash, seed)
}

func seedHashFromCredentials(p Provider, username, password, seed string) (string, error) {
	if err := ValidateSeed(seed); err != nil {
		return "", err
	}
	return hexDigest(p, username+":"+password+":"+seed), nil
}

func seedHashFromCredentialsHash(p Provider, credentialsHash, seed string) (string, error) {
	if err := ValidateSeed(seed); err != nil {
		return "", err
	}
	if err := ValidateCredentialsHash(credentialsHash); err != nil {
		return "", err
	}
	return hexDigest(p, credentialsHash+":"+seed), nil
}

func hexDigest(p Provider, material string) string {
	sum := p.SHA256([]byte(material))
	return hex.EncodeToString(sum[:])
}
