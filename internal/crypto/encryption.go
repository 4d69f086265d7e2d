package crypto

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/hengadev/blindx/internal/security"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// NonceSize is the GCM IV length in bytes.
	NonceSize = 12
	// TagSize is the GCM authentication tag length in bytes.
	TagSize = 16
)

var (
	ErrKeyDestroyed     = errors.New("key has been destroyed")
	ErrShortKeyMaterial = errors.New("seed hash too short for key material")
	ErrInvalidNonce     = errors.New("invalid nonce size")
	ErrAuthentication   = errors.New("message authentication failed")
)

// DeriveKeyMaterial takes the first 32 bytes of the UTF-8 encoding of the hex
// seed hash. The hex characters are used as-is, they are not decoded.
func DeriveKeyMaterial(finalSeedHash string) ([]byte, error) {
	raw := []byte(finalSeedHash)
	if len(raw) < KeySize {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrShortKeyMaterial, KeySize, len(raw))
	}
	key := make([]byte, KeySize)
	copy(key, raw[:KeySize])
	return key, nil
}

// RandomBytes reads n bytes from crypto/rand.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// AESGCM holds an imported AES-256-GCM key. The raw bytes never leave it.
type AESGCM struct {
	raw  []byte
	aead cipher.AEAD
}

// NewAESGCM imports a 32-byte key. The key bytes are copied.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("invalid key size: expected %d bytes, got %d", KeySize, len(key))
	}
	raw := security.SecureCopy(key)
	block, err := aes.NewCipher(raw)
	if err != nil {
		security.ZeroBytes(raw)
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		security.ZeroBytes(raw)
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &AESGCM{raw: raw, aead: aesGCM}, nil
}

// Seal encrypts plaintext under nonce and returns ciphertext‖tag.
func (k *AESGCM) Seal(ctx context.Context, nonce, plaintext []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k.aead == nil {
		return nil, ErrKeyDestroyed
	}
	if len(nonce) != k.aead.NonceSize() {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidNonce, k.aead.NonceSize(), len(nonce))
	}
	return k.aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open verifies and decrypts ciphertext‖tag.
func (k *AESGCM) Open(ctx context.Context, nonce, ciphertext []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k.aead == nil {
		return nil, ErrKeyDestroyed
	}
	if len(nonce) != k.aead.NonceSize() {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidNonce, k.aead.NonceSize(), len(nonce))
	}
	if len(ciphertext) < TagSize {
		return nil, fmt.Errorf("%w: ciphertext shorter than tag", ErrAuthentication)
	}
	plaintext, err := k.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return plaintext, nil
}

// Destroy zeros the retained key bytes and drops the cipher.
func (k *AESGCM) Destroy() {
	security.ZeroBytes(k.raw)
	k.raw = nil
	k.aead = nil
}
