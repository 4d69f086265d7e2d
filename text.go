package blindx

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"
)

// EncryptText encrypts plaintext with the session key under a fresh random
// IV. The result is base64(IV ‖ ciphertext ‖ tag) using the standard
// alphabet with padding.
func (s *Session) EncryptText(ctx context.Context, plaintext string) (string, error) {
	start := time.Now()
	out, err := s.encryptText(ctx, plaintext)
	s.hook.OnOperation(ctx, s.id, OperationEncrypt, time.Since(start), err)
	return out, err
}

func (s *Session) encryptText(ctx context.Context, plaintext string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return "", err
	}

	iv, err := s.provider.RandomBytes(IVSize)
	if err != nil {
		return "", fmt.Errorf("%w: generate iv: %w", ErrEncryptionFailed, err)
	}
	if len(iv) != IVSize {
		return "", fmt.Errorf("%w: provider returned %d iv bytes, expected %d", ErrEncryptionFailed, len(iv), IVSize)
	}

	sealed, err := s.provider.AESGCMEncrypt(ctx, s.key, iv, []byte(plaintext))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncryptionFailed, err)
	}

	combined := make([]byte, 0, len(iv)+len(sealed))
	combined = append(combined, iv...)
	combined = append(combined, sealed...)
	return base64.StdEncoding.EncodeToString(combined), nil
}

// DecryptText reverses EncryptText. Malformed base64, truncated input and
// any authentication failure all return ErrDecryptionFailed; unauthenticated
// plaintext is never returned.
func (s *Session) DecryptText(ctx context.Context, ciphertext string) (string, error) {
	start := time.Now()
	out, err := s.decryptText(ctx, ciphertext)
	s.hook.OnOperation(ctx, s.id, OperationDecrypt, time.Since(start), err)
	return out, err
}

func (s *Session) decryptText(ctx context.Context, ciphertext string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return "", err
	}

	combined, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: malformed base64", ErrDecryptionFailed)
	}
	if len(combined) < IVSize+TagSize {
		return "", fmt.Errorf("%w: input is %d bytes, need at least %d", ErrDecryptionFailed, len(combined), IVSize+TagSize)
	}

	plaintext, err := s.provider.AESGCMDecrypt(ctx, s.key, combined[:IVSize], combined[IVSize:])
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecryptionFailed)
	}
	return string(plaintext), nil
}
