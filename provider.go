package blindx

import (
	"context"
	"fmt"

	"github.com/hengadev/blindx/internal/crypto"
)

type stdProvider struct{}

// NewStdProvider returns the standard library backed Provider.
func NewStdProvider() Provider {
	return stdProvider{}
}

func (stdProvider) SHA256(data []byte) [32]byte {
	return crypto.SHA256(data)
}

func (stdProvider) RandomBytes(n int) ([]byte, error) {
	return crypto.RandomBytes(n)
}

func (stdProvider) ImportAESKey(raw []byte) (AEADKey, error) {
	key, err := crypto.NewAESGCM(raw)
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (stdProvider) AESGCMEncrypt(ctx context.Context, key AEADKey, nonce, plaintext []byte) ([]byte, error) {
	k, err := asStdKey(key)
	if err != nil {
		return nil, err
	}
	return k.Seal(ctx, nonce, plaintext)
}

func (stdProvider) AESGCMDecrypt(ctx context.Context, key AEADKey, nonce, ciphertext []byte) ([]byte, error) {
	k, err := asStdKey(key)
	if err != nil {
		return nil, err
	}
	return k.Open(ctx, nonce, ciphertext)
}

func asStdKey(key AEADKey) (*crypto.AESGCM, error) {
	k, ok := key.(*crypto.AESGCM)
	if !ok {
		return nil, fmt.Errorf("key of type %T was not imported by the standard provider", key)
	}
	return k, nil
}
