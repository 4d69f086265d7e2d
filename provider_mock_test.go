package blindx

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ProviderMock is a mock implementation of the Provider interface for
// testing purposes. It uses testify/mock for easy setup and verification.
type ProviderMock struct {
	mock.Mock
}

func NewProviderMock() *ProviderMock {
	return &ProviderMock{}
}

func (m *ProviderMock) SHA256(data []byte) [32]byte {
	args := m.Called(data)
	return args.Get(0).([32]byte)
}

func (m *ProviderMock) RandomBytes(n int) ([]byte, error) {
	args := m.Called(n)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *ProviderMock) ImportAESKey(raw []byte) (AEADKey, error) {
	args := m.Called(raw)
	key, _ := args.Get(0).(AEADKey)
	return key, args.Error(1)
}

func (m *ProviderMock) AESGCMEncrypt(ctx context.Context, key AEADKey, nonce, plaintext []byte) ([]byte, error) {
	args := m.Called(ctx, key, nonce, plaintext)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *ProviderMock) AESGCMDecrypt(ctx context.Context, key AEADKey, nonce, ciphertext []byte) ([]byte, error) {
	args := m.Called(ctx, key, nonce, ciphertext)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func readyMockSession(t *testing.T) (*Session, *ProviderMock, *fakeKey) {
	t.Helper()
	provider := NewProviderMock()
	key := &fakeKey{}

	material := []byte("alice:secret:654321")
	provider.On("SHA256", material).Return(sha256.Sum256(material)).Once()

	seedHash, err := SeedHashFromCredentials("alice", "secret", "654321")
	require.NoError(t, err)
	provider.On("ImportAESKey", []byte(seedHash[:32])).Return(key, nil).Once()

	s := newTestSession(t, WithProvider(provider))
	require.NoError(t, s.Initialize(context.Background(), "alice", "secret", "654321"))
	return s, provider, key
}

func TestSession_UsesProvider(t *testing.T) {
	ctx := context.Background()
	s, provider, key := readyMockSession(t)

	iv := bytes.Repeat([]byte{7}, IVSize)
	sealed := []byte("ciphertext-and-tag-bytes")
	provider.On("RandomBytes", IVSize).Return(iv, nil).Once()
	provider.On("AESGCMEncrypt", ctx, key, iv, []byte("hi")).Return(sealed, nil).Once()

	ciphertext, err := s.EncryptText(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, base64.StdEncoding.EncodeToString(append(append([]byte(nil), iv...), sealed...)), ciphertext)

	provider.On("AESGCMDecrypt", ctx, key, iv, sealed).Return([]byte("hi"), nil).Once()
	plaintext, err := s.DecryptText(ctx, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "hi", plaintext)

	s.Clear()
	assert.True(t, key.destroyed.Load())
	provider.AssertExpectations(t)
}

func TestSession_ProviderFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("random source fails", func(t *testing.T) {
		s, provider, _ := readyMockSession(t)
		provider.On("RandomBytes", IVSize).Return(nil, errors.New("entropy exhausted")).Once()

		_, err := s.EncryptText(ctx, "hi")
		assert.ErrorIs(t, err, ErrEncryptionFailed)
		provider.AssertExpectations(t)
	})

	t.Run("short iv", func(t *testing.T) {
		s, provider, _ := readyMockSession(t)
		provider.On("RandomBytes", IVSize).Return([]byte{1, 2, 3}, nil).Once()

		_, err := s.EncryptText(ctx, "hi")
		assert.ErrorIs(t, err, ErrEncryptionFailed)
		provider.AssertNotCalled(t, "AESGCMEncrypt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("seal fails", func(t *testing.T) {
		s, provider, _ := readyMockSession(t)
		provider.On("RandomBytes", IVSize).Return(make([]byte, IVSize), nil).Once()
		provider.On("AESGCMEncrypt", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := s.EncryptText(ctx, "hi")
		assert.ErrorIs(t, err, ErrEncryptionFailed)
	})

	t.Run("open fails closed", func(t *testing.T) {
		s, provider, _ := readyMockSession(t)
		provider.On("AESGCMDecrypt", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return([]byte("unauthenticated"), errors.New("tag mismatch")).Once()

		plaintext, err := s.DecryptText(ctx, base64.StdEncoding.EncodeToString(make([]byte, 40)))
		assert.ErrorIs(t, err, ErrDecryptionFailed)
		assert.Empty(t, plaintext)
	})

	t.Run("key import fails", func(t *testing.T) {
		provider := NewProviderMock()
		provider.On("SHA256", mock.Anything).Return(sha256.Sum256([]byte("x"))).Once()
		provider.On("ImportAESKey", mock.Anything).Return(nil, errors.New("unsupported")).Once()

		s := newTestSession(t, WithProvider(provider))
		err := s.Initialize(ctx, "alice", "secret", "654321")
		assert.ErrorIs(t, err, ErrEncryptionFailed)
		assert.Equal(t, StateUninitialized, s.State())
		provider.AssertExpectations(t)
	})
}
