package crypto

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSeedHash = "3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29"

func TestDeriveKeyMaterial(t *testing.T) {
	key, err := DeriveKeyMaterial(testSeedHash)
	require.NoError(t, err)

	assert.Len(t, key, KeySize)
	// The hex characters are used directly, not decoded.
	assert.Equal(t, []byte(testSeedHash[:32]), key)

	_, err = DeriveKeyMaterial(testSeedHash[:31])
	assert.ErrorIs(t, err, ErrShortKeyMaterial)
}

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(NonceSize)
	require.NoError(t, err)
	b, err := RandomBytes(NonceSize)
	require.NoError(t, err)

	assert.Len(t, a, NonceSize)
	assert.NotEqual(t, a, b)
}

func TestNewAESGCM(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr bool
	}{
		{name: "valid key", key: []byte(testSeedHash[:32])},
		{name: "short key", key: []byte("short"), wantErr: true},
		{name: "nil key", key: nil, wantErr: true},
		{name: "aes-128 sized key", key: make([]byte, 16), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := NewAESGCM(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, k)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, k)
		})
	}
}

func TestAESGCM_SealOpen(t *testing.T) {
	ctx := context.Background()
	k, err := NewAESGCM([]byte(testSeedHash[:32]))
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{name: "text", plaintext: []byte("I love dark mode")},
		{name: "empty", plaintext: []byte("")},
		{name: "large", plaintext: []byte(strings.Repeat("x", 10000))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nonce, err := RandomBytes(NonceSize)
			require.NoError(t, err)

			sealed, err := k.Seal(ctx, nonce, tt.plaintext)
			require.NoError(t, err)
			assert.Len(t, sealed, len(tt.plaintext)+TagSize)

			opened, err := k.Open(ctx, nonce, sealed)
			require.NoError(t, err)
			assert.Equal(t, string(tt.plaintext), string(opened))
		})
	}
}

func TestAESGCM_OpenRejectsTampering(t *testing.T) {
	ctx := context.Background()
	k, err := NewAESGCM([]byte(testSeedHash[:32]))
	require.NoError(t, err)

	nonce, err := RandomBytes(NonceSize)
	require.NoError(t, err)
	sealed, err := k.Seal(ctx, nonce, []byte("sensitive"))
	require.NoError(t, err)

	for i := range sealed {
		tampered := append([]byte(nil), sealed...)
		tampered[i] ^= 0x01
		_, err := k.Open(ctx, nonce, tampered)
		assert.ErrorIs(t, err, ErrAuthentication, "byte %d", i)
	}

	_, err = k.Open(ctx, nonce, sealed[:TagSize-1])
	assert.ErrorIs(t, err, ErrAuthentication)

	other, err := NewAESGCM([]byte(testSeedHash[32:]))
	require.NoError(t, err)
	_, err = other.Open(ctx, nonce, sealed)
	assert.ErrorIs(t, err, ErrAuthentication)
}

func TestAESGCM_InvalidNonce(t *testing.T) {
	ctx := context.Background()
	k, err := NewAESGCM([]byte(testSeedHash[:32]))
	require.NoError(t, err)

	_, err = k.Seal(ctx, make([]byte, 8), []byte("x"))
	assert.ErrorIs(t, err, ErrInvalidNonce)
	_, err = k.Open(ctx, make([]byte, 16), make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidNonce)
}

func TestAESGCM_Destroy(t *testing.T) {
	ctx := context.Background()
	k, err := NewAESGCM([]byte(testSeedHash[:32]))
	require.NoError(t, err)

	raw := k.raw
	k.Destroy()

	assert.Equal(t, make([]byte, KeySize), raw)
	_, err = k.Seal(ctx, make([]byte, NonceSize), []byte("x"))
	assert.ErrorIs(t, err, ErrKeyDestroyed)
	_, err = k.Open(ctx, make([]byte, NonceSize), make([]byte, TagSize))
	assert.ErrorIs(t, err, ErrKeyDestroyed)
}

func TestNewAESGCM_CopiesKey(t *testing.T) {
	ctx := context.Background()
	key := []byte(testSeedHash[:32])
	k, err := NewAESGCM(key)
	require.NoError(t, err)

	nonce := make([]byte, NonceSize)
	sealed, err := k.Seal(ctx, nonce, []byte("hello"))
	require.NoError(t, err)

	for i := range key {
		key[i] = 0
	}

	opened, err := k.Open(ctx, nonce, sealed)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(opened))
}

func TestAESGCM_CanceledContext(t *testing.T) {
	k, err := NewAESGCM([]byte(testSeedHash[:32]))
	require.NoError(t, err)

	nonce, err := RandomBytes(NonceSize)
	require.NoError(t, err)
	sealed, err := k.Seal(context.Background(), nonce, []byte("payload"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := k.Seal(ctx, nonce, []byte("payload"))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)

	out, err = k.Open(ctx, nonce, sealed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}
