package matrix

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hexSHA256(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestReseedSeed(t *testing.T) {
	seed := hexSHA256("alice:secret:654321")

	assert.Equal(t, hexSHA256(seed+":1"), ReseedSeed(seed, 1))
	assert.Equal(t, hexSHA256(seed+":12"), ReseedSeed(seed, 12))
	assert.NotEqual(t, ReseedSeed(seed, 1), ReseedSeed(seed, 2))
}

// The fill for this credentials hash collapses its last row, so it always
// goes through at least one reseed.
func TestDerive_DegenerateSeedReseedsDeterministically(t *testing.T) {
	seed := hexSHA256("alice:secret:654321")

	_, err := Build(dimension, seed)
	require.ErrorIs(t, err, ErrDegenerateRow)

	a, attempt, err := Derive(dimension, seed)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, attempt, 1)
	assert.NoError(t, a.Verify(1e-9))

	b, again, err := Derive(dimension, seed)
	require.NoError(t, err)
	assert.Equal(t, attempt, again)
	assert.True(t, a.Equal(b), "reseeded matrices must be bit-identical")

	direct, err := Build(dimension, ReseedSeed(seed, attempt))
	require.NoError(t, err)
	assert.True(t, a.Equal(direct))
}

func TestDerive_HealthySeedUsesOriginal(t *testing.T) {
	seed := hexSHA256("bob:pw1:000001")

	m, attempt, err := Derive(dimension, seed)
	require.NoError(t, err)
	assert.Zero(t, attempt)

	direct, err := Build(dimension, seed)
	require.NoError(t, err)
	assert.True(t, m.Equal(direct))
}

func TestDerive_ManySeeds(t *testing.T) {
	count := 32
	if testing.Short() {
		count = 6
	}

	reseeded := 0
	for i := 0; i < count; i++ {
		seed := hexSHA256(fmt.Sprintf("user-%d:password-%d:%06d", i, i*7, i*7919%1000000))
		m, attempt, err := Derive(dimension, seed)
		require.NoError(t, err, "seed %d", i)
		require.NoError(t, m.Verify(1e-9), "seed %d", i)
		if attempt > 0 {
			reseeded++
		}
	}
	t.Logf("%d of %d seeds needed a reseed", reseeded, count)
}

func TestDerive_Exhausted(t *testing.T) {
	var seeds []string
	alwaysDegenerate := func(n int, seed string) (*Matrix, error) {
		seeds = append(seeds, seed)
		return nil, fmt.Errorf("%w: row %d has norm %g", ErrDegenerateRow, n-1, 1e-14)
	}

	_, attempts, err := derive(4, "seed", 3, alwaysDegenerate)
	require.ErrorIs(t, err, ErrDegenerateRow)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []string{"seed", ReseedSeed("seed", 1), ReseedSeed("seed", 2)}, seeds)
}

func TestDerive_OtherErrorsStopImmediately(t *testing.T) {
	calls := 0
	failing := func(n int, seed string) (*Matrix, error) {
		calls++
		return nil, errors.New("boom")
	}

	_, _, err := derive(4, "seed", MaxAttempts, failing)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)

	_, _, err = Derive(0, "seed")
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestDerive_RecoversAfterDegenerateAttempts(t *testing.T) {
	calls := 0
	flaky := func(n int, seed string) (*Matrix, error) {
		calls++
		if calls < 3 {
			return nil, ErrDegenerateRow
		}
		return Build(n, seed)
	}

	m, attempt, err := derive(4, "seed", MaxAttempts, flaky)
	require.NoError(t, err)
	assert.Equal(t, 2, attempt)

	direct, err := Build(4, ReseedSeed("seed", 2))
	require.NoError(t, err)
	assert.True(t, m.Equal(direct))
}
