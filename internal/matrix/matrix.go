// Package matrix builds the seeded orthogonal blinding matrix.
//
// The matrix is stored as one contiguous row-major buffer. Construction uses
// plain scalar loops with a fixed summation order so that the same seed
// yields bit-identical matrices on every run.
//
// The generator's small modulus makes roughly a third of seeds produce a
// rank-deficient fill. Derive handles that by reseeding deterministically.
package matrix

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/hengadev/blindx/internal/prng"
	"github.com/hengadev/blindx/internal/security"
)

// DegenerateNormThreshold is the smallest row norm accepted during
// Gram-Schmidt before the row is considered linearly dependent.
const DegenerateNormThreshold = 1e-10

var (
	ErrDegenerateRow   = errors.New("degenerate row during orthonormalization")
	ErrNotOrthonormal  = errors.New("matrix is not orthonormal")
	ErrInvalidSize     = errors.New("invalid matrix size")
	ErrLengthMismatch  = errors.New("vector length does not match matrix dimension")
	ErrMatrixDestroyed = errors.New("matrix has been zeroed")
)

// Matrix is an n×n row-major matrix of float64.
type Matrix struct {
	n    int
	data []float64
}

// Build fills an n×n matrix from the seeded stream and orthonormalizes its
// rows in place. It does not reseed; see Derive.
func Build(n int, seed string) (*Matrix, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	src := prng.New(seed)
	data := make([]float64, n*n)
	for i := range data {
		data[i] = src.Next() - 0.5
	}

	m := &Matrix{n: n, data: data}
	if err := m.orthonormalize(); err != nil {
		m.Zero()
		return nil, err
	}
	return m, nil
}

// orthonormalize runs modified Gram-Schmidt row by row: normalize row i, then
// remove its component from every later row.
func (m *Matrix) orthonormalize() error {
	n := m.n
	for i := 0; i < n; i++ {
		ri := m.data[i*n : (i+1)*n]

		var sum float64
		for j := 0; j < n; j++ {
			sum += ri[j] * ri[j]
		}
		norm := math.Sqrt(sum)
		if math.IsNaN(norm) || math.IsInf(norm, 0) || norm < DegenerateNormThreshold {
			return fmt.Errorf("%w: row %d has norm %g", ErrDegenerateRow, i, norm)
		}
		for j := 0; j < n; j++ {
			ri[j] /= norm
		}

		for k := i + 1; k < n; k++ {
			rk := m.data[k*n : (k+1)*n]
			var dot float64
			for j := 0; j < n; j++ {
				dot += ri[j] * rk[j]
			}
			for j := 0; j < n; j++ {
				rk[j] -= dot * ri[j]
			}
		}
	}
	return nil
}

// Dims returns the matrix dimension.
func (m *Matrix) Dims() int {
	return m.n
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	copy(row, m.data[i*m.n:(i+1)*m.n])
	return row
}

// Equal reports whether both matrices hold bit-identical values.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.n != other.n || len(m.data) != len(other.data) {
		return false
	}
	for i := range m.data {
		if math.Float64bits(m.data[i]) != math.Float64bits(other.data[i]) {
			return false
		}
	}
	return true
}

// MulVec writes M·v into dst. Both slices must have length n.
func (m *Matrix) MulVec(dst, v []float64) error {
	if m.data == nil {
		return ErrMatrixDestroyed
	}
	if len(v) != m.n || len(dst) != m.n {
		return fmt.Errorf("%w: expected %d, got input %d and output %d", ErrLengthMismatch, m.n, len(v), len(dst))
	}
	n := m.n
	for i := 0; i < n; i++ {
		row := m.data[i*n : (i+1)*n]
		var sum float64
		for j := 0; j < n; j++ {
			sum += row[j] * v[j]
		}
		dst[i] = sum
	}
	return nil
}

// Verify checks that M·Mᵀ equals the identity within tolerance.
func (m *Matrix) Verify(tolerance float64) error {
	if m.data == nil {
		return ErrMatrixDestroyed
	}
	dense := mat.NewDense(m.n, m.n, m.data)

	var product mat.Dense
	product.Mul(dense, dense.T())

	for i := 0; i < m.n; i++ {
		for j := 0; j < m.n; j++ {
			expected := 0.0
			if i == j {
				expected = 1.0
			}
			if got := product.At(i, j); math.Abs(got-expected) > tolerance {
				return fmt.Errorf("%w: entry (%d, %d) is %g, expected %g", ErrNotOrthonormal, i, j, got, expected)
			}
		}
	}
	return nil
}

// Zero overwrites the buffer and releases it. The matrix is unusable
// afterwards.
func (m *Matrix) Zero() {
	security.ZeroFloats(m.data)
	m.data = nil
}
