package blindx

import (
	"context"
	"fmt"
	"time"
)

// Transform multiplies a 384-dimensional embedding by the session's
// orthogonal matrix. Dot products, norms and cosine similarity between
// transformed vectors match the originals. The input is not modified.
func (s *Session) Transform(ctx context.Context, embedding []float64) ([]float64, error) {
	start := time.Now()
	out, err := s.transform(embedding)
	s.hook.OnOperation(ctx, s.id, OperationTransform, time.Since(start), err)
	return out, err
}

func (s *Session) transform(embedding []float64) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	if len(embedding) != Dimension {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrDimensionMismatch, Dimension, len(embedding))
	}

	out := make([]float64, Dimension)
	if err := s.matrix.MulVec(out, embedding); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDimensionMismatch, err)
	}
	return out, nil
}

// TransformBatch transforms every embedding with the same matrix. The batch
// is all-or-nothing: if any embedding has the wrong length nothing is
// transformed and the error names its index.
func (s *Session) TransformBatch(ctx context.Context, embeddings [][]float64) ([][]float64, error) {
	start := time.Now()
	out, err := s.transformBatch(embeddings)
	s.hook.OnOperation(ctx, s.id, OperationTransformBatch, time.Since(start), err)
	return out, err
}

func (s *Session) transformBatch(embeddings [][]float64) ([][]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	for i, e := range embeddings {
		if len(e) != Dimension {
			return nil, fmt.Errorf("%w: embedding %d has %d values, expected %d", ErrDimensionMismatch, i, len(e), Dimension)
		}
	}

	out := make([][]float64, len(embeddings))
	for i, e := range embeddings {
		out[i] = make([]float64, Dimension)
		if err := s.matrix.MulVec(out[i], e); err != nil {
			return nil, fmt.Errorf("%w: embedding %d: %w", ErrDimensionMismatch, i, err)
		}
	}
	return out, nil
}
