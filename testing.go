package blindx

// This file provides helpers for tests and examples that need a Ready
// session without real user credentials.

import "context"

// Fixed credentials used by NewTestSession. They are public and must never
// protect real data.
const (
	TestUsername = "blindx-test-user"
	TestPassword = "blindx-test-password"
	TestSeed     = "123456"
)

// NewTestSession returns a Ready session derived from TestUsername,
// TestPassword and TestSeed.
func NewTestSession(ctx context.Context, opts ...Option) (*Session, error) {
	s, err := NewSession(opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Initialize(ctx, TestUsername, TestPassword, TestSeed); err != nil {
		return nil, err
	}
	return s, nil
}
