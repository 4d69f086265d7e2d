// Package prng implements the seeded linear congruential stream used to fill
// the blinding matrix. The arithmetic is fixed so that any implementation
// following it reproduces the exact same sequence for the same seed string.
package prng

import "unicode/utf16"

const (
	multiplier = 9301
	increment  = 49297
	modulus    = 233280
)

// Fold reduces s to a signed 32-bit integer with the rolling hash
// acc = acc*31 + c over the UTF-16 code units of s.
func Fold(s string) int32 {
	var acc int32
	for _, c := range utf16.Encode([]rune(s)) {
		acc = (acc << 5) - acc + int32(c)
	}
	return acc
}

// Source is a deterministic stream of floats in [0, 1).
// It is not safe for concurrent use.
type Source struct {
	state int64
}

// New seeds a Source from an arbitrary string.
func New(seed string) *Source {
	return &Source{state: int64(Fold(seed))}
}

// NewFromState seeds a Source directly from a state value.
func NewFromState(state int64) *Source {
	return &Source{state: state}
}

// Next advances the generator and returns state/233280.
//
// The reduction is floored: a negative seed state maps into [0, 233280).
// A truncating remainder, such as Go's % or JavaScript's %, leaves it
// negative on the first step and yields a different stream.
func (s *Source) Next() float64 {
	next := (s.state*multiplier + increment) % modulus
	if next < 0 {
		next += modulus
	}
	s.state = next
	return float64(next) / modulus
}

// State returns the current generator state.
func (s *Source) State() int64 {
	return s.state
}
