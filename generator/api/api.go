// Package api defines the pseudo-random number generator interface shared by
// all generator implementations.
package api

import (
	"github.com/oasisprotocol/prng-suite/common/errors"
)

// ModuleName is the generator module name.
const ModuleName = "generator"

var (
	// ErrInvalidParameter is the error returned when a generator is constructed
	// or reseeded with parameters that violate its invariants.
	ErrInvalidParameter = errors.New(ModuleName, 1, "generator: invalid parameter")

	// ErrNoInverse is the error returned when a modular multiplicative inverse
	// required by a generation step does not exist.
	ErrNoInverse = errors.New(ModuleName, 2, "generator: multiplicative inverse does not exist")

	// ErrAbsorbingState is the error returned when a generation step would move
	// the generator into a state it can never leave.
	ErrAbsorbingState = errors.New(ModuleName, 3, "generator: step would reach absorbing state")
)

// Generator is a deterministic, seed-driven source of real numbers in [0, 1).
//
// Implementations are not safe for concurrent use.
type Generator interface {
	// Generate advances the state by exactly one step and returns the new
	// state normalized to [0, 1).
	Generate() (float64, error)

	// GenerateSequence returns count values, identical to calling Generate
	// count times. On failure the values generated so far are returned
	// together with the error.
	GenerateSequence(count int) ([]float64, error)

	// Name returns the human readable generator name.
	Name() string

	// SetSeed reinitializes the generator state from seed, leaving the fixed
	// parameters untouched. On error the previous state is retained.
	SetSeed(seed uint64) error
}

// InvalidParameter returns ErrInvalidParameter annotated with the reason.
func InvalidParameter(reason string) error {
	return errors.WithContext(ErrInvalidParameter, reason)
}

// Sequence collects count values from step, stopping at the first error.
func Sequence(count int, step func() (float64, error)) ([]float64, error) {
	if count < 0 {
		return nil, InvalidParameter("sequence length must not be negative")
	}

	seq := make([]float64, 0, count)
	for i := 0; i < count; i++ {
		v, err := step()
		if err != nil {
			return seq, err
		}
		seq = append(seq, v)
	}
	return seq, nil
}
