package generator

import (
	"fmt"

	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/generator/api"
)

// Default MCG parameters: L'Ecuyer's multiplier with the Mersenne prime 2^31-1.
const (
	DefaultMCGSeed       uint64 = 1
	DefaultMCGMultiplier uint64 = 48271
	DefaultMCGModulus    uint64 = 2147483647
)

var _ api.Generator = (*MCG)(nil)

// MCG is a multiplicative congruential generator, an LCG with c = 0:
// x' = (a*x) mod m.
//
// Zero is a fixed point of the recurrence, so the state is never allowed to
// become zero.
type MCG struct {
	current uint64

	a uint64
	m uint64
}

// Name returns the human readable generator name.
func (g *MCG) Name() string {
	return "Multiplicative Congruential Generator"
}

// Generate advances the generator by one step.
//
// A step that would produce zero fails with ErrAbsorbingState and leaves
// the state unchanged. This can only happen for a composite modulus.
func (g *MCG) Generate() (float64, error) {
	next := (g.a * g.current) % g.m
	if next == 0 {
		return 0, errors.WithContext(api.ErrAbsorbingState,
			fmt.Sprintf("%d * %d mod %d is zero", g.a, g.current, g.m),
		)
	}
	g.current = next
	return float64(g.current) / float64(g.m), nil
}

// GenerateSequence returns count consecutive values.
func (g *MCG) GenerateSequence(count int) ([]float64, error) {
	return api.Sequence(count, g.Generate)
}

// SetSeed reseeds the generator.
func (g *MCG) SetSeed(seed uint64) error {
	if err := validateMCGSeed(seed, g.m); err != nil {
		return err
	}
	g.current = seed
	return nil
}

func validateMCGSeed(seed, m uint64) error {
	if seed >= m {
		return api.InvalidParameter("seed must be less than modulus")
	}
	if seed == 0 {
		return api.InvalidParameter("seed cannot be zero")
	}
	return nil
}

// NewMCG creates a new multiplicative congruential generator.
func NewMCG(seed, a, m uint64) (*MCG, error) {
	if m == 0 {
		return nil, api.InvalidParameter("modulus cannot be zero")
	}
	if a >= m {
		return nil, api.InvalidParameter("multiplier must be less than modulus")
	}
	if err := validateMCGSeed(seed, m); err != nil {
		return nil, err
	}

	return &MCG{
		current: seed,
		a:       a,
		m:       m,
	}, nil
}
