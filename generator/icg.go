package generator

import (
	"fmt"
	"math"

	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/generator/api"
)

// Default ICG parameters.
const (
	DefaultICGSeed       uint64 = 1
	DefaultICGMultiplier uint64 = 1
	DefaultICGIncrement  uint64 = 0
	DefaultICGModulus    uint64 = 2147483647
)

var _ api.Generator = (*ICG)(nil)

// ICG is an inversive congruential generator: x' = (a*inv(x) + b) mod m,
// where inv is the multiplicative inverse modulo m. A zero state is inverted
// as if it were one.
type ICG struct {
	current uint64

	a uint64
	b uint64
	m uint64
}

// Name returns the human readable generator name.
func (g *ICG) Name() string {
	return "Inversive Congruential Generator"
}

// Generate advances the generator by one step.
//
// For a composite modulus the current state may have no inverse, in which
// case ErrNoInverse is returned and the state is left unchanged.
func (g *ICG) Generate() (float64, error) {
	x := g.current
	if x == 0 {
		x = 1
	}

	inv, err := modInverse(x, g.m)
	if err != nil {
		return 0, err
	}

	g.current = (g.a*inv + g.b) % g.m
	return float64(g.current) / float64(g.m), nil
}

// GenerateSequence returns count consecutive values.
func (g *ICG) GenerateSequence(count int) ([]float64, error) {
	return api.Sequence(count, g.Generate)
}

// SetSeed reseeds the generator.
func (g *ICG) SetSeed(seed uint64) error {
	if seed >= g.m {
		return api.InvalidParameter("seed must be less than modulus")
	}
	g.current = seed
	return nil
}

// modInverse computes x^-1 mod m with the extended Euclidean algorithm.
func modInverse(x, m uint64) (uint64, error) {
	t, newT := int64(0), int64(1)
	r, newR := int64(m), int64(x)

	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}

	if r > 1 {
		return 0, errors.WithContext(api.ErrNoInverse,
			fmt.Sprintf("gcd(%d, %d) = %d", x, m, r),
		)
	}
	if t < 0 {
		t += int64(m)
	}
	return uint64(t), nil
}

// NewICG creates a new inversive congruential generator.
func NewICG(seed, a, b, m uint64) (*ICG, error) {
	switch {
	case m == 0:
		return nil, api.InvalidParameter("modulus must be positive")
	case m > math.MaxInt64:
		return nil, api.InvalidParameter("modulus must fit in a signed 64-bit integer")
	case seed >= m:
		return nil, api.InvalidParameter("seed must be less than modulus")
	case a >= m:
		return nil, api.InvalidParameter("multiplier must be less than modulus")
	case b >= m:
		return nil, api.InvalidParameter("increment must be less than modulus")
	}

	return &ICG{
		current: seed,
		a:       a,
		b:       b,
		m:       m,
	}, nil
}
