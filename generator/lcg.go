package generator

import (
	"fmt"

	"github.com/oasisprotocol/prng-suite/generator/api"
)

// Default LCG parameters, the same as the classic glibc rand().
const (
	DefaultLCGSeed       uint64 = 1
	DefaultLCGMultiplier uint64 = 1103515245
	DefaultLCGIncrement  uint64 = 12345
	DefaultLCGModulus    uint64 = 2147483648
)

var _ api.Generator = (*LCG)(nil)

// LCG is a linear congruential generator: x' = (a*x + c) mod m.
type LCG struct {
	current uint64

	a uint64
	c uint64
	m uint64
}

// Name returns the human readable generator name.
func (g *LCG) Name() string {
	return "Linear Congruential Generator"
}

// Generate advances the generator by one step.
func (g *LCG) Generate() (float64, error) {
	g.current = (g.a*g.current + g.c) % g.m
	return float64(g.current) / float64(g.m), nil
}

// GenerateSequence returns count consecutive values.
func (g *LCG) GenerateSequence(count int) ([]float64, error) {
	return api.Sequence(count, g.Generate)
}

// SetSeed reseeds the generator.
func (g *LCG) SetSeed(seed uint64) error {
	if seed >= g.m {
		return api.InvalidParameter("seed must be less than modulus")
	}
	g.current = seed
	return nil
}

// NewLCG creates a new linear congruential generator.
//
// Of the Hull-Dobell full period conditions only gcd(c, m) = 1 is checked.
// The remaining two (a-1 divisible by every prime factor of m, and by 4 when
// 4 divides m) are the caller's responsibility.
func NewLCG(seed, a, c, m uint64) (*LCG, error) {
	switch {
	case m == 0:
		return nil, api.InvalidParameter("modulus cannot be zero")
	case a >= m:
		return nil, api.InvalidParameter("multiplier must be less than modulus")
	case c >= m:
		return nil, api.InvalidParameter("increment must be less than modulus")
	case seed >= m:
		return nil, api.InvalidParameter("seed must be less than modulus")
	}
	if c != 0 {
		if d := gcd(c, m); d != 1 {
			return nil, api.InvalidParameter(
				fmt.Sprintf("increment and modulus must be relatively prime (gcd %d)", d),
			)
		}
	}

	return &LCG{
		current: seed,
		a:       a,
		c:       c,
		m:       m,
	}, nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
