package generator

import (
	"fmt"

	"github.com/gammazero/deque"

	"github.com/oasisprotocol/prng-suite/generator/api"
)

// DefaultMRGModulus is the default MRG modulus, the Mersenne prime 2^31-1.
const DefaultMRGModulus uint64 = 2147483647

var (
	// DefaultMRGInitialValues are the default initial MRG window values.
	DefaultMRGInitialValues = []uint64{1, 2, 3}
	// DefaultMRGMultipliers are the default MRG multipliers.
	DefaultMRGMultipliers = []uint64{1, 1, 1}
)

var _ api.Generator = (*MRG)(nil)

// MRG is a multiple recursive generator of order k:
// x_n = (a_1*x_{n-1} + ... + a_k*x_{n-k}) mod m.
type MRG struct {
	// window holds the last k values, oldest first.
	window *deque.Deque[uint64]

	multipliers []uint64
	m           uint64
}

// Name returns the human readable generator name.
func (g *MRG) Name() string {
	return "Multiple Recursive Generator"
}

// Generate advances the generator by one step.
func (g *MRG) Generate() (float64, error) {
	k := len(g.multipliers)

	var next uint64
	for i, a := range g.multipliers {
		term := (a * g.window.At(k-1-i)) % g.m
		next = (next + term) % g.m
	}

	g.window.PopFront()
	g.window.PushBack(next)

	return float64(next) / float64(g.m), nil
}

// GenerateSequence returns count consecutive values.
func (g *MRG) GenerateSequence(count int) ([]float64, error) {
	return api.Sequence(count, g.Generate)
}

// SetSeed derives a fresh window from seed, chaining each value from the
// previous one. With prev starting at seed, window slot i (counted from 0)
// is (multipliers[i]*prev + i + 1) mod m.
func (g *MRG) SetSeed(seed uint64) error {
	w := deque.New[uint64](len(g.multipliers))
	current := seed
	for i, a := range g.multipliers {
		current = (a*current + uint64(i) + 1) % g.m
		w.PushBack(current)
	}
	g.window = w
	return nil
}

// NewMRG creates a new multiple recursive generator. The order k is the
// number of multipliers, and exactly k initial values must be given, oldest
// first.
func NewMRG(initialValues, multipliers []uint64, m uint64) (*MRG, error) {
	k := len(multipliers)
	switch {
	case len(initialValues) != k:
		return nil, api.InvalidParameter(fmt.Sprintf(
			"number of initial values (%d) must match the number of multipliers (%d)",
			len(initialValues), k,
		))
	case k == 0:
		return nil, api.InvalidParameter("at least one multiplier is required")
	case m == 0:
		return nil, api.InvalidParameter("modulus must be positive")
	}
	for _, a := range multipliers {
		if a >= m {
			return nil, api.InvalidParameter("multipliers must be less than modulus")
		}
	}

	w := deque.New[uint64](k)
	for _, v := range initialValues {
		if v >= m {
			return nil, api.InvalidParameter("initial values must be less than modulus")
		}
		w.PushBack(v)
	}

	return &MRG{
		window:      w,
		multipliers: append([]uint64(nil), multipliers...),
		m:           m,
	}, nil
}
