package generator

import (
	"fmt"
	"strconv"

	"github.com/oasisprotocol/prng-suite/generator/api"
)

const (
	// DefaultMSMSeed is the default mid-square seed.
	DefaultMSMSeed uint64 = 12345

	// MSMDigits is the number of decimal digits in the mid-square state.
	MSMDigits = 16
	// MSMMaxSeed is the largest valid mid-square seed, 10^16 - 1.
	MSMMaxSeed uint64 = 9999999999999999

	// msmFallback replaces a state that collapses to zero.
	msmFallback uint64 = 1234567890123456
)

var _ api.Generator = (*MSM)(nil)

// MSM is von Neumann's middle-square method over 16 decimal digits.
//
// The square is computed in 64 bits and wraps for states above 2^32, which
// is a known limitation of the method as implemented here.
type MSM struct {
	current uint64
}

// Name returns the human readable generator name.
func (g *MSM) Name() string {
	return "Mid-Square Method"
}

// Generate advances the generator by one step.
func (g *MSM) Generate() (float64, error) {
	g.current = msmMiddle(g.current * g.current)
	if g.current == 0 {
		g.current = msmFallback
	}
	return float64(g.current) / (float64(MSMMaxSeed) + 1.0), nil
}

// msmMiddle zero-pads square to 2*MSMDigits digits and returns the middle
// MSMDigits digits.
func msmMiddle(square uint64) uint64 {
	s := fmt.Sprintf("%0*d", 2*MSMDigits, square)
	start := (len(s) - MSMDigits) / 2
	middle, err := strconv.ParseUint(s[start:start+MSMDigits], 10, 64)
	if err != nil {
		// A 64-bit square never has more than 20 digits.
		panic(fmt.Sprintf("generator: malformed mid-square digits %q: %v", s, err))
	}
	return middle
}

// GenerateSequence returns count consecutive values.
func (g *MSM) GenerateSequence(count int) ([]float64, error) {
	return api.Sequence(count, g.Generate)
}

// SetSeed reseeds the generator.
func (g *MSM) SetSeed(seed uint64) error {
	if err := validateMSMSeed(seed); err != nil {
		return err
	}
	g.current = seed
	return nil
}

func validateMSMSeed(seed uint64) error {
	if seed == 0 {
		return api.InvalidParameter("seed cannot be zero")
	}
	if seed > MSMMaxSeed {
		return api.InvalidParameter(fmt.Sprintf("seed must not exceed %d", MSMMaxSeed))
	}
	return nil
}

// NewMSM creates a new mid-square generator.
func NewMSM(seed uint64) (*MSM, error) {
	if err := validateMSMSeed(seed); err != nil {
		return nil, err
	}
	return &MSM{current: seed}, nil
}
