package generator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/generator/api"
)

func TestMCG(t *testing.T) {
	require := require.New(t)

	g, err := NewMCG(DefaultMCGSeed, DefaultMCGMultiplier, DefaultMCGModulus)
	require.NoError(err, "NewMCG")
	require.Equal("Multiplicative Congruential Generator", g.Name())

	v, err := g.Generate()
	require.NoError(err, "Generate")
	require.Equal(48271.0/2147483647.0, v)

	v, err = g.Generate()
	require.NoError(err, "Generate")
	require.Equal(float64(48271*48271%2147483647)/2147483647.0, v)
}

func TestMCGValidation(t *testing.T) {
	require := require.New(t)

	_, err := NewMCG(0, DefaultMCGMultiplier, DefaultMCGModulus)
	require.True(errors.Is(err, api.ErrInvalidParameter), "zero seed")

	_, err = NewMCG(1, 5, 0)
	require.True(errors.Is(err, api.ErrInvalidParameter), "zero modulus")

	_, err = NewMCG(1, 16, 16)
	require.True(errors.Is(err, api.ErrInvalidParameter), "multiplier too large")

	_, err = NewMCG(16, 5, 16)
	require.True(errors.Is(err, api.ErrInvalidParameter), "seed too large")

	g, err := NewMCG(3, 5, 16)
	require.NoError(err, "NewMCG")
	require.True(errors.Is(g.SetSeed(0), api.ErrInvalidParameter), "SetSeed(0)")
}

func TestMCGAbsorbingState(t *testing.T) {
	require := require.New(t)

	// 5 * 2 mod 10 = 0.
	g, err := NewMCG(2, 5, 10)
	require.NoError(err, "NewMCG")

	for i := 0; i < 2; i++ {
		_, err = g.Generate()
		require.True(errors.Is(err, api.ErrAbsorbingState), "Generate")
	}

	seq, err := g.GenerateSequence(5)
	require.True(errors.Is(err, api.ErrAbsorbingState), "GenerateSequence")
	require.Empty(seq)
}

func TestMCGNeverZero(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("state never becomes zero for small moduli", prop.ForAll(
		func(m, a, seed uint64) bool {
			a %= m
			seed = seed%(m-1) + 1

			g, err := NewMCG(seed, a, m)
			if err != nil {
				return false
			}
			for i := 0; i < 2*int(m); i++ {
				if _, err = g.Generate(); err != nil {
					return errors.Is(err, api.ErrAbsorbingState) && g.current != 0
				}
				if g.current == 0 {
					return false
				}
			}
			return true
		},
		gen.UInt64Range(2, 64),
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}
