package generator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/prng-suite/generator/api"
)

type seededFactory struct {
	name  string
	seeds gopter.Gen
	new   func(seed uint64) (api.Generator, error)
}

func seededFactories() []seededFactory {
	return []seededFactory{
		{
			name:  "LCG",
			seeds: gen.UInt64Range(0, DefaultLCGModulus-1),
			new: func(seed uint64) (api.Generator, error) {
				return NewLCG(seed, DefaultLCGMultiplier, DefaultLCGIncrement, DefaultLCGModulus)
			},
		},
		{
			name:  "MCG",
			seeds: gen.UInt64Range(1, DefaultMCGModulus-1),
			new: func(seed uint64) (api.Generator, error) {
				return NewMCG(seed, DefaultMCGMultiplier, DefaultMCGModulus)
			},
		},
		{
			name:  "ICG",
			seeds: gen.UInt64Range(0, DefaultICGModulus-1),
			new: func(seed uint64) (api.Generator, error) {
				return NewICG(seed, 7, 3, DefaultICGModulus)
			},
		},
		{
			name:  "LFG",
			seeds: gen.UInt64(),
			new: func(seed uint64) (api.Generator, error) {
				return NewLFG(seed, DefaultLFGShortLag, DefaultLFGLongLag, OpXor)
			},
		},
		{
			name:  "MRG",
			seeds: gen.UInt64Range(0, DefaultMRGModulus-1),
			new: func(seed uint64) (api.Generator, error) {
				g, err := NewMRG(DefaultMRGInitialValues, []uint64{3, 5, 7}, DefaultMRGModulus)
				if err != nil {
					return nil, err
				}
				if err = g.SetSeed(seed); err != nil {
					return nil, err
				}
				return g, nil
			},
		},
		{
			name:  "MSM",
			seeds: gen.UInt64Range(1, 99999999),
			new: func(seed uint64) (api.Generator, error) {
				return NewMSM(seed)
			},
		},
	}
}

func TestGeneratorProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	for _, f := range seededFactories() {
		f := f
		properties := gopter.NewProperties(parameters)

		properties.Property(f.name+" values are in [0, 1)", prop.ForAll(
			func(seed uint64) bool {
				g, err := f.new(seed)
				if err != nil {
					return false
				}
				seq, err := g.GenerateSequence(200)
				if err != nil {
					return false
				}
				for _, v := range seq {
					if v < 0.0 || v >= 1.0 {
						return false
					}
				}
				return true
			},
			f.seeds,
		))

		properties.Property(f.name+" same seed produces identical sequences", prop.ForAll(
			func(seed uint64) bool {
				g1, err1 := f.new(seed)
				g2, err2 := f.new(seed)
				if err1 != nil || err2 != nil {
					return false
				}
				seq, err := g1.GenerateSequence(50)
				if err != nil {
					return false
				}
				for _, v := range seq {
					w, err := g2.Generate()
					if err != nil || v != w {
						return false
					}
				}
				return true
			},
			f.seeds,
		))

		properties.Property(f.name+" reseeding restarts the sequence", prop.ForAll(
			func(seed uint64) bool {
				g, err := f.new(seed)
				if err != nil {
					return false
				}
				first, err := g.GenerateSequence(20)
				if err != nil {
					return false
				}
				if err = g.SetSeed(seed); err != nil {
					return false
				}
				second, err := g.GenerateSequence(20)
				if err != nil {
					return false
				}
				for i := range first {
					if first[i] != second[i] {
						return false
					}
				}
				return true
			},
			f.seeds,
		))

		properties.TestingRun(t)
	}
}

func TestGenerateSequenceLength(t *testing.T) {
	require := require.New(t)

	for _, f := range seededFactories() {
		g, err := f.new(1)
		require.NoError(err, f.name)

		seq, err := g.GenerateSequence(0)
		require.NoError(err, f.name)
		require.Empty(seq, f.name)

		seq, err = g.GenerateSequence(17)
		require.NoError(err, f.name)
		require.Len(seq, 17, f.name)

		_, err = g.GenerateSequence(-1)
		require.ErrorIs(err, api.ErrInvalidParameter, f.name)
	}
}
