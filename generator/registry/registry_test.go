package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/config"
	"github.com/oasisprotocol/prng-suite/generator/api"
)

func TestKinds(t *testing.T) {
	require.Equal(t,
		[]Kind{KindICG, KindLCG, KindLFG, KindMCG, KindMRG, KindMSM},
		Kinds(),
	)
}

func TestNewDefaults(t *testing.T) {
	require := require.New(t)

	cfg := config.DefaultConfig()
	names := make(map[string]bool)
	for _, kind := range Kinds() {
		gen, err := New(kind, &cfg.Generator)
		require.NoError(err, "New(%s)", kind)

		seq, err := gen.GenerateSequence(100)
		require.NoError(err, "GenerateSequence(%s)", kind)
		require.Len(seq, 100)
		for _, v := range seq {
			require.True(v >= 0 && v < 1, "%s value %f out of range", kind, v)
		}
		names[gen.Name()] = true
	}
	require.Len(names, len(Kinds()), "generator names must be distinct")
}

func TestNewErrors(t *testing.T) {
	require := require.New(t)

	cfg := config.DefaultConfig()
	_, err := New("xorshift", &cfg.Generator)
	require.True(errors.Is(err, ErrUnknownKind))

	cfg.Generator.LFG.Operation = "/"
	_, err = New(KindLFG, &cfg.Generator)
	require.True(errors.Is(err, api.ErrInvalidParameter))

	cfg.Generator.MCG.Seed = 0
	_, err = New(KindMCG, &cfg.Generator)
	require.True(errors.Is(err, api.ErrInvalidParameter))
}

func TestSeed(t *testing.T) {
	cfg := config.DefaultConfig()
	require.EqualValues(t, 12345, Seed(KindMSM, &cfg.Generator))
	require.EqualValues(t, 3, Seed(KindMRG, &cfg.Generator))
	require.EqualValues(t, 0, Seed("unknown", &cfg.Generator))
}
