package generator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/prng-suite/generator/api"
)

func TestMSM(t *testing.T) {
	require := require.New(t)

	g, err := NewMSM(DefaultMSMSeed)
	require.NoError(err, "NewMSM")
	require.Equal("Mid-Square Method", g.Name())

	// 12345^2 = 152399025, the middle of its 32 digit padding is 1.
	v, err := g.Generate()
	require.NoError(err, "Generate")
	require.InDelta(1e-16, v, 1e-30)
	require.EqualValues(1, g.current)

	// 1^2 has an all zero middle, so the fallback kicks in.
	v, err = g.Generate()
	require.NoError(err, "Generate")
	require.EqualValues(msmFallback, g.current)
	require.InDelta(0.1234567890123456, v, 1e-15)
}

func TestMSMMiddle(t *testing.T) {
	require := require.New(t)

	require.EqualValues(0, msmMiddle(0))
	require.EqualValues(1, msmMiddle(152399025))
	// 20 digits padded to 32 leave 0000123456789012 in the middle.
	require.EqualValues(123456789012, msmMiddle(12345678901234567890))
}

func TestMSMValidation(t *testing.T) {
	require := require.New(t)

	_, err := NewMSM(0)
	require.ErrorIs(err, api.ErrInvalidParameter)

	_, err = NewMSM(MSMMaxSeed + 1)
	require.ErrorIs(err, api.ErrInvalidParameter)

	g, err := NewMSM(MSMMaxSeed)
	require.NoError(err, "NewMSM(MSMMaxSeed)")
	require.ErrorIs(g.SetSeed(0), api.ErrInvalidParameter)
	require.EqualValues(MSMMaxSeed, g.current, "state must be retained")
}
