package generator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/generator/api"
)

func TestICG(t *testing.T) {
	require := require.New(t)

	g, err := NewICG(3, 1, 0, 7)
	require.NoError(err, "NewICG")
	require.Equal("Inversive Congruential Generator", g.Name())

	// 3^-1 mod 7 = 5, 5^-1 mod 7 = 3.
	v, err := g.Generate()
	require.NoError(err, "Generate")
	require.Equal(5.0/7.0, v)

	v, err = g.Generate()
	require.NoError(err, "Generate")
	require.Equal(3.0/7.0, v)
}

func TestICGZeroState(t *testing.T) {
	require := require.New(t)

	// Zero is inverted as if it were one: x' = (a*1 + b) mod m.
	g, err := NewICG(0, 4, 2, 11)
	require.NoError(err, "NewICG")

	v, err := g.Generate()
	require.NoError(err, "Generate")
	require.Equal(6.0/11.0, v)

	g, err = NewICG(DefaultICGSeed, DefaultICGMultiplier, DefaultICGIncrement, DefaultICGModulus)
	require.NoError(err, "NewICG")
	v, err = g.Generate()
	require.NoError(err, "Generate")
	require.Equal(1.0/float64(DefaultICGModulus), v)
}

func TestICGNoInverse(t *testing.T) {
	require := require.New(t)

	g, err := NewICG(2, 1, 0, 10)
	require.NoError(err, "NewICG")

	_, err = g.Generate()
	require.True(errors.Is(err, api.ErrNoInverse), "Generate")
	require.Equal("gcd(2, 10) = 2", errors.Context(err))
	require.EqualValues(2, g.current, "state must be retained")

	require.NoError(g.SetSeed(3), "SetSeed")
	v, err := g.Generate()
	require.NoError(err, "Generate")
	require.Equal(7.0/10.0, v)
}

func TestICGValidation(t *testing.T) {
	require := require.New(t)

	for _, args := range [][4]uint64{
		{1, 1, 0, 0},
		{1, 1, 0, math.MaxInt64 + 1},
		{11, 1, 0, 11},
		{1, 11, 0, 11},
		{1, 1, 11, 11},
	} {
		_, err := NewICG(args[0], args[1], args[2], args[3])
		require.True(errors.Is(err, api.ErrInvalidParameter), "NewICG(%v)", args)
	}
}

func TestModInverse(t *testing.T) {
	require := require.New(t)

	for _, m := range []uint64{7, 11, 101, DefaultICGModulus} {
		for _, x := range []uint64{1, 2, 3, 5, m - 1} {
			inv, err := modInverse(x, m)
			require.NoError(err, "modInverse(%d, %d)", x, m)
			require.EqualValues(1, (x*inv)%m, "modInverse(%d, %d)", x, m)
		}
	}
}
