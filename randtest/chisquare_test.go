package randtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/randtest/api"
)

func evenlySpaced(n int) []float64 {
	numbers := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		numbers = append(numbers, (float64(i)+0.5)/float64(n))
	}
	return numbers
}

func TestChiSquareEvenlySpaced(t *testing.T) {
	require := require.New(t)

	test, err := NewChiSquareTest(DefaultBins)
	require.NoError(err, "NewChiSquareTest")
	require.Equal("Chi-Square Test for Uniformity", test.Name())
	require.Empty(test.Result(), "no result before the first run")
	require.Nil(test.LastResult())

	require.True(test.Run(evenlySpaced(100), 0.05), "evenly spaced values must pass")
	require.Equal(
		"Chi-square value: 0.0000\nCritical value: 11.7000\nDegrees of freedom: 9\nSignificance level: 0.0500\nTest PASSED",
		test.Result(),
	)

	res := test.LastResult()
	require.True(res.Passed)
	require.Equal(0.05, res.Significance)
	v, ok := res.Statistic(StatTableCritical)
	require.True(ok, "table critical value must be reported")
	require.Equal(16.919, v)
	v, ok = res.Statistic(StatDegreesOfFreedom)
	require.True(ok)
	require.Equal(9.0, v)
}

func TestChiSquareSkewed(t *testing.T) {
	require := require.New(t)

	test, err := NewChiSquareTest(DefaultBins)
	require.NoError(err, "NewChiSquareTest")

	numbers := make([]float64, 100)
	for i := range numbers {
		numbers[i] = 0.05
	}
	require.False(test.Run(numbers, 0.05), "single bin must fail")

	chi, ok := test.LastResult().Statistic(StatChiSquare)
	require.True(ok)
	require.InDelta(900.0, chi, 1e-9)
	require.Contains(test.Result(), "Test FAILED")
}

func TestChiSquareEdges(t *testing.T) {
	require := require.New(t)

	test, err := NewChiSquareTest(2)
	require.NoError(err, "NewChiSquareTest")

	// 1.0 folds into the last bin and a negative value into the first.
	require.True(test.Run([]float64{1.0, -0.5}, 0.05))
	chi, _ := test.LastResult().Statistic(StatChiSquare)
	require.Equal(0.0, chi)

	require.True(test.Run([]float64{1.0}, 0.05))
	chi, _ = test.LastResult().Statistic(StatChiSquare)
	require.Equal(1.0, chi)

	require.False(test.Run(nil, 0.05), "empty input must not pass")
	require.Contains(test.Result(), "Insufficient data")
	require.False(test.LastResult().Passed)
}

func TestChiSquareCriticalValues(t *testing.T) {
	require := require.New(t)

	test, err := NewChiSquareTest(DefaultBins)
	require.NoError(err, "NewChiSquareTest")

	for _, tc := range []struct {
		significance float64
		critical     float64
		tabulated    bool
	}{
		{0.01, 13.5, true},
		{0.05, 11.7, true},
		{0.10, 10.8, true},
		{0.20, 10.8, false},
	} {
		test.Run(evenlySpaced(20), tc.significance)
		res := test.LastResult()

		v, ok := res.Statistic(StatCriticalValue)
		require.True(ok)
		require.InDelta(tc.critical, v, 1e-9, "significance %g", tc.significance)

		_, ok = res.Statistic(StatTableCritical)
		require.Equal(tc.tabulated, ok, "significance %g", tc.significance)
	}
}

func TestNewChiSquareTestBins(t *testing.T) {
	for _, bins := range []int{-1, 0, 1} {
		_, err := NewChiSquareTest(bins)
		require.True(t, errors.Is(err, api.ErrInvalidParameter), "bins %d", bins)
	}
}
