package chisquared

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oasisprotocol/prng-suite/common/errors"
)

func TestCriticalValue(t *testing.T) {
	require := require.New(t)

	require.Equal([]float64{0.90, 0.95, 0.975, 0.99, 0.999}, ConfidenceProbAvailable())
	require.Equal(100, MaxDegreesOfFreedom())

	v, err := CriticalValue(9, 0.95)
	require.NoError(err, "CriticalValue")
	require.Equal(16.919, v)

	v, err = CriticalValueAt(9, 0.05)
	require.NoError(err, "CriticalValueAt")
	require.Equal(16.919, v)

	v, err = CriticalValueAt(1, 0.01)
	require.NoError(err, "CriticalValueAt")
	require.Equal(6.635, v)

	v, err = CriticalValue(100, 0.999)
	require.NoError(err, "CriticalValue")
	require.Equal(149.449, v)
}

func TestCriticalValueErrors(t *testing.T) {
	require := require.New(t)

	_, err := CriticalValue(0, 0.95)
	require.True(errors.Is(err, ErrDegreesOfFreedom))

	_, err = CriticalValue(101, 0.95)
	require.True(errors.Is(err, ErrDegreesOfFreedom))

	_, err = CriticalValueAt(9, 0.2)
	require.True(errors.Is(err, ErrSignificance))
}

func TestConfidenceProbAvailableIsCopy(t *testing.T) {
	probs := ConfidenceProbAvailable()
	probs[0] = 0.5
	require.Equal(t, 0.90, ConfidenceProbAvailable()[0])
}
