package randtest

import (
	"fmt"

	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/randtest/api"
	"github.com/oasisprotocol/prng-suite/randtest/chisquared"
)

// DefaultBins is the default number of chi-square bins.
const DefaultBins = 10

var _ api.Test = (*ChiSquareTest)(nil)

// ChiSquareTest is the chi-square goodness of fit test for uniformity over
// equal width bins of [0, 1).
type ChiSquareTest struct {
	bins int

	last *api.Result
}

// Name returns the human readable test name.
func (t *ChiSquareTest) Name() string {
	return "Chi-Square Test for Uniformity"
}

// Bins returns the number of bins.
func (t *ChiSquareTest) Bins() int {
	return t.bins
}

// Run runs the test. The verdict uses the simplified critical value; the
// tabulated critical value is reported alongside when available.
func (t *ChiSquareTest) Run(numbers []float64, significance float64) bool {
	dof := t.bins - 1
	n := len(numbers)
	if n == 0 {
		t.last = &api.Result{
			Name:         t.Name(),
			Significance: significance,
			Message: fmt.Sprintf("%s: empty sequence\nDegrees of freedom: %d\nSignificance level: %.4f\nTest %s",
				insufficientInputNote, dof, significance, outcomeFailed,
			),
		}
		return false
	}

	observed := make([]int, t.bins)
	for _, v := range numbers {
		bin := int(v * float64(t.bins))
		switch {
		case bin >= t.bins:
			bin = t.bins - 1
		case bin < 0:
			bin = 0
		}
		observed[bin]++
	}

	expected := float64(n) / float64(t.bins)
	var chi float64
	for _, count := range observed {
		diff := float64(count) - expected
		chi += diff * diff / expected
	}

	critical := simplifiedCriticalValue(significance, dof)
	passed := chi <= critical

	res := &api.Result{
		Name:         t.Name(),
		Passed:       passed,
		Significance: significance,
		Statistics: []api.Statistic{
			{Name: StatChiSquare, Value: chi},
			{Name: StatCriticalValue, Value: critical},
			{Name: StatDegreesOfFreedom, Value: float64(dof)},
		},
		Message: fmt.Sprintf("Chi-square value: %.4f\nCritical value: %.4f\nDegrees of freedom: %d\nSignificance level: %.4f\nTest %s",
			chi, critical, dof, significance, outcome(passed),
		),
	}
	if table, err := chisquared.CriticalValueAt(dof, significance); err == nil {
		res.Statistics = append(res.Statistics, api.Statistic{Name: StatTableCritical, Value: table})
	}
	t.last = res

	return passed
}

// Result returns the diagnostic message of the most recent run.
func (t *ChiSquareTest) Result() string {
	if t.last == nil {
		return ""
	}
	return t.last.Message
}

// LastResult returns the structured diagnostics of the most recent run.
func (t *ChiSquareTest) LastResult() *api.Result {
	return t.last.Clone()
}

// NewChiSquareTest creates a chi-square test with the given number of bins.
func NewChiSquareTest(bins int) (*ChiSquareTest, error) {
	if bins < 2 {
		return nil, errors.WithContext(api.ErrInvalidParameter,
			fmt.Sprintf("chi-square test needs at least 2 bins, got %d", bins),
		)
	}
	return &ChiSquareTest{bins: bins}, nil
}
