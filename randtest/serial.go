package randtest

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/oasisprotocol/prng-suite/randtest/api"
)

var _ api.Test = (*SerialCorrelationTest)(nil)

// SerialCorrelationTest tests the lag-1 Pearson correlation of a sequence.
type SerialCorrelationTest struct {
	last *api.Result
}

// Name returns the human readable test name.
func (t *SerialCorrelationTest) Name() string {
	return "Serial Correlation Test"
}

// Run runs the test. Fewer than two values never pass, and neither does a
// sequence whose pairs have zero variance, as its correlation is undefined.
func (t *SerialCorrelationTest) Run(numbers []float64, significance float64) bool {
	if len(numbers) < 2 {
		t.last = insufficient(t.Name(), len(numbers), significance)
		return false
	}

	pairs := len(numbers) - 1
	x, y := numbers[:pairs], numbers[1:]

	r := stat.Correlation(x, y, nil)
	z := r * math.Sqrt(float64(pairs))
	p := twoTailedP(z)
	passed := p > significance

	t.last = &api.Result{
		Name:         t.Name(),
		Passed:       passed,
		Significance: significance,
		Statistics: []api.Statistic{
			{Name: StatCorrelation, Value: r},
			{Name: StatZ, Value: z},
			{Name: StatPValue, Value: p},
		},
		Message: fmt.Sprintf("Serial correlation coefficient: %.4f\nZ-statistic: %.4f\nP-value: %.4f\nSignificance level: %.4f\nTest %s",
			r, z, p, significance, outcome(passed),
		),
	}
	return passed
}

// Result returns the diagnostic message of the most recent run.
func (t *SerialCorrelationTest) Result() string {
	if t.last == nil {
		return ""
	}
	return t.last.Message
}

// LastResult returns the structured diagnostics of the most recent run.
func (t *SerialCorrelationTest) LastResult() *api.Result {
	return t.last.Clone()
}

// NewSerialCorrelationTest creates a serial correlation test.
func NewSerialCorrelationTest() *SerialCorrelationTest {
	return &SerialCorrelationTest{}
}
