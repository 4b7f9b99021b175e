package randtest

import (
	"fmt"
	"math"

	"github.com/oasisprotocol/prng-suite/randtest/api"
)

var _ api.Test = (*RunsTest)(nil)

// RunsTest is the runs up and down test for independence.
type RunsTest struct {
	last *api.Result
}

// Name returns the human readable test name.
func (t *RunsTest) Name() string {
	return "Runs Test for Independence"
}

// countRuns counts maximal monotonic runs. A run ends whenever the
// "strictly greater than the previous value" predicate changes.
func countRuns(numbers []float64) int {
	runs := 1
	increasing := numbers[1] > numbers[0]
	for i := 1; i < len(numbers); i++ {
		if (numbers[i] > numbers[i-1]) != increasing {
			increasing = !increasing
			runs++
		}
	}
	return runs
}

// Run runs the test. Fewer than two values never pass.
func (t *RunsTest) Run(numbers []float64, significance float64) bool {
	if len(numbers) < 2 {
		t.last = insufficient(t.Name(), len(numbers), significance)
		return false
	}

	runs := countRuns(numbers)
	n := float64(len(numbers))
	expected := (2.0*n - 1.0) / 3.0
	variance := (16.0*n - 29.0) / 90.0
	z := (float64(runs) - expected) / math.Sqrt(variance)
	p := twoTailedP(z)
	passed := p > significance

	t.last = &api.Result{
		Name:         t.Name(),
		Passed:       passed,
		Significance: significance,
		Statistics: []api.Statistic{
			{Name: StatRuns, Value: float64(runs)},
			{Name: StatExpectedRuns, Value: expected},
			{Name: StatZ, Value: z},
			{Name: StatPValue, Value: p},
		},
		Message: fmt.Sprintf("Number of runs: %d\nZ-statistic: %.4f\nP-value: %.4f\nSignificance level: %.4f\nTest %s",
			runs, z, p, significance, outcome(passed),
		),
	}
	return passed
}

// Result returns the diagnostic message of the most recent run.
func (t *RunsTest) Result() string {
	if t.last == nil {
		return ""
	}
	return t.last.Message
}

// LastResult returns the structured diagnostics of the most recent run.
func (t *RunsTest) LastResult() *api.Result {
	return t.last.Clone()
}

// NewRunsTest creates a runs test.
func NewRunsTest() *RunsTest {
	return &RunsTest{}
}

func insufficient(name string, n int, significance float64) *api.Result {
	return &api.Result{
		Name:         name,
		Significance: significance,
		Message: fmt.Sprintf("%s: need at least 2 values, got %d\nSignificance level: %.4f\nTest %s",
			insufficientInputNote, n, significance, outcomeFailed,
		),
	}
}
