// Package api defines the statistical randomness test interface.
package api

import (
	"github.com/oasisprotocol/prng-suite/common/errors"
)

// ModuleName is the randomness test module name.
const ModuleName = "randtest"

// ErrInvalidParameter is the error returned when a test is constructed with
// invalid parameters.
var ErrInvalidParameter = errors.New(ModuleName, 1, "randtest: invalid parameter")

// Test is a statistical test of a sequence of values in [0, 1).
//
// A test retains the diagnostics of its most recent run. Implementations are
// not safe for concurrent use.
type Test interface {
	// Run runs the test over numbers at the given significance level and
	// reports whether the sequence passed. Too short an input is reported as
	// not passed rather than as an error.
	Run(numbers []float64, significance float64) bool

	// Name returns the human readable test name.
	Name() string

	// Result returns the diagnostic message of the most recent run, or an
	// empty string if the test has not been run.
	Result() string

	// LastResult returns a copy of the structured diagnostics of the most
	// recent run, or nil if the test has not been run.
	LastResult() *Result
}

// Statistic is a single named value computed by a test.
type Statistic struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Result holds the diagnostics of a single test run.
type Result struct {
	Name         string      `json:"name"`
	Passed       bool        `json:"passed"`
	Significance float64     `json:"significance"`
	Statistics   []Statistic `json:"statistics,omitempty"`
	Message      string      `json:"message"`
}

// Statistic returns the named statistic.
func (r *Result) Statistic(name string) (float64, bool) {
	for _, s := range r.Statistics {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

// Clone returns a deep copy of the result.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Statistics = append([]Statistic(nil), r.Statistics...)
	return &c
}

// Outcome returns "PASSED" or "FAILED".
func (r *Result) Outcome() string {
	if r.Passed {
		return "PASSED"
	}
	return "FAILED"
}
