package randtest

import (
	"github.com/oasisprotocol/prng-suite/randtest/api"
)

// NewSuite returns the ordered test suite: chi-square with the given number
// of bins, runs and serial correlation.
func NewSuite(bins int) ([]api.Test, error) {
	chi, err := NewChiSquareTest(bins)
	if err != nil {
		return nil, err
	}
	return []api.Test{
		chi,
		NewRunsTest(),
		NewSerialCorrelationTest(),
	}, nil
}

// DefaultSuite returns the default test suite.
func DefaultSuite() []api.Test {
	suite, err := NewSuite(DefaultBins)
	if err != nil {
		panic(err)
	}
	return suite
}

// RunSuite runs every test of the suite over numbers and returns their
// results in suite order.
func RunSuite(suite []api.Test, numbers []float64, significance float64) []*api.Result {
	results := make([]*api.Result, 0, len(suite))
	for _, t := range suite {
		t.Run(numbers, significance)
		results = append(results, t.LastResult())
	}
	return results
}
