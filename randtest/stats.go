// Package randtest implements statistical tests of generated sequences.
package randtest

import (
	"math"
)

// Statistic names reported in test results.
const (
	StatChiSquare        = "chi_square"
	StatCriticalValue    = "critical_value"
	StatTableCritical    = "table_critical_value"
	StatDegreesOfFreedom = "degrees_of_freedom"
	StatRuns             = "runs"
	StatExpectedRuns     = "expected_runs"
	StatCorrelation      = "correlation"
	StatZ                = "z_statistic"
	StatPValue           = "p_value"
)

// DefaultSignificance is the default significance level.
const DefaultSignificance = 0.05

const (
	outcomePassed         = "PASSED"
	outcomeFailed         = "FAILED"
	insufficientInputNote = "Insufficient data"
)

// normalCDF is the standard normal cumulative distribution function,
// 0.5 * (1 + erf(z / sqrt(2))).
func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// twoTailedP returns the two-tailed p-value of a standard normal z.
func twoTailedP(z float64) float64 {
	return 2.0 * (1.0 - normalCDF(math.Abs(z)))
}

// simplifiedCriticalValue approximates the chi-square critical value as a
// multiple of the degrees of freedom. Levels other than 0.01 and 0.05 use
// the 0.10 multiplier.
func simplifiedCriticalValue(significance float64, dof int) float64 {
	switch significance {
	case 0.01:
		return float64(dof) * 1.5
	case 0.05:
		return float64(dof) * 1.3
	default:
		return float64(dof) * 1.2
	}
}

func outcome(passed bool) string {
	if passed {
		return outcomePassed
	}
	return outcomeFailed
}
