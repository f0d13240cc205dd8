// Package testutil provides assertion helpers shared by the sim test packages.
package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertSumsTo checks that values add up to want within an absolute tolerance.
func AssertSumsTo(t *testing.T, name string, values []float64, want, absTol float64) {
	t.Helper()
	got := floats.Sum(values)
	if math.Abs(got-want) > absTol {
		t.Errorf("%s: sum %v, want %v (diff=%v, tol=%v)", name, got, want, math.Abs(got-want), absTol)
	}
}

// AssertProbability checks that v is a finite value in [0, 1+absTol].
func AssertProbability(t *testing.T, name string, v, absTol float64) {
	t.Helper()
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 1+absTol {
		t.Errorf("%s: %v is not a probability", name, v)
	}
}
