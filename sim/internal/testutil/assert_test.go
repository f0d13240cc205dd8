package testutil

import "testing"

func TestAssertFloat64Equal_WithinTolerance(t *testing.T) {
	AssertFloat64Equal(t, "exact", 1.0, 1.0, 0)
	AssertFloat64Equal(t, "zero", 0, 0, 0)
	AssertFloat64Equal(t, "close", 100.0, 100.0001, 1e-5)
}

func TestAssertSumsTo_WithinTolerance(t *testing.T) {
	AssertSumsTo(t, "halves", []float64{0.25, 0.25, 0.5}, 1.0, 1e-15)
	AssertSumsTo(t, "empty", nil, 0, 0)
}

func TestAssertProbability_AcceptsUnitInterval(t *testing.T) {
	for _, v := range []float64{0, 0.5, 1, 1 + 1e-13} {
		AssertProbability(t, "v", v, 1e-12)
	}
}
