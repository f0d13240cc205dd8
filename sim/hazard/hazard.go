package hazard

import (
	"fmt"
	"math"
)

// LogNormalCutoff is the age beyond which the lognormal hazard is reported as zero.
const LogNormalCutoff = 70000.0

// Hazard returns the instantaneous transition rate for a sojourn of the given age.
// Implementations are pure and never return a negative rate.
type Hazard interface {
	Rate(age float64) float64
}

// Func adapts an ordinary function to the Hazard interface.
type Func func(age float64) float64

// Rate calls f(age).
func (f Func) Rate(age float64) float64 { return f(age) }

// Exponential is the memoryless hazard: a constant rate independent of age.
type Exponential struct {
	Lambda float64
}

// Rate returns Lambda for every age.
func (h Exponential) Rate(float64) float64 { return h.Lambda }

// String describes the hazard for reports.
func (h Exponential) String() string {
	return fmt.Sprintf("exponential(rate=%g)", h.Lambda)
}

// Deterministic fires with certainty when the age reaches Delay.
// The rate is 1/StepSize inside the half-step window around Delay and 0 elsewhere,
// so the per-step probability saturates at exactly the step that contains Delay.
type Deterministic struct {
	Delay    float64
	StepSize float64
}

// Rate returns 1/StepSize within half a step of Delay and 0 otherwise.
func (h Deterministic) Rate(age float64) float64 {
	if math.Abs(age-h.Delay) < h.StepSize/2 {
		return 1 / h.StepSize
	}
	return 0
}

// String describes the hazard for reports.
func (h Deterministic) String() string {
	return fmt.Sprintf("deterministic(at=%g)", h.Delay)
}

// Uniform is the hazard of a sojourn time uniformly distributed on [Min, Max).
type Uniform struct {
	Min, Max float64
}

// Rate returns 1/(Max-age) on [Min, Max) and 0 outside it.
func (h Uniform) Rate(age float64) float64 {
	if age >= h.Min && age < h.Max {
		return 1 / (h.Max - age)
	}
	return 0
}

// String describes the hazard for reports.
func (h Uniform) String() string {
	return fmt.Sprintf("uniform(a=%g, b=%g)", h.Min, h.Max)
}

// Weibull is the shifted Weibull hazard (shape/scale)*((age-offset)/scale)^(shape-1).
// Ages before Offset have zero hazard.
type Weibull struct {
	Scale  float64 // alpha
	Shape  float64 // beta
	Offset float64 // x0
}

// Rate evaluates the shifted Weibull hazard at age.
func (h Weibull) Rate(age float64) float64 {
	if age < h.Offset {
		return 0
	}
	return h.Shape / h.Scale * math.Pow((age-h.Offset)/h.Scale, h.Shape-1)
}

// String describes the hazard for reports.
func (h Weibull) String() string {
	return fmt.Sprintf("weibull(scale=%g, shape=%g, offset=%g)", h.Scale, h.Shape, h.Offset)
}

// Normal is the hazard pdf/(1-cdf) of a normally distributed sojourn time.
// Once the survival function underflows the rate is +Inf, meaning the transition
// is certain within the next step.
type Normal struct {
	Mean, StdDev float64
}

// Rate returns pdf/survival at age, or +Inf once survival underflows.
func (h Normal) Rate(age float64) float64 {
	s := normalSurvival(age, h.Mean, h.StdDev)
	if s <= 0 {
		return math.Inf(1)
	}
	return NormalPDF(age, h.Mean, h.StdDev) / s
}

// String describes the hazard for reports.
func (h Normal) String() string {
	return fmt.Sprintf("normal(mean=%g, stddev=%g)", h.Mean, h.StdDev)
}

// LogNormal is the hazard of a sojourn time whose logarithm is N(Mu, Sigma²).
// The rate is defined as 0 at age 0 and beyond LogNormalCutoff.
type LogNormal struct {
	Mu, Sigma float64
}

// Rate returns pdf/survival at age, 0 outside (0, LogNormalCutoff].
func (h LogNormal) Rate(age float64) float64 {
	if age <= 0 || age > LogNormalCutoff {
		return 0
	}
	s := logNormalSurvival(age, h.Mu, h.Sigma)
	if s <= 0 {
		return math.Inf(1)
	}
	return LogNormalPDF(age, h.Mu, h.Sigma) / s
}

// String describes the hazard for reports.
func (h LogNormal) String() string {
	return fmt.Sprintf("lognormal(mu=%g, sigma=%g)", h.Mu, h.Sigma)
}
