package hazard

import "math"

const (
	// gammaEps is the relative tolerance at which the series and continued
	// fraction expansions stop.
	gammaEps = 1e-7
	// gammaMaxIter caps both expansions.
	gammaMaxIter = 100
	// gammaFPMin guards the modified Lentz recursion against division by zero.
	gammaFPMin = 1e-300
)

// GammaP returns the regularized lower incomplete gamma function P(a, x).
// It evaluates the series expansion when x < a+1 and the continued fraction
// for Q(a, x) = 1 - P(a, x) otherwise.
func GammaP(a, x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x < a+1 {
		return gammaSeries(a, x)
	}
	return 1 - gammaContinuedFraction(a, x)
}

// GammaQ returns the regularized upper incomplete gamma function Q(a, x) = 1 - P(a, x).
// For large x it is computed directly from the continued fraction, which keeps the
// tail accurate where 1-P would cancel to zero.
func GammaQ(a, x float64) float64 {
	if x <= 0 {
		return 1
	}
	if x < a+1 {
		return 1 - gammaSeries(a, x)
	}
	return gammaContinuedFraction(a, x)
}

// gammaPrefactor returns exp(-x + a*ln(x) - ln(Gamma(a))).
func gammaPrefactor(a, x float64) float64 {
	lg, _ := math.Lgamma(a)
	return math.Exp(-x + a*math.Log(x) - lg)
}

func gammaSeries(a, x float64) float64 {
	ap := a
	sum := 1.0 / a
	del := sum
	for n := 1; n <= gammaMaxIter; n++ {
		ap++
		del *= x / ap
		sum += del
		if math.Abs(del) < math.Abs(sum)*gammaEps {
			break
		}
	}
	return sum * gammaPrefactor(a, x)
}

// gammaContinuedFraction evaluates Q(a, x) with the modified Lentz method.
func gammaContinuedFraction(a, x float64) float64 {
	b := x + 1 - a
	c := 1 / gammaFPMin
	d := 1 / b
	h := d
	for i := 1; i <= gammaMaxIter; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < gammaFPMin {
			d = gammaFPMin
		}
		c = b + an/c
		if math.Abs(c) < gammaFPMin {
			c = gammaFPMin
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < gammaEps {
			break
		}
	}
	return gammaPrefactor(a, x) * h
}

// NormalPDF returns the density of N(mean, stddev²) at x.
func NormalPDF(x, mean, stddev float64) float64 {
	z := (x - mean) / stddev
	return math.Exp(-z*z/2) / (math.Sqrt(2*math.Pi) * stddev)
}

// NormalCDF returns P(X <= x) for X ~ N(mean, stddev²), using
// Phi(z) = 1/2 + sign(z)/2 * P(1/2, z²/2).
func NormalCDF(x, mean, stddev float64) float64 {
	z := (x - mean) / stddev
	p := GammaP(0.5, z*z/2)
	if z >= 0 {
		return 0.5 + 0.5*p
	}
	return 0.5 - 0.5*p
}

// normalSurvival returns 1 - NormalCDF without cancellation in the upper tail.
func normalSurvival(x, mean, stddev float64) float64 {
	z := (x - mean) / stddev
	if z >= 0 {
		return 0.5 * GammaQ(0.5, z*z/2)
	}
	return 0.5 + 0.5*GammaP(0.5, z*z/2)
}

// LogNormalPDF returns the density at x of a lognormal whose logarithm is N(mu, sigma²).
func LogNormalPDF(x, mu, sigma float64) float64 {
	if x <= 0 {
		return 0
	}
	z := (math.Log(x) - mu) / sigma
	return math.Exp(-z*z/2) / (x * math.Sqrt(2*math.Pi) * sigma)
}

// LogNormalCDF returns P(X <= x) for a lognormal whose logarithm is N(mu, sigma²).
func LogNormalCDF(x, mu, sigma float64) float64 {
	if x <= 0 {
		return 0
	}
	return NormalCDF(math.Log(x), mu, sigma)
}

func logNormalSurvival(x, mu, sigma float64) float64 {
	if x <= 0 {
		return 1
	}
	return normalSurvival(math.Log(x), mu, sigma)
}
