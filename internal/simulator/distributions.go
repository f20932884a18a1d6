package simulator

import (
	"math"
	"math/rand"
)

// below this mean the multiplication method is cheap enough
const poissonSmallMean = 30.0

// poisson draws from Poisson(lambda). A non-positive or non-finite mean yields 0.
func poisson(rng *rand.Rand, lambda float64) int {
	if !(lambda > 0) || math.IsInf(lambda, 1) {
		return 0
	}
	if lambda < poissonSmallMean {
		// Knuth: count uniforms until their product drops below e^-lambda
		limit := math.Exp(-lambda)
		k := 0
		p := rng.Float64()
		for p > limit {
			k++
			p *= rng.Float64()
		}
		return k
	}
	return poissonPTRS(rng, lambda)
}

// poissonPTRS is Hörmann's transformed rejection with squeeze, used for large means.
func poissonPTRS(rng *rand.Rand, lambda float64) int {
	slam := math.Sqrt(lambda)
	loglam := math.Log(lambda)
	b := 0.931 + 2.53*slam
	a := -0.059 + 0.02483*b
	invalpha := 1.1239 + 1.1328/(b-3.4)
	vr := 0.9277 - 3.6224/(b-2)

	for {
		u := rng.Float64() - 0.5
		v := rng.Float64()
		us := 0.5 - math.Abs(u)
		k := math.Floor((2*a/us+b)*u + lambda + 0.43)
		if us >= 0.07 && v <= vr {
			return int(k)
		}
		if k < 0 || (us < 0.013 && v > us) {
			continue
		}
		lg, _ := math.Lgamma(k + 1)
		if math.Log(v)+math.Log(invalpha)-math.Log(a/(us*us)+b) <= -lambda+k*loglam-lg {
			return int(k)
		}
	}
}

// normal draws from N(mean, std) with the Box-Muller transform.
func normal(rng *rand.Rand, mean, std float64) float64 {
	u1 := 1 - rng.Float64() // (0, 1], keeps the log finite
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return mean + z*std
}

// weightedIndex picks an index with probability proportional to its weight. It returns
// -1 when the weights do not sum to a positive value.
func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if !(total > 0) {
		return -1
	}

	randValue := rng.Float64() * total
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		last = i
		if randValue < cumulative {
			return i
		}
	}
	// rounding left randValue past the final bucket
	return last
}

// categorical draws a key using probabilities taken as given, without renormalising.
// Keys are walked in the supplied order; if the probabilities fall short of 1 the
// remaining mass goes to the last key with a positive probability (or the last key when
// none has one). Missing keys have probability 0.
func categorical(rng *rand.Rand, keys []string, probs map[string]float64) string {
	if len(keys) == 0 {
		return ""
	}
	r := rng.Float64()
	cumulative := 0.0
	fallback := keys[len(keys)-1]
	for i := len(keys) - 1; i >= 0; i-- {
		if probs[keys[i]] > 0 {
			fallback = keys[i]
			break
		}
	}
	for _, k := range keys {
		cumulative += probs[k]
		if r < cumulative {
			return k
		}
	}
	return fallback
}

// uniformInt draws an integer from the inclusive range [min, max].
func uniformInt(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}
