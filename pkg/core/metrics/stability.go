package metrics

import (
	"math"
)

// Caps applied to the stability score by trailing-period count. With a single
// observation there is no variation information, so the score cannot exceed
// the one-period cap however smooth the flow looks.
var stabilityCaps = []float64{0, 50, 70, 85}

// stability scores cash flow steadiness on 0-100 from the coefficient of
// variation of the trailing flows. Higher = steadier. A non-positive mean
// (the business consumes cash on average) pins the score to the floor band.
func stability(flows []float64) *float64 {
	n := len(flows)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, f := range flows {
		mean += f
	}
	mean /= float64(n)

	if mean <= 0 {
		v := 20.0
		return &v
	}

	variance := 0.0
	for _, f := range flows {
		d := f - mean
		variance += d * d
	}
	variance /= float64(n)
	cv := math.Sqrt(variance) / mean

	score := 100 - 100*cv
	if score < 0 {
		score = 0
	}
	if limit := stabilityCap(n); score > limit {
		score = limit
	}
	return &score
}

func stabilityCap(n int) float64 {
	if n < len(stabilityCaps) {
		return stabilityCaps[n]
	}
	return 100
}
