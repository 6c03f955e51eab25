package carousel

import (
	"fmt"
	"math"
)

// ResolveIndex returns the index of the center closest to target.
//
// The scan keeps the first index with the smallest distance, so ties
// resolve to the earliest slide. The centers need not be sorted. An empty
// slice yields ErrNoSlides; a NaN or infinite target yields
// ErrInvalidOffset.
func ResolveIndex(target float64, centers []float64) (int, error) {
	if len(centers) == 0 {
		return -1, ErrNoSlides
	}
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return -1, fmt.Errorf("%w: %v", ErrInvalidOffset, target)
	}

	best := -1
	bestDelta := math.Inf(1)
	for i, c := range centers {
		delta := math.Abs(c - target)
		if delta < bestDelta {
			best = i
			bestDelta = delta
		}
	}

	// All centers NaN: no candidate ever improved.
	if best < 0 {
		return -1, ErrNoSlides
	}
	return best, nil
}
