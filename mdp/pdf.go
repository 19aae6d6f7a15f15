package mdp

import (
	"fmt"
	"math"
	"math/rand"
)

// DiscretePdf is a probability mass function over a finite set of outcomes.
type DiscretePdf[C comparable] map[C]Probability

// Add accumulates probability mass on an outcome, allocating the map on
// first use. Useful when distinct action effects collapse onto the same
// successor (e.g. wind pushing into a wall).
func Add[C comparable](pdf *DiscretePdf[C], outcome C, p Probability) {
	if *pdf == nil {
		*pdf = make(DiscretePdf[C])
	}
	(*pdf)[outcome] += p
}

// Check verifies the masses sum to 1 within tolerance.
func (p DiscretePdf[C]) Check() error {
	sum := 0.0
	for _, prob := range p {
		sum += float64(prob)
	}
	if math.Abs(sum-1) > 1e-3 {
		return fmt.Errorf("probabilities sum to %v, not 1", sum)
	}
	return nil
}

// Choose samples an outcome.
func (p DiscretePdf[C]) Choose(rng *rand.Rand) C {
	v := rng.Float64()
	cumulative := 0.0
	var last C
	for outcome, prob := range p {
		cumulative += float64(prob)
		if cumulative >= v {
			return outcome
		}
		last = outcome
	}
	return last
}
