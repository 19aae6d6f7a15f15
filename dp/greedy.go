package dp

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/CodeStranger-Fred/mdplan/mdp"
)

// qTolerance bounds the floating-point slack when deciding whether two
// action values tie for the maximum.
const qTolerance = 1e-9

// GreedyPolicy selects the action with the highest Q-value at each state,
// breaking ties uniformly at random. It computes everything lazily from its
// QSource, so it always reflects that source's current values.
type GreedyPolicy[S any] struct {
	source QSource[S]
	rng    *rand.Rand
}

// NewGreedyPolicy returns a greedy policy over src. rng is used only for
// tie-breaking.
func NewGreedyPolicy[S any](src QSource[S], rng *rand.Rand) *GreedyPolicy[S] {
	return &GreedyPolicy[S]{source: src, rng: rng}
}

// maxima returns every action whose Q-value ties the maximum.
func (g *GreedyPolicy[S]) maxima(s S) []QValue {
	qs := g.source.QValues(s)
	if len(qs) == 0 {
		return nil
	}
	best := math.Inf(-1)
	for _, q := range qs {
		if q.Value > best {
			best = q.Value
		}
	}
	var ties []QValue
	for _, q := range qs {
		if best-q.Value < qTolerance {
			ties = append(ties, q)
		}
	}
	return ties
}

func (g *GreedyPolicy[S]) Action(s S) (mdp.Action, error) {
	ties := g.maxima(s)
	if len(ties) == 0 {
		return "", fmt.Errorf("%w: %v", mdp.ErrNoActions, s)
	}
	return ties[g.rng.Intn(len(ties))].Action, nil
}

func (g *GreedyPolicy[S]) ActionDistribution(s S) []mdp.ActionProb {
	ties := g.maxima(s)
	dist := make([]mdp.ActionProb, 0, len(ties))
	for _, q := range ties {
		dist = append(dist, mdp.ActionProb{Action: q.Action, Probability: mdp.Probability(1.0 / float64(len(ties)))})
	}
	return dist
}
