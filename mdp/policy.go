package mdp

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoActions is returned when a policy is asked to act in a state that
// has no applicable actions.
var ErrNoActions = errors.New("mdp: no applicable actions in state")

// ActionProb is one entry of a policy's action-selection distribution.
type ActionProb struct {
	Action      Action
	Probability Probability
}

// Policy selects an action for a state.
type Policy[S any] interface {
	Action(s S) (Action, error)
}

// EnumerablePolicy is a Policy that can enumerate its full action-selection
// distribution for a state. The probabilities sum to 1 over the supported
// actions; an empty slice means the policy supports no action there.
type EnumerablePolicy[S any] interface {
	Policy[S]
	ActionDistribution(s S) []ActionProb
}

// RandomPolicy selects uniformly among the applicable actions of a state.
type RandomPolicy[S any] struct {
	Model Model[S]
	Rng   *rand.Rand
}

func (p RandomPolicy[S]) Action(s S) (Action, error) {
	actions := p.Model.Actions(s)
	if len(actions) == 0 {
		return "", fmt.Errorf("%w: %v", ErrNoActions, s)
	}
	return actions[p.Rng.Intn(len(actions))], nil
}

func (p RandomPolicy[S]) ActionDistribution(s S) []ActionProb {
	actions := p.Model.Actions(s)
	dist := make([]ActionProb, 0, len(actions))
	for _, a := range actions {
		dist = append(dist, ActionProb{Action: a, Probability: Probability(1.0 / float64(len(actions)))})
	}
	return dist
}
