package dp

import "github.com/CodeStranger-Fred/mdplan/mdp"

// QValue is an action paired with its one-step lookahead value.
type QValue struct {
	Action mdp.Action
	Value  float64
}

// QSource computes action values for a state on demand. The planner and
// frozen value snapshots both implement it; GreedyPolicy acts on either.
type QSource[S any] interface {
	QValues(s S) []QValue
}

// qValue computes reward plus discounted expectation over successor values
// for one action. lookup resolves a successor key to its current value;
// absent keys (terminal or undiscovered states) resolve to 0.
func qValue[S any](m mdp.FullModel[S], keyer mdp.Keyer[S], gamma float64, lookup func(mdp.StateKey) float64, s S, a mdp.Action) float64 {
	var q float64
	for _, tr := range m.Transitions(s, a) {
		q += float64(tr.Probability) * (float64(tr.Reward) + gamma*lookup(keyer.Key(tr.State)))
	}
	return q
}

func qValues[S any](m mdp.FullModel[S], keyer mdp.Keyer[S], gamma float64, lookup func(mdp.StateKey) float64, s S) []QValue {
	actions := m.Actions(s)
	qs := make([]QValue, 0, len(actions))
	for _, a := range actions {
		qs = append(qs, QValue{Action: a, Value: qValue(m, keyer, gamma, lookup, s, a)})
	}
	return qs
}

// valueSnapshot is a frozen copy of the value function, used as the Q
// source of the evaluative policy so that the policy stays fixed while the
// live table is updated underneath it.
type valueSnapshot[S any] struct {
	model  mdp.FullModel[S]
	keyer  mdp.Keyer[S]
	gamma  float64
	values map[mdp.StateKey]float64
}

func (vs *valueSnapshot[S]) QValues(s S) []QValue {
	return qValues(vs.model, vs.keyer, vs.gamma, func(k mdp.StateKey) float64 { return vs.values[k] }, s)
}
