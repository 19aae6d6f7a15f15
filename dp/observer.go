package dp

import "github.com/CodeStranger-Fred/mdplan/mdp"

// Observer is notified after every completed policy-evaluation pass with a
// greedy policy over the freshly updated value function, the number of
// sweeps the pass performed, and the delta of the final sweep.
//
// Observers run synchronously on the planning goroutine, in registration
// order, and must not call back into the planner.
type Observer[S any] interface {
	OnEvaluationSweep(policy mdp.EnumerablePolicy[S], sweeps int, delta float64)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc[S any] func(policy mdp.EnumerablePolicy[S], sweeps int, delta float64)

func (f ObserverFunc[S]) OnEvaluationSweep(policy mdp.EnumerablePolicy[S], sweeps int, delta float64) {
	f(policy, sweeps, delta)
}
