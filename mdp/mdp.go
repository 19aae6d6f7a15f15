// Package mdp defines the vocabulary of tabular Markov decision processes:
// actions, rewards, probability distributions, transition models, state
// keying and policies. The dp package builds the planner on top of these.
package mdp

// Action is a domain-level action label.
type Action string

// Reward is an immediate scalar reward.
type Reward float64

// Probability is a probability mass in [0, 1].
type Probability float64

// Transition is a single outcome of taking an action in a state: the
// successor state, the probability of reaching it, and the expected
// immediate reward along that outcome.
type Transition[S any] struct {
	Probability Probability
	State       S
	Reward      Reward
}

// Model answers the structural questions about an MDP: which states are
// terminal and which actions apply in a state.
type Model[S any] interface {
	Terminal(s S) bool
	Actions(s S) []Action
}

// FullModel is a Model that can enumerate the complete outcome
// distribution of every (state, action) pair. The probabilities over the
// returned outcomes must sum to 1. Exact dynamic programming requires a
// FullModel; a sampling-only model cannot be planned over.
type FullModel[S any] interface {
	Model[S]
	Transitions(s S, a Action) []Transition[S]
}
