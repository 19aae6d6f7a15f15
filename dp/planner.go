// Package dp implements a generalized policy-iteration planner for tabular
// MDPs: breadth-first discovery of the reachable state space, iterative
// fixed-policy value evaluation, and greedy policy improvement, alternated
// until the policy-level change falls below a threshold.
//
// The inner and outer iteration caps make both extremes of the
// evaluation/improvement trade-off reachable: MaxEvalIterations = 1 yields
// value iteration, a very large cap yields classic policy iteration.
package dp

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"

	"github.com/CodeStranger-Fred/mdplan/mdp"
)

// Config carries the collaborators and thresholds of a Planner.
type Config[S any] struct {
	// Model supplies dynamics. It must implement mdp.FullModel[S]; a
	// sampling-only model is rejected by New with ErrNonStochasticModel.
	Model mdp.Model[S]

	// Keyer canonicalizes states for value-function lookups.
	Keyer mdp.Keyer[S]

	// Init seeds newly discovered states. Nil seeds everything with 0.
	Init mdp.ValueInitializer[S]

	// Gamma is the discount factor, in [0, 1].
	Gamma float64

	// MaxEvalDelta stops an evaluation pass once the largest per-state
	// change within a sweep falls below it.
	MaxEvalDelta float64

	// MaxPIDelta stops planning once the change reported by a full
	// evaluation pass falls below it. Zero defaults to MaxEvalDelta.
	MaxPIDelta float64

	// MaxEvalIterations caps the sweeps of one evaluation pass.
	MaxEvalIterations int

	// MaxPolicyIterations caps the outer evaluate/improve iterations.
	MaxPolicyIterations int

	// Rng drives tie-breaking in greedy policies. Nil gets a fresh
	// time-seeded source.
	Rng *rand.Rand

	// Logger receives debug-level progress messages. Nil discards them.
	Logger *slog.Logger
}

// Planner computes a greedy policy for an MDP by modified policy
// iteration. Not safe for concurrent use; callers must serialize access,
// including observer callbacks.
type Planner[S any] struct {
	model mdp.FullModel[S]
	keyer mdp.Keyer[S]
	init  mdp.ValueInitializer[S]

	gamma               float64
	maxEvalDelta        float64
	maxPIDelta          float64
	maxEvalIterations   int
	maxPolicyIterations int

	values           *valueFunction[S]
	evaluativePolicy mdp.EnumerablePolicy[S]

	foundReachableStates bool
	hasRunPlanning       bool

	totalPolicyIterations int
	totalValueIterations  int

	observers []Observer[S]
	rng       *rand.Rand
	logger    *slog.Logger
}

// New validates cfg and returns a ready Planner. The initial evaluative
// policy is a greedy policy over the (empty) value function; callers may
// replace it with SetPolicyToEvaluate before the first plan.
func New[S any](cfg Config[S]) (*Planner[S], error) {
	if cfg.Model == nil {
		return nil, fmt.Errorf("dp: nil model")
	}
	full, ok := cfg.Model.(mdp.FullModel[S])
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNonStochasticModel, cfg.Model)
	}
	if cfg.Keyer == nil {
		return nil, fmt.Errorf("dp: nil keyer")
	}
	if cfg.Gamma < 0 || cfg.Gamma > 1 {
		return nil, fmt.Errorf("dp: gamma %v outside [0, 1]", cfg.Gamma)
	}
	if cfg.MaxEvalIterations <= 0 {
		return nil, fmt.Errorf("dp: MaxEvalIterations must be positive, got %d", cfg.MaxEvalIterations)
	}
	if cfg.MaxPolicyIterations <= 0 {
		return nil, fmt.Errorf("dp: MaxPolicyIterations must be positive, got %d", cfg.MaxPolicyIterations)
	}
	init := cfg.Init
	if init == nil {
		init = mdp.ConstantInitializer[S]{}
	}
	maxPIDelta := cfg.MaxPIDelta
	if maxPIDelta == 0 {
		maxPIDelta = cfg.MaxEvalDelta
	}
	rng := cfg.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}

	p := &Planner[S]{
		model:               full,
		keyer:               cfg.Keyer,
		init:                init,
		gamma:               cfg.Gamma,
		maxEvalDelta:        cfg.MaxEvalDelta,
		maxPIDelta:          maxPIDelta,
		maxEvalIterations:   cfg.MaxEvalIterations,
		maxPolicyIterations: cfg.MaxPolicyIterations,
		values:              newValueFunction[S](),
		rng:                 rng,
		logger:              logger,
	}
	// Greedy over a frozen (empty) table: the first evaluation pass runs
	// against a fixed policy, same as every later pass.
	p.evaluativePolicy = p.frozenGreedy()
	return p, nil
}

// SetPolicyToEvaluate sets the policy evaluated when planning begins.
// After the first improvement step the evaluative policy is always a greedy
// policy over the latest value function.
func (p *Planner[S]) SetPolicyToEvaluate(pol mdp.EnumerablePolicy[S]) {
	p.evaluativePolicy = pol
}

// ComputedPolicy returns the last computed policy, or the initial
// evaluative policy if planning has not run.
func (p *Planner[S]) ComputedPolicy() mdp.EnumerablePolicy[S] {
	return p.evaluativePolicy
}

// AddObserver registers an observer for evaluation-pass notifications.
func (p *Planner[S]) AddObserver(o Observer[S]) {
	p.observers = append(p.observers, o)
}

// RecomputeReachableStates forces the next PlanFromState call to re-run
// reachability analysis. Use after the model's dynamics have changed.
func (p *Planner[S]) RecomputeReachableStates() {
	p.foundReachableStates = false
}

// TotalPolicyIterations reports the outer iterations accumulated across
// all planning calls since the last reset.
func (p *Planner[S]) TotalPolicyIterations() int { return p.totalPolicyIterations }

// TotalValueIterations reports the evaluation sweeps accumulated across
// all planning calls since the last reset.
func (p *Planner[S]) TotalValueIterations() int { return p.totalValueIterations }

// StateCount reports the number of discovered non-terminal states.
func (p *Planner[S]) StateCount() int { return p.values.len() }

// StateKeys returns the keys of all discovered non-terminal states.
func (p *Planner[S]) StateKeys() []mdp.StateKey { return p.values.keys() }

// Value returns the current value estimate of s: the stored value for a
// discovered state, 0 for terminal or undiscovered states.
func (p *Planner[S]) Value(s S) float64 {
	return p.values.get(p.keyer.Key(s))
}

// QValue computes the one-step lookahead value of action a in state s from
// the current value function. Nothing is cached.
func (p *Planner[S]) QValue(s S, a mdp.Action) float64 {
	return qValue(p.model, p.keyer, p.gamma, p.values.get, s, a)
}

// QValues computes the Q-value of every applicable action in s.
func (p *Planner[S]) QValues(s S) []QValue {
	return qValues(p.model, p.keyer, p.gamma, p.values.get, s)
}

// PlanFromState plans from the given initial state and returns a greedy
// policy over the converged value function, ties broken uniformly at
// random. Once converged, repeated calls with the same state and an
// unchanged model are no-ops returning the same policy.
func (p *Planner[S]) PlanFromState(s S) (*GreedyPolicy[S], error) {
	iterations := 0
	if p.PerformReachabilityFrom(s) || !p.hasRunPlanning {
		for {
			delta, err := p.EvaluatePolicy()
			if err != nil {
				return nil, err
			}
			iterations++
			p.evaluativePolicy = p.frozenGreedy()
			p.logger.Debug("policy iteration", "iteration", iterations, "delta", delta)
			if delta <= p.maxPIDelta || iterations >= p.maxPolicyIterations {
				break
			}
		}
		p.hasRunPlanning = true
	}
	p.logger.Debug("planning complete", "policyIterations", iterations)
	p.totalPolicyIterations += iterations

	if greedy, ok := p.evaluativePolicy.(*GreedyPolicy[S]); ok {
		return greedy, nil
	}
	// A caller-supplied evaluative policy was never improved on (planning
	// skipped); hand back a greedy view of the current values instead.
	return NewGreedyPolicy[S](p, p.rng), nil
}

// EvaluatePolicy runs value-evaluation sweeps of the current evaluative
// policy over every discovered state until the largest per-state change in
// a sweep drops below MaxEvalDelta or MaxEvalIterations sweeps have run.
// It returns the largest change observed across all sweeps performed,
// which the outer loop uses as its convergence signal.
//
// Sweeps update the table in place, so backups later in a sweep see values
// already updated earlier in the same sweep (Gauss-Seidel). This speeds
// convergence without changing the fixed point.
func (p *Planner[S]) EvaluatePolicy() (float64, error) {
	if !p.foundReachableStates {
		return 0, ErrUnreadyPlanner
	}

	maxChange := 0.0
	lastDelta := 0.0
	sweeps := 0
	for i := 0; i < p.maxEvalIterations; i++ {
		delta := 0.0
		for _, e := range p.values.entries {
			dist := p.evaluativePolicy.ActionDistribution(e.state)
			if len(dist) == 0 {
				// No applicable actions: the state keeps its value.
				continue
			}
			old := e.value
			updated := 0.0
			for _, ap := range dist {
				updated += float64(ap.Probability) * qValue(p.model, p.keyer, p.gamma, p.values.get, e.state, ap.Action)
			}
			e.value = updated
			delta = math.Max(math.Abs(updated-old), delta)
		}
		sweeps++
		lastDelta = delta
		maxChange = math.Max(delta, maxChange)
		if delta < p.maxEvalDelta {
			break
		}
	}
	p.logger.Debug("policy evaluation", "sweeps", sweeps, "delta", lastDelta)

	snapshot := NewGreedyPolicy[S](p, p.rng)
	for _, o := range p.observers {
		o.OnEvaluationSweep(snapshot, sweeps, lastDelta)
	}

	p.totalValueIterations += sweeps
	return maxChange, nil
}

// PerformReachabilityFrom discovers every state reachable from s under the
// current model and seeds it in the value function. It returns true if a
// traversal was performed, false if s is already known and the reachable
// set is up to date.
//
// Termination requires a finite reachable state space; on an unbounded
// space this does not return.
func (p *Planner[S]) PerformReachabilityFrom(s S) bool {
	key := p.keyer.Key(s)
	if p.values.contains(key) && p.foundReachableStates {
		return false
	}

	p.logger.Debug("starting reachability analysis", "from", key)

	type node struct {
		key   mdp.StateKey
		state S
	}
	frontier := []node{{key: key, state: s}}
	seen := map[mdp.StateKey]struct{}{key: {}}

	for len(frontier) > 0 {
		n := frontier[0]
		frontier = frontier[1:]

		// Already expanded on an earlier traversal.
		if p.values.contains(n.key) {
			continue
		}
		// Terminal states are never stored or expanded.
		if p.model.Terminal(n.state) {
			continue
		}

		p.values.put(n.key, n.state, p.init.InitialValue(n.state))

		for _, a := range p.model.Actions(n.state) {
			for _, tr := range p.model.Transitions(n.state, a) {
				tk := p.keyer.Key(tr.State)
				if _, ok := seen[tk]; ok {
					continue
				}
				if p.values.contains(tk) {
					continue
				}
				seen[tk] = struct{}{}
				frontier = append(frontier, node{key: tk, state: tr.State})
			}
		}
	}

	p.logger.Debug("finished reachability analysis", "states", p.values.len())
	p.foundReachableStates = true
	return true
}

// ResetSolver clears the value function, the reachable-set flag, and both
// iteration counters. The evaluative policy reference is kept; a re-plan
// rebuilds values from scratch under it.
func (p *Planner[S]) ResetSolver() {
	p.values.reset()
	p.foundReachableStates = false
	p.hasRunPlanning = false
	p.totalPolicyIterations = 0
	p.totalValueIterations = 0
}

// frozenGreedy builds the next evaluative policy: greedy over a frozen
// copy of the current values, so it stays fixed while subsequent sweeps
// rewrite the live table.
func (p *Planner[S]) frozenGreedy() *GreedyPolicy[S] {
	src := &valueSnapshot[S]{
		model:  p.model,
		keyer:  p.keyer,
		gamma:  p.gamma,
		values: p.values.snapshot(),
	}
	return NewGreedyPolicy[S](src, p.rng)
}
