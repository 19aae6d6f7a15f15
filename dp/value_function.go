package dp

import "github.com/CodeStranger-Fred/mdplan/mdp"

// valueEntry pairs a stored value with the raw state it belongs to, so
// Bellman backups can hand the state back to the model.
type valueEntry[S any] struct {
	state S
	value float64
}

// valueFunction is the planner's value table. A key is present iff the
// state was discovered by reachability and is non-terminal; terminal states
// have implicit value 0 and are never stored. Reachability inserts,
// evaluation updates in place, and only reset removes.
type valueFunction[S any] struct {
	entries map[mdp.StateKey]*valueEntry[S]
}

func newValueFunction[S any]() *valueFunction[S] {
	return &valueFunction[S]{entries: make(map[mdp.StateKey]*valueEntry[S])}
}

// get returns the stored value, or 0 for absent keys (terminal or
// undiscovered states).
func (vf *valueFunction[S]) get(key mdp.StateKey) float64 {
	if e, ok := vf.entries[key]; ok {
		return e.value
	}
	return 0
}

func (vf *valueFunction[S]) put(key mdp.StateKey, s S, value float64) {
	vf.entries[key] = &valueEntry[S]{state: s, value: value}
}

func (vf *valueFunction[S]) contains(key mdp.StateKey) bool {
	_, ok := vf.entries[key]
	return ok
}

func (vf *valueFunction[S]) keys() []mdp.StateKey {
	keys := make([]mdp.StateKey, 0, len(vf.entries))
	for k := range vf.entries {
		keys = append(keys, k)
	}
	return keys
}

func (vf *valueFunction[S]) len() int { return len(vf.entries) }

func (vf *valueFunction[S]) reset() {
	vf.entries = make(map[mdp.StateKey]*valueEntry[S])
}

// snapshot copies the current values, dropping the raw states.
func (vf *valueFunction[S]) snapshot() map[mdp.StateKey]float64 {
	values := make(map[mdp.StateKey]float64, len(vf.entries))
	for k, e := range vf.entries {
		values[k] = e.value
	}
	return values
}
