package mdp

import "fmt"

// StateKey is the canonical, hashable identity of a state. Two states that
// map to the same key are the same state as far as value functions and
// policies are concerned.
type StateKey string

// Keyer canonicalizes raw domain states into StateKeys. Implementations
// must be pure: the same semantic state always yields the same key.
type Keyer[S any] interface {
	Key(s S) StateKey
}

// KeyerFunc adapts a plain function to the Keyer interface.
type KeyerFunc[S any] func(s S) StateKey

func (f KeyerFunc[S]) Key(s S) StateKey { return f(s) }

// StringerKeyer keys states by their String representation. Suitable for
// domains whose String output is already canonical.
type StringerKeyer[S fmt.Stringer] struct{}

func (StringerKeyer[S]) Key(s S) StateKey { return StateKey(s.String()) }
