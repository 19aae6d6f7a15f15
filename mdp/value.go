package mdp

// ValueInitializer seeds the value of a newly discovered state.
type ValueInitializer[S any] interface {
	InitialValue(s S) float64
}

// ConstantInitializer seeds every state with the same value. The zero value
// seeds everything with 0.
type ConstantInitializer[S any] struct {
	Value float64
}

func (c ConstantInitializer[S]) InitialValue(S) float64 { return c.Value }
