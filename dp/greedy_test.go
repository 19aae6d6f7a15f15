package dp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStranger-Fred/mdplan/mdp"
)

// fixedQSource serves canned Q-values regardless of state.
type fixedQSource struct {
	qs []QValue
}

func (f fixedQSource) QValues(string) []QValue { return f.qs }

func TestGreedyBreaksTiesUniformly(t *testing.T) {
	src := fixedQSource{qs: []QValue{
		{Action: "a", Value: 1.0},
		{Action: "b", Value: 1.0},
		{Action: "c", Value: 0.5},
	}}
	g := NewGreedyPolicy[string](src, rand.New(rand.NewSource(42)))

	counts := map[mdp.Action]int{}
	for i := 0; i < 1000; i++ {
		a, err := g.Action("s")
		require.NoError(t, err)
		counts[a]++
	}
	assert.Zero(t, counts["c"], "a dominated action is never selected")
	assert.Greater(t, counts["a"], 400)
	assert.Greater(t, counts["b"], 400)
}

func TestGreedyDistributionSpreadsOverTies(t *testing.T) {
	src := fixedQSource{qs: []QValue{
		{Action: "a", Value: 2.0},
		{Action: "b", Value: 2.0},
		{Action: "c", Value: 1.0},
	}}
	g := NewGreedyPolicy[string](src, rand.New(rand.NewSource(42)))

	dist := g.ActionDistribution("s")
	require.Len(t, dist, 2)
	for _, ap := range dist {
		assert.NotEqual(t, mdp.Action("c"), ap.Action)
		assert.InDelta(t, 0.5, float64(ap.Probability), 1e-12)
	}
}

func TestGreedyToleratesFloatNoise(t *testing.T) {
	src := fixedQSource{qs: []QValue{
		{Action: "a", Value: 1.0},
		{Action: "b", Value: 1.0 - 1e-12},
	}}
	g := NewGreedyPolicy[string](src, rand.New(rand.NewSource(42)))
	assert.Len(t, g.ActionDistribution("s"), 2, "values within tolerance tie")
}

func TestGreedyNoActions(t *testing.T) {
	g := NewGreedyPolicy[string](fixedQSource{}, rand.New(rand.NewSource(42)))
	_, err := g.Action("s")
	assert.ErrorIs(t, err, mdp.ErrNoActions)
	assert.Empty(t, g.ActionDistribution("s"))
}
