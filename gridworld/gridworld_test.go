package gridworld

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStranger-Fred/mdplan/dp"
	"github.com/CodeStranger-Fred/mdplan/mdp"
)

func windyWorld(t *testing.T) *World {
	t.Helper()
	w, err := New(Config{
		Rows:       4,
		Cols:       4,
		Start:      Cell{Row: 3, Col: 0},
		Goal:       Cell{Row: 0, Col: 3},
		Wind:       []int{0, 1, 1, 0},
		WindProbs:  [3]float64{0.8, 0.1, 0.1},
		StepReward: -1,
	})
	require.NoError(t, err)
	return w
}

func TestTransitionsSumToOne(t *testing.T) {
	w := windyWorld(t)
	for r := 0; r < w.Rows(); r++ {
		for c := 0; c < w.Cols(); c++ {
			cell := Cell{Row: r, Col: c}
			for _, a := range w.Actions(cell) {
				var pdf mdp.DiscretePdf[Cell]
				for _, tr := range w.Transitions(cell, a) {
					mdp.Add(&pdf, tr.State, tr.Probability)
				}
				assert.NoError(t, pdf.Check(), "cell %v action %s", cell, a)
			}
		}
	}
}

func TestGoalIsTerminal(t *testing.T) {
	w := windyWorld(t)
	assert.True(t, w.Terminal(w.Goal()))
	assert.Empty(t, w.Actions(w.Goal()))
	assert.False(t, w.Terminal(w.Start()))
}

func TestWallsMergeOutcomes(t *testing.T) {
	// In the top row, wind pushes of 0/1/2 all clip to the same cell, so
	// the deterministic move must come back as a single outcome.
	w := windyWorld(t)
	trs := w.Transitions(Cell{Row: 0, Col: 0}, Right)
	require.Len(t, trs, 1)
	assert.Equal(t, Cell{Row: 0, Col: 1}, trs[0].State)
	assert.InDelta(t, 1.0, float64(trs[0].Probability), 1e-12)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
rows: 2
cols: 3
start: {row: 1, col: 0}
goal: {row: 0, col: 2}
`))
	require.NoError(t, err)
	assert.Equal(t, -1.0, cfg.StepReward, "step reward defaults to -1")
	assert.Equal(t, []int{0, 0, 0}, cfg.Wind, "wind defaults to calm")
	assert.Equal(t, [3]float64{1, 0, 0}, cfg.WindProbs, "wind defaults to deterministic")
}

func TestConfigValidation(t *testing.T) {
	base := func() Config {
		return Config{
			Rows:      2,
			Cols:      2,
			Goal:      Cell{Row: 1, Col: 1},
			Wind:      []int{0, 0},
			WindProbs: [3]float64{1, 0, 0},
		}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"wind length mismatch", func(c *Config) { c.Wind = []int{0} }},
		{"probs not summing to 1", func(c *Config) { c.WindProbs = [3]float64{0.5, 0.1, 0.1} }},
		{"negative prob", func(c *Config) { c.WindProbs = [3]float64{1.5, -0.5, 0} }},
		{"goal off grid", func(c *Config) { c.Goal = Cell{Row: 5, Col: 0} }},
		{"start off grid", func(c *Config) { c.Start = Cell{Row: 0, Col: -1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestPlanCorridor(t *testing.T) {
	// 1x3 corridor, no wind: walk right twice. With gamma 0.9 the values
	// are -1 one step out and -1.9 two steps out.
	w, err := New(Config{
		Rows:       1,
		Cols:       3,
		Start:      Cell{Row: 0, Col: 0},
		Goal:       Cell{Row: 0, Col: 2},
		Wind:       []int{0, 0, 0},
		WindProbs:  [3]float64{1, 0, 0},
		StepReward: -1,
	})
	require.NoError(t, err)

	planner, err := dp.New(dp.Config[Cell]{
		Model:               w,
		Keyer:               mdp.StringerKeyer[Cell]{},
		Gamma:               0.9,
		MaxEvalDelta:        1e-9,
		MaxEvalIterations:   100,
		MaxPolicyIterations: 100,
		Rng:                 rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	policy, err := planner.PlanFromState(w.Start())
	require.NoError(t, err)

	assert.Equal(t, 2, planner.StateCount(), "goal cell is never stored")
	assert.InDelta(t, -1.0, planner.Value(Cell{Row: 0, Col: 1}), 1e-6)
	assert.InDelta(t, -1.9, planner.Value(Cell{Row: 0, Col: 0}), 1e-6)

	for _, cell := range []Cell{{Row: 0, Col: 0}, {Row: 0, Col: 1}} {
		a, err := policy.Action(cell)
		require.NoError(t, err)
		assert.Equal(t, Right, a, "optimal action at %v", cell)
	}
}

func TestPrintPolicyRendersArrows(t *testing.T) {
	w := windyWorld(t)

	var buf bytes.Buffer
	err := FprintPolicy(&buf, w, constantPolicy{a: Up})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "^")
	assert.Contains(t, out, "G")
}

type constantPolicy struct{ a mdp.Action }

func (p constantPolicy) Action(Cell) (mdp.Action, error) { return p.a, nil }
