package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeStranger-Fred/mdplan/gridworld"
)

func TestDeltaObserverRecordsPasses(t *testing.T) {
	obs := &DeltaObserver[string]{}
	obs.OnEvaluationSweep(nil, 5, 0.7)
	obs.OnEvaluationSweep(nil, 2, 0.01)

	require.Len(t, obs.Records, 2)
	assert.Equal(t, SweepRecord{Pass: 1, Sweeps: 5, Delta: 0.7}, obs.Records[0])
	assert.Equal(t, SweepRecord{Pass: 2, Sweeps: 2, Delta: 0.01}, obs.Records[1])
}

func TestRenderConvergenceWritesHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "convergence.html")
	records := []SweepRecord{
		{Pass: 1, Sweeps: 10, Delta: 2.5},
		{Pass: 2, Sweeps: 4, Delta: 0.3},
		{Pass: 3, Sweeps: 1, Delta: 0.0},
	}
	require.NoError(t, RenderConvergence(records, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Contains(t, string(data), "policy evaluation convergence")
}

func TestRenderValueHeatmapWritesHTML(t *testing.T) {
	world, err := gridworld.New(gridworld.Config{
		Rows:       2,
		Cols:       2,
		Goal:       gridworld.Cell{Row: 0, Col: 1},
		Wind:       []int{0, 0},
		WindProbs:  [3]float64{1, 0, 0},
		StepReward: -1,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "values.html")
	value := func(c gridworld.Cell) float64 { return float64(-c.Row - c.Col) }
	require.NoError(t, RenderValueHeatmap(world, value, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "state values")
}
