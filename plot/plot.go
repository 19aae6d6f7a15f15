// Package plot renders planning diagnostics as standalone HTML charts:
// per-pass convergence deltas collected through a planning observer, and
// value-function heatmaps for gridworlds.
package plot

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/CodeStranger-Fred/mdplan/gridworld"
	"github.com/CodeStranger-Fred/mdplan/mdp"
)

// SweepRecord captures one policy-evaluation pass.
type SweepRecord struct {
	Pass   int
	Sweeps int
	Delta  float64
}

// DeltaObserver records the sweep count and final delta of every
// evaluation pass. Attach it with Planner.AddObserver and hand Records to
// RenderConvergence after planning.
type DeltaObserver[S any] struct {
	Records []SweepRecord
}

func (d *DeltaObserver[S]) OnEvaluationSweep(_ mdp.EnumerablePolicy[S], sweeps int, delta float64) {
	d.Records = append(d.Records, SweepRecord{Pass: len(d.Records) + 1, Sweeps: sweeps, Delta: delta})
}

// RenderConvergence writes a line chart of per-pass evaluation deltas.
func RenderConvergence(records []SweepRecord, path string) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "policy evaluation convergence",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	var passes []string
	deltas := make([]opts.LineData, 0, len(records))
	sweeps := make([]opts.LineData, 0, len(records))
	for _, rec := range records {
		passes = append(passes, fmt.Sprintf("%d", rec.Pass))
		deltas = append(deltas, opts.LineData{Value: rec.Delta})
		sweeps = append(sweeps, opts.LineData{Value: rec.Sweeps})
	}
	line.SetXAxis(passes).
		AddSeries("delta", deltas).
		AddSeries("sweeps", sweeps)

	return renderPage(path, line)
}

// RenderValueHeatmap writes a heatmap of the value function over the
// world's grid. Rows are flipped so row 0 renders at the top, matching the
// terminal output.
func RenderValueHeatmap(world *gridworld.World, value func(gridworld.Cell) float64, path string) error {
	hm := charts.NewHeatMap()

	min, max := 0.0, 0.0
	data := make([]opts.HeatMapData, 0, world.Rows()*world.Cols())
	for r := 0; r < world.Rows(); r++ {
		for c := 0; c < world.Cols(); c++ {
			v := value(gridworld.Cell{Row: r, Col: c})
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, world.Rows() - 1 - r, v}})
		}
	}

	var cols, rows []string
	for c := 0; c < world.Cols(); c++ {
		cols = append(cols, fmt.Sprintf("%d", c))
	}
	for r := world.Rows() - 1; r >= 0; r-- {
		rows = append(rows, fmt.Sprintf("%d", r))
	}

	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "state values",
		}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: cols}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min:        float32(min),
			Max:        float32(max),
			Calculable: opts.Bool(true),
		}),
	)
	hm.AddSeries("value", data)

	return renderPage(path, hm)
}

func renderPage(path string, chart components.Charter) error {
	page := components.NewPage()
	page.AddCharts(chart)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("plot: rendering %s: %w", path, err)
	}
	return nil
}
