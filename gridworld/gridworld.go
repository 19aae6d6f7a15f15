// Package gridworld implements a stochastic windy gridworld as a full MDP
// model: the agent moves in four directions on a bounded grid while a
// per-column wind pushes it upward by a random extra amount. It is the
// concrete domain used by the mdplan CLI and the integration tests.
package gridworld

import (
	"fmt"

	"github.com/CodeStranger-Fred/mdplan/mdp"
)

// Cell is a grid position. Row 0 is the top row.
type Cell struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

func (c Cell) String() string { return fmt.Sprintf("%d,%d", c.Row, c.Col) }

// Actions of the gridworld.
const (
	Up    mdp.Action = "up"
	Down  mdp.Action = "down"
	Left  mdp.Action = "left"
	Right mdp.Action = "right"
)

var actions = []mdp.Action{Up, Down, Left, Right}

// World is a stochastic windy gridworld. Build one with New so the
// configuration is validated.
type World struct {
	cfg Config
}

// New validates cfg and returns the world it describes.
func New(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &World{cfg: cfg}, nil
}

// Config returns the validated configuration.
func (w *World) Config() Config { return w.cfg }

// Start returns the initial cell.
func (w *World) Start() Cell { return w.cfg.Start }

// Goal returns the terminal cell.
func (w *World) Goal() Cell { return w.cfg.Goal }

// Rows returns the grid height.
func (w *World) Rows() int { return w.cfg.Rows }

// Cols returns the grid width.
func (w *World) Cols() int { return w.cfg.Cols }

func (w *World) Terminal(c Cell) bool { return c == w.cfg.Goal }

func (w *World) Actions(c Cell) []mdp.Action {
	if w.Terminal(c) {
		return nil
	}
	return actions
}

// Transitions enumerates the outcome distribution of taking a in c: the
// deterministic move followed by the column's base wind plus a stochastic
// extra push of 0, 1 or 2 rows. Outcomes that collapse onto the same cell
// (walls) are merged.
func (w *World) Transitions(c Cell, a mdp.Action) []mdp.Transition[Cell] {
	moved := w.shift(c, a)

	var pdf mdp.DiscretePdf[Cell]
	for extra, p := range w.cfg.WindProbs {
		if p == 0 {
			continue
		}
		pushed := Cell{
			Row: w.clipRow(moved.Row - (w.cfg.Wind[moved.Col] + extra)),
			Col: moved.Col,
		}
		mdp.Add(&pdf, pushed, mdp.Probability(p))
	}

	transitions := make([]mdp.Transition[Cell], 0, len(pdf))
	for succ, p := range pdf {
		reward := w.cfg.StepReward
		if succ == w.cfg.Goal {
			reward += w.cfg.GoalReward
		}
		transitions = append(transitions, mdp.Transition[Cell]{
			Probability: p,
			State:       succ,
			Reward:      mdp.Reward(reward),
		})
	}
	return transitions
}

func (w *World) shift(c Cell, a mdp.Action) Cell {
	next := c
	switch a {
	case Up:
		next.Row--
	case Down:
		next.Row++
	case Left:
		next.Col--
	case Right:
		next.Col++
	}
	next.Row = w.clipRow(next.Row)
	next.Col = w.clipCol(next.Col)
	return next
}

func (w *World) clipRow(r int) int {
	if r < 0 {
		return 0
	}
	if r > w.cfg.Rows-1 {
		return w.cfg.Rows - 1
	}
	return r
}

func (w *World) clipCol(c int) int {
	if c < 0 {
		return 0
	}
	if c > w.cfg.Cols-1 {
		return w.cfg.Cols - 1
	}
	return c
}
