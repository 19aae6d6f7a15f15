package gridworld

import (
	"fmt"
	"io"

	"github.com/logrusorgru/aurora"

	"github.com/CodeStranger-Fred/mdplan/mdp"
)

var arrows = map[mdp.Action]string{
	Up:    "^",
	Down:  "v",
	Left:  "<",
	Right: ">",
}

// FprintValues renders the value of every cell as a colored grid: goal in
// green, start in cyan, everything else blue.
func FprintValues(w io.Writer, world *World, value func(Cell) float64) {
	for r := 0; r < world.Rows(); r++ {
		for c := 0; c < world.Cols(); c++ {
			cell := Cell{Row: r, Col: c}
			text := fmt.Sprintf("%7.2f ", value(cell))
			switch cell {
			case world.Goal():
				fmt.Fprint(w, aurora.Green(text))
			case world.Start():
				fmt.Fprint(w, aurora.Cyan(text))
			default:
				fmt.Fprint(w, aurora.Blue(text))
			}
			fmt.Fprint(w, aurora.White("|"))
		}
		fmt.Fprintln(w)
	}
}

// FprintPolicy renders the policy's action at every non-terminal cell as
// an arrow; the goal prints as G.
func FprintPolicy(w io.Writer, world *World, policy mdp.Policy[Cell]) error {
	for r := 0; r < world.Rows(); r++ {
		for c := 0; c < world.Cols(); c++ {
			cell := Cell{Row: r, Col: c}
			if world.Terminal(cell) {
				fmt.Fprint(w, aurora.Green(" G "))
				continue
			}
			a, err := policy.Action(cell)
			if err != nil {
				return fmt.Errorf("gridworld: policy at %v: %w", cell, err)
			}
			fmt.Fprint(w, aurora.Blue(fmt.Sprintf(" %s ", arrows[a])))
		}
		fmt.Fprintln(w)
	}
	return nil
}
