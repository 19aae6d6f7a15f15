// mdplan solves gridworld MDPs with the policy-iteration planner and
// renders the result to the terminal and, optionally, to HTML charts.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CodeStranger-Fred/mdplan/dp"
	"github.com/CodeStranger-Fred/mdplan/gridworld"
	"github.com/CodeStranger-Fred/mdplan/mdp"
	"github.com/CodeStranger-Fred/mdplan/plot"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mdplan",
		Short:         "Model-based MDP planning with policy iteration",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	root.AddCommand(newSolveCmd())
	return root
}

func newSolveCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Plan a policy for a gridworld described by a yaml config",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, v)
		},
	}

	cmd.Flags().String("config", "", "path to the gridworld yaml config")
	cmd.Flags().Float64("gamma", 0.99, "discount factor")
	cmd.Flags().Float64("max-eval-delta", 1e-4, "per-sweep convergence threshold for policy evaluation")
	cmd.Flags().Float64("max-pi-delta", 0, "convergence threshold for the outer loop (0: same as --max-eval-delta)")
	cmd.Flags().Int("max-eval-iters", 100, "cap on sweeps per evaluation pass")
	cmd.Flags().Int("max-pi-iters", 100, "cap on outer policy iterations")
	cmd.Flags().String("charts", "", "directory to write convergence and value charts into")
	_ = cmd.MarkFlagRequired("config")

	v.SetEnvPrefix("MDPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

func runSolve(cmd *cobra.Command, v *viper.Viper) error {
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := gridworld.LoadConfig(v.GetString("config"))
	if err != nil {
		return err
	}
	world, err := gridworld.New(cfg)
	if err != nil {
		return err
	}

	planner, err := dp.New(dp.Config[gridworld.Cell]{
		Model:               world,
		Keyer:               mdp.StringerKeyer[gridworld.Cell]{},
		Gamma:               v.GetFloat64("gamma"),
		MaxEvalDelta:        v.GetFloat64("max-eval-delta"),
		MaxPIDelta:          v.GetFloat64("max-pi-delta"),
		MaxEvalIterations:   v.GetInt("max-eval-iters"),
		MaxPolicyIterations: v.GetInt("max-pi-iters"),
		Logger:              logger,
	})
	if err != nil {
		return err
	}

	chartsDir := v.GetString("charts")
	observer := &plot.DeltaObserver[gridworld.Cell]{}
	if chartsDir != "" {
		planner.AddObserver(observer)
	}

	policy, err := planner.PlanFromState(world.Start())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "values:")
	gridworld.FprintValues(out, world, planner.Value)
	fmt.Fprintln(out, "policy:")
	if err := gridworld.FprintPolicy(out, world, policy); err != nil {
		return err
	}
	logger.Info("planning finished",
		"states", planner.StateCount(),
		"policyIterations", planner.TotalPolicyIterations(),
		"valueIterations", planner.TotalValueIterations(),
	)

	if chartsDir != "" {
		if err := os.MkdirAll(chartsDir, 0o755); err != nil {
			return fmt.Errorf("creating charts dir: %w", err)
		}
		if err := plot.RenderConvergence(observer.Records, filepath.Join(chartsDir, "convergence.html")); err != nil {
			return err
		}
		if err := plot.RenderValueHeatmap(world, planner.Value, filepath.Join(chartsDir, "values.html")); err != nil {
			return err
		}
		logger.Info("charts written", "dir", chartsDir)
	}
	return nil
}
