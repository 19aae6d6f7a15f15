package gridworld

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a stochastic windy gridworld. WindProbs[i] is the
// probability of the wind pushing i extra rows beyond the column's base
// wind; the three entries must sum to 1.
type Config struct {
	Rows  int   `yaml:"rows"`
	Cols  int   `yaml:"cols"`
	Start Cell  `yaml:"start"`
	Goal  Cell  `yaml:"goal"`
	Wind  []int `yaml:"wind"`

	WindProbs [3]float64 `yaml:"windProbs"`

	// StepReward is earned on every transition; default -1.
	StepReward float64 `yaml:"stepReward"`

	// GoalReward is added on transitions that enter the goal.
	GoalReward float64 `yaml:"goalReward"`
}

// ParseConfig decodes a yaml gridworld config, applies defaults, and
// validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := Config{StepReward: -1}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("gridworld: parsing config: %w", err)
	}
	if cfg.Wind == nil {
		cfg.Wind = make([]int, cfg.Cols)
	}
	if cfg.WindProbs == [3]float64{} {
		cfg.WindProbs = [3]float64{1, 0, 0}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads and parses a yaml gridworld config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("gridworld: reading config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks the structural invariants of the config.
func (cfg Config) Validate() error {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return fmt.Errorf("gridworld: grid must be at least 1x1, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if len(cfg.Wind) != cfg.Cols {
		return fmt.Errorf("gridworld: wind has %d entries for %d columns", len(cfg.Wind), cfg.Cols)
	}
	sum := 0.0
	for _, p := range cfg.WindProbs {
		if p < 0 {
			return fmt.Errorf("gridworld: negative wind probability %v", p)
		}
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("gridworld: wind probabilities sum to %v, not 1", sum)
	}
	for _, c := range []Cell{cfg.Start, cfg.Goal} {
		if c.Row < 0 || c.Row >= cfg.Rows || c.Col < 0 || c.Col >= cfg.Cols {
			return fmt.Errorf("gridworld: cell %v outside %dx%d grid", c, cfg.Rows, cfg.Cols)
		}
	}
	return nil
}
