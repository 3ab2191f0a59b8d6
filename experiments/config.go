package experiments

import (
	"os"

	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/meta"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	KindAlphaBeta = "alphabeta"
	KindRandom    = "random"
)

// Config describes an experiment: a pool of agents and the matchups to play
// between them.
type Config struct {
	Name      string                `yaml:"name"`
	Games     int                   `yaml:"games"` // per matchup
	MoveLimit int                   `yaml:"move_limit"`
	MaxTurns  int                   `yaml:"max_turns"`
	Output    string                `yaml:"output"`
	Agents    []metrics.AgentConfig `yaml:"agents"`
	Matchups  []Matchup             `yaml:"matchups"`
}

// Matchup pairs two agent IDs; the first plays the attackers.
type Matchup struct {
	Attackers int `yaml:"attackers"`
	Defenders int `yaml:"defenders"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading experiment config %s", path)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML experiment, fills defaults and validates it.
func ParseConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decoding experiment config")
	}
	if cfg.Name == "" {
		cfg.Name = "experiment"
	}
	if cfg.Games == 0 {
		cfg.Games = meta.GAMES
	}
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = meta.MAX_TURNS
	}
	if cfg.Output == "" {
		cfg.Output = meta.RESULTS_DIR
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var errs error
	if c.Games < 0 {
		errs = multierror.Append(errs, errors.Errorf("games must be positive, got %d", c.Games))
	}
	if c.MoveLimit < 0 {
		errs = multierror.Append(errs, errors.Errorf("move_limit must not be negative, got %d", c.MoveLimit))
	}

	ids := make(map[int]bool)
	for _, a := range c.Agents {
		if ids[a.ID] {
			errs = multierror.Append(errs, errors.Errorf("agent id %d is used twice", a.ID))
		}
		ids[a.ID] = true
		switch a.Kind {
		case KindAlphaBeta:
			if a.Depth < 0 {
				errs = multierror.Append(errs, errors.Errorf("agent %d: depth must not be negative", a.ID))
			}
			if _, ok := game.EvaluatorByName(a.Evaluator); !ok {
				errs = multierror.Append(errs, errors.Errorf("agent %d: unknown evaluator %q", a.ID, a.Evaluator))
			}
		case KindRandom:
		default:
			errs = multierror.Append(errs, errors.Errorf("agent %d: unknown kind %q", a.ID, a.Kind))
		}
	}

	if len(c.Matchups) == 0 {
		errs = multierror.Append(errs, errors.New("no matchups"))
	}
	for i, m := range c.Matchups {
		for _, id := range []int{m.Attackers, m.Defenders} {
			if !ids[id] {
				errs = multierror.Append(errs, errors.Errorf("matchup %d: unknown agent %d", i+1, id))
			}
		}
	}
	return errs
}

func (c *Config) agent(id int) metrics.AgentConfig {
	for _, a := range c.Agents {
		if a.ID == id {
			return a
		}
	}
	panic("agent not validated")
}
