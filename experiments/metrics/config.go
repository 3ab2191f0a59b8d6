package metrics

// AgentConfig describes one player in an experiment.
type AgentConfig struct {
	ID        int    `yaml:"id"`
	Kind      string `yaml:"kind"`      // "alphabeta" or "random"
	Depth     int    `yaml:"depth"`     // 0 picks the depth from the game phase
	Evaluator string `yaml:"evaluator"` // name registered in game.Evaluators
	Seed      uint64 `yaml:"seed"`      // random agents only
}
