package experiments

import (
	"tablut/engine"
	"tablut/experiments/metrics"
	"tablut/game"
	"tablut/searcher"
	"tablut/searcher/agent"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// RunFromFile loads an experiment config and runs it.
func RunFromFile(path string) ([]MatchupSummary, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return Run(cfg)
}

// Run plays every matchup cfg.Games times, stores agent configs, game and
// move records as CSV under cfg.Output, and returns a summary per matchup.
func Run(cfg *Config) ([]MatchupSummary, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summaries := []MatchupSummary{}

	log.Info().Msgf("starting %s experiment...", cfg.Name)

	for mi, matchup := range cfg.Matchups {
		attackers, defenders := cfg.agent(matchup.Attackers), cfg.agent(matchup.Defenders)
		log.Info().Msgf("starting matchup %d of %d between attackers=%+v and defenders=%+v...", mi+1, len(cfg.Matchups), attackers, defenders)

		var results []gameResult
		for i := 0; i < cfg.Games; i++ {
			winner, gameMetric, moveMetrics, err := runGame(cfg, attackers, defenders, uint64(i))
			if err != nil {
				return nil, errors.Wrapf(err, "matchup %d game %d", mi+1, i+1)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Attackers:  attackers.ID,
				Defenders:  defenders.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			results = append(results, gameResult{winner: winner, game: gameMetric, moves: moveMetrics})

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(cfg.Matchups), i+1, winner)
		}

		summary := summarize(matchup, results)
		summaries = append(summaries, summary)
		log.Info().
			Int("attacker_wins", summary.AttackerWins).
			Int("defender_wins", summary.DefenderWins).
			Float64("mean_moves", summary.MeanMoves).
			Msgf("completed matchup %d of %d", mi+1, len(cfg.Matchups))
	}

	log.Info().Msgf("completed %s experiment", cfg.Name)

	writer, err := metrics.NewWriter(cfg.Output, cfg.Name)
	if err != nil {
		return summaries, err
	}
	if err := writer.WriteAgentConfigs(cfg.Agents); err != nil {
		return summaries, err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summaries, err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summaries, err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")

	return summaries, nil
}

// runGame plays a single game. offset varies the seeds of random agents so
// repeated games of one matchup differ.
func runGame(cfg *Config, attackers, defenders metrics.AgentConfig, offset uint64) (game.Side, metrics.GameMetric, []metrics.MoveMetric, error) {
	e, err := engine.LocalEngine(
		createAgent(attackers, offset),
		createAgent(defenders, offset),
		engine.WithMaxTurns(cfg.MaxTurns),
		engine.WithMoveLimit(cfg.MoveLimit),
	)
	if err != nil {
		return game.NoSide, metrics.GameMetric{}, nil, err
	}
	return e.Run()
}

func createAgent(config metrics.AgentConfig, offset uint64) agent.Agent {
	if config.Kind == KindRandom {
		return agent.NewRandomAgent(config.Seed + offset)
	}

	evaluate, _ := game.EvaluatorByName(config.Evaluator)
	options := []searcher.Option{
		searcher.WithEvaluationFn(evaluate),
		searcher.WithMetrics(),
	}
	if config.Depth > 0 {
		options = append(options, searcher.WithDepth(config.Depth))
	}
	return agent.NewSearchAgent(searcher.NewAlphaBeta(options...))
}
