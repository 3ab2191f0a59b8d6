package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tablut/engine"
	"tablut/experiments"
	"tablut/meta"
	"tablut/searcher"
	"tablut/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	config := flag.String("config", "", "Experiment config (YAML); plays one self-play game when empty")
	depth := flag.Int("depth", meta.SEARCH_DEPTH, "Fixed search depth, 0 picks it from the game phase")
	moveLimit := flag.Int("limit", meta.MOVE_LIMIT, "Moves played before the next mover loses, 0 for none")
	randomDefender := flag.Bool("random-defender", false, "Let a random agent play the defenders")
	seed := flag.Uint64("seed", 1, "Seed for random agents")
	verbose := flag.Bool("v", false, "Log every move")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *config != "" {
		runExperiment(*config)
		return
	}
	runSelfPlay(*depth, *moveLimit, *randomDefender, *seed)
}

func runExperiment(path string) {
	summaries, err := experiments.RunFromFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for _, s := range summaries {
		fmt.Printf("%d vs %d: %d games, attackers %d, defenders %d, unfinished %d, moves %.1f±%.1f, search %.1fms\n",
			s.Attackers, s.Defenders, s.Games, s.AttackerWins, s.DefenderWins, s.Unfinished,
			s.MeanMoves, s.StdDevMoves, s.MeanSearchMs)
	}
}

// runSelfPlay plays one game with the search on the attackers' side and
// prints the final position.
func runSelfPlay(depth, moveLimit int, randomDefender bool, seed uint64) {
	attackers := agent.NewSearchAgent(searcher.NewAlphaBeta(searcher.WithDepth(depth), searcher.WithMetrics()))
	defenders := agent.NewSearchAgent(searcher.NewAlphaBeta(searcher.WithDepth(depth), searcher.WithMetrics()))
	if randomDefender {
		defenders = agent.NewRandomAgent(seed)
	}

	e, err := engine.LocalEngine(attackers, defenders, engine.WithMoveLimit(moveLimit))
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up game")
	}
	winner, gameMetric, _, err := e.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}

	fmt.Print(e.Board)
	fmt.Printf("Game %s over after %d moves! Winner: %s\n", gameMetric.ID, gameMetric.TotalMoves, winner)
}
