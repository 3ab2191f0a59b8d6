package experiments

import (
	"tablut/experiments/metrics"
	"tablut/game"

	"gonum.org/v1/gonum/stat"
)

type gameResult struct {
	winner game.Side
	game   metrics.GameMetric
	moves  []metrics.MoveMetric
}

// MatchupSummary aggregates the games of one matchup.
type MatchupSummary struct {
	Matchup
	Games          int
	AttackerWins   int
	DefenderWins   int
	Unfinished     int
	Repetitions    int
	MeanMoves      float64
	StdDevMoves    float64
	MeanSearchMs   float64 // per searched move, 0 without search agents
	MeanNodes      float64
}

func summarize(matchup Matchup, results []gameResult) MatchupSummary {
	s := MatchupSummary{Matchup: matchup, Games: len(results)}
	lengths := make([]float64, 0, len(results))
	var searchMs, nodes []float64

	for _, r := range results {
		switch r.winner {
		case game.Attackers:
			s.AttackerWins++
		case game.Defenders:
			s.DefenderWins++
		default:
			s.Unfinished++
		}
		if r.game.Repeated {
			s.Repetitions++
		}
		lengths = append(lengths, float64(r.game.TotalMoves))
		for _, m := range r.moves {
			if m.Depth > 0 {
				searchMs = append(searchMs, float64(m.Duration.Microseconds())/1000)
				nodes = append(nodes, float64(m.Nodes))
			}
		}
	}

	if len(lengths) > 1 {
		s.MeanMoves, s.StdDevMoves = stat.MeanStdDev(lengths, nil)
	} else if len(lengths) == 1 {
		s.MeanMoves = lengths[0]
	}
	if len(searchMs) > 0 {
		s.MeanSearchMs = stat.Mean(searchMs, nil)
		s.MeanNodes = stat.Mean(nodes, nil)
	}
	return s
}
