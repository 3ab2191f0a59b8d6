package experiments

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"tablut/experiments/metrics"
	"tablut/game"

	"github.com/stretchr/testify/require"
)

const smokeConfig = `
name: smoke
games: 2
max_turns: 12
agents:
  - id: 1
    kind: alphabeta
    depth: 1
    evaluator: material
  - id: 2
    kind: random
    seed: 11
matchups:
  - attackers: 2
    defenders: 1
  - attackers: 2
    defenders: 2
`

func TestParseConfig(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(smokeConfig))
		require.NoError(t, err)
		require.Equal(t, "smoke", cfg.Name)
		require.Equal(t, 2, cfg.Games)
		require.Equal(t, 12, cfg.MaxTurns)
		require.Equal(t, "results", cfg.Output)
		require.Len(t, cfg.Agents, 2)
		require.Equal(t, metrics.AgentConfig{ID: 2, Kind: KindRandom, Seed: 11}, cfg.Agents[1])
		require.Equal(t, Matchup{Attackers: 2, Defenders: 1}, cfg.Matchups[0])
	})

	t.Run("reports every problem", func(t *testing.T) {
		_, err := ParseConfig([]byte(`
agents:
  - {id: 1, kind: alphabeta, evaluator: psychic}
  - {id: 1, kind: montecarlo}
matchups:
  - {attackers: 1, defenders: 3}
`))
		require.Error(t, err)
		require.Contains(t, err.Error(), `unknown evaluator "psychic"`)
		require.Contains(t, err.Error(), "used twice")
		require.Contains(t, err.Error(), `unknown kind "montecarlo"`)
		require.Contains(t, err.Error(), "unknown agent 3")
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		_, err := ParseConfig([]byte("games: [1"))
		require.Error(t, err)
	})

	t.Run("loads from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "smoke.yaml")
		require.NoError(t, os.WriteFile(path, []byte(smokeConfig), 0644))
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, "smoke", cfg.Name)

		_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	cfg, err := ParseConfig([]byte(smokeConfig))
	require.NoError(t, err)
	cfg.Output = t.TempDir()

	summaries, err := Run(cfg)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		require.Equal(t, 2, s.Games)
		require.Equal(t, s.Games, s.AttackerWins+s.DefenderWins+s.Unfinished)
		require.Positive(t, s.MeanMoves)
		require.LessOrEqual(t, s.MeanMoves, 12.0)
	}
	require.Positive(t, summaries[0].MeanNodes, "The search agent should report nodes")
	require.Zero(t, summaries[1].MeanNodes, "Random agents do not search")

	dirs, err := filepath.Glob(filepath.Join(cfg.Output, "smoke", "*", "game_records.csv"))
	require.NoError(t, err)
	require.Len(t, dirs, 1)
}

func TestSummarize(t *testing.T) {
	results := []gameResult{
		{winner: game.Attackers, game: metrics.GameMetric{TotalMoves: 10}},
		{winner: game.Defenders, game: metrics.GameMetric{TotalMoves: 20, Repeated: true}, moves: []metrics.MoveMetric{
			{SearchMetric: metrics.SearchMetric{Depth: 3, Nodes: 100, Duration: 2 * time.Millisecond}},
			{SearchMetric: metrics.SearchMetric{Depth: 3, Nodes: 300, Duration: 4 * time.Millisecond}},
			{SearchMetric: metrics.SearchMetric{Evaluator: "random"}},
		}},
		{winner: game.NoSide, game: metrics.GameMetric{TotalMoves: 30}},
	}

	s := summarize(Matchup{Attackers: 1, Defenders: 2}, results)
	require.Equal(t, 3, s.Games)
	require.Equal(t, 1, s.AttackerWins)
	require.Equal(t, 1, s.DefenderWins)
	require.Equal(t, 1, s.Unfinished)
	require.Equal(t, 1, s.Repetitions)
	require.InDelta(t, 20.0, s.MeanMoves, 1e-9)
	require.InDelta(t, 10.0, s.StdDevMoves, 1e-9)
	require.InDelta(t, 3.0, s.MeanSearchMs, 1e-9)
	require.InDelta(t, 200.0, s.MeanNodes, 1e-9)

	single := summarize(Matchup{}, results[:1])
	require.Equal(t, 10.0, single.MeanMoves)
	require.Zero(t, single.StdDevMoves)
}
