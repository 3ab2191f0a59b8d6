package engine

import (
	"tablut/experiments/metrics"
	"tablut/game"
)

type Engine interface {
	// Run plays a game till there's a winner or the turn cap is reached
	Run() (winner game.Side, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
