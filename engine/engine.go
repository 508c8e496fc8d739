package engine

import "forest/experiments/metrics"

const MaxTurns = 10000

type Engine interface {
	// Run plays a game to the last day, or until MaxTurns turns were played
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
