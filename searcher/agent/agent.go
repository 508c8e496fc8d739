package agent

import (
	"fmt"
	"time"

	"forest/board"
	"forest/experiments/metrics"
	"forest/game"
	"forest/searcher"
)

type Agent interface {
	// FindMove returns Me's action for state within budget and the search
	// metrics, if collected.
	FindMove(state game.State, b *board.Board, budget time.Duration) (game.Action, metrics.SearchMetric)
}

// Settings describe an agent to build.
type Settings struct {
	Kind      string // "mcts", "beam", "greedy" or "sampling"
	Width     int
	Cutoff    int
	Selection searcher.Selection
	Seed      uint64
	Metrics   bool
}

// New builds the agent described by settings.
func New(settings Settings) (Agent, error) {
	options := []searcher.Option{
		searcher.WithDuration(time.Millisecond), // Replaced by every move's budget
		searcher.WithWidth(settings.Width),
		searcher.WithCutoff(settings.Cutoff),
		searcher.WithSelection(settings.Selection),
		searcher.WithSeed(settings.Seed),
		searcher.WithTreeReuse(),
	}
	if settings.Metrics {
		options = append(options, searcher.WithMetrics())
	}

	switch settings.Kind {
	case "mcts", "":
		return NewEvaluationAgent(searcher.NewMCTS(options...)), nil
	case "sampling":
		return NewTrainingAgent(searcher.NewMCTS(options...), 1.0, settings.Seed), nil
	case "beam":
		return NewBeamAgent(settings.Width, searcher.OpponentGreedy), nil
	case "greedy":
		return NewGreedyAgent(), nil
	}
	return nil, fmt.Errorf("unknown agent %q", settings.Kind)
}
