package searcher

import (
	"fmt"
	"strings"
	"time"

	"forest/board"
	"forest/experiments/metrics"
	"forest/game"
)

// Selection decides which root child is played once the search stops.
type Selection int

const (
	BestMean Selection = iota
	MostVisits
)

func (s Selection) String() string {
	if s == MostVisits {
		return "visits"
	}
	return "mean"
}

func ParseSelection(text string) (Selection, error) {
	switch strings.ToLower(text) {
	case "mean", "":
		return BestMean, nil
	case "visits":
		return MostVisits, nil
	}
	return BestMean, fmt.Errorf("unknown selection %q", text)
}

// Result is the outcome of one search.
type Result struct {
	Action game.Action
	Depth  int // Deepest state reached below the root
	Score  float64
	Metric metrics.SearchMetric
}

// Search runs an arena MCTS for budget and returns the chosen action and the
// depth reached. Without any budget it answers with the fallback action.
func Search(state game.State, b *board.Board, width int, budget time.Duration) (game.Action, int) {
	if budget <= 0 {
		return Fallback(state, b), 0
	}
	result := NewMCTS(WithDuration(budget), WithWidth(width)).Search(state, b)
	return result.Action, result.Depth
}
