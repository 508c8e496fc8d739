package agent

import (
	"time"

	"forest/board"
	"forest/experiments/metrics"
	"forest/game"
	"forest/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns an agent that plays the search's best move.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State, b *board.Board, budget time.Duration) (game.Action, metrics.SearchMetric) {
	a.mcts.SetDuration(budget)
	result := a.mcts.Search(state, b)
	return result.Action, result.Metric
}

type beamAgent struct {
	width    int
	opponent searcher.OpponentModel
}

// NewBeamAgent returns an agent that looks ahead with a beam search.
func NewBeamAgent(width int, opponent searcher.OpponentModel) Agent {
	return beamAgent{width: width, opponent: opponent}
}

func (a beamAgent) FindMove(state game.State, b *board.Board, budget time.Duration) (game.Action, metrics.SearchMetric) {
	start := time.Now()
	beam := searcher.NewBeam(
		searcher.WithBeamDuration(budget),
		searcher.WithBeamWidth(a.width),
		searcher.WithOpponent(a.opponent),
		searcher.WithMaxDepth(budgetDepth(budget)),
	)
	depth, action := beam.Search(state, b)
	return action, metrics.SearchMetric{Width: a.width, Depth: depth, Duration: time.Since(start)}
}

// budgetDepth bounds beam searches that get no time at all.
func budgetDepth(budget time.Duration) int {
	if budget > 0 {
		return 0
	}
	return 1
}

type greedyAgent struct{}

// NewGreedyAgent returns an agent that never searches.
func NewGreedyAgent() Agent {
	return greedyAgent{}
}

func (greedyAgent) FindMove(state game.State, b *board.Board, _ time.Duration) (game.Action, metrics.SearchMetric) {
	if !state.Playable() {
		return game.Wait(), metrics.SearchMetric{}
	}
	return game.Greedy(state, b, game.Me, state.LegalActions(b, game.Me)), metrics.SearchMetric{}
}
