package agent

import (
	"math"
	"slices"
	"time"

	"golang.org/x/exp/rand"

	"forest/board"
	"forest/experiments/metrics"
	"forest/game"
	"forest/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples its move from the search's
// visit counts. It varies self-play games.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return trainingAgent{mcts: mcts, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (a trainingAgent) FindMove(state game.State, b *board.Board, budget time.Duration) (game.Action, metrics.SearchMetric) {
	a.mcts.SetDuration(budget)
	result := a.mcts.Search(state, b)
	policy := adjustTemperature(a.mcts.Policy(), a.temperature)
	if len(policy) == 0 {
		return result.Action, result.Metric
	}
	return sample(a.rng, policy), result.Metric
}

func adjustTemperature(policy map[game.Action]float64, temperature float64) map[game.Action]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Action]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	if sum == 0 {
		return map[game.Action]float64{}
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the policy in action order so a seed replays the same game.
func sample(rng *rand.Rand, policy map[game.Action]float64) game.Action {
	moves := make([]game.Action, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	slices.SortFunc(moves, game.Action.Compare)

	sampled := rng.Float64()
	cumulative := 0.0
	for _, move := range moves {
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return moves[len(moves)-1] // Fallback in case of rounding errors
}
