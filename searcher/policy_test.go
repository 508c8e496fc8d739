package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"forest/board"
	"forest/game"
)

func TestUCBEvaluate(t *testing.T) {
	t.Run("unvisited children rank by prior", func(t *testing.T) {
		policy := newUCB(Exploration, 10)
		require.Equal(t, UnvisitedWeight*3, policy.evaluate(stats{}, 3))
		require.Zero(t, policy.evaluate(stats{}, 0))
	})

	t.Run("computing UCB value", func(t *testing.T) {
		policy := newUCB(2.0, 100)
		got := policy.evaluate(stats{visits: 10, total: 5}, 1)

		expected := 5.0/10 + 2.0*math.Sqrt(math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute mean + c*sqrt(ln(N)/n)")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		policy := newUCB(Exploration, 100)
		score1 := policy.evaluate(stats{visits: 10, total: 50}, 1)
		score2 := policy.evaluate(stats{visits: 20, total: 100}, 1)
		require.Greater(t, score1, score2)
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		policy := newUCB(Exploration, 100)
		score1 := policy.evaluate(stats{visits: 10, total: 5}, 1)
		score2 := policy.evaluate(stats{visits: 10, total: -5}, 1)
		require.Greater(t, score1, score2)
	})
}

func TestStats(t *testing.T) {
	var s stats
	require.Zero(t, s.mean())
	s.add(-4)
	s.add(10)
	s.add(0)
	require.Equal(t, 3, s.visits)
	require.InDelta(t, 2.0, s.mean(), 1e-9)
	require.Equal(t, 10.0, s.best)
}

func TestPrior(t *testing.T) {
	b := board.Default()
	s := game.State{Trees: game.NewTrees(game.Tree{Cell: 1, Size: 2, Mine: true}, game.Tree{Cell: 20, Size: 1, Mine: true})}

	for name, tc := range map[string]struct {
		day    int
		action game.Action
		want   float64
	}{
		"complete":                  {10, game.Complete(1), 5},
		"grow by size":              {10, game.Grow(1), 3},
		"grow late":                 {20, game.Grow(1), 1},
		"seed the center early":     {10, game.Seed(1, 0), 4},
		"seed the edge early":       {10, game.Seed(20, 36), 1},
		"seed the center on day 18": {18, game.Seed(1, 0), 1},
		"seed late":                 {19, game.Seed(1, 0), 0},
		"wait on the first days":    {1, game.Wait(), 2},
		"wait later":                {2, game.Wait(), 1},
	} {
		t.Run(name, func(t *testing.T) {
			s.Day = tc.day
			require.Equal(t, tc.want, Prior(s, b, tc.action))
		})
	}
}

func TestCandidates(t *testing.T) {
	b := board.Default()
	s := game.State{
		Trees:     game.NewTrees(game.Tree{Cell: 1, Size: 3, Mine: true}, game.Tree{Cell: 20, Size: 1, Mine: true}),
		Day:       5,
		Nutrients: 20,
		Sun:       [2]int{10, 0},
	}

	t.Run("sorted by prior, stable among equals", func(t *testing.T) {
		got := candidates(s, b, game.Me, 4)
		actions := make([]game.Action, len(got))
		for i, c := range got {
			actions[i] = c.action
		}
		// Seeds onto the center ring outrank growing, in neighbor order.
		require.Equal(t, []game.Action{game.Complete(1), game.Seed(1, 2), game.Seed(1, 0), game.Seed(1, 6)}, actions)
		require.Equal(t, 4.0, got[1].prior)
		require.Equal(t, game.Grow(20), candidates(s, b, game.Me, 5)[4].action)
	})

	t.Run("no width keeps everything", func(t *testing.T) {
		require.Len(t, candidates(s, b, game.Me, 0), len(s.LegalActions(b, game.Me)))
	})

	t.Run("fallback is the best prior", func(t *testing.T) {
		require.Equal(t, game.Complete(1), Fallback(s, b))
		s.Day = game.LastDay
		require.Equal(t, game.Wait(), Fallback(s, b))
	})
}
