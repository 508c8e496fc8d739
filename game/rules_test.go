package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"forest/board"
)

func parseActions(t *testing.T, texts ...string) []Action {
	t.Helper()
	actions := make([]Action, len(texts))
	for i, text := range texts {
		a, err := ParseAction(text)
		require.NoError(t, err)
		actions[i] = a
	}
	return actions
}

func withTrees(t *testing.T, rows ...string) Trees {
	t.Helper()
	trees := make([]Tree, len(rows))
	for i, row := range rows {
		tree, err := ParseTree(row)
		require.NoError(t, err)
		trees[i] = tree
	}
	return NewTrees(trees...)
}

func TestLegalActions(t *testing.T) {
	t.Run("opening seeds", func(t *testing.T) {
		s := State{
			Trees:     withTrees(t, "21 1 1 0", "27 1 0 0", "30 1 0 0", "36 1 1 0"),
			Nutrients: 20,
			Sun:       [2]int{2, 10},
		}
		require.Equal(t, parseActions(t,
			"WAIT",
			"SEED 21 22", "SEED 21 9", "SEED 21 8", "SEED 21 20",
			"SEED 36 19", "SEED 36 7", "SEED 36 18", "SEED 36 35",
		), s.LegalActions(board.Default(), Me))
	})

	t.Run("dormant trees only wait", func(t *testing.T) {
		s := State{
			Trees: withTrees(t,
				"0 2 0 0", "1 1 1 1", "2 0 1 1", "3 0 0 1", "4 1 0 1", "5 1 0 0", "6 2 0 1",
				"12 0 1 1", "15 2 0 0", "16 0 0 0", "17 1 0 0", "22 3 1 1", "25 3 1 1", "30 0 0 0",
				"31 1 0 0", "34 1 0 0",
			),
			Day:       9,
			Nutrients: 20,
			Sun:       [2]int{10, 10},
		}
		require.Equal(t, []Action{Wait()}, s.LegalActions(board.DefaultWithInactive(25, 23, 32, 34), Me))
	})

	t.Run("grows and seeds around inactive cells", func(t *testing.T) {
		s := State{
			Trees: withTrees(t,
				"0 0 1 0", "1 0 0 0", "2 0 1 0", "3 2 1 0", "4 1 0 0", "5 2 1 0", "6 2 0 0", "7 2 0 0",
				"9 1 0 0", "18 0 0 0", "22 1 0 0", "36 1 0 0",
			),
			Day:       11,
			Nutrients: 17,
			Sun:       [2]int{7, 2},
		}
		require.Equal(t, parseActions(t,
			"WAIT", "GROW 0", "GROW 2", "GROW 3", "GROW 5",
			"SEED 3 11", "SEED 3 12", "SEED 3 8", "SEED 3 23", "SEED 3 24",
			"SEED 3 25", "SEED 3 27", "SEED 3 13", "SEED 3 14",
			"SEED 5 14", "SEED 5 15", "SEED 5 12", "SEED 5 13", "SEED 5 29",
			"SEED 5 31", "SEED 5 32", "SEED 5 33", "SEED 5 17",
		), s.LegalActions(board.DefaultWithInactive(26, 10, 21, 30, 16, 35), Me))
	})

	t.Run("unaffordable grows and seeds are dropped", func(t *testing.T) {
		s := State{
			Trees: withTrees(t,
				"0 1 0 1", "1 1 0 0", "2 1 0 0", "3 2 0 0", "4 1 1 0", "5 3 1 1", "7 0 0 0",
				"8 2 0 0", "14 0 1 0", "16 0 1 0", "18 1 0 0", "20 1 0 0", "35 1 0 0",
			),
			Day:       11,
			Nutrients: 20,
			Sun:       [2]int{2, 0},
		}
		require.Equal(t, parseActions(t,
			"WAIT", "GROW 14", "GROW 16", "SEED 4 12", "SEED 4 13",
		), s.LegalActions(board.DefaultWithInactive(25, 11, 27, 26, 17, 34), Me))
	})

	t.Run("every legal action is affordable", func(t *testing.T) {
		b := board.Default()
		s := mustParse(t, movesAheadStart...)
		for _, p := range []Player{Me, Opponent} {
			actions := s.LegalActions(b, p)
			require.Equal(t, Wait(), actions[0])
			for _, a := range actions {
				require.LessOrEqual(t, s.Cost(a, p), s.Sun[p], "%v for %v", a, p)
				require.True(t, s.IsLegal(b, p, a))
			}
		}
		require.False(t, s.IsLegal(b, Me, Grow(4)), "Tree 4 belongs to the opponent")
	})
}

func TestCost(t *testing.T) {
	s := mustParse(t, movesAheadStart...)

	t.Run("by action", func(t *testing.T) {
		require.Equal(t, 0, s.Cost(Wait(), Me))
		require.Equal(t, CompleteCost, s.Cost(Complete(21), Me))
		require.Equal(t, 1, s.Cost(Seed(21, 11), Me), "One size 0 tree")
		require.Equal(t, 0, s.Cost(Seed(4, 12), Opponent))
		require.Equal(t, 1+3, s.Cost(Grow(10), Me))
		require.Equal(t, 3+3, s.Cost(Grow(0), Me))
		require.Equal(t, 7+2, s.Cost(Grow(2), Me))
		require.Equal(t, 3+2, s.Cost(Grow(14), Opponent))
	})

	t.Run("harvest cost adds up the remaining grows", func(t *testing.T) {
		require.Equal(t, CompleteCost, s.HarvestCost(3, Me))
		require.Equal(t, CompleteCost+9, s.HarvestCost(2, Me))
		require.Equal(t, CompleteCost+9+6+4, s.HarvestCost(0, Me))
	})

	t.Run("size 3 cannot grow", func(t *testing.T) {
		require.Panics(t, func() { s.Cost(Grow(21), Me) })
		require.Panics(t, func() { s.GrowCost(3, Me) })
	})
}
