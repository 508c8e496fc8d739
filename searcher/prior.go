package searcher

import (
	"cmp"
	"slices"

	"forest/board"
	"forest/game"
)

// Prior ranks an action before it has been searched. Harvests come first,
// then growing bigger trees and seeding the center.
func Prior(s game.State, b *board.Board, a game.Action) float64 {
	switch {
	case a.Type == game.CompleteAction:
		return 5
	case a.Type == game.GrowAction && s.Day < 20:
		return float64(s.Trees.Get(a.Cell).Size + 1)
	case a.Type == game.SeedAction && s.Day < 18 && b.Richness(a.Target) == board.MaxRichness:
		return 4
	case a.Type == game.WaitAction && s.Day <= 1:
		return 2
	case a.Type == game.SeedAction && s.Day > 18:
		return 0
	}
	return 1
}

type candidate struct {
	action game.Action
	prior  float64
}

// candidates returns p's legal actions by descending prior, keeping
// generation order among equals, truncated to width.
func candidates(s game.State, b *board.Board, p game.Player, width int) []candidate {
	actions := s.LegalActions(b, p)
	out := make([]candidate, len(actions))
	for i, a := range actions {
		out[i] = candidate{action: a, prior: Prior(s, b, a)}
	}
	slices.SortStableFunc(out, func(x, y candidate) int {
		return cmp.Compare(y.prior, x.prior)
	})
	if width > 0 && len(out) > width {
		out = out[:width]
	}
	return out
}

// Fallback is the legal action with the highest prior, WAIT outside the
// game's days.
func Fallback(s game.State, b *board.Board) game.Action {
	if !s.Playable() {
		return game.Wait()
	}
	return candidates(s, b, game.Me, 1)[0].action
}
