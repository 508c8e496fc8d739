package game

import (
	"cmp"

	"forest/board"
)

// Greedy picks p's action from actions with a fixed rule-of-thumb ordering:
// harvest late, prefer rich cells, grow to starve the other side and only
// wait when short of sun. Among equally good actions the last one wins.
// actions must not be empty.
func Greedy(s State, b *board.Board, p Player, actions []Action) Action {
	best := actions[0]
	for _, a := range actions[1:] {
		if compareGreedy(s, b, p, best, a) <= 0 {
			best = a
		}
	}
	return best
}

func compareGreedy(s State, b *board.Board, p Player, x, y Action) int {
	canWait := s.Sun[p] < 3
	startChopping := s.Nutrients < 18 || s.Day > 18

	switch x.Type {
	case WaitAction:
		switch y.Type {
		case WaitAction:
			return 0
		case GrowAction:
			return -1
		}
		return greaterIf(canWait)

	case CompleteAction:
		switch y.Type {
		case CompleteAction:
			return cmp.Compare(b.Richness(x.Cell), b.Richness(y.Cell))
		case GrowAction, SeedAction:
			return greaterIf(startChopping)
		}

	case GrowAction:
		switch y.Type {
		case GrowAction:
			left := s.ApplySingle(b, x, p).NewDay(b)
			right := s.ApplySingle(b, y, p).NewDay(b)
			return greaterIf(left.Sun[p.Other()] < right.Sun[p.Other()])
		case SeedAction:
			if b.Richness(y.Target) == board.MaxRichness {
				return -1
			}
			return 1
		}

	case SeedAction:
		if y.Type == SeedAction {
			return cmp.Compare(b.Richness(x.Target), b.Richness(y.Target))
		}
	}
	return -compareGreedy(s, b, p, y, x)
}

func greaterIf(v bool) int {
	if v {
		return 1
	}
	return -1
}
