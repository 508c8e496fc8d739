package game

import (
	"fmt"

	"forest/board"
)

// growBaseCost is the base price of growing a tree from the indexed size.
var growBaseCost = [MaxTreeSize]int{1, 3, 7}

// Cost is the sun p has to pay to play a, given p's current trees.
func (s State) Cost(a Action, p Player) int {
	switch a.Type {
	case CompleteAction:
		return CompleteCost
	case GrowAction:
		return s.GrowCost(s.Trees.Get(a.Cell).Size, p)
	case SeedAction:
		return s.Trees.Count(0, p)
	}
	return 0
}

// GrowCost is the price for p of growing a tree of the given size.
func (s State) GrowCost(size int, p Player) int {
	if size < 0 || size >= MaxTreeSize {
		panic(fmt.Sprintf("cannot grow a tree of size %d", size))
	}
	return growBaseCost[size] + s.Trees.Count(size+1, p)
}

// HarvestCost is the sun p needs to take a tree of the given size all the way
// to a harvest at today's prices.
func (s State) HarvestCost(size int, p Player) int {
	total := CompleteCost
	for sz := size; sz < MaxTreeSize; sz++ {
		total += s.GrowCost(sz, p)
	}
	return total
}

// LegalActions lists p's affordable actions: WAIT first, then completes,
// grows and seeds. Seeds follow tree order, then neighbor ring order.
func (s State) LegalActions(b *board.Board, p Player) []Action {
	trees := s.Trees.Owned(p)
	actions := []Action{Wait()}

	for _, t := range trees {
		if !t.Dormant && t.Size == MaxTreeSize {
			actions = s.appendAffordable(actions, Complete(t.Cell), p)
		}
	}
	for _, t := range trees {
		if !t.Dormant && t.Size < MaxTreeSize {
			actions = s.appendAffordable(actions, Grow(t.Cell), p)
		}
	}

	seedCost := s.Trees.Count(0, p)
	if seedCost > s.Sun[p] {
		return actions
	}
	for _, t := range trees {
		if t.Dormant || t.Size == 0 {
			continue
		}
		for _, target := range b.Neighbors(t.Cell, t.Size) {
			if b.Richness(target) > 0 && !s.Trees.Has(target) {
				actions = append(actions, Seed(t.Cell, target))
			}
		}
	}
	return actions
}

func (s State) appendAffordable(actions []Action, a Action, p Player) []Action {
	if s.Cost(a, p) <= s.Sun[p] {
		return append(actions, a)
	}
	return actions
}

// IsLegal reports whether a is one of p's legal actions.
func (s State) IsLegal(b *board.Board, p Player, a Action) bool {
	for _, legal := range s.LegalActions(b, p) {
		if legal == a {
			return true
		}
	}
	return false
}
