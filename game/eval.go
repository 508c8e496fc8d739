package game

import (
	"cmp"

	"forest/board"
)

// maxUsefulTrees caps, per size, how many trees still count toward the
// harvest estimate.
var maxUsefulTrees = [MaxTreeSize + 1]int{1, 2, 2, 4}

// Score is a heuristic breakdown of a position for one player.
type Score struct {
	Area     int
	Points   int
	Richness int
	Sun      int
	Trees    int
	Win      int
}

func (s Score) Value() int {
	return s.Area + s.Points + s.Richness + s.Sun + s.Trees + s.Win
}

// Evaluate scores s for p: banked points, richness under harvestable trees,
// sun income relative to the other side and the points still reachable by
// harvesting with the sun p can expect to collect.
func Evaluate(s State, b *board.Board, p Player) Score {
	income := int(s.AverageSunIncome(b, p))
	otherIncome := int(s.AverageSunIncome(b, p.Other()))

	richness := 0
	for _, t := range s.Trees.Owned(p) {
		richness += b.Richness(t.Cell) * s.harvestable(t.Size, p)
	}

	budget := s.Sun[p] + income*(LastDay-1-s.Day)
	nutrients := s.Nutrients
	potential := 0
	for size := MaxTreeSize; size >= 0; size-- {
		cost := s.HarvestCost(size, p)
		ok := s.harvestable(size, p)
		for i, n := 0, s.Trees.Count(size, p); i < n; i++ {
			if budget-cost <= 0 {
				break
			}
			budget -= cost
			potential += nutrients * ok
			nutrients -= ok
		}
	}

	return Score{
		Points:   2 * s.Points[p],
		Richness: 2 * richness,
		Sun:      2*income - otherIncome,
		Trees:    potential,
	}
}

// Heuristic is Evaluate collapsed to a single number.
func Heuristic(s State, b *board.Board, p Player) int {
	return Evaluate(s, b, p).Value()
}

// harvestable is 1 when a tree of the given size can still be harvested
// before the end and p does not already hold too many trees of that size.
func (s State) harvestable(size int, p Player) int {
	if MaxTreeSize+1-size >= LastDay-s.Day {
		return 0
	}
	if s.Trees.Count(size, p) > maxUsefulTrees[size] {
		return 0
	}
	return 1
}

// EvaluateProgress weighs tree development over income. Points count double
// in the second half of the game.
func EvaluateProgress(s State, b *board.Board, p Player) Score {
	daysLeft := LastDay - s.Day
	counts := [MaxTreeSize + 1]int{}
	for size := range counts {
		if MaxTreeSize+1-size < daysLeft {
			counts[size] = s.Trees.Count(size, p)
		}
	}

	richness := 0
	for _, t := range s.Trees.Owned(p) {
		if t.DaysToComplete() < daysLeft {
			richness += b.Richness(t.Cell)
		}
	}

	pointWeight := 5
	if s.Day >= 13 {
		pointWeight = 10
	}

	return Score{
		Area:     2*int(s.AverageSunIncome(b, p)) - int(s.AverageSunIncome(b, p.Other())),
		Points:   pointWeight * s.Points[p],
		Richness: 4 * richness,
		Trees:    counts[0] + 2*counts[1] + counts[2]*s.Nutrients/3 + counts[3]*s.Nutrients/2,
	}
}

// ProgressHeuristic is EvaluateProgress collapsed to a single number.
func ProgressHeuristic(s State, b *board.Board, p Player) int {
	return EvaluateProgress(s, b, p).Value()
}

type Outcome int

const (
	Loss Outcome = iota - 1
	Draw
	Win
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Loss:
		return "loss"
	}
	return "draw"
}

// Outcome compares the players from Me's side: points decide, sun breaks ties.
func (s State) Outcome() Outcome {
	if c := cmp.Compare(s.Points[Me], s.Points[Opponent]); c != 0 {
		return Outcome(c)
	}
	return Outcome(cmp.Compare(s.Sun[Me], s.Sun[Opponent]))
}

// Winner is the side that wins the game as it stands. ok is false on a draw.
func (s State) Winner() (p Player, ok bool) {
	switch s.Outcome() {
	case Win:
		return Me, true
	case Loss:
		return Opponent, true
	}
	return Me, false
}
