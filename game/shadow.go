package game

import "forest/board"

// NoShadow marks a cell that no tree shades.
const NoShadow = -1

// Shadows returns, for every cell, the size of the largest tree shading it
// under today's sun direction.
func (s State) Shadows(b *board.Board) [NumCells]int {
	return s.shadowsToward(b, board.Orientation(s.Day%board.NumOrientations))
}

func (s State) shadowsToward(b *board.Board, o board.Orientation) [NumCells]int {
	var shadows [NumCells]int
	for i := range shadows {
		shadows[i] = NoShadow
	}
	for _, t := range s.Trees.All() {
		for _, cell := range b.Line(t.Cell, t.Size, o) {
			shadows[cell] = max(shadows[cell], t.Size)
		}
	}
	return shadows
}

// sunIncome sums the sizes of p's trees that are not shaded by a tree at
// least as large.
func (s State) sunIncome(shadows [NumCells]int, p Player) int {
	income := 0
	for _, t := range s.Trees.Owned(p) {
		if shadows[t.Cell] >= t.Size {
			continue
		}
		income += t.Size
	}
	return income
}

// SunIncome is what p would collect if the day rolled over with today's sun
// direction.
func (s State) SunIncome(b *board.Board, p Player) int {
	return s.sunIncome(s.Shadows(b), p)
}

// AverageSunIncome is p's mean income over a full cycle of sun directions for
// the current trees.
func (s State) AverageSunIncome(b *board.Board, p Player) float64 {
	total := 0
	for o := board.Orientation(0); o < board.NumOrientations; o++ {
		total += s.sunIncome(s.shadowsToward(b, o), p)
	}
	return float64(total) / board.NumOrientations
}
