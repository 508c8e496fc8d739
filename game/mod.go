package game

import "forest/board"

const (
	NumCells     = board.NumCells
	MaxTreeSize  = 3
	LastDay      = 24 // Terminal day, no actions are played on it
	CompleteCost = 4
)

// Player identifies a side from the engine's point of view.
type Player int

const (
	Me Player = iota
	Opponent
)

func (p Player) Other() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == Me {
		return "me"
	}
	return "opponent"
}

type StateHash uint64

// EvaluateFn scores a state from p's perspective. Higher is better for p.
type EvaluateFn func(s State, b *board.Board, p Player) int
