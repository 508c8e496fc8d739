package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"strings"

	"forest/board"
)

// State is the full game position seen from Me's side. It is a value type:
// every transition returns a new State and never touches the receiver, and
// two States are == exactly when they describe the same position.
type State struct {
	Trees           Trees
	Day             int
	Nutrients       int
	Sun             [2]int // Indexed by Player
	Points          [2]int // Indexed by Player
	OpponentWaiting bool
}

// Terminal reports whether the game is over.
func (s State) Terminal() bool {
	return s.Day >= LastDay
}

// Playable reports whether the day is one on which actions are played.
func (s State) Playable() bool {
	return s.Day >= 0 && s.Day < LastDay
}

// Apply resolves one simultaneous turn. Actions the actor cannot afford are
// played as WAIT.
func (s State) Apply(b *board.Board, mine, theirs Action) State {
	mine = s.clamp(mine, Me)
	theirs = s.clamp(theirs, Opponent)

	switch {
	case mine.Type == SeedAction && theirs.Type == SeedAction && mine.Target == theirs.Target:
		next := s
		next.Trees.SetDormant(mine.Cell)
		next.Trees.SetDormant(theirs.Cell)
		return next

	case mine.Type == CompleteAction && theirs.Type == CompleteAction:
		next := s
		next.pay(mine, Me)
		next.pay(theirs, Opponent)
		next.complete(b, mine.Cell, Me)
		next.complete(b, theirs.Cell, Opponent)
		// Both harvests share a single nutrient decrement.
		next.Nutrients--
		return next

	case mine.IsWait() && theirs.IsWait():
		return s.NewDay(b)
	}

	next := s
	next.pay(mine, Me)
	next.pay(theirs, Opponent)
	next.play(b, mine, Me)
	next.play(b, theirs, Opponent)
	return next
}

// ApplySingle plays a for p alone, without paying for it. Used for lookahead.
func (s State) ApplySingle(b *board.Board, a Action, p Player) State {
	next := s
	next.play(b, a, p)
	return next
}

// NewDay rolls the game over to the next day: sun is collected under the new
// day's sun direction, waiting is reset and every tree wakes up.
func (s State) NewDay(b *board.Board) State {
	next := s
	next.Day++
	shadows := next.Shadows(b)
	next.Sun[Me] += next.sunIncome(shadows, Me)
	next.Sun[Opponent] += next.sunIncome(shadows, Opponent)
	next.OpponentWaiting = false
	next.Trees.WakeUp()
	return next
}

// Swap returns the same position seen from the opponent's side.
func (s State) Swap() State {
	next := s
	next.Trees.swapOwners()
	next.Sun[Me], next.Sun[Opponent] = s.Sun[Opponent], s.Sun[Me]
	next.Points[Me], next.Points[Opponent] = s.Points[Opponent], s.Points[Me]
	next.OpponentWaiting = false
	return next
}

func (s State) clamp(a Action, p Player) Action {
	if s.Cost(a, p) > s.Sun[p] {
		return Wait()
	}
	return a
}

func (s *State) pay(a Action, p Player) {
	s.Sun[p] -= s.Cost(a, p)
}

func (s *State) play(b *board.Board, a Action, p Player) {
	switch a.Type {
	case WaitAction:
		if p == Opponent {
			s.OpponentWaiting = true
		}
	case CompleteAction:
		s.complete(b, a.Cell, p)
		s.Nutrients--
	case GrowAction:
		s.Trees.Grow(a.Cell)
	case SeedAction:
		s.Trees.Seed(a.Target, p)
		s.Trees.SetDormant(a.Cell)
	}
}

func (s *State) complete(b *board.Board, cell int, p Player) {
	s.Trees.Remove(cell)
	s.Points[p] += s.Nutrients + RichnessBonus(b.Richness(cell))
}

// RichnessBonus is the extra score for harvesting on a cell of the given
// richness. Trees never stand on inactive cells, so richness 0 panics.
func RichnessBonus(richness int) int {
	switch richness {
	case 1:
		return 0
	case 2:
		return 2
	case 3:
		return 4
	}
	panic(fmt.Sprintf("richness of a tree can only be 1, 2 or 3, got %d", richness))
}

// Hash digests the whole position.
func (s State) Hash() StateHash {
	hasher := fnv.New64a()
	buf := make([]byte, 0, 8*(6+NumCells))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Day))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Nutrients))
	for p := Me; p <= Opponent; p++ {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Sun[p]))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(s.Points[p]))
	}
	buf = append(buf, byte(boolToInt(s.OpponentWaiting)))
	buf = binary.LittleEndian.AppendUint64(buf, s.Trees.occupied)
	for _, t := range s.Trees.All() {
		buf = append(buf, byte(t.Cell), byte(t.Size), byte(boolToInt(t.Mine)), byte(boolToInt(t.Dormant)))
	}
	hasher.Write(buf)
	return StateHash(hasher.Sum64())
}

func (s State) String() string {
	return strings.Join(s.Lines(), " | ")
}
