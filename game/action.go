package game

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// ActionType is ordered so that sorting actions groups them as
// WAIT, COMPLETE, GROW, SEED.
type ActionType int

const (
	WaitAction ActionType = iota
	CompleteAction
	GrowAction
	SeedAction
)

var actionNames = [...]string{"WAIT", "COMPLETE", "GROW", "SEED"}

func (t ActionType) String() string {
	return actionNames[t]
}

// Action is a single move. Cell is the acting tree (or the seed source) and
// Target is the seeded cell.
type Action struct {
	Type   ActionType
	Cell   int
	Target int
}

func Wait() Action {
	return Action{Type: WaitAction}
}

func Complete(cell int) Action {
	return Action{Type: CompleteAction, Cell: cell}
}

func Grow(cell int) Action {
	return Action{Type: GrowAction, Cell: cell}
}

func Seed(from, to int) Action {
	return Action{Type: SeedAction, Cell: from, Target: to}
}

func (a Action) IsWait() bool {
	return a.Type == WaitAction
}

// Compare orders actions by type, then acting cell, then target.
func (a Action) Compare(other Action) int {
	if c := cmp.Compare(a.Type, other.Type); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Cell, other.Cell); c != 0 {
		return c
	}
	return cmp.Compare(a.Target, other.Target)
}

func (a Action) String() string {
	switch a.Type {
	case WaitAction:
		return "WAIT"
	case SeedAction:
		return fmt.Sprintf("SEED %d %d", a.Cell, a.Target)
	default:
		return fmt.Sprintf("%s %d", a.Type, a.Cell)
	}
}

// ParseAction reads the protocol form of an action.
func ParseAction(s string) (Action, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return Action{}, fmt.Errorf("%w: empty action", ErrUnknownInput)
	}

	var want int
	var kind ActionType
	switch fields[0] {
	case "WAIT":
		kind, want = WaitAction, 1
	case "COMPLETE":
		kind, want = CompleteAction, 2
	case "GROW":
		kind, want = GrowAction, 2
	case "SEED":
		kind, want = SeedAction, 3
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownInput, s)
	}
	if len(fields) != want {
		return Action{}, fmt.Errorf("%w: %q", ErrInvalidParameters, s)
	}

	cells := make([]int, 0, 2)
	for _, f := range fields[1:] {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 || v >= NumCells {
			return Action{}, fmt.Errorf("%w: %q", ErrInvalidParameters, s)
		}
		cells = append(cells, v)
	}

	a := Action{Type: kind}
	if len(cells) > 0 {
		a.Cell = cells[0]
	}
	if len(cells) > 1 {
		a.Target = cells[1]
	}
	return a, nil
}
