package game

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseState decodes a turn block: day, nutrients, "sun score",
// "oppSun oppScore oppWaiting", the tree count and one row per tree.
// Lines past the last tree row are ignored.
func ParseState(lines []string) (State, error) {
	if len(lines) < 5 {
		return State{}, fmt.Errorf("%w: state needs at least 5 lines, got %d", ErrInvalidParameters, len(lines))
	}

	var s State
	header, err := parseInts(lines[:5], []int{1, 1, 2, 3, 1})
	if err != nil {
		return State{}, err
	}
	s.Day, s.Nutrients = header[0][0], header[1][0]
	s.Sun[Me], s.Points[Me] = header[2][0], header[2][1]
	s.Sun[Opponent], s.Points[Opponent] = header[3][0], header[3][1]
	s.OpponentWaiting = header[3][2] == 1
	if s.Day < 0 || s.Day > LastDay {
		return State{}, fmt.Errorf("%w: day %d", ErrInvalidParameters, s.Day)
	}
	if !isFlag(header[3][2]) {
		return State{}, fmt.Errorf("%w: waiting flag %d", ErrInvalidParameters, header[3][2])
	}

	n := header[4][0]
	if n < 0 || n > NumCells || len(lines) < 5+n {
		return State{}, fmt.Errorf("%w: %d tree rows announced, %d available", ErrInvalidParameters, n, len(lines)-5)
	}
	trees := make([]Tree, 0, n)
	seen := uint64(0)
	for _, row := range lines[5 : 5+n] {
		t, err := ParseTree(row)
		if err != nil {
			return State{}, err
		}
		if seen&(1<<t.Cell) != 0 {
			return State{}, fmt.Errorf("%w: two trees on cell %d", ErrInvalidParameters, t.Cell)
		}
		seen |= 1 << t.Cell
		trees = append(trees, t)
	}
	s.Trees = NewTrees(trees...)
	return s, nil
}

func parseInts(lines []string, widths []int) ([][]int, error) {
	out := make([][]int, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != widths[i] {
			return nil, fmt.Errorf("%w: line %d %q", ErrInvalidParameters, i, line)
		}
		out[i] = make([]int, len(fields))
		for j, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d %q", ErrInvalidParameters, i, line)
			}
			out[i][j] = v
		}
	}
	return out, nil
}

// Lines encodes the state in the same block format ParseState reads.
func (s State) Lines() []string {
	trees := s.Trees.All()
	lines := make([]string, 0, 5+len(trees))
	lines = append(lines,
		strconv.Itoa(s.Day),
		strconv.Itoa(s.Nutrients),
		fmt.Sprintf("%d %d", s.Sun[Me], s.Points[Me]),
		fmt.Sprintf("%d %d %d", s.Sun[Opponent], s.Points[Opponent], boolToInt(s.OpponentWaiting)),
		strconv.Itoa(len(trees)),
	)
	for _, t := range trees {
		lines = append(lines, t.String())
	}
	return lines
}
