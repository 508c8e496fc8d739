package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	NumCells    = 37
	Radius      = 3
	MaxDistance = 3
	MaxRichness = 3
	NoNeighbor  = -1
)

var (
	ErrParse        = errors.New("malformed cell row")
	ErrInvalidBoard = errors.New("invalid board")
)

// Cell is one hex of the board as described by a startup row.
type Cell struct {
	Index     int
	Richness  int
	Neighbors [NumOrientations]int // NoNeighbor at the edge
}

// Board is the static 37-cell board. Geometry lookups are shared tables; the
// board itself only carries per-cell richness and the declared adjacency.
type Board struct {
	cells [NumCells]Cell
}

// Static geometry, built once.
var (
	coords       [NumCells]Coord
	indexByCoord = make(map[Coord]int, NumCells)
	neighborsAt  [MaxDistance + 1][NumCells][]int
	rays         [NumOrientations][NumCells][]int
)

func init() {
	coords[0] = Center
	next := 1
	for r := 1; r <= Radius; r++ {
		for _, c := range Center.Ring(r) {
			coords[next] = c
			next++
		}
	}
	for i, c := range coords {
		indexByCoord[c] = i
	}

	for d := 1; d <= MaxDistance; d++ {
		for i, c := range coords {
			cells := []int{}
			for r := 1; r <= d; r++ {
				for _, n := range c.Ring(r) {
					if n.OnBoard() {
						cells = append(cells, indexByCoord[n])
					}
				}
			}
			neighborsAt[d][i] = cells
		}
	}

	// A ray that leaves the hexagon never re-enters it, so the on-board part of
	// every ray is a prefix.
	for o := Orientation(0); o < NumOrientations; o++ {
		for i, c := range coords {
			ray := []int{}
			for distance := 1; distance <= MaxDistance; distance++ {
				n := c.Step(o, distance)
				if !n.OnBoard() {
					break
				}
				ray = append(ray, indexByCoord[n])
			}
			rays[o][i] = ray
		}
	}
}

// CoordOf returns the cube coordinate of a cell index.
func CoordOf(cell int) Coord {
	return coords[cell]
}

// IndexOf returns the cell index at c, or false when c is off the board.
func IndexOf(c Coord) (int, bool) {
	i, ok := indexByCoord[c]
	return i, ok
}

// New builds a board from exactly one cell per index.
func New(cells []Cell) (*Board, error) {
	if len(cells) != NumCells {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidBoard, NumCells, len(cells))
	}
	b := &Board{}
	seen := [NumCells]bool{}
	for _, c := range cells {
		if c.Index < 0 || c.Index >= NumCells {
			return nil, fmt.Errorf("%w: cell index %d out of range", ErrInvalidBoard, c.Index)
		}
		if seen[c.Index] {
			return nil, fmt.Errorf("%w: duplicate cell %d", ErrInvalidBoard, c.Index)
		}
		if c.Richness < 0 || c.Richness > MaxRichness {
			return nil, fmt.Errorf("%w: cell %d has richness %d", ErrInvalidBoard, c.Index, c.Richness)
		}
		seen[c.Index] = true
		b.cells[c.Index] = c
	}
	return b, nil
}

// Parse builds a board from startup rows.
func Parse(rows []string) (*Board, error) {
	cells := make([]Cell, 0, len(rows))
	for i, row := range rows {
		c, err := ParseCell(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		cells = append(cells, c)
	}
	return New(cells)
}

// ParseCell reads "index richness n0 n1 n2 n3 n4 n5".
func ParseCell(row string) (Cell, error) {
	fields := strings.Fields(row)
	if len(fields) != 2+NumOrientations {
		return Cell{}, fmt.Errorf("%w: %q has %d fields", ErrParse, row, len(fields))
	}
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Cell{}, fmt.Errorf("%w: %q: %v", ErrParse, row, err)
		}
		values[i] = v
	}
	c := Cell{Index: values[0], Richness: values[1]}
	for o := range c.Neighbors {
		n := values[2+o]
		if n < 0 {
			n = NoNeighbor
		}
		c.Neighbors[o] = n
	}
	return c, nil
}

func (c Cell) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(c.Index))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(c.Richness))
	for _, n := range c.Neighbors {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}

func (b *Board) Cell(cell int) Cell {
	return b.cells[cell]
}

func (b *Board) Richness(cell int) int {
	return b.cells[cell].Richness
}

// Neighbors returns every cell within distance of cell (rings 1..distance),
// clipped to the board. The slice is shared and must not be modified.
func (b *Board) Neighbors(cell, distance int) []int {
	if distance < 1 || distance > MaxDistance {
		panic(fmt.Sprintf("neighbor distance must be 1..%d, got %d", MaxDistance, distance))
	}
	return neighborsAt[distance][cell]
}

// Line returns the cells at distance 1..length from cell along orientation o,
// clipped to the board. Used for shadow casting.
func (b *Board) Line(cell, length int, o Orientation) []int {
	ray := rays[o][cell]
	if length < len(ray) {
		return ray[:max(length, 0)]
	}
	return ray
}

// Rows renders the board in the startup row format.
func (b *Board) Rows() []string {
	rows := make([]string, NumCells)
	for i, c := range b.cells {
		rows[i] = c.String()
	}
	return rows
}
