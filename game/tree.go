package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Tree is a tree standing on a cell. A tree that has acted this day is dormant.
type Tree struct {
	Cell    int
	Size    int
	Mine    bool
	Dormant bool
}

func (t Tree) Owner() Player {
	if t.Mine {
		return Me
	}
	return Opponent
}

// DaysToComplete is the number of days needed to grow to size 3 and harvest.
func (t Tree) DaysToComplete() int {
	return MaxTreeSize + 1 - t.Size
}

// String renders the protocol row "cell size isMine isDormant".
func (t Tree) String() string {
	return fmt.Sprintf("%d %d %d %d", t.Cell, t.Size, boolToInt(t.Mine), boolToInt(t.Dormant))
}

// ParseTree reads a protocol tree row.
func ParseTree(s string) (Tree, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return Tree{}, fmt.Errorf("%w: tree row %q", ErrInvalidParameters, s)
	}
	values := [4]int{}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Tree{}, fmt.Errorf("%w: tree row %q", ErrInvalidParameters, s)
		}
		values[i] = v
	}
	t := Tree{Cell: values[0], Size: values[1], Mine: values[2] == 1, Dormant: values[3] == 1}
	if !isFlag(values[2]) || !isFlag(values[3]) {
		return Tree{}, fmt.Errorf("%w: tree row %q", ErrInvalidParameters, s)
	}
	if t.Cell < 0 || t.Cell >= NumCells || t.Size < 0 || t.Size > MaxTreeSize {
		return Tree{}, fmt.Errorf("%w: tree row %q", ErrInvalidParameters, s)
	}
	return t, nil
}

func isFlag(v int) bool {
	return v == 0 || v == 1
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Trees holds every tree on the board, one slot per cell, together with the
// number of trees per owner and size. It is a plain value: copying it copies
// the whole registry.
type Trees struct {
	slots    [NumCells]Tree
	occupied uint64
	counts   [2][MaxTreeSize + 1]int
}

// NewTrees builds a registry. It panics on overlapping trees or bad sizes.
func NewTrees(trees ...Tree) Trees {
	var r Trees
	for _, t := range trees {
		if t.Size < 0 || t.Size > MaxTreeSize {
			panic(fmt.Sprintf("incorrect size %d for tree at %d", t.Size, t.Cell))
		}
		if r.Has(t.Cell) {
			panic(fmt.Sprintf("two trees on cell %d", t.Cell))
		}
		r.put(t)
	}
	return r
}

func (r *Trees) put(t Tree) {
	r.slots[t.Cell] = t
	r.occupied |= 1 << t.Cell
	r.counts[t.Owner()][t.Size]++
}

func (r *Trees) Has(cell int) bool {
	return r.occupied&(1<<cell) != 0
}

// Get returns the tree at cell. It panics with ErrInvalidIndex when the cell is empty.
func (r *Trees) Get(cell int) Tree {
	if cell < 0 || cell >= NumCells || !r.Has(cell) {
		panic(fmt.Errorf("%w: no tree at %d", ErrInvalidIndex, cell))
	}
	return r.slots[cell]
}

// Count is the number of p's trees of the given size.
func (r *Trees) Count(size int, p Player) int {
	return r.counts[p][size]
}

// Len is the number of trees owned by p.
func (r *Trees) Len(p Player) int {
	total := 0
	for _, n := range r.counts[p] {
		total += n
	}
	return total
}

// Seed places a dormant size-0 tree for p.
func (r *Trees) Seed(cell int, p Player) {
	if r.Has(cell) {
		panic(fmt.Sprintf("cell %d is already occupied", cell))
	}
	r.put(Tree{Cell: cell, Size: 0, Mine: p == Me, Dormant: true})
}

// Grow increases the size of the tree at cell by one and makes it dormant.
func (r *Trees) Grow(cell int) {
	t := r.Get(cell)
	if t.Size >= MaxTreeSize {
		panic(fmt.Errorf("%w: cannot grow tree of size %d at %d", ErrInvalidIndex, t.Size, cell))
	}
	r.counts[t.Owner()][t.Size]--
	t.Size++
	t.Dormant = true
	r.counts[t.Owner()][t.Size]++
	r.slots[cell] = t
}

// Remove deletes the tree at cell, if any.
func (r *Trees) Remove(cell int) {
	if !r.Has(cell) {
		return
	}
	t := r.slots[cell]
	r.counts[t.Owner()][t.Size]--
	r.slots[cell] = Tree{}
	r.occupied &^= 1 << cell
}

func (r *Trees) SetDormant(cell int) {
	t := r.Get(cell)
	t.Dormant = true
	r.slots[cell] = t
}

// WakeUp clears the dormant flag of every tree.
func (r *Trees) WakeUp() {
	for cell := range r.slots {
		r.slots[cell].Dormant = false
	}
}

// All returns every tree in cell order.
func (r *Trees) All() []Tree {
	trees := make([]Tree, 0, r.Len(Me)+r.Len(Opponent))
	for cell := 0; cell < NumCells; cell++ {
		if r.Has(cell) {
			trees = append(trees, r.slots[cell])
		}
	}
	return trees
}

// Owned returns p's trees in cell order.
func (r *Trees) Owned(p Player) []Tree {
	trees := make([]Tree, 0, r.Len(p))
	for cell := 0; cell < NumCells; cell++ {
		if r.Has(cell) && r.slots[cell].Owner() == p {
			trees = append(trees, r.slots[cell])
		}
	}
	return trees
}

// swapOwners flips the ownership of every tree.
func (r *Trees) swapOwners() {
	for cell := 0; cell < NumCells; cell++ {
		if r.Has(cell) {
			r.slots[cell].Mine = !r.slots[cell].Mine
		}
	}
	r.counts[Me], r.counts[Opponent] = r.counts[Opponent], r.counts[Me]
}
