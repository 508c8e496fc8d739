package board

// Coord is a cube coordinate on the hex grid. X+Y+Z is always 0.
type Coord struct {
	X, Y, Z int
}

// Orientation is one of the six hex directions, 0..5. It doubles as the sun
// direction for a given day.
type Orientation int

const NumOrientations = 6

var directions = [NumOrientations]Coord{
	{1, -1, 0},
	{1, 0, -1},
	{0, 1, -1},
	{-1, 1, 0},
	{-1, 0, 1},
	{0, -1, 1},
}

// Center of the board, cell 0.
var Center = Coord{}

// Direction returns the unit step for orientation o.
func Direction(o Orientation) Coord {
	if o < 0 || o >= NumOrientations {
		panic("orientation must be in 0..5")
	}
	return directions[o]
}

// Step moves distance cells from c along orientation o.
func (c Coord) Step(o Orientation, distance int) Coord {
	d := Direction(o)
	return Coord{
		X: c.X + d.X*distance,
		Y: c.Y + d.Y*distance,
		Z: c.Z + d.Z*distance,
	}
}

func (c Coord) Distance(other Coord) int {
	return max(abs(other.X-c.X), abs(other.Y-c.Y), abs(other.Z-c.Z))
}

// Ring lists the coordinates at exactly radius from c, starting at
// c + radius*dir(0) and walking radius steps along directions 2,3,4,5,0,1.
func (c Coord) Ring(radius int) []Coord {
	ring := make([]Coord, 0, NumOrientations*radius)
	next := c.Step(0, radius)
	for offset := 0; offset < NumOrientations; offset++ {
		o := Orientation((2 + offset) % NumOrientations)
		for step := 0; step < radius; step++ {
			ring = append(ring, next)
			next = next.Step(o, 1)
		}
	}
	return ring
}

// OnBoard reports whether c lies within Radius of the center.
func (c Coord) OnBoard() bool {
	return c.Distance(Center) <= Radius
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
