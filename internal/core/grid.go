package core

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned when a grid is requested with a non-positive
// width or height.
var ErrInvalidSize = errors.New("grid dimensions must be positive")

// CellState is the value stored in a single grid cell.
type CellState uint8

const (
	Dead CellState = iota
	Alive
	// Dying is only produced by three-state automata. It does not count as a
	// live neighbour.
	Dying
)

func (s CellState) String() string {
	switch s {
	case Dead:
		return "dead"
	case Alive:
		return "alive"
	case Dying:
		return "dying"
	default:
		return fmt.Sprintf("CellState(%d)", uint8(s))
	}
}

// Grid stores a toroidal 2D grid of cell states in row-major order.
// Dimensions are fixed after construction.
type Grid struct {
	W, H int
	data []CellState
	rng  *RNG
}

// NewGrid allocates a grid with every cell Dead.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
	}
	return &Grid{W: w, H: h, data: make([]CellState, w*h)}, nil
}

// MustGrid is like NewGrid but panics on invalid dimensions.
func MustGrid(w, h int) *Grid {
	g, err := NewGrid(w, h)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so renderers can read values directly.
func (g *Grid) Cells() []CellState { return g.data }

// Index returns the linear slice index for in-range coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates. Each axis wraps
// by its own dimension.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Get returns the state at (x, y). Any integer pair is valid.
func (g *Grid) Get(x, y int) CellState {
	x, y = g.Wrap(x, y)
	return g.data[y*g.W+x]
}

// Set writes the state at (x, y), wrapping out-of-range coordinates.
func (g *Grid) Set(x, y int, s CellState) {
	x, y = g.Wrap(x, y)
	g.data[y*g.W+x] = s
}

// Clear sets every cell to Dead.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = Dead
	}
}

// RandomFill sets each cell Alive with probability p using a time-seeded
// source owned by the grid. Successive calls produce different fills.
func (g *Grid) RandomFill(p float64) {
	if g.rng == nil {
		g.rng = NewTimeRNG()
	}
	g.RandomFillWith(g.rng, p)
}

// RandomFillWith is RandomFill with an explicit source. p <= 0 clears the
// grid and p >= 1 fills it completely without consulting the source.
func (g *Grid) RandomFillWith(rng *RNG, p float64) {
	switch {
	case p <= 0:
		g.Clear()
		return
	case p >= 1:
		for i := range g.data {
			g.data[i] = Alive
		}
		return
	}
	for i := range g.data {
		if rng.Chance(p) {
			g.data[i] = Alive
			continue
		}
		g.data[i] = Dead
	}
}

// CountNeighbours counts the cells in state s among the eight wrapped Moore
// neighbours of (x, y).
func (g *Grid) CountNeighbours(x, y int, s CellState) int {
	w, h := g.W, g.H
	count := 0
	for dy := -1; dy <= 1; dy++ {
		ny := ((y+dy)%h + h) % h
		row := g.data[ny*w : ny*w+w]
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := ((x+dx)%w + w) % w
			if row[nx] == s {
				count++
			}
		}
	}
	return count
}

// CountLiveNeighbours counts Alive cells in the Moore neighbourhood of (x, y).
func (g *Grid) CountLiveNeighbours(x, y int) int {
	return g.CountNeighbours(x, y, Alive)
}

// Population returns the number of Alive cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.data {
		if c == Alive {
			n++
		}
	}
	return n
}

// CopyFrom overwrites g with the contents of src. It reports false when the
// dimensions differ.
func (g *Grid) CopyFrom(src *Grid) bool {
	if src == nil || src.W != g.W || src.H != g.H {
		return false
	}
	copy(g.data, src.data)
	return true
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{W: g.W, H: g.H, data: make([]CellState, len(g.data))}
	copy(c.data, g.data)
	return c
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.W != other.W || g.H != other.H {
		return false
	}
	for i, c := range g.data {
		if other.data[i] != c {
			return false
		}
	}
	return true
}
