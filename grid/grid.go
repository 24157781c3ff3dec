/*
Package grid implements the square grid of cell colors a mosaic is built from,
together with the occupancy mask used while pieces are placed on it.

Cells are addressed by (x, y) with the origin in the top-left corner and both
coordinates in the range [0, N). Storage is a pair of dense slices indexed by
y*N + x.
*/
package grid

import "fmt"

// Color is an opaque palette value. Mosaics use LDraw color codes, which are
// never negative.
type Color int

// Unset marks a cell that is not part of the mosaic.
const Unset Color = -1

// MaxSize is the largest supported grid size.
const MaxSize = 4096

var errSize = fmt.Errorf("grid: size must be between 1 and %d", MaxSize)

// OutOfBoundsError is the panic value used when a cell outside the grid is
// accessed.
type OutOfBoundsError struct {
	X, Y, N int
}

func (e OutOfBoundsError) Error() string {
	return fmt.Sprintf("grid: cell (%d, %d) outside %dx%d grid", e.X, e.Y, e.N, e.N)
}

// Grid is an N by N grid of colors plus an occupancy mask. Colors are fixed
// once the grid is populated; only occupancy changes while packing.
type Grid struct {
	n        int
	colors   []Color
	occupied []bool
}

// New returns an N by N grid with every cell Unset and unoccupied.
func New(n int) (*Grid, error) {
	if n <= 0 || n > MaxSize {
		return nil, errSize
	}
	g := &Grid{
		n:        n,
		colors:   make([]Color, n*n),
		occupied: make([]bool, n*n),
	}
	for i := range g.colors {
		g.colors[i] = Unset
	}
	return g, nil
}

// FromRows builds a grid from rows of colors, rows[y][x]. Every row must be
// the same length as the number of rows.
func FromRows(rows [][]Color) (*Grid, error) {
	g, err := New(len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.n {
			return nil, fmt.Errorf("grid: row %d has %d cells, expected %d", y, len(row), g.n)
		}
		copy(g.colors[y*g.n:], row)
	}
	return g, nil
}

// Size returns N.
func (g *Grid) Size() int {
	return g.n
}

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.n && y < g.n
}

func (g *Grid) index(x, y int) int {
	if !g.Contains(x, y) {
		panic(OutOfBoundsError{X: x, Y: y, N: g.n})
	}
	return y*g.n + x
}

// At returns the color of cell (x, y). It panics with an OutOfBoundsError if
// the cell is outside the grid.
func (g *Grid) At(x, y int) Color {
	return g.colors[g.index(x, y)]
}

// Set changes the color of cell (x, y). It is intended for populating a grid
// before it is packed.
func (g *Grid) Set(x, y int, c Color) {
	g.colors[g.index(x, y)] = c
}

// Occupied reports whether a piece already covers cell (x, y).
func (g *Grid) Occupied(x, y int) bool {
	return g.occupied[g.index(x, y)]
}

// MarkOccupied flags cell (x, y) as covered. Marking a covered cell again has
// no effect.
func (g *Grid) MarkOccupied(x, y int) {
	g.occupied[g.index(x, y)] = true
}

// Reset clears the occupancy mask.
func (g *Grid) Reset() {
	for i := range g.occupied {
		g.occupied[i] = false
	}
}

// Clone returns a copy of the grid colors with a fresh occupancy mask.
func (g *Grid) Clone() *Grid {
	dup := &Grid{
		n:        g.n,
		colors:   make([]Color, len(g.colors)),
		occupied: make([]bool, len(g.occupied)),
	}
	copy(dup.colors, g.colors)
	return dup
}

// Count returns the number of cells that are not Unset.
func (g *Grid) Count() int {
	var n int
	for _, c := range g.colors {
		if c != Unset {
			n++
		}
	}
	return n
}

// Histogram returns the number of cells of each set color.
func (g *Grid) Histogram() map[Color]int {
	h := make(map[Color]int)
	for _, c := range g.colors {
		if c != Unset {
			h[c]++
		}
	}
	return h
}

// Equal reports whether both grids have the same size and colors. Occupancy
// is ignored.
func (g *Grid) Equal(o *Grid) bool {
	if g.n != o.n {
		return false
	}
	for i := range g.colors {
		if g.colors[i] != o.colors[i] {
			return false
		}
	}
	return true
}
