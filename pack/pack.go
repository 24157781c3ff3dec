/*
Package pack implements a greedy packer that replaces runs of same colored
cells with the largest pieces from a catalog.

Shapes are taken in catalog order. For each shape, every origin is visited in
raster order (top to bottom, left to right) and the shape is placed wherever
the whole rectangle is inside the grid, unoccupied and of one color. As every
catalog ends with a 1x1 shape, all set cells are covered once packing
finishes. The result is deterministic but not guaranteed to be optimal.
*/
package pack

import (
	"fmt"

	"github.com/bodgit/brickmosaic/catalog"
	"github.com/bodgit/brickmosaic/grid"
)

// Piece is a placed shape with its top-left cell at (X, Y).
type Piece struct {
	catalog.Shape
	Color grid.Color
	X     int
	Y     int
}

func (p Piece) String() string {
	return fmt.Sprintf("%s color %d at (%d, %d)", p.Shape, p.Color, p.X, p.Y)
}

// Covers reports whether the piece covers cell (x, y).
func (p Piece) Covers(x, y int) bool {
	return x >= p.X && x < p.X+p.Width && y >= p.Y && y < p.Y+p.Height
}

// CanPlace reports whether shape s fits with its top-left cell at (x, y):
// every covered cell is inside the grid, unoccupied and of color c.
func CanPlace(g *grid.Grid, x, y int, s catalog.Shape, c grid.Color) bool {
	if c == grid.Unset {
		return false
	}
	if !g.Contains(x, y) || !g.Contains(x+s.Width-1, y+s.Height-1) {
		return false
	}
	for dy := 0; dy < s.Height; dy++ {
		for dx := 0; dx < s.Width; dx++ {
			if g.Occupied(x+dx, y+dy) || g.At(x+dx, y+dy) != c {
				return false
			}
		}
	}
	return true
}

func place(g *grid.Grid, x, y int, s catalog.Shape) {
	for dy := 0; dy < s.Height; dy++ {
		for dx := 0; dx < s.Width; dx++ {
			if g.Occupied(x+dx, y+dy) {
				panic(fmt.Sprintf("pack: cell (%d, %d) covered twice", x+dx, y+dy))
			}
			g.MarkOccupied(x+dx, y+dy)
		}
	}
}

// Pack covers every set cell of g with pieces from c and returns them in the
// order they were placed. The occupancy mask of g is consumed; call
// g.Reset() before packing the same grid again.
func Pack(g *grid.Grid, c *catalog.Catalog) []Piece {
	n := g.Size()

	var pieces []Piece
	for _, s := range c.Shapes() {
		for y := 0; y <= n-s.Height; y++ {
			for x := 0; x <= n-s.Width; x++ {
				color := g.At(x, y)
				if color == grid.Unset {
					continue
				}
				if !CanPlace(g, x, y, s, color) {
					continue
				}
				place(g, x, y, s)
				pieces = append(pieces, Piece{
					Shape: s,
					Color: color,
					X:     x,
					Y:     y,
				})
			}
		}
	}
	return pieces
}

// Verify checks that pieces cover every set cell of g exactly once, leave
// Unset cells alone and only cover cells of their own color. The occupancy
// mask of g is not used.
func Verify(g *grid.Grid, pieces []Piece) error {
	n := g.Size()
	covered := make([]bool, n*n)
	for i, p := range pieces {
		if !g.Contains(p.X, p.Y) || !g.Contains(p.X+p.Width-1, p.Y+p.Height-1) {
			return fmt.Errorf("pack: piece %d (%s) outside grid", i, p)
		}
		for y := p.Y; y < p.Y+p.Height; y++ {
			for x := p.X; x < p.X+p.Width; x++ {
				if covered[y*n+x] {
					return fmt.Errorf("pack: piece %d (%s) overlaps cell (%d, %d)", i, p, x, y)
				}
				if c := g.At(x, y); c != p.Color {
					return fmt.Errorf("pack: piece %d (%s) covers cell (%d, %d) of color %d", i, p, x, y, c)
				}
				covered[y*n+x] = true
			}
		}
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if g.At(x, y) != grid.Unset && !covered[y*n+x] {
				return fmt.Errorf("pack: cell (%d, %d) not covered", x, y)
			}
		}
	}
	return nil
}
