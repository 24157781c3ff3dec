/*
Package catalog defines the ordered set of rectangular piece shapes a mosaic
can be assembled from.

Shapes are tried largest area first. Shapes of equal area keep the order in
which they were declared, so for the standard catalog the 2x1 tile is tried
before its rotated 1x2 variant.
*/
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MaxSize is the largest width or height accepted for a shape.
const MaxSize = 16

// Part numbers used by the standard catalog.
const (
	Tile1x1 = "3070b"
	Tile1x2 = "3069b"
	Tile2x2 = "3068b"
)

var errNoUnit = errors.New("catalog: a 1x1 shape is required")

// Rotation is a 3x3 orientation matrix in row-major order, as written in an
// LDraw part reference.
type Rotation [9]int

var (
	// Identity leaves a part in its default orientation.
	Identity = Rotation{1, 0, 0, 0, 1, 0, 0, 0, 1}
	// Quarter turns a part 90 degrees about the vertical axis.
	Quarter = Rotation{0, 0, 1, 0, 1, 0, -1, 0, 0}
)

func (r Rotation) String() string {
	s := make([]string, len(r))
	for i, v := range r {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, " ")
}

// Shape is a rectangular piece covering Width by Height cells.
type Shape struct {
	Width    int
	Height   int
	Part     string
	Rotation Rotation
}

// Area returns the number of cells covered by the shape.
func (s Shape) Area() int {
	return s.Width * s.Height
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d (%s)", s.Width, s.Height, s.Part)
}

// UnsupportedShapeError is returned when a catalog is built from a shape that
// cannot be used for packing.
type UnsupportedShapeError struct {
	Shape  Shape
	Reason string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("catalog: unsupported shape %dx%d %q: %s", e.Shape.Width, e.Shape.Height, e.Shape.Part, e.Reason)
}

// Catalog is an immutable, priority ordered list of shapes.
type Catalog struct {
	shapes []Shape
}

type byArea []Shape

func (s byArea) Len() int {
	return len(s)
}

func (s byArea) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

func (s byArea) Less(i, j int) bool {
	return s[i].Area() > s[j].Area()
}

type shapeKey struct {
	part     string
	rotation Rotation
}

// New validates the shapes and returns them as a catalog ordered by
// descending area. A zero Rotation is replaced with Identity.
func New(shapes ...Shape) (*Catalog, error) {
	dims := make(map[[2]int]struct{}, len(shapes))
	keys := make(map[shapeKey]struct{}, len(shapes))

	var unit bool
	c := &Catalog{
		shapes: make([]Shape, 0, len(shapes)),
	}
	for _, s := range shapes {
		if s.Rotation == (Rotation{}) {
			s.Rotation = Identity
		}

		switch {
		case s.Width < 1 || s.Height < 1:
			return nil, &UnsupportedShapeError{s, "dimensions must be positive"}
		case s.Width > MaxSize || s.Height > MaxSize:
			return nil, &UnsupportedShapeError{s, fmt.Sprintf("dimensions must not exceed %d", MaxSize)}
		case s.Part == "":
			return nil, &UnsupportedShapeError{s, "missing part identifier"}
		}

		d := [2]int{s.Width, s.Height}
		if _, ok := dims[d]; ok {
			return nil, &UnsupportedShapeError{s, "duplicate dimensions"}
		}
		dims[d] = struct{}{}

		k := shapeKey{strings.ToLower(s.Part), s.Rotation}
		if _, ok := keys[k]; ok {
			return nil, &UnsupportedShapeError{s, "duplicate part and rotation"}
		}
		keys[k] = struct{}{}

		if s.Area() == 1 {
			unit = true
		}

		c.shapes = append(c.shapes, s)
	}

	if !unit {
		return nil, errNoUnit
	}

	sort.Stable(byArea(c.shapes))

	return c, nil
}

// Standard returns the 2x2, 2x1, 1x2 and 1x1 tile catalog.
func Standard() *Catalog {
	c, err := New(
		Shape{Width: 2, Height: 2, Part: Tile2x2, Rotation: Identity},
		Shape{Width: 2, Height: 1, Part: Tile1x2, Rotation: Identity},
		Shape{Width: 1, Height: 2, Part: Tile1x2, Rotation: Quarter},
		Shape{Width: 1, Height: 1, Part: Tile1x1, Rotation: Identity},
	)
	if err != nil {
		panic(err)
	}
	return c
}

// Units returns a catalog holding only the 1x1 tile, which reproduces the
// unoptimized mosaic.
func Units() *Catalog {
	c, err := New(Shape{Width: 1, Height: 1, Part: Tile1x1, Rotation: Identity})
	if err != nil {
		panic(err)
	}
	return c
}

// Unit returns a catalog holding only the 1x1 shape of c.
func (c *Catalog) Unit() *Catalog {
	for _, s := range c.shapes {
		if s.Area() == 1 {
			return &Catalog{shapes: []Shape{s}}
		}
	}
	panic(errNoUnit)
}

// Shapes returns the shapes in priority order.
func (c *Catalog) Shapes() []Shape {
	return append([]Shape(nil), c.shapes...)
}

// Len returns the number of shapes.
func (c *Catalog) Len() int {
	return len(c.shapes)
}

// Lookup finds the shape with the given part and orientation. Part numbers
// compare case-insensitively.
func (c *Catalog) Lookup(part string, r Rotation) (Shape, bool) {
	for _, s := range c.shapes {
		if strings.EqualFold(s.Part, part) && s.Rotation == r {
			return s, true
		}
	}
	return Shape{}, false
}
