package brickmosaic

import (
	"fmt"
	"io"
	"sort"

	"github.com/bodgit/brickmosaic/catalog"
	"github.com/bodgit/brickmosaic/grid"
	"github.com/bodgit/brickmosaic/ldraw"
	"github.com/bodgit/brickmosaic/pack"
)

// Result is the outcome of packing a grid.
type Result struct {
	Size    int
	Pieces  []pack.Piece
	Summary pack.Summary
	// Units is the number of set cells, i.e. the piece count using only
	// 1x1 pieces.
	Units int
}

// Build packs a grid of colors, rows[y][x], with catalog c.
func Build(rows [][]grid.Color, c *catalog.Catalog) (*Result, error) {
	g, err := grid.FromRows(rows)
	if err != nil {
		return nil, err
	}
	return BuildGrid(g, c), nil
}

// BuildGrid packs g with catalog c. The occupancy of g is consumed.
func BuildGrid(g *grid.Grid, c *catalog.Catalog) *Result {
	pieces := pack.Pack(g, c)
	if err := pack.Verify(g, pieces); err != nil {
		panic(err)
	}
	return &Result{
		Size:    g.Size(),
		Pieces:  pieces,
		Summary: pack.Count(pieces),
		Units:   g.Count(),
	}
}

func colorName(c grid.Color) string {
	if lc, ok := ldraw.LookupColor(c); ok {
		return lc.Name
	}
	return fmt.Sprintf("Color %d", c)
}

// WriteColors prints the number of cells of each color in g followed by the
// total, e.g. "Black 1x1 plates/tiles: 10".
func WriteColors(w io.Writer, g *grid.Grid) error {
	h := g.Histogram()
	colors := make([]grid.Color, 0, len(h))
	for c := range h {
		colors = append(colors, c)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })

	for _, c := range colors {
		if _, err := fmt.Fprintf(w, "%s 1x1 plates/tiles: %d\n", colorName(c), h[c]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total pieces: %d\n", g.Count())
	return err
}
