package grid

import (
	"bufio"
	"io"
)

// Glyphs maps colors to the runes used when printing a grid. Colors without
// an entry are printed as '?', Unset cells as a space.
type Glyphs map[Color]rune

// WriteText prints the grid one row per line with each cell followed by a
// space, e.g. "# . # ".
func (g *Grid) WriteText(w io.Writer, glyphs Glyphs) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < g.n; y++ {
		for x := 0; x < g.n; x++ {
			r, ok := glyphs[g.At(x, y)]
			switch {
			case ok:
			case g.At(x, y) == Unset:
				r = ' '
			default:
				r = '?'
			}
			if _, err := bw.WriteRune(r); err != nil {
				return err
			}
			if err := bw.WriteByte(' '); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
