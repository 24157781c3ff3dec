package ldraw

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bodgit/brickmosaic/pack"
)

type encoder struct {
	w *bufio.Writer
}

func (e *encoder) comment(prefix, value string) error {
	if value == "" {
		return nil
	}
	if prefix != "" {
		value = prefix + " " + value
	}
	_, err := fmt.Fprintf(e.w, "0 %s\n", value)
	return err
}

func (e *encoder) encode(h Header, pieces []pack.Piece) error {
	if err := e.comment("", h.Title); err != nil {
		return err
	}
	if err := e.comment(authorPrefix, h.Author); err != nil {
		return err
	}
	if err := e.comment(licensePrefix, h.License); err != nil {
		return err
	}

	for _, p := range pieces {
		if _, err := fmt.Fprintf(e.w, "1 %d %d 0 %d %s %s%s\n", p.Color, Position(p.X, p.Width), Position(p.Y, p.Height), p.Rotation, p.Part, partSuffix); err != nil {
			return err
		}
	}

	if err := e.comment("", step); err != nil {
		return err
	}

	return e.w.Flush()
}

// Encode writes the pieces to w as an LDraw model, one line per piece in the
// order given.
func Encode(w io.Writer, h Header, pieces []pack.Piece) error {
	e := encoder{w: bufio.NewWriter(w)}
	return e.encode(h, pieces)
}
