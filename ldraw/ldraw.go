/*
Package ldraw implements reading and writing mosaics as LDraw model files.

Each piece is written as a type 1 line referencing a part:

	1 <color> <x> <y> <z> <a> <b> <c> <d> <e> <f> <g> <h> <i> <part>.dat

The mosaic lies flat in the X/Z plane with Y fixed at zero. A piece spanning w
by h cells with its top-left cell at (cx, cy) is centred on
(cx*Unit + w*Unit/2, cy*Unit + h*Unit/2), so a 1x1 piece at (0, 0) sits at
(10, 10). The nine values a..i are the rotation matrix of the part.

Comment lines (type 0) before the first part carry the title, author and
license of the model. A "0 STEP" line is written after the last part.
*/
package ldraw

import (
	"fmt"
)

// Unit is the distance in LDraw units between the centers of adjacent
// cells.
const Unit = 20

const (
	authorPrefix  = "Author:"
	licensePrefix = "!LICENSE"
	step          = "STEP"
	partSuffix    = ".dat"
)

// Position returns the LDraw coordinate of the center of a run of span cells
// starting at cell.
func Position(cell, span int) int {
	return cell*Unit + span*Unit/2
}

// Cell is the inverse of Position. It reports false if pos is not the center
// of a run of span cells.
func Cell(pos, span int) (int, bool) {
	off := pos - span*Unit/2
	if off%Unit != 0 {
		return 0, false
	}
	return off / Unit, true
}

// Header holds the descriptive comment lines of a model.
type Header struct {
	Title   string
	Author  string
	License string
}

// FormatError reports a malformed line in an LDraw file.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return "ldraw: " + e.Msg
	}
	return fmt.Sprintf("ldraw: line %d: %s", e.Line, e.Msg)
}

func formatError(line int, format string, a ...interface{}) error {
	return &FormatError{
		Line: line,
		Msg:  fmt.Sprintf(format, a...),
	}
}
