package ldraw

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bodgit/brickmosaic/catalog"
	"github.com/bodgit/brickmosaic/grid"
)

// Model is a decoded LDraw mosaic.
type Model struct {
	Header Header
	Grid   *grid.Grid
	// Parts is the number of part lines read.
	Parts int
}

type record struct {
	line  int
	color grid.Color
	x, y  int
	shape catalog.Shape
}

type decoder struct {
	r       io.Reader
	catalog *catalog.Catalog

	header  Header
	records []record
	line    int
}

func parseInt(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func (d *decoder) readComment(fields []string) {
	if len(fields) == 0 {
		return
	}
	value := strings.Join(fields, " ")
	switch {
	case fields[0] == step:
	case fields[0] == authorPrefix:
		d.header.Author = strings.TrimSpace(strings.TrimPrefix(value, authorPrefix))
	case fields[0] == licensePrefix:
		d.header.License = strings.TrimSpace(strings.TrimPrefix(value, licensePrefix))
	case strings.HasPrefix(fields[0], "!"), strings.HasSuffix(fields[0], ":"):
		// Other meta commands, e.g. "Name:" or "!LDRAW_ORG"
	case d.header.Title == "" && len(d.records) == 0:
		d.header.Title = value
	}
}

func (d *decoder) readPart(fields []string) error {
	if len(fields) != 14 {
		return formatError(d.line, "expected 15 fields, got %d", len(fields)+1)
	}

	var v [13]int
	for i := range v {
		n, ok := parseInt(fields[i])
		if !ok {
			return formatError(d.line, "invalid number %q", fields[i])
		}
		v[i] = n
	}
	if v[0] < 0 {
		return formatError(d.line, "invalid color %d", v[0])
	}

	var rot catalog.Rotation
	copy(rot[:], v[4:])

	part := strings.ToLower(fields[13])
	if !strings.HasSuffix(part, partSuffix) {
		return formatError(d.line, "invalid part reference %q", fields[13])
	}
	part = strings.TrimSuffix(part, partSuffix)

	s, ok := d.catalog.Lookup(part, rot)
	if !ok {
		return formatError(d.line, "unknown part %q with rotation %s", part, rot)
	}

	x, okX := Cell(v[1], s.Width)
	y, okY := Cell(v[3], s.Height)
	if !okX || !okY {
		return formatError(d.line, "position (%d, %d) is not aligned to the grid", v[1], v[3])
	}

	d.records = append(d.records, record{
		line:  d.line,
		color: grid.Color(v[0]),
		x:     x,
		y:     y,
		shape: s,
	})

	return nil
}

func (d *decoder) read() error {
	s := bufio.NewScanner(d.r)
	for s.Scan() {
		d.line++
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "0":
			d.readComment(fields[1:])
		case "1":
			if err := d.readPart(fields[1:]); err != nil {
				return err
			}
		default:
			return formatError(d.line, "unsupported line type %q", fields[0])
		}
	}
	return s.Err()
}

func (d *decoder) size() (int, error) {
	if len(d.records) == 0 {
		return 0, formatError(0, "no parts to infer the grid size from")
	}
	var n int
	for _, r := range d.records {
		if r.x < 0 || r.y < 0 {
			return 0, formatError(r.line, "cell (%d, %d) outside grid", r.x, r.y)
		}
		if e := r.x + r.shape.Width; e > n {
			n = e
		}
		if e := r.y + r.shape.Height; e > n {
			n = e
		}
		if n > grid.MaxSize {
			return 0, formatError(r.line, "%s at (%d, %d) outside the largest %dx%d grid", r.shape, r.x, r.y, grid.MaxSize, grid.MaxSize)
		}
	}
	return n, nil
}

func (d *decoder) decode(n int) (*Model, error) {
	if err := d.read(); err != nil {
		return nil, err
	}

	if n <= 0 {
		var err error
		if n, err = d.size(); err != nil {
			return nil, err
		}
	}

	g, err := grid.New(n)
	if err != nil {
		return nil, err
	}

	for _, r := range d.records {
		if !g.Contains(r.x, r.y) || !g.Contains(r.x+r.shape.Width-1, r.y+r.shape.Height-1) {
			return nil, formatError(r.line, "%s at (%d, %d) outside %dx%d grid", r.shape, r.x, r.y, n, n)
		}
		for y := r.y; y < r.y+r.shape.Height; y++ {
			for x := r.x; x < r.x+r.shape.Width; x++ {
				if g.At(x, y) != grid.Unset {
					return nil, formatError(r.line, "cell (%d, %d) already covered", x, y)
				}
				g.Set(x, y, r.color)
			}
		}
	}

	return &Model{
		Header: d.header,
		Grid:   g,
		Parts:  len(d.records),
	}, nil
}

// Decode reads an LDraw mosaic from r. Parts are matched against c by part
// number and rotation so that pieces larger than one cell fill every cell
// they cover. If n is zero or less the grid size is inferred from the
// furthest part.
func Decode(r io.Reader, c *catalog.Catalog, n int) (*Model, error) {
	d := decoder{
		r:       r,
		catalog: c,
	}
	return d.decode(n)
}
