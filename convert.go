package brickmosaic

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/brickmosaic/catalog"
	"github.com/bodgit/brickmosaic/grid"
	"github.com/bodgit/brickmosaic/ldraw"
	"github.com/bodgit/brickmosaic/reduce"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const optimizedSuffix = " (Optimized)"

func sha1File(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

func decodeImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func writeFile(file string, b []byte) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if _, err = f.Write(b); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func catalogOptions(c *catalog.Catalog) string {
	shapes := c.Shapes()
	s := make([]string, len(shapes))
	for i, shape := range shapes {
		s[i] = fmt.Sprintf("%s %s", shape, shape.Rotation)
	}
	return "optimize " + strings.Join(s, ", ")
}

func (m *Mosaic) cachedGrid(sha, options string, unit *catalog.Catalog) (*grid.Grid, error) {
	if m.db == nil {
		return nil, nil
	}

	d, err := m.db.FindDesign(sha, options)
	if err != nil || d == nil {
		return nil, err
	}

	model, err := ldraw.Decode(bytes.NewReader(d.LDraw), unit, d.Size)
	if err != nil {
		return nil, err
	}
	return model.Grid, nil
}

func (m *Mosaic) record(d *Design, r *Result) error {
	if m.db == nil {
		return nil
	}
	_, err := m.db.AddDesign(d, r.Summary)
	return err
}

// Convert reduces the image in input to a grid and writes it to output as an
// LDraw model of 1x1 tiles. The grid is returned along with the parts list.
func (m *Mosaic) Convert(input, output string, o reduce.Options, h ldraw.Header) (*grid.Grid, *Result, error) {
	sha, err := sha1File(input)
	if err != nil {
		return nil, nil, err
	}
	unit := m.catalog.Unit()
	options := fmt.Sprintf("convert %s %s", unit.Shapes()[0].Part, o)

	g, err := m.cachedGrid(sha, options, unit)
	if err != nil {
		return nil, nil, err
	}

	cached := g != nil
	if cached {
		m.logger.Printf("Using cached grid for \"%s\", with SHA1 \"%s\"\n", input, sha)
	} else {
		img, err := decodeImage(input)
		if err != nil {
			return nil, nil, err
		}
		if g, err = reduce.Image(img, o); err != nil {
			return nil, nil, err
		}
	}

	r := BuildGrid(g.Clone(), unit)

	b := new(bytes.Buffer)
	if err := ldraw.Encode(b, h, r.Pieces); err != nil {
		return nil, nil, err
	}

	if !cached {
		if err := m.record(&Design{
			SHA1:    sha,
			Options: options,
			Name:    filepath.Base(input),
			Size:    r.Size,
			Units:   r.Units,
			Pieces:  len(r.Pieces),
			LDraw:   b.Bytes(),
		}, r); err != nil {
			return nil, nil, err
		}
	}

	if err := writeFile(output, b.Bytes()); err != nil {
		return nil, nil, err
	}

	return g, r, nil
}

// Optimize reads the LDraw model in input, packs it with the catalog and
// writes the result to output. If n is zero or less the grid size is
// inferred from the model. Empty header fields are copied from the input
// model.
func (m *Mosaic) Optimize(input, output string, n int, h ldraw.Header) (*Result, error) {
	b, err := ioutil.ReadFile(input)
	if err != nil {
		return nil, err
	}
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	model, err := ldraw.Decode(bytes.NewReader(b), m.catalog, n)
	if err != nil {
		return nil, err
	}

	if h.Title == "" && model.Header.Title != "" {
		h.Title = strings.TrimSuffix(model.Header.Title, optimizedSuffix) + optimizedSuffix
	}
	if h.Author == "" {
		h.Author = model.Header.Author
	}
	if h.License == "" {
		h.License = model.Header.License
	}

	r := BuildGrid(model.Grid, m.catalog)
	m.logger.Printf("Packed \"%s\" into %d pieces from %d parts\n", input, r.Summary.Total, model.Parts)

	out := new(bytes.Buffer)
	if err := ldraw.Encode(out, h, r.Pieces); err != nil {
		return nil, err
	}

	if err := m.record(&Design{
		SHA1:    sha,
		Options: catalogOptions(m.catalog),
		Name:    filepath.Base(input),
		Size:    r.Size,
		Units:   r.Units,
		Pieces:  len(r.Pieces),
		LDraw:   out.Bytes(),
	}, r); err != nil {
		return nil, err
	}

	if err := writeFile(output, out.Bytes()); err != nil {
		return nil, err
	}

	return r, nil
}

// Designs lists the designs recorded in the database.
func (m *Mosaic) Designs() ([]Design, error) {
	if m.db == nil {
		return nil, nil
	}
	return m.db.Designs()
}

// Parts returns the parts list of a recorded design.
func (m *Mosaic) Parts(id int64) ([]PartCount, error) {
	if m.db == nil {
		return nil, nil
	}
	return m.db.Parts(id)
}
