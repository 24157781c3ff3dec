/*
Package brickmosaic is a library for turning images into tile mosaics that
can be built from real bricks.

An image is first reduced to a square grid of LDraw colors and written out as
a model of 1x1 tiles. The model can then be optimized by greedily replacing
runs of same colored tiles with larger pieces, which lowers the part count.
Results are recorded in a small SQLite database so repeated conversions of
the same image are cheap and parts lists can be reviewed later.
*/
package brickmosaic

import (
	"io/ioutil"
	"log"

	"github.com/bodgit/brickmosaic/catalog"
)

// Mosaic converts images and optimizes models, recording each result in an
// optional design database.
type Mosaic struct {
	db      *DesignDB
	catalog *catalog.Catalog
	logger  *log.Logger
}

// New returns a Mosaic that records designs in the database file and packs
// with catalog c. An empty file disables the database; a nil catalog selects
// catalog.Standard(). A nil logger discards all output.
func New(file string, c *catalog.Catalog, logger *log.Logger) (*Mosaic, error) {
	if c == nil {
		c = catalog.Standard()
	}
	if logger == nil {
		logger = log.New(ioutil.Discard, "", 0)
	}

	m := &Mosaic{
		catalog: c,
		logger:  logger,
	}

	if file != "" {
		db, err := NewDesignDB(file)
		if err != nil {
			return nil, err
		}
		m.db = db
	}

	return m, nil
}

// Catalog returns the catalog used for optimizing.
func (m *Mosaic) Catalog() *catalog.Catalog {
	return m.catalog
}

// Close closes the design database, if any.
func (m *Mosaic) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}
