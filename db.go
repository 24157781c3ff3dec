package brickmosaic

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/bodgit/brickmosaic/grid"
	"github.com/bodgit/brickmosaic/pack"
	"github.com/klauspost/compress/zstd"
	_ "github.com/mattn/go-sqlite3"
)

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

// Design is a mosaic recorded in the database. The LDraw model is only
// populated by FindDesign.
type Design struct {
	ID      int64
	SHA1    string
	Options string
	Name    string
	Size    int
	Units   int
	Pieces  int
	LDraw   []byte
}

// PartCount is the number of pieces of one shape and color in a design.
type PartCount struct {
	pack.ColorKey
	Count int
}

// DesignDB stores converted and optimized designs along with their parts
// lists.
type DesignDB struct {
	db *sql.DB
	// Serialises writers, SQLite only allows one at a time
	mu sync.Mutex
}

// NewDesignDB opens the SQLite database in file, creating the tables if
// needed.
func NewDesignDB(file string) (*DesignDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS design (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL, options TEXT NOT NULL, name TEXT NOT NULL, size INTEGER NOT NULL, units INTEGER NOT NULL, pieces INTEGER NOT NULL, ldraw BLOB NOT NULL, UNIQUE(sha1, options))"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS part (design_id INTEGER NOT NULL, part TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, color INTEGER NOT NULL, count INTEGER NOT NULL, FOREIGN KEY(design_id) REFERENCES design(id) ON DELETE CASCADE)"); err != nil {
		return nil, err
	}

	return &DesignDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *DesignDB) Close() error {
	return db.db.Close()
}

// AddDesign records d along with its parts list, replacing any design with
// the same SHA1 and options. The LDraw model is stored compressed.
func (db *DesignDB) AddDesign(d *Design, s pack.Summary) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM design WHERE sha1 = ? AND options = ?", d.SHA1, d.Options); err != nil {
		return 0, err
	}

	result, err := tx.Exec("INSERT INTO design (sha1, options, name, size, units, pieces, ldraw) VALUES (?, ?, ?, ?, ?, ?, ?)", d.SHA1, d.Options, d.Name, d.Size, d.Units, d.Pieces, encoder.EncodeAll(d.LDraw, nil))
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, k := range s.ColorKeys() {
		if _, err = tx.Exec("INSERT INTO part (design_id, part, width, height, color, count) VALUES (?, ?, ?, ?, ?, ?)", id, k.Part, k.Width, k.Height, k.Color, s.Colors[k]); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	d.ID = id

	return id, nil
}

// FindDesign returns the design with the given SHA1 and options, or nil if
// there isn't one.
func (db *DesignDB) FindDesign(sha, options string) (*Design, error) {
	d := Design{
		SHA1:    sha,
		Options: options,
	}
	var blob []byte
	switch err := db.db.QueryRow("SELECT id, name, size, units, pieces, ldraw FROM design WHERE sha1 = ? AND options = ?", sha, options).Scan(&d.ID, &d.Name, &d.Size, &d.Units, &d.Pieces, &blob); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		b, err := decoder.DecodeAll(blob, nil)
		if err != nil {
			return nil, err
		}
		d.LDraw = b
		return &d, nil
	default:
		return nil, err
	}
}

// Designs lists every recorded design, most recent first.
func (db *DesignDB) Designs() ([]Design, error) {
	rows, err := db.db.Query("SELECT id, sha1, options, name, size, units, pieces FROM design ORDER BY id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var designs []Design
	for rows.Next() {
		var d Design
		if err := rows.Scan(&d.ID, &d.SHA1, &d.Options, &d.Name, &d.Size, &d.Units, &d.Pieces); err != nil {
			return nil, err
		}
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

// Parts returns the parts list of a design ordered by part, dimensions and
// color.
func (db *DesignDB) Parts(id int64) ([]PartCount, error) {
	rows, err := db.db.Query("SELECT part, width, height, color, count FROM part WHERE design_id = ? ORDER BY part, width, height, color", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []PartCount
	for rows.Next() {
		var p PartCount
		var c int
		if err := rows.Scan(&p.Part, &p.Width, &p.Height, &c, &p.Count); err != nil {
			return nil, err
		}
		p.Color = grid.Color(c)
		parts = append(parts, p)
	}
	return parts, rows.Err()
}
