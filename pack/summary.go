package pack

import (
	"fmt"
	"io"
	"sort"

	"github.com/bodgit/brickmosaic/grid"
)

// Key identifies a shape in a summary. Rotated variants of the same part are
// counted separately.
type Key struct {
	Part   string
	Width  int
	Height int
}

// ColorKey identifies a shape of a particular color.
type ColorKey struct {
	Key
	Color grid.Color
}

// Summary is a parts list.
type Summary struct {
	Counts map[Key]int
	Colors map[ColorKey]int
	Total  int
}

// Count builds the parts list for pieces.
func Count(pieces []Piece) Summary {
	s := Summary{
		Counts: make(map[Key]int),
		Colors: make(map[ColorKey]int),
		Total:  len(pieces),
	}
	for _, p := range pieces {
		k := Key{p.Part, p.Width, p.Height}
		s.Counts[k]++
		s.Colors[ColorKey{k, p.Color}]++
	}
	return s
}

func (k Key) less(o Key) bool {
	switch {
	case k.Part != o.Part:
		return k.Part < o.Part
	case k.Width != o.Width:
		return k.Width < o.Width
	default:
		return k.Height < o.Height
	}
}

// Keys returns the shapes in the summary sorted by part, width and height.
func (s Summary) Keys() []Key {
	keys := make([]Key, 0, len(s.Counts))
	for k := range s.Counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return keys
}

// ColorKeys returns the colored shapes sorted by shape then color.
func (s Summary) ColorKeys() []ColorKey {
	keys := make([]ColorKey, 0, len(s.Colors))
	for k := range s.Colors {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Key != keys[j].Key {
			return keys[i].Key.less(keys[j].Key)
		}
		return keys[i].Color < keys[j].Color
	})
	return keys
}

// WriteText prints one "WxH tile (part): count" line per shape followed by
// the total. baseline is the unoptimized piece count and is omitted when
// zero.
func (s Summary) WriteText(w io.Writer, baseline int) error {
	for _, k := range s.Keys() {
		if _, err := fmt.Fprintf(w, "%dx%d tile (%s): %d\n", k.Width, k.Height, k.Part, s.Counts[k]); err != nil {
			return err
		}
	}
	if baseline > 0 {
		_, err := fmt.Fprintf(w, "Total pieces: %d (down from %d)\n", s.Total, baseline)
		return err
	}
	_, err := fmt.Fprintf(w, "Total pieces: %d\n", s.Total)
	return err
}
