package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlCatalog struct {
	Shapes []yamlShape `yaml:"shapes"`
}

type yamlShape struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Part     string `yaml:"part"`
	Rotation []int  `yaml:"rotation"`
}

// Load reads a catalog from YAML of the form:
//
//	shapes:
//	  - {width: 2, height: 2, part: 3068b}
//	  - {width: 1, height: 2, part: 3069b, rotation: [0, 0, 1, 0, 1, 0, -1, 0, 0]}
//	  - {width: 1, height: 1, part: 3070b}
func Load(r io.Reader) (*Catalog, error) {
	var y yamlCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	shapes := make([]Shape, 0, len(y.Shapes))
	for i, ys := range y.Shapes {
		s := Shape{
			Width:  ys.Width,
			Height: ys.Height,
			Part:   ys.Part,
		}
		switch len(ys.Rotation) {
		case 0:
		case len(s.Rotation):
			copy(s.Rotation[:], ys.Rotation)
		default:
			return nil, fmt.Errorf("catalog: shape %d: rotation needs %d values, got %d", i, len(s.Rotation), len(ys.Rotation))
		}
		shapes = append(shapes, s)
	}

	return New(shapes...)
}

// LoadFile reads a catalog from the named YAML file.
func LoadFile(file string) (*Catalog, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}
