package brickmosaic

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/brickmosaic/catalog"
	"github.com/bodgit/brickmosaic/ldraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputName(t *testing.T) {
	name, err := outputName("/in", filepath.Join("/in", "logos", "coder.png"))
	require.NoError(t, err)
	assert.Equal(t, "logos_coder", name)

	name, err = outputName("/in", filepath.Join("/in", "a.jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "a", name)
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")

	require.NoError(t, os.MkdirAll(filepath.Join(in, "sub"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(in, ".hidden"), 0755))
	writeQuadrants(t, filepath.Join(in, "a.png"))
	writeQuadrants(t, filepath.Join(in, "sub", "b.PNG"))
	writeQuadrants(t, filepath.Join(in, ".c.png"))
	writeQuadrants(t, filepath.Join(in, ".hidden", "d.png"))
	require.NoError(t, ioutil.WriteFile(filepath.Join(in, "notes.txt"), []byte("not an image"), 0644))

	m, logs := newTestMosaic(t, dir)
	require.NoError(t, m.Batch(in, out, smallOptions(), ldraw.Header{}, 2))

	files, err := ioutil.ReadDir(out)
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name())
	}
	assert.ElementsMatch(t, []string{"a.ldr", "a_optimized.ldr", "sub_b.ldr", "sub_b_optimized.ldr"}, names)

	f, err := os.Open(filepath.Join(out, "sub_b_optimized.ldr"))
	require.NoError(t, err)
	defer f.Close()
	model, err := ldraw.Decode(f, m.Catalog(), 0)
	require.NoError(t, err)
	assert.Equal(t, "sub_b Mosaic 4x4 (Optimized)", model.Header.Title)
	assert.Equal(t, 4, model.Parts)

	assert.Contains(t, logs.String(), "into 4 pieces, down from 16")
}

func TestBatchError(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	require.NoError(t, os.MkdirAll(in, 0755))
	writeQuadrants(t, filepath.Join(in, "a.png"))
	require.NoError(t, ioutil.WriteFile(filepath.Join(in, "broken.png"), []byte("not an image"), 0644))

	m, _ := newTestMosaic(t, dir)
	assert.Error(t, m.Batch(in, filepath.Join(dir, "out"), smallOptions(), ldraw.Header{}, 1))

	assert.Error(t, m.Batch(filepath.Join(dir, "missing"), filepath.Join(dir, "out"), smallOptions(), ldraw.Header{}, 1))
}

func TestBatchCustomCatalog(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")
	require.NoError(t, os.MkdirAll(in, 0755))
	writeQuadrants(t, filepath.Join(in, "a.png"))

	plates, err := catalog.New(
		catalog.Shape{Width: 1, Height: 1, Part: "3024"},
		catalog.Shape{Width: 2, Height: 2, Part: "3022"},
	)
	require.NoError(t, err)

	m, err := New(filepath.Join(dir, "test.db"), plates, nil)
	require.NoError(t, err)
	defer m.Close()

	// Twice, so the second run decodes the cached 1x1 model
	for i := 0; i < 2; i++ {
		require.NoError(t, m.Batch(in, out, smallOptions(), ldraw.Header{}, 1))
	}

	b, err := ioutil.ReadFile(filepath.Join(out, "a.ldr"))
	require.NoError(t, err)
	assert.Equal(t, 16, strings.Count(string(b), "3024.dat"))

	b, err = ioutil.ReadFile(filepath.Join(out, "a_optimized.ldr"))
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(b), "3022.dat"))
	assert.NotContains(t, string(b), "3024.dat")
}
