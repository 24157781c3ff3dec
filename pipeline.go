package brickmosaic

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/brickmosaic/ldraw"
	"github.com/bodgit/brickmosaic/reduce"
)

// DefaultWorkers is the number of images converted concurrently by Batch.
const DefaultWorkers = 4

var imageExtensions = map[string]struct{}{
	".bmp":  {},
	".gif":  {},
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

// findImages sends every image below base to the returned channel. Hidden
// entries are skipped so ".git" or editor backups never reach a worker.
func (m *Mosaic) findImages(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.WalkDir(base, func(file string, d fs.DirEntry, err error) error {
			switch {
			case err != nil:
				return err
			case file != base && strings.HasPrefix(d.Name(), "."):
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			case !d.Type().IsRegular():
				return nil
			}

			if _, ok := imageExtensions[strings.ToLower(filepath.Ext(file))]; !ok {
				return nil
			}

			select {
			case out <- file:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return out, errc, nil
}

// outputName flattens the path of file relative to base into a single file
// name without an extension, so "logos/coder.png" becomes "logos_coder"
func outputName(base, file string) (string, error) {
	rel, err := filepath.Rel(base, file)
	if err != nil {
		return "", err
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return strings.ReplaceAll(rel, string(os.PathSeparator), "_"), nil
}

func (m *Mosaic) imageWorker(ctx context.Context, in <-chan string, base, outDir string, o reduce.Options, h ldraw.Header) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}

			name, err := outputName(base, file)
			if err != nil {
				errc <- err
				return
			}

			header := h
			if header.Title == "" {
				header.Title = fmt.Sprintf("%s Mosaic %dx%d", name, o.Size, o.Size)
			}

			units := filepath.Join(outDir, name+".ldr")
			if _, _, err := m.Convert(file, units, o, header); err != nil {
				errc <- fmt.Errorf("%s: %w", file, err)
				return
			}

			r, err := m.Optimize(units, filepath.Join(outDir, name+"_optimized.ldr"), o.Size, ldraw.Header{})
			if err != nil {
				errc <- fmt.Errorf("%s: %w", units, err)
				return
			}

			m.logger.Printf("Converted \"%s\" into %d pieces, down from %d\n", file, r.Summary.Total, r.Units)
		}
	}()
	return errc, nil
}

// waitForPipeline cancels the pipeline on the first error reported by any
// stage and returns it once every stage has finished.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	out := make(chan error, len(cs))

	var wg sync.WaitGroup
	for _, c := range cs {
		wg.Add(1)
		go func(c <-chan error) {
			defer wg.Done()
			for err := range c {
				out <- err
			}
		}(c)
	}

	go func() {
		defer close(out)
		wg.Wait()
	}()

	return out
}

// Batch converts and optimizes every image found under path, writing a 1x1
// model and an optimized model for each into outDir. Each worker packs its
// own grids so nothing is shared between them besides the database.
func (m *Mosaic) Batch(path, outDir string, o reduce.Options, h ldraw.Header, workers int) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if workers <= 0 {
		workers = DefaultWorkers
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := m.findImages(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := m.imageWorker(ctx, files, dir, outDir, o, h)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
