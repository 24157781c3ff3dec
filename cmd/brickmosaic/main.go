package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bodgit/brickmosaic"
	"github.com/bodgit/brickmosaic/catalog"
	"github.com/bodgit/brickmosaic/grid"
	"github.com/bodgit/brickmosaic/ldraw"
	"github.com/bodgit/brickmosaic/reduce"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB      = "brickmosaic.db"
	defaultLicense = "Redistributable under CCAL version 2.0"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newMosaic(c *cli.Context) (*brickmosaic.Mosaic, error) {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	var cat *catalog.Catalog
	if file := c.String("catalog"); file != "" {
		var err error
		if cat, err = catalog.LoadFile(file); err != nil {
			return nil, err
		}
	}

	return brickmosaic.New(c.String("db"), cat, logger)
}

func reduceOptions(c *cli.Context) (reduce.Options, error) {
	o := reduce.DefaultOptions()
	o.Size = c.Int("size")
	o.Colors = c.Int("colors")

	threshold := c.Int("threshold")
	if threshold < 0 || threshold > 255 {
		return o, fmt.Errorf("threshold %d out of range", threshold)
	}
	o.Threshold = uint8(threshold)

	method, err := reduce.ParseMethod(c.String("method"))
	if err != nil {
		return o, err
	}
	o.Method = method

	return o, nil
}

func header(c *cli.Context) ldraw.Header {
	return ldraw.Header{
		Title:   c.String("title"),
		Author:  c.String("author"),
		License: c.String("license"),
	}
}

func withExtension(file, suffix string) string {
	return strings.TrimSuffix(file, filepath.Ext(file)) + suffix
}

var reduceFlags = []cli.Flag{
	&cli.IntFlag{
		Name:  "size",
		Value: reduce.DefaultSize,
		Usage: "width and height of the mosaic in studs",
	},
	&cli.IntFlag{
		Name:  "threshold",
		Value: reduce.DefaultThreshold,
		Usage: "gray level above which a stud is white",
	},
	&cli.IntFlag{
		Name:  "colors",
		Usage: "number of colors, 0 for black and white",
	},
	&cli.StringFlag{
		Name:  "method",
		Value: reduce.MedianCut.String(),
		Usage: "palette extraction method: median, kmeans or dominant",
	},
}

var headerFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "title",
		Usage: "model title",
	},
	&cli.StringFlag{
		Name:    "author",
		EnvVars: []string{"BRICKMOSAIC_AUTHOR"},
		Usage:   "model author",
	},
	&cli.StringFlag{
		Name:  "license",
		Value: defaultLicense,
		Usage: "model license",
	},
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var f []cli.Flag
	for _, g := range groups {
		f = append(f, g...)
	}
	return f
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, err := newMosaic(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()

	o, err := reduceOptions(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	input := c.Args().First()
	output := c.Args().Get(1)
	if output == "" {
		output = withExtension(input, ".ldr")
	}

	h := header(c)
	if h.Title == "" {
		h.Title = fmt.Sprintf("%s Mosaic %dx%d", strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)), o.Size, o.Size)
	}

	g, _, err := m.Convert(input, output, o, h)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Printf("\n%dx%d Mosaic Grid (# = white, . = black):\n\n", o.Size, o.Size)
	if err := g.WriteText(os.Stdout, grid.Glyphs{ldraw.White: '#', ldraw.Black: '.'}); err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Printf("\n--- Parts List ---\n")
	if err := brickmosaic.WriteColors(os.Stdout, g); err != nil {
		return cli.NewExitError(err, 1)
	}
	fmt.Printf("\nModel saved to: %s\n", output)

	if file := c.String("preview"); file != "" {
		if err := brickmosaic.SavePNG(file, brickmosaic.Preview(g, brickmosaic.PreviewSize)); err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Printf("Preview saved to: %s\n", file)
	}

	return nil
}

func optimize(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, err := newMosaic(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()

	input := c.Args().First()
	output := c.Args().Get(1)
	if output == "" {
		output = withExtension(input, "_optimized.ldr")
	}

	r, err := m.Optimize(input, output, c.Int("size"), header(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Println("--- Optimized Parts List ---")
	if err := r.Summary.WriteText(os.Stdout, r.Units); err != nil {
		return cli.NewExitError(err, 1)
	}

	if file := c.String("preview"); file != "" {
		if err := brickmosaic.SavePNG(file, brickmosaic.PiecePreview(r.Size, r.Pieces, brickmosaic.PreviewSize/r.Size)); err != nil {
			return cli.NewExitError(err, 1)
		}
		fmt.Printf("Preview saved to: %s\n", file)
	}

	return nil
}

func batch(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	m, err := newMosaic(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()

	o, err := reduceOptions(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if err := m.Batch(c.Args().Get(0), c.Args().Get(1), o, header(c), c.Int("workers")); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func designs(c *cli.Context) error {
	m, err := newMosaic(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer m.Close()

	if c.NArg() > 0 {
		id, err := strconv.ParseInt(c.Args().First(), 10, 64)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		parts, err := m.Parts(id)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		for _, p := range parts {
			name := fmt.Sprint(p.Color)
			if lc, ok := ldraw.LookupColor(p.Color); ok {
				name = lc.Name
			}
			fmt.Printf("%dx%d tile (%s) %s: %d\n", p.Width, p.Height, p.Part, name, p.Count)
		}
		return nil
	}

	list, err := m.Designs()
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	for _, d := range list {
		fmt.Printf("%d\t%s\t%dx%d\t%d pieces (%d studs)\t%s\n", d.ID, d.Name, d.Size, d.Size, d.Pieces, d.Units, d.Options)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "brickmosaic"
	app.Usage = "Brick mosaic design utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"BRICKMOSAIC_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to database",
		},
		&cli.StringFlag{
			Name:    "catalog",
			EnvVars: []string{"BRICKMOSAIC_CATALOG"},
			Usage:   "YAML file of tile shapes to use instead of the standard 2x2, 1x2 and 1x1 tiles",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	preview := &cli.StringFlag{
		Name:  "preview",
		Usage: "write a PNG preview to `FILE`",
	}

	app.Commands = []*cli.Command{
		{
			Name:        "convert",
			Usage:       "Convert an image into a mosaic of 1x1 tiles",
			Description: "",
			ArgsUsage:   "IMAGE [OUTPUT]",
			Flags:       flags(reduceFlags, headerFlags, []cli.Flag{preview}),
			Action:      convert,
		},
		{
			Name:        "optimize",
			Usage:       "Replace 1x1 tiles in a mosaic with larger tiles",
			Description: "",
			ArgsUsage:   "MODEL [OUTPUT]",
			Flags: flags(headerFlags, []cli.Flag{
				preview,
				&cli.IntFlag{
					Name:  "size",
					Usage: "width and height of the mosaic in studs, 0 to infer from the model",
				},
			}),
			Action: optimize,
		},
		{
			Name:        "batch",
			Usage:       "Convert and optimize every image in a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY OUTPUT",
			Flags: flags(reduceFlags, headerFlags, []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Value: brickmosaic.DefaultWorkers,
					Usage: "number of images to convert concurrently",
				},
			}),
			Action: batch,
		},
		{
			Name:        "designs",
			Usage:       "List recorded designs or the parts of one design",
			Description: "",
			ArgsUsage:   "[ID]",
			Action:      designs,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
