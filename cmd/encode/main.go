package main

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/bodgit/bmpmark"
	"github.com/bodgit/bmpmark/bitmap"
	"github.com/urfave/cli/v2"
	_ "golang.org/x/image/bmp"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func readPayload(c *cli.Context, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(c.App.Reader)
	}
	return os.ReadFile(file)
}

func readCover(file string) (*image.NRGBA, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}

	return bitmap.ToNRGBA(m), nil
}

func encode(c *cli.Context) error {
	if c.NArg() != 3 {
		cli.ShowAppHelpAndExit(c, 1)
	}

	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}

	m, err := readCover(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err, 1)
	}

	payload, err := readPayload(c, c.Args().Get(1))
	if err != nil {
		return cli.Exit(err, 1)
	}

	o := bmpmark.DefaultOrigin(len(payload))
	if c.IsSet("row") {
		o.Row = c.Int("row")
	}
	if c.IsSet("col") {
		o.Col = c.Int("col")
	}

	logger.Printf("Embedding %d bytes at row %d, column %d\n", len(payload), o.Row, o.Col)

	if err := bmpmark.Embed(m, o, payload); err != nil {
		return cli.Exit(err, 1)
	}

	b := new(bytes.Buffer)
	if err := bitmap.Encode(b, m); err != nil {
		return cli.Exit(err, 1)
	}

	// The cover might already contain something that looks like a marker
	out, err := bmpmark.New(logger, bmpmark.Workers(c.Int("workers"))).DecodeBytes(b.Bytes())
	if err != nil {
		return cli.Exit(fmt.Errorf("verification failed: %w", err), 1)
	}
	if !bytes.Equal(out, payload) {
		return cli.Exit("verification failed: the cover contains an earlier marker", 1)
	}

	if err := os.WriteFile(c.Args().Get(2), b.Bytes(), 0o644); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "encode"
	app.Usage = "Hide a payload in a 32-bit bitmap"
	app.ArgsUsage = "COVER PAYLOAD OUTPUT"
	app.Version = "1.0.0"
	app.HideHelpCommand = true

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:  "row",
			Usage: "row of the top left corner of the marker",
		},
		&cli.IntFlag{
			Name:  "col",
			Usage: "column of the top left corner of the marker",
		},
		&cli.IntFlag{
			Name:    "workers",
			EnvVars: []string{"BMPMARK_WORKERS"},
			Value:   bmpmark.DefaultWorkers,
			Usage:   "number of goroutines used to verify",
			Hidden:  true,
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = encode

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
