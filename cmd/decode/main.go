package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bodgit/bmpmark"
	"github.com/bodgit/bmpmark/bitmap"
	"github.com/bodgit/bmpmark/grid"
	"github.com/urfave/cli/v2"
)

const (
	usageMessage    = "Usage: decode <input_filename>\n"
	readMessage     = "Failed to read file\n"
	notFoundMessage = "No header found\n"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func fail(c *cli.Context, message string) error {
	fmt.Fprint(c.App.ErrWriter, message)
	return cli.Exit("", 1)
}

func decode(c *cli.Context) error {
	if c.NArg() != 1 {
		return fail(c, usageMessage)
	}

	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(c.App.ErrWriter)
	}

	b, err := os.ReadFile(c.Args().First())
	if err != nil {
		logger.Println(err)
		return fail(c, readMessage)
	}

	d := bmpmark.New(logger, bmpmark.Workers(c.Int("workers")))

	payload, err := d.DecodeBytes(b)
	switch {
	case err == nil:
	case errors.Is(err, bitmap.ErrInvalidFormat), errors.Is(err, bitmap.ErrUnsupported):
		logger.Println(err)
		return fail(c, readMessage)
	case errors.Is(err, bmpmark.ErrNoMarker), errors.Is(err, bmpmark.ErrTruncatedPayload), errors.Is(err, grid.ErrOutOfBounds):
		logger.Println(err)
		return fail(c, notFoundMessage)
	default:
		return cli.Exit(err, 1)
	}

	if _, err := c.App.Writer.Write(payload); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "decode"
	app.Usage = "Extract a payload hidden in a 32-bit bitmap"
	app.ArgsUsage = "FILE"
	app.Version = "1.0.0"
	app.HideHelpCommand = true

	app.Flags = []cli.Flag{
		&cli.IntFlag{
			Name:    "workers",
			EnvVars: []string{"BMPMARK_WORKERS"},
			Value:   bmpmark.DefaultWorkers,
			Usage:   "number of goroutines used to search",
			Hidden:  true,
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = decode
	app.OnUsageError = func(c *cli.Context, _ error, _ bool) error {
		return fail(c, usageMessage)
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
