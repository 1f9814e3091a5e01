/*
Package bmpmark is a library for recovering a text payload hidden inside the
pixels of an uncompressed 32-bit bitmap.

The payload is located by searching for a marker, an 8 by 8 pixel "L" drawn
in a fixed sentinel color. The bottom right pixel of the marker holds the
payload length and the payload itself is read from the pixels above the
bottom row, six pixels and up to eighteen bytes per row, working upwards.
*/
package bmpmark

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bodgit/bmpmark/bitmap"
	"github.com/bodgit/bmpmark/grid"
	"github.com/bodgit/bmpmark/marker"
)

// DefaultWorkers is the number of goroutines used to search for the marker
// unless overridden with Workers.
const DefaultWorkers = 4

var (
	// ErrNoMarker is returned when the marker can't be found.
	ErrNoMarker = errors.New("bmpmark: no header found")
	// ErrTruncatedPayload is returned when the payload extends beyond the
	// image.
	ErrTruncatedPayload = errors.New("bmpmark: truncated payload")
)

// Decoder finds and decodes payloads.
type Decoder struct {
	workers int
	logger  *log.Logger
	matcher *marker.Matcher
}

// Option configures a Decoder.
type Option func(*Decoder)

// Workers sets the number of goroutines used to search for the marker.
// Values less than one are treated as one.
func Workers(n int) Option {
	return func(d *Decoder) {
		if n < 1 {
			n = 1
		}
		d.workers = n
	}
}

// WithComparer sets the strategy used to compare pixels with the sentinel
// color.
func WithComparer(c marker.Comparer) Option {
	return func(d *Decoder) {
		d.matcher = marker.NewMatcher(c)
	}
}

// New returns a Decoder. If logger is nil then nothing is logged.
func New(logger *log.Logger, options ...Option) *Decoder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	d := &Decoder{
		workers: DefaultWorkers,
		logger:  logger,
		matcher: marker.NewMatcher(marker.Wide{}),
	}

	for _, o := range options {
		o(d)
	}

	return d
}

// Decode searches g for the marker and returns the payload that follows it.
func (d *Decoder) Decode(g *grid.Grid) ([]byte, error) {
	o, ok, err := d.FindMarker(g)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoMarker
	}

	d.logger.Printf("Found marker at row %d, column %d\n", o.Row, o.Col)

	b, err := DecodePayload(g, o)
	if err != nil {
		return nil, err
	}

	d.logger.Printf("Decoded %d byte payload\n", len(b))

	return b, nil
}

// DecodeBytes decodes the payload from b which must hold an entire bitmap
// file.
func (d *Decoder) DecodeBytes(b []byte) ([]byte, error) {
	h, err := bitmap.Parse(b)
	if err != nil {
		return nil, err
	}

	d.logger.Printf("Image is %dx%d, pixel data at offset %d\n", h.Width, h.Height, h.DataOffset)

	return d.Decode(grid.New(b, h.Width, h.Height, h.DataOffset))
}

// DecodeFile decodes the payload from the bitmap file.
func (d *Decoder) DecodeFile(file string) ([]byte, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	return d.DecodeBytes(b)
}

func truncated(err error) error {
	return fmt.Errorf("%w: %w", ErrTruncatedPayload, err)
}
