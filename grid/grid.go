/*
Package grid addresses individual pixels inside a raw 32-bit bitmap buffer.

Pixels are 4 bytes wide and stored in blue, green, red, unused order. Row 0
is the first row after the data offset and each row is exactly width * 4
bytes long; there is no row padding. Every read is bounds checked against
both the image geometry and the length of the buffer.
*/
package grid

import (
	"errors"
	"fmt"
)

const (
	// PixelSize is the number of bytes used by each pixel.
	PixelSize = 4
	// channels is the number of meaningful bytes in each pixel.
	channels = 3
)

// ErrOutOfBounds is returned when a pixel lies outside of the image or the
// buffer is too short to hold it.
var ErrOutOfBounds = errors.New("grid: pixel out of bounds")

// Pixel holds the color channels of a single pixel.
type Pixel struct {
	B, G, R uint8
}

// Bytes returns the channels in storage order.
func (p Pixel) Bytes() [channels]byte {
	return [channels]byte{p.B, p.G, p.R}
}

// Grid is a read-only view over a pixel buffer.
type Grid struct {
	buf    []byte
	width  int
	height int
	offset int
	stride int
}

// New returns a Grid over buf. The buffer is not copied and must not be
// modified while the Grid is in use. No attempt is made to check that buf is
// long enough for the given geometry, that happens on each read.
func New(buf []byte, width, height, offset uint32) *Grid {
	return &Grid{
		buf:    buf,
		width:  int(width),
		height: int(height),
		offset: int(offset),
		stride: int(width) * PixelSize,
	}
}

// Width returns the width of the image in pixels.
func (g *Grid) Width() int { return g.width }

// Height returns the height of the image in pixels.
func (g *Grid) Height() int { return g.height }

func (g *Grid) index(row, col int) int {
	return row*g.stride + col*PixelSize + g.offset
}

// Span returns the bytes backing n consecutive pixels on row, starting at
// col. The last pixel may be missing its unused byte if it sits at the very
// end of the buffer so the returned slice is either n*4 or n*4-1 bytes long.
func (g *Grid) Span(row, col, n int) ([]byte, error) {
	if n < 1 || row < 0 || row >= g.height || col < 0 || col+n > g.width {
		return nil, fmt.Errorf("%w: row %d, columns %d-%d", ErrOutOfBounds, row, col, col+n-1)
	}

	// Reject rows past the end of the buffer before multiplying, a
	// hostile geometry would otherwise overflow the offset
	if g.offset > len(g.buf) || row > (len(g.buf)-g.offset)/g.stride {
		return nil, fmt.Errorf("%w: row %d exceeds buffer of %d bytes", ErrOutOfBounds, row, len(g.buf))
	}

	start := g.index(row, col)
	end := start + n*PixelSize
	if end-1 > len(g.buf) {
		return nil, fmt.Errorf("%w: offset %d exceeds buffer of %d bytes", ErrOutOfBounds, end-1, len(g.buf))
	}
	if end > len(g.buf) {
		end = len(g.buf)
	}

	return g.buf[start:end], nil
}

// Pixel returns the pixel at row, col.
func (g *Grid) Pixel(row, col int) (Pixel, error) {
	b, err := g.Span(row, col, 1)
	if err != nil {
		return Pixel{}, err
	}
	return Pixel{b[0], b[1], b[2]}, nil
}
