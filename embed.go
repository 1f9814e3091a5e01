package bmpmark

import (
	"errors"
	"fmt"
	"image"

	"github.com/bodgit/bmpmark/grid"
	"github.com/bodgit/bmpmark/marker"
)

// ErrPayloadTooLarge is returned when a payload is longer than MaxPayload.
var ErrPayloadTooLarge = errors.New("bmpmark: payload too large")

func pixelGroups(n int) int {
	return (n + bytesPerPixel - 1) / bytesPerPixel
}

// top returns the highest row, relative to the marker origin, used by a
// payload of n bytes.
func top(n int) int {
	if g := pixelGroups(n); g > 0 {
		row, _ := scanPosition(g - 1)
		if row < 0 {
			return row
		}
	}
	return 0
}

// DefaultOrigin returns the origin nearest the top left corner at which a
// payload of n bytes fits.
func DefaultOrigin(n int) Origin {
	return Origin{Row: -top(n)}
}

// Embed draws the marker into m with its top left corner at o followed by
// the length and payload. Only the color channels of the pixels used are
// changed, everything else in m is left alone.
func Embed(m *image.NRGBA, o Origin, payload []byte) error {
	if len(payload) > MaxPayload {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	b := m.Bounds()
	if o.Row+top(len(payload)) < 0 || o.Col < 0 || o.Row+marker.Size > b.Dy() || o.Col+marker.Size > b.Dx() {
		return fmt.Errorf("%w: %d byte payload at row %d, column %d in %dx%d image", grid.ErrOutOfBounds, len(payload), o.Row, o.Col, b.Dx(), b.Dy())
	}

	// c is in blue, green, red order and may be short
	put := func(row, col int, c ...byte) {
		i := m.PixOffset(b.Min.X+col, b.Min.Y+row)
		for j, v := range c {
			m.Pix[i+2-j] = v
		}
	}

	for i := 0; i < marker.Size; i++ {
		put(o.Row+i, o.Col, marker.Blue, marker.Green, marker.Red)
	}
	for i := 1; i < marker.Size-1; i++ {
		put(o.Row+marker.Size-1, o.Col+i, marker.Blue, marker.Green, marker.Red)
	}

	n := len(payload)
	blue := n
	if blue > 0xff {
		blue = 0xff
	}
	row, col := lengthPosition(o)
	put(row, col, byte(blue), 0, byte(n-blue))

	for i := 0; i*bytesPerPixel < n; i++ {
		row, col := scanPosition(i)
		end := (i + 1) * bytesPerPixel
		if end > n {
			end = n
		}
		put(o.Row+row, o.Col+col, payload[i*bytesPerPixel:end]...)
	}

	return nil
}
