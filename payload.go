package bmpmark

import (
	"github.com/bodgit/bmpmark/grid"
	"github.com/bodgit/bmpmark/marker"
)

const (
	// MaxPayload is the largest payload the length pixel can describe.
	MaxPayload = 255 + 255

	bytesPerPixel = 3
	scanWidth     = 6
	scanRow       = 5 // Relative to the marker origin
	scanCol       = 2
)

// Position of the pixel holding the i'th group of payload bytes relative to
// the marker origin. Rows run upwards so can go negative.
func scanPosition(i int) (int, int) {
	return scanRow - i/scanWidth, scanCol + i%scanWidth
}

func lengthPosition(o Origin) (int, int) {
	return o.Row + marker.Size - 1, o.Col + marker.Size - 1
}

// DecodePayload reads the payload that follows the marker at o.
func DecodePayload(g *grid.Grid, o Origin) ([]byte, error) {
	p, err := g.Pixel(lengthPosition(o))
	if err != nil {
		return nil, truncated(err)
	}

	// Green is deliberately not part of the length
	length := int(p.B) + int(p.R)
	b := make([]byte, 0, length)

	for i := 0; i*bytesPerPixel < length; i++ {
		row, col := scanPosition(i)
		p, err := g.Pixel(o.Row+row, o.Col+col)
		if err != nil {
			return nil, truncated(err)
		}

		n := length - i*bytesPerPixel
		if n > bytesPerPixel {
			n = bytesPerPixel
		}
		c := p.Bytes()
		b = append(b, c[:n]...)
	}

	return b, nil
}
