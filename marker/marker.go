/*
Package marker detects the 8 by 8 pixel marker that precedes an embedded
payload.

The marker is an "L" drawn in the sentinel color: the whole left column of
the block and the bottom row up to, but not including, the bottom right
pixel which carries the payload length instead.

	X . . . . . . .
	X . . . . . . .
	X . . . . . . .
	X . . . . . . .
	X . . . . . . .
	X . . . . . . .
	X . . . . . . .
	X X X X X X X L
*/
package marker

import "github.com/bodgit/bmpmark/grid"

const (
	// Size is the width and height of the marker block in pixels.
	Size = 8

	// Sentinel color channels.
	Blue  = 127
	Green = 188
	Red   = 217
)

// Matcher tests blocks of a grid for the marker.
type Matcher struct {
	c Comparer
}

// NewMatcher returns a Matcher that compares pixels with c. If c is nil
// then Scalar is used.
func NewMatcher(c Comparer) *Matcher {
	if c == nil {
		c = Scalar{}
	}
	return &Matcher{c: c}
}

// Match reports whether the block with its top left corner at row, col is a
// marker. It stops at the first pixel that doesn't match. An error is only
// returned if a pixel it needs to read lies outside of g.
func (m *Matcher) Match(g *grid.Grid, row, col int) (bool, error) {
	for i := 0; i < Size; i++ {
		b, err := g.Span(row+i, col, 1)
		if err != nil {
			return false, err
		}
		if !m.c.Equal(b) {
			return false, nil
		}
	}

	// The bottom left pixel has already been checked
	b, err := g.Span(row+Size-1, col+1, Size-2)
	if err != nil {
		return false, err
	}

	return m.c.Equal(b), nil
}
