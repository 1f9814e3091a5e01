package marker

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/bodgit/bmpmark/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var comparers = []struct {
	name string
	c    Comparer
}{
	{"scalar", Scalar{}},
	{"wide", Wide{}},
}

func set(b []byte, width, row, col int, blue, green, red byte) {
	i := (row*width + col) * grid.PixelSize
	b[i], b[i+1], b[i+2] = blue, green, red
}

// Draw the marker L with its corner at row, col
func draw(b []byte, width, row, col int) {
	for i := 0; i < Size; i++ {
		set(b, width, row+i, col, Blue, Green, Red)
	}
	for i := 0; i < Size-1; i++ {
		set(b, width, row+Size-1, col+i, Blue, Green, Red)
	}
}

func TestMatch(t *testing.T) {
	const width, height = 16, 12
	b := make([]byte, width*height*grid.PixelSize)
	draw(b, width, 3, 5)
	g := grid.New(b, width, height, 0)

	for _, table := range comparers {
		t.Run(table.name, func(t *testing.T) {
			m := NewMatcher(table.c)

			ok, err := m.Match(g, 3, 5)
			require.NoError(t, err)
			assert.True(t, ok)

			for _, p := range [][2]int{{0, 0}, {3, 4}, {3, 6}, {2, 5}, {4, 5}} {
				ok, err := m.Match(g, p[0], p[1])
				require.NoError(t, err)
				assert.False(t, ok, "%d,%d", p[0], p[1])
			}
		})
	}
}

func TestMatchLengthPixel(t *testing.T) {
	const width, height = 8, 8
	b := make([]byte, width*height*grid.PixelSize)
	draw(b, width, 0, 0)

	// Whatever the length pixel holds doesn't matter
	for _, length := range [][3]byte{{0, 0, 0}, {Blue, Green, Red}, {255, 255, 255}} {
		set(b, width, 7, 7, length[0], length[1], length[2])
		for _, table := range comparers {
			ok, err := NewMatcher(table.c).Match(grid.New(b, width, height, 0), 0, 0)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	}
}

func TestMatchFlippedPixel(t *testing.T) {
	const width, height = 8, 8

	var shape [][2]int
	for i := 0; i < Size; i++ {
		shape = append(shape, [2]int{i, 0})
	}
	for i := 1; i < Size-1; i++ {
		shape = append(shape, [2]int{Size - 1, i})
	}

	for _, table := range comparers {
		for _, p := range shape {
			for channel := 0; channel < 3; channel++ {
				t.Run(fmt.Sprintf("%s/%d,%d/%d", table.name, p[0], p[1], channel), func(t *testing.T) {
					b := make([]byte, width*height*grid.PixelSize)
					draw(b, width, 0, 0)
					b[(p[0]*width+p[1])*grid.PixelSize+channel]++

					ok, err := NewMatcher(table.c).Match(grid.New(b, width, height, 0), 0, 0)
					require.NoError(t, err)
					assert.False(t, ok)
				})
			}
		}
	}
}

func TestMatchIgnoresUnusedByte(t *testing.T) {
	const width, height = 8, 8
	b := make([]byte, width*height*grid.PixelSize)
	for i := 3; i < len(b); i += grid.PixelSize {
		b[i] = byte(i)
	}
	draw(b, width, 0, 0)

	for _, table := range comparers {
		ok, err := NewMatcher(table.c).Match(grid.New(b, width, height, 0), 0, 0)
		require.NoError(t, err)
		assert.True(t, ok, table.name)
	}
}

func TestMatchTrailingEdge(t *testing.T) {
	const width, height = 8, 8
	b := make([]byte, width*height*grid.PixelSize)
	draw(b, width, 0, 0)

	// Drop the unused byte of the final pixel, the bottom row is still
	// readable
	g := grid.New(b[:len(b)-1], width, height, 0)

	for _, table := range comparers {
		ok, err := NewMatcher(table.c).Match(g, 0, 0)
		require.NoError(t, err)
		assert.True(t, ok, table.name)
	}

	// Chop into the bottom row
	g = grid.New(b[:len(b)-16], width, height, 0)

	for _, table := range comparers {
		_, err := NewMatcher(table.c).Match(g, 0, 0)
		assert.True(t, errors.Is(err, grid.ErrOutOfBounds), table.name)
	}
}

func TestComparersAgree(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	sentinel := []byte{Blue, Green, Red}

	for i := 0; i < 5000; i++ {
		n := 1 + r.Intn(12)
		b := make([]byte, n*grid.PixelSize)
		for j := range b {
			if j%grid.PixelSize == 3 {
				b[j] = byte(r.Intn(256))
				continue
			}
			// Mostly sentinel so that matches actually happen
			if r.Intn(50) == 0 {
				b[j] = byte(r.Intn(256))
			} else {
				b[j] = sentinel[j%grid.PixelSize]
			}
		}
		if r.Intn(2) == 0 {
			b = b[:len(b)-1]
		}

		assert.Equal(t, Scalar{}.Equal(b), Wide{}.Equal(b), "%x", b)
	}
}

func TestNewMatcherDefault(t *testing.T) {
	assert.Equal(t, Scalar{}, NewMatcher(nil).c)
}
