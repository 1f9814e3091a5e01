package marker

import (
	"encoding/binary"

	"github.com/bodgit/bmpmark/grid"
)

// Comparer reports whether every pixel in b is the sentinel color. b holds
// consecutive pixels as returned by grid.Grid.Span so the final pixel may be
// missing its unused byte. The unused byte of each pixel is ignored.
type Comparer interface {
	Equal(b []byte) bool
}

// Scalar compares one byte at a time.
type Scalar struct{}

// Equal implements the Comparer interface.
func (Scalar) Equal(b []byte) bool {
	for i := 0; i+2 < len(b); i += grid.PixelSize {
		if b[i] != Blue || b[i+1] != Green || b[i+2] != Red {
			return false
		}
	}
	return true
}

const (
	chunk = 16

	// Sentinel repeated for two little-endian pixels, the unused byte
	// is masked off
	pattern = uint64(Red)<<48 | uint64(Green)<<40 | uint64(Blue)<<32 | uint64(Red)<<16 | uint64(Green)<<8 | uint64(Blue)
	mask    = 0x00ffffff00ffffff
)

// Wide compares 16 bytes, or four pixels, at a time by treating each half
// as a uint64 and comparing it against the repeated sentinel. Anything left
// over is compared by Scalar.
type Wide struct{}

// Equal implements the Comparer interface.
func (Wide) Equal(b []byte) bool {
	for len(b) >= chunk {
		if binary.LittleEndian.Uint64(b[0:])&mask != pattern || binary.LittleEndian.Uint64(b[8:])&mask != pattern {
			return false
		}
		b = b[chunk:]
	}
	return Scalar{}.Equal(b)
}
