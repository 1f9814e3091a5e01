package bmpmark

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/bmpmark/bitmap"
	"github.com/bodgit/bmpmark/grid"
	"github.com/bodgit/bmpmark/marker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var comparers = []struct {
	name string
	c    marker.Comparer
}{
	{"scalar", marker.Scalar{}},
	{"wide", marker.Wide{}},
}

func toGrid(m *image.NRGBA) *grid.Grid {
	b := m.Bounds()
	return grid.New(bitmap.Pixels(m), uint32(b.Dx()), uint32(b.Dy()), 0)
}

func embedded(t *testing.T, width, height int, o Origin, payload []byte) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	require.NoError(t, Embed(m, o, payload))
	return m
}

func TestNew(t *testing.T) {
	d := New(nil)
	assert.Equal(t, DefaultWorkers, d.workers)
	assert.NotNil(t, d.logger)
	assert.NotNil(t, d.matcher)

	assert.Equal(t, 1, New(nil, Workers(0)).workers)
	assert.Equal(t, 7, New(nil, Workers(7)).workers)
}

func TestDecodeBytes(t *testing.T) {
	payload := []byte("Hello, World!")
	m := embedded(t, 32, 24, Origin{Row: 9, Col: 13}, payload)

	b := new(bytes.Buffer)
	require.NoError(t, bitmap.Encode(b, m))

	out, err := New(nil).DecodeBytes(b.Bytes())
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	_, err = New(nil).DecodeBytes(b.Bytes()[:20])
	assert.True(t, errors.Is(err, bitmap.ErrInvalidFormat))

	// Keep only the first five rows, the declared geometry no longer fits
	_, err = New(nil).DecodeBytes(b.Bytes()[:54+32*4*5])
	assert.True(t, errors.Is(err, grid.ErrOutOfBounds))
}

func TestDecodeFile(t *testing.T) {
	payload := []byte("The quick brown fox jumps over the lazy dog")
	m := embedded(t, 40, 40, DefaultOrigin(len(payload)), payload)

	b := new(bytes.Buffer)
	require.NoError(t, bitmap.Encode(b, m))

	dir := t.TempDir()
	file := filepath.Join(dir, "test.bmp")
	require.NoError(t, os.WriteFile(file, b.Bytes(), 0o644))

	out, err := New(nil, Workers(3)).DecodeFile(file)
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	_, err = New(nil).DecodeFile(filepath.Join(dir, "missing.bmp"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodeNoMarker(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {7, 7}, {8, 7}, {8, 8}, {64, 64}, {33, 100}} {
		m := image.NewNRGBA(image.Rect(0, 0, size[0], size[1]))
		for _, workers := range []int{1, 4} {
			_, err := New(nil, Workers(workers)).Decode(toGrid(m))
			assert.Equal(t, ErrNoMarker, err, "%dx%d", size[0], size[1])
		}
	}
}

func TestDecodeBytesHugeGeometry(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, bitmap.Encode(b, image.NewNRGBA(image.Rect(0, 0, 4, 4))))

	// Claim the largest possible image over 64 bytes of pixels
	buf := b.Bytes()
	binary.LittleEndian.PutUint32(buf[18:22], 0xffffffff)
	binary.LittleEndian.PutUint32(buf[22:26], 0xffffffff)

	for _, workers := range []int{1, 4, 16} {
		_, err := New(nil, Workers(workers)).DecodeBytes(buf)
		assert.True(t, errors.Is(err, grid.ErrOutOfBounds), "%d workers", workers)
	}
}
