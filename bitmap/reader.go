package bitmap

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

var (
	// ErrInvalidFormat means the buffer doesn't hold a bitmap.
	ErrInvalidFormat = errors.New("bitmap: invalid format")
	// ErrUnsupported means the buffer holds a valid bitmap that uses a
	// feature that isn't supported.
	ErrUnsupported = errors.New("bitmap: unsupported bitmap")
)

// Header holds the fields needed to address the pixel data.
type Header struct {
	FileSize     uint32
	DataOffset   uint32
	InfoSize     uint32
	Width        uint32
	Height       uint32
	Planes       uint16
	BitsPerPixel uint16
	Compression  uint32
	ImageSize    uint32
}

// defaultMasks reports whether the BI_BITFIELDS masks describe the same
// layout as BI_RGB, only present in V4 and V5 headers.
func defaultMasks(b []byte) bool {
	return binary.LittleEndian.Uint32(b[54:58]) == 0x00ff0000 &&
		binary.LittleEndian.Uint32(b[58:62]) == 0x0000ff00 &&
		binary.LittleEndian.Uint32(b[62:66]) == 0x000000ff
}

// Parse reads the header from the start of b. Every problem found is
// reported, not just the first one.
func Parse(b []byte) (Header, error) {
	var h Header

	if len(b) < fileHeaderLen+4 {
		return h, fmt.Errorf("%w: %d bytes is too short", ErrInvalidFormat, len(b))
	}
	if string(b[:2]) != "BM" {
		return h, fmt.Errorf("%w: bad signature %q", ErrInvalidFormat, b[:2])
	}

	h.FileSize = binary.LittleEndian.Uint32(b[2:6])
	h.DataOffset = binary.LittleEndian.Uint32(b[10:14])
	h.InfoSize = binary.LittleEndian.Uint32(b[14:18])

	switch h.InfoSize {
	case infoHeaderLen, v4InfoHeaderLen, v5InfoHeaderLen:
	default:
		return h, fmt.Errorf("%w: info header size %d", ErrUnsupported, h.InfoSize)
	}

	if len(b) < fileHeaderLen+int(h.InfoSize) {
		return h, fmt.Errorf("%w: truncated info header", ErrInvalidFormat)
	}

	h.Width = binary.LittleEndian.Uint32(b[18:22])
	h.Height = binary.LittleEndian.Uint32(b[22:26])
	h.Planes = binary.LittleEndian.Uint16(b[26:28])
	h.BitsPerPixel = binary.LittleEndian.Uint16(b[28:30])
	h.Compression = binary.LittleEndian.Uint32(b[30:34])
	h.ImageSize = binary.LittleEndian.Uint32(b[34:38])

	var result *multierror.Error

	if h.Planes != 1 {
		result = multierror.Append(result, fmt.Errorf("%w: %d planes", ErrUnsupported, h.Planes))
	}
	if h.BitsPerPixel != bitsPerPixel {
		result = multierror.Append(result, fmt.Errorf("%w: %d bits per pixel", ErrUnsupported, h.BitsPerPixel))
	}
	switch {
	case h.Compression == biRGB:
	case h.Compression == biBitfields && h.InfoSize > infoHeaderLen && defaultMasks(b):
	default:
		result = multierror.Append(result, fmt.Errorf("%w: compression type %d", ErrUnsupported, h.Compression))
	}
	if h.Width == 0 || h.Height == 0 {
		result = multierror.Append(result, fmt.Errorf("%w: empty image %dx%d", ErrInvalidFormat, h.Width, h.Height))
	}
	if h.DataOffset < fileHeaderLen+h.InfoSize || int64(h.DataOffset) > int64(len(b)) {
		result = multierror.Append(result, fmt.Errorf("%w: data offset %d", ErrInvalidFormat, h.DataOffset))
	}

	return h, result.ErrorOrNil()
}
