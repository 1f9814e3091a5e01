/*
Package bitmap reads and writes the uncompressed 32-bit bitmap container used
to carry an embedded payload.

The file starts with a 14 byte file header followed by an info header of 40,
108 or 124 bytes. All fields are little-endian. Pixel data starts at the data
offset recorded in the file header; each pixel is 4 bytes in blue, green,
red, unused order and rows have no padding.

Rows are stored top-down, that is row 0 immediately follows the data offset.
This differs from most bitmap writers and means other programs will show the
image upside down, but it is the layout the payload addressing depends on.
*/
package bitmap

const (
	fileHeaderLen   = 14
	infoHeaderLen   = 40
	v4InfoHeaderLen = 108
	v5InfoHeaderLen = 124

	headerLen = fileHeaderLen + infoHeaderLen

	bitsPerPixel = 32

	biRGB       = 0
	biBitfields = 3
)
