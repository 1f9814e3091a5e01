package bitmap

import (
	"encoding/binary"
	"image"
	"io"

	"golang.org/x/image/draw"
)

// ToNRGBA returns a copy of m as an *image.NRGBA with its top left corner
// at (0, 0).
func ToNRGBA(m image.Image) *image.NRGBA {
	b := m.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), m, b.Min, draw.Src)
	return dst
}

// Pixels returns the pixels of m as a buffer of top-down rows, each pixel
// being blue, green, red and alpha.
func Pixels(m image.Image) []byte {
	n, ok := m.(*image.NRGBA)
	if !ok || n.Rect.Min != (image.Point{}) {
		n = ToNRGBA(m)
	}

	b := n.Bounds()
	pix := make([]byte, 0, b.Dx()*b.Dy()*4)
	for y := 0; y < b.Dy(); y++ {
		row := n.Pix[y*n.Stride : y*n.Stride+b.Dx()*4]
		for x := 0; x < len(row); x += 4 {
			pix = append(pix, row[x+2], row[x+1], row[x], row[x+3])
		}
	}
	return pix
}

// Encode writes the Image m to w as a 32-bit bitmap.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	pix := Pixels(m)

	var h [headerLen]byte

	h[0], h[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(h[2:6], uint32(headerLen+len(pix)))
	binary.LittleEndian.PutUint32(h[10:14], headerLen)

	binary.LittleEndian.PutUint32(h[14:18], infoHeaderLen)
	binary.LittleEndian.PutUint32(h[18:22], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(h[22:26], uint32(b.Dy()))
	binary.LittleEndian.PutUint16(h[26:28], 1)
	binary.LittleEndian.PutUint16(h[28:30], bitsPerPixel)
	binary.LittleEndian.PutUint32(h[30:34], biRGB)
	binary.LittleEndian.PutUint32(h[34:38], uint32(len(pix)))

	if _, err := w.Write(h[:]); err != nil {
		return err
	}

	_, err := w.Write(pix)
	return err
}
