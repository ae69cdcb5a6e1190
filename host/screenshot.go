// screenshot.go - BMP export of the current composited frame
//
// Grounded on the teacher's screenshot handling (written through
// golang.org/x/image's encoder packages rather than a hand-rolled BMP
// writer), adapted from whatever pixel format the teacher's video backend
// kept to this package's Pixels RGBA buffer.
package host

import (
	"image"
	"io"

	"golang.org/x/image/bmp"
)

// image converts p to a standard library image.Image for encoding.
func (p *Pixels) image() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	copy(img.Pix, p.RGBA)
	return img
}

// WriteBMP encodes p as a 24-bit BMP to w.
func (p *Pixels) WriteBMP(w io.Writer) error {
	return bmp.Encode(w, p.image())
}
