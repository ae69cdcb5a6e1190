// framebuffer.go - a plain RGBA pixel buffer satisfying video.FrameBuffer
//
// Grounded on the teacher's video_screen_buffer.go/video_compositor.go
// pattern of a host-owned pixel buffer the backend blits verbatim, adapted
// from a text console's character cells to a colour-index ZX Spectrum
// canvas/border.
package host

import "github.com/zxcore/speccy/video"

// Pixels is a width*height RGBA buffer that implements video.FrameBuffer,
// shared by every backend (ebiten, headless, screenshot export) so the
// rasterizer never needs to know which one it is drawing into.
type Pixels struct {
	Width, Height int
	RGBA          []byte // 4 bytes/pixel, row-major
}

// NewPixels allocates a buffer of the given size, initialized to opaque
// black.
func NewPixels(w, h int) *Pixels {
	p := &Pixels{Width: w, Height: h, RGBA: make([]byte, w*h*4)}
	for i := 3; i < len(p.RGBA); i += 4 {
		p.RGBA[i] = 0xFF
	}
	return p
}

// SetColor implements video.FrameBuffer.
func (p *Pixels) SetColor(x, y int, c video.Color, b video.Brightness) {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return
	}
	r, g, bl := c.RGB(b)
	i := (y*p.Width + x) * 4
	p.RGBA[i] = r
	p.RGBA[i+1] = g
	p.RGBA[i+2] = bl
	p.RGBA[i+3] = 0xFF
}
