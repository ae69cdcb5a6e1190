package host

import (
	"testing"

	"github.com/zxcore/speccy/video"
)

func TestNewPixels_OpaqueBlack(t *testing.T) {
	p := NewPixels(2, 2)
	for i := 0; i < len(p.RGBA); i += 4 {
		if p.RGBA[i] != 0 || p.RGBA[i+1] != 0 || p.RGBA[i+2] != 0 || p.RGBA[i+3] != 0xFF {
			t.Fatalf("pixel at byte %d not opaque black: %v", i, p.RGBA[i:i+4])
		}
	}
}

func TestPixels_SetColor_WritesPixel(t *testing.T) {
	p := NewPixels(4, 4)
	p.SetColor(1, 2, video.White, video.Bright)
	i := (2*4 + 1) * 4
	if p.RGBA[i] != 0xFF || p.RGBA[i+1] != 0xFF || p.RGBA[i+2] != 0xFF {
		t.Fatalf("pixel RGB = %v, want all 0xFF (bright white)", p.RGBA[i:i+3])
	}
}

func TestPixels_SetColor_OutOfBoundsIsIgnored(t *testing.T) {
	p := NewPixels(2, 2)
	p.SetColor(-1, 0, video.Red, video.Normal)
	p.SetColor(0, 5, video.Red, video.Normal)
	for i := 0; i < len(p.RGBA); i += 4 {
		if p.RGBA[i] != 0 {
			t.Fatalf("out-of-bounds SetColor should not have touched pixel data, got %v at %d", p.RGBA[i:i+4], i)
		}
	}
}
