package host

import (
	"bytes"
	"testing"
)

func TestPixels_WriteBMP_ProducesValidHeader(t *testing.T) {
	p := NewPixels(4, 4)
	var buf bytes.Buffer
	if err := p.WriteBMP(&buf); err != nil {
		t.Fatalf("WriteBMP: %v", err)
	}
	if buf.Len() < 2 || buf.Bytes()[0] != 'B' || buf.Bytes()[1] != 'M' {
		t.Fatalf("expected a BMP magic header, got first bytes %v", buf.Bytes()[:2])
	}
}
