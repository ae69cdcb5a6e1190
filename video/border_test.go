package video

import "testing"

func TestBorder_SetBorder_FillsFromOrigin(t *testing.T) {
	buf := newFakeFrameBuffer()
	b := NewBorder(0, buf)
	b.SetBorder(100, 224, Red)

	if _, ok := buf.calls[[2]int{0, 0}]; !ok {
		t.Fatal("expected pixel (0,0) to be filled by the first SetBorder call")
	}
	v := buf.calls[[2]int{0, 0}]
	if v.c != White {
		t.Fatalf("first fill should use the initial beam colour (White), got %v", v.c)
	}
}

func TestBorder_SetBorder_UsesNewColorOnNextFill(t *testing.T) {
	buf := newFakeFrameBuffer()
	b := NewBorder(0, buf)
	b.SetBorder(100, 224, Red)
	b.SetBorder(300, 224, Blue)

	// Some pixel between the two SetBorder calls should have been painted Red.
	foundRed := false
	for _, v := range buf.calls {
		if v.c == Red {
			foundRed = true
			break
		}
	}
	if !foundRed {
		t.Fatal("expected at least one pixel filled Red between the two border changes")
	}
}

func TestBorder_NewFrame_RepaintsWhenUnchanged(t *testing.T) {
	buf := newFakeFrameBuffer()
	b := NewBorder(0, buf)
	b.NewFrame() // borderChange starts true: fills from the beam (still at 0,0) to the end, then resets it

	buf2 := newFakeFrameBuffer()
	b2 := NewBorder(0, buf2)
	b2.borderChange = false
	b2.NewFrame()
	if len(buf2.calls) == 0 {
		t.Fatal("expected NewFrame to repaint the whole border when unchanged")
	}
}

func TestBorder_NextBorderPixel_BeforeOrigin(t *testing.T) {
	b := NewBorder(1000, newFakeFrameBuffer())
	line, pixel, frameEnd := b.nextBorderPixel(10, 224)
	if line != 0 || pixel != 0 || frameEnd {
		t.Fatalf("got (%d,%d,%v), want (0,0,false) before clocksOrigin", line, pixel, frameEnd)
	}
}
