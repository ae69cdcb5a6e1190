package video

import "testing"

type fakeFrameBuffer struct {
	calls map[[2]int]struct {
		c Color
		b Brightness
	}
}

func newFakeFrameBuffer() *fakeFrameBuffer {
	return &fakeFrameBuffer{calls: map[[2]int]struct {
		c Color
		b Brightness
	}{}}
}

func (f *fakeFrameBuffer) SetColor(x, y int, c Color, b Brightness) {
	f.calls[[2]int{x, y}] = struct {
		c Color
		b Brightness
	}{c, b}
}

func TestBlocksCountFromClocks_BeforeOrigin(t *testing.T) {
	got := BlocksCountFromClocks(10, 100, 224)
	if got != (BlocksCount{}) {
		t.Fatalf("got %+v, want zero value before readOrigin", got)
	}
}

func TestBlocksCountFromClocks_FirstColumn(t *testing.T) {
	got := BlocksCountFromClocks(100, 100, 224)
	want := BlocksCount{Lines: 0, Columns: 1}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestBlocksCount_PassedFrom_SameLine(t *testing.T) {
	prev := BlocksCount{Lines: 2, Columns: 3}
	cur := BlocksCount{Lines: 2, Columns: 10}
	if got := cur.PassedFrom(prev); got != 7 {
		t.Fatalf("PassedFrom same line = %d, want 7", got)
	}
}

func TestBlocksCount_PassedFrom_NextLine(t *testing.T) {
	prev := BlocksCount{Lines: 2, Columns: 30}
	cur := BlocksCount{Lines: 3, Columns: 2}
	want := (AttrCols - 30) + 2
	if got := cur.PassedFrom(prev); got != want {
		t.Fatalf("PassedFrom next line = %d, want %d", got, want)
	}
}

func TestScreen_UpdateAndProcessClocks_RendersPixels(t *testing.T) {
	front := newFakeFrameBuffer()
	back := newFakeFrameBuffer()
	s := NewScreen(0, 224, false, front, back)

	// Write attribute: INK=White PAPER=Black, no flash/bright, at cell (0,0).
	s.Update(AttrBaseRel, 0, byte(White))
	// Write bitmap byte 0xFF (all 8 pixels set) at line 0, col 0.
	s.Update(0, 0, 0xFF)

	// Advance the beam past the first block (col 1 of line 0).
	s.ProcessClocks(0 + ClocksPerCol)

	for x := 0; x < 8; x++ {
		v, ok := back.calls[[2]int{x, 0}]
		if !ok {
			t.Fatalf("pixel (%d,0) was never written", x)
		}
		if v.c != White {
			t.Fatalf("pixel (%d,0) color = %v, want White", x, v.c)
		}
	}
}

func TestScreen_NewFrame_SwapsBuffersAndTogglesFlashPeriodically(t *testing.T) {
	a := newFakeFrameBuffer()
	b := newFakeFrameBuffer()
	s := NewScreen(0, 224, false, a, b)

	if s.FrameBuffer() != FrameBuffer(a) {
		t.Fatal("expected initial FrameBuffer() to be the first buffer argument")
	}
	s.NewFrame()
	if s.FrameBuffer() != FrameBuffer(b) {
		t.Fatal("expected FrameBuffer() to be swapped after NewFrame")
	}

	flashBefore := s.flash
	for i := 0; i < 15; i++ {
		s.NewFrame()
	}
	if s.flash == flashBefore {
		t.Fatal("expected flash to have toggled within 16 frames")
	}
}

func TestScreen_SwitchBank_48KIgnoresNonZero(t *testing.T) {
	s := NewScreen(0, 224, false, newFakeFrameBuffer(), newFakeFrameBuffer())
	s.SwitchBank(7)
	if s.activeBank != 0 {
		t.Fatal("48K screen should never switch away from bank 0")
	}
}

func TestScreen_SwitchBank_128KSelectsBank5Or7(t *testing.T) {
	s := NewScreen(0, 224, true, newFakeFrameBuffer(), newFakeFrameBuffer())
	s.SwitchBank(7)
	if s.activeBank != 1 {
		t.Fatalf("activeBank = %d, want 1 (page 7)", s.activeBank)
	}
	s.SwitchBank(5)
	if s.activeBank != 0 {
		t.Fatalf("activeBank = %d, want 0 (page 5)", s.activeBank)
	}
	s.SwitchBank(2) // not video memory, should be ignored
	if s.activeBank != 0 {
		t.Fatal("non-video page should not change activeBank")
	}
}

func TestBitmapDeinterlace_KnownAddress(t *testing.T) {
	// Address 0x0000 is line 0, col 0.
	if got := bitmapLineRel(0); got != 0 {
		t.Errorf("bitmapLineRel(0) = %d, want 0", got)
	}
	if got := bitmapColRel(0); got != 0 {
		t.Errorf("bitmapColRel(0) = %d, want 0", got)
	}
	// Address 0x0100 (second pixel line within the first character row: Y0=1)
	if got := bitmapLineRel(0x0100); got != 1 {
		t.Errorf("bitmapLineRel(0x0100) = %d, want 1", got)
	}
}
