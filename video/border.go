// border.go - border colour rendering
//
// Grounded on original_source/rustzx-core/src/zx/video/border.rs: BeamInfo,
// next_border_pixel's beam-position formula (2 pixels rendered per T-state),
// fill_to's run-length fill between border writes, and new_frame/set_border.

package video

const (
	BorderCols = 4
	BorderRows = 3

	ScreenWidth  = CanvasWidth + BorderCols*8*2
	ScreenHeight = CanvasHeight + BorderRows*8*2

	PixelsPerClock = 2
)

type beamInfo struct {
	line, pixel int
	color       Color
}

// Border renders the border region as a run-length fill: each SetBorder
// call paints every pixel between the beam's last recorded position and its
// new one, so a border colour held across many scanlines costs one fill,
// not one write per pixel.
type Border struct {
	clocksOrigin int // frame-clock of the first border pixel

	buffer FrameBuffer

	beamLast     beamInfo
	beamBlock    bool
	borderChange bool
}

// NewBorder builds a Border for the given first-border-pixel clock origin
// (clocksFirstPixel - 8*BorderRows*clocksLine - BorderCols*ClocksPerCol +
// clocksULABeamShift, precomputed by the caller from machine Specs).
func NewBorder(clocksOrigin int, buffer FrameBuffer) *Border {
	return &Border{
		clocksOrigin: clocksOrigin,
		buffer:       buffer,
		beamLast:     beamInfo{color: White},
		borderChange: true,
	}
}

// nextBorderPixel returns the (line, pixel) position the beam will be at
// when frame-clock clocks is reached, and whether that is past frame end.
func (b *Border) nextBorderPixel(clocks, clocksLine int) (line, pixel int, frameEnd bool) {
	if clocks < b.clocksOrigin {
		return 0, 0, false
	}
	rel := clocks - b.clocksOrigin
	line = rel / clocksLine
	pixel = ((rel%clocksLine)+1)*PixelsPerClock

	if pixel-PixelsPerClock >= ScreenWidth {
		pixel = 0
		line++
	}
	if line >= ScreenHeight {
		return 0, 0, true
	}
	return line, pixel, false
}

func (b *Border) fillTo(line, pixel int) {
	last := b.beamLast
	from := last.line*ScreenWidth + last.pixel
	to := line*ScreenWidth + pixel
	for p := from; p < to; p++ {
		b.buffer.SetColor(p%ScreenWidth, p/ScreenWidth, last.color, Normal)
	}
}

// NewFrame starts a new frame: if the border never changed during the
// previous one the whole border is repainted in its current colour, then
// the beam resets to the top-left.
func (b *Border) NewFrame() {
	if !b.borderChange {
		b.beamLast.line, b.beamLast.pixel = 0, 0
	}
	if !b.beamBlock {
		b.fillTo(ScreenHeight-1, ScreenWidth)
	}
	b.beamLast.line, b.beamLast.pixel = 0, 0
	b.borderChange = false
	b.beamBlock = false
}

// SetBorder records a border colour change at frame-clock clocks, filling
// every pixel the beam passed since the last change with the previous
// colour.
func (b *Border) SetBorder(clocks, clocksLine int, c Color) {
	b.borderChange = true
	line, pixel, frameEnd := b.nextBorderPixel(clocks, clocksLine)
	if !b.beamBlock {
		if frameEnd {
			b.fillTo(ScreenHeight-1, ScreenWidth)
			b.beamBlock = true
		}
		b.fillTo(line, pixel)
	}
	b.beamLast = beamInfo{line: line, pixel: pixel, color: c}
}
