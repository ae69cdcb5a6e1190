// machine.go - wires a z80.CPU and spectrum.Controller into the Emulator
// contract the window/headless backends drive, and composites the canvas
// and border framebuffers into one displayable image.
//
// Grounded on the teacher's gui_frontend.go/gui_frontend_headless.go split
// (a thin struct owning cpu+bus+framebuffers, stepping one video frame per
// call, regardless of which backend is compiled in) adapted from the
// teacher's single flat memory space to this machine's paged
// Controller/Memory model.
package host

import (
	"github.com/zxcore/speccy/snapshot"
	"github.com/zxcore/speccy/spectrum"
	"github.com/zxcore/speccy/video"
	"github.com/zxcore/speccy/z80"
)

// Machine owns the full emulated system and implements Emulator.
type Machine struct {
	CPU  *z80.CPU
	Ctrl *spectrum.Controller

	canvas    *Pixels
	border    *Pixels
	composite *Pixels
}

// NewMachine builds a Machine of the given kind with zeroed ROM and RAM; the
// caller loads ROM images into m.Ctrl.Memory afterwards. enableKempston
// controls whether the Kempston joystick port responds.
func NewMachine(kind spectrum.Machine, enableKempston bool) *Machine {
	specs := kind.Specs()
	canvas := NewPixels(video.CanvasWidth, video.CanvasHeight)
	border := NewPixels(video.ScreenWidth, video.ScreenHeight)

	screen := video.NewScreen(specs.ClocksULAReadOrigin(), specs.ClocksRow, kind == spectrum.Sinclair128K, canvas, canvas)
	bdr := video.NewBorder(specs.BorderClocksOrigin(), border)

	ctrl := spectrum.NewController(kind, screen, bdr, enableKempston)

	return &Machine{
		CPU:       z80.NewCPU(),
		Ctrl:      ctrl,
		canvas:    canvas,
		border:    border,
		composite: NewPixels(video.ScreenWidth, video.ScreenHeight),
	}
}

// LoadSnapshot restores m's CPU and memory from a decoded snapshot.
func (m *Machine) LoadSnapshot(s *snapshot.Snapshot) {
	snapshot.Apply(s, m.CPU, m.Ctrl)
}

// RunFrame executes CPU instructions until the controller reports a new
// video frame has completed, servicing any fast-tape-load trap along the
// way.
func (m *Machine) RunFrame() {
	start := m.Ctrl.FramesCount()
	for m.Ctrl.FramesCount() == start {
		if m.CPU.Emulate(m.Ctrl) {
			for {
				ev, ok := m.Ctrl.PopEvent()
				if !ok {
					break
				}
				if ev.Kind == spectrum.EventFastTapeLoad {
					spectrum.FastLoadTape(m.CPU, m.Ctrl)
				}
			}
		}
	}
}

// SendKey forwards a key event to the keyboard matrix.
func (m *Machine) SendKey(k spectrum.Key, pressed bool) {
	m.Ctrl.SendKey(k, pressed)
}

// FrameBuffer returns the 256x192 canvas only, with no border.
func (m *Machine) FrameBuffer() *Pixels { return m.canvas }

// BorderBuffer returns the full canvas+border composite for display.
func (m *Machine) BorderBuffer() *Pixels {
	copy(m.composite.RGBA, m.border.RGBA)
	offX := video.BorderCols * 8
	offY := video.BorderRows * 8
	for y := 0; y < video.CanvasHeight; y++ {
		srcRow := y * video.CanvasWidth * 4
		dstRow := ((y+offY)*video.ScreenWidth + offX) * 4
		copy(m.composite.RGBA[dstRow:dstRow+video.CanvasWidth*4], m.canvas.RGBA[srcRow:srcRow+video.CanvasWidth*4])
	}
	return m.composite
}
