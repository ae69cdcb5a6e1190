//go:build headless

// headless.go - no-display, no-audio backend for automated runs and tests.
//
// Grounded on the teacher's video_backend_headless.go/audio_backend_headless.go
// convention: same exported names as the windowed backend, every method a
// no-op or counter increment, selected by the same "headless" build tag.
package host

import "github.com/zxcore/speccy/spectrum"

// Window drives emu without opening any window, running frames as fast as
// Run is called (used by fast-forward tooling and CI-style smoke runs).
type Window struct {
	emu        Emulator
	frameCount uint64
}

// NewWindow builds a headless Window; scale is accepted for API parity and
// ignored.
func NewWindow(emu Emulator, scale int) *Window {
	return &Window{emu: emu}
}

// Run steps the emulated machine once per call instead of opening a
// display; callers drive the loop themselves (e.g. in a test harness).
func (w *Window) Run(title string) error {
	w.emu.RunFrame()
	w.frameCount++
	return nil
}

// FrameCount reports how many frames Run has stepped.
func (w *Window) FrameCount() uint64 { return w.frameCount }

// OtoPlayer is a no-op stand-in for the real audio backend.
type OtoPlayer struct {
	started bool
}

// NewOtoPlayer returns a player that discards every sample.
func NewOtoPlayer() (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

func (op *OtoPlayer) SetMixer(_ interface{}) {}
func (op *OtoPlayer) Start()                 { op.started = true }
func (op *OtoPlayer) Stop()                  { op.started = false }

// Emulator mirrors the interface video_ebiten.go's Window expects, kept in
// sync here since headless.go is compiled instead of, never alongside, it.
type Emulator interface {
	RunFrame()
	SendKey(k spectrum.Key, pressed bool)
	FrameBuffer() *Pixels
	BorderBuffer() *Pixels
}
