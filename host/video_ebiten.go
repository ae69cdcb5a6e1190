//go:build !headless

// video_ebiten.go - ebiten-backed window, keyboard input and clipboard
// paste for the running machine.
//
// Grounded on the teacher's video_backend_ebiten.go: EbitenOutput's
// running-image/Update/Draw/Layout shape, the Ctrl+Shift+V clipboard-paste
// gesture (golang.design/x/clipboard), and the full-key/special-key
// translation split, adapted from "emit a PTY byte stream" to "press/
// release ZX Spectrum keys for one frame of emulation".
package host

import (
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/zxcore/speccy/spectrum"
)

// Emulator is the subset of the running machine the window needs to drive:
// step one frame of CPU+ULA emulation and accept key events.
type Emulator interface {
	RunFrame()
	SendKey(k spectrum.Key, pressed bool)
	FrameBuffer() *Pixels
	BorderBuffer() *Pixels
}

// Window runs a machine inside an ebiten game loop.
type Window struct {
	emu Emulator

	scale      int
	fullscreen bool
	windowedW  int
	windowedH  int

	canvas *ebiten.Image

	clipboardOnce sync.Once
	clipboardOK   bool

	pasteQueue []spectrum.Key
	pasteHeld  bool
}

// NewWindow builds a Window of the given integer scale factor, rendering
// emu's composited canvas+border framebuffer.
func NewWindow(emu Emulator, scale int) *Window {
	if scale < 1 {
		scale = 2
	}
	fb := emu.BorderBuffer()
	return &Window{
		emu:       emu,
		scale:     scale,
		windowedW: fb.Width * scale,
		windowedH: fb.Height * scale,
	}
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run(title string) error {
	ebiten.SetWindowSize(w.windowedW, w.windowedH)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	ebiten.SetVsyncEnabled(true)
	return ebiten.RunGame(w)
}

// Update implements ebiten.Game: one emulated frame plus host input.
func (w *Window) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		w.fullscreen = !w.fullscreen
		ebiten.SetFullscreen(w.fullscreen)
		if !w.fullscreen {
			ebiten.SetWindowSize(w.windowedW, w.windowedH)
		}
	}
	w.handleKeyboardInput()
	w.drainPasteQueue()
	w.emu.RunFrame()
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	fb := w.emu.BorderBuffer()
	if w.canvas == nil {
		w.canvas = ebiten.NewImage(fb.Width, fb.Height)
	}
	w.canvas.WritePixels(fb.RGBA)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.canvas, op)
}

// Layout implements ebiten.Game.
func (w *Window) Layout(_, _ int) (int, int) {
	fb := w.emu.BorderBuffer()
	return fb.Width * w.scale, fb.Height * w.scale
}

var keyMap = map[ebiten.Key]spectrum.Key{
	ebiten.Key0: spectrum.Key0, ebiten.Key1: spectrum.Key1, ebiten.Key2: spectrum.Key2,
	ebiten.Key3: spectrum.Key3, ebiten.Key4: spectrum.Key4, ebiten.Key5: spectrum.Key5,
	ebiten.Key6: spectrum.Key6, ebiten.Key7: spectrum.Key7, ebiten.Key8: spectrum.Key8,
	ebiten.Key9: spectrum.Key9,
	ebiten.KeyA: spectrum.KeyA, ebiten.KeyB: spectrum.KeyB, ebiten.KeyC: spectrum.KeyC,
	ebiten.KeyD: spectrum.KeyD, ebiten.KeyE: spectrum.KeyE, ebiten.KeyF: spectrum.KeyF,
	ebiten.KeyG: spectrum.KeyG, ebiten.KeyH: spectrum.KeyH, ebiten.KeyI: spectrum.KeyI,
	ebiten.KeyJ: spectrum.KeyJ, ebiten.KeyK: spectrum.KeyK, ebiten.KeyL: spectrum.KeyL,
	ebiten.KeyM: spectrum.KeyM, ebiten.KeyN: spectrum.KeyN, ebiten.KeyO: spectrum.KeyO,
	ebiten.KeyP: spectrum.KeyP, ebiten.KeyQ: spectrum.KeyQ, ebiten.KeyR: spectrum.KeyR,
	ebiten.KeyS: spectrum.KeyS, ebiten.KeyT: spectrum.KeyT, ebiten.KeyU: spectrum.KeyU,
	ebiten.KeyV: spectrum.KeyV, ebiten.KeyW: spectrum.KeyW, ebiten.KeyX: spectrum.KeyX,
	ebiten.KeyY: spectrum.KeyY, ebiten.KeyZ: spectrum.KeyZ,
	ebiten.KeySpace: spectrum.KeySpace,
	ebiten.KeyShiftLeft: spectrum.KeyShift, ebiten.KeyShiftRight: spectrum.KeySymShift,
	ebiten.KeyEnter: spectrum.KeyEnter,
}

var compoundMap = map[ebiten.Key]spectrum.CompoundKey{
	ebiten.KeyArrowLeft:  spectrum.ArrowLeft,
	ebiten.KeyArrowRight: spectrum.ArrowRight,
	ebiten.KeyArrowUp:    spectrum.ArrowUp,
	ebiten.KeyArrowDown:  spectrum.ArrowDown,
	ebiten.KeyBackspace:  spectrum.Delete,
	ebiten.KeyCapsLock:   spectrum.CapsLock,
	ebiten.KeyEscape:     spectrum.Break,
}

func (w *Window) handleKeyboardInput() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		w.handleClipboardPaste()
	}

	for ek, sk := range keyMap {
		if inpututil.IsKeyJustPressed(ek) {
			w.emu.SendKey(sk, true)
		} else if inpututil.IsKeyJustReleased(ek) {
			w.emu.SendKey(sk, false)
		}
	}
	for ek, ck := range compoundMap {
		if inpututil.IsKeyJustPressed(ek) {
			w.emu.SendKey(ck.PrimaryKey(), true)
			w.emu.SendKey(spectrum.KeyShift, true)
		} else if inpututil.IsKeyJustReleased(ek) {
			w.emu.SendKey(ck.PrimaryKey(), false)
			w.emu.SendKey(spectrum.KeyShift, false)
		}
	}
}

// handleClipboardPaste feeds clipboard text in as a queue of keystrokes,
// drained one char at a time: each key is pressed in one Update call and
// released in the next, so every key reaches the keyboard matrix for at
// least a full frame.
func (w *Window) handleClipboardPaste() {
	w.clipboardOnce.Do(func() {
		w.clipboardOK = clipboard.Init() == nil
	})
	if !w.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	for _, r := range string(data) {
		if k, ok := asciiToKey(r); ok {
			w.pasteQueue = append(w.pasteQueue, k)
		}
	}
}

func (w *Window) drainPasteQueue() {
	if w.pasteHeld {
		w.emu.SendKey(w.pasteQueue[0], false)
		w.pasteQueue = w.pasteQueue[1:]
		w.pasteHeld = false
		return
	}
	if len(w.pasteQueue) == 0 {
		return
	}
	w.emu.SendKey(w.pasteQueue[0], true)
	w.pasteHeld = true
}

// letterKeys maps 'a'..'z' to its physical key; the Key enum is ordered by
// keyboard matrix position, not alphabetically, so this can't be computed
// with arithmetic.
var letterKeys = map[rune]spectrum.Key{
	'a': spectrum.KeyA, 'b': spectrum.KeyB, 'c': spectrum.KeyC, 'd': spectrum.KeyD,
	'e': spectrum.KeyE, 'f': spectrum.KeyF, 'g': spectrum.KeyG, 'h': spectrum.KeyH,
	'i': spectrum.KeyI, 'j': spectrum.KeyJ, 'k': spectrum.KeyK, 'l': spectrum.KeyL,
	'm': spectrum.KeyM, 'n': spectrum.KeyN, 'o': spectrum.KeyO, 'p': spectrum.KeyP,
	'q': spectrum.KeyQ, 'r': spectrum.KeyR, 's': spectrum.KeyS, 't': spectrum.KeyT,
	'u': spectrum.KeyU, 'v': spectrum.KeyV, 'w': spectrum.KeyW, 'x': spectrum.KeyX,
	'y': spectrum.KeyY, 'z': spectrum.KeyZ,
}

// digitKeys maps '0'..'9' to its physical key; like letterKeys, the enum
// order (1,2,3,4,5,0,9,8,7,6) follows the physical number row, not digit
// value.
var digitKeys = map[rune]spectrum.Key{
	'0': spectrum.Key0, '1': spectrum.Key1, '2': spectrum.Key2, '3': spectrum.Key3,
	'4': spectrum.Key4, '5': spectrum.Key5, '6': spectrum.Key6, '7': spectrum.Key7,
	'8': spectrum.Key8, '9': spectrum.Key9,
}

func asciiToKey(r rune) (spectrum.Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		k, ok := letterKeys[r]
		return k, ok
	case r >= 'A' && r <= 'Z':
		k, ok := letterKeys[r-'A'+'a']
		return k, ok
	case r >= '0' && r <= '9':
		k, ok := digitKeys[r]
		return k, ok
	case r == ' ':
		return spectrum.KeySpace, true
	case r == '\n' || r == '\r':
		return spectrum.KeyEnter, true
	}
	return 0, false
}

// DumpInfo is a debug helper printing the current window size, mirroring
// the teacher's WaitForVSync FPS print.
func (w *Window) DumpInfo() {
	fmt.Printf("speccy: window %dx%d scale=%d fps=%0.2f\n", w.windowedW, w.windowedH, w.scale, ebiten.CurrentFPS())
}
