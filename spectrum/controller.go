// controller.go - the ZX Spectrum system controller (ULA-equivalent)
//
// Implements z80.Bus: every CPU memory/IO access and clock advance funnels
// through here, which applies contention, drives the screen rasterizer and
// border beam incrementally, mixes audio, advances tape playback and raises
// the periodic interrupt and 128K paging.
//
// Grounded line-for-line on
// original_source/rustzx-core/src/zx/controller.rs: ZXController's field
// list, new(), send_key, floating_bus_value, do_contention/
// do_contention_and_wait/addr_is_contended, io_contention_first/
// io_contention_last, new_frame, write_7ffd, and the full Z80Bus impl
// (pc_callback's fast-tape-load trap, read_internal/write_internal's
// screen-update forwarding, wait_internal's tape->mixer->screen->frame-
// boundary ordering, wait_mreq/wait_no_mreq, read_io/write_io's port
// decode, read_interrupt, int_active/nmi_active, reti/halt,
// instant_event).

package spectrum

import (
	"github.com/zxcore/speccy/sound"
	"github.com/zxcore/speccy/tape"
	"github.com/zxcore/speccy/video"
)

// addrLdBreak is the ROM address of the LD-BREAK routine inside the tape
// loader; trapping the PC here lets the host swap in fast tape loading.
const addrLdBreak = 0x056B

// EventKind distinguishes entries in the controller's event queue.
type EventKind int

const (
	EventFastTapeLoad EventKind = iota
)

// Event is a timestamped notification the host must act on before the next
// CPU step (currently only the fast-tape-load trap).
type Event struct {
	Kind   EventKind
	Clocks int
}

// Controller is the central ZX Spectrum system controller.
type Controller struct {
	Machine  Machine
	Memory   *Memory
	Screen   *video.Screen
	Border   *video.Border
	Kempston *Kempston // nil when disabled
	Mixer    *sound.Mixer
	Keyboard Keyboard
	Tape     *tape.Tape

	borderColor byte

	frameClocks  int
	passedFrames int

	events       []Event
	instantEvent bool

	mic, ear      bool
	pagingEnabled bool
	screenBank    int
}

// NewController builds a Controller for m, with screen/border already
// backed by host framebuffers and Kempston support enabled if requested.
func NewController(m Machine, screen *video.Screen, border *video.Border, enableKempston bool) *Controller {
	var kempston *Kempston
	if enableKempston {
		kempston = &Kempston{}
	}
	screenBank := 0
	paging := false
	if m == Sinclair128K {
		screenBank = 5
		paging = true
	}
	c := &Controller{
		Machine:       m,
		Memory:        NewMemory(m),
		Screen:        screen,
		Border:        border,
		Kempston:      kempston,
		Mixer:         sound.NewMixer(true, m == Sinclair128K),
		Keyboard:      NewKeyboard(),
		Tape:          tape.Load(nil),
		pagingEnabled: paging,
		screenBank:    screenBank,
	}
	return c
}

// framePos returns how far through the current frame, as a 0..1 fraction,
// frameClocks has progressed.
func (c *Controller) framePos() float64 {
	v := float64(c.frameClocks) / float64(c.Machine.Specs().ClocksRow*c.Machine.Specs().LinesTotal)
	if v > 1.0 {
		return 1.0
	}
	return v
}

// SendKey updates one key's pressed state in the keyboard matrix.
func (c *Controller) SendKey(k Key, pressed bool) {
	c.Keyboard.SendKey(k, pressed)
}

// floatingBusValue returns what an IO read that decodes to none of the
// known ports sees: whatever byte the ULA itself last fetched from screen
// memory to render the current pixel, or 0xFF outside the visible area.
func (c *Controller) floatingBusValue() byte {
	specs := c.Machine.Specs()
	if c.frameClocks < specs.ClocksFirstPixel+2 {
		return 0xFF
	}
	clocks := c.frameClocks - (specs.ClocksFirstPixel + 2)
	row := clocks / specs.ClocksRow
	clocks %= specs.ClocksRow
	col := (clocks/8)*2 + (clocks%8)/2

	if row < video.CanvasHeight && clocks < specs.ClocksScreenRow-video.ClocksPerCol && clocks&0x04 == 0 {
		if clocks%2 == 0 {
			return c.Memory.Read(bitmapLineAddr(row) + uint16(col))
		}
		byteIdx := (row/8)*32 + col
		return c.Memory.Read(0x5800 + uint16(byteIdx))
	}
	return 0xFF
}

// bitmapLineAddr encodes a canvas line number into the absolute screen-RAM
// address of its first pixel byte: 0 1 0 Y7 Y6 Y2 Y1 Y0 | Y5 Y4 Y3 X4 X3 X2
// X1 X0.
func bitmapLineAddr(line int) uint16 {
	l := uint16(line)
	return 0x4000 | (l<<5)&0x1800 | (l<<8)&0x0700 | (l<<2)&0x00E0
}

func (c *Controller) doContention() {
	c.WaitInternal(c.Machine.ContentionClocks(c.frameClocks))
}

func (c *Controller) doContentionAndWait(wait int) {
	c.WaitInternal(c.Machine.ContentionClocks(c.frameClocks) + wait)
}

func (c *Controller) addrIsContended(addr uint16) bool {
	page := c.Memory.Page(addr)
	if page.Kind != PageRAM {
		return false
	}
	return c.Machine.BankIsContended(int(page.Bank))
}

func (c *Controller) ioContentionFirst(port uint16) {
	if c.addrIsContended(port) {
		c.doContention()
	}
	c.WaitInternal(1)
}

func (c *Controller) ioContentionLast(port uint16) {
	switch {
	case c.Machine.PortIsContended(port):
		c.doContentionAndWait(2)
	case c.addrIsContended(port):
		c.doContentionAndWait(1)
		c.doContentionAndWait(1)
		c.doContention()
	default:
		c.WaitInternal(2)
	}
}

func (c *Controller) newFrame() {
	c.frameClocks -= c.Machine.FrameClocks()
	c.Screen.NewFrame()
	c.Border.NewFrame()
	c.Mixer.NewFrame()
}

// ClearEvents drops every pending event.
func (c *Controller) ClearEvents() { c.events = nil }

// NoEvents reports whether the event queue is empty.
func (c *Controller) NoEvents() bool { return len(c.events) == 0 }

// PopEvent removes and returns the oldest pending event.
func (c *Controller) PopEvent() (Event, bool) {
	if len(c.events) == 0 {
		return Event{}, false
	}
	e := c.events[0]
	c.events = c.events[1:]
	return e, true
}

// FramesCount returns how many whole frames have elapsed since the last
// ResetFrameCounter.
func (c *Controller) FramesCount() int { return c.passedFrames }

// ResetFrameCounter zeroes the elapsed-frame counter, used by a host main
// loop to measure exactly one video frame's worth of emulation.
func (c *Controller) ResetFrameCounter() { c.passedFrames = 0 }

// Clocks returns the current frame-relative T-state count.
func (c *Controller) Clocks() int { return c.frameClocks }

// write7FFD handles a 128K paging-port write: RAM page into the top 16K
// slot, screen buffer select, ROM page select, and the one-way paging-lock
// bit.
func (c *Controller) write7FFD(val byte) {
	if !c.pagingEnabled {
		return
	}
	c.Memory.Remap(3, Page{Kind: PageRAM, Bank: val & 0x07})
	newScreenBank := 5
	if val&0x08 != 0 {
		newScreenBank = 7
	}
	c.Screen.SwitchBank(newScreenBank)
	c.screenBank = newScreenBank
	c.Memory.Remap(0, Page{Kind: PageROM, Bank: (val >> 4) & 0x01})
	if val&0x20 != 0 {
		c.pagingEnabled = false
	}
}

// ApplyPagingPort forces the 128K paging state to what a 0x7FFD write of
// val would produce, for restoring a snapshot's paging state regardless of
// whether the paging-lock bit was already set.
func (c *Controller) ApplyPagingPort(val byte) {
	c.pagingEnabled = true
	c.write7FFD(val)
}

// PCCallback implements z80.Bus: traps the tape loader's LD-BREAK routine
// while ROM is paged in, raising a fast-tape-load event for the host to act
// on before the next instruction.
func (c *Controller) PCCallback(addr uint16) {
	checkFastLoad := false
	switch c.Machine {
	case Sinclair48K:
		checkFastLoad = c.Memory.Page(0) == Page{Kind: PageROM, Bank: 0}
	case Sinclair128K:
		checkFastLoad = c.Memory.Page(0) == Page{Kind: PageROM, Bank: 1}
	}
	if checkFastLoad && addr == addrLdBreak {
		c.events = append(c.events, Event{Kind: EventFastTapeLoad, Clocks: c.frameClocks})
		c.instantEvent = true
	}
}

// ReadInternal implements z80.Bus: a read with no timing side effects.
func (c *Controller) ReadInternal(addr uint16) byte {
	return c.Memory.Read(addr)
}

// WriteInternal implements z80.Bus: a write with no timing side effects,
// forwarding the byte into the rasterizer's decoded bitmap/attribute arrays
// whenever it lands in a bank currently mapped as video memory.
func (c *Controller) WriteInternal(addr uint16, data byte) {
	c.Memory.Write(addr, data)
	page := c.Memory.Page(addr)
	if page.Kind == PageRAM {
		c.Screen.Update(addr%pageSize, int(page.Bank), data)
	}
}

// WaitInternal implements z80.Bus: advances the frame clock by clk
// T-states, in the order the real hardware's devices actually observe
// it — tape first (so its EAR bit is current before the beeper samples
// it), then the audio mixer, then the rasterizer, then the frame-boundary
// check.
func (c *Controller) WaitInternal(clk int) {
	c.frameClocks += clk
	c.Tape.ProcessClocks(clk)
	c.mic = c.Tape.CurrentBit()
	pos := c.framePos()
	c.Mixer.Beeper.ChangeBit(c.mic || c.ear)
	c.Mixer.Process(pos)
	c.Screen.ProcessClocks(c.frameClocks)
	if c.frameClocks >= c.Machine.FrameClocks() {
		c.newFrame()
		c.passedFrames++
	}
}

// WaitMreq implements z80.Bus: charges contention for a memory access at
// addr, then the base clock cost.
func (c *Controller) WaitMreq(addr uint16, clk int) {
	if c.addrIsContended(addr) {
		c.doContention()
	}
	c.WaitInternal(clk)
}

// WaitNoMreq implements z80.Bus. Only 48K/128K's shared contention model
// applies here too, so it delegates straight to WaitMreq.
func (c *Controller) WaitNoMreq(addr uint16, clk int) {
	c.WaitMreq(addr, clk)
}

// ReadIO implements z80.Bus: decodes and services an IO port read —
// keyboard/MIC on even ports, AY data on 0xFFFD-shaped addresses, Kempston
// on bit 5 clear, floating bus otherwise.
func (c *Controller) ReadIO(port uint16) byte {
	c.ioContentionFirst(port)
	c.ioContentionLast(port)

	h := byte(port >> 8)
	var output byte
	switch {
	case port&0x0001 == 0:
		tmp := byte(0xFF)
		for n := uint(0); n < 8; n++ {
			if (h>>n)&0x01 == 0 {
				tmp &= c.Keyboard[n]
			}
		}
		if c.mic {
			tmp ^= 0x40
		}
		output = tmp
	case port&0xC002 == 0xC000:
		output = c.Mixer.AY.Read()
	case c.Kempston != nil && port&0x0020 == 0:
		output = c.Kempston.Read()
	default:
		output = c.floatingBusValue()
	}
	c.WaitInternal(1)
	return output
}

// WriteIO implements z80.Bus: decodes and services an IO port write — AY
// select/data, border/MIC/EAR on even ports, 128K paging on 0x7FFD-shaped
// addresses.
func (c *Controller) WriteIO(port uint16, data byte) {
	c.ioContentionFirst(port)

	switch {
	case port&0xC002 == 0xC000:
		c.Mixer.AY.SelectReg(data)
	case port&0xC002 == 0x8000:
		c.Mixer.AY.Write(data)
	case port&0x0001 == 0:
		c.borderColor = data & 0x07
		c.Border.SetBorder(c.frameClocks, c.Machine.Specs().ClocksRow, video.ColorFromBits(data&0x07))
		c.mic = data&0x08 != 0
		c.ear = data&0x10 != 0
		c.Mixer.Beeper.ChangeBit(c.mic || c.ear)
	case port&0x8002 == 0 && c.Machine == Sinclair128K:
		c.write7FFD(data)
	}

	c.ioContentionLast(port)
	c.WaitInternal(1)
}

// ReadInterrupt implements z80.Bus: the value latched on the data bus
// during an IM0/IM2 interrupt acknowledge cycle. Real hardware floats this
// line; 0xFF is what every ULA variant is observed to drive it to.
func (c *Controller) ReadInterrupt() byte { return 0xFF }

// IntActive implements z80.Bus: the maskable interrupt line is held active
// for the first InterruptLength T-states of every frame.
func (c *Controller) IntActive() bool {
	return c.frameClocks%c.Machine.FrameClocks() < c.Machine.Specs().InterruptLength
}

// NMIActive implements z80.Bus: this controller never raises NMI.
func (c *Controller) NMIActive() bool { return false }

// RETI implements z80.Bus; nothing observes RETI completion here.
func (c *Controller) RETI() {}

// Halt implements z80.Bus; nothing observes HALT state here.
func (c *Controller) Halt(halted bool) {}

// InstantEvent implements z80.Bus: reports and clears the instant-event
// flag PCCallback raises for a fast-tape-load trap.
func (c *Controller) InstantEvent() bool {
	v := c.instantEvent
	c.instantEvent = false
	return v
}
