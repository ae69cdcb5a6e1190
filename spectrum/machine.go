// machine.go - per-model timing/memory specifications
//
// Grounded line-for-line on
// original_source/rustzx-core/src/zx/machine/mod.rs: the 48K/128K constant
// tables (`SPECS_48K`/`SPECS_128K`), `contention_clocks`, `port_is_contended`
// and `bank_is_contended`.

package spectrum

// Machine identifies which ZX Spectrum model a Controller emulates.
type Machine int

const (
	Sinclair48K Machine = iota
	Sinclair128K
)

// Specs holds the per-model constants that drive contention, frame timing
// and interrupt length.
type Specs struct {
	FreqCPU int

	ClocksFirstPixel int
	ClocksRow        int // full row length including border+retrace
	ClocksScreenRow  int // paper (screen-fetch) portion of a row, no borders
	LinesScreen      int
	LinesTotal       int

	ClocksULAReadShift int // delay between beam position and ULA's own read
	ClocksULABeamShift int // delay between ULA read and the pixel it affects

	ContentionPattern [8]int
	InterruptLength   int
	ROMPages          int
}

// ClocksULAReadOrigin is the frame-clock position of the first byte the ULA
// reads out of screen memory to render the top-left pixel block.
func (s *Specs) ClocksULAReadOrigin() int {
	return s.ClocksFirstPixel + s.ClocksULAReadShift
}

// BorderClocksOrigin is the frame-clock position of the first border pixel,
// back-computed from the canvas's first pixel: 3 border rows and 4 border
// columns earlier, shifted by the beam's fixed render delay.
func (s *Specs) BorderClocksOrigin() int {
	const borderRows = 3
	const borderCols = 4
	return s.ClocksFirstPixel - 8*borderRows*s.ClocksRow - borderCols*ClocksPerCol + s.ClocksULABeamShift
}

// ClocksPerCol is fixed across every ZX Spectrum model.
const ClocksPerCol = 4

var specs48K = Specs{
	FreqCPU:            3_500_000,
	ClocksFirstPixel:   14336,
	ClocksRow:          224, // 24+128+24+48
	ClocksScreenRow:    128,
	LinesScreen:        192,
	LinesTotal:         48 + 192 + 48 + 24,
	ClocksULAReadShift: 2,
	ClocksULABeamShift: 1,
	ContentionPattern:  [8]int{6, 5, 4, 3, 2, 1, 0, 0},
	InterruptLength:    32,
	ROMPages:           1,
}

var specs128K = Specs{
	FreqCPU:            3_546_900,
	ClocksFirstPixel:   14362,
	ClocksRow:          228, // 24+128+24+52
	ClocksScreenRow:    128,
	LinesScreen:        192,
	LinesTotal:         48 + 192 + 48 + 23,
	ClocksULAReadShift: 2,
	ClocksULABeamShift: 1,
	ContentionPattern:  [8]int{6, 5, 4, 3, 2, 1, 0, 0},
	InterruptLength:    32,
	ROMPages:           2,
}

// Specs returns the constant table for m.
func (m Machine) Specs() *Specs {
	if m == Sinclair128K {
		return &specs128K
	}
	return &specs48K
}

// ContentionClocks returns the number of extra T-states a memory/IO access
// at the given absolute frame clock position suffers, zero outside the
// visible raster area.
func (m Machine) ContentionClocks(clocks int) int {
	s := m.Specs()
	linesClocks := s.LinesScreen * s.ClocksRow
	if clocks < s.ClocksFirstPixel-1 || clocks >= (s.ClocksFirstPixel-1)+linesClocks {
		return 0
	}
	clocksThroughLine := (clocks - (s.ClocksFirstPixel - 1)) % s.ClocksRow
	if clocksThroughLine >= s.ClocksScreenRow {
		return 0
	}
	return s.ContentionPattern[clocksThroughLine%8]
}

// PortIsContended reports whether port suffers ULA contention (every even
// port on both 48K and 128K).
func (m Machine) PortIsContended(port uint16) bool {
	return port&0x0001 == 0
}

// BankIsContended reports whether RAM page is on the contended bus.
func (m Machine) BankIsContended(page int) bool {
	if m == Sinclair48K {
		return page == 0
	}
	switch page {
	case 1, 3, 5, 7:
		return true
	default:
		return false
	}
}

// FrameClocks is the total T-state length of one video frame.
func (m Machine) FrameClocks() int {
	s := m.Specs()
	return s.ClocksRow * s.LinesTotal
}
