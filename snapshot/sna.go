// sna.go - .SNA snapshot loading (48K v1, 128K v2/v3)
//
// The retrieved pack has no snapshot-format source (rustzx-core defers
// snapshot loading to its host application, which isn't part of this
// repo's source tree), so this is grounded on the public .SNA layout
// instead: a fixed 27-byte register header (I, shadow+primary register
// pairs, IY, IX, IFF2, R, AF, SP, interrupt mode, border colour) followed
// by a 48K RAM dump. The plain (v1) format ends there. In the 128K (v2/v3)
// format that 48K dump holds banks 5, 2 and the bank paged at 0xC000, and
// is followed by a PC/7FFD/TR-DOS extension and then the remaining 16K
// banks in 0,1,3,4,6,7 order. Field order and the 128K bank-ordering
// convention are exactly what every ZX Spectrum emulator agrees on.
//
// LoadSNA only decodes; Apply (apply.go) restores the decoded fields into a
// *z80.CPU/*spectrum.Controller.
package snapshot

import (
	"errors"
	"fmt"
)

// ErrNotSupported is returned by formats this package recognizes but does
// not implement loading for (currently SZX).
var ErrNotSupported = errors.New("snapshot: format not supported")

// Snapshot is the decoded, machine-independent contents of a .SNA file.
type Snapshot struct {
	I                  byte
	HL2, DE2, BC2, AF2 uint16
	HL, DE, BC         uint16
	IY, IX             uint16
	IFF2               bool
	R                  byte
	AF                 uint16
	SP                 uint16
	IM                 byte
	BorderColor        byte

	PC uint16

	// Is128K reports whether Port7FFD/Banks came from a v2/v3 128K image.
	Is128K   bool
	Port7FFD byte

	// RAM48 holds the flat 48K (0x4000-0xFFFF) image for a 48K snapshot.
	// Banks holds all 8 16K pages for a 128K snapshot, indexed by bank
	// number (the page currently mapped at 0xC000 is bank Port7FFD&0x07).
	RAM48 []byte
	Banks [8][]byte
}

const (
	headerSize = 27
	pageSize   = 16 * 1024
	ram48Size  = 3 * pageSize
)

// LoadSNA parses a .SNA image.
func LoadSNA(data []byte) (*Snapshot, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("snapshot: file too short for SNA header (%d bytes)", len(data))
	}
	s := &Snapshot{}
	h := data[:headerSize]
	s.I = h[0]
	s.HL2 = le16(h[1:3])
	s.DE2 = le16(h[3:5])
	s.BC2 = le16(h[5:7])
	s.AF2 = le16(h[7:9])
	s.HL = le16(h[9:11])
	s.DE = le16(h[11:13])
	s.BC = le16(h[13:15])
	s.IY = le16(h[15:17])
	s.IX = le16(h[17:19])
	s.IFF2 = h[19]&0x04 != 0
	s.R = h[20]
	s.AF = le16(h[21:23])
	s.SP = le16(h[23:25])
	s.IM = h[25]
	s.BorderColor = h[26]

	rest := data[headerSize:]

	switch {
	case len(rest) == ram48Size:
		// Plain 48K snapshot: PC sits on top of the stack.
		s.RAM48 = rest
		if int(s.SP) >= 0x4000 {
			pcAddr := int(s.SP) - 0x4000
			if pcAddr+2 <= len(rest) {
				s.PC = le16(rest[pcAddr : pcAddr+2])
				s.SP += 2
			}
		}
		return s, nil

	case len(rest) >= ram48Size+4:
		s.Is128K = true
		ext := rest[ram48Size:]
		s.PC = le16(ext[0:2])
		s.Port7FFD = ext[2]
		// ext[3] is the TR-DOS paged-in flag, not needed here.
		body := rest[:ram48Size]
		current := int(s.Port7FFD & 0x07)
		s.Banks[5] = body[0:pageSize]
		s.Banks[2] = body[pageSize : 2*pageSize]
		s.Banks[current] = body[2*pageSize : 3*pageSize]
		rem := ext[4:]
		for _, bank := range []int{0, 1, 3, 4, 6, 7} {
			if bank == current {
				continue
			}
			if len(rem) < pageSize {
				return nil, fmt.Errorf("snapshot: truncated 128K page data at bank %d", bank)
			}
			s.Banks[bank] = rem[:pageSize]
			rem = rem[pageSize:]
		}
		return s, nil

	default:
		return nil, fmt.Errorf("snapshot: unrecognized SNA body length %d", len(rest))
	}
}

// LoadSZX is not implemented: the retrieved pack carries no SZX source to
// ground a block-parser implementation on, and the format's zlib-compressed
// block layout is materially different from SNA's fixed header, so no
// partial implementation is offered here either.
func LoadSZX(data []byte) (*Snapshot, error) {
	return nil, ErrNotSupported
}

func le16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
