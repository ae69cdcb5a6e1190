// tap.go - TAP tape image playback, pulse-accurate EAR bit generation
//
// Grounded on original_source/rustzx-core/src/zx/tape/tap.rs: the
// Stop/Play/Pilot/Sync/NextByte/NextBit/BitHalf/Pause state machine and its
// pilot/sync/bit pulse-length constants. The Rust version streams blocks
// through a fixed read-ahead buffer because its asset source may not fit in
// memory; a loaded .tap image is just a byte slice here, so next_block/
// next_block_byte collapse to plain slice indexing.

package tape

const (
	pilotLength       = 2168
	pilotPulsesHeader = 8063
	pilotPulsesData   = 3223
	sync1Length       = 667
	sync2Length       = 735
	bitOneLength      = 1710
	bitZeroLength     = 855
	pauseLength       = 3_500_000
)

type state int

const (
	stStop state = iota
	stPlay
	stPilot
	stSync
	stNextByte
	stNextBit
	stBitHalf
	stPause
)

// Tape is a rewindable, fast-load-aware TAP image player. Its EAR bit
// contract (CurrentBit/ProcessClocks) is what the Controller wires into the
// beeper and the 0xFE port.
type Tape struct {
	blocks [][]byte // raw block payloads, length-prefix already stripped
	block  int       // index of the block currently playing
	pos    int       // byte offset within the current block

	state     state
	prevState state

	pulsesLeft int
	bitMask    byte
	halfDelay  int

	currByte byte
	currBit  bool
	delay    int
}

// Load parses a standard .tap image (each block: 2-byte little-endian
// length, then that many payload bytes) and rewinds to the start.
func Load(data []byte) *Tape {
	t := &Tape{}
	for i := 0; i+2 <= len(data); {
		n := int(data[i]) | int(data[i+1])<<8
		i += 2
		if i+n > len(data) {
			n = len(data) - i
		}
		t.blocks = append(t.blocks, data[i:i+n])
		i += n
	}
	t.Rewind()
	return t
}

// CanFastLoad reports whether the tape is positioned to start a block from
// rest, the only moment the ROM's tape loader trap is safe to short-circuit.
func (t *Tape) CanFastLoad() bool { return t.state == stStop }

// CurrentBit returns the tape's current EAR output.
func (t *Tape) CurrentBit() bool { return t.currBit }

// Play resumes playback (from the beginning if the tape was never started).
func (t *Tape) Play() {
	if t.state == stStop {
		if t.prevState == stStop {
			t.state = stPlay
		} else {
			t.state = t.prevState
		}
	}
}

// Stop pauses the tape, remembering the state to resume into on Play.
func (t *Tape) Stop() {
	t.prevState = t.state
	t.state = stStop
}

// Rewind resets playback to the first block.
func (t *Tape) Rewind() {
	t.block = 0
	t.pos = 0
	t.state = stStop
	t.prevState = stStop
	t.currBit = false
	t.delay = 0
}

// NextBlockByte returns the next payload byte of the current block, or
// false once the block is exhausted. Exported for the fast tape loader,
// which reads raw block bytes directly instead of through pulse timing.
func (t *Tape) NextBlockByte() (byte, bool) {
	return t.nextBlockByte()
}

// nextBlockByte returns the next payload byte of the current block, or
// false once the block is exhausted.
func (t *Tape) nextBlockByte() (byte, bool) {
	if t.block >= len(t.blocks) {
		return 0, false
	}
	blk := t.blocks[t.block]
	if t.pos >= len(blk) {
		return 0, false
	}
	b := blk[t.pos]
	t.pos++
	return b, true
}

// NextBlock advances to the next block, returning false at end of tape.
// Exported for the fast tape loader.
func (t *Tape) NextBlock() bool {
	return t.nextBlock()
}

// nextBlock advances to the next block, returning false at end of tape.
func (t *Tape) nextBlock() bool {
	t.block++
	t.pos = 0
	return t.block < len(t.blocks)
}

// ProcessClocks advances the tape state machine by clocks T-states,
// flipping CurrentBit at every pilot/sync/data pulse edge exactly as the
// real ULA's EAR input would.
func (t *Tape) ProcessClocks(clocks int) {
	if t.state == stStop {
		return
	}
	if t.delay > 0 {
		if clocks > t.delay {
			t.delay = 0
		} else {
			t.delay -= clocks
		}
		return
	}

	for {
		switch t.state {
		case stStop:
			t.Rewind()
			return
		case stPlay:
			if t.block >= len(t.blocks) {
				t.state = stStop
				continue
			}
			first, ok := t.peekFirstByteOfBlock()
			if !ok {
				t.state = stStop
				continue
			}
			if first == 0x00 {
				t.pulsesLeft = pilotPulsesHeader
			} else {
				t.pulsesLeft = pilotPulsesData
			}
			t.currByte = first
			t.currBit = true
			t.delay = pilotLength
			t.state = stPilot
			return
		case stPilot:
			t.currBit = !t.currBit
			t.pulsesLeft--
			if t.pulsesLeft == 0 {
				t.delay = sync1Length
				t.state = stSync
			} else {
				t.delay = pilotLength
			}
			return
		case stSync:
			t.currBit = !t.currBit
			t.delay = sync2Length
			t.bitMask = 0x80
			t.state = stNextBit
			return
		case stNextByte:
			b, ok := t.nextBlockByte()
			if !ok {
				t.state = stPause
				continue
			}
			t.currByte = b
			t.bitMask = 0x80
			t.state = stNextBit
		case stNextBit:
			t.currBit = !t.currBit
			if t.currByte&t.bitMask == 0 {
				t.delay = bitZeroLength
				t.halfDelay = bitZeroLength
			} else {
				t.delay = bitOneLength
				t.halfDelay = bitOneLength
			}
			t.state = stBitHalf
			return
		case stBitHalf:
			t.currBit = !t.currBit
			t.delay = t.halfDelay
			t.bitMask >>= 1
			if t.bitMask == 0 {
				t.state = stNextByte
			} else {
				t.state = stNextBit
			}
			return
		case stPause:
			t.currBit = !t.currBit
			t.delay = pauseLength
			if !t.nextBlock() {
				t.state = stStop
			} else {
				t.state = stPlay
			}
			return
		}
	}
}

// peekFirstByteOfBlock primes playback of the block at t.block, resetting
// its read position and returning its first byte.
func (t *Tape) peekFirstByteOfBlock() (byte, bool) {
	if t.block >= len(t.blocks) {
		return 0, false
	}
	t.pos = 0
	return t.nextBlockByte()
}
