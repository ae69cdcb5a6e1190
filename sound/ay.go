// ay.go - AY-3-8912 register file
//
// Grounded on original_source/rustzx-core/src/zx/sound/ay.rs: the 16-byte
// register file addressed by select_reg/write/read. Tone/noise/envelope
// synthesis (the ayumi-backed part of that file) is out of scope here: the
// spec's sound component only needs register-file semantics so games and
// trackers that poke the AY can be introspected, not an audible AY mix.
package sound

// AYMode selects the stereo channel panning convention; kept only as a
// recorded setting since this register file does not synthesize audio.
type AYMode int

const (
	AYMono AYMode = iota
	AYABC
	AYACB
)

// AY is the AY-3-8912's 16-register file as seen through ports 0xFFFD
// (select) and 0xBFFD (data).
type AY struct {
	mode    AYMode
	current byte
	regs    [16]byte
}

// NewAY builds a register file in the given panning mode.
func NewAY(mode AYMode) *AY {
	return &AY{mode: mode}
}

// Mode reports the configured panning convention.
func (a *AY) Mode() AYMode { return a.mode }

// SetMode changes the panning convention.
func (a *AY) SetMode(mode AYMode) { a.mode = mode }

// SelectReg latches the register address future Write/Read calls target.
func (a *AY) SelectReg(reg byte) { a.current = reg & 0x0F }

// Write stores data into the currently-selected register.
func (a *AY) Write(data byte) { a.regs[a.current] = data }

// Read returns the currently-selected register's value.
func (a *AY) Read() byte { return a.regs[a.current] }
