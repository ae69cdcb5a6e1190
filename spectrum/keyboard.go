// keyboard.go - the 8x5 keyboard matrix
//
// Grounded on original_source/rustzx-core/src/zx/keys.rs: ZXKey's
// half_port()/row_id()/mask() giving each of the 40 physical keys its
// (row, bit) position, plus CompoundKey for the cursor/caps/delete/break
// keys synthesized from Shift+digit chords on real hardware.

package spectrum

// Key identifies one physical key on the 40-key ZX Spectrum keyboard.
type Key int

const (
	KeyShift Key = iota
	KeyZ
	KeyX
	KeyC
	KeyV

	KeyA
	KeyS
	KeyD
	KeyF
	KeyG

	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT

	Key1
	Key2
	Key3
	Key4
	Key5

	Key0
	Key9
	Key8
	Key7
	Key6

	KeyP
	KeyO
	KeyI
	KeyU
	KeyY

	KeyEnter
	KeyL
	KeyK
	KeyJ
	KeyH

	KeySpace
	KeySymShift
	KeyM
	KeyN
	KeyB
)

// row returns the keyboard matrix row (0-7) this key lives in, corresponding
// to which half of the 0xFE port's high byte is driven low to read it.
func (k Key) row() int {
	switch {
	case k <= KeyV:
		return 0
	case k <= KeyG:
		return 1
	case k <= KeyT:
		return 2
	case k <= Key5:
		return 3
	case k <= Key6:
		return 4
	case k <= KeyY:
		return 5
	case k <= KeyH:
		return 6
	default:
		return 7
	}
}

// mask returns the bit within that row's byte this key pulls low when
// pressed.
func (k Key) mask() byte {
	switch k {
	case KeyShift, KeyA, KeyQ, Key1, Key0, KeyP, KeyEnter, KeySpace:
		return 0x01
	case KeyZ, KeyS, KeyW, Key2, Key9, KeyO, KeyL, KeySymShift:
		return 0x02
	case KeyX, KeyD, KeyE, Key3, Key8, KeyI, KeyK, KeyM:
		return 0x04
	case KeyC, KeyF, KeyR, Key4, Key7, KeyU, KeyJ, KeyN:
		return 0x08
	case KeyV, KeyG, KeyT, Key5, Key6, KeyY, KeyH, KeyB:
		return 0x10
	}
	panic("spectrum: invalid key")
}

// CompoundKey is a cursor/editing key real ZX Spectrum software expects as
// a CAPS SHIFT chord (with a digit key, or SPACE for Break) rather than its
// own matrix position.
type CompoundKey int

const (
	ArrowLeft CompoundKey = iota
	ArrowRight
	ArrowUp
	ArrowDown
	CapsLock
	Delete
	Break
)

// PrimaryKey returns the key this compound key chords with CAPS SHIFT: a
// digit key, or SPACE for Break.
func (c CompoundKey) PrimaryKey() Key {
	switch c {
	case ArrowLeft:
		return Key5
	case ArrowRight:
		return Key8
	case ArrowUp:
		return Key7
	case ArrowDown:
		return Key6
	case CapsLock:
		return Key2
	case Delete:
		return Key0
	case Break:
		return KeySpace
	}
	panic("spectrum: invalid compound key")
}

// Keyboard is the 8-row key matrix; each row byte has a 0 bit for every key
// in that row currently held down, 1 otherwise, matching what port 0xFE
// returns directly.
type Keyboard [8]byte

// NewKeyboard returns a keyboard with no keys pressed.
func NewKeyboard() Keyboard {
	var kb Keyboard
	for i := range kb {
		kb[i] = 0xFF
	}
	return kb
}

// SendKey updates one key's pressed state.
func (kb *Keyboard) SendKey(k Key, pressed bool) {
	row, mask := k.row(), k.mask()
	kb[row] &^= mask
	if !pressed {
		kb[row] |= mask
	}
}

// SendCompound presses or releases both keys of a chord.
func (kb *Keyboard) SendCompound(c CompoundKey, pressed bool) {
	kb.SendKey(KeyShift, pressed)
	kb.SendKey(c.PrimaryKey(), pressed)
}
