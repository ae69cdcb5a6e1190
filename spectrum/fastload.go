// fastload.go - short-circuits the 48K ROM's LD-BYTES routine, replacing
// thousands of emulated T-states of pulse decoding with a direct tape-block
// copy once EventFastTapeLoad fires.
//
// Grounded line-for-line on
// original_source/rustzx-core/src/emulator/loaders/tap.rs: the ROM is
// trapped at 0x056B with AF holding the block's parity state in AF' (the
// ROM having just done EX AF,AF'), IX/DE the destination/remaining-length
// pair, and the host is expected to emulate the loader's own byte loop
// before returning via the same RET the ROM would have executed.

package spectrum

import "github.com/zxcore/speccy/z80"

// FastLoadTape performs one LD-BYTES call's worth of work in a single step,
// to be invoked by the host when it pops an EventFastTapeLoad off the
// controller's event queue. It mutates cpu's registers exactly as the ROM
// routine would have, including popping PC off the stack on completion.
func FastLoadTape(cpu *z80.CPU, ctrl *Controller) {
	r := &cpu.Regs
	r.ExAF()

	f := r.F
	acc := r.A
	dest := r.IX()
	length := r.DE()

	var parityAcc, currByte byte
	var resultFlags byte
	haveResult := false

	if !ctrl.Tape.NextBlock() {
		r.ExAF()
		return
	}

loader:
	for {
		b, ok := ctrl.Tape.NextBlockByte()
		if !ok {
			resultFlags = z80.FlagZ
			haveResult = true
			break loader
		}
		currByte = b
		parityAcc ^= currByte

		if length == 0 {
			acc = parityAcc
			resultFlags = 0
			if acc == 0 {
				resultFlags = z80.FlagC
			}
			haveResult = true
			break loader
		}

		if f&z80.FlagZ == 0 {
			acc ^= currByte
			if acc != 0 {
				resultFlags = 0
				haveResult = true
				break loader
			}
			f |= z80.FlagZ
			continue
		}

		if f&z80.FlagC != 0 {
			ctrl.WriteInternal(dest, currByte)
		} else {
			acc = ctrl.Memory.Read(dest) ^ currByte
			if acc != 0 {
				resultFlags = 0
				haveResult = true
				break loader
			}
		}
		dest++
		length--
	}

	r.SetIX(dest)
	r.SetDE(length)
	r.SetHL(uint16(parityAcc)<<8 | uint16(currByte))
	r.A = acc
	if haveResult {
		f = resultFlags
		cpu.PopPCFromStack(ctrl)
	}
	r.F = f
}
