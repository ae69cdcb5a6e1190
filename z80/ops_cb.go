// ops_cb.go - the CB-prefixed (and DDCB/FDCB) bit/rotate group
//
// Grounded on original_source/rustzx-z80/src/opcode/group_bits.rs:
// rotate dispatch by opcode.y, BIT's MEMPTR-derived F3/F5 for the indirect
// operand, and the DDCB/FDCB undocumented "also store to register z"
// writeback.

package z80

// executeBits handles CB-prefixed opcodes. prefix is PrefixNone for plain
// CB, or PrefixDD/PrefixFD for DDCB/FDCB (in that case executeBits fetches
// the displacement byte, which precedes the opcode byte).
func (c *CPU) executeBits(bus Bus, prefix Prefix) {
	r := &c.Regs
	var op Opcode
	var addr uint16
	indirect := false
	var regIdx byte

	if prefix == PrefixNone {
		op = DecodeOpcode(c.fetchByte(bus, 4))
		r.IncR(1)
		if op.Z == 6 {
			indirect = true
			addr = r.HL()
		} else {
			regIdx = op.Z
		}
	} else {
		displacement := int8(c.fetchByte(bus, 3))
		var base uint16
		if prefix == PrefixDD {
			base = r.IX()
		} else {
			base = r.IY()
		}
		addr = uint16(int32(base) + int32(displacement))
		r.MEMPTR = addr
		op = DecodeOpcode(Read(bus, r.PC, 3))
		WaitLoop(bus, r.PC, 2)
		r.PC++
		indirect = true
	}

	var data byte
	if indirect {
		data = Read(bus, addr, 3)
		bus.WaitNoMreq(addr, 1)
	} else {
		data = c.getReg8(bus, regIdx, PrefixNone)
	}

	var result byte
	switch op.X {
	case 0:
		result = rotateOps[op.Y](r, data)
		if indirect {
			Write(bus, addr, result, 3)
		} else {
			c.setReg8(bus, regIdx, PrefixNone, result)
		}
	case 1:
		bitIsSet := data&(1<<op.Y) != 0
		f := r.F & FlagC
		f |= FlagH
		if !bitIsSet {
			f |= FlagZ | FlagPV
		}
		if bitIsSet && op.Y == 7 {
			f |= FlagS
		}
		if indirect {
			f |= byte(r.MEMPTR>>8) & (FlagF3 | FlagF5)
		} else {
			f |= f3f5Table[data]
		}
		r.SetFlags(f)
	case 2:
		result = data &^ (1 << op.Y)
		if indirect {
			Write(bus, addr, result, 3)
		} else {
			c.setReg8(bus, regIdx, PrefixNone, result)
		}
	case 3:
		result = data | (1 << op.Y)
		if indirect {
			Write(bus, addr, result, 3)
		} else {
			c.setReg8(bus, regIdx, PrefixNone, result)
		}
	}

	// DDCB/FDCB undocumented writeback: RLC/RRC/.../RES/SET also store to
	// register z, except when z==6 (no extra register, the memory write
	// above is the only effect) or for BIT (no writeback at all).
	if prefix != PrefixNone && op.X != 1 && op.Z != 6 {
		c.setReg8(bus, op.Z, PrefixNone, result)
	}
}
