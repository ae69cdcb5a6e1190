// operands.go - r/rp/rp2 operand addressing, including DD/FD substitution
// and the (HL)/(IX+d)/(IY+d) indirect operand.
//
// Grounded on the x/y/z/p/q table conventions documented in
// original_source/src/z80/opcodes/types.rs and group_nonprefixed.rs
// (`RegName16::from_u2_sp(...).with_prefix(prefix)`), adapted to direct
// struct field access instead of a RegName enum indirection.

package z80

// indexDisplacementAddr computes the effective address for the (HL)
// operand under an active DD/FD prefix, fetching and caching the signed
// displacement byte exactly once per instruction, and charging the extra
// 5 T-states of internal operation the real CPU spends forming IX+d/IY+d.
func (c *CPU) indexDisplacementAddr(bus Bus) uint16 {
	if !c.haveIndex {
		c.curOffset = int8(c.fetchByte(bus, 3))
		bus.WaitInternal(5)
		c.haveIndex = true
	}
	var base uint16
	if c.curIndex == indexIX {
		base = c.Regs.IX()
	} else {
		base = c.Regs.IY()
	}
	addr := uint16(int32(base) + int32(c.curOffset))
	c.Regs.MEMPTR = addr
	return addr
}

// resetIndexCache must be called once at the top of every instruction that
// may reference the (HL)/(IX+d)/(IY+d) operand, so successive instructions
// don't share a stale cached displacement.
func (c *CPU) resetIndexCache(prefix Prefix) {
	c.curIndex = prefixIndex(prefix)
	c.haveIndex = false
}

// operandAddr returns the effective address of operand idx==6 ((HL) or an
// indexed variant), reading the HL register pair directly when no index
// prefix is active.
func (c *CPU) operandAddr(bus Bus, prefix Prefix) uint16 {
	if prefix == PrefixNone {
		return c.Regs.HL()
	}
	return c.indexDisplacementAddr(bus)
}

// getReg8 reads 8-bit operand idx (0=B,1=C,2=D,3=E,4=H,5=L,6=(HL),7=A),
// substituting IXH/IXL/IYH/IYL for H/L and IX+d/IY+d for (HL) under an
// active prefix.
func (c *CPU) getReg8(bus Bus, idx byte, prefix Prefix) byte {
	r := &c.Regs
	switch idx {
	case 0:
		return r.B
	case 1:
		return r.C
	case 2:
		return r.D
	case 3:
		return r.E
	case 4:
		if prefix == PrefixDD {
			return r.IXH
		} else if prefix == PrefixFD {
			return r.IYH
		}
		return r.H
	case 5:
		if prefix == PrefixDD {
			return r.IXL
		} else if prefix == PrefixFD {
			return r.IYL
		}
		return r.L
	case 6:
		return Read(bus, c.operandAddr(bus, prefix), 3)
	case 7:
		return r.A
	}
	panic("z80: invalid reg8 index")
}

func (c *CPU) setReg8(bus Bus, idx byte, prefix Prefix, val byte) {
	r := &c.Regs
	switch idx {
	case 0:
		r.B = val
	case 1:
		r.C = val
	case 2:
		r.D = val
	case 3:
		r.E = val
	case 4:
		if prefix == PrefixDD {
			r.IXH = val
		} else if prefix == PrefixFD {
			r.IYH = val
		} else {
			r.H = val
		}
	case 5:
		if prefix == PrefixDD {
			r.IXL = val
		} else if prefix == PrefixFD {
			r.IYL = val
		} else {
			r.L = val
		}
	case 6:
		Write(bus, c.operandAddr(bus, prefix), val, 3)
	case 7:
		r.A = val
	default:
		panic("z80: invalid reg8 index")
	}
}

// getReg16rp reads the p-indexed register pair group {BC,DE,HL/IX/IY,SP}.
func (c *CPU) getReg16rp(p byte, prefix Prefix) uint16 {
	r := &c.Regs
	switch p {
	case 0:
		return r.BC()
	case 1:
		return r.DE()
	case 2:
		switch prefix {
		case PrefixDD:
			return r.IX()
		case PrefixFD:
			return r.IY()
		default:
			return r.HL()
		}
	case 3:
		return r.SP
	}
	panic("z80: invalid reg16 index")
}

func (c *CPU) setReg16rp(p byte, prefix Prefix, val uint16) {
	r := &c.Regs
	switch p {
	case 0:
		r.SetBC(val)
	case 1:
		r.SetDE(val)
	case 2:
		switch prefix {
		case PrefixDD:
			r.SetIX(val)
		case PrefixFD:
			r.SetIY(val)
		default:
			r.SetHL(val)
		}
	case 3:
		r.SP = val
	default:
		panic("z80: invalid reg16 index")
	}
}

// getReg16rp2 reads the p-indexed register pair group {BC,DE,HL/IX/IY,AF},
// used by PUSH/POP.
func (c *CPU) getReg16rp2(p byte, prefix Prefix) uint16 {
	if p == 3 {
		return c.Regs.AF()
	}
	return c.getReg16rp(p, prefix)
}

func (c *CPU) setReg16rp2(p byte, prefix Prefix, val uint16) {
	if p == 3 {
		c.Regs.SetAF(val)
		return
	}
	c.setReg16rp(p, prefix, val)
}
