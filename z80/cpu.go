// cpu.go - the Z80 processor: register file owner and main emulate loop
//
// Grounded on original_source/rustzx-core/src/z80/cpu.rs `emulate()` for
// interrupt acknowledge/NMI handling and the double-prefix dispatch shape,
// and on the teacher's cpu_z80.go for the single-struct, no-mutex shape
// (the concurrency model here is single-threaded per spec, so the
// teacher's atomic/mutex guards are dropped).

package z80

// CPU is the Z80 processor core. It owns no bus state: all memory/IO/timing
// effects go through the Bus passed to Emulate.
type CPU struct {
	Regs Regs

	Halted        bool
	SkipInterrupt bool
	IM            IntMode

	activePrefix Prefix
	// curIndex/curOffset cache the DD/FD index-register substitution and
	// the (IX+d)/(IY+d) displacement fetched for the opcode in flight, so
	// a single instruction's operand decode and writeback agree.
	curIndex  indexRegs
	curOffset int8
	haveIndex bool
}

// NewCPU returns a cpu with registers zeroed, as after a hard reset (SP/PC
// are left at 0; callers that need the documented post-RESET register
// state set it explicitly).
func NewCPU() *CPU {
	return &CPU{}
}

func (c *CPU) fetchByte(bus Bus, clk int) byte {
	addr := c.Regs.PC
	c.Regs.PC++
	return Read(bus, addr, clk)
}

func (c *CPU) fetchWord(bus Bus, clk int) uint16 {
	lo := Read(bus, c.Regs.PC, clk)
	c.Regs.PC++
	hi := Read(bus, c.Regs.PC, clk)
	c.Regs.PC++
	return uint16(hi)<<8 | uint16(lo)
}

// Emulate performs one step: the acknowledge of a pending NMI/interrupt if
// one is taken, otherwise exactly one instruction. It returns true if the
// bus signalled an instant event that must be drained before the next call.
func (c *CPU) Emulate(bus Bus) bool {
	if !c.SkipInterrupt {
		if bus.NMIActive() {
			c.Regs.ClearQ()
			if c.Halted {
				bus.Halt(false)
				c.Halted = false
				c.Regs.PC++
			}
			WaitLoop(bus, c.Regs.PC, 5)
			c.Regs.IFF1 = false
			c.pushPC(bus, 3)
			c.Regs.PC = 0x0066
			c.Regs.MEMPTR = c.Regs.PC
			c.Regs.IncR(1)
			bus.PCCallback(c.Regs.PC)
			return bus.InstantEvent()
		} else if bus.IntActive() && c.Regs.IFF1 {
			c.Regs.ClearQ()
			if c.Halted {
				bus.Halt(false)
				c.Halted = false
				c.Regs.PC++
			}
			c.Regs.IncR(1)
			c.Regs.IFF1 = false
			c.Regs.IFF2 = false
			switch c.IM {
			case IM0, IM1:
				c.pushPC(bus, 3)
				c.Regs.PC = 0x0038
				bus.WaitInternal(7)
			case IM2:
				c.pushPC(bus, 3)
				addr := uint16(c.Regs.I)<<8 | uint16(bus.ReadInterrupt())
				c.Regs.PC = ReadWord(bus, addr, 3)
				bus.WaitInternal(7)
			}
			c.Regs.MEMPTR = c.Regs.PC
			bus.PCCallback(c.Regs.PC)
			return bus.InstantEvent()
		}
	} else {
		c.SkipInterrupt = false
	}

	var byte1 byte
	if c.activePrefix != PrefixNone {
		b, _ := c.activePrefix.toByte()
		byte1 = b
		c.activePrefix = PrefixNone
	} else {
		c.Regs.IncR(1)
		byte1 = c.fetchByte(bus, 4)
	}

	// StepQ is skipped on the DD/FD double-prefix latch-and-return path
	// below: that path dispatches no opcode this call, so the Q value from
	// the instruction before the prefix pair must survive into LastQ
	// unperturbed for the real instruction that eventually runs.
	prefixHi := byteToPrefix(byte1)
	switch prefixHi {
	case PrefixDD, PrefixFD:
		byte2 := c.fetchByte(bus, 4)
		c.Regs.IncR(1)
		prefixLo := byteToPrefix(byte2)
		switch prefixLo {
		case PrefixDD, PrefixED, PrefixFD:
			c.activePrefix = prefixLo
			c.SkipInterrupt = true
		case PrefixCB:
			c.Regs.StepQ()
			c.executeBits(bus, prefixHi)
		default:
			c.Regs.StepQ()
			c.executeNormal(bus, DecodeOpcode(byte2), prefixHi)
		}
	case PrefixCB:
		c.Regs.StepQ()
		c.executeBits(bus, PrefixNone)
	case PrefixED:
		byte2 := c.fetchByte(bus, 4)
		c.Regs.IncR(1)
		c.Regs.StepQ()
		c.executeExtended(bus, DecodeOpcode(byte2))
	default:
		c.Regs.StepQ()
		c.executeNormal(bus, DecodeOpcode(byte1), PrefixNone)
	}

	bus.PCCallback(c.Regs.PC)
	return bus.InstantEvent()
}

// pushPC pushes PC to the stack, high byte first, as the real hardware's
// two-byte decrementing push does.
func (c *CPU) pushPC(bus Bus, clk int) {
	c.Regs.SP--
	Write(bus, c.Regs.SP, byte(c.Regs.PC>>8), clk)
	c.Regs.SP--
	Write(bus, c.Regs.SP, byte(c.Regs.PC), clk)
}

// PushPCToStack/PopPCFromStack are exported for callers outside the package
// (FastLoadTape uses PopPCFromStack to return from the trapped ROM loader).
func (c *CPU) PushPCToStack(bus Bus) {
	c.pushPC(bus, 3)
}

func (c *CPU) PopPCFromStack(bus Bus) {
	lo := Read(bus, c.Regs.SP, 3)
	c.Regs.SP++
	hi := Read(bus, c.Regs.SP, 3)
	c.Regs.SP++
	c.Regs.PC = uint16(hi)<<8 | uint16(lo)
}

func push16(c *CPU, bus Bus, val uint16) {
	c.Regs.SP--
	Write(bus, c.Regs.SP, byte(val>>8), 3)
	c.Regs.SP--
	Write(bus, c.Regs.SP, byte(val), 3)
}

func pop16(c *CPU, bus Bus) uint16 {
	lo := Read(bus, c.Regs.SP, 3)
	c.Regs.SP++
	hi := Read(bus, c.Regs.SP, 3)
	c.Regs.SP++
	return uint16(hi)<<8 | uint16(lo)
}
