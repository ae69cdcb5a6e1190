// apply.go - restores a decoded Snapshot into a running CPU + Controller
package snapshot

import (
	"github.com/zxcore/speccy/spectrum"
	"github.com/zxcore/speccy/z80"
)

// Apply restores cpu's register file and ctrl's memory from s. For a 128K
// snapshot it also applies the 0x7FFD paging state so the restored banks
// land in the same slots the original machine had mapped.
func Apply(s *Snapshot, cpu *z80.CPU, ctrl *spectrum.Controller) {
	r := &cpu.Regs
	r.I = s.I
	r.SetHL2(s.HL2)
	r.SetDE2(s.DE2)
	r.SetBC2(s.BC2)
	r.SetAF2(s.AF2)
	r.SetHL(s.HL)
	r.SetDE(s.DE)
	r.SetBC(s.BC)
	r.SetIY(s.IY)
	r.SetIX(s.IX)
	r.IFF1 = s.IFF2
	r.IFF2 = s.IFF2
	r.R = s.R
	r.SetAF(s.AF)
	r.SP = s.SP
	r.PC = s.PC
	switch s.IM {
	case 0:
		cpu.IM = z80.IM0
	case 2:
		cpu.IM = z80.IM2
	default:
		cpu.IM = z80.IM1
	}

	if !s.Is128K {
		copy(ctrl.Memory.RAMBank(0), s.RAM48[0:16*1024])
		copy(ctrl.Memory.RAMBank(1), s.RAM48[16*1024:32*1024])
		copy(ctrl.Memory.RAMBank(2), s.RAM48[32*1024:48*1024])
		return
	}

	for bank := 0; bank < 8; bank++ {
		if s.Banks[bank] != nil {
			copy(ctrl.Memory.RAMBank(byte(bank)), s.Banks[bank])
		}
	}
	ctrl.ApplyPagingPort(s.Port7FFD)
}
