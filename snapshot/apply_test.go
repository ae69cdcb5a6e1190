package snapshot

import (
	"testing"

	"github.com/zxcore/speccy/spectrum"
	"github.com/zxcore/speccy/video"
	"github.com/zxcore/speccy/z80"
)

type nullFrameBuffer struct{}

func (nullFrameBuffer) SetColor(x, y int, c video.Color, b video.Brightness) {}

func newTestController(m spectrum.Machine) *spectrum.Controller {
	specs := m.Specs()
	screen := video.NewScreen(specs.ClocksULAReadOrigin(), specs.ClocksRow, m == spectrum.Sinclair128K, nullFrameBuffer{}, nullFrameBuffer{})
	border := video.NewBorder(specs.BorderClocksOrigin(), nullFrameBuffer{})
	return spectrum.NewController(m, screen, border, false)
}

func TestApply_48K_RestoresRegistersAndRAM(t *testing.T) {
	s := &Snapshot{
		I: 0x3F, HL: 0x1111, DE: 0x2222, BC: 0x3333,
		IY: 0x4444, IX: 0x5555, IFF2: true, R: 0x10,
		AF: 0x6666, SP: 0x7777, PC: 0x8888, IM: 2,
		RAM48: make([]byte, 3*16*1024),
	}
	s.RAM48[0] = 0xAB
	s.RAM48[16*1024] = 0xCD

	cpu := z80.NewCPU()
	ctrl := newTestController(spectrum.Sinclair48K)
	Apply(s, cpu, ctrl)

	if cpu.Regs.HL() != 0x1111 {
		t.Fatalf("HL = %#x, want 0x1111", cpu.Regs.HL())
	}
	if cpu.Regs.PC != 0x8888 {
		t.Fatalf("PC = %#x, want 0x8888", cpu.Regs.PC)
	}
	if cpu.IM != z80.IM2 {
		t.Fatalf("IM = %v, want IM2", cpu.IM)
	}
	if !cpu.Regs.IFF1 || !cpu.Regs.IFF2 {
		t.Fatal("expected both IFF1 and IFF2 set")
	}
	if got := ctrl.Memory.Read(0x4000); got != 0xAB {
		t.Fatalf("RAM bank0[0] = %#x, want 0xAB", got)
	}
	if got := ctrl.Memory.Read(0x8000); got != 0xCD {
		t.Fatalf("RAM bank1[0] = %#x, want 0xCD", got)
	}
}

func TestApply_128K_RestoresPagingAndBanks(t *testing.T) {
	s := &Snapshot{PC: 0x1234, Is128K: true, Port7FFD: 0x03}
	s.Banks[5] = make([]byte, 16*1024)
	s.Banks[2] = make([]byte, 16*1024)
	s.Banks[3] = make([]byte, 16*1024)
	s.Banks[3][0] = 0xEE

	cpu := z80.NewCPU()
	ctrl := newTestController(spectrum.Sinclair128K)
	Apply(s, cpu, ctrl)

	if cpu.Regs.PC != 0x1234 {
		t.Fatalf("PC = %#x, want 0x1234", cpu.Regs.PC)
	}
	if got := ctrl.Memory.Map[3]; got != (spectrum.Page{Kind: spectrum.PageRAM, Bank: 3}) {
		t.Fatalf("Map[3] = %+v, want bank 3 paged in per Port7FFD", got)
	}
	if got := ctrl.Memory.Read(0xC000); got != 0xEE {
		t.Fatalf("Read(0xC000) = %#x, want 0xEE (bank 3 restored and paged in)", got)
	}
}
