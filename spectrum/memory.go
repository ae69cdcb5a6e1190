// memory.go - paged memory: 4x16KiB slot map over ROM/RAM banks
//
// Grounded on original_source/rustzx-core/src/zx/memory.rs: `Page`,
// `ZXMemory::new` (48K/128K default maps), `read`/`write`/`remap`.

package spectrum

const (
	pageSize = 16 * 1024
	numSlots = 4
)

// PageKind distinguishes a ROM bank from a RAM bank in a memory slot.
type PageKind int

const (
	PageRAM PageKind = iota
	PageROM
)

// Page identifies one 16KiB bank.
type Page struct {
	Kind PageKind
	Bank byte
}

// Memory is the 64KiB address space, built from a paged ROM/RAM map
// exactly as the real hardware's memory decoder works.
type Memory struct {
	rom []byte
	ram []byte
	Map [numSlots]Page
}

// NewMemory builds the default memory map for m: 48K gets a single 16K ROM
// and 3 RAM pages (0,1,2 fixed); 128K gets two 16K ROMs and 8 RAM pages,
// with the paging port able to swap slot 3 and the ROM bank.
func NewMemory(m Machine) *Memory {
	mem := &Memory{}
	if m == Sinclair48K {
		mem.rom = make([]byte, pageSize)
		mem.ram = make([]byte, pageSize*3)
		mem.Map = [numSlots]Page{
			{PageROM, 0}, {PageRAM, 0}, {PageRAM, 1}, {PageRAM, 2},
		}
	} else {
		mem.rom = make([]byte, pageSize*2)
		mem.ram = make([]byte, pageSize*8)
		mem.Map = [numSlots]Page{
			{PageROM, 0}, {PageRAM, 5}, {PageRAM, 2}, {PageRAM, 0},
		}
	}
	return mem
}

func (m *Memory) Read(addr uint16) byte {
	page := m.Map[addr/pageSize]
	rel := int(addr) % pageSize
	if page.Kind == PageROM {
		return m.rom[int(page.Bank)*pageSize+rel]
	}
	return m.ram[int(page.Bank)*pageSize+rel]
}

func (m *Memory) Write(addr uint16, val byte) {
	page := m.Map[addr/pageSize]
	if page.Kind != PageRAM {
		return
	}
	rel := int(addr) % pageSize
	m.ram[int(page.Bank)*pageSize+rel] = val
}

// Remap changes the bank mapped into slot, panicking if the requested bank
// does not exist (a programmer error, never triggered by well-formed
// 0x7FFD writes).
func (m *Memory) Remap(slot int, page Page) {
	switch page.Kind {
	case PageRAM:
		if (int(page.Bank)+1)*pageSize > len(m.ram) {
			panic("spectrum: ram page does not exist")
		}
	case PageROM:
		if (int(page.Bank)+1)*pageSize > len(m.rom) {
			panic("spectrum: rom page does not exist")
		}
	}
	m.Map[slot] = page
}

// Page returns the page mapped at addr, used by the controller to decide
// contention.
func (m *Memory) Page(addr uint16) Page {
	return m.Map[addr/pageSize]
}

// RAMBank returns a mutable view of RAM bank n (16KiB), for loading
// snapshots and exposing the screen bank(s) to the rasterizer.
func (m *Memory) RAMBank(n byte) []byte {
	shift := int(n) * pageSize
	return m.ram[shift : shift+pageSize]
}

// ROMBank returns a mutable view of ROM bank n, for loading ROM images.
func (m *Memory) ROMBank(n byte) []byte {
	shift := int(n) * pageSize
	return m.rom[shift : shift+pageSize]
}
