// monitor.go - address-space disassembly dump
//
// Adapted from the teacher's debug_monitor.go, reduced to the single piece
// SPEC_FULL's debugging surface actually commits to (a disassembly dump
// reachable from the command line): reading memory through a callback and
// printing address/hex/mnemonic columns. The teacher's interactive
// raw-terminal REPL (breakpoints, step, register/IO views) is not carried
// over; see DESIGN.md for why that scope was cut.
package debug

import (
	"fmt"
	"io"
)

// DumpDisasm disassembles count instructions starting at addr, reading
// through read, and writes one "ADDR: HEX  MNEMONIC" line per instruction
// to w.
func DumpDisasm(w io.Writer, read ReadMem, addr uint16, count int) {
	for _, line := range Disassemble(read, addr, count) {
		fmt.Fprintf(w, "%04X: %-11s %s\n", line.Address, line.HexBytes, line.Mnemonic)
	}
}
