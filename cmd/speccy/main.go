// main.go - speccy emulator entry point
//
// Grounded on the teacher's cmd/ie32to64 convention (a focused cmd/<tool>
// package wired against the root module's packages) and main.go's
// Usage-then-os.Exit(1) error style, adapted from the teacher's flat
// system-bus wiring to this module's config -> host.Machine -> host.Window
// pipeline.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/zxcore/speccy/config"
	"github.com/zxcore/speccy/debug"
	"github.com/zxcore/speccy/host"
	"github.com/zxcore/speccy/spectrum"
	"github.com/zxcore/speccy/tape"
)

func main() {
	settings, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	kind := spectrum.Sinclair48K
	if settings.Machine128K {
		kind = spectrum.Sinclair128K
	}

	m := host.NewMachine(kind, settings.Kempston)

	rom0, err := os.ReadFile(settings.ROMPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "speccy: reading ROM: %v\n", err)
		os.Exit(1)
	}
	copy(m.Ctrl.Memory.ROMBank(0), rom0)

	if settings.Machine128K {
		rom1, err := os.ReadFile(settings.ROM1Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "speccy: reading ROM1: %v\n", err)
			os.Exit(1)
		}
		copy(m.Ctrl.Memory.ROMBank(1), rom1)
	}

	if settings.TapePath != "" {
		data, err := os.ReadFile(settings.TapePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "speccy: reading tape: %v\n", err)
			os.Exit(1)
		}
		*m.Ctrl.Tape = *tape.Load(data)
	}

	if settings.DisasmAddr != "" {
		addr, err := strconv.ParseUint(settings.DisasmAddr, 16, 16)
		if err != nil {
			fmt.Fprintf(os.Stderr, "speccy: bad -disasm address: %v\n", err)
			os.Exit(1)
		}
		debug.DumpDisasm(os.Stdout, func(a uint16, n int) []byte {
			buf := make([]byte, n)
			for i := range buf {
				buf[i] = m.Ctrl.Memory.Read(a + uint16(i))
			}
			return buf
		}, uint16(addr), settings.DisasmCount)
		return
	}

	m.Ctrl.Mixer.SetVolume(settings.Volume)

	win := host.NewWindow(m, settings.Scale)
	title := "Speccy - 48K"
	if settings.Machine128K {
		title = "Speccy - 128K"
	}
	if err := win.Run(title); err != nil {
		fmt.Fprintf(os.Stderr, "speccy: %v\n", err)
		os.Exit(1)
	}
}
