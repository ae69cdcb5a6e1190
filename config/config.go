// config.go - command-line configuration
//
// The retrieved pack has no CLI-flag library anywhere (the teacher parses
// os.Args by hand for its two positional arguments), so this is built on
// the standard flag package rather than adopting a third-party flag/cobra
// library the corpus never uses.
package config

import (
	"flag"
	"fmt"
)

// Settings holds every option the emulator can be started with.
type Settings struct {
	Machine128K bool
	ROMPath     string
	ROM1Path    string // 128K second ROM page, ignored for 48K
	TapePath    string

	Kempston bool
	AY       bool

	Fullscreen bool
	Scale      int
	Volume     float64

	Headless bool

	// DisasmAddr, if non-empty (a hex address like "8000"), switches the
	// program into a one-shot disassembly dump instead of running the GUI.
	DisasmAddr  string
	DisasmCount int
}

// Parse parses args (normally os.Args[1:]) into a Settings, applying
// defaults for anything not specified.
func Parse(args []string) (*Settings, error) {
	fs := flag.NewFlagSet("speccy", flag.ContinueOnError)
	s := &Settings{}

	fs.BoolVar(&s.Machine128K, "128k", false, "emulate the 128K Spectrum instead of the 48K")
	fs.StringVar(&s.ROMPath, "rom", "", "path to the 48K ROM image, or the 128K's ROM 0 (editor/menu)")
	fs.StringVar(&s.ROM1Path, "rom1", "", "path to the 128K's ROM 1 (48K BASIC), ignored for -128k=false")
	fs.StringVar(&s.TapePath, "tape", "", "path to a .tap image to load")
	fs.BoolVar(&s.Kempston, "kempston", true, "enable the Kempston joystick interface")
	fs.BoolVar(&s.AY, "ay", true, "recorded in Settings.AY; speccy does not read it (the AY-3-8912 register file is always present)")
	fs.BoolVar(&s.Fullscreen, "fullscreen", false, "recorded in Settings.Fullscreen; speccy does not read it (F11 toggles fullscreen in the window)")
	fs.IntVar(&s.Scale, "scale", 2, "integer window scale factor")
	fs.Float64Var(&s.Volume, "volume", 0.5, "master audio volume, 0..1")
	fs.StringVar(&s.DisasmAddr, "disasm", "", "hex address to disassemble from instead of running the GUI")
	fs.IntVar(&s.DisasmCount, "disasm-count", 20, "number of instructions to disassemble with -disasm")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if s.ROMPath == "" {
		return nil, fmt.Errorf("config: -rom is required")
	}
	if s.Machine128K && s.ROM1Path == "" {
		return nil, fmt.Errorf("config: -rom1 is required with -128k")
	}
	if s.Scale < 1 {
		s.Scale = 1
	}
	if s.Volume < 0 {
		s.Volume = 0
	}
	if s.Volume > 1 {
		s.Volume = 1
	}
	return s, nil
}
