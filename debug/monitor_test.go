package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestDumpDisasm_WritesOneLinePerInstruction(t *testing.T) {
	var buf bytes.Buffer
	DumpDisasm(&buf, memReader([]byte{0x00, 0x00, 0x00}), 0, 3)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d output lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "0000:") {
		t.Fatalf("first line = %q, want it to start with the address", lines[0])
	}
	if !strings.Contains(lines[0], "NOP") {
		t.Fatalf("first line = %q, want it to contain NOP", lines[0])
	}
}
