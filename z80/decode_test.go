package z80

import "testing"

func TestDecodeOpcode_Fields(t *testing.T) {
	// 0x7E = LD A,(HL): x=01 y=111 z=110
	op := DecodeOpcode(0x7E)
	if op.X != 1 {
		t.Errorf("X = %d, want 1", op.X)
	}
	if op.Y != 7 {
		t.Errorf("Y = %d, want 7", op.Y)
	}
	if op.Z != 6 {
		t.Errorf("Z = %d, want 6", op.Z)
	}
}

func TestByteToPrefix(t *testing.T) {
	cases := map[byte]Prefix{
		0xCB: PrefixCB,
		0xDD: PrefixDD,
		0xED: PrefixED,
		0xFD: PrefixFD,
		0x00: PrefixNone,
		0xC3: PrefixNone,
	}
	for b, want := range cases {
		if got := byteToPrefix(b); got != want {
			t.Errorf("byteToPrefix(%#x) = %v, want %v", b, got, want)
		}
	}
}

func TestPrefix_ToByte(t *testing.T) {
	if b, ok := PrefixDD.toByte(); !ok || b != 0xDD {
		t.Fatalf("PrefixDD.toByte() = %#x,%v want 0xDD,true", b, ok)
	}
	if _, ok := PrefixNone.toByte(); ok {
		t.Fatal("PrefixNone.toByte() should report ok=false")
	}
}

func TestPrefixIndex(t *testing.T) {
	if prefixIndex(PrefixDD) != indexIX {
		t.Error("DD should select IX")
	}
	if prefixIndex(PrefixFD) != indexIY {
		t.Error("FD should select IY")
	}
	if prefixIndex(PrefixNone) != indexHL {
		t.Error("no prefix should select HL")
	}
}
