package tape

import "testing"

func makeTap(blocks ...[]byte) []byte {
	var data []byte
	for _, b := range blocks {
		n := len(b)
		data = append(data, byte(n), byte(n>>8))
		data = append(data, b...)
	}
	return data
}

func TestLoad_ParsesBlocks(t *testing.T) {
	raw := makeTap([]byte{0x00, 0x01, 0x02}, []byte{0xFF, 0xFE})
	tp := Load(raw)
	if len(tp.blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(tp.blocks))
	}
	if len(tp.blocks[0]) != 3 || len(tp.blocks[1]) != 2 {
		t.Fatalf("block lengths = %d,%d want 3,2", len(tp.blocks[0]), len(tp.blocks[1]))
	}
}

func TestLoad_RewindsToStop(t *testing.T) {
	tp := Load(makeTap([]byte{0x00, 0x01}))
	if !tp.CanFastLoad() {
		t.Fatal("expected a freshly-loaded tape to be stopped (fast-loadable)")
	}
}

func TestTape_NextBlockByte_ExhaustsBlock(t *testing.T) {
	tp := Load(makeTap([]byte{0xAA, 0xBB}))
	b, ok := tp.NextBlockByte()
	if !ok || b != 0xAA {
		t.Fatalf("first byte = %#x,%v want 0xAA,true", b, ok)
	}
	b, ok = tp.NextBlockByte()
	if !ok || b != 0xBB {
		t.Fatalf("second byte = %#x,%v want 0xBB,true", b, ok)
	}
	_, ok = tp.NextBlockByte()
	if ok {
		t.Fatal("expected false once the block is exhausted")
	}
}

func TestTape_NextBlock_AdvancesAndResetsPos(t *testing.T) {
	tp := Load(makeTap([]byte{0x01, 0x02}, []byte{0x03, 0x04}))
	tp.NextBlockByte() // consume first byte of block 0
	if !tp.NextBlock() {
		t.Fatal("expected NextBlock to succeed moving to block 1")
	}
	b, ok := tp.NextBlockByte()
	if !ok || b != 0x03 {
		t.Fatalf("first byte of block 1 = %#x,%v want 0x03,true", b, ok)
	}
	if tp.NextBlock() {
		t.Fatal("expected NextBlock to report false past the last block")
	}
}

func TestTape_PlayStop_RestoresPriorState(t *testing.T) {
	tp := Load(makeTap([]byte{0x00, 0xAA}))
	tp.Play()
	if tp.state != stPilot && tp.state == stStop {
		t.Fatalf("expected playback to leave stStop after Play, got %v", tp.state)
	}
	tp.Stop()
	if tp.state != stStop {
		t.Fatal("expected Stop to set state back to stStop")
	}
	tp.Play()
	if tp.state == stStop {
		t.Fatal("expected Play to resume the remembered prior state")
	}
}

func TestTape_ProcessClocks_PilotThenSyncThenBits(t *testing.T) {
	tp := Load(makeTap([]byte{0x00, 0xFF}))
	tp.Play()
	tp.ProcessClocks(pilotLength) // stPlay primes the block and starts the pilot tone
	if tp.state != stPilot {
		t.Fatalf("state after Play and first ProcessClocks = %v, want stPilot", tp.state)
	}
	initialBit := tp.CurrentBit()
	// Each pilot pulse takes two calls: one drains the pending delay, the
	// next flips the bit and sets the following delay.
	for i := 0; i < 2*pilotPulsesHeader; i++ {
		tp.ProcessClocks(pilotLength)
	}
	if tp.state != stSync && tp.state != stNextBit {
		t.Fatalf("state after exhausting pilot pulses = %v, want stSync or stNextBit", tp.state)
	}
	_ = initialBit
}

func TestTape_ProcessClocks_NoopWhenStopped(t *testing.T) {
	tp := Load(makeTap([]byte{0x00, 0xAA}))
	before := tp.currBit
	tp.ProcessClocks(1000)
	if tp.currBit != before || tp.state != stStop {
		t.Fatal("ProcessClocks should be a no-op while stopped")
	}
}
