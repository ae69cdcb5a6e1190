package sound

import "testing"

func TestMixer_ProcessFillsRingProportionally(t *testing.T) {
	m := NewMixer(true, false)
	m.Beeper.ChangeBit(true)
	m.Process(0.5)
	if len(m.ring) == 0 {
		t.Fatal("expected Process to have generated samples")
	}
	if len(m.ring) != samplesFromTime(0.5) {
		t.Fatalf("ring length = %d, want %d", len(m.ring), samplesFromTime(0.5))
	}
}

func TestMixer_NewFramePadsToFullFrame(t *testing.T) {
	m := NewMixer(true, false)
	m.Process(0.1)
	m.NewFrame()
	if len(m.ring) != samplesPerTick {
		t.Fatalf("ring length after NewFrame = %d, want %d", len(m.ring), samplesPerTick)
	}
}

func TestMixer_PopDrainsRing(t *testing.T) {
	m := NewMixer(true, false)
	m.Beeper.ChangeBit(true)
	m.Process(1.0)
	n := len(m.ring)
	if n == 0 {
		t.Fatal("expected some samples to pop")
	}
	for i := 0; i < n; i++ {
		if _, ok := m.Pop(); !ok {
			t.Fatalf("Pop() failed at index %d of %d", i, n)
		}
	}
	if _, ok := m.Pop(); ok {
		t.Fatal("expected Pop() to report false once the ring is empty")
	}
}

func TestMixer_VolumeScalesOutput(t *testing.T) {
	m := NewMixer(true, false)
	m.Beeper.ChangeBit(true)
	m.SetVolume(1.0)
	full := m.genSample()
	m.SetVolume(0.0)
	muted := m.genSample()
	if full.Left <= muted.Left {
		t.Fatalf("expected full volume sample (%v) louder than muted (%v)", full.Left, muted.Left)
	}
	if muted.Left != 0 {
		t.Fatalf("muted sample = %v, want 0", muted.Left)
	}
}

func TestMixer_DisabledBeeperProducesSilence(t *testing.T) {
	m := NewMixer(false, false)
	m.Beeper.ChangeBit(true)
	s := m.genSample()
	if s.Left != 0 || s.Right != 0 {
		t.Fatalf("expected silence with beeper disabled, got %+v", s)
	}
}
