//go:build !headless

package host

import (
	"math"
	"testing"

	"github.com/zxcore/speccy/sound"
)

func TestPutFloat32_RoundTrips(t *testing.T) {
	b := make([]byte, 4)
	putFloat32(b, 1.5)
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	if got := math.Float32frombits(bits); got != 1.5 {
		t.Fatalf("round-tripped float = %v, want 1.5", got)
	}
}

func TestOtoPlayer_Read_PullsFromMixer(t *testing.T) {
	m := sound.NewMixer(true, false)
	m.Beeper.ChangeBit(true)
	m.Process(1.0)

	op := &OtoPlayer{}
	op.SetMixer(m)

	buf := make([]byte, 8) // one stereo frame
	n, err := op.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 8 {
		t.Fatalf("n = %d, want 8", n)
	}
}

func TestOtoPlayer_Read_PadsSilenceWhenStarved(t *testing.T) {
	m := sound.NewMixer(true, false)
	op := &OtoPlayer{}
	op.SetMixer(m)

	buf := make([]byte, 8)
	op.Read(buf) // drain any leftovers
	n, err := op.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 8 {
		t.Fatalf("n = %d, want 8 even when starved", n)
	}
	for _, b := range buf {
		if b != 0 {
			t.Fatalf("expected silence bytes, got %v", buf)
		}
	}
}

func TestOtoPlayer_Read_NilMixerIsSilent(t *testing.T) {
	op := &OtoPlayer{}
	buf := make([]byte, 8)
	n, err := op.Read(buf)
	if err != nil || n != 8 {
		t.Fatalf("Read with nil mixer = %d,%v want 8,nil", n, err)
	}
}
