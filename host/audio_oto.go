//go:build !headless

// audio_oto.go - ebitengine/oto audio output pulling samples from a
// *sound.Mixer.
//
// Grounded on the teacher's audio_backend_oto.go: an atomic.Pointer handoff
// between the emulation goroutine and oto's pull-model Read callback,
// adapted from the teacher's ring-buffer-backed SoundChip to Mixer.Pop().
// Read converts samples straight into the byte slice oto passes in; no
// buffer of its own is kept.
package host

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"

	"github.com/zxcore/speccy/sound"
)

// OtoPlayer drains a *sound.Mixer into the system audio device.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	mixer  atomic.Pointer[sound.Mixer]

	mu      sync.Mutex
	started bool
}

// NewOtoPlayer opens the default audio device at sound.SampleRate, stereo
// float32.
func NewOtoPlayer() (*OtoPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sound.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	op := &OtoPlayer{ctx: ctx}
	op.player = ctx.NewPlayer(op)
	return op, nil
}

// SetMixer swaps in the mixer to read samples from; safe to call from any
// goroutine, including concurrently with Read.
func (op *OtoPlayer) SetMixer(m *sound.Mixer) {
	op.mixer.Store(m)
}

// Read implements io.Reader for oto.Player, converting Mixer samples into
// interleaved stereo float32 bytes. Starved reads are padded with silence
// rather than blocking, since the mixer is refilled once per video frame.
func (op *OtoPlayer) Read(p []byte) (int, error) {
	m := op.mixer.Load()
	n := len(p) / 8 // 2 channels * 4 bytes
	for i := 0; i < n; i++ {
		var s sound.Sample
		if m != nil {
			if v, ok := m.Pop(); ok {
				s = v
			}
		}
		putFloat32(p[i*8:], s.Left)
		putFloat32(p[i*8+4:], s.Right)
	}
	return n * 8, nil
}

func putFloat32(b []byte, f float32) {
	bits := math.Float32bits(f)
	b[0] = byte(bits)
	b[1] = byte(bits >> 8)
	b[2] = byte(bits >> 16)
	b[3] = byte(bits >> 24)
}

// Start begins playback.
func (op *OtoPlayer) Start() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if !op.started {
		op.player.Play()
		op.started = true
	}
}

// Stop halts playback and closes the underlying player.
func (op *OtoPlayer) Stop() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.started {
		op.player.Close()
		op.started = false
	}
}
