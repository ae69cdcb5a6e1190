// mixer.go - beeper+AY sample mixer
//
// Grounded on original_source/rustzx-core/src/zx/sound/mixer.rs:
// samples_from_time-paced generation into a ring buffer, refilled with the
// last sample on NewFrame so host audio never starves mid-frame. AY
// synthesis is out of scope (see ay.go); the mix is beeper-only.
package sound

const (
	SampleRate     = 44100
	FPS            = 50
	samplesPerTick = SampleRate / FPS
	ringCapacity   = samplesPerTick * 2
)

// Sample is one stereo output frame.
type Sample struct {
	Left, Right float32
}

// Mixer turns the beeper output into a stream of stereo samples, paced by
// the fraction of the current frame that has elapsed. The AY register file
// is carried alongside but adds nothing to the samples.
type Mixer struct {
	Beeper Beeper
	AY     *AY

	useBeeper bool
	useAY     bool
	volume    float64

	ring       []Sample
	lastPos    int
	lastSample Sample
}

// NewMixer builds a Mixer with the given devices enabled.
func NewMixer(useBeeper, useAY bool) *Mixer {
	return &Mixer{
		AY:        NewAY(AYMono),
		useBeeper: useBeeper,
		useAY:     useAY,
		volume:    0.5,
	}
}

// SetVolume sets the master output volume, 0..1.
func (m *Mixer) SetVolume(v float64) { m.volume = v }

func samplesFromTime(pos float64) int {
	return int(pos * float64(samplesPerTick))
}

// Process tops up the ring buffer up to the sample count implied by pos,
// the fraction (0..1) of the current video frame that has elapsed.
func (m *Mixer) Process(pos float64) {
	if len(m.ring) >= ringCapacity {
		return
	}
	curr := samplesFromTime(pos)
	if curr <= m.lastPos {
		return
	}
	count := curr - m.lastPos
	m.lastPos = curr
	for i := 0; i < count; i++ {
		m.ring = append(m.ring, m.genSample())
	}
}

// NewFrame pads the ring buffer out to a full frame's worth of samples (so
// a host audio callback never blocks waiting for the next frame) and resets
// the frame-relative sample clock.
func (m *Mixer) NewFrame() {
	for len(m.ring) < samplesPerTick {
		m.ring = append(m.ring, m.lastSample)
	}
	m.lastPos = 0
}

// Pop removes and returns the oldest pending sample, if any.
func (m *Mixer) Pop() (Sample, bool) {
	if len(m.ring) == 0 {
		return Sample{}, false
	}
	s := m.ring[0]
	m.ring = m.ring[1:]
	return s, true
}

func (m *Mixer) genSample() Sample {
	var level float64
	if m.useBeeper {
		level = m.Beeper.Sample()
	}
	// AY register file does not synthesize audio (see ay.go); only the
	// beeper contributes to the mix.
	level *= m.volume
	s := Sample{Left: float32(level), Right: float32(level)}
	m.lastSample = s
	return s
}
