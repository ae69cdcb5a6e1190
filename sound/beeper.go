// beeper.go - the 1-bit beeper/MIC sample source
//
// Grounded on original_source/rustzx-core/src/zx/sound/beeper.rs: EAR/MIC
// mixed into a single analog level; MIC is not weighted separately from EAR.

package sound

// earSampleFactor is the analog level the beeper outputs while its bit is
// set; the controller ORs EAR and MIC together before calling ChangeBit, so
// the two inputs share this one level rather than MIC's own smaller one.
const earSampleFactor = 0.5

// Beeper tracks the combined EAR/MIC bit the controller writes on every
// port 0xFE access and the tape reader, and turns it into an analog sample.
type Beeper struct {
	bit bool
}

// ChangeBit updates the beeper's current output bit (EAR OR MIC, per the
// controller's wiring).
func (b *Beeper) ChangeBit(bit bool) { b.bit = bit }

// Sample returns the beeper's instantaneous analog level.
func (b *Beeper) Sample() float64 {
	if !b.bit {
		return 0
	}
	return earSampleFactor
}
