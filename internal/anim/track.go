// Package anim steps decoded animation clips over a working pose,
// reproducing the Saturn engine's fixed-point track decompression exactly.
package anim

// Track payload layout: after the first entry, each 16-bit value packs a
// hold count in the low nibble and a signed delta in the top 12 bits (the
// value is used sign-extended with the nibble masked off, so deltas are
// multiples of 16). The first entry is a whole 16-bit sample scaled ×16.
const (
	holdMask         = 0xF
	valueMask        = 0xFFF0
	firstSampleScale = 16
)

// TrackState is the decode state for one (bone, channel) track: a cursor
// into the entry list, the frames left to hold the current value, and the
// value itself in working fixed-point units. The zero value is the reset
// state.
type TrackState struct {
	Cursor int
	Hold   int
	Value  int32
}

// Step advances the run-length decoder by one consumed frame and returns
// the current value.
//
// While Hold is positive the value repeats without consuming an entry.
// Cursor zero means the next consume reloads the absolute first sample
// (entries[0] × 16); the cursor wraps back to zero at the end of the track,
// which is what makes a looping clip reproduce its first value exactly.
func (s *TrackState) Step(entries []uint16) int32 {
	if len(entries) == 0 {
		return s.Value
	}
	if s.Hold > 0 {
		s.Hold--
		return s.Value
	}
	if s.Cursor >= len(entries) {
		// Overrun (track was clamped shorter than declared): treat as
		// end-of-track and wrap.
		s.Cursor = 0
	}
	if s.Cursor == 0 {
		s.Value = int32(int16(entries[0])) * firstSampleScale
		s.Hold = 0
	} else {
		raw := entries[s.Cursor]
		s.Hold = int(raw&holdMask) - 1
		s.Value = int32(int16(raw & valueMask))
	}
	s.Cursor++
	if s.Cursor >= len(entries) {
		s.Cursor = 0
	}
	return s.Value
}

// Reset returns the state to the start of the track.
func (s *TrackState) Reset() {
	*s = TrackState{}
}
