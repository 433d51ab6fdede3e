package anim

import "pds-mcb-extract/internal/mcb"

// Playback modes from the clip header's low 3 bits.
const (
	ModeDense   = 0 // dense per-frame tables, no run-length decode
	ModeDelta   = 1 // per-frame deltas accumulated over the static pose
	ModeHalf    = 4 // keyframe every 2 frames, half-step interpolation
	ModeQuarter = 5 // keyframe every 4 frames, quarter-step interpolation
)

// Channel scale factors. Everything accumulates in s32 16.16 fixed point,
// the unit of static-pose transforms; conversion to floating point happens
// only at the render boundary.
const (
	posDenseScale = 16      // dense position sample → 16.16
	rotDenseScale = 0x10000 // dense rotation sample → 16.16 turns
	rotDeltaScale = 0x1000  // stepped rotation delta → 16.16
)

// Player owns the mutable playback state of one displayed instance: the
// per-track decode cursors and the current working pose. The clip and the
// static pose stay shared and read-only; two Players on the same clip
// diverge immediately, so they must never share state.
type Player struct {
	clip   *mcb.Clip
	static []mcb.BonePose
	work   []mcb.BonePose
	states [][mcb.NumChannels]TrackState
	steps  [][mcb.NumChannels]int32 // precomputed half/quarter increments
	frame  int
}

// NewPlayer creates a player over clip with the hierarchy's static pose and
// runs the frame-0 step. The static pose must cover at least the clip's
// bone count; bones beyond the clip's count keep their static transform for
// the whole clip.
func NewPlayer(clip *mcb.Clip, static []mcb.BonePose) *Player {
	p := &Player{
		clip:   clip,
		static: static,
		work:   make([]mcb.BonePose, len(static)),
		states: make([][mcb.NumChannels]TrackState, clip.BoneCount),
		steps:  make([][mcb.NumChannels]int32, clip.BoneCount),
	}
	p.reset()
	return p
}

// Frame returns the current frame index in [0, FrameCount).
func (p *Player) Frame() int {
	return p.frame
}

// Pose returns the current working pose, indexed by bone. The slice is
// owned by the player and overwritten by Step.
func (p *Player) Pose() []mcb.BonePose {
	return p.work
}

// Step advances playback by one frame, wrapping at the end of the clip.
// The loop reset rebuilds the exact initial state — track cursors, working
// pose, frame-0 step — so every loop iteration produces identical output.
func (p *Player) Step() {
	p.frame++
	if p.frame >= p.clip.FrameCount {
		p.reset()
		return
	}
	p.applyFrame()
}

func (p *Player) reset() {
	p.frame = 0
	for i := range p.states {
		p.states[i] = [mcb.NumChannels]TrackState{}
		p.steps[i] = [mcb.NumChannels]int32{}
	}
	copy(p.work, p.static)
	p.applyFrame()
}

func (p *Player) applyFrame() {
	switch p.clip.Mode {
	case ModeDense:
		p.applyDense()
	case ModeDelta:
		p.applyDelta()
	case ModeHalf:
		p.applyInterp(2)
	case ModeQuarter:
		p.applyInterp(4)
	}
}

// animated reports whether the clip header flags enable ch's channel group.
// Unflagged groups keep the static pose for the clip's entire duration.
func (p *Player) animated(ch int) bool {
	switch {
	case ch <= mcb.ChTransZ:
		return p.clip.HasPosition
	case ch <= mcb.ChRotZ:
		return p.clip.HasRotation
	default:
		return p.clip.HasScale
	}
}

func denseScale(ch int) int32 {
	if ch >= mcb.ChRotX && ch <= mcb.ChRotZ {
		return rotDenseScale
	}
	return posDenseScale
}

func deltaScale(ch int) int32 {
	if ch >= mcb.ChRotX && ch <= mcb.ChRotZ {
		return rotDeltaScale
	}
	return 1
}

// channel returns the working-pose slot for bone's channel ch.
func channel(bp *mcb.BonePose, ch int) *int32 {
	switch {
	case ch <= mcb.ChTransZ:
		return &bp.Translation[ch-mcb.ChTransX]
	case ch <= mcb.ChRotZ:
		return &bp.Rotation[ch-mcb.ChRotX]
	default:
		return &bp.Scale[ch-mcb.ChScaleX]
	}
}

func (p *Player) bones() int {
	n := p.clip.BoneCount
	if n > len(p.work) {
		n = len(p.work)
	}
	return n
}

// applyDense reads the current frame's sample straight out of each track —
// mode 0 tracks are plain per-frame tables. A frame beyond the track length
// clamps to the last sample.
func (p *Player) applyDense() {
	for bone := 0; bone < p.bones(); bone++ {
		for ch := 0; ch < mcb.NumChannels; ch++ {
			if !p.animated(ch) {
				continue
			}
			entries := p.clip.Tracks[bone][ch].Entries
			if len(entries) == 0 {
				continue
			}
			idx := p.frame
			if idx >= len(entries) {
				idx = len(entries) - 1
			}
			*channel(&p.work[bone], ch) = int32(int16(entries[idx])) * denseScale(ch)
		}
	}
}

// applyDelta accumulates stepped deltas over the static pose. Frame 0 keeps
// the static values but consumes each track's initial sample, so frame 1
// onward adds pure deltas to the running total.
func (p *Player) applyDelta() {
	for bone := 0; bone < p.bones(); bone++ {
		for ch := 0; ch < mcb.NumChannels; ch++ {
			if !p.animated(ch) {
				continue
			}
			entries := p.clip.Tracks[bone][ch].Entries
			if len(entries) == 0 {
				continue
			}
			st := &p.states[bone][ch]
			if p.frame == 0 {
				st.Step(entries)
				continue
			}
			*channel(&p.work[bone], ch) += st.Step(entries) * deltaScale(ch)
		}
	}
}

// applyInterp implements modes 4 and 5: a fresh track value is decoded every
// `interval` frames and the span to the next keyframe is crossed in equal
// increments. Frame 0 loads the decoded value directly and precomputes the
// first increment; every later frame adds the increment, and keyframe
// frames then re-derive it from the next decoded value — an interpolated
// frame is always exactly previous-frame + increment, never an independent
// sample.
//
// Mode 5 (interval 4) special cases the root: bone 0's position re-decodes
// directly at each keyframe with no interpolation, and scale channels
// animate on bone 0 only.
func (p *Player) applyInterp(interval int) {
	final := p.clip.FrameCount - 1
	for bone := 0; bone < p.bones(); bone++ {
		for ch := 0; ch < mcb.NumChannels; ch++ {
			if !p.animated(ch) {
				continue
			}
			if interval == 4 && ch >= mcb.ChScaleX && bone != 0 {
				continue
			}
			entries := p.clip.Tracks[bone][ch].Entries
			if len(entries) == 0 {
				continue
			}
			st := &p.states[bone][ch]
			slot := channel(&p.work[bone], ch)

			if interval == 4 && bone == 0 && ch <= mcb.ChTransZ {
				// Root motion: held between keyframes, stepped discretely.
				if p.frame == 0 || p.frame%interval == 0 {
					*slot = st.Step(entries)
				}
				continue
			}

			scale := deltaScale(ch)
			if p.frame == 0 {
				*slot = st.Step(entries) * scale
				if final > 0 {
					p.steps[bone][ch] = st.Step(entries) * scale / int32(interval)
				}
				continue
			}
			*slot += p.steps[bone][ch]
			if p.frame%interval == 0 && final > p.frame {
				p.steps[bone][ch] = st.Step(entries) * scale / int32(interval)
			}
		}
	}
}
