// Package animation drives the time and frame based motion in the viewer:
// the continuously spinning props and the one-shot intro camera dolly.
package animation

import (
	"time"

	"github.com/Faultbox/village-viewer/internal/engine/camera"
)

// Spinner advances an angle by a fixed step every frame.
type Spinner struct {
	Angle float32 // degrees
	Step  float32 // degrees per frame
}

// Advance moves the angle forward one frame and returns it.
func (s *Spinner) Advance() float32 {
	s.Angle += s.Step
	return s.Angle
}

// Phase is the state of the intro sequence.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRetreat
	PhaseHold
	PhaseApproach
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRetreat:
		return "retreat"
	case PhaseHold:
		return "hold"
	case PhaseApproach:
		return "approach"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// IntroTimeline holds the phase boundaries measured from the first frame.
type IntroTimeline struct {
	RetreatEnd    time.Duration // backward motion while t <= RetreatEnd
	ApproachStart time.Duration // forward motion while ApproachStart < t <= ApproachEnd
	ApproachEnd   time.Duration
}

// DefaultTimeline dollies back for 10s, pauses, then forward until 16s.
func DefaultTimeline() IntroTimeline {
	return IntroTimeline{
		RetreatEnd:    10 * time.Second,
		ApproachStart: 11500 * time.Millisecond,
		ApproachEnd:   16 * time.Second,
	}
}

// Intro is the scripted camera dolly played once from the first frame.
// It runs exactly once per process; there is no way to rewind it.
type Intro struct {
	timeline IntroTimeline
	start    time.Time
	phase    Phase
	disabled bool
}

// NewIntro creates an intro that starts on its first Step.
func NewIntro(tl IntroTimeline) *Intro {
	return &Intro{timeline: tl}
}

// Disable finishes the intro immediately.
func (a *Intro) Disable() {
	a.disabled = true
	a.phase = PhaseDone
}

// Step returns the scripted motion for the frame at now, or false when the
// intro does not move the camera this frame. The first call latches the
// start time.
func (a *Intro) Step(now time.Time) (camera.Direction, bool) {
	if a.disabled || a.phase == PhaseDone {
		return 0, false
	}
	if a.phase == PhaseIdle {
		a.start = now
	}

	a.phase = a.phaseAt(now.Sub(a.start))

	switch a.phase {
	case PhaseRetreat:
		return camera.Backward, true
	case PhaseApproach:
		return camera.Forward, true
	default:
		return 0, false
	}
}

func (a *Intro) phaseAt(t time.Duration) Phase {
	switch {
	case t <= a.timeline.RetreatEnd:
		return PhaseRetreat
	case t <= a.timeline.ApproachStart:
		return PhaseHold
	case t <= a.timeline.ApproachEnd:
		return PhaseApproach
	default:
		return PhaseDone
	}
}

// Phase returns the current phase.
func (a *Intro) Phase() Phase {
	return a.phase
}

// Started reports whether the start time has been latched.
func (a *Intro) Started() bool {
	return a.phase != PhaseIdle
}

// Done reports whether the intro has finished.
func (a *Intro) Done() bool {
	return a.phase == PhaseDone
}

// Elapsed returns time since the first frame.
func (a *Intro) Elapsed(now time.Time) time.Duration {
	if !a.Started() {
		return 0
	}
	return now.Sub(a.start)
}
