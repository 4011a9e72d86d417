package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

type StepKind string

const (
	StepAction    StepKind = "action"
	StepAnimation StepKind = "animation"
	StepWait      StepKind = "wait"
	StepDecision  StepKind = "decision"
)

// Curve identifies the easing applied by an animation host.
type Curve string

const (
	CurveLinear    Curve = "linear"
	CurveEaseIn    Curve = "ease_in"
	CurveEaseOut   Curve = "ease_out"
	CurveEaseInOut Curve = "ease_in_out"
)

// Ease maps normalized time t in [0,1] to eased progress in [0,1].
// Unknown curves fall back to linear.
func (c Curve) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch c {
	case CurveEaseIn:
		return t * t
	case CurveEaseOut:
		return t * (2 - t)
	case CurveEaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	default:
		return t
	}
}

// AnimationSpec carries the timing parameters forwarded verbatim to the host.
type AnimationSpec struct {
	Duration time.Duration
	Delay    time.Duration
	Curve    Curve
}

// TargetID is a non-owning reference to a visual target. Effects guarded by a
// TargetID become no-ops once the target is gone; the engine then treats the
// step as instantly completed so the chain never hangs.
type TargetID string

// Step is one unit of a chain. Kind selects which payload fields are used:
//
//   - StepAction:    Effect
//   - StepAnimation: Effect, Anim
//   - StepWait:      Drive, Timeout
//   - StepDecision:  Check
//
// Target is optional for all kinds.
type Step struct {
	Kind    StepKind
	Target  TargetID
	Effect  func()
	Drive   func(done func())
	Check   func() bool
	Anim    AnimationSpec
	Timeout time.Duration
}

// Validate rejects steps that would corrupt a chain. Invalid steps are refused
// at append time rather than detected mid-run.
func (s *Step) Validate() error {
	switch s.Kind {
	case StepAction:
		if s.Effect == nil {
			return goerr.New("action step requires an effect")
		}
	case StepAnimation:
		if s.Effect == nil {
			return goerr.New("animation step requires an effect")
		}
		if s.Anim.Duration < 0 {
			return goerr.New("animation duration must not be negative")
		}
		if s.Anim.Delay < 0 {
			return goerr.New("animation delay must not be negative")
		}
	case StepWait:
		if s.Drive == nil {
			return goerr.New("wait step requires a drive function")
		}
		if s.Timeout <= 0 {
			return goerr.New("wait timeout must be positive")
		}
	case StepDecision:
		if s.Check == nil {
			return goerr.New("decision step requires a check function")
		}
	default:
		return goerr.New("unknown step kind")
	}
	return nil
}
