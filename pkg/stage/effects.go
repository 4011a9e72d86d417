package stage

import (
	"time"

	"github.com/m-mizutani/catena/pkg/chain"
	"github.com/m-mizutani/catena/pkg/domain/interfaces"
	"github.com/m-mizutani/catena/pkg/domain/model"
)

// Leaf-effect producers. Each builds a single-step chain that mutates one
// view; they carry no control flow of their own and compose through
// Chain.Then. Every step carries its target id so the executor can
// auto-complete it when the view is removed mid-run.

// MoveTo animates the view to an absolute position.
func MoveTo(s *Stage, id model.TargetID, x, y float64, spec model.AnimationSpec) *chain.Chain {
	return chain.New().Add(model.Step{
		Kind:   model.StepAnimation,
		Target: id,
		Anim:   spec,
		Effect: func() {
			s.Apply(id, func(p *Props) {
				p.X = x
				p.Y = y
			})
		},
	})
}

// MoveBy animates the view by a relative offset.
func MoveBy(s *Stage, id model.TargetID, dx, dy float64, spec model.AnimationSpec) *chain.Chain {
	return chain.New().Add(model.Step{
		Kind:   model.StepAnimation,
		Target: id,
		Anim:   spec,
		Effect: func() {
			s.Apply(id, func(p *Props) {
				p.X += dx
				p.Y += dy
			})
		},
	})
}

// ScaleTo animates the view's scale factors.
func ScaleTo(s *Stage, id model.TargetID, sx, sy float64, spec model.AnimationSpec) *chain.Chain {
	return chain.New().Add(model.Step{
		Kind:   model.StepAnimation,
		Target: id,
		Anim:   spec,
		Effect: func() {
			s.Apply(id, func(p *Props) {
				p.ScaleX = sx
				p.ScaleY = sy
			})
		},
	})
}

// RotateTo animates the view's rotation to an absolute angle in degrees.
func RotateTo(s *Stage, id model.TargetID, angle float64, spec model.AnimationSpec) *chain.Chain {
	return chain.New().Add(model.Step{
		Kind:   model.StepAnimation,
		Target: id,
		Anim:   spec,
		Effect: func() {
			s.Apply(id, func(p *Props) {
				p.Rotation = angle
			})
		},
	})
}

// FadeTo animates the view's opacity.
func FadeTo(s *Stage, id model.TargetID, opacity float64, spec model.AnimationSpec) *chain.Chain {
	return chain.New().Add(model.Step{
		Kind:   model.StepAnimation,
		Target: id,
		Anim:   spec,
		Effect: func() {
			s.Apply(id, func(p *Props) {
				p.Opacity = opacity
			})
		},
	})
}

// FillTo animates the view's fill color.
func FillTo(s *Stage, id model.TargetID, c model.Color, spec model.AnimationSpec) *chain.Chain {
	return chain.New().Add(model.Step{
		Kind:   model.StepAnimation,
		Target: id,
		Anim:   spec,
		Effect: func() {
			s.Apply(id, func(p *Props) {
				p.Fill = c
			})
		},
	})
}

// Vanish removes the view from the stage in a synchronous action step.
func Vanish(s *Stage, id model.TargetID) *chain.Chain {
	return chain.New().Add(model.Step{
		Kind:   model.StepAction,
		Target: id,
		Effect: func() { s.Remove(id) },
	})
}

// roundFrames is the fixed frame count RoundTo drives the radius through.
const roundFrames = 8

// RoundTo drives the view's corner radius to the given value frame by frame
// on the scheduler and signals the chain through the wait handle once the
// last frame lands. It is the pattern for animations that cannot report
// completion through the host's transaction: the step's timeout (twice the
// duration) is the safety bound if the drive stalls.
func RoundTo(s *Stage, sched interfaces.Scheduler, id model.TargetID, radius float64, d time.Duration) *chain.Chain {
	return chain.New().Add(model.Step{
		Kind:    model.StepWait,
		Target:  id,
		Timeout: 2 * d,
		Drive: func(done func()) {
			from := 0.0
			if p, ok := s.Get(id); ok {
				from = p.CornerRadius
			}
			interval := d / roundFrames
			var tick func(i int)
			tick = func(i int) {
				t := float64(i) / float64(roundFrames)
				s.Apply(id, func(p *Props) {
					p.CornerRadius = from + (radius-from)*t
				})
				if i >= roundFrames {
					done()
					return
				}
				sched.After(interval, func() { tick(i + 1) })
			}
			sched.After(interval, func() { tick(1) })
		},
	})
}
