package timeline

import (
	"github.com/m-mizutani/catena/pkg/chain"
	"github.com/m-mizutani/catena/pkg/domain"
	"github.com/m-mizutani/catena/pkg/domain/interfaces"
	"github.com/m-mizutani/catena/pkg/domain/model"
	"github.com/m-mizutani/catena/pkg/stage"
	"github.com/m-mizutani/goerr/v2"
)

// Populate places the timeline's cast on the stage.
func Populate(doc *model.Timeline, s *stage.Stage) error {
	for _, member := range doc.Cast {
		props := stage.DefaultProps()
		props.X = member.X
		props.Y = member.Y
		if member.Fill != "" {
			c, err := model.ParseColor(member.Fill)
			if err != nil {
				return domain.ErrTimeline.Wrap(err)
			}
			props.Fill = c
		}
		if member.Glyph != "" {
			props.Glyph = []rune(member.Glyph)[0]
		}
		s.Add(model.TargetID(member.ID), props)
	}
	return nil
}

// Compile maps the timeline's steps onto a chain of stage effects. The
// resulting chain runs against the given stage; corner steps drive their
// frames through sched.
func Compile(doc *model.Timeline, s *stage.Stage, sched interfaces.Scheduler) (*chain.Chain, error) {
	c := chain.New()

	for i, entry := range doc.Steps {
		var err error
		switch entry.Type {
		case "move":
			var step *model.MoveStep
			if step, err = entry.ToMoveStep(); err == nil {
				c.Then(stage.MoveTo(s, model.TargetID(step.Target), step.X, step.Y, step.Spec()))
			}
		case "scale":
			var step *model.ScaleStep
			if step, err = entry.ToScaleStep(); err == nil {
				c.Then(stage.ScaleTo(s, model.TargetID(step.Target), step.X, step.Y, step.Spec()))
			}
		case "rotate":
			var step *model.RotateStep
			if step, err = entry.ToRotateStep(); err == nil {
				c.Then(stage.RotateTo(s, model.TargetID(step.Target), step.Angle, step.Spec()))
			}
		case "fade":
			var step *model.FadeStep
			if step, err = entry.ToFadeStep(); err == nil {
				c.Then(stage.FadeTo(s, model.TargetID(step.Target), step.Opacity, step.Spec()))
			}
		case "fill":
			var step *model.FillStep
			if step, err = entry.ToFillStep(); err == nil {
				c.Then(stage.FillTo(s, model.TargetID(step.Target), step.Color, step.Spec()))
			}
		case "corner":
			var step *model.CornerStep
			if step, err = entry.ToCornerStep(); err == nil {
				c.Then(stage.RoundTo(s, sched, model.TargetID(step.Target), step.Radius, step.Duration))
			}
		case "pause":
			var step *model.PauseStep
			if step, err = entry.ToPauseStep(); err == nil {
				// The handle is never invoked; the pause elapses as a wait
				// timeout, which the engine treats as normal completion.
				c.Wait(step.Duration, func(done func()) {})
			}
		case "vanish":
			var step *model.VanishStep
			if step, err = entry.ToVanishStep(); err == nil {
				c.Then(stage.Vanish(s, model.TargetID(step.Target)))
			}
		case "gate":
			var step *model.GateStep
			if step, err = entry.ToGateStep(); err == nil {
				id := model.TargetID(step.Target)
				c.Decide(func() bool { return s.Alive(id) })
			}
		default:
			err = goerr.New("unknown step type", goerr.V("type", entry.Type))
		}

		if err != nil {
			return nil, domain.ErrTimeline.Wrap(goerr.Wrap(err, "invalid timeline step", goerr.V("index", i)))
		}
	}

	if err := c.Err(); err != nil {
		return nil, err
	}
	return c, nil
}
