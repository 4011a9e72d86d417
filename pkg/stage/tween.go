package stage

import (
	"context"
	"time"

	"github.com/m-mizutani/catena/pkg/domain/interfaces"
	"github.com/m-mizutani/catena/pkg/domain/model"
)

// TweenHost is an animation host bound to a stage. It snapshots the stage,
// applies the effect to capture the final props, then rewrites interpolated
// props frame by frame on the scheduler, easing with the animation's curve. Each
// frame is presented through the renderer when one is set.
type TweenHost struct {
	stage    *Stage
	sched    interfaces.Scheduler
	fps      int
	renderer interfaces.Renderer
}

type TweenHostOptions struct {
	Stage     *Stage
	Scheduler interfaces.Scheduler
	FPS       int
	Renderer  interfaces.Renderer
}

func NewTweenHost(opts TweenHostOptions) *TweenHost {
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}
	return &TweenHost{
		stage:    opts.Stage,
		sched:    opts.Scheduler,
		fps:      fps,
		renderer: opts.Renderer,
	}
}

func (h *TweenHost) Animate(ctx context.Context, spec model.AnimationSpec, effect func(), done func(finished bool)) {
	begin := func() {
		before := h.stage.Snapshot()
		effect()
		after := h.stage.Snapshot()

		frames := int(spec.Duration.Seconds() * float64(h.fps))
		if frames < 1 {
			frames = 1
		}
		interval := spec.Duration / time.Duration(frames)

		var tick func(i int)
		tick = func(i int) {
			t := spec.Curve.Ease(float64(i) / float64(frames))
			h.stage.SetAll(lerpSnapshots(before, after, t))
			if h.renderer != nil {
				h.renderer.Frame()
			}
			if i >= frames {
				done(true)
				return
			}
			h.sched.After(interval, func() { tick(i + 1) })
		}
		h.sched.After(interval, func() { tick(1) })
	}

	if spec.Delay > 0 {
		h.sched.After(spec.Delay, begin)
		return
	}
	begin()
}

// lerpSnapshots interpolates views present in both snapshots; views the
// effect added start at their final props, views it removed are dropped.
func lerpSnapshots(before, after map[model.TargetID]Props, t float64) map[model.TargetID]Props {
	frame := make(map[model.TargetID]Props, len(after))
	for id, b := range after {
		if a, ok := before[id]; ok {
			frame[id] = LerpProps(a, b, t)
		} else {
			frame[id] = b
		}
	}
	return frame
}
