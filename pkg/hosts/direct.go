package hosts

import (
	"context"

	"github.com/m-mizutani/catena/pkg/domain/interfaces"
	"github.com/m-mizutani/catena/pkg/domain/model"
)

// DirectHost applies the effect in one shot and reports completion once the
// declared delay and duration have elapsed on the scheduler. There is no
// interpolation; it is the host for headless runs and tests.
//
// done always goes through the scheduler, so it never fires synchronously
// from Animate even when duration and delay are both zero.
type DirectHost struct {
	sched interfaces.Scheduler
}

func NewDirectHost(sched interfaces.Scheduler) *DirectHost {
	return &DirectHost{sched: sched}
}

func (h *DirectHost) Animate(ctx context.Context, spec model.AnimationSpec, effect func(), done func(finished bool)) {
	begin := func() {
		effect()
		h.sched.After(spec.Duration, func() { done(true) })
	}
	if spec.Delay > 0 {
		h.sched.After(spec.Delay, begin)
		return
	}
	begin()
}
