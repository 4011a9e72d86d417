package hosts

import (
	"time"

	"github.com/m-mizutani/catena/pkg/domain/interfaces"
)

type scaledScheduler struct {
	inner  interfaces.Scheduler
	factor float64
}

// NewScaledScheduler stretches every delay by factor. A factor above 1 slows
// playback down, below 1 speeds it up. Non-positive factors fall back to 1.
func NewScaledScheduler(inner interfaces.Scheduler, factor float64) interfaces.Scheduler {
	if factor <= 0 {
		factor = 1
	}
	return &scaledScheduler{inner: inner, factor: factor}
}

func (s *scaledScheduler) After(d time.Duration, fn func()) func() {
	return s.inner.After(time.Duration(float64(d)*s.factor), fn)
}
