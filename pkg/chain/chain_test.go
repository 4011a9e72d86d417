package chain_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/catena/pkg/chain"
	"github.com/m-mizutani/catena/pkg/domain"
	"github.com/m-mizutani/catena/pkg/domain/model"
	"github.com/m-mizutani/catena/pkg/hosts"
	"github.com/m-mizutani/gt"
)

func TestBuilder(t *testing.T) {
	t.Run("append preserves order and returns the same chain", func(t *testing.T) {
		c := chain.New()
		got := c.Do(func() {}).
			Animate(model.AnimationSpec{Duration: 100 * time.Millisecond}, func() {}).
			Wait(time.Second, func(done func()) {}).
			Decide(func() bool { return true })

		gt.Equal(t, got, c)
		gt.NoError(t, c.Err())
		gt.Equal(t, c.Len(), 4)

		steps := c.Steps()
		gt.Equal(t, steps[0].Kind, model.StepAction)
		gt.Equal(t, steps[1].Kind, model.StepAnimation)
		gt.Equal(t, steps[2].Kind, model.StepWait)
		gt.Equal(t, steps[3].Kind, model.StepDecision)
	})

	t.Run("builder never executes effects", func(t *testing.T) {
		fired := false
		chain.New().Do(func() { fired = true }).
			Animate(model.AnimationSpec{}, func() { fired = true }).
			Decide(func() bool { fired = true; return false })
		gt.False(t, fired)
	})

	t.Run("negative animation duration is rejected", func(t *testing.T) {
		c := chain.New().Animate(model.AnimationSpec{Duration: -time.Second}, func() {})
		gt.Error(t, c.Err())
		gt.True(t, domain.ErrInvalidStep.Is(c.Err()))
		gt.Equal(t, c.Len(), 0)
	})

	t.Run("negative animation delay is rejected", func(t *testing.T) {
		c := chain.New().Animate(model.AnimationSpec{Delay: -time.Second}, func() {})
		gt.Error(t, c.Err())
		gt.Equal(t, c.Len(), 0)
	})

	t.Run("zero animation duration is legal", func(t *testing.T) {
		c := chain.New().Animate(model.AnimationSpec{}, func() {})
		gt.NoError(t, c.Err())
		gt.Equal(t, c.Len(), 1)
	})

	t.Run("non-positive wait timeout is rejected", func(t *testing.T) {
		c := chain.New().Wait(0, func(done func()) {})
		gt.Error(t, c.Err())
		gt.True(t, domain.ErrInvalidStep.Is(c.Err()))
	})

	t.Run("nil callables are rejected", func(t *testing.T) {
		gt.Error(t, chain.New().Do(nil).Err())
		gt.Error(t, chain.New().Animate(model.AnimationSpec{}, nil).Err())
		gt.Error(t, chain.New().Wait(time.Second, nil).Err())
		gt.Error(t, chain.New().Decide(nil).Err())
	})

	t.Run("first append error wins and later steps are still refused cleanly", func(t *testing.T) {
		c := chain.New().
			Wait(0, func(done func()) {}).
			Do(func() {})
		gt.Error(t, c.Err())
		gt.Equal(t, c.Len(), 1) // only the valid action landed
	})

	t.Run("run surfaces the recorded append error", func(t *testing.T) {
		c := chain.New().Animate(model.AnimationSpec{Duration: -1}, func() {})
		err := c.Run(context.Background(), nil, nil)
		gt.Error(t, err)
		gt.True(t, domain.ErrInvalidStep.Is(err))
	})
}

func TestThen(t *testing.T) {
	t.Run("concatenation preserves order across chains", func(t *testing.T) {
		var order []string
		a := chain.New().
			Do(func() { order = append(order, "a1") }).
			Do(func() { order = append(order, "a2") })
		b := chain.New().
			Do(func() { order = append(order, "b1") })

		combined := a.Then(b)
		gt.Equal(t, combined, a)
		gt.Equal(t, combined.Len(), 3)

		runSync(t, combined)
		gt.Equal(t, order, []string{"a1", "a2", "b1"})
	})

	t.Run("mutating the source afterward does not affect the combined chain", func(t *testing.T) {
		a := chain.New().Do(func() {})
		b := chain.New().Do(func() {})
		a.Then(b)

		b.Do(func() {}).Do(func() {})
		gt.Equal(t, a.Len(), 2)
		gt.Equal(t, b.Len(), 3)
	})

	t.Run("then with nil is a no-op", func(t *testing.T) {
		a := chain.New().Do(func() {})
		gt.Equal(t, a.Then(nil).Len(), 1)
	})

	t.Run("then carries the other chain's append error", func(t *testing.T) {
		bad := chain.New().Wait(-time.Second, func(done func()) {})
		c := chain.New().Do(func() {}).Then(bad)
		gt.Error(t, c.Err())
	})
}

func runSync(t *testing.T, c *chain.Chain) model.Outcome {
	t.Helper()
	sched := hosts.NewManualScheduler()
	exec := chain.NewExecutor(chain.ExecutorOptions{
		Host:      hosts.NewDirectHost(sched),
		Scheduler: sched,
	})
	var outcome model.Outcome
	finished := false
	gt.NoError(t, exec.Run(context.Background(), c, func(o model.Outcome) {
		outcome = o
		finished = true
	}))
	for i := 0; i < 1000 && !finished; i++ {
		sched.Advance(time.Second)
	}
	gt.True(t, finished)
	return outcome
}
