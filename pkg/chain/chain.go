package chain

import (
	"context"
	"time"

	"github.com/m-mizutani/catena/pkg/domain"
	"github.com/m-mizutani/catena/pkg/domain/model"
)

// Chain is an ordered sequence of steps built through the fluent API. Builder
// calls only append; nothing executes until the chain is handed to an
// Executor. A Chain is not safe for concurrent mutation.
type Chain struct {
	steps []model.Step
	err   error
}

// New returns an empty chain.
func New() *Chain {
	return &Chain{}
}

// Do appends a synchronous action step.
func (c *Chain) Do(effect func()) *Chain {
	return c.Add(model.Step{Kind: model.StepAction, Effect: effect})
}

// Animate appends a timed animation step. The animation spec is forwarded verbatim to
// the animation host. Zero duration is legal and still resumes through the
// host's completion signal.
func (c *Chain) Animate(spec model.AnimationSpec, effect func()) *Chain {
	return c.Add(model.Step{Kind: model.StepAnimation, Anim: spec, Effect: effect})
}

// Wait appends a step whose drive function receives a completion handle it
// must invoke exactly once. If the handle is not invoked within timeout, the
// chain advances anyway; extra invocations are no-ops.
func (c *Chain) Wait(timeout time.Duration, drive func(done func())) *Chain {
	return c.Add(model.Step{Kind: model.StepWait, Timeout: timeout, Drive: drive})
}

// Decide appends a decision step. A false result skips the remaining steps
// and finishes the run as interrupted.
func (c *Chain) Decide(check func() bool) *Chain {
	return c.Add(model.Step{Kind: model.StepDecision, Check: check})
}

// Then appends a copy of another chain's steps, preserving order. The other
// chain is not mutated and later changes to it do not affect this one.
func (c *Chain) Then(other *Chain) *Chain {
	if other == nil {
		return c
	}
	if c.err == nil && other.err != nil {
		c.err = other.err
	}
	c.steps = append(c.steps, other.steps...)
	return c
}

// Add validates and appends an arbitrary step. Invalid steps are not
// appended; the first validation error is recorded on the chain and surfaced
// when the chain is run.
func (c *Chain) Add(step model.Step) *Chain {
	if err := step.Validate(); err != nil {
		if c.err == nil {
			c.err = domain.ErrInvalidStep.Wrap(err)
		}
		return c
	}
	c.steps = append(c.steps, step)
	return c
}

// Err returns the first append error, if any.
func (c *Chain) Err() error {
	return c.err
}

// Len returns the number of appended steps.
func (c *Chain) Len() int {
	return len(c.steps)
}

// Steps returns a copy of the step list.
func (c *Chain) Steps() []model.Step {
	steps := make([]model.Step, len(c.steps))
	copy(steps, c.steps)
	return steps
}

// Run executes the chain on the given executor. A nil executor runs on a
// fresh default executor (direct host, real timers, no target registry).
func (c *Chain) Run(ctx context.Context, exec *Executor, done func(model.Outcome)) error {
	if exec == nil {
		exec = NewExecutor(ExecutorOptions{})
	}
	return exec.Run(ctx, c, done)
}
