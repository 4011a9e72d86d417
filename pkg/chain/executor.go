package chain

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/catena/pkg/domain"
	"github.com/m-mizutani/catena/pkg/domain/interfaces"
	"github.com/m-mizutani/catena/pkg/domain/model"
	"github.com/m-mizutani/catena/pkg/hosts"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Executor runs chains one step at a time. Steps execute strictly
// sequentially: step n+1 never starts before step n's completion signal is
// observed, even though animation and wait steps resume asynchronously.
//
// An executor accepts one run at a time. Running again after a run has
// finished is allowed; Run while a run is in flight fails with
// domain.ErrChainRunning.
type Executor struct {
	host  interfaces.AnimationHost
	sched interfaces.Scheduler
	reg   interfaces.TargetRegistry

	mu       sync.Mutex
	phase    model.Phase
	steps    []model.Step
	cursor   int
	stepsRun int
	runID    string
	started  time.Time
	done     func(model.Outcome)
}

// ExecutorOptions configures an Executor. Zero values select the defaults:
// a direct host over real timers and no target registry.
type ExecutorOptions struct {
	Host      interfaces.AnimationHost
	Scheduler interfaces.Scheduler
	Registry  interfaces.TargetRegistry
}

// NewExecutor creates an Executor in the idle phase.
func NewExecutor(opts ExecutorOptions) *Executor {
	sched := opts.Scheduler
	if sched == nil {
		sched = hosts.NewScheduler()
	}
	host := opts.Host
	if host == nil {
		host = hosts.NewDirectHost(sched)
	}
	return &Executor{
		host:  host,
		sched: sched,
		reg:   opts.Registry,
		phase: model.PhaseIdle,
	}
}

// Phase returns the current phase of the executor.
func (e *Executor) Phase() model.Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Run starts executing the chain. It returns after dispatch has begun; a
// chain of only action and decision steps completes before Run returns. The
// done callback fires exactly once when the run finishes, reporting whether
// a decision interrupted it.
func (e *Executor) Run(ctx context.Context, c *Chain, done func(model.Outcome)) error {
	if c == nil {
		return goerr.New("chain is nil")
	}
	if err := c.Err(); err != nil {
		return err
	}

	e.mu.Lock()
	if e.phase == model.PhaseRunning {
		e.mu.Unlock()
		return domain.ErrChainRunning
	}
	e.phase = model.PhaseRunning
	e.steps = c.Steps()
	e.cursor = 0
	e.stepsRun = 0
	e.runID = uuid.NewString()
	e.started = time.Now()
	e.done = done
	total := len(e.steps)
	runID := e.runID
	e.mu.Unlock()

	ctxlog.From(ctx).Debug("starting chain run",
		slog.String("run_id", runID),
		slog.Int("steps", total),
	)

	e.dispatch(ctx)
	return nil
}

// dispatch executes steps from the cursor until the run finishes or an
// asynchronous step suspends it. Resumption re-enters dispatch from the
// completion signal's goroutine; advanceFrom serializes the hand-off.
func (e *Executor) dispatch(ctx context.Context) {
	logger := ctxlog.From(ctx)

	for {
		e.mu.Lock()
		if e.phase != model.PhaseRunning {
			e.mu.Unlock()
			return
		}
		if e.cursor >= len(e.steps) {
			e.mu.Unlock()
			e.finish(ctx, false)
			return
		}
		idx := e.cursor
		step := e.steps[idx]
		runID := e.runID
		e.mu.Unlock()

		// Dead weak target: the step is treated as instantly completed so the
		// chain cannot hang on a view that disappeared mid-run.
		if step.Target != "" && e.reg != nil && !e.reg.Alive(step.Target) {
			logger.Debug("target gone, auto-completing step",
				slog.String("run_id", runID),
				slog.Int("step", idx),
				slog.String("kind", string(step.Kind)),
				slog.String("target", string(step.Target)),
			)
			if !e.advanceFrom(idx) {
				return
			}
			continue
		}

		switch step.Kind {
		case model.StepDecision:
			if !step.Check() {
				logger.Debug("decision interrupted chain",
					slog.String("run_id", runID),
					slog.Int("step", idx),
				)
				e.finish(ctx, true)
				return
			}
			if !e.advanceFrom(idx) {
				return
			}

		case model.StepAction:
			step.Effect()
			if !e.advanceFrom(idx) {
				return
			}

		case model.StepAnimation:
			e.host.Animate(ctx, step.Anim, step.Effect, func(finished bool) {
				if e.advanceFrom(idx) {
					e.dispatch(ctx)
				}
			})
			return

		case model.StepWait:
			var once sync.Once
			var cancelTimer func()
			resume := func(timedOut bool) {
				once.Do(func() {
					if timedOut {
						logger.Debug("wait step timed out",
							slog.String("run_id", runID),
							slog.Int("step", idx),
							slog.Duration("timeout", step.Timeout),
						)
					} else if cancelTimer != nil {
						cancelTimer()
					}
					if e.advanceFrom(idx) {
						e.dispatch(ctx)
					}
				})
			}
			cancelTimer = e.sched.After(step.Timeout, func() { resume(true) })
			step.Drive(func() { resume(false) })
			return
		}
	}
}

// advanceFrom moves the cursor past step idx. It reports false when the
// signal is stale: the run already finished, or the cursor moved because the
// timer and the wait handle raced. Duplicate completion signals are no-ops.
func (e *Executor) advanceFrom(idx int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase != model.PhaseRunning || e.cursor != idx {
		return false
	}
	e.cursor++
	e.stepsRun++
	return true
}

func (e *Executor) finish(ctx context.Context, interrupted bool) {
	e.mu.Lock()
	if e.phase != model.PhaseRunning {
		e.mu.Unlock()
		return
	}
	if interrupted {
		e.phase = model.PhaseInterrupted
	} else {
		e.phase = model.PhaseCompleted
	}
	outcome := model.Outcome{
		Interrupted: interrupted,
		StepsRun:    e.stepsRun,
		Elapsed:     time.Since(e.started),
	}
	done := e.done
	e.done = nil
	runID := e.runID
	e.mu.Unlock()

	ctxlog.From(ctx).Debug("chain run finished",
		slog.String("run_id", runID),
		slog.Bool("interrupted", outcome.Interrupted),
		slog.Int("steps_run", outcome.StepsRun),
	)

	if done != nil {
		done(outcome)
	}
}
