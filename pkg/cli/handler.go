package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/catena/pkg/chain"
	"github.com/m-mizutani/catena/pkg/domain"
	"github.com/m-mizutani/catena/pkg/domain/interfaces"
	"github.com/m-mizutani/catena/pkg/domain/model"
	"github.com/m-mizutani/catena/pkg/hosts"
	"github.com/m-mizutani/catena/pkg/stage"
	"github.com/m-mizutani/catena/pkg/timeline"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func RunPlay(ctx context.Context, cmd *cli.Command) error {
	logLevel := slog.LevelWarn
	if cmd.Bool("debug") {
		logLevel = slog.LevelDebug
	} else if cmd.Bool("verbose") {
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	ctx = ctxlog.With(ctx, logger)

	config := &Config{
		File:          cmd.String("file"),
		FPS:           int(cmd.Int("fps")),
		Width:         int(cmd.Int("width")),
		Height:        int(cmd.Int("height")),
		DurationScale: cmd.Float("duration-scale"),
		Headless:      cmd.Bool("headless"),
	}

	loader := timeline.NewLoader()
	doc, name, err := resolveTimeline(loader, config.File)
	if err != nil {
		return err
	}

	st := stage.New()
	if err := timeline.Populate(doc, st); err != nil {
		return err
	}

	var sched interfaces.Scheduler = hosts.NewScheduler()
	if config.DurationScale != 1 {
		sched = hosts.NewScaledScheduler(sched, config.DurationScale)
	}

	var renderer interfaces.Renderer
	if !config.Headless {
		renderer = NewTerminalRenderer(st, os.Stdout, config.Width, config.Height)
	}

	host := stage.NewTweenHost(stage.TweenHostOptions{
		Stage:     st,
		Scheduler: sched,
		FPS:       config.FPS,
		Renderer:  renderer,
	})

	c, err := timeline.Compile(doc, st, sched)
	if err != nil {
		return err
	}

	fmt.Printf("Playing %s (%d steps, %d views)\n\n", name, c.Len(), len(doc.Cast))

	exec := chain.NewExecutor(chain.ExecutorOptions{
		Host:      host,
		Scheduler: sched,
		Registry:  st,
	})

	outcomes := make(chan model.Outcome, 1)
	if err := exec.Run(ctx, c, func(o model.Outcome) { outcomes <- o }); err != nil {
		return err
	}

	select {
	case outcome := <-outcomes:
		if renderer != nil {
			renderer.Close()
		}
		if outcome.Interrupted {
			fmt.Printf("\nInterrupted after %d steps (%s)\n", outcome.StepsRun, outcome.Elapsed.Round(time.Millisecond))
		} else {
			fmt.Printf("\nCompleted %d steps (%s)\n", outcome.StepsRun, outcome.Elapsed.Round(time.Millisecond))
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func resolveTimeline(loader *timeline.Loader, file string) (*model.Timeline, string, error) {
	if file != "" {
		doc, err := loader.Load(file)
		if err != nil {
			return nil, "", err
		}
		return doc, displayName(doc, file), nil
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return nil, "", domain.ErrConfiguration.Wrap(err)
	}
	doc, path, err := loader.LoadFromDirectory(currentDir)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return nil, "", domain.ErrConfiguration.Wrap(
			goerr.New("no timeline found; pass --file or create catena.yml"))
	}
	return doc, displayName(doc, path), nil
}

func displayName(doc *model.Timeline, path string) string {
	if doc.Name != "" {
		return doc.Name
	}
	return path
}
