package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/catena/pkg/timeline"
	"github.com/urfave/cli/v3"
)

// NewTimelineCommand creates the timeline management command.
func NewTimelineCommand() *cli.Command {
	return &cli.Command{
		Name:  "timeline",
		Usage: "Manage catena timelines",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Generate a starter timeline",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path for the timeline file",
					},
					&cli.BoolFlag{
						Name:    "force",
						Aliases: []string{"f"},
						Usage:   "Force overwrite existing file",
					},
				},
				Action: timelineInitAction,
			},
		},
	}
}

func timelineInitAction(ctx context.Context, cmd *cli.Command) error {
	loader := timeline.NewLoader()

	outputPath := cmd.String("output")
	if outputPath == "" {
		outputPath = "catena.yml"
	}

	if err := loader.SaveTemplate(outputPath, cmd.Bool("force")); err != nil {
		return fmt.Errorf("failed to create timeline template: %w", err)
	}

	fmt.Printf("Created %s\n", outputPath)
	return nil
}
