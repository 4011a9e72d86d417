package cli

import (
	"github.com/urfave/cli/v3"
)

func NewCommand() *cli.Command {
	flags := append(DefineFlags(),
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable verbose logging",
			Value: false,
		},
	)

	return &cli.Command{
		Name:    "catena",
		Usage:   "Terminal animation chain player",
		Version: "0.1.0",
		Description: `catena plays declarative animation timelines in the terminal.

By default, it looks for catena.yml in the current directory.
Use -f/--file to play a specific timeline file.`,
		Flags:  flags,
		Action: RunPlay,
		Commands: []*cli.Command{
			NewTimelineCommand(),
		},
	}
}
