package cli

import (
	"github.com/urfave/cli/v3"
)

type Config struct {
	File          string
	FPS           int
	Width         int
	Height        int
	DurationScale float64
	Headless      bool
}

func NewConfig() *Config {
	return &Config{
		FPS:           30,
		Width:         48,
		Height:        8,
		DurationScale: 1,
	}
}

func DefineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Timeline file to play",
		},
		&cli.IntFlag{
			Name:  "fps",
			Usage: "Playback frame rate",
			Value: 30,
		},
		&cli.IntFlag{
			Name:  "width",
			Usage: "Stage width in columns",
			Value: 48,
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "Stage height in rows",
			Value: 8,
		},
		&cli.FloatFlag{
			Name:  "duration-scale",
			Usage: "Stretch all durations by this factor",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without drawing frames",
			Value: false,
		},
	}
}
