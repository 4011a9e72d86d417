package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/m-mizutani/catena/pkg/cli"
	"github.com/m-mizutani/catena/pkg/stage"
	"github.com/m-mizutani/gt"
)

func TestTerminalRenderer(t *testing.T) {
	newStage := func() *stage.Stage {
		s := stage.New()
		props := stage.DefaultProps()
		props.X = 2
		props.Y = 1
		props.Glyph = '@'
		s.Add("box", props)
		return s
	}

	t.Run("draws the glyph at its rounded position", func(t *testing.T) {
		var buf bytes.Buffer
		r := cli.NewTerminalRenderer(newStage(), &buf, 8, 3)
		r.Frame()

		lines := strings.Split(buf.String(), "\n")
		gt.True(t, len(lines) >= 3)
		gt.True(t, strings.Contains(lines[1], "@"))
		gt.False(t, strings.Contains(lines[0], "@"))
		gt.Equal(t, r.FrameCount(), 1)
	})

	t.Run("second frame rewinds the cursor", func(t *testing.T) {
		var buf bytes.Buffer
		r := cli.NewTerminalRenderer(newStage(), &buf, 8, 3)
		r.Frame()
		before := buf.String()
		gt.False(t, strings.Contains(before, "\033[3A"))

		r.Frame()
		gt.True(t, strings.Contains(buf.String(), "\033[3A"))
		gt.Equal(t, r.FrameCount(), 2)
	})

	t.Run("faded views thin out and invisible views vanish", func(t *testing.T) {
		s := newStage()
		var buf bytes.Buffer
		r := cli.NewTerminalRenderer(s, &buf, 8, 3)

		s.Apply("box", func(p *stage.Props) { p.Opacity = 0.6 })
		r.Frame()
		gt.True(t, strings.Contains(buf.String(), "+"))

		buf.Reset()
		s.Apply("box", func(p *stage.Props) { p.Opacity = 0 })
		r.Frame()
		gt.False(t, strings.ContainsAny(buf.String(), "@+:."))
	})

	t.Run("scale widens the drawn span", func(t *testing.T) {
		s := newStage()
		var buf bytes.Buffer
		r := cli.NewTerminalRenderer(s, &buf, 8, 3)

		s.Apply("box", func(p *stage.Props) { p.ScaleX = 3 })
		r.Frame()
		gt.True(t, strings.Contains(buf.String(), "@@@"))
	})

	t.Run("views outside the grid are clipped", func(t *testing.T) {
		s := newStage()
		var buf bytes.Buffer
		r := cli.NewTerminalRenderer(s, &buf, 8, 3)

		s.Apply("box", func(p *stage.Props) { p.X = 100 })
		r.Frame()
		gt.False(t, strings.Contains(buf.String(), "@"))
	})
}
