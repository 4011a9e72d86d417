package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/catena/pkg/domain/interfaces"
	"github.com/m-mizutani/catena/pkg/domain/model"
	"github.com/m-mizutani/catena/pkg/stage"
)

// TerminalRenderer draws the stage as an ANSI grid, rewriting the previous
// frame in place with cursor-up escapes. Opacity picks the glyph density and
// the fill color maps to the nearest terminal color.
type TerminalRenderer struct {
	stage     *stage.Stage
	out       io.Writer
	width     int
	height    int
	lastLines int
	frames    int
}

func NewTerminalRenderer(s *stage.Stage, out io.Writer, width, height int) *TerminalRenderer {
	if width <= 0 {
		width = 48
	}
	if height <= 0 {
		height = 8
	}
	return &TerminalRenderer{
		stage:  s,
		out:    out,
		width:  width,
		height: height,
	}
}

var _ interfaces.Renderer = (*TerminalRenderer)(nil)

func (r *TerminalRenderer) Frame() {
	rows := r.compose()

	if r.lastLines > 0 {
		fmt.Fprintf(r.out, "\033[%dA", r.lastLines)
	}
	for _, row := range rows {
		fmt.Fprintf(r.out, "\033[2K%s\n", row)
	}
	r.lastLines = len(rows)
	r.frames++
}

func (r *TerminalRenderer) Close() {
	fmt.Fprintln(r.out)
}

// FrameCount returns the number of frames drawn so far.
func (r *TerminalRenderer) FrameCount() int {
	return r.frames
}

func (r *TerminalRenderer) compose() []string {
	type cell struct {
		glyph rune
		fill  model.Color
		set   bool
	}
	grid := make([][]cell, r.height)
	for y := range grid {
		grid[y] = make([]cell, r.width)
	}

	snap := r.stage.Snapshot()
	for _, id := range r.stage.Order() {
		p, ok := snap[id]
		if !ok || p.Opacity <= 0 {
			continue
		}
		glyph := glyphFor(p)
		w := spanFor(p.ScaleX)
		h := spanFor(p.ScaleY)
		baseX := int(math.Round(p.X))
		baseY := int(math.Round(p.Y))
		for dy := 0; dy < h; dy++ {
			for dx := 0; dx < w; dx++ {
				x, y := baseX+dx, baseY+dy
				if x < 0 || x >= r.width || y < 0 || y >= r.height {
					continue
				}
				grid[y][x] = cell{glyph: glyph, fill: p.Fill, set: true}
			}
		}
	}

	rows := make([]string, r.height)
	for y, line := range grid {
		var b strings.Builder
		for _, c := range line {
			if !c.set {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(color.New(nearestColor(c.fill)).Sprint(string(c.glyph)))
		}
		rows[y] = b.String()
	}
	return rows
}

// glyphFor thins the view's glyph out as it fades.
func glyphFor(p stage.Props) rune {
	switch {
	case p.Opacity > 0.75:
		return p.Glyph
	case p.Opacity > 0.5:
		return '+'
	case p.Opacity > 0.25:
		return ':'
	default:
		return '.'
	}
}

func spanFor(scale float64) int {
	n := int(math.Round(scale))
	if n < 1 {
		n = 1
	}
	return n
}

var palette = []struct {
	attr color.Attribute
	c    model.Color
}{
	{color.FgBlack, model.Color{R: 0, G: 0, B: 0}},
	{color.FgRed, model.Color{R: 205, G: 49, B: 49}},
	{color.FgGreen, model.Color{R: 13, G: 188, B: 121}},
	{color.FgYellow, model.Color{R: 229, G: 229, B: 16}},
	{color.FgBlue, model.Color{R: 36, G: 114, B: 200}},
	{color.FgMagenta, model.Color{R: 188, G: 63, B: 188}},
	{color.FgCyan, model.Color{R: 17, G: 168, B: 205}},
	{color.FgWhite, model.Color{R: 229, G: 229, B: 229}},
}

func nearestColor(c model.Color) color.Attribute {
	best := palette[0].attr
	bestDist := math.MaxFloat64
	for _, entry := range palette {
		dr := float64(c.R) - float64(entry.c.R)
		dg := float64(c.G) - float64(entry.c.G)
		db := float64(c.B) - float64(entry.c.B)
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = entry.attr
		}
	}
	return best
}
