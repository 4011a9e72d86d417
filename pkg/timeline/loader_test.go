package timeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/catena/pkg/domain"
	"github.com/m-mizutani/catena/pkg/hosts"
	"github.com/m-mizutani/catena/pkg/stage"
	"github.com/m-mizutani/catena/pkg/timeline"
	"github.com/m-mizutani/gt"
)

func writeTimeline(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	gt.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("parses cast and steps", func(t *testing.T) {
		path := writeTimeline(t, "catena.yml", `
name: demo
cast:
  - id: box
    x: 4
    y: 2
steps:
  - type: move
    target: box
    x: 10
    y: 2
    duration: 800ms
`)
		doc, err := timeline.NewLoader().Load(path)
		gt.NoError(t, err)
		gt.Equal(t, doc.Name, "demo")
		gt.Equal(t, len(doc.Cast), 1)
		gt.Equal(t, len(doc.Steps), 1)
		gt.Equal(t, doc.Steps[0].Type, "move")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := timeline.NewLoader().Load(filepath.Join(t.TempDir(), "absent.yml"))
		gt.True(t, domain.ErrTimeline.Is(err))
	})

	t.Run("broken yaml", func(t *testing.T) {
		path := writeTimeline(t, "catena.yml", "steps: [\n")
		_, err := timeline.NewLoader().Load(path)
		gt.True(t, domain.ErrTimeline.Is(err))
	})

	t.Run("duplicate cast id", func(t *testing.T) {
		path := writeTimeline(t, "catena.yml", `
cast:
  - id: box
  - id: box
`)
		_, err := timeline.NewLoader().Load(path)
		gt.True(t, domain.ErrTimeline.Is(err))
	})

	t.Run("step without a type", func(t *testing.T) {
		path := writeTimeline(t, "catena.yml", `
steps:
  - target: box
`)
		_, err := timeline.NewLoader().Load(path)
		gt.True(t, domain.ErrTimeline.Is(err))
	})
}

func TestLoadFromDirectory(t *testing.T) {
	t.Run("finds catena.yml", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "catena.yml"), []byte("name: here\n"), 0644))

		doc, path, err := timeline.NewLoader().LoadFromDirectory(dir)
		gt.NoError(t, err)
		gt.Equal(t, path, filepath.Join(dir, "catena.yml"))
		gt.Equal(t, doc.Name, "here")
	})

	t.Run("falls back to the yaml extension", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "catena.yaml"), []byte("name: alt\n"), 0644))

		_, path, err := timeline.NewLoader().LoadFromDirectory(dir)
		gt.NoError(t, err)
		gt.Equal(t, path, filepath.Join(dir, "catena.yaml"))
	})

	t.Run("no file is not an error", func(t *testing.T) {
		doc, path, err := timeline.NewLoader().LoadFromDirectory(t.TempDir())
		gt.NoError(t, err)
		gt.Equal(t, path, "")
		gt.Equal(t, len(doc.Steps), 0)
	})
}

func TestSaveTemplate(t *testing.T) {
	t.Run("written template loads and compiles", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catena.yml")
		loader := timeline.NewLoader()
		gt.NoError(t, loader.SaveTemplate(path, false))

		doc, err := loader.Load(path)
		gt.NoError(t, err)
		gt.Equal(t, len(doc.Cast), 1)
		gt.Equal(t, len(doc.Steps), 7)

		s := stage.New()
		gt.NoError(t, timeline.Populate(doc, s))
		gt.True(t, s.Alive("box"))

		c, err := timeline.Compile(doc, s, hosts.NewManualScheduler())
		gt.NoError(t, err)
		gt.Equal(t, c.Len(), 7)
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catena.yml")
		loader := timeline.NewLoader()
		gt.NoError(t, loader.SaveTemplate(path, false))

		err := loader.SaveTemplate(path, false)
		gt.True(t, domain.ErrTimeline.Is(err))
		gt.NoError(t, loader.SaveTemplate(path, true))
	})

	t.Run("creates missing parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "catena.yml")
		gt.NoError(t, timeline.NewLoader().SaveTemplate(path, false))
		_, err := os.Stat(path)
		gt.NoError(t, err)
	})
}
