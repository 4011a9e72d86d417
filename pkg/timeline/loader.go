package timeline

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/catena/pkg/domain"
	"github.com/m-mizutani/catena/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Loader reads timeline documents from YAML files.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and validates a timeline file.
func (l *Loader) Load(path string) (*model.Timeline, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, domain.ErrTimeline.Wrap(err)
	}

	var doc model.Timeline
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.ErrTimeline.Wrap(err)
	}

	if err := validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// LoadFromDirectory looks for catena.yml or catena.yaml in dir. When neither
// exists it returns an empty timeline and an empty path, not an error.
func (l *Loader) LoadFromDirectory(dir string) (*model.Timeline, string, error) {
	path := l.findInDirectory(dir)
	if path == "" {
		return &model.Timeline{}, "", nil
	}
	doc, err := l.Load(path)
	if err != nil {
		return nil, "", err
	}
	return doc, path, nil
}

func (l *Loader) findInDirectory(dir string) string {
	for _, name := range []string{"catena.yml", "catena.yaml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GenerateTemplate returns a commented starter timeline.
func (l *Loader) GenerateTemplate() string {
	return `# catena timeline
#
# cast places views on the stage before playback; steps run in order.
# Step types: move, scale, rotate, fade, fill, corner, pause, vanish, gate.
name: demo

cast:
  - id: box
    x: 4
    y: 2
    fill: "#3264c8"
    glyph: "@"

steps:
  - type: move
    target: box
    x: 24
    y: 2
    duration: 800ms
    curve: ease_in_out

  - type: fill
    target: box
    color: "#c83232"
    duration: 400ms

  - type: corner
    target: box
    radius: 3
    duration: 300ms

  - type: pause
    duration: 200ms

  # gate halts playback here if the box has left the stage
  - type: gate
    target: box

  - type: fade
    target: box
    opacity: 0
    duration: 500ms
    curve: ease_out

  - type: vanish
    target: box
`
}

// SaveTemplate writes the template to path, refusing to overwrite an
// existing file unless force is set.
func (l *Loader) SaveTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return domain.ErrTimeline.Wrap(goerr.New("file already exists", goerr.V("path", path)))
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return domain.ErrTimeline.Wrap(err)
		}
	}
	if err := os.WriteFile(path, []byte(l.GenerateTemplate()), 0644); err != nil {
		return domain.ErrTimeline.Wrap(err)
	}
	return nil
}

func validate(doc *model.Timeline) error {
	seen := make(map[string]bool, len(doc.Cast))
	for _, member := range doc.Cast {
		if member.ID == "" {
			return domain.ErrTimeline.Wrap(goerr.New("cast member requires an id"))
		}
		if seen[member.ID] {
			return domain.ErrTimeline.Wrap(goerr.New("duplicate cast id", goerr.V("id", member.ID)))
		}
		seen[member.ID] = true
	}
	for i, step := range doc.Steps {
		if step.Type == "" {
			return domain.ErrTimeline.Wrap(goerr.New("step requires a type", goerr.V("index", i)))
		}
	}
	return nil
}
