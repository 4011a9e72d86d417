package stage

import (
	"sync"

	"github.com/m-mizutani/catena/pkg/domain/model"
)

// Props are the animatable properties of a view on the stage.
type Props struct {
	X            float64
	Y            float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64 // degrees
	Opacity      float64 // [0,1]
	CornerRadius float64
	Fill         model.Color
	Glyph        rune
}

// DefaultProps returns identity transform props: full opacity, unit scale.
func DefaultProps() Props {
	return Props{
		ScaleX:  1,
		ScaleY:  1,
		Opacity: 1,
		Glyph:   '#',
	}
}

// LerpProps interpolates every numeric property from a toward b by t.
// Glyph does not animate and is taken from b.
func LerpProps(a, b Props, t float64) Props {
	if t <= 0 {
		a.Glyph = b.Glyph
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y float64) float64 { return x + (y-x)*t }
	return Props{
		X:            mix(a.X, b.X),
		Y:            mix(a.Y, b.Y),
		ScaleX:       mix(a.ScaleX, b.ScaleX),
		ScaleY:       mix(a.ScaleY, b.ScaleY),
		Rotation:     mix(a.Rotation, b.Rotation),
		Opacity:      mix(a.Opacity, b.Opacity),
		CornerRadius: mix(a.CornerRadius, b.CornerRadius),
		Fill:         a.Fill.Lerp(b.Fill, t),
		Glyph:        b.Glyph,
	}
}

// Stage owns the views that chains mutate. It is the externally owned
// registry backing weak target references: effects resolve their target
// through the stage on every invocation, and a removed view makes them
// no-ops instead of dangling accesses.
type Stage struct {
	mu    sync.Mutex
	views map[model.TargetID]*Props
	order []model.TargetID
}

func New() *Stage {
	return &Stage{views: make(map[model.TargetID]*Props)}
}

// Add places a view on the stage, replacing any view with the same id.
func (s *Stage) Add(id model.TargetID, p Props) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.views[id]; !exists {
		s.order = append(s.order, id)
	}
	s.views[id] = &p
}

// Remove takes a view off the stage.
func (s *Stage) Remove(id model.TargetID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.views[id]; !exists {
		return
	}
	delete(s.views, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Alive implements interfaces.TargetRegistry.
func (s *Stage) Alive(id model.TargetID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.views[id]
	return exists
}

// Get returns a copy of the view's props.
func (s *Stage) Get(id model.TargetID) (Props, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, exists := s.views[id]
	if !exists {
		return Props{}, false
	}
	return *p, true
}

// Apply mutates the view's props in place. It reports false and does nothing
// when the view is gone.
func (s *Stage) Apply(id model.TargetID, mutate func(*Props)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, exists := s.views[id]
	if !exists {
		return false
	}
	mutate(p)
	return true
}

// Snapshot returns a copy of all views' props.
func (s *Stage) Snapshot() map[model.TargetID]Props {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[model.TargetID]Props, len(s.views))
	for id, p := range s.views {
		snap[id] = *p
	}
	return snap
}

// SetAll writes props for every view present in both the snapshot and the
// stage. Views removed since the snapshot are not resurrected.
func (s *Stage) SetAll(snap map[model.TargetID]Props) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range snap {
		if current, exists := s.views[id]; exists {
			*current = p
		}
	}
}

// Order returns view ids in insertion order.
func (s *Stage) Order() []model.TargetID {
	s.mu.Lock()
	defer s.mu.Unlock()
	order := make([]model.TargetID, len(s.order))
	copy(order, s.order)
	return order
}
