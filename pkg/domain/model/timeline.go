package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Timeline is a declarative animation script loaded from YAML. Cast declares
// the initial views on the stage; Steps are compiled into a chain in order.
type Timeline struct {
	Name  string         `yaml:"name"`
	Cast  []CastMember   `yaml:"cast"`
	Steps []TimelineStep `yaml:"steps"`
}

// CastMember places one view on the stage before playback starts.
type CastMember struct {
	ID    string  `yaml:"id"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Fill  string  `yaml:"fill"`
	Glyph string  `yaml:"glyph"`
}

// TimelineStep is an untyped step entry. Type selects the concrete step and
// Data holds its fields inline, converted through the ToXxxStep methods.
type TimelineStep struct {
	Type string         `yaml:"type"` // "move", "scale", "rotate", "fade", "fill", "corner", "pause", "vanish", "gate"
	Data map[string]any `yaml:",inline"`
}

// Timing holds the shared animation fields of timeline steps.
type Timing struct {
	Duration time.Duration
	Delay    time.Duration
	Curve    Curve
}

// Spec converts the shared timing fields into an AnimationSpec.
func (t Timing) Spec() AnimationSpec {
	return AnimationSpec{Duration: t.Duration, Delay: t.Delay, Curve: t.Curve}
}

// MoveStep translates a view to an absolute position.
type MoveStep struct {
	Target string
	X      float64
	Y      float64
	Timing
}

// ScaleStep sets a view's scale factors.
type ScaleStep struct {
	Target string
	X      float64
	Y      float64
	Timing
}

// RotateStep sets a view's rotation in degrees.
type RotateStep struct {
	Target string
	Angle  float64
	Timing
}

// FadeStep sets a view's opacity in [0,1].
type FadeStep struct {
	Target  string
	Opacity float64
	Timing
}

// FillStep sets a view's fill color.
type FillStep struct {
	Target string
	Color  Color
	Timing
}

// CornerStep drives a view's corner radius outside the regular animation
// transaction, so it compiles to a wait step.
type CornerStep struct {
	Target   string
	Radius   float64
	Duration time.Duration
}

// PauseStep holds the chain for a fixed duration.
type PauseStep struct {
	Duration time.Duration
}

// VanishStep removes a view from the stage.
type VanishStep struct {
	Target string
}

// GateStep halts the chain when its target is no longer on the stage.
type GateStep struct {
	Target string
}

// ToMoveStep converts the entry to a MoveStep for type safety.
func (s *TimelineStep) ToMoveStep() (*MoveStep, error) {
	if s.Type != "move" {
		return nil, goerr.New("step is not a move type")
	}
	target, err := s.targetField()
	if err != nil {
		return nil, err
	}
	x, err := s.floatField("x", true)
	if err != nil {
		return nil, err
	}
	y, err := s.floatField("y", true)
	if err != nil {
		return nil, err
	}
	timing, err := s.timingFields()
	if err != nil {
		return nil, err
	}
	return &MoveStep{Target: target, X: x, Y: y, Timing: timing}, nil
}

// ToScaleStep converts the entry to a ScaleStep for type safety.
func (s *TimelineStep) ToScaleStep() (*ScaleStep, error) {
	if s.Type != "scale" {
		return nil, goerr.New("step is not a scale type")
	}
	target, err := s.targetField()
	if err != nil {
		return nil, err
	}
	x, err := s.floatField("x", true)
	if err != nil {
		return nil, err
	}
	y, err := s.floatField("y", false)
	if err != nil {
		return nil, err
	}
	if _, ok := s.Data["y"]; !ok {
		y = x
	}
	timing, err := s.timingFields()
	if err != nil {
		return nil, err
	}
	return &ScaleStep{Target: target, X: x, Y: y, Timing: timing}, nil
}

// ToRotateStep converts the entry to a RotateStep for type safety.
func (s *TimelineStep) ToRotateStep() (*RotateStep, error) {
	if s.Type != "rotate" {
		return nil, goerr.New("step is not a rotate type")
	}
	target, err := s.targetField()
	if err != nil {
		return nil, err
	}
	angle, err := s.floatField("angle", true)
	if err != nil {
		return nil, err
	}
	timing, err := s.timingFields()
	if err != nil {
		return nil, err
	}
	return &RotateStep{Target: target, Angle: angle, Timing: timing}, nil
}

// ToFadeStep converts the entry to a FadeStep for type safety.
func (s *TimelineStep) ToFadeStep() (*FadeStep, error) {
	if s.Type != "fade" {
		return nil, goerr.New("step is not a fade type")
	}
	target, err := s.targetField()
	if err != nil {
		return nil, err
	}
	opacity, err := s.floatField("opacity", true)
	if err != nil {
		return nil, err
	}
	if opacity < 0 || opacity > 1 {
		return nil, goerr.New("fade opacity must be within [0,1]", goerr.V("opacity", opacity))
	}
	timing, err := s.timingFields()
	if err != nil {
		return nil, err
	}
	return &FadeStep{Target: target, Opacity: opacity, Timing: timing}, nil
}

// ToFillStep converts the entry to a FillStep for type safety.
func (s *TimelineStep) ToFillStep() (*FillStep, error) {
	if s.Type != "fill" {
		return nil, goerr.New("step is not a fill type")
	}
	target, err := s.targetField()
	if err != nil {
		return nil, err
	}
	raw, ok := s.Data["color"].(string)
	if !ok || raw == "" {
		return nil, goerr.New("fill step requires 'color' field")
	}
	c, err := ParseColor(raw)
	if err != nil {
		return nil, err
	}
	timing, err := s.timingFields()
	if err != nil {
		return nil, err
	}
	return &FillStep{Target: target, Color: c, Timing: timing}, nil
}

// ToCornerStep converts the entry to a CornerStep for type safety.
func (s *TimelineStep) ToCornerStep() (*CornerStep, error) {
	if s.Type != "corner" {
		return nil, goerr.New("step is not a corner type")
	}
	target, err := s.targetField()
	if err != nil {
		return nil, err
	}
	radius, err := s.floatField("radius", true)
	if err != nil {
		return nil, err
	}
	d, err := s.durationField("duration", true)
	if err != nil {
		return nil, err
	}
	return &CornerStep{Target: target, Radius: radius, Duration: d}, nil
}

// ToPauseStep converts the entry to a PauseStep for type safety.
func (s *TimelineStep) ToPauseStep() (*PauseStep, error) {
	if s.Type != "pause" {
		return nil, goerr.New("step is not a pause type")
	}
	d, err := s.durationField("duration", true)
	if err != nil {
		return nil, err
	}
	if d <= 0 {
		return nil, goerr.New("pause duration must be positive", goerr.V("duration", d))
	}
	return &PauseStep{Duration: d}, nil
}

// ToVanishStep converts the entry to a VanishStep for type safety.
func (s *TimelineStep) ToVanishStep() (*VanishStep, error) {
	if s.Type != "vanish" {
		return nil, goerr.New("step is not a vanish type")
	}
	target, err := s.targetField()
	if err != nil {
		return nil, err
	}
	return &VanishStep{Target: target}, nil
}

// ToGateStep converts the entry to a GateStep for type safety.
func (s *TimelineStep) ToGateStep() (*GateStep, error) {
	if s.Type != "gate" {
		return nil, goerr.New("step is not a gate type")
	}
	target, err := s.targetField()
	if err != nil {
		return nil, err
	}
	return &GateStep{Target: target}, nil
}

func (s *TimelineStep) targetField() (string, error) {
	target, ok := s.Data["target"].(string)
	if !ok || target == "" {
		return "", goerr.New("step requires 'target' field", goerr.V("type", s.Type))
	}
	return target, nil
}

func (s *TimelineStep) floatField(key string, required bool) (float64, error) {
	value, ok := s.Data[key]
	if !ok {
		if required {
			return 0, goerr.New("step requires field", goerr.V("type", s.Type), goerr.V("field", key))
		}
		return 0, nil
	}
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, goerr.New("field must be a number", goerr.V("type", s.Type), goerr.V("field", key))
	}
}

func (s *TimelineStep) durationField(key string, required bool) (time.Duration, error) {
	value, ok := s.Data[key]
	if !ok {
		if required {
			return 0, goerr.New("step requires field", goerr.V("type", s.Type), goerr.V("field", key))
		}
		return 0, nil
	}
	switch v := value.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, goerr.Wrap(err, "invalid duration format", goerr.V("field", key))
		}
		return d, nil
	case time.Duration:
		return v, nil
	default:
		return 0, goerr.New("field must be a duration string", goerr.V("type", s.Type), goerr.V("field", key))
	}
}

func (s *TimelineStep) timingFields() (Timing, error) {
	duration, err := s.durationField("duration", false)
	if err != nil {
		return Timing{}, err
	}
	if duration < 0 {
		return Timing{}, goerr.New("duration must not be negative", goerr.V("duration", duration))
	}
	delay, err := s.durationField("delay", false)
	if err != nil {
		return Timing{}, err
	}
	if delay < 0 {
		return Timing{}, goerr.New("delay must not be negative", goerr.V("delay", delay))
	}
	curve := CurveLinear
	if raw, ok := s.Data["curve"]; ok {
		name, ok := raw.(string)
		if !ok {
			return Timing{}, goerr.New("curve must be a string")
		}
		switch Curve(name) {
		case CurveLinear, CurveEaseIn, CurveEaseOut, CurveEaseInOut:
			curve = Curve(name)
		default:
			return Timing{}, goerr.New("unknown curve", goerr.V("curve", name))
		}
	}
	return Timing{Duration: duration, Delay: delay, Curve: curve}, nil
}
