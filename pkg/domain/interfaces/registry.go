package interfaces

import "github.com/m-mizutani/catena/pkg/domain/model"

// TargetRegistry reports whether an animation target still exists. Steps
// bound to a dead target are auto-completed so a chain never hangs on a view
// that disappeared mid-animation.
type TargetRegistry interface {
	Alive(id model.TargetID) bool
}
