package interfaces

import (
	"context"

	"github.com/m-mizutani/catena/pkg/domain/model"
)

// AnimationHost executes an effect inside an animated transaction. The host
// must invoke done exactly once when the transaction finishes, passing whether
// it ran to completion. done is never invoked synchronously from Animate, even
// for zero duration and delay.
type AnimationHost interface {
	Animate(ctx context.Context, spec model.AnimationSpec, effect func(), done func(finished bool))
}
