package stage_test

import (
	"testing"

	"github.com/m-mizutani/catena/pkg/domain/model"
	"github.com/m-mizutani/catena/pkg/stage"
	"github.com/m-mizutani/gt"
)

func TestStage(t *testing.T) {
	t.Run("add and get", func(t *testing.T) {
		s := stage.New()
		props := stage.DefaultProps()
		props.X = 3
		s.Add("box", props)

		got, ok := s.Get("box")
		gt.True(t, ok)
		gt.Equal(t, got.X, 3.0)
		gt.Equal(t, got.Opacity, 1.0)
		gt.True(t, s.Alive("box"))
	})

	t.Run("get returns a copy", func(t *testing.T) {
		s := stage.New()
		s.Add("box", stage.DefaultProps())
		got, _ := s.Get("box")
		got.X = 99

		fresh, _ := s.Get("box")
		gt.Equal(t, fresh.X, 0.0)
	})

	t.Run("apply mutates in place", func(t *testing.T) {
		s := stage.New()
		s.Add("box", stage.DefaultProps())
		gt.True(t, s.Apply("box", func(p *stage.Props) { p.Y = 5 }))

		got, _ := s.Get("box")
		gt.Equal(t, got.Y, 5.0)
	})

	t.Run("apply on a removed view is a no-op", func(t *testing.T) {
		s := stage.New()
		s.Add("box", stage.DefaultProps())
		s.Remove("box")

		gt.False(t, s.Apply("box", func(p *stage.Props) { p.Y = 5 }))
		gt.False(t, s.Alive("box"))
	})

	t.Run("set all does not resurrect removed views", func(t *testing.T) {
		s := stage.New()
		s.Add("a", stage.DefaultProps())
		s.Add("b", stage.DefaultProps())
		snap := s.Snapshot()
		s.Remove("b")

		s.SetAll(snap)
		gt.True(t, s.Alive("a"))
		gt.False(t, s.Alive("b"))
	})

	t.Run("order follows insertion and survives removal", func(t *testing.T) {
		s := stage.New()
		s.Add("a", stage.DefaultProps())
		s.Add("b", stage.DefaultProps())
		s.Add("c", stage.DefaultProps())
		s.Remove("b")

		gt.Equal(t, s.Order(), []model.TargetID{"a", "c"})
	})

	t.Run("re-adding an existing id replaces props without duplicating order", func(t *testing.T) {
		s := stage.New()
		s.Add("a", stage.DefaultProps())
		props := stage.DefaultProps()
		props.X = 9
		s.Add("a", props)

		gt.Equal(t, s.Order(), []model.TargetID{"a"})
		got, _ := s.Get("a")
		gt.Equal(t, got.X, 9.0)
	})
}

func TestLerpProps(t *testing.T) {
	from := stage.DefaultProps()
	to := stage.DefaultProps()
	to.X = 10
	to.Opacity = 0
	to.Fill = model.Color{R: 200}

	t.Run("endpoints are exact", func(t *testing.T) {
		gt.Equal(t, stage.LerpProps(from, to, 0).X, 0.0)
		gt.Equal(t, stage.LerpProps(from, to, 1), to)
	})

	t.Run("midpoint is halfway", func(t *testing.T) {
		mid := stage.LerpProps(from, to, 0.5)
		gt.Equal(t, mid.X, 5.0)
		gt.Equal(t, mid.Opacity, 0.5)
		gt.Equal(t, mid.Fill.R, uint8(100))
	})
}
