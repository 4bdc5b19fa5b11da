package breakout

import (
	"github.com/Carmen-Shannon/breakout/engine/model"
	"github.com/Carmen-Shannon/breakout/engine/transform"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Intro slides the brick wall down into its resting place.
type Intro struct {
	tween  *gween.Tween
	models []model.Model
	offset float32
	Done   bool
}

// NewIntro lifts models by distance and prepares a tween bringing them back over seconds.
// A non-positive duration leaves the models in place and finishes immediately.
//
// Parameters:
//   - models: the models to slide
//   - distance: the unscaled vertical distance the slide starts from
//   - seconds: the duration of the slide
//
// Returns:
//   - *Intro: the intro animation
func NewIntro(models []model.Model, distance, seconds float32) *Intro {
	if seconds <= 0 || distance == 0 {
		return &Intro{Done: true}
	}

	i := &Intro{
		tween:  gween.New(distance, 0, seconds, ease.OutCubic),
		models: models,
	}
	i.shift(distance)
	return i
}

// Update advances the slide by dt seconds.
func (i *Intro) Update(dt float32) {
	if i.Done {
		return
	}
	current, finished := i.tween.Update(dt)
	if finished {
		current = 0
	}
	i.shift(current - i.offset)
	i.Done = finished
}

func (i *Intro) shift(delta float32) {
	if delta == 0 {
		return
	}
	for _, m := range i.models {
		m.World().Position().Shift(delta, transform.AxisY)
	}
	i.offset += delta
}
