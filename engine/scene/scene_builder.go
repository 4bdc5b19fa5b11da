package scene

import (
	"github.com/Carmen-Shannon/breakout/engine/model"
	"github.com/Carmen-Shannon/breakout/engine/physics"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering. Scenes start active.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithModels adds initial models under tag.
//
// Parameters:
//   - tag: the program tag
//   - models: the models to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithModels(tag string, models ...model.Model) SceneBuilderOption {
	return func(s *scene) {
		s.addModel(tag, models...)
	}
}

// WithSimulator attaches the simulation stepped every frame.
//
// Parameters:
//   - sim: the simulator
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSimulator(sim physics.Simulator) SceneBuilderOption {
	return func(s *scene) {
		s.simulator = sim
	}
}
