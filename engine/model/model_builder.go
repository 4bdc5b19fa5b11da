package model

import "github.com/Carmen-Shannon/breakout/engine/transform"

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithLocal is an option builder that replaces the local-space transform node.
//
// Parameters:
//   - node: the local node
//
// Returns:
//   - ModelBuilderOption: a function that applies the node to a model
func WithLocal(node transform.SpaceMatrix) ModelBuilderOption {
	return func(m *model) {
		if node != nil {
			m.local = node
		}
	}
}

// WithWorld is an option builder that replaces the world-space transform node.
//
// Parameters:
//   - node: the world node
//
// Returns:
//   - ModelBuilderOption: a function that applies the node to a model
func WithWorld(node transform.SpaceMatrix) ModelBuilderOption {
	return func(m *model) {
		if node != nil {
			m.world = node
		}
	}
}
