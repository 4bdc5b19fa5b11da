package model

import (
	"fmt"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/buffer"
	"github.com/Carmen-Shannon/breakout/engine/renderer/material"
	"github.com/Carmen-Shannon/breakout/engine/renderer/program"
	"github.com/Carmen-Shannon/breakout/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ModelUniform receives the world-space matrix of a model.
	ModelUniform = "u_model"

	// LocalUniform receives the local-space matrix of a model.
	LocalUniform = "u_local"
)

// model is the implementation of the Model interface.
type model struct {
	name     string
	geometry buffer.Geometry
	material material.Material
	local    transform.SpaceMatrix
	world    transform.SpaceMatrix
}

// Model defines the interface for a drawable scene entry.
// A Model places a Geometry with a Material using two transform nodes: the local node
// shapes the model around its own origin, the world node places it in the scene.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Geometry retrieves the geometry drawn by this model. Clones share it.
	//
	// Returns:
	//   - buffer.Geometry: the geometry
	Geometry() buffer.Geometry

	// Material retrieves the material of this model.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// Local retrieves the local-space transform node.
	Local() transform.SpaceMatrix

	// World retrieves the world-space transform node.
	World() transform.SpaceMatrix

	// Matrix returns the final placement: the world matrix multiplied by the local matrix.
	//
	// Returns:
	//   - mgl32.Mat4: World * Local
	Matrix() mgl32.Mat4

	// Compose uploads the model's geometry for the given program. Shared geometry is
	// composed once.
	//
	// Parameters:
	//   - ctx: the graphics context
	//   - p: the program the model is drawn with
	//
	// Returns:
	//   - error: an error if the geometry cannot be composed
	Compose(ctx backend.Context, p program.Program) error

	// Draw uploads u_model and u_local, lets the material upload its parameters and draws
	// the geometry. The program must be in use.
	//
	// Parameters:
	//   - ctx: the graphics context
	//   - p: the program in use
	//
	// Returns:
	//   - error: an error if an upload or the draw fails
	Draw(ctx backend.Context, p program.Program) error

	// Decompose releases the model's geometry.
	Decompose(ctx backend.Context) error

	// Clone returns a model that shares the geometry, deep-copies the material and copies
	// both transform nodes by value.
	//
	// Returns:
	//   - Model: the clone
	Clone() Model
}

var _ Model = &model{}

// NewModel creates a Model drawing geometry with mat. A nil material falls back to a white
// BasicMaterial.
//
// Parameters:
//   - geometry: the geometry to draw, required
//   - mat: the material, may be nil
//   - options: variadic list of ModelBuilderOption functions
//
// Returns:
//   - Model: the new model
func NewModel(geometry buffer.Geometry, mat material.Material, options ...ModelBuilderOption) Model {
	if geometry == nil {
		panic("model: NewModel requires a geometry")
	}
	if mat == nil {
		mat = material.NewBasicMaterial()
	}

	m := &model{
		geometry: geometry,
		material: mat,
		local:    transform.NewSpaceMatrix(),
		world:    transform.NewSpaceMatrix(),
	}

	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Geometry() buffer.Geometry {
	return m.geometry
}

func (m *model) Material() material.Material {
	return m.material
}

func (m *model) Local() transform.SpaceMatrix {
	return m.local
}

func (m *model) World() transform.SpaceMatrix {
	return m.world
}

func (m *model) Matrix() mgl32.Mat4 {
	return m.world.Matrix().Mul4(m.local.Matrix())
}

func (m *model) Compose(ctx backend.Context, p program.Program) error {
	if err := m.geometry.Compose(ctx, p); err != nil {
		return fmt.Errorf("failed to compose model %q: %w", m.name, err)
	}
	return nil
}

func (m *model) Draw(ctx backend.Context, p program.Program) error {
	if err := p.UpdateProperty(ctx, ModelUniform, m.world.Matrix()); err != nil {
		return err
	}
	if err := p.UpdateProperty(ctx, LocalUniform, m.local.Matrix()); err != nil {
		return err
	}
	if err := m.material.Draw(ctx, p); err != nil {
		return err
	}
	if err := m.geometry.Draw(ctx); err != nil {
		return fmt.Errorf("failed to draw model %q: %w", m.name, err)
	}
	return nil
}

func (m *model) Decompose(ctx backend.Context) error {
	return m.geometry.Decompose(ctx)
}

func (m *model) Clone() Model {
	return &model{
		name:     m.name,
		geometry: m.geometry,
		material: m.material.Clone(),
		local:    m.local.Clone(),
		world:    m.world.Clone(),
	}
}
