package material

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/program"
)

// ColorUniform is the uniform a BasicMaterial uploads its color to.
const ColorUniform = "u_color"

// Material pushes the surface parameters of a model to the program in use before its
// geometry is drawn.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Draw uploads the material's uniforms to the program. The program must be in use.
	//
	// Parameters:
	//   - ctx: the graphics context
	//   - p: the program in use
	//
	// Returns:
	//   - error: an error if an upload is rejected
	Draw(ctx backend.Context, p program.Program) error

	// Clone returns a deep copy whose parameters can change independently.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material
}

// material is the implementation of the BasicMaterial interface.
type material struct {
	mu    *sync.Mutex
	name  string
	color common.Color
}

// BasicMaterial is a flat color Material.
type BasicMaterial interface {
	Material

	// Color retrieves the flat color of the material.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// SetColor sets the flat color of the material.
	//
	// Parameters:
	//   - color: the new color
	SetColor(color common.Color)
}

var _ BasicMaterial = &material{}

// NewBasicMaterial creates a new BasicMaterial, white unless configured otherwise.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - BasicMaterial: the newly created material
func NewBasicMaterial(options ...MaterialBuilderOption) BasicMaterial {
	m := &material{
		mu:    &sync.Mutex{},
		color: common.ColorWhite,
	}

	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() common.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.color
}

func (m *material) SetColor(color common.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = color
}

func (m *material) Draw(ctx backend.Context, p program.Program) error {
	if err := p.UpdateProperty(ctx, ColorUniform, m.Color().Vec3()); err != nil {
		return fmt.Errorf("failed to upload material %q color: %w", m.name, err)
	}
	return nil
}

func (m *material) Clone() Material {
	return NewBasicMaterial(WithName(m.name), WithColor(m.Color()))
}
