package program

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var lastID atomic.Uint64

// program is the implementation of the Program interface.
type program struct {
	id     uint64
	name   string
	logger *zap.Logger
	handle backend.Program

	attributes     map[string]shader.Variable
	uniforms       map[string]shader.Variable
	attributeOrder []string
	uniformOrder   []string
}

// Program is a linked pair of shader stages with its reflected input and uniform tables.
// Lookups by name are built once at link time; a name that is not found is reported as a
// distinct outcome, never as a sentinel location.
type Program interface {
	// ID returns the process-wide identifier assigned at construction. Identifiers strictly
	// increase and are never reused.
	//
	// Returns:
	//   - uint64: the program id
	ID() uint64

	// Name returns the display name given with WithName.
	Name() string

	// Handle returns the GPU program handle, 0 once deleted.
	Handle() backend.Program

	// Attribute looks up an active vertex input by name.
	//
	// Parameters:
	//   - name: the input name
	//
	// Returns:
	//   - shader.Variable: the reflected input
	//   - bool: false if the program has no such active input
	Attribute(name string) (shader.Variable, bool)

	// RequireAttribute looks up an active vertex input that must exist.
	//
	// Parameters:
	//   - name: the input name
	//
	// Returns:
	//   - shader.Variable: the reflected input
	//   - error: *MissingInputError if the program has no such active input
	RequireAttribute(name string) (shader.Variable, error)

	// Uniform looks up an active uniform by name.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - shader.Variable: the reflected uniform
	//   - bool: false if the program has no such active uniform
	Uniform(name string) (shader.Variable, bool)

	// Attributes returns the active inputs in reflection order.
	Attributes() []shader.Variable

	// Uniforms returns the active uniforms in reflection order.
	Uniforms() []shader.Variable

	// UpdateProperty uploads a value to the named uniform of this program. The program must
	// be in use. Unknown names are ignored so optional uniforms can be skipped.
	//
	// Parameters:
	//   - ctx: the graphics context
	//   - name: the uniform name
	//   - value: mgl32.Mat4, mgl32.Vec3 or mgl32.Vec2 matching the uniform's type
	//
	// Returns:
	//   - error: *UnsupportedUniformTypeError or *PropertyTypeError
	UpdateProperty(ctx backend.Context, name string, value any) error

	// Use makes the program current.
	Use(ctx backend.Context)

	// Delete releases the GPU program. Deleting twice does nothing.
	Delete(ctx backend.Context)
}

var _ Program = &program{}

func newProgram(options ...ProgramBuilderOption) *program {
	p := &program{
		id:         lastID.Add(1),
		logger:     zap.NewNop(),
		attributes: make(map[string]shader.Variable),
		uniforms:   make(map[string]shader.Variable),
	}

	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *program) ID() uint64 {
	return p.id
}

func (p *program) Name() string {
	return p.name
}

func (p *program) Handle() backend.Program {
	return p.handle
}

func (p *program) Attribute(name string) (shader.Variable, bool) {
	v, ok := p.attributes[name]
	return v, ok
}

func (p *program) RequireAttribute(name string) (shader.Variable, error) {
	v, ok := p.attributes[name]
	if !ok {
		return shader.Variable{}, &MissingInputError{Program: p.id, Name: name}
	}
	return v, nil
}

func (p *program) Uniform(name string) (shader.Variable, bool) {
	v, ok := p.uniforms[name]
	return v, ok
}

func (p *program) Attributes() []shader.Variable {
	out := make([]shader.Variable, 0, len(p.attributeOrder))
	for _, name := range p.attributeOrder {
		out = append(out, p.attributes[name])
	}
	return out
}

func (p *program) Uniforms() []shader.Variable {
	out := make([]shader.Variable, 0, len(p.uniformOrder))
	for _, name := range p.uniformOrder {
		out = append(out, p.uniforms[name])
	}
	return out
}

func (p *program) UpdateProperty(ctx backend.Context, name string, value any) error {
	u, ok := p.uniforms[name]
	if !ok {
		return nil
	}
	loc := backend.Location(u.Location)

	switch u.Type {
	case shader.TypeMat4:
		m, ok := value.(mgl32.Mat4)
		if !ok {
			return &PropertyTypeError{Name: name, Type: u.Type, Value: value}
		}
		ctx.UniformMatrix4fv(loc, m)
	case shader.TypeVec3:
		v, ok := value.(mgl32.Vec3)
		if !ok {
			return &PropertyTypeError{Name: name, Type: u.Type, Value: value}
		}
		ctx.Uniform3fv(loc, v)
	case shader.TypeVec2:
		v, ok := value.(mgl32.Vec2)
		if !ok {
			return &PropertyTypeError{Name: name, Type: u.Type, Value: value}
		}
		ctx.Uniform2fv(loc, v)
	default:
		return &UnsupportedUniformTypeError{Name: name, Type: u.Type}
	}
	return nil
}

func (p *program) Use(ctx backend.Context) {
	ctx.UseProgram(p.handle)
}

func (p *program) Delete(ctx backend.Context) {
	if p.handle == 0 {
		return
	}
	ctx.DeleteProgram(p.handle)
	p.handle = 0
}
