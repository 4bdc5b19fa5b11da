package buffer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"go.uber.org/multierr"
)

// AttributeResolver resolves a program input name to its reflected location.
// program.Program satisfies it.
type AttributeResolver interface {
	RequireAttribute(name string) (shader.Variable, error)
}

// geometry is the implementation of the Geometry interface.
type geometry struct {
	mu *sync.Mutex

	vertexBuffers []Float32VertexBuffer
	indexBuffer   Uint16IndexBuffer
	mode          backend.DrawMode
	vertexCount   int

	vertexArray backend.VertexArray
}

// Geometry groups vertex buffers and an optional index buffer into one drawable unit bound
// to a vertex array. A Geometry may be shared by many models; composing it again is a no-op.
type Geometry interface {
	Drawable

	// Compose creates the vertex array, composes and binds every vertex buffer in order while
	// enabling its attributes at the locations the program reports, then composes and binds
	// the index buffer. Composing an already composed geometry does nothing.
	//
	// Parameters:
	//   - ctx: the graphics context
	//   - program: resolves attribute names to locations
	//
	// Returns:
	//   - error: an error if allocation fails or a required input is missing from the program
	Compose(ctx backend.Context, program AttributeResolver) error

	// Decompose unbinds the vertex array, releases the owned buffers and deletes the vertex
	// array. Decomposing a geometry that was never composed does nothing.
	//
	// Parameters:
	//   - ctx: the graphics context
	//
	// Returns:
	//   - error: the combined errors of releasing the owned buffers
	Decompose(ctx backend.Context) error

	// VertexArray returns the vertex array handle, 0 until composed.
	VertexArray() backend.VertexArray

	// VertexBuffers returns the vertex buffers in bind order.
	VertexBuffers() []Float32VertexBuffer

	// IndexBuffer returns the index buffer, or nil for non-indexed geometry.
	IndexBuffer() Uint16IndexBuffer

	// Mode returns the primitive topology.
	Mode() backend.DrawMode

	// Count returns the number of indices (indexed) or vertices (non-indexed) a draw submits.
	//
	// Returns:
	//   - int: the element count
	//   - error: ErrNoAttributes if the vertex count cannot be derived yet
	Count() (int, error)
}

var _ Geometry = &geometry{}

// NewGeometry creates a Geometry over the given vertex buffers.
//
// Parameters:
//   - vertexBuffers: the vertex buffers, bound in this order
//   - options: variadic list of GeometryBuilderOption functions
//
// Returns:
//   - Geometry: the new geometry
func NewGeometry(vertexBuffers []Float32VertexBuffer, options ...GeometryBuilderOption) Geometry {
	g := &geometry{
		mu:            &sync.Mutex{},
		vertexBuffers: vertexBuffers,
		mode:          backend.Triangles,
	}

	for _, opt := range options {
		opt(g)
	}
	return g
}

func (g *geometry) Compose(ctx backend.Context, program AttributeResolver) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.vertexArray != 0 {
		return nil
	}

	va, err := ctx.CreateVertexArray()
	if err != nil {
		return fmt.Errorf("failed to create vertex array: %w", err)
	}
	ctx.BindVertexArray(va)

	var composed []BufferObject
	abort := func(err error) error {
		ctx.BindVertexArray(0)
		for _, b := range composed {
			err = multierr.Append(err, b.Decompose(ctx))
		}
		ctx.DeleteVertexArray(va)
		return err
	}

	for _, vb := range g.vertexBuffers {
		if err := vb.Compose(ctx); err != nil {
			return abort(fmt.Errorf("failed to compose vertex buffer: %w", err))
		}
		composed = append(composed, vb)
		if err := g.enableAttributes(ctx, program, vb); err != nil {
			return abort(err)
		}
	}

	if g.indexBuffer != nil {
		if err := g.indexBuffer.Compose(ctx); err != nil {
			return abort(fmt.Errorf("failed to compose index buffer: %w", err))
		}
		composed = append(composed, g.indexBuffer)
		if err := g.indexBuffer.Bind(ctx); err != nil {
			return abort(err)
		}
	}

	ctx.BindVertexArray(0)
	g.vertexArray = va
	return nil
}

func (g *geometry) enableAttributes(ctx backend.Context, program AttributeResolver, vb Float32VertexBuffer) error {
	if err := vb.Bind(ctx); err != nil {
		return err
	}
	for _, a := range vb.Attributes() {
		input, err := program.RequireAttribute(a.Input)
		if err != nil {
			return err
		}
		a.Attribute.Enable(ctx, backend.Location(input.Location), vb.ElementType())
	}
	return nil
}

func (g *geometry) Draw(ctx backend.Context) error {
	g.mu.Lock()
	va := g.vertexArray
	g.mu.Unlock()

	if va == 0 {
		return ErrNotComposed
	}

	count, err := g.Count()
	if err != nil {
		return err
	}

	ctx.BindVertexArray(va)
	if g.indexBuffer != nil {
		ctx.DrawElements(g.mode, count, g.indexBuffer.ElementType(), 0)
		return nil
	}
	ctx.DrawArrays(g.mode, 0, count)
	return nil
}

func (g *geometry) Decompose(ctx backend.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.vertexArray == 0 {
		return nil
	}

	ctx.BindVertexArray(0)

	var err error
	for _, vb := range g.vertexBuffers {
		err = multierr.Append(err, vb.Decompose(ctx))
	}
	if g.indexBuffer != nil {
		err = multierr.Append(err, g.indexBuffer.Decompose(ctx))
	}

	ctx.DeleteVertexArray(g.vertexArray)
	g.vertexArray = 0
	return err
}

func (g *geometry) VertexArray() backend.VertexArray {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.vertexArray
}

func (g *geometry) VertexBuffers() []Float32VertexBuffer {
	return g.vertexBuffers
}

func (g *geometry) IndexBuffer() Uint16IndexBuffer {
	return g.indexBuffer
}

func (g *geometry) Mode() backend.DrawMode {
	return g.mode
}

func (g *geometry) Count() (int, error) {
	if g.indexBuffer != nil {
		return g.indexBuffer.Count(), nil
	}
	if g.vertexCount > 0 {
		return g.vertexCount, nil
	}
	if len(g.vertexBuffers) == 0 {
		return 0, ErrNoAttributes
	}
	return g.vertexBuffers[0].VertexCount()
}
