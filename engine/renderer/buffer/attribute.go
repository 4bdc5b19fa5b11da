package buffer

import "github.com/Carmen-Shannon/breakout/engine/renderer/backend"

// Attribute describes how a vertex buffer's raw components feed one program input.
type Attribute struct {
	// Size is the number of components per vertex (1-4).
	Size int

	// Normalized maps integer data to [0, 1] or [-1, 1].
	Normalized bool

	// Stride is the byte distance between consecutive vertices, 0 for tightly packed.
	Stride int

	// Offset is the byte offset of the first component.
	Offset int
}

// AttributeBuilderOption is a function that configures an Attribute.
type AttributeBuilderOption func(*Attribute)

// WithNormalized sets the normalized flag of an Attribute.
func WithNormalized(normalized bool) AttributeBuilderOption {
	return func(a *Attribute) {
		a.Normalized = normalized
	}
}

// WithStride sets the byte stride of an Attribute.
func WithStride(stride int) AttributeBuilderOption {
	return func(a *Attribute) {
		a.Stride = stride
	}
}

// WithOffset sets the byte offset of an Attribute.
func WithOffset(offset int) AttributeBuilderOption {
	return func(a *Attribute) {
		a.Offset = offset
	}
}

// NewAttribute creates an Attribute with the given component count.
//
// Parameters:
//   - size: number of components per vertex
//   - options: variadic list of AttributeBuilderOption functions
//
// Returns:
//   - Attribute: the configured attribute
func NewAttribute(size int, options ...AttributeBuilderOption) Attribute {
	a := Attribute{Size: size}
	for _, opt := range options {
		opt(&a)
	}
	return a
}

// Enable describes the attribute to the bound vertex array and marks the input active.
// The location is not validated; resolve it through the program first.
//
// Parameters:
//   - ctx: the graphics context
//   - location: the program input location
//   - elementType: the scalar type of the owning buffer's data
func (a Attribute) Enable(ctx backend.Context, location backend.Location, elementType backend.ElementType) {
	ctx.VertexAttribPointer(location, a.Size, elementType, a.Normalized, a.Stride, a.Offset)
	ctx.EnableVertexAttribArray(location)
}
