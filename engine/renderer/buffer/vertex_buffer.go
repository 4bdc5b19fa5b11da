package buffer

import (
	"sync"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
)

// NamedAttribute pairs an Attribute with the program input it feeds.
type NamedAttribute struct {
	Input     string
	Attribute Attribute
}

// float32VertexBuffer is the implementation of the Float32VertexBuffer interface.
type float32VertexBuffer struct {
	*bufferObject

	attrMu     *sync.Mutex
	data       []float32
	attributes []NamedAttribute
}

// Float32VertexBuffer is a vertex buffer of float32 components feeding one or more named
// program inputs.
type Float32VertexBuffer interface {
	BufferObject

	// Data returns the raw components.
	Data() []float32

	// Attach adds an attribute that feeds the named program input. Attributes are enabled
	// in attachment order when a geometry composes the buffer.
	//
	// Parameters:
	//   - input: the program input name, e.g. "a_position"
	//   - attribute: the layout of the input within the buffer
	Attach(input string, attribute Attribute)

	// Attributes returns the attached attributes in attachment order.
	Attributes() []NamedAttribute

	// ComponentWidth returns the number of components per vertex: the sum of attached attribute sizes.
	ComponentWidth() int

	// VertexCount returns the number of vertices: the component count divided by the
	// component width.
	//
	// Returns:
	//   - int: the vertex count
	//   - error: ErrNoAttributes if nothing is attached yet
	VertexCount() (int, error)
}

var _ Float32VertexBuffer = &float32VertexBuffer{}

// NewFloat32VertexBuffer creates a vertex buffer over data. Defaults to StaticDraw usage.
//
// Parameters:
//   - data: the vertex components, interleaved per the attributes attached later
//   - options: variadic list of BufferBuilderOption functions
//
// Returns:
//   - Float32VertexBuffer: the new vertex buffer
//   - error: *UnsupportedUsageError if the configured usage is not a static usage
func NewFloat32VertexBuffer(data []float32, options ...BufferBuilderOption) (Float32VertexBuffer, error) {
	vb := &float32VertexBuffer{
		attrMu: &sync.Mutex{},
		data:   data,
	}
	b, err := newBufferObject(backend.ArrayBuffer, backend.Float32, len(data), func() []byte {
		return common.SliceToBytes(vb.data)
	}, options...)
	if err != nil {
		return nil, err
	}
	vb.bufferObject = b
	return vb, nil
}

func (v *float32VertexBuffer) Data() []float32 {
	return v.data
}

func (v *float32VertexBuffer) Attach(input string, attribute Attribute) {
	v.attrMu.Lock()
	defer v.attrMu.Unlock()
	v.attributes = append(v.attributes, NamedAttribute{Input: input, Attribute: attribute})
}

func (v *float32VertexBuffer) Attributes() []NamedAttribute {
	v.attrMu.Lock()
	defer v.attrMu.Unlock()
	out := make([]NamedAttribute, len(v.attributes))
	copy(out, v.attributes)
	return out
}

func (v *float32VertexBuffer) ComponentWidth() int {
	v.attrMu.Lock()
	defer v.attrMu.Unlock()
	width := 0
	for _, a := range v.attributes {
		width += a.Attribute.Size
	}
	return width
}

func (v *float32VertexBuffer) VertexCount() (int, error) {
	width := v.ComponentWidth()
	if width == 0 {
		return 0, ErrNoAttributes
	}
	return len(v.data) / width, nil
}
