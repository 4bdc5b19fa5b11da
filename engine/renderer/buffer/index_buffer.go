package buffer

import (
	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
)

// uint16IndexBuffer is the implementation of the Uint16IndexBuffer interface.
type uint16IndexBuffer struct {
	*bufferObject
	data []uint16
}

// Uint16IndexBuffer is an element buffer of uint16 indices.
type Uint16IndexBuffer interface {
	BufferObject

	// Data returns the raw indices.
	Data() []uint16
}

var _ Uint16IndexBuffer = &uint16IndexBuffer{}

// NewUint16IndexBuffer creates an index buffer over data. Defaults to StaticDraw usage.
//
// Parameters:
//   - data: the indices
//   - options: variadic list of BufferBuilderOption functions
//
// Returns:
//   - Uint16IndexBuffer: the new index buffer
//   - error: *UnsupportedUsageError if the configured usage is not a static usage
func NewUint16IndexBuffer(data []uint16, options ...BufferBuilderOption) (Uint16IndexBuffer, error) {
	ib := &uint16IndexBuffer{data: data}
	b, err := newBufferObject(backend.ElementArrayBuffer, backend.Uint16, len(data), func() []byte {
		return common.SliceToBytes(ib.data)
	}, options...)
	if err != nil {
		return nil, err
	}
	ib.bufferObject = b
	return ib, nil
}

func (i *uint16IndexBuffer) Data() []uint16 {
	return i.data
}
