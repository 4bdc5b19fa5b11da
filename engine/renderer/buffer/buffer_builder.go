package buffer

import "github.com/Carmen-Shannon/breakout/engine/renderer/backend"

// BufferBuilderOption is a function that configures a buffer object.
type BufferBuilderOption func(*bufferObject)

// WithUsage sets the upload hint of a buffer. The value is validated by the constructor.
//
// Parameters:
//   - usage: one of backend.StaticDraw, backend.StaticCopy, backend.StaticRead
//
// Returns:
//   - BufferBuilderOption: a function that applies the usage to a buffer
func WithUsage(usage backend.Usage) BufferBuilderOption {
	return func(b *bufferObject) {
		b.usage = usage
	}
}
