package wgpubackend

import (
	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// ContextBuilderOption is a function that configures a WebGPU context before its device is
// created.
type ContextBuilderOption func(*wgpuContext)

// WithVSync selects FIFO presentation when enabled and immediate presentation otherwise.
//
// Parameters:
//   - enabled: whether presentation waits for vertical blank
//
// Returns:
//   - ContextBuilderOption: a function that applies the present mode to a context
func WithVSync(enabled bool) ContextBuilderOption {
	return func(c *wgpuContext) {
		if enabled {
			c.presentMode = wgpu.PresentModeFifo
		} else {
			c.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithUniformCapacity sets the byte size of the per-frame uniform ring. Every draw takes
// one 256 byte slot per uniform of its program.
//
// Parameters:
//   - bytes: the ring size in bytes
//
// Returns:
//   - ContextBuilderOption: a function that applies the capacity to a context
func WithUniformCapacity(bytes uint64) ContextBuilderOption {
	return func(c *wgpuContext) {
		if bytes > 0 {
			c.uniformCapacity = bytes
		}
	}
}

// WithLogger sets the logger used for device and surface events.
//
// Parameters:
//   - logger: the parent logger, a "wgpu" child is derived from it
//
// Returns:
//   - ContextBuilderOption: a function that applies the logger to a context
func WithLogger(logger *zap.Logger) ContextBuilderOption {
	return func(c *wgpuContext) {
		if logger != nil {
			c.logger = logger.Named("wgpu")
		}
	}
}
