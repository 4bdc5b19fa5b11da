package renderer

import (
	"io/fs"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/profiler"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithClearColor sets the color the drawing buffer is cleared to every frame. Defaults to black.
//
// Parameters:
//   - color: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color to a renderer
func WithClearColor(color common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = color
	}
}

// WithWorkerPool sets the pool shader sources are loaded on. A pool given here is not stopped
// by Release.
//
// Parameters:
//   - pool: the worker pool
//
// Returns:
//   - RendererBuilderOption: a function that applies the pool to a renderer
func WithWorkerPool(pool worker.DynamicWorkerPool) RendererBuilderOption {
	return func(r *renderer) {
		r.pool = pool
	}
}

// WithLoaderWorkers sets the number of workers of the pool the renderer creates when none is
// given through WithWorkerPool.
//
// Parameters:
//   - n: the worker count, ignored when not positive
//
// Returns:
//   - RendererBuilderOption: a function that applies the worker count to a renderer
func WithLoaderWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		if n > 0 {
			r.loaderWorkers = n
		}
	}
}

// WithShaderFS sets the file system CreateProgram reads shader stages from.
//
// Parameters:
//   - fsys: the shader file system
//
// Returns:
//   - RendererBuilderOption: a function that applies the file system to a renderer
func WithShaderFS(fsys fs.FS) RendererBuilderOption {
	return func(r *renderer) {
		r.shaderFS = fsys
	}
}

// WithPreProcessor sets the pre-processor resolving #include directives of loaded shaders.
//
// Parameters:
//   - pp: the pre-processor
//
// Returns:
//   - RendererBuilderOption: a function that applies the pre-processor to a renderer
func WithPreProcessor(pp shader.PreProcessor) RendererBuilderOption {
	return func(r *renderer) {
		r.preProcessor = pp
	}
}

// WithLogger sets the logger the renderer and its programs report on.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger to a renderer
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger.Named("renderer")
		}
	}
}

// WithProfiler sets the profiler receiving per-frame timings and draw counts.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - RendererBuilderOption: a function that applies the profiler to a renderer
func WithProfiler(p *profiler.Profiler) RendererBuilderOption {
	return func(r *renderer) {
		r.profiler = p
	}
}
