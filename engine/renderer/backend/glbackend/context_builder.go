package glbackend

import "go.uber.org/zap"

// ContextBuilderOption is a function that configures an OpenGL context.
type ContextBuilderOption func(*glContext)

// WithLogger sets the logger used for driver events.
//
// Parameters:
//   - logger: the parent logger, a "gl" child is derived from it
//
// Returns:
//   - ContextBuilderOption: a function that applies the logger to a context
func WithLogger(logger *zap.Logger) ContextBuilderOption {
	return func(c *glContext) {
		if logger != nil {
			c.logger = logger.Named("gl")
		}
	}
}
