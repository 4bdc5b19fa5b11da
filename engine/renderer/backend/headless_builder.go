package backend

import "github.com/Carmen-Shannon/breakout/engine/renderer/shader"

// HeadlessBuilderOption is a function that configures a Headless context.
type HeadlessBuilderOption func(*headless)

// WithLanguage sets the shading language the headless context reflects sources as.
//
// Parameters:
//   - lang: GLSL or WGSL
//
// Returns:
//   - HeadlessBuilderOption: a function that applies the language to a headless context
func WithLanguage(lang shader.Language) HeadlessBuilderOption {
	return func(h *headless) {
		h.language = lang
	}
}

// WithDrawingBufferSize sets the initial framebuffer size reported by DrawingBufferSize.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - HeadlessBuilderOption: a function that applies the size to a headless context
func WithDrawingBufferSize(width, height int) HeadlessBuilderOption {
	return func(h *headless) {
		h.width = width
		h.height = height
	}
}
