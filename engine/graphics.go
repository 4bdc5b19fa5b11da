package engine

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/breakout/engine/renderer"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend/glbackend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend/wgpubackend"
	"github.com/Carmen-Shannon/breakout/engine/window"
	"go.uber.org/zap"
)

// ErrNoWindow is returned by NewContext when a windowed backend is requested without a window.
var ErrNoWindow = errors.New("engine: backend requires a window")

// ClientAPI returns the window client API a backend needs.
//
// Parameters:
//   - kind: the backend type
//
// Returns:
//   - window.ClientAPI: OpenGL for the GL backend, none otherwise
func ClientAPI(kind renderer.BackendType) window.ClientAPI {
	if kind == renderer.BackendTypeGL {
		return window.ClientAPIOpenGL
	}
	return window.ClientAPINone
}

// NewContext creates the graphics context of a backend over win. The headless backend
// ignores win and records calls only.
//
// Parameters:
//   - kind: the backend type
//   - win: the window to draw into, may be nil for the headless backend
//   - mode: the presentation mode
//   - logger: the parent logger for driver events
//
// Returns:
//   - backend.Context: the graphics context
//   - error: ErrNoWindow, or an error if the driver failed to initialize
func NewContext(kind renderer.BackendType, win window.Window, mode renderer.PresentMode, logger *zap.Logger) (backend.Context, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	vsync := mode == renderer.PresentModeVSync

	switch kind {
	case renderer.BackendTypeHeadless:
		width, height := 800, 600
		if win != nil {
			width, height = win.FramebufferSize()
		}
		return backend.NewHeadless(backend.WithDrawingBufferSize(width, height)), nil

	case renderer.BackendTypeGL:
		if win == nil {
			return nil, ErrNoWindow
		}
		if win.ClientAPI() != window.ClientAPIOpenGL {
			return nil, fmt.Errorf("gl backend needs an %s window, got %s", window.ClientAPIOpenGL, win.ClientAPI())
		}
		win.MakeContextCurrent()
		ctx, err := glbackend.NewContext(win, glbackend.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if vsync {
			win.SwapInterval(1)
		} else {
			win.SwapInterval(0)
		}
		return ctx, nil

	case renderer.BackendTypeWGPU:
		if win == nil {
			return nil, ErrNoWindow
		}
		return wgpubackend.NewContext(win.SurfaceDescriptor(), win.FramebufferSize,
			wgpubackend.WithVSync(vsync),
			wgpubackend.WithLogger(logger),
		)

	default:
		return nil, fmt.Errorf("unknown backend %s", kind)
	}
}
