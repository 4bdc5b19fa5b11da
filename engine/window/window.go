package window

import (
	"fmt"

	"github.com/Carmen-Shannon/breakout/engine/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// ClientAPI selects the graphics API the window's context is created for.
type ClientAPI int

const (
	// ClientAPIOpenGL creates an OpenGL 4.1 core profile context with the window.
	ClientAPIOpenGL ClientAPI = iota

	// ClientAPINone creates no context; the surface is handed to WebGPU.
	ClientAPINone
)

func (a ClientAPI) String() string {
	switch a {
	case ClientAPIOpenGL:
		return "opengl"
	case ClientAPINone:
		return "none"
	default:
		return "unknown"
	}
}

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetKeyDownCallback sets the callback for key press events. Presses are also recorded
	// on the keyboard given with WithKeyboard.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// ClientAPI returns the graphics API the window was created for.
	ClientAPI() ClientAPI

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// MakeContextCurrent makes the window's OpenGL context current on the calling thread.
	// It does nothing for ClientAPINone windows.
	MakeContextCurrent()

	// SwapBuffers presents the OpenGL back buffer.
	SwapBuffers()

	// SwapInterval sets how many vertical blanks SwapBuffers waits for. 1 is vsync, 0 is uncapped.
	//
	// Parameters:
	//   - interval: the swap interval
	SwapInterval(interval int)

	// FramebufferSize returns the framebuffer size in pixels, which differs from the window
	// size on high-DPI displays.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	FramebufferSize() (int, int)

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// PollEvents processes pending window events without blocking and dispatches callbacks.
	//
	// Returns:
	//   - bool: false once the window has been closed
	PollEvents() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// clientAPI is the graphics API the context is created for.
	clientAPI ClientAPI

	// size limits applied to interactive resizes.
	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// keyboard receives every press and release when set.
	keyboard input.Keyboard

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onResize  func(width, height int)
	onKeyDown func(keyCode uint32)
	onKeyUp   func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Breakout",
		clientAPI: ClientAPIOpenGL,
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     800,
		height:    600,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

// keyDown records a press and forwards it to the callback.
func (w *engineWindow) keyDown(keyCode uint32) {
	if w.keyboard != nil {
		w.keyboard.Press(keyCode)
	}
	if w.onKeyDown != nil {
		w.onKeyDown(keyCode)
	}
}

// keyUp records a release and forwards it to the callback.
func (w *engineWindow) keyUp(keyCode uint32) {
	if w.keyboard != nil {
		w.keyboard.Release(keyCode)
	}
	if w.onKeyUp != nil {
		w.onKeyUp(keyCode)
	}
}

// resized stores the new framebuffer size and forwards it to the callback.
func (w *engineWindow) resized(width, height int) {
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) ClientAPI() ClientAPI {
	return w.clientAPI
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) MakeContextCurrent() {
	if w.clientAPI == ClientAPIOpenGL {
		platformMakeContextCurrent(w)
	}
}

func (w *engineWindow) SwapBuffers() {
	if w.clientAPI == ClientAPIOpenGL {
		platformSwapBuffers(w)
	}
}

func (w *engineWindow) SwapInterval(interval int) {
	if w.clientAPI == ClientAPIOpenGL {
		platformSwapInterval(interval)
	}
}

func (w *engineWindow) FramebufferSize() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) PollEvents() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
