package renderer

import (
	"fmt"
	"strings"
)

// BackendType identifies the graphics driver a Renderer draws through.
type BackendType int

const (
	// BackendTypeGL selects the OpenGL 4.1 core driver.
	BackendTypeGL BackendType = iota

	// BackendTypeWGPU selects the WebGPU driver.
	BackendTypeWGPU

	// BackendTypeHeadless selects the recording driver that draws nothing.
	BackendTypeHeadless
)

func (b BackendType) String() string {
	switch b {
	case BackendTypeGL:
		return "gl"
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeHeadless:
		return "headless"
	default:
		return fmt.Sprintf("BackendType(%d)", int(b))
	}
}

// ParseBackendType maps a backend name to its BackendType. Names are case-insensitive.
//
// Parameters:
//   - name: one of "gl", "wgpu" or "headless"
//
// Returns:
//   - BackendType: the matching backend
//   - error: an error if the name is unknown
func ParseBackendType(name string) (BackendType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gl", "opengl":
		return BackendTypeGL, nil
	case "wgpu", "webgpu":
		return BackendTypeWGPU, nil
	case "headless":
		return BackendTypeHeadless, nil
	default:
		return 0, fmt.Errorf("unknown renderer backend %q", name)
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)
