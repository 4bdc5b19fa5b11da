package camera

import "github.com/go-gl/mathgl/mgl32"

// perspectiveCamera is the implementation of a Camera with a symmetric perspective projection.
type perspectiveCamera struct {
	*lens
}

var _ Camera = &perspectiveCamera{}

// NewPerspectiveCamera creates a perspective Camera. Defaults: 45 degree field of view,
// aspect 1, near 0.1, far 100, one unit in front of the origin.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the new camera
func NewPerspectiveCamera(options ...CameraBuilderOption) Camera {
	c := &perspectiveCamera{lens: newLens()}
	c.project = func() mgl32.Mat4 {
		return mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	}

	for _, opt := range options {
		opt(c.lens)
	}
	return c
}

func (c *perspectiveCamera) Resize(width, height int) {
	if height <= 0 {
		return
	}
	c.SetAspect(float32(width) / float32(height))
}
