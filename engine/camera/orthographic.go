package camera

import "github.com/go-gl/mathgl/mgl32"

// orthographicCamera is the implementation of the OrthographicCamera interface.
type orthographicCamera struct {
	*lens

	width  float32
	height float32
	zoom   float32
}

// OrthographicCamera is a Camera whose projection spans the drawing buffer, centred at its
// midpoint. Zoom is the number of pixels per world unit.
type OrthographicCamera interface {
	Camera

	// Zoom returns the number of pixels per world unit.
	Zoom() float32

	// SetZoom sets the number of pixels per world unit. Non-positive values are ignored.
	SetZoom(zoom float32)

	// Extents returns the visible half width and half height in world units.
	Extents() (halfWidth, halfHeight float32)
}

var _ OrthographicCamera = &orthographicCamera{}

// NewOrthographicCamera creates an orthographic camera over an 800x600 viewport until the
// first Resize.
//
// Parameters:
//   - zoom: pixels per world unit, values <= 0 fall back to 1
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - OrthographicCamera: the new camera
func NewOrthographicCamera(zoom float32, options ...CameraBuilderOption) OrthographicCamera {
	c := &orthographicCamera{
		lens:   newLens(),
		width:  800,
		height: 600,
		zoom:   1,
	}
	c.aspect = c.width / c.height
	c.project = func() mgl32.Mat4 {
		hw, hh := c.extents()
		return mgl32.Ortho(-hw, hw, -hh, hh, c.near, c.far)
	}

	for _, opt := range options {
		opt(c.lens)
	}
	c.SetZoom(zoom)
	return c
}

func (c *orthographicCamera) extents() (float32, float32) {
	return c.width / (2 * c.zoom), c.height / (2 * c.zoom)
}

func (c *orthographicCamera) Extents() (float32, float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extents()
}

func (c *orthographicCamera) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *orthographicCamera) SetZoom(zoom float32) {
	if zoom <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = zoom
	c.dirty = true
}

func (c *orthographicCamera) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width = float32(width)
	c.height = float32(height)
	c.aspect = c.width / c.height
	c.dirty = true
}
