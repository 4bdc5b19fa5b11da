package camera

// CameraBuilderOption is a function that configures the parameters shared by every camera.
type CameraBuilderOption func(*lens)

// WithFov sets the camera's field of view.
//
// Parameters:
//   - degrees: field of view in degrees, stored in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(degrees float32) CameraBuilderOption {
	return func(l *lens) {
		l.SetFov(degrees)
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(l *lens) {
		l.SetAspect(aspect)
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(l *lens) {
		l.SetNear(near)
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(l *lens) {
		l.SetFar(far)
	}
}

// WithPosition places the camera on the x/y plane.
//
// Parameters:
//   - x, y: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: functional option to set the position
func WithPosition(x, y float32) CameraBuilderOption {
	return func(l *lens) {
		l.position.Reset(x, y)
	}
}

// WithDistance sets how far the camera sits in front of the z = 0 plane.
//
// Parameters:
//   - distance: distance along +z
//
// Returns:
//   - CameraBuilderOption: functional option to set the distance
func WithDistance(distance float32) CameraBuilderOption {
	return func(l *lens) {
		l.distance = distance
	}
}
