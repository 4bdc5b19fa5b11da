package transform

// SpaceMatrixBuilderOption is a function that configures a SpaceMatrix.
type SpaceMatrixBuilderOption func(*spaceMatrix)

// WithPosition sets the initial position of a SpaceMatrix.
func WithPosition(x, y float32) SpaceMatrixBuilderOption {
	return func(s *spaceMatrix) {
		s.position.v[0], s.position.v[1] = x, y
	}
}

// WithScale sets the initial scale of a SpaceMatrix. Defaults to (1, 1).
func WithScale(x, y float32) SpaceMatrixBuilderOption {
	return func(s *spaceMatrix) {
		s.scale.v[0], s.scale.v[1] = x, y
	}
}
