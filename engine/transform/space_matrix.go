// Package transform provides the position/scale nodes that place models and cameras, with
// lazily recomputed matrices.
package transform

import "github.com/go-gl/mathgl/mgl32"

// spaceMatrix is the implementation of the SpaceMatrix interface.
type spaceMatrix struct {
	position *Vector2
	scale    *Vector2

	matrix     mgl32.Mat4
	dirty      bool
	recomputes int
}

// SpaceMatrix is a position/scale pair producing a cached model matrix. A mutation of either
// vector marks the node dirty; the next Matrix call recomputes the matrix and clears the flag.
// The matrix is built from identity by applying the scale, then the translation, so the
// translation is expressed in the scaled frame.
//
// A SpaceMatrix is not safe for concurrent use.
type SpaceMatrix interface {
	// Position returns the node's position. Mutating it marks the node dirty.
	Position() *Vector2

	// Scale returns the node's scale. Mutating it marks the node dirty.
	Scale() *Vector2

	// Matrix returns the model matrix, recomputing it first if the node is dirty.
	//
	// Returns:
	//   - mgl32.Mat4: Scale3D(sx, sy, 1) * Translate3D(px, py, 0)
	Matrix() mgl32.Mat4

	// Dirty reports whether the cached matrix is stale.
	Dirty() bool

	// Clone returns an independent node with the same position and scale.
	Clone() SpaceMatrix
}

var _ SpaceMatrix = &spaceMatrix{}

// NewSpaceMatrix creates a node at the origin with unit scale.
//
// Parameters:
//   - options: variadic list of SpaceMatrixBuilderOption functions
//
// Returns:
//   - SpaceMatrix: the new node, dirty until its matrix is first read
func NewSpaceMatrix(options ...SpaceMatrixBuilderOption) SpaceMatrix {
	s := &spaceMatrix{dirty: true}
	s.position = NewVector2(0, 0, s.invalidate)
	s.scale = NewVector2(1, 1, s.invalidate)

	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *spaceMatrix) invalidate() {
	s.dirty = true
}

func (s *spaceMatrix) Position() *Vector2 {
	return s.position
}

func (s *spaceMatrix) Scale() *Vector2 {
	return s.scale
}

func (s *spaceMatrix) Matrix() mgl32.Mat4 {
	if s.dirty {
		s.matrix = mgl32.Scale3D(s.scale.v[0], s.scale.v[1], 1).
			Mul4(mgl32.Translate3D(s.position.v[0], s.position.v[1], 0))
		s.dirty = false
		s.recomputes++
	}
	return s.matrix
}

func (s *spaceMatrix) Dirty() bool {
	return s.dirty
}

func (s *spaceMatrix) Clone() SpaceMatrix {
	return NewSpaceMatrix(
		WithPosition(s.position.v[0], s.position.v[1]),
		WithScale(s.scale.v[0], s.scale.v[1]),
	)
}
