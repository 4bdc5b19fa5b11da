// Package camera provides the perspective and orthographic cameras that upload the view
// matrix of a frame.
package camera

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/program"
	"github.com/Carmen-Shannon/breakout/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// ViewUniform is the uniform a camera uploads its view matrix to.
const ViewUniform = "u_view"

// lens is the state shared by every camera variant. The projection is recomputed lazily by
// the variant's project function on the first read after a parameter change.
type lens struct {
	mu *sync.Mutex

	fov    float32
	aspect float32
	near   float32
	far    float32

	position *transform.Vector2
	distance float32

	projection mgl32.Mat4
	dirty      bool
	recomputes int

	project func() mgl32.Mat4
}

// Camera holds the projection parameters of a view and produces the view matrix pushed to
// every program once per frame.
type Camera interface {
	// Fov returns the field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Distance returns how far the camera sits in front of the z = 0 plane.
	Distance() float32

	// SetFov sets the field of view. The value is given in degrees and stored in radians.
	//
	// Parameters:
	//   - degrees: field of view in degrees
	SetFov(degrees float32)

	// SetAspect sets the aspect ratio (width / height).
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	SetFar(far float32)

	// SetDistance sets how far the camera sits in front of the z = 0 plane.
	SetDistance(distance float32)

	// Position returns the camera's position on the x/y plane.
	Position() *transform.Vector2

	// Projection returns the projection matrix, recomputing it first if a parameter changed.
	Projection() mgl32.Mat4

	// View returns the projection combined with the inverse camera translation.
	View() mgl32.Mat4

	// Dirty reports whether the cached projection is stale.
	Dirty() bool

	// Resize adapts the projection to a new drawing buffer size.
	//
	// Parameters:
	//   - width: the width in pixels
	//   - height: the height in pixels
	Resize(width, height int)

	// Draw uploads the view matrix to the program's u_view uniform. The program must be in use.
	//
	// Parameters:
	//   - ctx: the graphics context
	//   - p: the program in use
	//
	// Returns:
	//   - error: an error if the upload is rejected
	Draw(ctx backend.Context, p program.Program) error
}

func newLens() *lens {
	return &lens{
		mu:       &sync.Mutex{},
		fov:      mgl32.DegToRad(45),
		aspect:   1,
		near:     0.1,
		far:      100,
		position: transform.NewVector2(0, 0, nil),
		distance: 1,
		dirty:    true,
	}
}

func (l *lens) Fov() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fov
}

func (l *lens) Aspect() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.aspect
}

func (l *lens) Near() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.near
}

func (l *lens) Far() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.far
}

func (l *lens) Distance() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.distance
}

func (l *lens) SetFov(degrees float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fov = mgl32.DegToRad(degrees)
	l.dirty = true
}

func (l *lens) SetAspect(aspect float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.aspect = aspect
	l.dirty = true
}

func (l *lens) SetNear(near float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.near = near
	l.dirty = true
}

func (l *lens) SetFar(far float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.far = far
	l.dirty = true
}

func (l *lens) SetDistance(distance float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.distance = distance
}

func (l *lens) Position() *transform.Vector2 {
	return l.position
}

func (l *lens) Projection() mgl32.Mat4 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.dirty {
		l.projection = l.project()
		l.dirty = false
		l.recomputes++
	}
	return l.projection
}

func (l *lens) View() mgl32.Mat4 {
	projection := l.Projection()
	l.mu.Lock()
	defer l.mu.Unlock()
	return projection.Mul4(mgl32.Translate3D(-l.position.X(), -l.position.Y(), -l.distance))
}

func (l *lens) Dirty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dirty
}

func (l *lens) Draw(ctx backend.Context, p program.Program) error {
	if err := p.UpdateProperty(ctx, ViewUniform, l.View()); err != nil {
		return fmt.Errorf("failed to upload view matrix: %w", err)
	}
	return nil
}
