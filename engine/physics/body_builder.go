package physics

import "github.com/go-gl/mathgl/mgl32"

// BodyBuilderOption is a function that configures a Body.
type BodyBuilderOption func(*body)

// WithForce sets the force chain acting on a Body.
func WithForce(f Force) BodyBuilderOption {
	return func(b *body) {
		b.force = orNet(f)
	}
}

// WithVelocity sets the initial velocity of a Body.
func WithVelocity(x, y float32) BodyBuilderOption {
	return func(b *body) {
		b.velocity = mgl32.Vec2{x, y}
	}
}

// WithMaxSpeed caps the speed of a Body per axis. 0 disables the cap.
func WithMaxSpeed(speed float32) BodyBuilderOption {
	return func(b *body) {
		b.maxSpeed = speed
	}
}

// WithBounds keeps the node's position inside [min, max]. Hitting a bound stops the body on
// that axis.
func WithBounds(min, max mgl32.Vec2) BodyBuilderOption {
	return func(b *body) {
		b.bounded = true
		b.min, b.max = min, max
	}
}
