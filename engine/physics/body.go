package physics

import (
	"sync"

	"github.com/Carmen-Shannon/breakout/engine/transform"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// body is the implementation of the Body interface.
type body struct {
	mu *sync.Mutex

	node     transform.SpaceMatrix
	velocity mgl32.Vec2
	maxSpeed float32
	force    Force

	bounded  bool
	min, max mgl32.Vec2
}

// Body moves a transform node by a velocity that its force chain changes every step.
type Body interface {
	// Node returns the transform node the body moves.
	Node() transform.SpaceMatrix

	// Velocity returns the current velocity.
	Velocity() mgl32.Vec2

	// SetVelocity replaces the current velocity.
	SetVelocity(v mgl32.Vec2)

	// SetForce replaces the force chain. nil means no force.
	SetForce(f Force)

	// Step applies the force chain for dt seconds, caps the speed and moves the node.
	//
	// Parameters:
	//   - dt: the step in seconds
	Step(dt float32)
}

var _ Body = &body{}

// NewBody creates a Body moving node.
//
// Parameters:
//   - node: the transform node to move, required
//   - options: variadic list of BodyBuilderOption functions
//
// Returns:
//   - Body: the new body
func NewBody(node transform.SpaceMatrix, options ...BodyBuilderOption) Body {
	if node == nil {
		panic("physics: NewBody requires a transform node")
	}
	b := &body{
		mu:    &sync.Mutex{},
		node:  node,
		force: NetForce{},
	}

	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *body) Node() transform.SpaceMatrix {
	return b.node
}

func (b *body) Velocity() mgl32.Vec2 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.velocity
}

func (b *body) SetVelocity(v mgl32.Vec2) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.velocity = v
}

func (b *body) SetForce(f Force) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.force = orNet(f)
}

func (b *body) Step(dt float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v := b.force.Apply(b.velocity, dt)
	if b.maxSpeed > 0 {
		for i := range v {
			v[i] = math32.Copysign(math32.Min(math32.Abs(v[i]), b.maxSpeed), v[i])
		}
	}

	position := b.node.Position()
	for _, axis := range []transform.Axis{transform.AxisX, transform.AxisY} {
		if v[axis] == 0 {
			continue
		}
		next := position.Axis(axis) + v[axis]*dt
		if b.bounded {
			if next < b.min[axis] || next > b.max[axis] {
				next = math32.Max(b.min[axis], math32.Min(b.max[axis], next))
				v[axis] = 0
			}
		}
		position.ResetAxis(next, axis)
	}
	b.velocity = v
}
