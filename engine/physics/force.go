// Package physics integrates simple velocity forces into transform nodes.
package physics

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Force changes a velocity over a time step. Forces chain: each one wraps the next and
// decides whether it acts before or after it.
type Force interface {
	// Apply returns the velocity after the force acted for dt seconds.
	//
	// Parameters:
	//   - velocity: the velocity before the step
	//   - dt: the step in seconds
	//
	// Returns:
	//   - mgl32.Vec2: the velocity after the step
	Apply(velocity mgl32.Vec2, dt float32) mgl32.Vec2
}

// NetForce is the end of every chain. It leaves the velocity unchanged.
type NetForce struct{}

func (NetForce) Apply(velocity mgl32.Vec2, _ float32) mgl32.Vec2 {
	return velocity
}

type push struct {
	quantity mgl32.Vec2
	next     Force
}

// Push accelerates by quantity per second, then lets next act.
//
// Parameters:
//   - quantity: the acceleration in units per second squared
//   - next: the rest of the chain, nil for NetForce
//
// Returns:
//   - Force: the chained force
func Push(quantity mgl32.Vec2, next Force) Force {
	return &push{quantity: quantity, next: orNet(next)}
}

func (p *push) Apply(velocity mgl32.Vec2, dt float32) mgl32.Vec2 {
	return p.next.Apply(velocity.Add(p.quantity.Mul(dt)), dt)
}

type pull struct {
	quantity mgl32.Vec2
	next     Force
}

// Pull decelerates by quantity per second, then lets next act. The quantity is subtracted
// from the velocity, so Pull(q, nil) is Push(-q, nil).
//
// Parameters:
//   - quantity: the deceleration in units per second squared
//   - next: the rest of the chain, nil for NetForce
//
// Returns:
//   - Force: the chained force
func Pull(quantity mgl32.Vec2, next Force) Force {
	return &pull{quantity: quantity, next: orNet(next)}
}

func (p *pull) Apply(velocity mgl32.Vec2, dt float32) mgl32.Vec2 {
	return p.next.Apply(velocity.Sub(p.quantity.Mul(dt)), dt)
}

type resist struct {
	friction mgl32.Vec2
	next     Force
}

// Resist lets next act, then moves each velocity component toward zero by friction per
// second without crossing zero.
//
// Parameters:
//   - friction: the deceleration magnitude per axis
//   - next: the rest of the chain, nil for NetForce
//
// Returns:
//   - Force: the chained force
func Resist(friction mgl32.Vec2, next Force) Force {
	return &resist{friction: friction, next: orNet(next)}
}

func (r *resist) Apply(velocity mgl32.Vec2, dt float32) mgl32.Vec2 {
	v := r.next.Apply(velocity, dt)
	return mgl32.Vec2{
		dampen(v[0], r.friction[0]*dt),
		dampen(v[1], r.friction[1]*dt),
	}
}

func dampen(velocity, friction float32) float32 {
	return math32.Copysign(math32.Max(0, math32.Abs(velocity)-friction), velocity)
}

func orNet(f Force) Force {
	if f == nil {
		return NetForce{}
	}
	return f
}
