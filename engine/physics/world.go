package physics

import "sync"

// Simulator advances a simulation by a time step. A scene calls it once per frame.
type Simulator interface {
	Simulate(dt float32)
}

type world struct {
	mu     *sync.Mutex
	bodies []Body
}

// World is a Simulator stepping every added Body in insertion order.
type World interface {
	Simulator

	// Add appends bodies to the world.
	Add(bodies ...Body)

	// Remove removes the first occurrence of each body.
	Remove(bodies ...Body)

	// Bodies returns the bodies in insertion order.
	Bodies() []Body
}

var _ World = &world{}

// NewWorld creates an empty World.
func NewWorld() World {
	return &world{mu: &sync.Mutex{}}
}

func (w *world) Add(bodies ...Body) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bodies = append(w.bodies, bodies...)
}

func (w *world) Remove(bodies ...Body) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, b := range bodies {
		for i, existing := range w.bodies {
			if existing == b {
				w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
				break
			}
		}
	}
}

func (w *world) Bodies() []Body {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

func (w *world) Simulate(dt float32) {
	for _, b := range w.Bodies() {
		b.Step(dt)
	}
}
