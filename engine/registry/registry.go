// Package registry holds shared GPU resources, such as the unit plane, that many models
// reuse. A Registry is passed by reference to whoever builds models.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/buffer"
)

const (
	// PlaneName is the key the unit plane is registered under.
	PlaneName = "plane"

	// PositionInput is the program input the built-in geometries feed.
	PositionInput = "a_position"
)

var (
	planeVertices = []float32{
		-0.5, -0.5,
		-0.5, 0.5,
		0.5, 0.5,
		0.5, -0.5,
	}
	planeIndices = []uint16{0, 1, 2, 0, 2, 3}
)

type registry struct {
	mu         *sync.Mutex
	geometries map[string]buffer.Geometry
}

// Registry is an explicit store of shared geometry.
type Registry interface {
	// Plane returns the unit plane centred at the origin, two triangles over the square
	// from (-0.5, -0.5) to (0.5, 0.5) feeding a_position. The plane is built on first use
	// and the same Geometry is returned afterwards.
	//
	// Returns:
	//   - buffer.Geometry: the shared plane
	//   - error: an error if the plane's buffers cannot be created
	Plane() (buffer.Geometry, error)

	// Register stores a geometry under name, replacing any previous entry.
	Register(name string, g buffer.Geometry)

	// Geometry looks up a registered geometry.
	Geometry(name string) (buffer.Geometry, bool)

	// Names returns the registered names in sorted order.
	Names() []string
}

var _ Registry = &registry{}

// NewRegistry creates an empty Registry.
func NewRegistry() Registry {
	return &registry{
		mu:         &sync.Mutex{},
		geometries: make(map[string]buffer.Geometry),
	}
}

func (r *registry) Plane() (buffer.Geometry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.geometries[PlaneName]; ok {
		return g, nil
	}

	vb, err := buffer.NewFloat32VertexBuffer(planeVertices)
	if err != nil {
		return nil, fmt.Errorf("failed to create plane vertices: %w", err)
	}
	vb.Attach(PositionInput, buffer.NewAttribute(2))

	ib, err := buffer.NewUint16IndexBuffer(planeIndices)
	if err != nil {
		return nil, fmt.Errorf("failed to create plane indices: %w", err)
	}

	g := buffer.NewGeometry([]buffer.Float32VertexBuffer{vb},
		buffer.WithIndexBuffer(ib),
		buffer.WithDrawMode(backend.Triangles),
	)
	r.geometries[PlaneName] = g
	return g, nil
}

func (r *registry) Register(name string, g buffer.Geometry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.geometries[name] = g
}

func (r *registry) Geometry(name string) (buffer.Geometry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.geometries[name]
	return g, ok
}

func (r *registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.geometries))
	for name := range r.geometries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
