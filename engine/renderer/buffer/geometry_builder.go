package buffer

import "github.com/Carmen-Shannon/breakout/engine/renderer/backend"

// GeometryBuilderOption is a function that configures a Geometry.
type GeometryBuilderOption func(*geometry)

// WithIndexBuffer sets the index buffer of a Geometry. Draws become indexed.
//
// Parameters:
//   - ib: the index buffer
//
// Returns:
//   - GeometryBuilderOption: a function that applies the index buffer to a geometry
func WithIndexBuffer(ib Uint16IndexBuffer) GeometryBuilderOption {
	return func(g *geometry) {
		g.indexBuffer = ib
	}
}

// WithDrawMode sets the primitive topology of a Geometry. Defaults to backend.Triangles.
//
// Parameters:
//   - mode: the draw mode
//
// Returns:
//   - GeometryBuilderOption: a function that applies the draw mode to a geometry
func WithDrawMode(mode backend.DrawMode) GeometryBuilderOption {
	return func(g *geometry) {
		g.mode = mode
	}
}

// WithVertexCount sets an explicit vertex count for non-indexed draws instead of deriving it
// from the first vertex buffer's attributes.
//
// Parameters:
//   - count: the number of vertices to draw
//
// Returns:
//   - GeometryBuilderOption: a function that applies the vertex count to a geometry
func WithVertexCount(count int) GeometryBuilderOption {
	return func(g *geometry) {
		g.vertexCount = count
	}
}
