package buffer

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inputs map[string]int

func (in inputs) RequireAttribute(name string) (shader.Variable, error) {
	loc, ok := in[name]
	if !ok {
		return shader.Variable{}, fmt.Errorf("missing input %q", name)
	}
	return shader.Variable{Name: name, Type: shader.TypeVec2, Location: loc}, nil
}

func newPlane(t *testing.T) (Float32VertexBuffer, Uint16IndexBuffer) {
	t.Helper()
	vb, err := NewFloat32VertexBuffer([]float32{-0.5, -0.5, -0.5, 0.5, 0.5, 0.5, 0.5, -0.5})
	require.NoError(t, err)
	vb.Attach("a_position", NewAttribute(2))
	ib, err := NewUint16IndexBuffer([]uint16{0, 1, 2, 0, 2, 3}, WithUsage(backend.StaticCopy))
	require.NoError(t, err)
	return vb, ib
}

func TestGeometryComposeIsIdempotent(t *testing.T) {
	ctx := backend.NewHeadless()
	vb, ib := newPlane(t)
	g := NewGeometry([]Float32VertexBuffer{vb}, WithIndexBuffer(ib))

	require.NoError(t, g.Compose(ctx, inputs{"a_position": 0}))
	va := g.VertexArray()
	require.NotZero(t, va)
	require.NoError(t, g.Compose(ctx, inputs{"a_position": 0}))

	assert.Equal(t, va, g.VertexArray())
	stats := ctx.Stats()
	assert.Equal(t, 1, stats.LiveVertexArrays)
	assert.Equal(t, 2, stats.LiveBuffers)
	assert.Equal(t, 1, vb.Owners())
	assert.Equal(t, 1, ib.Owners())
}

func TestGeometryDrawIndexed(t *testing.T) {
	ctx := backend.NewHeadless()
	vb, ib := newPlane(t)
	g := NewGeometry([]Float32VertexBuffer{vb}, WithIndexBuffer(ib))

	assert.ErrorIs(t, g.Draw(ctx), ErrNotComposed)
	require.NoError(t, g.Compose(ctx, inputs{"a_position": 0}))
	require.NoError(t, g.Draw(ctx))

	draws := ctx.Draws()
	require.Len(t, draws, 1)
	assert.True(t, draws[0].Indexed)
	assert.Equal(t, 6, draws[0].Count)
	assert.Equal(t, g.VertexArray(), draws[0].VertexArray)
	assert.Equal(t, backend.Triangles, draws[0].Mode)
}

func TestGeometryDrawArrays(t *testing.T) {
	ctx := backend.NewHeadless()
	vb, _ := newPlane(t)
	g := NewGeometry([]Float32VertexBuffer{vb}, WithDrawMode(backend.LineStrip))

	require.NoError(t, g.Compose(ctx, inputs{"a_position": 0}))
	require.NoError(t, g.Draw(ctx))

	draws := ctx.Draws()
	require.Len(t, draws, 1)
	assert.False(t, draws[0].Indexed)
	assert.Equal(t, 4, draws[0].Count)
	assert.Equal(t, backend.LineStrip, draws[0].Mode)
}

func TestGeometryVertexCountWithoutAttributes(t *testing.T) {
	ctx := backend.NewHeadless()
	vb, err := NewFloat32VertexBuffer([]float32{0, 0, 1, 1, 2, 2})
	require.NoError(t, err)

	g := NewGeometry([]Float32VertexBuffer{vb})
	require.NoError(t, g.Compose(ctx, inputs{}))
	assert.ErrorIs(t, g.Draw(ctx), ErrNoAttributes)

	explicit := NewGeometry([]Float32VertexBuffer{vb}, WithVertexCount(3))
	require.NoError(t, explicit.Compose(ctx, inputs{}))
	require.NoError(t, explicit.Draw(ctx))
	assert.Equal(t, 3, ctx.Draws()[0].Count)
}

func TestGeometryMissingInput(t *testing.T) {
	ctx := backend.NewHeadless()
	vb, ib := newPlane(t)
	g := NewGeometry([]Float32VertexBuffer{vb}, WithIndexBuffer(ib))

	err := g.Compose(ctx, inputs{"a_uv": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a_position")

	assert.Zero(t, g.VertexArray())
	stats := ctx.Stats()
	assert.Zero(t, stats.LiveVertexArrays)
	assert.Zero(t, stats.LiveBuffers)
	assert.Zero(t, vb.Owners())
}

func TestGeometrySharedBuffer(t *testing.T) {
	ctx := backend.NewHeadless()
	vb, ib := newPlane(t)
	a := NewGeometry([]Float32VertexBuffer{vb}, WithIndexBuffer(ib))
	b := NewGeometry([]Float32VertexBuffer{vb}, WithIndexBuffer(ib))

	require.NoError(t, a.Compose(ctx, inputs{"a_position": 0}))
	require.NoError(t, b.Compose(ctx, inputs{"a_position": 0}))
	assert.Equal(t, 2, vb.Owners())
	assert.Equal(t, 2, ctx.Stats().LiveBuffers)

	require.NoError(t, a.Decompose(ctx))
	assert.Equal(t, 2, ctx.Stats().LiveBuffers)
	assert.Equal(t, 1, ctx.Stats().LiveVertexArrays)

	require.NoError(t, b.Decompose(ctx))
	assert.Zero(t, ctx.Stats().LiveBuffers)
	assert.Zero(t, ctx.Stats().LiveVertexArrays)

	assert.NoError(t, b.Decompose(ctx))
}
