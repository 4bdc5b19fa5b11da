package model

import (
	"testing"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/registry"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/material"
	"github.com/Carmen-Shannon/breakout/engine/renderer/program"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/Carmen-Shannon/breakout/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 410 core
in vec2 a_position;
uniform mat4 u_model;
uniform mat4 u_local;
uniform mat4 u_view;
void main() {
	gl_Position = u_view * u_model * u_local * vec4(a_position, 0.0, 1.0);
}
`

const fragmentSource = `#version 410 core
uniform vec3 u_color;
out vec4 frag_color;
void main() {
	frag_color = vec4(u_color, 1.0);
}
`

func newBrick(t *testing.T) Model {
	t.Helper()
	plane, err := registry.NewRegistry().Plane()
	require.NoError(t, err)
	return NewModel(plane, material.NewBasicMaterial(material.WithColor(common.ColorYellow)), WithName("brick"))
}

func TestCloneSharesGeometry(t *testing.T) {
	brick1 := newBrick(t)
	brick1.World().Position().Reset(3, 1)
	brick2 := brick1.Clone()

	assert.Same(t, brick1.Geometry(), brick2.Geometry())
	assert.NotSame(t, brick1.Material(), brick2.Material())
	assert.NotSame(t, brick1.World(), brick2.World())
	assert.Equal(t, "brick", brick2.Name())

	brick2.Material().(material.BasicMaterial).SetColor(common.ColorRed)
	assert.Equal(t, common.ColorYellow, brick1.Material().(material.BasicMaterial).Color())

	brick2.World().Position().Shift(1, transform.AxisX)
	assert.Equal(t, float32(3), brick1.World().Position().X())
	assert.Equal(t, float32(4), brick2.World().Position().X())
}

func TestMatrixIsWorldTimesLocal(t *testing.T) {
	local := transform.NewSpaceMatrix(transform.WithScale(0.5, 0.5))
	world := transform.NewSpaceMatrix(transform.WithPosition(2, -1))
	plane, err := registry.NewRegistry().Plane()
	require.NoError(t, err)
	m := NewModel(plane, nil, WithLocal(local), WithWorld(world))

	assert.True(t, m.Matrix().ApproxEqual(world.Matrix().Mul4(local.Matrix())))
	assert.Equal(t, common.ColorWhite, m.Material().(material.BasicMaterial).Color())
}

func TestDraw(t *testing.T) {
	ctx := backend.NewHeadless()
	p, err := program.Build(ctx, []shader.Source{
		{Stage: shader.StageVertex, Code: vertexSource},
		{Stage: shader.StageFragment, Code: fragmentSource},
	})
	require.NoError(t, err)

	brick := newBrick(t)
	brick.World().Position().Reset(1, 2)
	brick.Local().Scale().Reset(2, 2)
	require.NoError(t, brick.Compose(ctx, p))

	p.Use(ctx)
	require.NoError(t, brick.Draw(ctx, p))

	world, ok := ctx.LastUniform(ModelUniform)
	require.True(t, ok)
	assert.Equal(t, brick.World().Matrix(), world)

	local, ok := ctx.LastUniform(LocalUniform)
	require.True(t, ok)
	assert.Equal(t, mgl32.Scale3D(2, 2, 1), local)

	color, ok := ctx.LastUniform(material.ColorUniform)
	require.True(t, ok)
	assert.Equal(t, common.ColorYellow.Vec3(), color)

	draws := ctx.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, 6, draws[0].Count)

	require.NoError(t, brick.Decompose(ctx))
	assert.Zero(t, ctx.Stats().LiveBuffers)
}

func TestNewModelRequiresGeometry(t *testing.T) {
	assert.PanicsWithValue(t, "model: NewModel requires a geometry", func() {
		NewModel(nil, nil)
	})
}
