package camera

import (
	"testing"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/program"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/Carmen-Shannon/breakout/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fragmentSource = `#version 410 core
out vec4 frag_color;
void main() {
	frag_color = vec4(1.0);
}
`

func buildProgram(t *testing.T, ctx backend.Context, vertex string) program.Program {
	t.Helper()
	p, err := program.Build(ctx, []shader.Source{
		{Stage: shader.StageVertex, Code: vertex},
		{Stage: shader.StageFragment, Code: fragmentSource},
	})
	require.NoError(t, err)
	return p
}

func TestDefaults(t *testing.T) {
	c := NewPerspectiveCamera()

	assert.InDelta(t, mgl32.DegToRad(45), c.Fov(), 1e-6)
	assert.Equal(t, float32(1), c.Aspect())
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.True(t, c.Dirty())
}

func TestFovIsStoredInRadians(t *testing.T) {
	c := NewPerspectiveCamera(WithFov(90))
	assert.InDelta(t, mgl32.DegToRad(90), c.Fov(), 1e-6)

	c.SetFov(60)
	assert.InDelta(t, mgl32.DegToRad(60), c.Fov(), 1e-6)
}

func TestProjectionIsLazy(t *testing.T) {
	c := NewPerspectiveCamera(WithAspect(2)).(*perspectiveCamera)

	first := c.Projection()
	assert.False(t, c.Dirty())
	assert.Equal(t, first, c.Projection())
	assert.Equal(t, 1, c.recomputes)
	assert.True(t, first.ApproxEqual(mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 100)))

	c.SetNear(1)
	c.SetFar(10)
	assert.True(t, c.Dirty())
	updated := c.Projection()
	assert.Equal(t, 2, c.recomputes)
	assert.True(t, updated.ApproxEqual(mgl32.Perspective(mgl32.DegToRad(45), 2, 1, 10)))
}

func TestPerspectiveResize(t *testing.T) {
	c := NewPerspectiveCamera()
	c.Projection()

	c.Resize(1600, 900)
	assert.True(t, c.Dirty())
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-6)

	c.Resize(100, 0)
	assert.InDelta(t, 16.0/9.0, c.Aspect(), 1e-6)
}

func TestOrthographic(t *testing.T) {
	c := NewOrthographicCamera(50)
	c.Resize(800, 600)

	hw, hh := c.Extents()
	assert.Equal(t, float32(8), hw)
	assert.Equal(t, float32(6), hh)
	assert.InDelta(t, 800.0/600.0, c.Aspect(), 1e-6)
	assert.True(t, c.Projection().ApproxEqual(mgl32.Ortho(-8, 8, -6, 6, 0.1, 100)))

	c.SetZoom(100)
	assert.True(t, c.Dirty())
	assert.True(t, c.Projection().ApproxEqual(mgl32.Ortho(-4, 4, -3, 3, 0.1, 100)))

	c.SetZoom(0)
	assert.Equal(t, float32(100), c.Zoom())
}

func TestView(t *testing.T) {
	c := NewOrthographicCamera(1, WithPosition(2, 1), WithDistance(5))

	expected := c.Projection().Mul4(mgl32.Translate3D(-2, -1, -5))
	assert.True(t, c.View().ApproxEqual(expected))

	c.Position().Shift(1, transform.AxisX)
	expected = c.Projection().Mul4(mgl32.Translate3D(-3, -1, -5))
	assert.True(t, c.View().ApproxEqual(expected))
	assert.Equal(t, float32(5), c.Distance())
}

func TestDrawUploadsView(t *testing.T) {
	ctx := backend.NewHeadless()
	p := buildProgram(t, ctx, `#version 410 core
in vec2 a_position;
uniform mat4 u_view;
void main() {
	gl_Position = u_view * vec4(a_position, 0.0, 1.0);
}
`)
	p.Use(ctx)

	c := NewOrthographicCamera(50)
	require.NoError(t, c.Draw(ctx, p))

	assert.Equal(t, 1, ctx.Uploads(ViewUniform))
	view, ok := ctx.LastUniform(ViewUniform)
	require.True(t, ok)
	assert.Equal(t, c.View(), view)
}

func TestDrawWithoutViewUniform(t *testing.T) {
	ctx := backend.NewHeadless()
	p := buildProgram(t, ctx, `#version 410 core
in vec2 a_position;
void main() {
	gl_Position = vec4(a_position, 0.0, 1.0);
}
`)
	p.Use(ctx)

	require.NoError(t, NewPerspectiveCamera().Draw(ctx, p))
	assert.Zero(t, ctx.Stats().UniformUploads)
}
