package renderer

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/camera"
	"github.com/Carmen-Shannon/breakout/engine/model"
	"github.com/Carmen-Shannon/breakout/engine/profiler"
	"github.com/Carmen-Shannon/breakout/engine/registry"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/material"
	"github.com/Carmen-Shannon/breakout/engine/renderer/program"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/Carmen-Shannon/breakout/engine/scene"
	"github.com/Carmen-Shannon/breakout/engine/transform"
	"github.com/prometheus/client_golang/prometheus/testutil"
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

func sources() []shader.Source {
	return []shader.Source{
		{Name: "basic", Stage: shader.StageVertex, Code: vertexSource},
		{Name: "basic", Stage: shader.StageFragment, Code: fragmentSource},
	}
}

// brickWall lays out columns x rows clones of a single brick under the "material" tag.
func brickWall(t *testing.T, columns, rows int) scene.Scene {
	t.Helper()
	plane, err := registry.NewRegistry().Plane()
	require.NoError(t, err)

	template := model.NewModel(plane, material.NewBasicMaterial(), model.WithName("brick"))
	s := scene.NewScene("bricks", camera.NewOrthographicCamera(100))
	for row := range rows {
		for column := range columns {
			brick := template.Clone()
			brick.World().Position().Shift(float32(column), transform.AxisX)
			brick.World().Position().Shift(float32(row), transform.AxisY)
			s.AddModel("material", brick)
		}
	}
	return s
}

func newTestRenderer(t *testing.T, options ...RendererBuilderOption) (Renderer, backend.Headless) {
	t.Helper()
	ctx := backend.NewHeadless()
	r := NewRenderer(ctx, options...)
	t.Cleanup(r.Release)
	return r, ctx
}

func TestRenderDrawsEveryModelOnce(t *testing.T) {
	r, ctx := newTestRenderer(t)
	_, err := r.CreateProgramFromSource("material", sources())
	require.NoError(t, err)

	s := brickWall(t, 14, 8)
	require.NoError(t, r.Compose(s))
	assert.Equal(t, 2, ctx.Stats().LiveBuffers)
	assert.Equal(t, 1, ctx.Stats().LiveVertexArrays)

	ctx.ResetStats()
	require.NoError(t, r.Render(s, 0.016))

	assert.Len(t, ctx.Draws(), 112)
	assert.Equal(t, 112, ctx.Stats().DrawCalls)
	assert.Equal(t, 1, ctx.Uploads(camera.ViewUniform))
	assert.Equal(t, 112, ctx.Uploads(model.ModelUniform))
	assert.Equal(t, 1, ctx.Stats().Clears)
	assert.Equal(t, 1, ctx.Stats().Presents)
	for _, d := range ctx.Draws() {
		assert.True(t, d.Indexed)
		assert.Equal(t, 6, d.Count)
	}
}

func TestRenderUploadsCameraForEveryProgram(t *testing.T) {
	r, ctx := newTestRenderer(t)
	_, err := r.CreateProgramFromSource("material", sources())
	require.NoError(t, err)
	_, err = r.CreateProgramFromSource("overlay", sources())
	require.NoError(t, err)

	s := brickWall(t, 2, 1)
	require.NoError(t, r.Compose(s))

	ctx.ResetStats()
	require.NoError(t, r.Render(s, 0.016))

	assert.Equal(t, 2, ctx.Uploads(camera.ViewUniform))
	assert.Equal(t, 2, ctx.Stats().DrawCalls)
	assert.Empty(t, s.Models("overlay"))
}

func TestComposeWithoutProgram(t *testing.T) {
	r, _ := newTestRenderer(t)
	err := r.Compose(brickWall(t, 2, 1))
	assert.ErrorIs(t, err, ErrNoProgram)
}

func TestCreateProgramFromSourceReplacesTag(t *testing.T) {
	r, ctx := newTestRenderer(t)
	first, err := r.CreateProgramFromSource("material", sources())
	require.NoError(t, err)
	second, err := r.CreateProgramFromSource("material", sources())
	require.NoError(t, err)

	got, ok := r.Program("material")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, []string{"material"}, r.Tags())
	assert.Equal(t, 1, ctx.Stats().LivePrograms)

	_, ok = r.Program("missing")
	assert.False(t, ok)
}

func TestCreateProgramFromSourceBuildError(t *testing.T) {
	r, _ := newTestRenderer(t)
	_, err := r.CreateProgramFromSource("broken", []shader.Source{
		{Stage: shader.StageVertex, Code: "in vec2 a_position;"},
		{Stage: shader.StageFragment, Code: fragmentSource},
	})

	var compileErr *program.CompileError
	assert.ErrorAs(t, err, &compileErr)
	assert.Empty(t, r.Tags())
}

func TestCreateProgramLoadsFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/basic.vert": {Data: []byte(vertexSource)},
		"shaders/basic.frag": {Data: []byte(fragmentSource)},
	}
	r, _ := newTestRenderer(t, WithShaderFS(fsys), WithLoaderWorkers(1))

	pending := r.CreateProgram("material", "shaders/basic.vert", "shaders/basic.frag")
	assert.Equal(t, "material", pending.Tag())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p, err := pending.Await(ctx)
	require.NoError(t, err)

	registered, ok := r.Program("material")
	require.True(t, ok)
	assert.Same(t, p, registered)

	again, err := pending.Await(ctx)
	require.NoError(t, err)
	assert.Same(t, p, again)
}

func TestCreateProgramMissingFile(t *testing.T) {
	r, _ := newTestRenderer(t, WithShaderFS(fstest.MapFS{}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := r.CreateProgram("material", "basic.vert", "basic.frag").Await(ctx)
	assert.Error(t, err)
	assert.Empty(t, r.Tags())
}

func TestCreateProgramWithoutFS(t *testing.T) {
	r, _ := newTestRenderer(t)
	_, err := r.CreateProgram("material", "basic.vert", "basic.frag").Await(context.Background())
	assert.ErrorIs(t, err, ErrNoShaderFS)
}

func TestAwaitCancelled(t *testing.T) {
	r, _ := newTestRenderer(t)
	pending := newPendingProgram(r.(*renderer), "material")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := pending.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderResizesScene(t *testing.T) {
	r, ctx := newTestRenderer(t)
	_, err := r.CreateProgramFromSource("material", sources())
	require.NoError(t, err)

	s := brickWall(t, 1, 1)
	require.NoError(t, r.Compose(s))
	assert.InDelta(t, 800.0/600.0, s.Camera().Aspect(), 1e-6)

	var resized [2]int
	s.OnResize(func(width, height int) {
		resized = [2]int{width, height}
	})

	require.NoError(t, r.Render(s, 0.016))
	assert.Equal(t, [2]int{}, resized)

	ctx.SetDrawingBufferSize(1024, 512)
	require.NoError(t, r.Render(s, 0.016))
	assert.Equal(t, [2]int{1024, 512}, resized)
	assert.InDelta(t, 2.0, s.Camera().Aspect(), 1e-6)
}

func TestRenderReportsToProfiler(t *testing.T) {
	p := profiler.NewProfiler()
	r, _ := newTestRenderer(t, WithProfiler(p), WithClearColor(common.ColorRed))
	_, err := r.CreateProgramFromSource("material", sources())
	require.NoError(t, err)

	s := brickWall(t, 3, 2)
	require.NoError(t, r.Compose(s))
	require.NoError(t, r.Render(s, 0.016))

	expected := `
# HELP breakout_draw_calls_total Number of draw calls issued
# TYPE breakout_draw_calls_total counter
breakout_draw_calls_total 6
`
	assert.NoError(t, testutil.GatherAndCompare(p.Registry(), strings.NewReader(expected), "breakout_draw_calls_total"))
}

func TestDecomposeReleasesEverything(t *testing.T) {
	r, ctx := newTestRenderer(t)
	_, err := r.CreateProgramFromSource("material", sources())
	require.NoError(t, err)

	s := brickWall(t, 4, 2)
	require.NoError(t, r.Compose(s))
	require.NoError(t, r.Decompose(s))

	stats := ctx.Stats()
	assert.Equal(t, 0, stats.LiveBuffers)
	assert.Equal(t, 0, stats.LiveVertexArrays)
	assert.Equal(t, 0, stats.LivePrograms)
	assert.Empty(t, r.Tags())
}

func TestNewRendererRequiresContext(t *testing.T) {
	assert.PanicsWithValue(t, "renderer: NewRenderer requires a graphics context", func() {
		NewRenderer(nil)
	})
}
