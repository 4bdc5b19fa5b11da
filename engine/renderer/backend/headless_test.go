package backend

import (
	"testing"

	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vertexSource = `#version 410 core
in vec2 a_position;
uniform mat4 u_model;
uniform mat4 u_view;
void main() {
	gl_Position = u_view * u_model * vec4(a_position, 0.0, 1.0);
}
`

const fragmentSource = `#version 410 core
uniform vec3 u_color;
out vec4 frag_color;
void main() {
	frag_color = vec4(u_color, 1.0);
}
`

func compile(t *testing.T, h Headless, stage Stage, source string) Shader {
	t.Helper()
	s, err := h.CreateShader(stage)
	require.NoError(t, err)
	h.ShaderSource(s, source)
	h.CompileShader(s)
	return s
}

func TestHeadlessLinkReflectsProgram(t *testing.T) {
	h := NewHeadless()
	p, err := h.CreateProgram()
	require.NoError(t, err)

	h.AttachShader(p, compile(t, h, shader.StageVertex, vertexSource))
	h.AttachShader(p, compile(t, h, shader.StageFragment, fragmentSource))
	h.LinkProgram(p)

	ok, log := h.LinkStatus(p)
	require.True(t, ok, log)

	attrs := h.ActiveAttributes(p)
	require.Len(t, attrs, 1)
	assert.Equal(t, "a_position", attrs[0].Name)
	assert.Equal(t, shader.TypeVec2, attrs[0].Type)

	var names []string
	for _, u := range h.ActiveUniforms(p) {
		names = append(names, u.Name)
	}
	assert.Equal(t, []string{"u_model", "u_view", "u_color"}, names)
}

func TestHeadlessCompileWithoutEntryPoint(t *testing.T) {
	h := NewHeadless()
	s := compile(t, h, shader.StageVertex, "#version 410 core\nin vec2 a_position;\n")

	ok, log := h.CompileStatus(s)
	assert.False(t, ok)
	assert.Contains(t, log, "entry point")
}

func TestHeadlessLinkMissingStage(t *testing.T) {
	h := NewHeadless()
	p, err := h.CreateProgram()
	require.NoError(t, err)

	h.AttachShader(p, compile(t, h, shader.StageVertex, vertexSource))
	h.LinkProgram(p)

	ok, log := h.LinkStatus(p)
	assert.False(t, ok)
	assert.Contains(t, log, "fragment")
	assert.Empty(t, h.ActiveUniforms(p))
}

func TestHeadlessUniformUploads(t *testing.T) {
	h := NewHeadless()
	p, err := h.CreateProgram()
	require.NoError(t, err)
	h.AttachShader(p, compile(t, h, shader.StageVertex, vertexSource))
	h.AttachShader(p, compile(t, h, shader.StageFragment, fragmentSource))
	h.LinkProgram(p)

	locations := make(map[string]Location)
	for _, u := range h.ActiveUniforms(p) {
		locations[u.Name] = u.Location
	}

	h.UseProgram(p)
	h.UniformMatrix4fv(locations["u_view"], mgl32.Ident4())
	h.UniformMatrix4fv(locations["u_view"], mgl32.Translate3D(1, 0, 0))
	h.Uniform3fv(locations["u_color"], mgl32.Vec3{1, 0, 1})

	assert.Equal(t, 2, h.Uploads("u_view"))
	assert.Equal(t, 1, h.Uploads("u_color"))
	assert.Equal(t, 0, h.Uploads("u_model"))

	last, ok := h.LastUniform("u_view")
	require.True(t, ok)
	assert.Equal(t, mgl32.Translate3D(1, 0, 0), last)
	assert.Equal(t, 3, h.Stats().UniformUploads)

	h.ResetStats()
	assert.Equal(t, 0, h.Uploads("u_view"))
	assert.Equal(t, 1, h.Stats().LivePrograms)
}

func TestHeadlessVertexArrayRemembersIndexBuffer(t *testing.T) {
	h := NewHeadless()
	va, err := h.CreateVertexArray()
	require.NoError(t, err)
	ib, err := h.CreateBuffer()
	require.NoError(t, err)

	h.BindVertexArray(va)
	h.BindBuffer(ElementArrayBuffer, ib)
	h.BufferData(ElementArrayBuffer, make([]byte, 12), StaticCopy)
	h.BindVertexArray(0)
	h.BindBuffer(ElementArrayBuffer, 0)

	h.BindVertexArray(va)
	h.DrawElements(Triangles, 6, Uint16, 0)

	draws := h.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, va, draws[0].VertexArray)
	assert.True(t, draws[0].Indexed)
	assert.Equal(t, 6, draws[0].Count)

	usage, ok := h.BufferUsage(ib)
	require.True(t, ok)
	assert.Equal(t, StaticCopy, usage)
	assert.Equal(t, 1, h.Stats().BufferUploads)
}

func TestHeadlessDeleteReleasesObjects(t *testing.T) {
	h := NewHeadless(WithDrawingBufferSize(320, 240))
	b, err := h.CreateBuffer()
	require.NoError(t, err)
	va, err := h.CreateVertexArray()
	require.NoError(t, err)

	stats := h.Stats()
	assert.Equal(t, 1, stats.LiveBuffers)
	assert.Equal(t, 1, stats.LiveVertexArrays)

	h.DeleteBuffer(b)
	h.DeleteVertexArray(va)
	stats = h.Stats()
	assert.Zero(t, stats.LiveBuffers)
	assert.Zero(t, stats.LiveVertexArrays)

	w, hgt := h.DrawingBufferSize()
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, hgt)
}
