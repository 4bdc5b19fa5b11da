package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGLSLVertex = `#version 410 core
// u_unused is only mentioned in a comment: uniform mat4 u_unused;
layout(location = 1) in vec3 a_normal;
in vec2 a_position;
uniform mat4 u_model;
uniform mat4 u_local;
uniform mat4 u_view;
/* uniform vec2 u_commented; */
void main() {
	gl_Position = u_view * u_model * u_local * vec4(a_position, 0.0, 1.0);
}
`

const testGLSLFragment = `#version 410 core
in vec2 v_uv;
uniform vec3 u_color;
uniform mat4 u_view;
out vec4 frag_color;
void main() {
	frag_color = vec4(u_color, 1.0);
}
`

const testWGSL = `
struct VertexOutput {
	@builtin(position) position: vec4f,
};

struct Params {
	tint: vec3f,
	scale: vec2f,
};

@group(0) @binding(2) var<uniform> u_view: mat4x4f;
@group(0) @binding(0) var<uniform> u_model: mat4x4<f32>;
@group(0) @binding(3) var<uniform> u_color: vec3f;
@group(0) @binding(4) var<uniform> params: Params;

@vertex
fn vs_main(@location(0) a_position: vec2f, @location(1) a_uv: vec2<f32>) -> VertexOutput {
	var out: VertexOutput;
	out.position = u_view * u_model * vec4f(a_position, 0.0, 1.0);
	return out;
}

@fragment
fn fs_main() -> @location(0) vec4f {
	return vec4f(u_color, 1.0);
}
`

func TestReflectGLSLVertex(t *testing.T) {
	r := Reflect(LanguageGLSL, StageVertex, testGLSLVertex)

	assert.Equal(t, "main", r.EntryPoint)
	require.Len(t, r.Attributes, 2)
	assert.Equal(t, Variable{Name: "a_normal", Type: TypeVec3, Location: 1}, r.Attributes[0])
	assert.Equal(t, Variable{Name: "a_position", Type: TypeVec2, Location: 0}, r.Attributes[1])

	names := make([]string, 0, len(r.Uniforms))
	for _, u := range r.Uniforms {
		names = append(names, u.Name)
		assert.Equal(t, TypeMat4, u.Type)
	}
	assert.Equal(t, []string{"u_model", "u_local", "u_view"}, names)
}

func TestReflectGLSLFragmentHasNoAttributes(t *testing.T) {
	r := Reflect(LanguageGLSL, StageFragment, testGLSLFragment)

	assert.Equal(t, "main", r.EntryPoint)
	assert.Empty(t, r.Attributes)
	require.Len(t, r.Uniforms, 2)
	assert.Equal(t, TypeVec3, r.Uniforms[0].Type)
}

func TestReflectGLSLMissingMain(t *testing.T) {
	r := Reflect(LanguageGLSL, StageVertex, "in vec2 a_position;\nvoid mainly() {}\n")
	assert.Empty(t, r.EntryPoint)
}

func TestReflectWGSL(t *testing.T) {
	vs := Reflect(LanguageWGSL, StageVertex, testWGSL)
	fs := Reflect(LanguageWGSL, StageFragment, testWGSL)

	assert.Equal(t, "vs_main", vs.EntryPoint)
	assert.Equal(t, "fs_main", fs.EntryPoint)

	require.Len(t, vs.Attributes, 2)
	assert.Equal(t, Variable{Name: "a_position", Type: TypeVec2, Location: 0}, vs.Attributes[0])
	assert.Equal(t, Variable{Name: "a_uv", Type: TypeVec2, Location: 1}, vs.Attributes[1])
	assert.Empty(t, fs.Attributes)

	require.Len(t, vs.Uniforms, 4)
	assert.Equal(t, Variable{Name: "u_model", Type: TypeMat4, Location: 0, Size: 64}, vs.Uniforms[0])
	assert.Equal(t, Variable{Name: "u_view", Type: TypeMat4, Location: 2, Size: 64}, vs.Uniforms[1])
	assert.Equal(t, Variable{Name: "u_color", Type: TypeVec3, Location: 3, Size: 12}, vs.Uniforms[2])

	params := vs.Uniforms[3]
	assert.Equal(t, "params", params.Name)
	assert.Equal(t, TypeUnknown, params.Type)
	assert.Equal(t, uint64(32), params.Size)
}

func TestReflectWGSLVertexInputStruct(t *testing.T) {
	src := `
struct VertexInput {
	@location(0) a_position: vec2f,
	@location(1) a_color: vec3f,
};
@vertex
fn main(in: VertexInput) -> @builtin(position) vec4f {
	return vec4f(in.a_position, 0.0, 1.0);
}
`
	r := Reflect(LanguageWGSL, StageVertex, src)
	require.Len(t, r.Attributes, 2)
	assert.Equal(t, "a_position", r.Attributes[0].Name)
	assert.Equal(t, TypeVec3, r.Attributes[1].Type)
}

func TestMerge(t *testing.T) {
	vs := Reflect(LanguageGLSL, StageVertex, testGLSLVertex)
	fs := Reflect(LanguageGLSL, StageFragment, testGLSLFragment)

	attrs, uniforms := Merge(vs, fs)
	assert.Len(t, attrs, 2)

	require.Len(t, uniforms, 4)
	for i, want := range []string{"u_model", "u_local", "u_view", "u_color"} {
		assert.Equal(t, want, uniforms[i].Name)
		assert.Equal(t, i, uniforms[i].Location)
	}
}

func TestMergeWGSLKeepsBindings(t *testing.T) {
	vs := Reflect(LanguageWGSL, StageVertex, testWGSL)
	fs := Reflect(LanguageWGSL, StageFragment, testWGSL)

	_, uniforms := Merge(vs, fs)
	require.Len(t, uniforms, 4)
	assert.Equal(t, 2, uniforms[1].Location)
}

func TestLanguageFromPath(t *testing.T) {
	assert.Equal(t, LanguageWGSL, LanguageFromPath("shaders/basic.wgsl"))
	assert.Equal(t, LanguageWGSL, LanguageFromPath("BASIC.WGSL"))
	assert.Equal(t, LanguageGLSL, LanguageFromPath("shaders/basic.vert"))
	assert.Equal(t, LanguageGLSL, LanguageFromPath("basic.glsl"))
}

func TestDataType(t *testing.T) {
	assert.Equal(t, "mat4", TypeMat4.String())
	assert.Equal(t, "unknown", DataType(99).String())
	assert.Equal(t, 3, TypeVec3.Components())
	assert.Equal(t, 0, TypeMat4.Components())
}
