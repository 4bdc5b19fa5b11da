package shader

import (
	"path"
	"strings"
)

// Language identifies the shading language a source is written in.
type Language int

const (
	// LanguageGLSL is OpenGL shading language (#version 410 core and up).
	LanguageGLSL Language = iota

	// LanguageWGSL is the WebGPU shading language.
	LanguageWGSL
)

func (l Language) String() string {
	switch l {
	case LanguageGLSL:
		return "glsl"
	case LanguageWGSL:
		return "wgsl"
	default:
		return "unknown"
	}
}

// LanguageFromPath infers the shading language from a file extension.
// .wgsl maps to WGSL, everything else (.glsl, .vert, .frag, .vs, .fs) maps to GLSL.
//
// Parameters:
//   - p: the slash separated source path
//
// Returns:
//   - Language: the inferred language
func LanguageFromPath(p string) Language {
	if strings.EqualFold(path.Ext(p), ".wgsl") {
		return LanguageWGSL
	}
	return LanguageGLSL
}

// Stage identifies the pipeline stage a shader source belongs to.
type Stage int

const (
	// StageVertex is the vertex processing stage.
	StageVertex Stage = iota

	// StageFragment is the fragment processing stage.
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// DataType is the reflected type of a shader attribute or uniform.
type DataType int

const (
	TypeUnknown DataType = iota
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
	TypeMat2
	TypeMat3
	TypeMat4
	TypeInt
	TypeUint
	TypeBool
	TypeSampler2D
)

var dataTypeNames = map[DataType]string{
	TypeUnknown:   "unknown",
	TypeFloat:     "float",
	TypeVec2:      "vec2",
	TypeVec3:      "vec3",
	TypeVec4:      "vec4",
	TypeMat2:      "mat2",
	TypeMat3:      "mat3",
	TypeMat4:      "mat4",
	TypeInt:       "int",
	TypeUint:      "uint",
	TypeBool:      "bool",
	TypeSampler2D: "sampler2D",
}

func (t DataType) String() string {
	if name, ok := dataTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Components returns the number of scalar components of a vector or scalar type.
// Matrices and opaque types return 0.
func (t DataType) Components() int {
	switch t {
	case TypeFloat, TypeInt, TypeUint, TypeBool:
		return 1
	case TypeVec2:
		return 2
	case TypeVec3:
		return 3
	case TypeVec4:
		return 4
	default:
		return 0
	}
}

// Variable describes a single reflected shader input: a per-vertex attribute or a uniform.
type Variable struct {
	// Name is the identifier as declared in the source, e.g. "a_position" or "u_view".
	Name string

	// Type is the reflected data type.
	Type DataType

	// Location is the attribute location, or the uniform location (GLSL) / binding index (WGSL).
	Location int

	// Group is the WGSL bind group index. Always 0 for GLSL.
	Group int

	// Size is the uniform's byte size per the WGSL layout rules, 0 when unknown.
	Size uint64
}

// Reflection is the result of reflecting a single shader stage.
type Reflection struct {
	Language   Language
	Stage      Stage
	EntryPoint string
	Attributes []Variable
	Uniforms   []Variable
}

// Source is a loaded, pre-processed shader stage ready for compilation.
type Source struct {
	Name     string
	Stage    Stage
	Language Language
	Code     string
}
