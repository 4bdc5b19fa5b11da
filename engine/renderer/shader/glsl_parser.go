package shader

import (
	"regexp"
	"strconv"
)

// glslTypeMap maps GLSL type keywords to their reflected DataType.
var glslTypeMap = map[string]DataType{
	"float":     TypeFloat,
	"vec2":      TypeVec2,
	"vec3":      TypeVec3,
	"vec4":      TypeVec4,
	"mat2":      TypeMat2,
	"mat3":      TypeMat3,
	"mat4":      TypeMat4,
	"int":       TypeInt,
	"uint":      TypeUint,
	"bool":      TypeBool,
	"sampler2D": TypeSampler2D,
}

var (
	// glslMainRegex matches the GLSL entry point declaration
	glslMainRegex = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(?:void)?\s*\)`)

	// glslAttributeRegex captures an optional explicit location, the type and the name of a
	// vertex input declared with `in` (core profiles) or `attribute` (legacy/ES 1.0)
	glslAttributeRegex = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?(?:in|attribute)\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*;`)

	// glslUniformRegex captures an optional explicit location, the type and the name of a uniform
	glslUniformRegex = regexp.MustCompile(`(?m)^\s*(?:layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*)?uniform\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
)

// reflectGLSL extracts the entry point, vertex inputs and uniforms from GLSL source.
// Inputs without an explicit layout location are assigned the lowest free location in
// declaration order, the same way a linker without explicit bindings would.
func reflectGLSL(stage Stage, source string) Reflection {
	cleaned := stripComments(source)
	r := Reflection{
		Language: LanguageGLSL,
		Stage:    stage,
		Uniforms: parseGLSLDecls(glslUniformRegex, cleaned),
	}
	if glslMainRegex.MatchString(cleaned) {
		r.EntryPoint = "main"
	}
	if stage == StageVertex {
		r.Attributes = parseGLSLDecls(glslAttributeRegex, cleaned)
	}
	return r
}

func parseGLSLDecls(re *regexp.Regexp, source string) []Variable {
	matches := re.FindAllStringSubmatch(source, -1)
	vars := make([]Variable, 0, len(matches))
	used := make(map[int]bool, len(matches))

	for _, m := range matches {
		v := Variable{
			Name:     m[3],
			Type:     glslTypeMap[m[2]],
			Location: -1,
		}
		if m[1] != "" {
			if loc, err := strconv.Atoi(m[1]); err == nil {
				v.Location = loc
				used[loc] = true
			}
		}
		vars = append(vars, v)
	}

	next := 0
	for i := range vars {
		if vars[i].Location >= 0 {
			continue
		}
		for used[next] {
			next++
		}
		vars[i].Location = next
		used[next] = true
	}
	return vars
}
