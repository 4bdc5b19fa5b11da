package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// wgslTypeMap maps WGSL type names to their reflected DataType.
var wgslTypeMap = map[string]DataType{
	"f32":             TypeFloat,
	"vec2f":           TypeVec2,
	"vec2<f32>":       TypeVec2,
	"vec3f":           TypeVec3,
	"vec3<f32>":       TypeVec3,
	"vec4f":           TypeVec4,
	"vec4<f32>":       TypeVec4,
	"mat2x2f":         TypeMat2,
	"mat2x2<f32>":     TypeMat2,
	"mat3x3f":         TypeMat3,
	"mat3x3<f32>":     TypeMat3,
	"mat4x4f":         TypeMat4,
	"mat4x4<f32>":     TypeMat4,
	"i32":             TypeInt,
	"u32":             TypeUint,
	"bool":            TypeBool,
	"texture_2d<f32>": TypeSampler2D,
}

var (
	// structBlockRegex matches struct declarations and captures the name and body
	structBlockRegex = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)

	// locationRegex matches @location(N) attributes
	locationRegex = regexp.MustCompile(`@location\((\d+)\)`)

	// builtinRegex matches @builtin(...) attributes
	builtinRegex = regexp.MustCompile(`@builtin\(\w+\)`)

	// fieldRegex matches a struct field or parameter: optional attributes, name, colon, type.
	// The type capture (.+) is greedy to handle parameterized types like array<T, N>.
	fieldRegex = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)

	// vertexEntryRegex matches @vertex functions and captures the entry point name
	vertexEntryRegex = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)

	// fragmentEntryRegex matches @fragment functions and captures the entry point name
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)

	// bindGroupDeclRegex captures group, binding, optional address space, variable name, and type
	// from declarations like: @group(0) @binding(0) var<uniform> u_view: mat4x4f;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// reflectWGSL extracts the entry point, vertex attributes and uniforms from WGSL source.
func reflectWGSL(stage Stage, source string) Reflection {
	cleaned := stripComments(source)
	r := Reflection{
		Language:   LanguageWGSL,
		Stage:      stage,
		EntryPoint: parseEntryPoint(cleaned, stage),
		Uniforms:   parseWGSLUniforms(cleaned),
	}
	if stage == StageVertex {
		r.Attributes = parseWGSLAttributes(cleaned, r.EntryPoint)
	}
	return r
}

// parseEntryPoint extracts the entry point function name for the given stage from
// comment-free WGSL source. Returns an empty string if no matching annotation is found.
//
// Parameters:
//   - source: WGSL source with comments stripped
//   - stage: the stage to search for
//
// Returns:
//   - string: the entry point function name, or empty string if not found
func parseEntryPoint(source string, stage Stage) string {
	var re *regexp.Regexp
	switch stage {
	case StageVertex:
		re = vertexEntryRegex
	case StageFragment:
		re = fragmentEntryRegex
	default:
		return ""
	}

	if match := re.FindStringSubmatch(source); match != nil {
		return match[1]
	}
	return ""
}

// parseWGSLUniforms extracts all var<uniform> declarations. The binding index becomes the
// variable's Location and the WGSL layout size of the bound type becomes its Size.
// Results are sorted by group then binding.
func parseWGSLUniforms(source string) []Variable {
	structSizes := computeStructSizes(parseStructBlocks(source))

	var uniforms []Variable
	for _, match := range bindGroupDeclRegex.FindAllStringSubmatch(source, -1) {
		if strings.TrimSpace(match[3]) != "uniform" {
			continue
		}
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		typeName := strings.TrimSpace(match[5])

		v := Variable{
			Name:     strings.TrimSpace(match[4]),
			Type:     wgslTypeMap[typeName],
			Location: binding,
			Group:    group,
		}
		if layout, ok := resolveTypeLayout(typeName, structSizes); ok {
			v.Size = layout.size
		}
		uniforms = append(uniforms, v)
	}

	sort.SliceStable(uniforms, func(i, j int) bool {
		if uniforms[i].Group != uniforms[j].Group {
			return uniforms[i].Group < uniforms[j].Group
		}
		return uniforms[i].Location < uniforms[j].Location
	})
	return uniforms
}

// parseWGSLAttributes collects @location inputs of the vertex entry point. Parameters may be
// declared inline (@location(0) a_position: vec2f) or through a vertex input struct. When the
// entry point cannot be located every pure vertex input struct is used instead.
func parseWGSLAttributes(source, entryPoint string) []Variable {
	structs := parseStructBlocks(source)
	byName := make(map[string]parsedStruct, len(structs))
	for _, ps := range structs {
		byName[ps.name] = ps
	}

	var fields []parsedField
	if params, ok := entryParams(source, entryPoint); ok {
		for _, f := range parseStructFields(params) {
			if f.location >= 0 && !f.isBuiltin {
				fields = append(fields, f)
				continue
			}
			if ps, ok := byName[f.typeName]; ok && isVertexInputStruct(ps) {
				fields = append(fields, ps.fields...)
			}
		}
	} else {
		for _, ps := range structs {
			if isVertexInputStruct(ps) {
				fields = append(fields, ps.fields...)
			}
		}
	}

	attrs := make([]Variable, 0, len(fields))
	for _, f := range fields {
		if f.location < 0 {
			continue
		}
		attrs = append(attrs, Variable{
			Name:     f.name,
			Type:     wgslTypeMap[f.typeName],
			Location: f.location,
		})
	}
	sort.SliceStable(attrs, func(i, j int) bool {
		return attrs[i].Location < attrs[j].Location
	})
	return attrs
}

// entryParams returns the raw parameter list of the named function, balancing the
// parentheses that @location(N) attributes introduce.
func entryParams(source, entryPoint string) (string, bool) {
	if entryPoint == "" {
		return "", false
	}
	re := regexp.MustCompile(`\bfn\s+` + regexp.QuoteMeta(entryPoint) + `\s*\(`)
	loc := re.FindStringIndex(source)
	if loc == nil {
		return "", false
	}

	depth := 1
	for i := loc[1]; i < len(source); i++ {
		switch source[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return source[loc[1]:i], true
			}
		}
	}
	return "", false
}

// parseStructBlocks finds all struct { ... } blocks in the cleaned WGSL source
// and parses their fields including @location and @builtin attributes
//
// Parameters:
//   - source: WGSL source with comments already stripped
//
// Returns:
//   - []parsedStruct: all struct blocks found in the source
func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))

	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}

	return structs
}

// parseStructFields parses a comma separated field or parameter list,
// extracting @location and @builtin attributes along with the name and type.
func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field := parsedField{location: -1}

		if builtinRegex.MatchString(line) {
			field.isBuiltin = true
		}

		if locMatch := locationRegex.FindStringSubmatch(line); locMatch != nil {
			if loc, err := strconv.Atoi(locMatch[1]); err == nil {
				field.location = loc
			}
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.name = fm[1]
		field.typeName = strings.TrimSpace(fm[2])

		fields = append(fields, field)
	}

	return fields
}
