package shader

// Reflect inspects a single shader stage and returns its entry point, vertex inputs
// (vertex stage only) and uniforms. Reflection never fails: a stage without an entry
// point reports an empty EntryPoint and leaves the decision to the caller.
//
// Parameters:
//   - lang: the shading language of the source
//   - stage: the pipeline stage the source belongs to
//   - source: the pre-processed source code
//
// Returns:
//   - Reflection: the reflected stage interface
func Reflect(lang Language, stage Stage, source string) Reflection {
	if lang == LanguageWGSL {
		return reflectWGSL(stage, source)
	}
	return reflectGLSL(stage, source)
}

// Merge combines the reflections of the stages of one program. Attributes come from the
// vertex stage. Uniforms are de-duplicated by name in stage order; GLSL uniforms are then
// renumbered sequentially the way a linker assigns locations, WGSL uniforms keep their
// binding index.
//
// Parameters:
//   - stages: the reflected stages, in attachment order
//
// Returns:
//   - []Variable: the program's active attributes
//   - []Variable: the program's active uniforms
func Merge(stages ...Reflection) ([]Variable, []Variable) {
	var attrs, uniforms []Variable
	seen := make(map[string]bool)

	for _, r := range stages {
		if r.Stage == StageVertex {
			attrs = append(attrs, r.Attributes...)
		}
		for _, u := range r.Uniforms {
			if seen[u.Name] {
				continue
			}
			seen[u.Name] = true
			if r.Language == LanguageGLSL {
				u.Location = len(uniforms)
			}
			uniforms = append(uniforms, u)
		}
	}
	return attrs, uniforms
}
