package breakout

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
)

// MaterialTag is the tag every breakout model is drawn under.
const MaterialTag = "material"

//go:embed shaders
var shaderFiles embed.FS

// ShaderFS returns the embedded shader sources rooted at the shaders directory.
func ShaderFS() fs.FS {
	sub, err := fs.Sub(shaderFiles, "shaders")
	if err != nil {
		panic(fmt.Sprintf("breakout: embedded shaders missing: %v", err))
	}
	return sub
}

// ProgramPaths returns the vertex and fragment stage paths within ShaderFS for a shading
// language. WGSL keeps both stages in one file.
//
// Parameters:
//   - lang: the language of the graphics backend
//
// Returns:
//   - vertexPath: path of the vertex stage
//   - fragmentPath: path of the fragment stage
func ProgramPaths(lang shader.Language) (vertexPath, fragmentPath string) {
	if lang == shader.LanguageWGSL {
		return "basic.wgsl", "basic.wgsl"
	}
	return "basic.vert", "basic.frag"
}

// PreProcessor returns a pre-processor resolving the embedded GLSL chunks by file name.
//
// Returns:
//   - shader.PreProcessor: the pre-processor
//   - error: an error if the chunks cannot be read
func PreProcessor() (shader.PreProcessor, error) {
	fsys := ShaderFS()
	entries, err := fs.ReadDir(fsys, "chunks")
	if err != nil {
		return nil, fmt.Errorf("failed to list shader chunks: %w", err)
	}

	chunks := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := fs.ReadFile(fsys, path.Join("chunks", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read shader chunk %q: %w", e.Name(), err)
		}
		chunks[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = string(data)
	}
	return shader.NewPreProcessor(shader.WithChunks(chunks)), nil
}
