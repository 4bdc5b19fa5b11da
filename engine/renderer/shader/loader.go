package shader

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"go.uber.org/multierr"
)

// loader is the implementation of the Loader interface.
type loader struct {
	fsys fs.FS
	pp   PreProcessor
}

// Loader reads shader stages from a file system and runs them through a PreProcessor.
type Loader interface {
	// Load reads and pre-processes a single stage. The language is inferred from the
	// file extension.
	//
	// Parameters:
	//   - stage: the pipeline stage of the file
	//   - name: the slash separated path within the loader's file system
	//
	// Returns:
	//   - Source: the processed stage
	//   - error: an error if the file cannot be read or pre-processing fails
	Load(stage Stage, name string) (Source, error)

	// LoadProgram loads a vertex and a fragment stage. Both files are always attempted
	// so every problem is reported at once.
	//
	// Parameters:
	//   - vertexPath: path of the vertex stage
	//   - fragmentPath: path of the fragment stage
	//
	// Returns:
	//   - []Source: the vertex and fragment sources, in that order
	//   - error: the combined errors of both stages
	LoadProgram(vertexPath, fragmentPath string) ([]Source, error)
}

var _ Loader = &loader{}

// NewLoader creates a Loader over the given file system. Shader chunks referenced by
// #include are resolved by the given PreProcessor, or by an empty one when pp is nil.
//
// Parameters:
//   - fsys: the file system holding the shader sources
//   - pp: the pre-processor resolving include directives
//
// Returns:
//   - Loader: the configured loader
func NewLoader(fsys fs.FS, pp PreProcessor) Loader {
	if fsys == nil {
		panic("shader: NewLoader requires a file system")
	}
	if pp == nil {
		pp = NewPreProcessor()
	}
	return &loader{fsys: fsys, pp: pp}
}

func (l *loader) Load(stage Stage, name string) (Source, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s shader %q: %w", stage, name, err)
	}

	code, err := l.pp.Process(string(data))
	if err != nil {
		return Source{}, fmt.Errorf("failed to pre-process %s shader %q: %w", stage, name, err)
	}

	return Source{
		Name:     strings.TrimSuffix(path.Base(name), path.Ext(name)),
		Stage:    stage,
		Language: LanguageFromPath(name),
		Code:     code,
	}, nil
}

func (l *loader) LoadProgram(vertexPath, fragmentPath string) ([]Source, error) {
	vert, vErr := l.Load(StageVertex, vertexPath)
	frag, fErr := l.Load(StageFragment, fragmentPath)
	if err := multierr.Combine(vErr, fErr); err != nil {
		return nil, err
	}
	return []Source{vert, frag}, nil
}
