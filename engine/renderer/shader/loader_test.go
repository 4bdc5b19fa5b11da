package shader

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLoaderLoadProgram(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/basic.vert": {Data: []byte("#include \"common\"\nin vec2 a_position;\nvoid main() {}\n")},
		"shaders/basic.frag": {Data: []byte("uniform vec3 u_color;\nvoid main() {}\n")},
	}
	l := NewLoader(fsys, NewPreProcessor(WithChunk("common", "uniform mat4 u_view;")))

	sources, err := l.LoadProgram("shaders/basic.vert", "shaders/basic.frag")
	require.NoError(t, err)
	require.Len(t, sources, 2)

	assert.Equal(t, "basic", sources[0].Name)
	assert.Equal(t, StageVertex, sources[0].Stage)
	assert.Equal(t, LanguageGLSL, sources[0].Language)
	assert.Contains(t, sources[0].Code, "uniform mat4 u_view;")
	assert.Equal(t, StageFragment, sources[1].Stage)
}

func TestLoaderWGSL(t *testing.T) {
	fsys := fstest.MapFS{
		"basic.wgsl": {Data: []byte("@vertex fn vs_main() {}\n")},
	}
	src, err := NewLoader(fsys, nil).Load(StageVertex, "basic.wgsl")
	require.NoError(t, err)
	assert.Equal(t, LanguageWGSL, src.Language)
}

func TestLoaderCombinesErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.frag": {Data: []byte("#include \"nope\"\n")},
	}
	l := NewLoader(fsys, nil)

	_, err := l.LoadProgram("missing.vert", "bad.frag")
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], fs.ErrNotExist)
	assert.Contains(t, errs[1].Error(), `unknown include "nope"`)
}

func TestNewLoaderRequiresFS(t *testing.T) {
	assert.Panics(t, func() { NewLoader(nil, nil) })
}
