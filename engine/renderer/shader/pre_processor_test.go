package shader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreProcessorResolvesIncludes(t *testing.T) {
	pp := NewPreProcessor(
		WithChunk("transforms", "uniform mat4 u_model;\n#include \"view\""),
		WithChunks(map[string]string{"view": "uniform mat4 u_view;"}),
	)

	out, err := pp.Process("#version 410 core\n#include \"transforms\"\nvoid main() {}")
	require.NoError(t, err)
	assert.Equal(t, "#version 410 core\nuniform mat4 u_model;\nuniform mat4 u_view;\nvoid main() {}", out)
	assert.Equal(t, []string{"transforms", "view"}, pp.Includes())
}

func TestPreProcessorWithoutIncludes(t *testing.T) {
	pp := NewPreProcessor()

	src := "void main() {}\n"
	out, err := pp.Process(src)
	require.NoError(t, err)
	assert.Equal(t, src, out)
	assert.Empty(t, pp.Includes())
}

func TestPreProcessorUnknownInclude(t *testing.T) {
	pp := NewPreProcessor()

	_, err := pp.Process("void main() {}\n  #include \"missing\"")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `line 2: unknown include "missing"`)
}

func TestPreProcessorIncludeCycle(t *testing.T) {
	pp := NewPreProcessor(
		WithChunk("a", `#include "b"`),
		WithChunk("b", `#include "a"`),
	)

	_, err := pp.Process(`#include "a"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nested deeper than")
}
