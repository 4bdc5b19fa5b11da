package glbackend

import (
	"testing"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/stretchr/testify/assert"
)

func TestEnumMapping(t *testing.T) {
	assert.Equal(t, uint32(gl.ARRAY_BUFFER), glTarget(backend.ArrayBuffer))
	assert.Equal(t, uint32(gl.ELEMENT_ARRAY_BUFFER), glTarget(backend.ElementArrayBuffer))

	assert.Equal(t, uint32(gl.STATIC_DRAW), glUsage(backend.StaticDraw))
	assert.Equal(t, uint32(gl.DYNAMIC_DRAW), glUsage(backend.DynamicDraw))
	assert.Equal(t, uint32(gl.STREAM_DRAW), glUsage(backend.StreamDraw))

	assert.Equal(t, uint32(gl.FLOAT), glType(backend.Float32))
	assert.Equal(t, uint32(gl.UNSIGNED_SHORT), glType(backend.Uint16))
	assert.Equal(t, uint32(gl.UNSIGNED_INT), glType(backend.Uint32))

	assert.Equal(t, uint32(gl.TRIANGLES), glMode(backend.Triangles))
	assert.Equal(t, uint32(gl.TRIANGLE_STRIP), glMode(backend.TriangleStrip))
	assert.Equal(t, uint32(gl.LINE_STRIP), glMode(backend.LineStrip))

	assert.Equal(t, uint32(gl.VERTEX_SHADER), glStage(shader.StageVertex))
	assert.Equal(t, uint32(gl.FRAGMENT_SHADER), glStage(shader.StageFragment))
}

func TestDataTypeMapping(t *testing.T) {
	assert.Equal(t, shader.TypeMat4, glDataTypes[gl.FLOAT_MAT4])
	assert.Equal(t, shader.TypeVec3, glDataTypes[gl.FLOAT_VEC3])
	assert.Equal(t, shader.TypeUnknown, glDataTypes[gl.DOUBLE])
}
