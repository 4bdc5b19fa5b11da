package wgpubackend

import (
	"testing"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestUniformSize(t *testing.T) {
	assert.Equal(t, uint64(64), uniformSize(shader.Variable{Type: shader.TypeMat4}))
	assert.Equal(t, uint64(12), uniformSize(shader.Variable{Type: shader.TypeVec3}))
	assert.Equal(t, uint64(8), uniformSize(shader.Variable{Type: shader.TypeVec2}))
	assert.Equal(t, uint64(80), uniformSize(shader.Variable{Type: shader.TypeMat4, Size: 80}))
}

func TestVertexFormat(t *testing.T) {
	format, ok := vertexFormat(2, backend.Float32)
	assert.True(t, ok)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, format)

	format, ok = vertexFormat(4, backend.Uint32)
	assert.True(t, ok)
	assert.Equal(t, wgpu.VertexFormatUint32x4, format)

	_, ok = vertexFormat(5, backend.Float32)
	assert.False(t, ok)

	_, ok = vertexFormat(2, backend.Uint16)
	assert.False(t, ok)
}

func TestTopology(t *testing.T) {
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, topology(backend.Triangles))
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleStrip, topology(backend.TriangleStrip))
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, topology(backend.Lines))
	assert.Equal(t, wgpu.PrimitiveTopologyLineStrip, topology(backend.LineStrip))
	assert.Equal(t, wgpu.PrimitiveTopologyPointList, topology(backend.Points))
}

func TestProgramStageCopiesIntoBinding(t *testing.T) {
	p := newProgramObject()
	p.bindings = []*uniformBinding{
		{binding: 0, size: 8, value: make([]byte, 8)},
		{binding: 3, size: 4, value: make([]byte, 4)},
	}

	p.stage(3, []byte{1, 2, 3, 4})
	p.stage(7, []byte{9})

	assert.Equal(t, []byte{1, 2, 3, 4}, p.bindings[1].value)
	assert.Equal(t, make([]byte, 8), p.bindings[0].value)
}

func TestUniformRingPushAligns(t *testing.T) {
	u := &uniformRing{capacity: 1024, staged: make([]byte, 0, 1024)}

	first, err := u.push(make([]byte, 64))
	assert.NoError(t, err)
	second, err := u.push(make([]byte, 12))
	assert.NoError(t, err)
	third, err := u.push(make([]byte, 64))
	assert.NoError(t, err)

	assert.Equal(t, uint32(0), first)
	assert.Equal(t, uint32(256), second)
	assert.Equal(t, uint32(512), third)

	_, err = u.push(make([]byte, 512))
	assert.ErrorIs(t, err, errUniformRingFull)

	u.reset()
	offset, err := u.push(make([]byte, 4))
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), offset)
}

func TestContextOptions(t *testing.T) {
	c := &wgpuContext{uniformCapacity: 1 << 20}

	WithUniformCapacity(0)(c)
	assert.Equal(t, uint64(1<<20), c.uniformCapacity)
	WithUniformCapacity(4096)(c)
	assert.Equal(t, uint64(4096), c.uniformCapacity)

	WithVSync(false)(c)
	assert.Equal(t, wgpu.PresentModeImmediate, c.presentMode)
	WithVSync(true)(c)
	assert.Equal(t, wgpu.PresentModeFifo, c.presentMode)
}
