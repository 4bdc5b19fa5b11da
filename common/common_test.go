package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]float32{1, 2, 3}), 12)
	assert.Len(t, SliceToBytes([]uint16{1, 2, 3}), 6)
	assert.Equal(t, []byte{1, 0, 2, 0}, SliceToBytes([]uint16{1, 2}))
}

func TestRoundUpAlign(t *testing.T) {
	tests := []struct {
		align, value, want uint64
	}{
		{256, 0, 0},
		{256, 1, 256},
		{256, 256, 256},
		{256, 257, 512},
		{16, 12, 16},
		{0, 7, 7},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RoundUpAlign(tt.align, tt.value))
	}
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
	assert.Equal(t, "a", Coalesce("a", "b"))
}

func TestColor(t *testing.T) {
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, ColorMagenta.Vec3())
	r, g, b, a := ColorYellow.RGBA(0.5)
	assert.Equal(t, []float32{1, 1, 0, 0.5}, []float32{r, g, b, a})
}
