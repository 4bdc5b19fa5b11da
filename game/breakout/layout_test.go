package breakout

import (
	"testing"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/registry"
	"github.com/Carmen-Shannon/breakout/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutPositions(t *testing.T) {
	l := DefaultLayout()
	assert.InDelta(t, -7.21, l.XOffset(), 1e-5)

	x, y := l.BrickPosition(0, 0)
	assert.InDelta(t, -7.21, x, 1e-5)
	assert.InDelta(t, 0.0, y, 1e-5)

	x, y = l.BrickPosition(2, 3)
	assert.InDelta(t, -5.15, x, 1e-5)
	assert.InDelta(t, 3.36, y, 1e-5)

	assert.InDelta(t, 14.39, l.Width(), 1e-5)
}

func TestRowColor(t *testing.T) {
	tests := []struct {
		row  int
		want common.Color
	}{
		{0, common.ColorYellow},
		{1, common.ColorYellow},
		{2, common.ColorGreen},
		{3, common.ColorGreen},
		{5, common.ColorMagenta},
		{7, common.ColorRed},
		{8, common.ColorYellow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RowColor(tt.row), "row %d", tt.row)
	}
}

func TestBricks(t *testing.T) {
	plane, err := registry.NewRegistry().Plane()
	require.NoError(t, err)

	l := DefaultLayout()
	bricks := l.Bricks(plane)
	require.Len(t, bricks, 112)

	for i, b := range bricks {
		column, row := i%l.Columns, i/l.Columns
		x, y := l.BrickPosition(column, row)
		assert.Same(t, plane, b.Geometry())
		assert.Equal(t, x, b.World().Position().X())
		assert.Equal(t, y, b.World().Position().Y())
		assert.Equal(t, float32(0.25), b.World().Scale().Y())
		assert.Equal(t, RowColor(row), b.Material().(material.BasicMaterial).Color())
	}
	assert.NotSame(t, bricks[0].Material(), bricks[1].Material())
}
