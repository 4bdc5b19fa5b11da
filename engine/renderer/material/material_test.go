package material

import (
	"testing"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/program"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsIndependent(t *testing.T) {
	original := NewBasicMaterial(WithName("brick"), WithColor(common.ColorYellow))
	clone := original.Clone().(BasicMaterial)

	assert.NotSame(t, original, clone)
	assert.Equal(t, "brick", clone.Name())
	assert.Equal(t, common.ColorYellow, clone.Color())

	clone.SetColor(common.ColorRed)
	assert.Equal(t, common.ColorYellow, original.Color())
	assert.Equal(t, common.ColorRed, clone.Color())
}

func TestDrawUploadsColor(t *testing.T) {
	ctx := backend.NewHeadless()
	p, err := program.Build(ctx, []shader.Source{
		{Stage: shader.StageVertex, Code: "#version 410 core\nin vec2 a_position;\nvoid main() {}\n"},
		{Stage: shader.StageFragment, Code: "#version 410 core\nuniform vec3 u_color;\nout vec4 c;\nvoid main() {}\n"},
	})
	require.NoError(t, err)
	p.Use(ctx)

	m := NewBasicMaterial(WithColor(common.ColorMagenta))
	require.NoError(t, m.Draw(ctx, p))

	color, ok := ctx.LastUniform(ColorUniform)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, color)
	assert.Equal(t, common.ColorWhite, NewBasicMaterial().Color())
}
