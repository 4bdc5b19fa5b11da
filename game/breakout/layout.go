package breakout

import (
	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/model"
	"github.com/Carmen-Shannon/breakout/engine/renderer/buffer"
	"github.com/Carmen-Shannon/breakout/engine/renderer/material"
	"github.com/Carmen-Shannon/breakout/engine/transform"
	"github.com/chewxy/math32"
)

// rowColors are assigned to pairs of rows, bottom up.
var rowColors = []common.Color{
	common.ColorYellow,
	common.ColorGreen,
	common.ColorMagenta,
	common.ColorRed,
}

// Layout describes the brick wall grid. Positions are in world units before the world scale
// is applied, so a brick is one unit wide and ScaleY units tall on screen.
type Layout struct {
	Columns int
	Rows    int
	Spacing float32
	ScaleY  float32
}

// DefaultLayout returns the classic 14 by 8 wall.
func DefaultLayout() Layout {
	return Layout{Columns: 14, Rows: 8, Spacing: 0.03, ScaleY: 0.25}
}

// middle is the column the wall is centered on.
func (l Layout) middle() float32 {
	return math32.Floor(float32(l.Columns) / 2)
}

// XOffset returns the x position of the first column.
func (l Layout) XOffset() float32 {
	middle := l.middle()
	return -((middle * l.Spacing) + middle)
}

// BrickPosition returns the unscaled world position of the brick at column and row.
//
// Parameters:
//   - column: zero based column, left to right
//   - row: zero based row, bottom up
//
// Returns:
//   - x, y: the position the brick's world node is reset to
func (l Layout) BrickPosition(column, row int) (x, y float32) {
	c, r := float32(column), float32(row)
	x = l.XOffset() + c + l.Spacing*c
	y = r + l.Spacing*r*(1/l.ScaleY)
	return x, y
}

// Width returns the on-screen width of the wall.
func (l Layout) Width() float32 {
	return float32(l.Columns) + l.Spacing*float32(l.Columns-1)
}

// Height returns the on-screen height of the wall.
func (l Layout) Height() float32 {
	_, top := l.BrickPosition(0, l.Rows-1)
	return (top + 1) * l.ScaleY
}

// RowColor returns the color of every brick in row.
func RowColor(row int) common.Color {
	return rowColors[(row/2)%len(rowColors)]
}

// Bricks builds the wall as clones of one brick per row. Every brick shares plane and owns
// its material.
//
// Parameters:
//   - plane: the unit plane geometry
//
// Returns:
//   - []model.Model: the bricks, row by row from the bottom
func (l Layout) Bricks(plane buffer.Geometry) []model.Model {
	bricks := make([]model.Model, 0, l.Columns*l.Rows)
	for row := range l.Rows {
		template := model.NewModel(plane,
			material.NewBasicMaterial(material.WithName("brick"), material.WithColor(RowColor(row))),
			model.WithName("brick"),
			model.WithWorld(transform.NewSpaceMatrix(
				transform.WithPosition(l.XOffset(), 0),
				transform.WithScale(1, l.ScaleY),
			)),
		)
		for column := range l.Columns {
			brick := template.Clone()
			x, y := l.BrickPosition(column, row)
			brick.World().Position().Reset(x, y)
			bricks = append(bricks, brick)
		}
	}
	return bricks
}
