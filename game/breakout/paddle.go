package breakout

import (
	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/input"
	"github.com/Carmen-Shannon/breakout/engine/model"
	"github.com/Carmen-Shannon/breakout/engine/physics"
	"github.com/Carmen-Shannon/breakout/engine/renderer/buffer"
	"github.com/Carmen-Shannon/breakout/engine/renderer/material"
	"github.com/Carmen-Shannon/breakout/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	paddleWidth  = 2
	paddleHeight = 0.25
)

// Paddle is the player controlled bar. Its world node is in screen units; the plane is
// shaped through the local node.
type Paddle struct {
	model    model.Model
	body     physics.Body
	speed    float32
	friction float32
}

// NewPaddle creates a paddle at (x, y) that may travel between minX and maxX.
//
// Parameters:
//   - plane: the unit plane geometry
//   - x, y: the starting position
//   - minX, maxX: the horizontal travel limits of the paddle center
//   - speed: the acceleration while a direction key is held
//   - friction: the deceleration applied every step
//
// Returns:
//   - *Paddle: the paddle
func NewPaddle(plane buffer.Geometry, x, y, minX, maxX, speed, friction float32) *Paddle {
	m := model.NewModel(plane,
		material.NewBasicMaterial(material.WithName("paddle"), material.WithColor(common.ColorWhite)),
		model.WithName("paddle"),
		model.WithLocal(transform.NewSpaceMatrix(transform.WithScale(paddleWidth, paddleHeight))),
		model.WithWorld(transform.NewSpaceMatrix(transform.WithPosition(x, y))),
	)
	body := physics.NewBody(m.World(),
		physics.WithMaxSpeed(speed/4),
		physics.WithBounds(mgl32.Vec2{minX, y}, mgl32.Vec2{maxX, y}),
		physics.WithForce(physics.Resist(mgl32.Vec2{friction, 0}, nil)),
	)
	return &Paddle{model: m, body: body, speed: speed, friction: friction}
}

// Model returns the paddle's model.
func (p *Paddle) Model() model.Model {
	return p.model
}

// Body returns the paddle's physics body.
func (p *Paddle) Body() physics.Body {
	return p.body
}

// Control picks the paddle's force from the held keys. A or Left pushes left, D or Right
// pushes right; friction always applies.
func (p *Paddle) Control(kb input.Keyboard) {
	var direction float32
	if kb.Pressed(common.KeyA) || kb.Pressed(common.KeyLeft) {
		direction--
	}
	if kb.Pressed(common.KeyD) || kb.Pressed(common.KeyRight) {
		direction++
	}

	resist := physics.Resist(mgl32.Vec2{p.friction, 0}, nil)
	if direction == 0 {
		p.body.SetForce(resist)
		return
	}
	p.body.SetForce(physics.Push(mgl32.Vec2{direction * p.speed, 0}, resist))
}
