// Package breakout lays out a brick wall and a paddle on top of the engine packages.
package breakout

import (
	"context"
	"fmt"

	"github.com/Carmen-Shannon/breakout/engine/camera"
	"github.com/Carmen-Shannon/breakout/engine/input"
	"github.com/Carmen-Shannon/breakout/engine/model"
	"github.com/Carmen-Shannon/breakout/engine/physics"
	"github.com/Carmen-Shannon/breakout/engine/registry"
	"github.com/Carmen-Shannon/breakout/engine/renderer"
	"github.com/Carmen-Shannon/breakout/engine/scene"
	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

const (
	// introDistance is how far above its resting place the wall starts, in unscaled units.
	introDistance = 40

	// margin is the free space kept around the playfield, in screen units.
	margin = 1

	// paddleGap is the distance between the bottom row and the paddle, in screen units.
	paddleGap = 6
)

// Game owns the breakout scene and steps it every frame.
type Game struct {
	logger *zap.Logger

	layout         Layout
	paddleSpeed    float32
	paddleFriction float32
	introSeconds   float32

	keyboard input.Keyboard
	camera   camera.OrthographicCamera
	scene    scene.Scene
	world    physics.World
	bricks   []model.Model
	paddle   *Paddle
	intro    *Intro
}

var _ physics.Simulator = &Game{}

// NewGame builds the wall and the paddle from the registry's plane and places them in a new
// scene. The game steps itself as the scene's simulator.
//
// Parameters:
//   - reg: the geometry registry
//   - kb: the keyboard driving the paddle
//   - options: variadic list of GameBuilderOption functions
//
// Returns:
//   - *Game: the game
//   - error: an error if the plane cannot be built
func NewGame(reg registry.Registry, kb input.Keyboard, options ...GameBuilderOption) (*Game, error) {
	if reg == nil || kb == nil {
		panic("breakout: NewGame requires a registry and a keyboard")
	}

	g := &Game{
		logger:         zap.NewNop(),
		layout:         DefaultLayout(),
		paddleSpeed:    80,
		paddleFriction: 30,
		introSeconds:   1.5,
		keyboard:       kb,
		world:          physics.NewWorld(),
	}
	for _, opt := range options {
		opt(g)
	}

	plane, err := reg.Plane()
	if err != nil {
		return nil, fmt.Errorf("failed to build plane: %w", err)
	}

	centerX := g.centerX()
	halfWidth := g.layout.Width() / 2
	paddleY := -paddleGap
	travel := halfWidth - paddleWidth/2
	g.paddle = NewPaddle(plane, centerX, float32(paddleY), centerX-travel, centerX+travel, g.paddleSpeed, g.paddleFriction)
	g.world.Add(g.paddle.Body())

	g.bricks = g.layout.Bricks(plane)
	g.intro = NewIntro(g.bricks, introDistance, g.introSeconds)

	g.camera = camera.NewOrthographicCamera(1, camera.WithPosition(centerX, g.centerY()))
	g.scene = scene.NewScene("breakout", g.camera, scene.WithSimulator(g))
	g.scene.AddModel(MaterialTag, g.bricks...)
	g.scene.AddModel(MaterialTag, g.paddle.Model())
	g.scene.OnResize(g.fit)

	width, height := g.camera.Extents()
	g.fit(int(width*2), int(height*2))

	g.logger.Info("Game created",
		zap.Int("columns", g.layout.Columns),
		zap.Int("rows", g.layout.Rows),
		zap.Int("bricks", len(g.bricks)),
	)
	return g, nil
}

// centerX is the horizontal center of the wall.
func (g *Game) centerX() float32 {
	return g.layout.XOffset() + (g.layout.Width()-1)/2
}

// centerY is the vertical center of the playfield spanning the paddle to the top row.
func (g *Game) centerY() float32 {
	return (g.layout.Height() - paddleGap) / 2
}

// fit zooms the camera so the playfield fills the drawing buffer.
func (g *Game) fit(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	fieldWidth := g.layout.Width() + 2*margin
	fieldHeight := g.layout.Height() + paddleGap + 2*margin
	zoom := math32.Min(float32(width)/fieldWidth, float32(height)/fieldHeight)
	g.camera.SetZoom(zoom)
	g.logger.Debug("Camera fitted", zap.Int("width", width), zap.Int("height", height), zap.Float32("zoom", zoom))
}

// Scene returns the game's scene.
func (g *Game) Scene() scene.Scene {
	return g.scene
}

// Camera returns the game's camera.
func (g *Game) Camera() camera.OrthographicCamera {
	return g.camera
}

// Bricks returns the wall bricks, row by row from the bottom.
func (g *Game) Bricks() []model.Model {
	return g.bricks
}

// Paddle returns the player's paddle.
func (g *Game) Paddle() *Paddle {
	return g.paddle
}

// Intro returns the wall's slide-in animation.
func (g *Game) Intro() *Intro {
	return g.intro
}

// Simulate advances the intro, reads the keyboard into the paddle and steps the physics.
//
// Parameters:
//   - dt: the step in seconds
func (g *Game) Simulate(dt float32) {
	g.intro.Update(dt)
	g.paddle.Control(g.keyboard)
	g.world.Simulate(dt)
}

// RendererOptions returns the renderer options serving the embedded shaders.
//
// Returns:
//   - []renderer.RendererBuilderOption: the shader file system and pre-processor options
//   - error: an error if the embedded chunks cannot be read
func RendererOptions() ([]renderer.RendererBuilderOption, error) {
	pp, err := PreProcessor()
	if err != nil {
		return nil, err
	}
	return []renderer.RendererBuilderOption{
		renderer.WithShaderFS(ShaderFS()),
		renderer.WithPreProcessor(pp),
	}, nil
}

// Load builds the material program for the renderer's shading language and composes the
// scene. It must be called on the goroutine the graphics context is current on.
//
// Parameters:
//   - ctx: cancels waiting for the shader sources
//   - r: a renderer created with RendererOptions
//
// Returns:
//   - error: an error if the program cannot be built or the scene composed
func (g *Game) Load(ctx context.Context, r renderer.Renderer) error {
	vert, frag := ProgramPaths(r.Context().Language())
	if _, err := r.CreateProgram(MaterialTag, vert, frag).Await(ctx); err != nil {
		return fmt.Errorf("failed to create %s program: %w", MaterialTag, err)
	}
	if err := r.Compose(g.scene); err != nil {
		return fmt.Errorf("failed to compose scene: %w", err)
	}
	return nil
}
