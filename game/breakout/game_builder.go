package breakout

import "go.uber.org/zap"

// GameBuilderOption is a functional option for configuring a Game.
type GameBuilderOption func(*Game)

// WithLayout sets the brick wall grid.
func WithLayout(layout Layout) GameBuilderOption {
	return func(g *Game) {
		g.layout = layout
	}
}

// WithPaddle sets the paddle acceleration and friction.
func WithPaddle(speed, friction float32) GameBuilderOption {
	return func(g *Game) {
		g.paddleSpeed = speed
		g.paddleFriction = friction
	}
}

// WithIntro sets how long the wall takes to slide in. Zero disables the slide.
func WithIntro(seconds float32) GameBuilderOption {
	return func(g *Game) {
		g.introSeconds = seconds
	}
}

// WithLogger sets the logger the game reports on.
func WithLogger(logger *zap.Logger) GameBuilderOption {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger.Named("breakout")
		}
	}
}
