package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/breakout/engine/renderer"
	"github.com/Carmen-Shannon/breakout/engine/scene"
	"github.com/Carmen-Shannon/breakout/engine/window"
	"go.uber.org/zap"
)

// maxTickCatchUp bounds how much elapsed time one frame may turn into ticks after a stall.
const maxTickCatchUp = 250 * time.Millisecond

// engine implements the Engine interface.
// Drives the window, the fixed-rate tick and the render loop from one goroutine.
type engine struct {
	mu *sync.Mutex

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	logger   *zap.Logger

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxFrames        uint64        // 0 = until quit
	frames           uint64
	now              func() time.Time
}

// Engine is the main entry point for the engine.
// It orchestrates the tick loop, the render loop, and window events.
type Engine interface {
	// Window returns the underlying window, nil when running without one.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer that draws the scenes.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic and input processing that must run at a fixed rate.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the tick duration in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// The active scene with the highest key is the one rendered and simulated.
	//
	// Parameters:
	//   - key: the z-index of the scene
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Frames returns how many frames have been rendered.
	Frames() uint64

	// Run drives the loop on the calling goroutine until Quit is called, ctx is done, the
	// window closes or the frame limit given with WithMaxFrames is reached.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() when the context ended the loop, nil otherwise
	Run(ctx context.Context) error

	// Quit signals the loop to stop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine drawing through r.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - r: the renderer used for every frame
//   - options: functional options for engine configuration (window, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(r renderer.Renderer, options ...EngineBuilderOption) Engine {
	if r == nil {
		panic("engine: NewEngine requires a renderer")
	}
	e := &engine{
		mu:             &sync.Mutex{},
		quitChannel:    make(chan struct{}),
		renderer:       r,
		logger:         zap.NewNop(),
		scenes:         make(map[int]scene.Scene),
		engineTickRate: time.Second / 60,
		now:            time.Now,
	}

	for _, opt := range options {
		opt(e)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

// Quit signals the loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}

// topScene returns the active scene with the highest z-index.
func (e *engine) topScene() scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			return s
		}
	}
	return nil
}

func (e *engine) Run(ctx context.Context) error {
	e.mu.Lock()
	tickRate := e.engineTickRate
	e.mu.Unlock()
	e.logger.Info("engine started",
		zap.Duration("tick_rate", tickRate),
		zap.Duration("frame_limit", e.renderFrameLimit),
	)

	lastFrame := e.now()
	var accumulator time.Duration
	for {
		select {
		case <-ctx.Done():
			e.logger.Info("engine stopped", zap.Uint64("frames", e.Frames()), zap.Error(ctx.Err()))
			return ctx.Err()
		default:
		}
		if e.quitting() {
			break
		}
		if e.window != nil && !e.window.PollEvents() {
			break
		}

		frameStart := e.now()
		elapsed := frameStart.Sub(lastFrame)
		lastFrame = frameStart
		dt := float32(elapsed.Seconds())

		e.mu.Lock()
		tickRate = e.engineTickRate
		tick := e.tickCallback
		e.mu.Unlock()
		if tick != nil {
			accumulator = min(accumulator+elapsed, maxTickCatchUp)
			for accumulator >= tickRate {
				tick(float32(tickRate.Seconds()))
				accumulator -= tickRate
			}
		}

		if s := e.topScene(); s != nil {
			if err := e.renderer.Render(s, dt); err != nil {
				e.logger.Error("frame failed", zap.String("scene", s.Name()), zap.Error(err))
			}
		}

		e.mu.Lock()
		e.frames++
		frames := e.frames
		render := e.renderCallback
		e.mu.Unlock()
		if render != nil {
			render(dt)
		}
		if e.maxFrames > 0 && frames >= e.maxFrames {
			break
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - e.now().Sub(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}

	e.logger.Info("engine stopped", zap.Uint64("frames", e.Frames()))
	return nil
}

// SetTickRate sets the engine tick rate in ticks per second.
// The change takes effect on the next frame.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engineTickRate = time.Duration(float64(time.Second) / fps)
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	if s == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[int]scene.Scene, len(e.scenes))
	for k, s := range e.scenes {
		out[k] = s
	}
	return out
}

func (e *engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}
