package engine

import (
	"context"
	"testing"
	"time"

	"github.com/Carmen-Shannon/breakout/engine/camera"
	"github.com/Carmen-Shannon/breakout/engine/renderer"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingSimulator struct {
	steps int
	total float32
}

func (c *countingSimulator) Simulate(dt float32) {
	c.steps++
	c.total += dt
}

// steppingClock advances by step on every read.
func steppingClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func newHeadlessRenderer(t *testing.T) (renderer.Renderer, backend.Headless) {
	t.Helper()
	ctx := backend.NewHeadless()
	r := renderer.NewRenderer(ctx)
	t.Cleanup(r.Release)
	return r, ctx
}

func TestRunStopsAfterMaxFrames(t *testing.T) {
	r, ctx := newHeadlessRenderer(t)
	sim := &countingSimulator{}
	s := scene.NewScene("main", camera.NewOrthographicCamera(1), scene.WithSimulator(sim))

	renders := 0
	e := NewEngine(r,
		WithScene(0, s),
		WithMaxFrames(5),
		WithRenderCallback(func(float32) { renders++ }),
		withClock(steppingClock(10*time.Millisecond)),
	)

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(5), e.Frames())
	assert.Equal(t, 5, renders)
	assert.Equal(t, 5, sim.steps)
	assert.InDelta(t, 0.05, sim.total, 1e-5)
	assert.Equal(t, 5, ctx.Stats().Presents)
}

func TestRunFixedRateTicks(t *testing.T) {
	r, _ := newHeadlessRenderer(t)

	var ticks []float32
	e := NewEngine(r,
		WithTickRate(50),
		WithTickCallback(func(dt float32) { ticks = append(ticks, dt) }),
		WithMaxFrames(10),
		withClock(steppingClock(10*time.Millisecond)),
	)

	require.NoError(t, e.Run(context.Background()))
	// 100ms of frames at 50Hz
	assert.Len(t, ticks, 5)
	for _, dt := range ticks {
		assert.InDelta(t, 0.02, dt, 1e-6)
	}
}

func TestRunRendersTopActiveScene(t *testing.T) {
	r, _ := newHeadlessRenderer(t)
	background := &countingSimulator{}
	overlay := &countingSimulator{}
	bg := scene.NewScene("background", camera.NewOrthographicCamera(1), scene.WithSimulator(background))
	top := scene.NewScene("overlay", camera.NewOrthographicCamera(1), scene.WithSimulator(overlay))

	e := NewEngine(r, WithScene(0, bg), WithScene(10, top), WithMaxFrames(2))
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 2, overlay.steps)
	assert.Equal(t, 0, background.steps)

	top.SetActive(false)
	e = NewEngine(r, WithScene(0, bg), WithScene(10, top), WithMaxFrames(3))
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 3, background.steps)
}

func TestQuitFromRenderCallback(t *testing.T) {
	r, _ := newHeadlessRenderer(t)

	var e Engine
	e = NewEngine(r, WithRenderCallback(func(float32) {
		if e.Frames() == 3 {
			e.Quit()
			e.Quit()
		}
	}))

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(3), e.Frames())
}

func TestRunHonoursContext(t *testing.T) {
	r, _ := newHeadlessRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())

	e := NewEngine(r, WithRenderCallback(func(float32) { cancel() }))
	err := e.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint64(1), e.Frames())
}

func TestRunLogsLifecycle(t *testing.T) {
	r, _ := newHeadlessRenderer(t)
	core, logs := observer.New(zap.InfoLevel)

	e := NewEngine(r, WithMaxFrames(1), WithLogger(zap.New(core)))
	require.NoError(t, e.Run(context.Background()))

	assert.Equal(t, 1, logs.FilterMessage("engine started").Len())
	stopped := logs.FilterMessage("engine stopped").All()
	require.Len(t, stopped, 1)
	assert.Equal(t, "engine", stopped[0].LoggerName)
}

func TestSceneRegistry(t *testing.T) {
	r, _ := newHeadlessRenderer(t)
	s := scene.NewScene("main", camera.NewOrthographicCamera(1))

	e := NewEngine(r)
	e.AddScene(1, s)
	e.AddScene(2, nil)
	assert.Same(t, s, e.Scene(1))
	assert.Nil(t, e.Scene(2))

	scenes := e.Scenes()
	delete(scenes, 1)
	assert.NotNil(t, e.Scene(1))

	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))
	assert.Nil(t, e.Window())
	assert.Same(t, r, e.Renderer())
}

func TestNewEngineRequiresRenderer(t *testing.T) {
	assert.PanicsWithValue(t, "engine: NewEngine requires a renderer", func() {
		NewEngine(nil)
	})
}

func TestNewContext(t *testing.T) {
	ctx, err := NewContext(renderer.BackendTypeHeadless, nil, renderer.PresentModeVSync, nil)
	require.NoError(t, err)
	width, height := ctx.DrawingBufferSize()
	assert.Equal(t, 800, width)
	assert.Equal(t, 600, height)

	_, err = NewContext(renderer.BackendTypeGL, nil, renderer.PresentModeVSync, nil)
	assert.ErrorIs(t, err, ErrNoWindow)
	_, err = NewContext(renderer.BackendTypeWGPU, nil, renderer.PresentModeUncapped, nil)
	assert.ErrorIs(t, err, ErrNoWindow)

	_, err = NewContext(renderer.BackendType(42), nil, renderer.PresentModeVSync, nil)
	assert.Error(t, err)
}
