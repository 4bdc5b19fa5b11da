package renderer

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/profiler"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/program"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/Carmen-Shannon/breakout/engine/scene"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrNoProgram is returned when a scene tag has no program registered under it.
	ErrNoProgram = errors.New("no program registered for tag")

	// ErrNoShaderFS is returned when a program is loaded from files without a shader file system.
	ErrNoShaderFS = errors.New("no shader file system configured")
)

// taggedProgram pairs a program with the tag its models are registered under.
type taggedProgram struct {
	tag     string
	program program.Program
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	ctx      backend.Context
	logger   *zap.Logger
	profiler *profiler.Profiler

	pool          worker.DynamicWorkerPool
	ownsPool      bool
	loaderWorkers int
	taskID        int

	shaderFS     fs.FS
	preProcessor shader.PreProcessor

	clearColor common.Color
	programs   []taggedProgram

	width, height int
}

// Renderer draws the models of a Scene with the program registered under each model's tag.
//
// Programs are kept in registration order and drawn in that order every frame. Everything that
// touches the graphics context must run on the goroutine the context is current on; only shader
// source loading is offloaded to the worker pool.
type Renderer interface {
	// Context returns the graphics context the renderer draws through.
	Context() backend.Context

	// CreateProgram starts loading the vertex and fragment stages from the shader file system on
	// the worker pool. The program is built and registered when the result is awaited.
	//
	// Parameters:
	//   - tag: the tag the program is registered under, replacing any program with the same tag
	//   - vertexPath: path of the vertex stage within the shader file system
	//   - fragmentPath: path of the fragment stage within the shader file system
	//
	// Returns:
	//   - *PendingProgram: a handle to await the built program on
	CreateProgram(tag, vertexPath, fragmentPath string) *PendingProgram

	// CreateProgramFromSource builds a program from in-memory sources and registers it.
	//
	// Parameters:
	//   - tag: the tag the program is registered under, replacing any program with the same tag
	//   - sources: the pre-processed stages
	//
	// Returns:
	//   - program.Program: the linked program
	//   - error: a build error from the program package
	CreateProgramFromSource(tag string, sources []shader.Source) (program.Program, error)

	// Program looks up the program registered under tag.
	//
	// Parameters:
	//   - tag: the program tag
	//
	// Returns:
	//   - program.Program: the program, nil when not found
	//   - bool: whether a program is registered under tag
	Program(tag string) (program.Program, bool)

	// Tags returns the registered program tags in registration order.
	Tags() []string

	// SetClearColor sets the color the drawing buffer is cleared to every frame.
	SetClearColor(color common.Color)

	// Compose resizes the scene to the drawing buffer and uploads the geometry of every model
	// in the scene, binding its attributes to the program of the model's tag.
	//
	// Parameters:
	//   - s: the scene to compose
	//
	// Returns:
	//   - error: ErrNoProgram if a scene tag has no program, or the first composition error
	Compose(s scene.Scene) error

	// Render draws one frame of the scene. A changed drawing buffer size resizes the scene and
	// the viewport first, then the scene simulation is stepped and every tag is drawn. Every
	// registered program is used and receives the camera, even when its tag holds no models.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - deltaTime: elapsed time since the last frame in seconds
	//
	// Returns:
	//   - error: the combined draw and present errors of the frame
	Render(s scene.Scene, deltaTime float32) error

	// Decompose releases the geometry of every model in the scene and deletes every program.
	//
	// Parameters:
	//   - s: the scene to release
	//
	// Returns:
	//   - error: the combined release errors
	Decompose(s scene.Scene) error

	// Release stops the worker pool if the renderer created it.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing through ctx.
//
// Parameters:
//   - ctx: the graphics context, required
//   - options: variadic list of RendererBuilderOption functions
//
// Returns:
//   - Renderer: the new renderer
func NewRenderer(ctx backend.Context, options ...RendererBuilderOption) Renderer {
	if ctx == nil {
		panic("renderer: NewRenderer requires a graphics context")
	}

	r := &renderer{
		mu:            &sync.Mutex{},
		ctx:           ctx,
		logger:        zap.NewNop(),
		loaderWorkers: 2,
		clearColor:    common.ColorBlack,
	}

	for _, option := range options {
		option(r)
	}

	if r.pool == nil {
		r.pool = worker.NewDynamicWorkerPool(r.loaderWorkers, 64, 1*time.Second)
		r.ownsPool = true
	}
	if r.preProcessor == nil {
		r.preProcessor = shader.NewPreProcessor()
	}

	r.width, r.height = ctx.DrawingBufferSize()
	ctx.Viewport(0, 0, r.width, r.height)
	ctx.ClearColor(r.clearColor.RGBA(1))
	return r
}

func (r *renderer) Context() backend.Context {
	return r.ctx
}

func (r *renderer) CreateProgram(tag, vertexPath, fragmentPath string) *PendingProgram {
	pending := newPendingProgram(r, tag)
	if r.shaderFS == nil {
		pending.resolve(nil, ErrNoShaderFS)
		return pending
	}

	loader := shader.NewLoader(r.shaderFS, r.preProcessor)
	r.mu.Lock()
	id := r.taskID
	r.taskID++
	r.mu.Unlock()

	r.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: tag,
		Do: func() (any, error) {
			sources, err := loader.LoadProgram(vertexPath, fragmentPath)
			pending.resolve(sources, err)
			return sources, err
		},
	})
	return pending
}

func (r *renderer) CreateProgramFromSource(tag string, sources []shader.Source) (program.Program, error) {
	p, err := program.Build(r.ctx, sources, program.WithName(tag), program.WithLogger(r.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to build program %q: %w", tag, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, tp := range r.programs {
		if tp.tag == tag {
			tp.program.Delete(r.ctx)
			r.programs[i].program = p
			r.logger.Info("Program replaced", zap.String("tag", tag), zap.Uint64("program", p.ID()))
			return p, nil
		}
	}
	r.programs = append(r.programs, taggedProgram{tag: tag, program: p})
	r.logger.Info("Program registered", zap.String("tag", tag), zap.Uint64("program", p.ID()))
	return p, nil
}

func (r *renderer) Program(tag string) (program.Program, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tp := range r.programs {
		if tp.tag == tag {
			return tp.program, true
		}
	}
	return nil, false
}

func (r *renderer) Tags() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	tags := make([]string, 0, len(r.programs))
	for _, tp := range r.programs {
		tags = append(tags, tp.tag)
	}
	return tags
}

func (r *renderer) SetClearColor(color common.Color) {
	r.mu.Lock()
	r.clearColor = color
	r.mu.Unlock()
	r.ctx.ClearColor(color.RGBA(1))
}

// snapshot copies the program list so frames do not hold the lock while drawing.
func (r *renderer) snapshot() []taggedProgram {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]taggedProgram, len(r.programs))
	copy(out, r.programs)
	return out
}

func (r *renderer) Compose(s scene.Scene) error {
	for _, tag := range s.Tags() {
		if _, ok := r.Program(tag); !ok && len(s.Models(tag)) > 0 {
			return fmt.Errorf("failed to compose tag %q: %w", tag, ErrNoProgram)
		}
	}

	s.Resize(r.width, r.height)

	composed := 0
	for _, tp := range r.snapshot() {
		for _, m := range s.Models(tp.tag) {
			if err := m.Compose(r.ctx, tp.program); err != nil {
				return fmt.Errorf("failed to compose model %q under tag %q: %w", m.Name(), tp.tag, err)
			}
			composed++
		}
	}
	r.logger.Debug("Scene composed", zap.String("scene", s.Name()), zap.Int("models", composed))
	return nil
}

func (r *renderer) Render(s scene.Scene, deltaTime float32) error {
	start := time.Now()

	width, height := r.ctx.DrawingBufferSize()
	if width != r.width || height != r.height {
		r.width, r.height = width, height
		s.Resize(width, height)
		r.ctx.Viewport(0, 0, width, height)
		r.logger.Debug("Drawing buffer resized", zap.Int("width", width), zap.Int("height", height))
	}

	s.Simulate(deltaTime)
	r.ctx.Clear(backend.ColorBit | backend.DepthBit)

	var errs error
	draws := 0
	cam := s.Camera()
	for _, tp := range r.snapshot() {
		tp.program.Use(r.ctx)
		if err := cam.Draw(r.ctx, tp.program); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to draw camera for tag %q: %w", tp.tag, err))
			continue
		}
		for _, m := range s.Models(tp.tag) {
			if err := m.Draw(r.ctx, tp.program); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("failed to draw model %q under tag %q: %w", m.Name(), tp.tag, err))
				continue
			}
			draws++
		}
	}

	if err := r.ctx.Present(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("failed to present frame: %w", err))
	}
	if r.profiler != nil {
		r.profiler.Tick(time.Since(start), draws)
	}
	return errs
}

func (r *renderer) Decompose(s scene.Scene) error {
	var errs error
	for _, tag := range s.Tags() {
		for _, m := range s.Models(tag) {
			errs = multierr.Append(errs, m.Decompose(r.ctx))
		}
	}

	r.mu.Lock()
	for _, tp := range r.programs {
		tp.program.Delete(r.ctx)
	}
	r.programs = nil
	r.mu.Unlock()

	r.logger.Debug("Scene decomposed", zap.String("scene", s.Name()))
	return errs
}

func (r *renderer) Release() {
	if r.ownsPool {
		r.pool.Stop()
	}
}
