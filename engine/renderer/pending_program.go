package renderer

import (
	"context"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/breakout/engine/renderer/program"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
)

// PendingProgram is a program whose sources are still loading on the worker pool.
// Await it on the goroutine that owns the graphics context.
type PendingProgram struct {
	r   *renderer
	tag string

	loaded      chan struct{}
	resolveOnce sync.Once
	sources     []shader.Source
	loadErr     error

	buildOnce sync.Once
	program   program.Program
	err       error
}

func newPendingProgram(r *renderer, tag string) *PendingProgram {
	return &PendingProgram{
		r:      r,
		tag:    tag,
		loaded: make(chan struct{}),
	}
}

// resolve records the loaded sources. Only the first call has an effect.
func (p *PendingProgram) resolve(sources []shader.Source, err error) {
	p.resolveOnce.Do(func() {
		p.sources = sources
		p.loadErr = err
		close(p.loaded)
	})
}

// Tag returns the tag the program will be registered under.
func (p *PendingProgram) Tag() string {
	return p.tag
}

// Done returns a channel closed once the sources have been loaded, successfully or not.
func (p *PendingProgram) Done() <-chan struct{} {
	return p.loaded
}

// Await blocks until the sources are loaded, then builds and registers the program on the
// calling goroutine. Later calls return the same result.
//
// Parameters:
//   - ctx: cancels the wait
//
// Returns:
//   - program.Program: the registered program
//   - error: ctx.Err() on cancellation, or the load or build error
func (p *PendingProgram) Await(ctx context.Context) (program.Program, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.loaded:
	}

	p.buildOnce.Do(func() {
		if p.loadErr != nil {
			p.err = fmt.Errorf("failed to load program %q: %w", p.tag, p.loadErr)
			return
		}
		p.program, p.err = p.r.CreateProgramFromSource(p.tag, p.sources)
	})
	return p.program, p.err
}
