package buffer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
)

// Composable is a resource that is allocated on the GPU by Compose and released by Decompose.
type Composable interface {
	// Compose allocates the GPU resource and uploads its data. Composing an already composed
	// resource does not allocate again.
	//
	// Parameters:
	//   - ctx: the graphics context
	//
	// Returns:
	//   - error: an error if the resource could not be allocated
	Compose(ctx backend.Context) error

	// Decompose releases the GPU resource.
	//
	// Parameters:
	//   - ctx: the graphics context
	//
	// Returns:
	//   - error: ErrNotComposed if the resource was never composed
	Decompose(ctx backend.Context) error
}

// Drawable is a resource that can issue a draw call.
type Drawable interface {
	Draw(ctx backend.Context) error
}

// bufferObject is the shared state of every buffer variant.
type bufferObject struct {
	mu *sync.Mutex

	target      backend.Target
	elementType backend.ElementType
	usage       backend.Usage
	payload     func() []byte
	count       int

	handle backend.Buffer
	owners int
}

// BufferObject is a single GPU buffer with a usage policy and a reference counted lifecycle.
// A buffer may be shared by several geometries: each Compose registers one owner, each
// Decompose releases one, and the GPU handle is deleted when the last owner releases it.
type BufferObject interface {
	Composable

	// Bind binds the buffer to its target. The buffer must be composed.
	//
	// Parameters:
	//   - ctx: the graphics context
	//
	// Returns:
	//   - error: ErrNotComposed if the buffer has no handle
	Bind(ctx backend.Context) error

	// Handle returns the GPU handle, 0 until composed.
	Handle() backend.Buffer

	// Target returns the binding point the buffer is uploaded to.
	Target() backend.Target

	// ElementType returns the scalar type of the payload.
	ElementType() backend.ElementType

	// Count returns the number of scalar elements in the payload.
	Count() int

	// Usage returns the upload hint.
	Usage() backend.Usage

	// SetUsage changes the upload hint. Only the static usages are accepted.
	//
	// Parameters:
	//   - usage: the new upload hint
	//
	// Returns:
	//   - error: *UnsupportedUsageError for any usage other than StaticDraw, StaticCopy or StaticRead
	SetUsage(usage backend.Usage) error

	// Owners returns the number of Compose calls not yet matched by a Decompose.
	Owners() int
}

var _ BufferObject = &bufferObject{}

func newBufferObject(target backend.Target, elementType backend.ElementType, count int, payload func() []byte, options ...BufferBuilderOption) (*bufferObject, error) {
	b := &bufferObject{
		mu:          &sync.Mutex{},
		target:      target,
		elementType: elementType,
		usage:       backend.StaticDraw,
		payload:     payload,
		count:       count,
	}

	for _, opt := range options {
		opt(b)
	}

	if err := validateUsage(b.usage); err != nil {
		return nil, err
	}
	return b, nil
}

func validateUsage(usage backend.Usage) error {
	switch usage {
	case backend.StaticDraw, backend.StaticCopy, backend.StaticRead:
		return nil
	default:
		return &UnsupportedUsageError{Usage: usage}
	}
}

func (b *bufferObject) Compose(ctx backend.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handle != 0 {
		b.owners++
		return nil
	}

	handle, err := ctx.CreateBuffer()
	if err != nil {
		return fmt.Errorf("failed to create buffer: %w", err)
	}
	ctx.BindBuffer(b.target, handle)
	ctx.BufferData(b.target, b.payload(), b.usage)

	b.handle = handle
	b.owners = 1
	return nil
}

func (b *bufferObject) Decompose(ctx backend.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handle == 0 {
		return ErrNotComposed
	}
	b.owners--
	if b.owners > 0 {
		return nil
	}

	ctx.DeleteBuffer(b.handle)
	b.handle = 0
	b.owners = 0
	return nil
}

func (b *bufferObject) Bind(ctx backend.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.handle == 0 {
		return ErrNotComposed
	}
	ctx.BindBuffer(b.target, b.handle)
	return nil
}

func (b *bufferObject) Handle() backend.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handle
}

func (b *bufferObject) Target() backend.Target {
	return b.target
}

func (b *bufferObject) ElementType() backend.ElementType {
	return b.elementType
}

func (b *bufferObject) Count() int {
	return b.count
}

func (b *bufferObject) Usage() backend.Usage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.usage
}

func (b *bufferObject) SetUsage(usage backend.Usage) error {
	if err := validateUsage(usage); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.usage = usage
	return nil
}

func (b *bufferObject) Owners() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.owners
}
