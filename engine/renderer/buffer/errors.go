package buffer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
)

var (
	// ErrNotComposed is returned when a buffer or geometry is used before Compose.
	ErrNotComposed = errors.New("buffer: not composed")

	// ErrNoAttributes is returned when a vertex count is requested from a vertex buffer
	// that has no attached attributes.
	ErrNoAttributes = errors.New("buffer: no attributes attached")
)

// UnsupportedUsageError is returned when a buffer is given a usage outside the static set.
type UnsupportedUsageError struct {
	Usage backend.Usage
}

func (e *UnsupportedUsageError) Error() string {
	return fmt.Sprintf("buffer: unsupported usage %s (%d)", e.Usage, int(e.Usage))
}
