// Package input tracks keyboard state between window events and the frame loop.
package input

import "sync"

// KeyState is a bitmask describing a key. Down and Up are edges that are consumed when
// observed; Active holds while the key is pressed.
type KeyState uint8

const (
	Idle   KeyState = 0
	Active KeyState = 1 << 0
	Down   KeyState = 1 << 1
	Up     KeyState = 1 << 2
)

// Has reports whether every bit of flag is set.
func (s KeyState) Has(flag KeyState) bool {
	return s&flag == flag
}

// keyboard is the implementation of the Keyboard interface.
type keyboard struct {
	mu   *sync.Mutex
	keys map[uint32]KeyState
}

// Keyboard records key presses and releases from window callbacks and answers edge and
// level queries from the frame loop. It is safe for concurrent use.
type Keyboard interface {
	// Press records a key press. A key that is already active ignores repeats.
	//
	// Parameters:
	//   - key: the key code
	Press(key uint32)

	// Release records a key release. Only an active key registers the release.
	//
	// Parameters:
	//   - key: the key code
	Release(key uint32)

	// KeyDown reports whether the key went down since the last observation and consumes the edge.
	//
	// Parameters:
	//   - key: the key code
	//
	// Returns:
	//   - bool: true once per press
	KeyDown(key uint32) bool

	// KeyUp reports whether the key was released since the last observation and resets the key to Idle.
	//
	// Parameters:
	//   - key: the key code
	//
	// Returns:
	//   - bool: true once per release
	KeyUp(key uint32) bool

	// Pressed reports whether the key is held.
	//
	// Parameters:
	//   - key: the key code
	//
	// Returns:
	//   - bool: true while the key is held
	Pressed(key uint32) bool

	// State returns the raw state of a key.
	State(key uint32) KeyState

	// Reset forgets every key.
	Reset()
}

var _ Keyboard = &keyboard{}

// NewKeyboard creates a Keyboard with every key Idle.
func NewKeyboard() Keyboard {
	return &keyboard{
		mu:   &sync.Mutex{},
		keys: make(map[uint32]KeyState),
	}
}

func (k *keyboard) Press(key uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.keys[key].Has(Active) {
		k.keys[key] = Down | Active
	}
}

func (k *keyboard) Release(key uint32) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.keys[key].Has(Active) {
		k.keys[key] = Up
	}
}

func (k *keyboard) KeyDown(key uint32) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	state := k.keys[key]
	if !state.Has(Down) {
		return false
	}
	k.keys[key] = state &^ Down
	return true
}

func (k *keyboard) KeyUp(key uint32) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.keys[key].Has(Up) {
		return false
	}
	k.keys[key] = Idle
	return true
}

func (k *keyboard) Pressed(key uint32) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[key].Has(Active)
}

func (k *keyboard) State(key uint32) KeyState {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[key]
}

func (k *keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = make(map[uint32]KeyState)
}
