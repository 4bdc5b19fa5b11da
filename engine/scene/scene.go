package scene

import (
	"sync"

	"github.com/Carmen-Shannon/breakout/engine/camera"
	"github.com/Carmen-Shannon/breakout/engine/model"
	"github.com/Carmen-Shannon/breakout/engine/physics"
)

// slot holds the models drawn by the program registered under tag.
type slot struct {
	tag    string
	models []model.Model
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	cam    camera.Camera

	slots []*slot
	index map[string]int

	simulator physics.Simulator
	onResize  []func(width, height int)
}

// Scene is a tag-indexed registry of models. Each tag names the program its models are drawn
// with. Tags keep the order they were first seen in and models keep the order they were
// added in. The same model may appear several times under one tag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// AddModel appends models under tag, creating the tag's slot on first use.
	//
	// Parameters:
	//   - tag: the program tag
	//   - models: the models to append, in order
	AddModel(tag string, models ...model.Model)

	// RemoveModel removes, for each given model, the first occurrence under tag. Unknown
	// tags and models that are not present are ignored.
	//
	// Parameters:
	//   - tag: the program tag
	//   - models: the models to remove
	RemoveModel(tag string, models ...model.Model)

	// Models returns a copy of the models under tag, or an empty slice for an unknown tag.
	//
	// Parameters:
	//   - tag: the program tag
	//
	// Returns:
	//   - []model.Model: the models in insertion order
	Models(tag string) []model.Model

	// Tags returns the tags in the order they were first seen.
	Tags() []string

	// Count returns the number of models across every tag.
	Count() int

	// Clear removes every tag and model. GPU resources are not released.
	Clear()

	// SetSimulator attaches the simulation stepped by Simulate. nil detaches it.
	SetSimulator(sim physics.Simulator)

	// Simulator returns the attached simulation, or nil.
	Simulator() physics.Simulator

	// Simulate steps the attached simulation, if any.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	Simulate(deltaTime float32)

	// OnResize registers a listener notified after the scene is resized.
	//
	// Parameters:
	//   - listener: function receiving the new drawing buffer size in pixels
	OnResize(listener func(width, height int))

	// Resize adapts the camera to a new drawing buffer size and notifies resize listeners.
	//
	// Parameters:
	//   - width: the width in pixels
	//   - height: the height in pixels
	Resize(width, height int)
}

var _ Scene = &scene{}

// NewScene creates a new Scene viewed through cam.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera, required
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:     &sync.RWMutex{},
		name:   name,
		active: true,
		cam:    cam,
		index:  make(map[string]int),
	}

	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	if cam == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) AddModel(tag string, models ...model.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addModel(tag, models...)
}

// addModel appends to the tag's slot. Caller must hold the write lock.
func (s *scene) addModel(tag string, models ...model.Model) {
	i, ok := s.index[tag]
	if !ok {
		i = len(s.slots)
		s.index[tag] = i
		s.slots = append(s.slots, &slot{tag: tag})
	}
	s.slots[i].models = append(s.slots[i].models, models...)
}

func (s *scene) RemoveModel(tag string, models ...model.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[tag]
	if !ok {
		return
	}
	sl := s.slots[i]
	for _, m := range models {
		for j, existing := range sl.models {
			if existing == m {
				sl.models = append(sl.models[:j], sl.models[j+1:]...)
				break
			}
		}
	}
}

func (s *scene) Models(tag string) []model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[tag]
	if !ok {
		return []model.Model{}
	}
	out := make([]model.Model, len(s.slots[i].models))
	copy(out, s.slots[i].models)
	return out
}

func (s *scene) Tags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tags := make([]string, 0, len(s.slots))
	for _, sl := range s.slots {
		tags = append(tags, sl.tag)
	}
	return tags
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, sl := range s.slots {
		n += len(sl.models)
	}
	return n
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = nil
	s.index = make(map[string]int)
}

func (s *scene) SetSimulator(sim physics.Simulator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulator = sim
}

func (s *scene) Simulator() physics.Simulator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.simulator
}

func (s *scene) Simulate(deltaTime float32) {
	if sim := s.Simulator(); sim != nil {
		sim.Simulate(deltaTime)
	}
}

func (s *scene) OnResize(listener func(width, height int)) {
	if listener == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onResize = append(s.onResize, listener)
}

func (s *scene) Resize(width, height int) {
	s.mu.RLock()
	cam := s.cam
	listeners := make([]func(int, int), len(s.onResize))
	copy(listeners, s.onResize)
	s.mu.RUnlock()

	cam.Resize(width, height)
	for _, l := range listeners {
		l(width, height)
	}
}
