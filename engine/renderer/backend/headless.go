package backend

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Stats are the call counters of a Headless context.
type Stats struct {
	BufferUploads  int
	UniformUploads int
	ProgramSwaps   int
	DrawCalls      int
	Clears         int
	Presents       int

	LiveBuffers      int
	LiveVertexArrays int
	LiveShaders      int
	LivePrograms     int
}

// DrawCall is one recorded draw.
type DrawCall struct {
	Program     Program
	VertexArray VertexArray
	Mode        DrawMode
	Count       int
	Indexed     bool
}

// Headless is a Context that renders nothing and records everything. Shader sources are
// reflected with the shader package so programs report the same attributes and uniforms
// a real driver would.
type Headless interface {
	Context

	// Stats returns a snapshot of the call counters.
	Stats() Stats

	// ResetStats zeroes the call counters, uniform records and draw log. Live objects are kept.
	ResetStats()

	// Uploads returns how many times a uniform with the given name was uploaded, across programs.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - int: the upload count
	Uploads(name string) int

	// LastUniform returns the most recent value uploaded to a uniform with the given name.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - any: mgl32.Mat4, mgl32.Vec3 or mgl32.Vec2
	//   - bool: false if the uniform was never uploaded
	LastUniform(name string) (any, bool)

	// Draws returns the recorded draw calls in submission order.
	Draws() []DrawCall

	// BufferUsage returns the usage a buffer's data store was created with.
	BufferUsage(b Buffer) (Usage, bool)

	// SetDrawingBufferSize changes the framebuffer size, as a window resize would.
	SetDrawingBufferSize(width, height int)
}

type headlessShader struct {
	stage      Stage
	source     string
	compiled   bool
	log        string
	reflection shader.Reflection
}

type headlessProgram struct {
	shaders    []Shader
	linked     bool
	log        string
	attributes []shader.Variable
	uniforms   []shader.Variable
}

type headlessVertexArray struct {
	enabled     map[Location]bool
	indexBuffer Buffer
}

type headless struct {
	mu *sync.Mutex

	language      shader.Language
	width, height int

	nextHandle uint32
	buffers    map[Buffer]Usage
	arrays     map[VertexArray]*headlessVertexArray
	shaders    map[Shader]*headlessShader
	programs   map[Program]*headlessProgram

	bound      map[Target]Buffer
	boundArray VertexArray
	current    Program

	stats       Stats
	uploads     map[string]int
	lastUniform map[string]any
	draws       []DrawCall
}

var _ Headless = &headless{}

// NewHeadless creates a recording Context. Defaults to GLSL and an 800x600 framebuffer.
//
// Parameters:
//   - options: variadic list of HeadlessBuilderOption functions to configure the context
//
// Returns:
//   - Headless: the new headless context
func NewHeadless(options ...HeadlessBuilderOption) Headless {
	h := &headless{
		mu:          &sync.Mutex{},
		language:    shader.LanguageGLSL,
		width:       800,
		height:      600,
		buffers:     make(map[Buffer]Usage),
		arrays:      make(map[VertexArray]*headlessVertexArray),
		shaders:     make(map[Shader]*headlessShader),
		programs:    make(map[Program]*headlessProgram),
		bound:       make(map[Target]Buffer),
		uploads:     make(map[string]int),
		lastUniform: make(map[string]any),
	}

	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *headless) handle() uint32 {
	h.nextHandle++
	return h.nextHandle
}

func (h *headless) Language() shader.Language {
	return h.language
}

func (h *headless) CreateBuffer() (Buffer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b := Buffer(h.handle())
	h.buffers[b] = StaticDraw
	return b, nil
}

func (h *headless) BindBuffer(target Target, b Buffer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bound[target] = b
	if target == ElementArrayBuffer {
		if va, ok := h.arrays[h.boundArray]; ok {
			va.indexBuffer = b
		}
	}
}

func (h *headless) BufferData(target Target, data []byte, usage Usage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.bound[target]
	if !ok || b == 0 {
		return
	}
	if _, live := h.buffers[b]; !live {
		return
	}
	h.buffers[b] = usage
	h.stats.BufferUploads++
}

func (h *headless) DeleteBuffer(b Buffer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.buffers, b)
	for target, bound := range h.bound {
		if bound == b {
			h.bound[target] = 0
		}
	}
}

func (h *headless) CreateVertexArray() (VertexArray, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v := VertexArray(h.handle())
	h.arrays[v] = &headlessVertexArray{enabled: make(map[Location]bool)}
	return v, nil
}

func (h *headless) BindVertexArray(v VertexArray) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.boundArray = v
	if va, ok := h.arrays[v]; ok {
		h.bound[ElementArrayBuffer] = va.indexBuffer
	}
}

func (h *headless) DeleteVertexArray(v VertexArray) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.arrays, v)
	if h.boundArray == v {
		h.boundArray = 0
	}
}

func (h *headless) VertexAttribPointer(location Location, size int, elementType ElementType, normalized bool, stride, offset int) {
}

func (h *headless) EnableVertexAttribArray(location Location) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if va, ok := h.arrays[h.boundArray]; ok {
		va.enabled[location] = true
	}
}

func (h *headless) CreateShader(stage Stage) (Shader, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := Shader(h.handle())
	h.shaders[s] = &headlessShader{stage: stage}
	return s, nil
}

func (h *headless) ShaderSource(s Shader, source string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sh, ok := h.shaders[s]; ok {
		sh.source = source
	}
}

func (h *headless) CompileShader(s Shader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sh, ok := h.shaders[s]
	if !ok {
		return
	}
	sh.reflection = shader.Reflect(h.language, sh.stage, sh.source)
	if sh.reflection.EntryPoint == "" {
		sh.compiled = false
		sh.log = fmt.Sprintf("ERROR: 0:1: no %s entry point in %s stage", h.language, sh.stage)
		return
	}
	sh.compiled = true
	sh.log = ""
}

func (h *headless) CompileStatus(s Shader) (bool, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sh, ok := h.shaders[s]
	if !ok {
		return false, "invalid shader object"
	}
	return sh.compiled, sh.log
}

func (h *headless) DeleteShader(s Shader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.shaders, s)
}

func (h *headless) CreateProgram() (Program, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := Program(h.handle())
	h.programs[p] = &headlessProgram{}
	return p, nil
}

func (h *headless) AttachShader(p Program, s Shader) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if prog, ok := h.programs[p]; ok {
		prog.shaders = append(prog.shaders, s)
	}
}

func (h *headless) LinkProgram(p Program) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prog, ok := h.programs[p]
	if !ok {
		return
	}

	stages := make(map[Stage]bool)
	var reflections []shader.Reflection
	for _, s := range prog.shaders {
		sh, ok := h.shaders[s]
		if !ok || !sh.compiled {
			prog.linked = false
			prog.log = "ERROR: one or more attached shaders not successfully compiled"
			return
		}
		stages[sh.stage] = true
		reflections = append(reflections, sh.reflection)
	}
	for _, required := range []Stage{shader.StageVertex, shader.StageFragment} {
		if !stages[required] {
			prog.linked = false
			prog.log = fmt.Sprintf("ERROR: missing %s stage", required)
			return
		}
	}

	prog.attributes, prog.uniforms = shader.Merge(reflections...)
	prog.linked = true
	prog.log = ""
}

func (h *headless) LinkStatus(p Program) (bool, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prog, ok := h.programs[p]
	if !ok {
		return false, "invalid program object"
	}
	return prog.linked, prog.log
}

func (h *headless) DeleteProgram(p Program) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.programs[p]; !ok {
		return
	}
	delete(h.programs, p)
	if h.current == p {
		h.current = 0
	}
}

func (h *headless) UseProgram(p Program) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != p {
		h.stats.ProgramSwaps++
	}
	h.current = p
}

func activeInfo(vars []shader.Variable) []ActiveInfo {
	out := make([]ActiveInfo, 0, len(vars))
	for _, v := range vars {
		out = append(out, ActiveInfo{Name: v.Name, Type: v.Type, Location: Location(v.Location), Size: v.Size})
	}
	return out
}

func (h *headless) ActiveAttributes(p Program) []ActiveInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	prog, ok := h.programs[p]
	if !ok || !prog.linked {
		return nil
	}
	return activeInfo(prog.attributes)
}

func (h *headless) ActiveUniforms(p Program) []ActiveInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	prog, ok := h.programs[p]
	if !ok || !prog.linked {
		return nil
	}
	return activeInfo(prog.uniforms)
}

func (h *headless) recordUniform(loc Location, value any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	prog, ok := h.programs[h.current]
	if !ok {
		return
	}
	for _, u := range prog.uniforms {
		if Location(u.Location) == loc {
			h.uploads[u.Name]++
			h.lastUniform[u.Name] = value
			h.stats.UniformUploads++
			return
		}
	}
}

func (h *headless) UniformMatrix4fv(loc Location, m mgl32.Mat4) {
	h.recordUniform(loc, m)
}

func (h *headless) Uniform3fv(loc Location, v mgl32.Vec3) {
	h.recordUniform(loc, v)
}

func (h *headless) Uniform2fv(loc Location, v mgl32.Vec2) {
	h.recordUniform(loc, v)
}

func (h *headless) recordDraw(mode DrawMode, count int, indexed bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.DrawCalls++
	h.draws = append(h.draws, DrawCall{
		Program:     h.current,
		VertexArray: h.boundArray,
		Mode:        mode,
		Count:       count,
		Indexed:     indexed,
	})
}

func (h *headless) DrawElements(mode DrawMode, count int, elementType ElementType, offset int) {
	h.recordDraw(mode, count, true)
}

func (h *headless) DrawArrays(mode DrawMode, first, count int) {
	h.recordDraw(mode, count, false)
}

func (h *headless) Viewport(x, y, width, height int) {}

func (h *headless) ClearColor(r, g, b, a float32) {}

func (h *headless) Clear(mask ClearMask) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Clears++
}

func (h *headless) DrawingBufferSize() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *headless) SetDrawingBufferSize(width, height int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width = width
	h.height = height
}

func (h *headless) Present() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Presents++
	return nil
}

func (h *headless) Release() {}

func (h *headless) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.stats
	s.LiveBuffers = len(h.buffers)
	s.LiveVertexArrays = len(h.arrays)
	s.LiveShaders = len(h.shaders)
	s.LivePrograms = len(h.programs)
	return s
}

func (h *headless) ResetStats() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats = Stats{}
	h.uploads = make(map[string]int)
	h.lastUniform = make(map[string]any)
	h.draws = nil
}

func (h *headless) Uploads(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uploads[name]
}

func (h *headless) LastUniform(name string) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.lastUniform[name]
	return v, ok
}

func (h *headless) Draws() []DrawCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]DrawCall, len(h.draws))
	copy(out, h.draws)
	return out
}

func (h *headless) BufferUsage(b Buffer) (Usage, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	u, ok := h.buffers[b]
	return u, ok
}
