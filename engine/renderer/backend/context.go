// Package backend defines the graphics driver boundary of the renderer. Every GPU call the
// core makes goes through Context, a handle-based API shaped after OpenGL so that buffers,
// vertex arrays and programs keep the same compose/decompose lifecycle on every driver.
package backend

import (
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Handle types. The zero value of each is "no object".
type (
	Buffer      uint32
	VertexArray uint32
	Shader      uint32
	Program     uint32
)

// Location is an attribute location or uniform location/binding.
type Location int32

// Target is the binding point of a buffer.
type Target int

const (
	// ArrayBuffer holds per-vertex data.
	ArrayBuffer Target = iota

	// ElementArrayBuffer holds indices.
	ElementArrayBuffer
)

// Usage is the upload hint given when a buffer's data store is created.
type Usage int

const (
	StaticDraw Usage = iota
	StaticCopy
	StaticRead
	DynamicDraw
	StreamDraw
)

func (u Usage) String() string {
	switch u {
	case StaticDraw:
		return "static-draw"
	case StaticCopy:
		return "static-copy"
	case StaticRead:
		return "static-read"
	case DynamicDraw:
		return "dynamic-draw"
	case StreamDraw:
		return "stream-draw"
	default:
		return "unknown"
	}
}

// ElementType is the scalar type of vertex or index data.
type ElementType int

const (
	Float32 ElementType = iota
	Uint16
	Uint32
)

// Size returns the byte size of one element.
func (e ElementType) Size() int {
	switch e {
	case Uint16:
		return 2
	default:
		return 4
	}
}

// DrawMode is the primitive topology of a draw call.
type DrawMode int

const (
	Triangles DrawMode = iota
	TriangleStrip
	Lines
	LineStrip
	Points
)

// ClearMask selects which framebuffer attachments Clear resets.
type ClearMask int

const (
	ColorBit ClearMask = 1 << iota
	DepthBit
)

// Stage is the pipeline stage of a shader object.
type Stage = shader.Stage

// ActiveInfo describes one active attribute or uniform of a linked program.
type ActiveInfo struct {
	Name     string
	Type     shader.DataType
	Location Location

	// Size is the byte size of the uniform when the driver reports it, 0 otherwise.
	Size uint64
}

// Context is the graphics driver boundary. Implementations are not safe for concurrent
// use; every call must come from the goroutine that owns the GPU context.
type Context interface {
	// Language returns the shading language the driver compiles.
	//
	// Returns:
	//   - shader.Language: GLSL or WGSL
	Language() shader.Language

	// CreateBuffer allocates a buffer object.
	//
	// Returns:
	//   - Buffer: the new handle
	//   - error: an error if the driver cannot allocate the buffer
	CreateBuffer() (Buffer, error)

	// BindBuffer binds a buffer to a target. Binding 0 unbinds the target.
	//
	// Parameters:
	//   - target: the binding point
	//   - b: the buffer to bind
	BindBuffer(target Target, b Buffer)

	// BufferData creates the data store of the buffer bound to target and uploads data.
	//
	// Parameters:
	//   - target: the binding point whose bound buffer receives the data
	//   - data: the raw payload
	//   - usage: the upload hint
	BufferData(target Target, data []byte, usage Usage)

	// DeleteBuffer releases a buffer object.
	//
	// Parameters:
	//   - b: the buffer to delete
	DeleteBuffer(b Buffer)

	// CreateVertexArray allocates a vertex array object that records attribute pointers
	// and the bound index buffer.
	//
	// Returns:
	//   - VertexArray: the new handle
	//   - error: an error if the driver cannot allocate the vertex array
	CreateVertexArray() (VertexArray, error)

	// BindVertexArray makes a vertex array current. Binding 0 unbinds.
	//
	// Parameters:
	//   - v: the vertex array to bind
	BindVertexArray(v VertexArray)

	// DeleteVertexArray releases a vertex array object.
	//
	// Parameters:
	//   - v: the vertex array to delete
	DeleteVertexArray(v VertexArray)

	// VertexAttribPointer describes how the buffer bound to ArrayBuffer feeds the attribute
	// at location, and records it in the bound vertex array.
	//
	// Parameters:
	//   - location: the attribute location
	//   - size: number of components per vertex (1-4)
	//   - elementType: the scalar type of the data
	//   - normalized: whether integer data is normalized to [0, 1] / [-1, 1]
	//   - stride: byte distance between consecutive vertices, 0 for tightly packed
	//   - offset: byte offset of the first component
	VertexAttribPointer(location Location, size int, elementType ElementType, normalized bool, stride, offset int)

	// EnableVertexAttribArray marks the attribute at location active in the bound vertex array.
	//
	// Parameters:
	//   - location: the attribute location
	EnableVertexAttribArray(location Location)

	// CreateShader allocates a shader object for a stage.
	CreateShader(stage Stage) (Shader, error)

	// ShaderSource replaces the source of a shader object.
	ShaderSource(s Shader, source string)

	// CompileShader compiles a shader object. The outcome is read with CompileStatus.
	CompileShader(s Shader)

	// CompileStatus reports whether the last compile succeeded, with the driver's log.
	//
	// Returns:
	//   - bool: true if compilation succeeded
	//   - string: the info log, possibly empty
	CompileStatus(s Shader) (bool, string)

	// DeleteShader releases a shader object. Attached shaders are released once detached.
	DeleteShader(s Shader)

	// CreateProgram allocates a program object.
	CreateProgram() (Program, error)

	// AttachShader attaches a compiled shader to a program.
	AttachShader(p Program, s Shader)

	// LinkProgram links the attached shaders. The outcome is read with LinkStatus.
	LinkProgram(p Program)

	// LinkStatus reports whether the last link succeeded, with the driver's log.
	//
	// Returns:
	//   - bool: true if linking succeeded
	//   - string: the info log, possibly empty
	LinkStatus(p Program) (bool, string)

	// DeleteProgram releases a program object.
	DeleteProgram(p Program)

	// UseProgram makes a program current for uniform updates and draws. 0 unbinds.
	UseProgram(p Program)

	// ActiveAttributes returns the active vertex inputs of a linked program.
	ActiveAttributes(p Program) []ActiveInfo

	// ActiveUniforms returns the active uniforms of a linked program.
	ActiveUniforms(p Program) []ActiveInfo

	// UniformMatrix4fv uploads a 4x4 matrix to a uniform of the current program.
	UniformMatrix4fv(loc Location, m mgl32.Mat4)

	// Uniform3fv uploads a 3 component vector to a uniform of the current program.
	Uniform3fv(loc Location, v mgl32.Vec3)

	// Uniform2fv uploads a 2 component vector to a uniform of the current program.
	Uniform2fv(loc Location, v mgl32.Vec2)

	// DrawElements issues an indexed draw using the bound vertex array's index buffer.
	//
	// Parameters:
	//   - mode: the primitive topology
	//   - count: number of indices
	//   - elementType: the index type (Uint16 or Uint32)
	//   - offset: byte offset into the index buffer
	DrawElements(mode DrawMode, count int, elementType ElementType, offset int)

	// DrawArrays issues a non-indexed draw.
	//
	// Parameters:
	//   - mode: the primitive topology
	//   - first: the first vertex
	//   - count: number of vertices
	DrawArrays(mode DrawMode, first, count int)

	// Viewport sets the viewport rectangle in pixels.
	Viewport(x, y, width, height int)

	// ClearColor sets the color used by Clear.
	ClearColor(r, g, b, a float32)

	// Clear resets the selected framebuffer attachments, beginning a frame.
	Clear(mask ClearMask)

	// DrawingBufferSize returns the current framebuffer size in pixels.
	DrawingBufferSize() (width, height int)

	// Present shows the finished frame.
	//
	// Returns:
	//   - error: an error if the frame could not be presented
	Present() error

	// Release frees every driver resource held by the context itself.
	Release()
}
