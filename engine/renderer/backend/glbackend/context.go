// Package glbackend implements backend.Context over OpenGL 4.1 core profile. Handles map
// one to one onto GL object names.
package glbackend

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Surface is the window side of a GL context: it owns the default framebuffer.
type Surface interface {
	// FramebufferSize returns the default framebuffer size in pixels.
	FramebufferSize() (width, height int)

	// SwapBuffers presents the back buffer.
	SwapBuffers()
}

type glContext struct {
	logger  *zap.Logger
	surface Surface
}

var _ backend.Context = &glContext{}

// NewContext loads the GL function pointers for the context current on the calling
// goroutine and enables depth testing. The goroutine is locked to its OS thread and must
// issue every later call.
//
// Parameters:
//   - surface: the window owning the current GL context
//   - options: variadic list of ContextBuilderOption functions to configure the context
//
// Returns:
//   - backend.Context: the OpenGL context
//   - error: an error if the GL function pointers could not be loaded
func NewContext(surface Surface, options ...ContextBuilderOption) (backend.Context, error) {
	if surface == nil {
		panic("glbackend: NewContext requires a surface")
	}
	runtime.LockOSThread()

	c := &glContext{
		logger:  zap.NewNop(),
		surface: surface,
	}
	for _, opt := range options {
		opt(c)
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)

	c.logger.Info("opengl context ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)
	return c, nil
}

func (c *glContext) Language() shader.Language {
	return shader.LanguageGLSL
}

func glTarget(target backend.Target) uint32 {
	if target == backend.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glUsage(usage backend.Usage) uint32 {
	switch usage {
	case backend.StaticCopy:
		return gl.STATIC_COPY
	case backend.StaticRead:
		return gl.STATIC_READ
	case backend.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case backend.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func glType(elementType backend.ElementType) uint32 {
	switch elementType {
	case backend.Uint16:
		return gl.UNSIGNED_SHORT
	case backend.Uint32:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}

func glMode(mode backend.DrawMode) uint32 {
	switch mode {
	case backend.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case backend.Lines:
		return gl.LINES
	case backend.LineStrip:
		return gl.LINE_STRIP
	case backend.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}

func glStage(stage backend.Stage) uint32 {
	if stage == shader.StageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func (c *glContext) CreateBuffer() (backend.Buffer, error) {
	var b uint32
	gl.GenBuffers(1, &b)
	if b == 0 {
		return 0, errors.New("glGenBuffers returned no name")
	}
	return backend.Buffer(b), nil
}

func (c *glContext) BindBuffer(target backend.Target, b backend.Buffer) {
	gl.BindBuffer(glTarget(target), uint32(b))
}

func (c *glContext) BufferData(target backend.Target, data []byte, usage backend.Usage) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, glUsage(usage))
		return
	}
	gl.BufferData(glTarget(target), len(data), gl.Ptr(data), glUsage(usage))
}

func (c *glContext) DeleteBuffer(b backend.Buffer) {
	name := uint32(b)
	gl.DeleteBuffers(1, &name)
}

func (c *glContext) CreateVertexArray() (backend.VertexArray, error) {
	var v uint32
	gl.GenVertexArrays(1, &v)
	if v == 0 {
		return 0, errors.New("glGenVertexArrays returned no name")
	}
	return backend.VertexArray(v), nil
}

func (c *glContext) BindVertexArray(v backend.VertexArray) {
	gl.BindVertexArray(uint32(v))
}

func (c *glContext) DeleteVertexArray(v backend.VertexArray) {
	name := uint32(v)
	gl.DeleteVertexArrays(1, &name)
}

func (c *glContext) VertexAttribPointer(location backend.Location, size int, elementType backend.ElementType, normalized bool, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(location), int32(size), glType(elementType), normalized, int32(stride), uintptr(offset))
}

func (c *glContext) EnableVertexAttribArray(location backend.Location) {
	gl.EnableVertexAttribArray(uint32(location))
}

func (c *glContext) CreateShader(stage backend.Stage) (backend.Shader, error) {
	s := gl.CreateShader(glStage(stage))
	if s == 0 {
		return 0, fmt.Errorf("glCreateShader(%s) returned no name", stage)
	}
	return backend.Shader(s), nil
}

func (c *glContext) ShaderSource(s backend.Shader, source string) {
	csources, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(uint32(s), 1, csources, nil)
}

func (c *glContext) CompileShader(s backend.Shader) {
	gl.CompileShader(uint32(s))
}

func (c *glContext) CompileStatus(s backend.Shader) (bool, string) {
	var status int32
	gl.GetShaderiv(uint32(s), gl.COMPILE_STATUS, &status)

	var logLength int32
	gl.GetShaderiv(uint32(s), gl.INFO_LOG_LENGTH, &logLength)
	log := ""
	if logLength > 0 {
		buf := strings.Repeat("\x00", int(logLength)+1)
		gl.GetShaderInfoLog(uint32(s), logLength, nil, gl.Str(buf))
		log = strings.TrimRight(buf, "\x00")
	}
	return status == gl.TRUE, log
}

func (c *glContext) DeleteShader(s backend.Shader) {
	gl.DeleteShader(uint32(s))
}

func (c *glContext) CreateProgram() (backend.Program, error) {
	p := gl.CreateProgram()
	if p == 0 {
		return 0, errors.New("glCreateProgram returned no name")
	}
	return backend.Program(p), nil
}

func (c *glContext) AttachShader(p backend.Program, s backend.Shader) {
	gl.AttachShader(uint32(p), uint32(s))
}

func (c *glContext) LinkProgram(p backend.Program) {
	gl.LinkProgram(uint32(p))
}

func (c *glContext) LinkStatus(p backend.Program) (bool, string) {
	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)

	var logLength int32
	gl.GetProgramiv(uint32(p), gl.INFO_LOG_LENGTH, &logLength)
	log := ""
	if logLength > 0 {
		buf := strings.Repeat("\x00", int(logLength)+1)
		gl.GetProgramInfoLog(uint32(p), logLength, nil, gl.Str(buf))
		log = strings.TrimRight(buf, "\x00")
	}
	return status == gl.TRUE, log
}

func (c *glContext) DeleteProgram(p backend.Program) {
	gl.DeleteProgram(uint32(p))
}

func (c *glContext) UseProgram(p backend.Program) {
	gl.UseProgram(uint32(p))
}

// glDataTypes maps GL uniform and attribute type enums onto reflected data types.
var glDataTypes = map[uint32]shader.DataType{
	gl.FLOAT:        shader.TypeFloat,
	gl.FLOAT_VEC2:   shader.TypeVec2,
	gl.FLOAT_VEC3:   shader.TypeVec3,
	gl.FLOAT_VEC4:   shader.TypeVec4,
	gl.FLOAT_MAT2:   shader.TypeMat2,
	gl.FLOAT_MAT3:   shader.TypeMat3,
	gl.FLOAT_MAT4:   shader.TypeMat4,
	gl.INT:          shader.TypeInt,
	gl.UNSIGNED_INT: shader.TypeUint,
	gl.BOOL:         shader.TypeBool,
	gl.SAMPLER_2D:   shader.TypeSampler2D,
}

type activeQuery func(program, index uint32, bufSize int32, length, size *int32, xtype *uint32, name *uint8)

func (c *glContext) active(p backend.Program, countParam, lengthParam uint32, query activeQuery, locate func(uint32, *uint8) int32) []backend.ActiveInfo {
	var count, maxLength int32
	gl.GetProgramiv(uint32(p), countParam, &count)
	gl.GetProgramiv(uint32(p), lengthParam, &maxLength)
	if count == 0 {
		return nil
	}

	out := make([]backend.ActiveInfo, 0, count)
	buf := make([]uint8, maxLength+1)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		query(uint32(p), uint32(i), maxLength+1, &length, &size, &xtype, &buf[0])
		name := string(buf[:length])

		// arrays report their first element as "name[0]"
		name = strings.TrimSuffix(name, "[0]")
		if strings.HasPrefix(name, "gl_") {
			continue
		}

		loc := locate(uint32(p), gl.Str(name+"\x00"))
		if loc < 0 {
			continue
		}
		out = append(out, backend.ActiveInfo{
			Name:     name,
			Type:     glDataTypes[xtype],
			Location: backend.Location(loc),
		})
	}
	return out
}

func (c *glContext) ActiveAttributes(p backend.Program) []backend.ActiveInfo {
	return c.active(p, gl.ACTIVE_ATTRIBUTES, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, gl.GetActiveAttrib, gl.GetAttribLocation)
}

func (c *glContext) ActiveUniforms(p backend.Program) []backend.ActiveInfo {
	return c.active(p, gl.ACTIVE_UNIFORMS, gl.ACTIVE_UNIFORM_MAX_LENGTH, gl.GetActiveUniform, gl.GetUniformLocation)
}

func (c *glContext) UniformMatrix4fv(loc backend.Location, m mgl32.Mat4) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (c *glContext) Uniform3fv(loc backend.Location, v mgl32.Vec3) {
	gl.Uniform3fv(int32(loc), 1, &v[0])
}

func (c *glContext) Uniform2fv(loc backend.Location, v mgl32.Vec2) {
	gl.Uniform2fv(int32(loc), 1, &v[0])
}

func (c *glContext) DrawElements(mode backend.DrawMode, count int, elementType backend.ElementType, offset int) {
	gl.DrawElementsWithOffset(glMode(mode), int32(count), glType(elementType), uintptr(offset))
}

func (c *glContext) DrawArrays(mode backend.DrawMode, first, count int) {
	gl.DrawArrays(glMode(mode), int32(first), int32(count))
}

func (c *glContext) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *glContext) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (c *glContext) Clear(mask backend.ClearMask) {
	var bits uint32
	if mask&backend.ColorBit != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&backend.DepthBit != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (c *glContext) DrawingBufferSize() (int, int) {
	return c.surface.FramebufferSize()
}

func (c *glContext) Present() error {
	c.surface.SwapBuffers()
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl error 0x%04x", code)
	}
	return nil
}

func (c *glContext) Release() {}
