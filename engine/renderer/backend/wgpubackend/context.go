// Package wgpubackend implements backend.Context over WebGPU. Buffers, vertex arrays and
// programs keep their handle based lifecycle; render pipelines are built lazily per
// (program, vertex layout, topology) and uniforms are staged into a per-frame ring bound
// with dynamic offsets.
package wgpubackend

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/breakout/common"
	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	depthFormat   = wgpu.TextureFormatDepth24Plus
	copyAlignment = 4
)

type gpuBuffer struct {
	buf   *wgpu.Buffer
	size  uint64
	usage backend.Usage
}

type vertexAttrib struct {
	buffer      backend.Buffer
	size        int
	elementType backend.ElementType
	stride      int
	offset      int
	enabled     bool
}

type vertexArray struct {
	attribs     map[backend.Location]*vertexAttrib
	indexBuffer backend.Buffer
}

type shaderObject struct {
	stage      backend.Stage
	source     string
	module     *wgpu.ShaderModule
	reflection shader.Reflection
	compiled   bool
	log        string

	// refs counts the linked programs holding module.
	refs    int
	deleted bool
}

type wgpuContext struct {
	logger *zap.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	alphaMode     wgpu.CompositeAlphaMode
	presentMode   wgpu.PresentMode
	sizeFunc      func() (int, int)

	configuredWidth  int
	configuredHeight int
	depthTexture     *wgpu.Texture
	depthView        *wgpu.TextureView

	nextHandle uint32
	buffers    map[backend.Buffer]*gpuBuffer
	arrays     map[backend.VertexArray]*vertexArray
	shaders    map[backend.Shader]*shaderObject
	programs   map[backend.Program]*programObject

	bound      map[backend.Target]backend.Buffer
	boundArray backend.VertexArray
	current    backend.Program

	uniforms         *uniformRing
	uniformCapacity  uint64
	clearColor       wgpu.Color
	viewport         [4]int
	viewportExplicit bool

	frame    *frameState
	frameErr error
}

type frameState struct {
	surfaceTexture *wgpu.Texture
	view           *wgpu.TextureView
	encoder        *wgpu.CommandEncoder
	pass           *wgpu.RenderPassEncoder
}

var _ backend.Context = &wgpuContext{}

// NewContext creates a WebGPU device for the given surface and configures the surface at
// the size reported by sizeFunc. The calling goroutine is locked to its OS thread and
// must issue every later call.
//
// Parameters:
//   - surfaceDescriptor: the platform surface descriptor of the target window
//   - sizeFunc: reports the framebuffer size in pixels
//   - options: variadic list of ContextBuilderOption functions to configure the context
//
// Returns:
//   - backend.Context: the WebGPU context
//   - error: an error if no adapter or device could be acquired
func NewContext(surfaceDescriptor *wgpu.SurfaceDescriptor, sizeFunc func() (int, int), options ...ContextBuilderOption) (backend.Context, error) {
	if surfaceDescriptor == nil {
		return nil, errors.New("wgpubackend: NewContext requires a surface descriptor")
	}
	if sizeFunc == nil {
		panic("wgpubackend: NewContext requires a size function")
	}
	runtime.LockOSThread()

	c := &wgpuContext{
		logger:          zap.NewNop(),
		presentMode:     wgpu.PresentModeFifo,
		sizeFunc:        sizeFunc,
		buffers:         make(map[backend.Buffer]*gpuBuffer),
		arrays:          make(map[backend.VertexArray]*vertexArray),
		shaders:         make(map[backend.Shader]*shaderObject),
		programs:        make(map[backend.Program]*programObject),
		bound:           make(map[backend.Target]backend.Buffer),
		uniformCapacity: 1 << 20,
		clearColor:      wgpu.Color{A: 1},
	}
	for _, opt := range options {
		opt(c)
	}

	c.instance = wgpu.CreateInstance(nil)
	c.surface = c.instance.CreateSurface(surfaceDescriptor)

	adapter, err := c.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: c.surface,
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	c.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Breakout Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	c.device = device
	c.queue = device.GetQueue()

	c.uniforms, err = newUniformRing(device, c.uniformCapacity)
	if err != nil {
		c.Release()
		return nil, fmt.Errorf("failed to create uniform ring: %w", err)
	}

	width, height := sizeFunc()
	if err := c.configure(width, height); err != nil {
		c.Release()
		return nil, err
	}
	c.logger.Info("webgpu context ready",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Any("format", c.surfaceFormat),
	)
	return c, nil
}

// configure (re)configures the surface and recreates the depth attachment.
func (c *wgpuContext) configure(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}

	capabilities := c.surface.GetCapabilities(c.adapter)
	if len(capabilities.Formats) == 0 {
		return errors.New("surface reports no supported formats")
	}
	c.surfaceFormat = capabilities.Formats[0]
	if len(capabilities.AlphaModes) > 0 {
		c.alphaMode = capabilities.AlphaModes[0]
	}

	c.surface.Configure(c.adapter, c.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      c.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: c.presentMode,
		AlphaMode:   c.alphaMode,
	})

	if c.depthView != nil {
		c.depthView.Release()
		c.depthTexture.Release()
		c.depthView, c.depthTexture = nil, nil
	}
	depthTexture, err := c.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("failed to create depth texture: %w", err)
	}
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		depthTexture.Release()
		return fmt.Errorf("failed to create depth view: %w", err)
	}
	c.depthTexture, c.depthView = depthTexture, depthView

	c.configuredWidth, c.configuredHeight = width, height
	if !c.viewportExplicit {
		c.viewport = [4]int{0, 0, width, height}
	}
	c.logger.Debug("surface configured", zap.Int("width", width), zap.Int("height", height))
	return nil
}

func (c *wgpuContext) handle() uint32 {
	c.nextHandle++
	return c.nextHandle
}

func (c *wgpuContext) Language() shader.Language {
	return shader.LanguageWGSL
}

func (c *wgpuContext) CreateBuffer() (backend.Buffer, error) {
	b := backend.Buffer(c.handle())
	c.buffers[b] = &gpuBuffer{usage: backend.StaticDraw}
	return b, nil
}

func (c *wgpuContext) BindBuffer(target backend.Target, b backend.Buffer) {
	c.bound[target] = b
	if target == backend.ElementArrayBuffer {
		if va, ok := c.arrays[c.boundArray]; ok {
			va.indexBuffer = b
		}
	}
}

func (c *wgpuContext) BufferData(target backend.Target, data []byte, usage backend.Usage) {
	handle := c.bound[target]
	gb, ok := c.buffers[handle]
	if !ok {
		return
	}

	size := common.RoundUpAlign(copyAlignment, uint64(len(data)))
	if size == 0 {
		size = copyAlignment
	}
	if gb.buf == nil || gb.size != size {
		if gb.buf != nil {
			gb.buf.Release()
		}
		bufferUsage := wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
		if target == backend.ElementArrayBuffer {
			bufferUsage = wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
		}
		buf, err := c.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: fmt.Sprintf("Buffer %d", handle),
			Size:  size,
			Usage: bufferUsage,
		})
		if err != nil {
			c.logger.Error("failed to create buffer", zap.Uint32("buffer", uint32(handle)), zap.Error(err))
			gb.buf, gb.size = nil, 0
			return
		}
		gb.buf, gb.size = buf, size
	}
	gb.usage = usage

	padded := data
	if uint64(len(data)) != size {
		padded = make([]byte, size)
		copy(padded, data)
	}
	if err := c.queue.WriteBuffer(gb.buf, 0, padded); err != nil {
		c.logger.Error("failed to upload buffer", zap.Uint32("buffer", uint32(handle)), zap.Error(err))
	}
}

func (c *wgpuContext) DeleteBuffer(b backend.Buffer) {
	gb, ok := c.buffers[b]
	if !ok {
		return
	}
	if gb.buf != nil {
		gb.buf.Release()
	}
	delete(c.buffers, b)
	for target, bound := range c.bound {
		if bound == b {
			c.bound[target] = 0
		}
	}
}

func (c *wgpuContext) CreateVertexArray() (backend.VertexArray, error) {
	v := backend.VertexArray(c.handle())
	c.arrays[v] = &vertexArray{attribs: make(map[backend.Location]*vertexAttrib)}
	return v, nil
}

func (c *wgpuContext) BindVertexArray(v backend.VertexArray) {
	c.boundArray = v
	if va, ok := c.arrays[v]; ok {
		c.bound[backend.ElementArrayBuffer] = va.indexBuffer
	}
}

func (c *wgpuContext) DeleteVertexArray(v backend.VertexArray) {
	delete(c.arrays, v)
	if c.boundArray == v {
		c.boundArray = 0
	}
}

func (c *wgpuContext) attrib(location backend.Location) *vertexAttrib {
	va, ok := c.arrays[c.boundArray]
	if !ok {
		return nil
	}
	a, ok := va.attribs[location]
	if !ok {
		a = &vertexAttrib{}
		va.attribs[location] = a
	}
	return a
}

func (c *wgpuContext) VertexAttribPointer(location backend.Location, size int, elementType backend.ElementType, normalized bool, stride, offset int) {
	a := c.attrib(location)
	if a == nil {
		return
	}
	a.buffer = c.bound[backend.ArrayBuffer]
	a.size = size
	a.elementType = elementType
	a.stride = stride
	a.offset = offset
}

func (c *wgpuContext) EnableVertexAttribArray(location backend.Location) {
	if a := c.attrib(location); a != nil {
		a.enabled = true
	}
}

func (c *wgpuContext) CreateShader(stage backend.Stage) (backend.Shader, error) {
	s := backend.Shader(c.handle())
	c.shaders[s] = &shaderObject{stage: stage}
	return s, nil
}

func (c *wgpuContext) ShaderSource(s backend.Shader, source string) {
	if sh, ok := c.shaders[s]; ok {
		sh.source = source
	}
}

func (c *wgpuContext) CompileShader(s backend.Shader) {
	sh, ok := c.shaders[s]
	if !ok {
		return
	}
	sh.compiled = false
	sh.reflection = shader.Reflect(shader.LanguageWGSL, sh.stage, sh.source)
	if sh.reflection.EntryPoint == "" {
		sh.log = fmt.Sprintf("no @%s entry point", sh.stage)
		return
	}

	module, err := c.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: fmt.Sprintf("%s shader %d", sh.stage, s),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: sh.source,
		},
	})
	if err != nil {
		sh.log = err.Error()
		return
	}
	if sh.module != nil && sh.refs == 0 {
		sh.module.Release()
	}
	sh.module = module
	sh.compiled = true
	sh.log = ""
}

func (c *wgpuContext) CompileStatus(s backend.Shader) (bool, string) {
	sh, ok := c.shaders[s]
	if !ok {
		return false, "invalid shader object"
	}
	return sh.compiled, sh.log
}

func (c *wgpuContext) DeleteShader(s backend.Shader) {
	sh, ok := c.shaders[s]
	if !ok {
		return
	}
	delete(c.shaders, s)
	sh.deleted = true
	if sh.refs == 0 && sh.module != nil {
		sh.module.Release()
	}
}

func (c *wgpuContext) releaseShaderRef(sh *shaderObject) {
	sh.refs--
	if sh.refs <= 0 && sh.deleted && sh.module != nil {
		sh.module.Release()
		sh.module = nil
	}
}

func (c *wgpuContext) CreateProgram() (backend.Program, error) {
	p := backend.Program(c.handle())
	c.programs[p] = newProgramObject()
	return p, nil
}

func (c *wgpuContext) AttachShader(p backend.Program, s backend.Shader) {
	if prog, ok := c.programs[p]; ok {
		prog.attached = append(prog.attached, s)
	}
}

func (c *wgpuContext) LinkProgram(p backend.Program) {
	prog, ok := c.programs[p]
	if !ok {
		return
	}
	prog.release(c)
	if err := prog.link(c); err != nil {
		prog.linked = false
		prog.log = err.Error()
		return
	}
	prog.linked = true
	prog.log = ""
}

func (c *wgpuContext) LinkStatus(p backend.Program) (bool, string) {
	prog, ok := c.programs[p]
	if !ok {
		return false, "invalid program object"
	}
	return prog.linked, prog.log
}

func (c *wgpuContext) DeleteProgram(p backend.Program) {
	prog, ok := c.programs[p]
	if !ok {
		return
	}
	prog.release(c)
	delete(c.programs, p)
	if c.current == p {
		c.current = 0
	}
}

func (c *wgpuContext) UseProgram(p backend.Program) {
	c.current = p
}

func activeInfo(vars []shader.Variable) []backend.ActiveInfo {
	out := make([]backend.ActiveInfo, 0, len(vars))
	for _, v := range vars {
		out = append(out, backend.ActiveInfo{Name: v.Name, Type: v.Type, Location: backend.Location(v.Location), Size: v.Size})
	}
	return out
}

func (c *wgpuContext) ActiveAttributes(p backend.Program) []backend.ActiveInfo {
	prog, ok := c.programs[p]
	if !ok || !prog.linked {
		return nil
	}
	return activeInfo(prog.attributes)
}

func (c *wgpuContext) ActiveUniforms(p backend.Program) []backend.ActiveInfo {
	prog, ok := c.programs[p]
	if !ok || !prog.linked {
		return nil
	}
	return activeInfo(prog.uniforms)
}

func (c *wgpuContext) stage(loc backend.Location, data []byte) {
	prog, ok := c.programs[c.current]
	if !ok || !prog.linked {
		return
	}
	prog.stage(uint32(loc), data)
}

func (c *wgpuContext) UniformMatrix4fv(loc backend.Location, m mgl32.Mat4) {
	c.stage(loc, common.SliceToBytes(m[:]))
}

func (c *wgpuContext) Uniform3fv(loc backend.Location, v mgl32.Vec3) {
	c.stage(loc, common.SliceToBytes(v[:]))
}

func (c *wgpuContext) Uniform2fv(loc backend.Location, v mgl32.Vec2) {
	c.stage(loc, common.SliceToBytes(v[:]))
}

func (c *wgpuContext) DrawElements(mode backend.DrawMode, count int, elementType backend.ElementType, offset int) {
	c.draw(mode, count, 0, elementType, offset, true)
}

func (c *wgpuContext) DrawArrays(mode backend.DrawMode, first, count int) {
	c.draw(mode, count, first, backend.Float32, 0, false)
}

func (c *wgpuContext) draw(mode backend.DrawMode, count, first int, indexType backend.ElementType, offset int, indexed bool) {
	if count <= 0 {
		return
	}
	prog, ok := c.programs[c.current]
	if !ok || !prog.linked {
		return
	}
	va, ok := c.arrays[c.boundArray]
	if !ok {
		return
	}
	if err := c.beginFrame(); err != nil {
		c.frameErr = multierr.Append(c.frameErr, err)
		return
	}

	layout, err := c.vertexLayout(prog, va)
	if err != nil {
		c.frameErr = multierr.Append(c.frameErr, err)
		return
	}
	indexFormat := wgpu.IndexFormatUndefined
	if indexed {
		indexFormat = wgpu.IndexFormatUint32
		if indexType == backend.Uint16 {
			indexFormat = wgpu.IndexFormatUint16
		}
	}
	pipeline, err := prog.pipeline(c, layout, mode, indexFormat)
	if err != nil {
		c.frameErr = multierr.Append(c.frameErr, err)
		return
	}
	bindGroup, offsets, err := prog.bind(c)
	if err != nil {
		c.frameErr = multierr.Append(c.frameErr, err)
		return
	}

	pass := c.frame.pass
	pass.SetPipeline(pipeline)
	if bindGroup != nil {
		pass.SetBindGroup(0, bindGroup, offsets)
	}
	for slot, binding := range layout.bindings {
		pass.SetVertexBuffer(uint32(slot), binding.buf, binding.offset, wgpu.WholeSize)
	}

	if !indexed {
		pass.Draw(uint32(count), 1, uint32(first), 0)
		return
	}
	ib, ok := c.buffers[va.indexBuffer]
	if !ok || ib.buf == nil {
		c.frameErr = multierr.Append(c.frameErr, fmt.Errorf("vertex array %d has no index buffer", c.boundArray))
		return
	}
	pass.SetIndexBuffer(ib.buf, indexFormat, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(count), 1, uint32(offset/indexType.Size()), 0, 0)
}

func (c *wgpuContext) Viewport(x, y, width, height int) {
	c.viewport = [4]int{x, y, width, height}
	c.viewportExplicit = true
	if c.frame != nil {
		c.applyViewport()
	}
}

// applyViewport converts the bottom-left origin viewport to framebuffer coordinates and
// clamps it to the configured surface.
func (c *wgpuContext) applyViewport() {
	x, y, w, h := c.viewport[0], c.viewport[1], c.viewport[2], c.viewport[3]
	w = min(w, c.configuredWidth-x)
	h = min(h, c.configuredHeight-y)
	if w <= 0 || h <= 0 {
		return
	}
	top := c.configuredHeight - y - h
	c.frame.pass.SetViewport(float32(x), float32(top), float32(w), float32(h), 0, 1)
}

func (c *wgpuContext) ClearColor(r, g, b, a float32) {
	c.clearColor = wgpu.Color{R: float64(r), G: float64(g), B: float64(b), A: float64(a)}
}

func (c *wgpuContext) Clear(mask backend.ClearMask) {
	if c.frame != nil {
		return
	}
	if err := c.beginFrame(); err != nil {
		c.frameErr = multierr.Append(c.frameErr, err)
	}
}

func (c *wgpuContext) DrawingBufferSize() (int, int) {
	return c.sizeFunc()
}

// beginFrame acquires the next surface texture and opens the render pass. It is a no-op
// while a frame is open.
func (c *wgpuContext) beginFrame() error {
	if c.frame != nil {
		return nil
	}

	width, height := c.sizeFunc()
	if width != c.configuredWidth || height != c.configuredHeight {
		if err := c.configure(width, height); err != nil {
			return err
		}
	}
	if c.depthView == nil {
		return errors.New("surface has no drawable area")
	}

	surfaceTexture, err := c.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	encoder, err := c.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: c.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            c.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	c.frame = &frameState{
		surfaceTexture: surfaceTexture,
		view:           view,
		encoder:        encoder,
		pass:           pass,
	}
	c.applyViewport()
	return nil
}

func (c *wgpuContext) Present() error {
	err := c.frameErr
	c.frameErr = nil

	f := c.frame
	if f == nil {
		return err
	}
	c.frame = nil
	defer func() {
		f.view.Release()
		f.surfaceTexture.Release()
		c.uniforms.reset()
	}()

	f.pass.End()
	f.pass.Release()

	if writeErr := c.uniforms.flush(c.queue); writeErr != nil {
		err = multierr.Append(err, writeErr)
	}

	commandBuffer, finishErr := f.encoder.Finish(nil)
	f.encoder.Release()
	if finishErr != nil {
		return multierr.Append(err, fmt.Errorf("failed to finish command encoder: %w", finishErr))
	}
	c.queue.Submit(commandBuffer)
	commandBuffer.Release()

	c.surface.Present()
	return err
}

func (c *wgpuContext) Release() {
	for p, prog := range c.programs {
		prog.release(c)
		delete(c.programs, p)
	}
	for s, sh := range c.shaders {
		if sh.module != nil {
			sh.module.Release()
		}
		delete(c.shaders, s)
	}
	for b, gb := range c.buffers {
		if gb.buf != nil {
			gb.buf.Release()
		}
		delete(c.buffers, b)
	}
	if c.uniforms != nil {
		c.uniforms.release()
		c.uniforms = nil
	}
	if c.depthView != nil {
		c.depthView.Release()
		c.depthTexture.Release()
		c.depthView, c.depthTexture = nil, nil
	}
	if c.queue != nil {
		c.queue.Release()
		c.queue = nil
	}
	if c.device != nil {
		c.device.Release()
		c.device = nil
	}
	if c.adapter != nil {
		c.adapter.Release()
		c.adapter = nil
	}
	if c.surface != nil {
		c.surface.Release()
		c.surface = nil
	}
	if c.instance != nil {
		c.instance.Release()
		c.instance = nil
	}
}
