package wgpubackend

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// uniformBinding is one @group(0) uniform of a linked program with its staged value.
type uniformBinding struct {
	binding uint32
	size    uint64
	value   []byte
}

type programObject struct {
	attached []backend.Shader
	linked   bool
	log      string

	vertex   *shaderObject
	fragment *shaderObject

	attributes []shader.Variable
	uniforms   []shader.Variable
	bindings   []*uniformBinding

	bindGroupLayout *wgpu.BindGroupLayout
	layout          *wgpu.PipelineLayout
	bindGroup       *wgpu.BindGroup
	bindGeneration  int

	pipelines map[string]*wgpu.RenderPipeline
}

func newProgramObject() *programObject {
	return &programObject{pipelines: make(map[string]*wgpu.RenderPipeline)}
}

// uniformSize returns the WGSL byte size of a uniform, falling back to its type when the
// reflection could not size it.
func uniformSize(v shader.Variable) uint64 {
	if v.Size > 0 {
		return v.Size
	}
	switch v.Type {
	case shader.TypeMat4:
		return 64
	case shader.TypeMat3:
		return 48
	case shader.TypeMat2, shader.TypeVec4:
		return 16
	case shader.TypeVec3:
		return 12
	case shader.TypeVec2:
		return 8
	default:
		return 4
	}
}

func (p *programObject) link(c *wgpuContext) error {
	var reflections []shader.Reflection
	var vertex, fragment *shaderObject
	for _, s := range p.attached {
		sh, ok := c.shaders[s]
		if !ok || !sh.compiled {
			return errors.New("one or more attached shaders not successfully compiled")
		}
		switch sh.stage {
		case shader.StageVertex:
			vertex = sh
		case shader.StageFragment:
			fragment = sh
		}
		reflections = append(reflections, sh.reflection)
	}
	if vertex == nil {
		return fmt.Errorf("missing %s stage", shader.StageVertex)
	}
	if fragment == nil {
		return fmt.Errorf("missing %s stage", shader.StageFragment)
	}
	p.vertex, p.fragment = vertex, fragment
	p.vertex.refs++
	p.fragment.refs++

	p.attributes, p.uniforms = shader.Merge(reflections...)

	entries := make([]wgpu.BindGroupLayoutEntry, 0, len(p.uniforms))
	for _, u := range p.uniforms {
		if u.Group != 0 {
			return fmt.Errorf("uniform %s: only @group(0) is supported, got %d", u.Name, u.Group)
		}
		size := uniformSize(u)
		p.bindings = append(p.bindings, &uniformBinding{
			binding: uint32(u.Location),
			size:    size,
			value:   make([]byte, size),
		})
		entries = append(entries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(u.Location),
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:             wgpu.BufferBindingTypeUniform,
				HasDynamicOffset: true,
				MinBindingSize:   size,
			},
		})
	}
	sort.Slice(p.bindings, func(i, j int) bool {
		return p.bindings[i].binding < p.bindings[j].binding
	})
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Binding < entries[j].Binding
	})

	var layouts []*wgpu.BindGroupLayout
	if len(entries) > 0 {
		bgl, err := c.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label:   "Uniforms",
			Entries: entries,
		})
		if err != nil {
			return fmt.Errorf("failed to create bind group layout: %w", err)
		}
		p.bindGroupLayout = bgl
		layouts = append(layouts, bgl)
	}

	layout, err := c.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Program Layout",
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return fmt.Errorf("failed to create pipeline layout: %w", err)
	}
	p.layout = layout
	return nil
}

// release frees every GPU object created by link and returns the program to its unlinked
// state. Attached shaders stay attached.
func (p *programObject) release(c *wgpuContext) {
	for key, pl := range p.pipelines {
		pl.Release()
		delete(p.pipelines, key)
	}
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.layout != nil {
		p.layout.Release()
		p.layout = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertex != nil {
		c.releaseShaderRef(p.vertex)
		p.vertex = nil
	}
	if p.fragment != nil {
		c.releaseShaderRef(p.fragment)
		p.fragment = nil
	}
	p.attributes, p.uniforms, p.bindings = nil, nil, nil
	p.linked = false
}

// stage records a uniform value until the next draw snapshots it.
func (p *programObject) stage(binding uint32, data []byte) {
	for _, b := range p.bindings {
		if b.binding == binding {
			copy(b.value, data)
			return
		}
	}
}

// bind snapshots every staged uniform into the ring and returns the bind group with the
// dynamic offsets of this draw.
func (p *programObject) bind(c *wgpuContext) (*wgpu.BindGroup, []uint32, error) {
	if len(p.bindings) == 0 {
		return nil, nil, nil
	}

	if p.bindGroup == nil || p.bindGeneration != c.uniforms.generation {
		if p.bindGroup != nil {
			p.bindGroup.Release()
		}
		entries := make([]wgpu.BindGroupEntry, 0, len(p.bindings))
		for _, b := range p.bindings {
			entries = append(entries, wgpu.BindGroupEntry{
				Binding: b.binding,
				Buffer:  c.uniforms.buf,
				Offset:  0,
				Size:    b.size,
			})
		}
		bg, err := c.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   "Uniforms",
			Layout:  p.bindGroupLayout,
			Entries: entries,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create bind group: %w", err)
		}
		p.bindGroup = bg
		p.bindGeneration = c.uniforms.generation
	}

	offsets := make([]uint32, 0, len(p.bindings))
	for _, b := range p.bindings {
		offset, err := c.uniforms.push(b.value)
		if err != nil {
			return nil, nil, err
		}
		offsets = append(offsets, offset)
	}
	return p.bindGroup, offsets, nil
}

// vertexBinding is one vertex buffer slot of a draw.
type vertexBinding struct {
	buf    *wgpu.Buffer
	offset uint64
}

// drawLayout is the vertex input of a draw: the pipeline's buffer layouts and the buffers
// bound to each slot.
type drawLayout struct {
	key      string
	buffers  []wgpu.VertexBufferLayout
	bindings []vertexBinding
}

func vertexFormat(size int, elementType backend.ElementType) (wgpu.VertexFormat, bool) {
	switch elementType {
	case backend.Float32:
		switch size {
		case 1:
			return wgpu.VertexFormatFloat32, true
		case 2:
			return wgpu.VertexFormatFloat32x2, true
		case 3:
			return wgpu.VertexFormatFloat32x3, true
		case 4:
			return wgpu.VertexFormatFloat32x4, true
		}
	case backend.Uint32:
		switch size {
		case 1:
			return wgpu.VertexFormatUint32, true
		case 2:
			return wgpu.VertexFormatUint32x2, true
		case 3:
			return wgpu.VertexFormatUint32x3, true
		case 4:
			return wgpu.VertexFormatUint32x4, true
		}
	}
	return wgpu.VertexFormatUndefined, false
}

// vertexLayout builds one vertex buffer slot per attribute the program consumes, in
// location order.
func (c *wgpuContext) vertexLayout(prog *programObject, va *vertexArray) (drawLayout, error) {
	var layout drawLayout
	var key strings.Builder

	attrs := make([]shader.Variable, len(prog.attributes))
	copy(attrs, prog.attributes)
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Location < attrs[j].Location
	})

	for _, attr := range attrs {
		a, ok := va.attribs[backend.Location(attr.Location)]
		if !ok || !a.enabled {
			return drawLayout{}, fmt.Errorf("attribute %s at location %d is not enabled", attr.Name, attr.Location)
		}
		gb, ok := c.buffers[a.buffer]
		if !ok || gb.buf == nil {
			return drawLayout{}, fmt.Errorf("attribute %s has no buffer data", attr.Name)
		}
		format, ok := vertexFormat(a.size, a.elementType)
		if !ok {
			return drawLayout{}, fmt.Errorf("attribute %s: unsupported vertex format %dx%d", attr.Name, a.size, a.elementType)
		}
		stride := a.stride
		if stride == 0 {
			stride = a.size * a.elementType.Size()
		}

		layout.buffers = append(layout.buffers, wgpu.VertexBufferLayout{
			ArrayStride: uint64(stride),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{
					Format:         format,
					Offset:         0,
					ShaderLocation: uint32(attr.Location),
				},
			},
		})
		layout.bindings = append(layout.bindings, vertexBinding{buf: gb.buf, offset: uint64(a.offset)})
		fmt.Fprintf(&key, "%d:%d:%d;", attr.Location, format, stride)
	}
	layout.key = key.String()
	return layout, nil
}

func topology(mode backend.DrawMode) wgpu.PrimitiveTopology {
	switch mode {
	case backend.TriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	case backend.Lines:
		return wgpu.PrimitiveTopologyLineList
	case backend.LineStrip:
		return wgpu.PrimitiveTopologyLineStrip
	case backend.Points:
		return wgpu.PrimitiveTopologyPointList
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}

// pipeline returns the cached render pipeline for a vertex layout and topology, creating
// it on first use.
func (p *programObject) pipeline(c *wgpuContext, layout drawLayout, mode backend.DrawMode, indexFormat wgpu.IndexFormat) (*wgpu.RenderPipeline, error) {
	strip := mode == backend.TriangleStrip || mode == backend.LineStrip
	stripFormat := wgpu.IndexFormatUndefined
	if strip {
		stripFormat = indexFormat
	}

	key := fmt.Sprintf("%s|%d|%d|%d", layout.key, mode, stripFormat, c.surfaceFormat)
	if pl, ok := p.pipelines[key]; ok {
		return pl, nil
	}

	created, err := c.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Render Pipeline",
		Layout: p.layout,
		Vertex: wgpu.VertexState{
			Module:     p.vertex.module,
			EntryPoint: p.vertex.reflection.EntryPoint,
			Buffers:    layout.buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.fragment.module,
			EntryPoint: p.fragment.reflection.EntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    c.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:         topology(mode),
			StripIndexFormat: stripFormat,
			FrontFace:        wgpu.FrontFaceCCW,
			CullMode:         wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLessEqual,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create render pipeline: %w", err)
	}
	p.pipelines[key] = created
	return created, nil
}
