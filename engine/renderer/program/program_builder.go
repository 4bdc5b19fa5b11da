package program

import (
	"fmt"

	"github.com/Carmen-Shannon/breakout/engine/renderer/backend"
	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
	"go.uber.org/zap"
)

// ProgramBuilderOption is a function that configures a program before it is built.
type ProgramBuilderOption func(*program)

// WithName sets the display name of a program, used in logs.
//
// Parameters:
//   - name: the program name
//
// Returns:
//   - ProgramBuilderOption: a function that applies the name to a program
func WithName(name string) ProgramBuilderOption {
	return func(p *program) {
		p.name = name
	}
}

// WithLogger sets the logger a program reports its build on.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - ProgramBuilderOption: a function that applies the logger to a program
func WithLogger(logger *zap.Logger) ProgramBuilderOption {
	return func(p *program) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Build compiles every source stage, links them into a new program object and reflects its
// active attributes and uniforms. Shader objects are deleted once linked, on success and on
// failure alike.
//
// Parameters:
//   - ctx: the graphics context, must be current on the calling goroutine
//   - sources: the pre-processed stages
//   - options: variadic list of ProgramBuilderOption functions
//
// Returns:
//   - Program: the linked program
//   - error: *CompileError, *LinkError, or an allocation error
func Build(ctx backend.Context, sources []shader.Source, options ...ProgramBuilderOption) (Program, error) {
	if ctx == nil {
		panic("program: Build requires a graphics context")
	}

	p := newProgram(options...)
	logger := p.logger.With(zap.Uint64("program", p.id), zap.String("name", p.name))

	shaders := make([]backend.Shader, 0, len(sources))
	deleteShaders := func() {
		for _, s := range shaders {
			ctx.DeleteShader(s)
		}
	}

	for _, src := range sources {
		s, err := ctx.CreateShader(src.Stage)
		if err != nil {
			deleteShaders()
			return nil, fmt.Errorf("failed to create %s shader: %w", src.Stage, err)
		}
		shaders = append(shaders, s)

		ctx.ShaderSource(s, src.Code)
		ctx.CompileShader(s)
		if ok, log := ctx.CompileStatus(s); !ok {
			deleteShaders()
			logger.Error("Shader compilation failed", zap.Stringer("stage", src.Stage), zap.String("log", log))
			return nil, &CompileError{Name: src.Name, Stage: src.Stage, Log: log}
		}
	}

	handle, err := ctx.CreateProgram()
	if err != nil {
		deleteShaders()
		return nil, fmt.Errorf("failed to create program: %w", err)
	}
	for _, s := range shaders {
		ctx.AttachShader(handle, s)
	}
	ctx.LinkProgram(handle)
	deleteShaders()

	if ok, log := ctx.LinkStatus(handle); !ok {
		ctx.DeleteProgram(handle)
		logger.Error("Program link failed", zap.String("log", log))
		return nil, &LinkError{Log: log}
	}

	p.handle = handle
	for _, a := range ctx.ActiveAttributes(handle) {
		p.attributes[a.Name] = toVariable(a)
		p.attributeOrder = append(p.attributeOrder, a.Name)
	}
	for _, u := range ctx.ActiveUniforms(handle) {
		p.uniforms[u.Name] = toVariable(u)
		p.uniformOrder = append(p.uniformOrder, u.Name)
	}

	logger.Debug("Program linked",
		zap.Strings("attributes", p.attributeOrder),
		zap.Strings("uniforms", p.uniformOrder),
	)
	return p, nil
}

func toVariable(info backend.ActiveInfo) shader.Variable {
	return shader.Variable{
		Name:     info.Name,
		Type:     info.Type,
		Location: int(info.Location),
		Size:     info.Size,
	}
}
