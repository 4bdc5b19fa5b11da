// pre_processor.go implements the shader pre-processor. It scans shader source for
// `#include "name"` directives and replaces each one with a registered source chunk,
// so GLSL and WGSL programs can share declarations (uniform blocks, helper functions)
// without a driver-side include mechanism.
package shader

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// includeRegex matches an include directive line and captures the chunk name.
var includeRegex = regexp.MustCompile(`^\s*#include\s+"([^"]+)"\s*$`)

// maxIncludeDepth bounds nested includes so a cycle fails instead of recursing forever.
const maxIncludeDepth = 16

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	mu *sync.Mutex

	// chunks maps include names to their source text.
	chunks map[string]string

	// includes accumulates the chunk names resolved during the most recent Process call.
	includes []string
}

// PreProcessor resolves #include directives in shader source against a registry of
// named chunks.
type PreProcessor interface {
	// Process replaces every `#include "name"` line with the registered chunk, recursively.
	// Lines that are not include directives are kept as-is.
	//
	// Parameters:
	//   - source: the raw shader source
	//
	// Returns:
	//   - string: the processed source
	//   - error: an error naming the line if a chunk is unknown or includes nest too deeply
	Process(source string) (string, error)

	// Includes returns the chunk names resolved by the most recent call to Process,
	// in resolution order. Returns nil if Process has not been called.
	//
	// Returns:
	//   - []string: the resolved chunk names
	Includes() []string
}

var _ PreProcessor = &preProcessor{}

// PreProcessorBuilderOption is a functional option applied to a pre-processor during
// construction via NewPreProcessor.
type PreProcessorBuilderOption func(*preProcessor)

// WithChunk registers a named source chunk that `#include "name"` resolves to.
//
// Parameters:
//   - name: the include name
//   - source: the chunk source text
//
// Returns:
//   - PreProcessorBuilderOption: a function that registers the chunk
func WithChunk(name, source string) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		p.chunks[name] = source
	}
}

// WithChunks registers every entry of the map as a named chunk.
//
// Parameters:
//   - chunks: include names mapped to their source text
//
// Returns:
//   - PreProcessorBuilderOption: a function that registers the chunks
func WithChunks(chunks map[string]string) PreProcessorBuilderOption {
	return func(p *preProcessor) {
		for name, src := range chunks {
			p.chunks[name] = src
		}
	}
}

// NewPreProcessor creates a new PreProcessor with the given chunks registered.
//
// Parameters:
//   - options: variadic list of PreProcessorBuilderOption functions
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(options ...PreProcessorBuilderOption) PreProcessor {
	p := &preProcessor{
		mu:     &sync.Mutex{},
		chunks: make(map[string]string),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *preProcessor) Process(source string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.includes = p.includes[:0]
	return p.process(source, 0)
}

func (p *preProcessor) process(source string, depth int) (string, error) {
	if depth > maxIncludeDepth {
		return "", fmt.Errorf("includes nested deeper than %d levels", maxIncludeDepth)
	}

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		m := includeRegex.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}

		chunk, ok := p.chunks[m[1]]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, m[1])
		}
		p.includes = append(p.includes, m[1])

		expanded, err := p.process(chunk, depth+1)
		if err != nil {
			return "", fmt.Errorf("include %q: %w", m[1], err)
		}
		out = append(out, expanded)
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Includes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.includes
}
