package program

import (
	"fmt"

	"github.com/Carmen-Shannon/breakout/engine/renderer/shader"
)

// CompileError is returned when a shader stage fails to compile.
type CompileError struct {
	Name  string
	Stage shader.Stage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("program: %s stage failed to compile: %s", e.Stage, e.Log)
	}
	return fmt.Sprintf("program: %s stage %q failed to compile: %s", e.Stage, e.Name, e.Log)
}

// LinkError is returned when the compiled stages fail to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("program: link failed: %s", e.Log)
}

// MissingInputError is returned when a required attribute is not an active program input.
type MissingInputError struct {
	Program uint64
	Name    string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("program %d: missing required input %q", e.Program, e.Name)
}

// UnsupportedUniformTypeError is returned when a uniform's reflected type has no upload path.
type UnsupportedUniformTypeError struct {
	Name string
	Type shader.DataType
}

func (e *UnsupportedUniformTypeError) Error() string {
	return fmt.Sprintf("program: uniform %q has unsupported type %s", e.Name, e.Type)
}

// PropertyTypeError is returned when a value does not match the uniform's reflected type.
type PropertyTypeError struct {
	Name  string
	Type  shader.DataType
	Value any
}

func (e *PropertyTypeError) Error() string {
	return fmt.Sprintf("program: uniform %q of type %s cannot take a %T", e.Name, e.Type, e.Value)
}
