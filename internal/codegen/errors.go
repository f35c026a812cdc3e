package codegen

import (
	"fmt"

	"github.com/funvibe/funtac/internal/typesystem"
)

// RootTypeError reports a rule whose root does not produce an Action.
type RootTypeError struct {
	Type typesystem.Type
}

func (e *RootTypeError) Error() string {
	return fmt.Sprintf("rule root must produce an Action, got %s", e.Type)
}

// NoConverterError reports a token kind the requested output table has no
// converter for.
type NoConverterError struct {
	Table string
	Kind  string
}

func (e *NoConverterError) Error() string {
	return fmt.Sprintf("no %s converter for token kind %s", e.Table, e.Kind)
}

// MissingChildError reports a checked tree lacking a child its converter
// needs.
type MissingChildError struct {
	Kind  string
	Child string
}

func (e *MissingChildError) Error() string {
	return fmt.Sprintf("missing child %q in %s", e.Child, e.Kind)
}

// OperandTypesError reports operand types no comparison or equality variant
// covers.
type OperandTypesError struct {
	Kind  string
	Left  typesystem.Type
	Right typesystem.Type
}

func (e *OperandTypesError) Error() string {
	return fmt.Sprintf("%s not supported for types %s and %s", e.Kind, e.Left, e.Right)
}

// ElementTypeError reports an array whose element type the requested table
// cannot source from.
type ElementTypeError struct {
	Kind string
	Type typesystem.Type
}

func (e *ElementTypeError) Error() string {
	return fmt.Sprintf("%s cannot run over %s", e.Kind, e.Type)
}
