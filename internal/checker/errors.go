package checker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/funtac/internal/token"
	"github.com/funvibe/funtac/internal/typesystem"
)

// UndefinedTokenError reports a token kind with no registered signature.
type UndefinedTokenError struct {
	Kind string
}

func (e *UndefinedTokenError) Error() string {
	return fmt.Sprintf("undefined token type: %s", e.Kind)
}

// MissingFieldError reports a required argument absent from a token.
type MissingFieldError struct {
	Kind  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q in %s", e.Field, e.Kind)
}

// ArgumentCountError reports a token carrying children its signature does
// not declare.
type ArgumentCountError struct {
	Kind     string
	Expected int
	Actual   int
}

func (e *ArgumentCountError) Error() string {
	return fmt.Sprintf("%s expects %d argument(s), got %d", e.Kind, e.Expected, e.Actual)
}

// TypeMismatchError reports a failed unification between the type an
// argument position expects and the type its child produced.
type TypeMismatchError struct {
	Expected typesystem.Type
	Actual   typesystem.Type
	Context  string
}

func (e *TypeMismatchError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("type mismatch in %s: expected %s, got %s", e.Context, e.Expected, e.Actual)
	}
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// UnresolvedTypeError reports a type the solver could not make concrete,
// most commonly an Element token outside any FilterList/Map operand.
type UnresolvedTypeError struct {
	Context string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("cannot resolve type: %s", e.Context)
}

// CyclicReferenceError reports a token that appears on its own argument
// path. Trees must be finite; cycles are rejected here, never at runtime.
type CyclicReferenceError struct {
	Kind string
}

func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("cyclic reference detected at %s", e.Kind)
}

// CompileError wraps a check failure with the argument path from the rule
// root down to the offending token. Path elements read "Kind.arg".
type CompileError struct {
	Err   error
	Path  []string
	Token *token.Token
}

func (e *CompileError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", strings.Join(e.Path, " -> "), e.Err.Error())
}

func (e *CompileError) Unwrap() error { return e.Err }

// AddContext prepends one "Kind.arg" path element as the failure unwinds
// toward the root.
func (e *CompileError) AddContext(kind, arg string) *CompileError {
	e.Path = append([]string{kind + "." + arg}, e.Path...)
	return e
}

// wrap lifts err into a CompileError, or returns it unchanged if it
// already is one.
func wrap(err error, tok *token.Token) *CompileError {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce
	}
	return &CompileError{Err: err, Token: tok}
}
