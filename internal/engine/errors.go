package engine

import (
	"errors"
	"fmt"
)

// ErrBreak is the soft "this rule does not apply" signal from guarded
// action nodes. The resolver recovers it by moving to the next rule;
// everything else is a hard failure and propagates.
var ErrBreak = errors.New("rule does not apply")

// EvalError is a hard runtime failure: an algorithmic impossibility such
// as reducing an empty array or reading a missing current element.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string { return e.Msg }

func evalErrorf(format string, args ...any) *EvalError {
	return &EvalError{Msg: fmt.Sprintf(format, args...)}
}
