package typesystem

import (
	"fmt"
	"strings"
)

// InfiniteTypeError indicates an occurs-check failure: a type variable was
// unified with a type containing itself.
type InfiniteTypeError struct {
	Var TVar
	In  Type
}

func (e *InfiniteTypeError) Error() string {
	return fmt.Sprintf("infinite type detected: %s in %s", e.Var, e.In)
}

// TraitBoundError indicates a type does not implement a required trait.
// Available lists the traits the type does implement, for diagnostics.
type TraitBoundError struct {
	Type      Type
	Trait     string
	Available []string
}

func (e *TraitBoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("type %s does not implement trait %s", e.Type, e.Trait)
	}
	return fmt.Sprintf("type %s does not implement trait %s (implements: %s)",
		e.Type, e.Trait, strings.Join(e.Available, ", "))
}
