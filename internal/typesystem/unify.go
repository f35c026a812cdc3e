package typesystem

import "fmt"

// Unify attempts to find a substitution that makes t1 and t2 equal.
// The abstract Numeric marker absorbs its concrete implementors and Any
// absorbs anything; everything else unifies structurally.
func Unify(t1, t2 Type) (Subst, error) {
	if tv, ok := t1.(TVar); ok {
		return Bind(tv, t2)
	}
	if tv, ok := t2.(TVar); ok {
		return Bind(tv, t1)
	}

	switch a := t1.(type) {
	case TCon:
		if a == Any {
			return Subst{}, nil
		}
		b, ok := t2.(TCon)
		if !ok {
			return nil, errMismatch(t1, t2)
		}
		if a == b {
			return Subst{}, nil
		}
		if b == Any {
			return Subst{}, nil
		}
		if a == Numeric && IsNumeric(b) {
			return Subst{}, nil
		}
		if b == Numeric && IsNumeric(a) {
			return Subst{}, nil
		}
		return nil, errMismatch(t1, t2)
	case TVec:
		if b, ok := t2.(TVec); ok {
			return Unify(a.Elem, b.Elem)
		}
		if b, ok := t2.(TCon); ok && b == Any {
			return Subst{}, nil
		}
		return nil, errMismatch(t1, t2)
	case TOption:
		if b, ok := t2.(TOption); ok {
			return Unify(a.Elem, b.Elem)
		}
		if b, ok := t2.(TCon); ok && b == Any {
			return Subst{}, nil
		}
		return nil, errMismatch(t1, t2)
	}
	return nil, errMismatch(t1, t2)
}

// Bind binds a type variable to a type, producing a single-entry
// substitution. Binding a variable to itself yields the empty substitution.
func Bind(tv TVar, t Type) (Subst, error) {
	if tVal, ok := t.(TVar); ok && tVal.Name == tv.Name {
		return Subst{}, nil
	}

	// Occurs check: tv appearing inside t would create an infinite type
	// like a = Vec<a>.
	if OccursCheck(tv, t) {
		return nil, &InfiniteTypeError{Var: tv, In: t}
	}

	return Subst{tv.Name: t}, nil
}

// OccursCheck reports whether tv occurs anywhere inside t.
func OccursCheck(tv TVar, t Type) bool {
	for _, v := range t.FreeTypeVariables() {
		if v.Name == tv.Name {
			return true
		}
	}
	return false
}

func errMismatch(t1, t2 Type) error {
	return fmt.Errorf("cannot unify %s with %s", t1, t2)
}
