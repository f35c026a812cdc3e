package typesystem

import "fmt"

// Type is the interface for all types in the rule language.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TCon represents an atomic type constant (Int, Bool, Character, ...).
type TCon struct {
	Name string
}

func (t TCon) String() string            { return t.Name }
func (t TCon) Apply(s Subst) Type        { return t }
func (t TCon) FreeTypeVariables() []TVar { return nil }

// The closed set of atomic types: primitives, battle domain types, abstract
// capability markers and the Any/Void sentinels.
var (
	Int         = TCon{Name: "Int"}
	Bool        = TCon{Name: "Bool"}
	String      = TCon{Name: "String"}
	Character   = TCon{Name: "Character"}
	Team        = TCon{Name: "Team"}
	CharacterHP = TCon{Name: "CharacterHP"}
	TeamSide    = TCon{Name: "TeamSide"}
	Numeric     = TCon{Name: "Numeric"}
	Action      = TCon{Name: "Action"}
	Condition   = TCon{Name: "Condition"}
	Any         = TCon{Name: "Any"}
	Void        = TCon{Name: "Void"}
)

// TVec represents a sequence type Vec<Elem>.
type TVec struct {
	Elem Type
}

func (t TVec) String() string            { return fmt.Sprintf("Vec<%s>", t.Elem) }
func (t TVec) Apply(s Subst) Type        { return TVec{Elem: t.Elem.Apply(s)} }
func (t TVec) FreeTypeVariables() []TVar { return t.Elem.FreeTypeVariables() }

// TOption represents an optional type Option<Elem>.
type TOption struct {
	Elem Type
}

func (t TOption) String() string            { return fmt.Sprintf("Option<%s>", t.Elem) }
func (t TOption) Apply(s Subst) Type        { return TOption{Elem: t.Elem.Apply(s)} }
func (t TOption) FreeTypeVariables() []TVar { return t.Elem.FreeTypeVariables() }

// TVar represents a type variable introduced during inference (t1, t2, ...).
type TVar struct {
	Name string
}

func (t TVar) String() string { return t.Name }

func (t TVar) Apply(s Subst) Type {
	if replacement, ok := s[t.Name]; ok {
		return replacement
	}
	return t
}

func (t TVar) FreeTypeVariables() []TVar { return []TVar{t} }

// Subst is a mapping from type variables to types.
type Subst map[string]Type

// Compose combines two substitutions. Applying the result is equivalent to
// applying s2 first, then s1.
func (s1 Subst) Compose(s2 Subst) Subst {
	subst := Subst{}
	for k, v := range s2 {
		subst[k] = v
	}
	for k, v := range s1 {
		subst[k] = v.Apply(s2)
	}
	return subst
}

// IsNumeric reports whether t is a concrete implementor of the Numeric
// capability.
func IsNumeric(t Type) bool {
	return t == Type(Int) || t == Type(CharacterHP)
}

// Compatible reports whether actual can be used where expected is declared.
// Identical types match; Numeric matches its concrete implementors; Any
// matches anything; sequences and options are compatible element-wise.
func Compatible(expected, actual Type) bool {
	if expected == Type(Any) || actual == Type(Any) {
		return true
	}
	switch e := expected.(type) {
	case TCon:
		a, ok := actual.(TCon)
		if !ok {
			return false
		}
		if e == a {
			return true
		}
		if e == Numeric && IsNumeric(a) {
			return true
		}
		if a == Numeric && IsNumeric(e) {
			return true
		}
		return false
	case TVec:
		a, ok := actual.(TVec)
		return ok && Compatible(e.Elem, a.Elem)
	case TOption:
		a, ok := actual.(TOption)
		return ok && Compatible(e.Elem, a.Elem)
	}
	return false
}

// ResolveConcrete resolves abstract capability markers to a concrete
// representative. Numeric becomes hint when hint is one of its implementors,
// otherwise Int. Sequences and options resolve element-wise; concrete types
// pass through unchanged.
func ResolveConcrete(t, hint Type) Type {
	switch typ := t.(type) {
	case TCon:
		if typ == Numeric {
			if hint != nil && IsNumeric(hint) {
				return hint
			}
			return Int
		}
		return typ
	case TVec:
		var elemHint Type
		if h, ok := hint.(TVec); ok {
			elemHint = h.Elem
		}
		return TVec{Elem: ResolveConcrete(typ.Elem, elemHint)}
	case TOption:
		var elemHint Type
		if h, ok := hint.(TOption); ok {
			elemHint = h.Elem
		}
		return TOption{Elem: ResolveConcrete(typ.Elem, elemHint)}
	}
	return t
}

// IsConcrete reports whether t contains no type variables and no abstract
// markers. Only concrete types may appear on compiled evaluation nodes.
func IsConcrete(t Type) bool {
	switch typ := t.(type) {
	case TCon:
		return typ != Numeric && typ != Any
	case TVec:
		return IsConcrete(typ.Elem)
	case TOption:
		return IsConcrete(typ.Elem)
	}
	return false
}
