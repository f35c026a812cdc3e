package typesystem

import "sort"

// TraitDef describes one capability: its name and the traits it requires.
type TraitDef struct {
	Name        string
	Supertraits []string
}

// TraitSystem tracks trait definitions and which concrete types implement
// them. Two capabilities are structural rather than registered: the abstract
// Numeric marker satisfies Numeric, and every Vec satisfies Collection.
type TraitSystem struct {
	defs  map[string]TraitDef
	impls map[string]map[string]bool // trait name -> type name
}

// Built-in trait names.
const (
	TraitNumeric    = "Numeric"
	TraitEq         = "Eq"
	TraitOrd        = "Ord"
	TraitCollection = "Collection"
	TraitShow       = "Show"
)

// NewTraitSystem creates a trait system pre-populated with the built-in
// traits and their implementations.
func NewTraitSystem() *TraitSystem {
	ts := &TraitSystem{
		defs:  make(map[string]TraitDef),
		impls: make(map[string]map[string]bool),
	}

	ts.Define(TraitDef{Name: TraitNumeric})
	ts.Define(TraitDef{Name: TraitEq})
	ts.Define(TraitDef{Name: TraitOrd, Supertraits: []string{TraitEq}})
	ts.Define(TraitDef{Name: TraitCollection})
	ts.Define(TraitDef{Name: TraitShow})

	for _, t := range []Type{Int, CharacterHP} {
		ts.AddImpl(TraitNumeric, t)
		ts.AddImpl(TraitOrd, t)
	}
	for _, t := range []Type{Int, Bool, String, Character, Team, CharacterHP, TeamSide} {
		ts.AddImpl(TraitEq, t)
		ts.AddImpl(TraitShow, t)
	}

	return ts
}

// Define registers a trait definition, replacing any previous one.
func (ts *TraitSystem) Define(def TraitDef) {
	ts.defs[def.Name] = def
	if ts.impls[def.Name] == nil {
		ts.impls[def.Name] = make(map[string]bool)
	}
}

// AddImpl registers t as an implementor of the named trait.
func (ts *TraitSystem) AddImpl(trait string, t Type) {
	if ts.impls[trait] == nil {
		ts.impls[trait] = make(map[string]bool)
	}
	ts.impls[trait][t.String()] = true
}

// Implements reports whether t satisfies the named trait, directly or through
// a supertrait-closed registration.
func (ts *TraitSystem) Implements(t Type, trait string) bool {
	if trait == TraitNumeric {
		if con, ok := t.(TCon); ok && con == Numeric {
			return true
		}
	}
	if trait == TraitCollection {
		if _, ok := t.(TVec); ok {
			return true
		}
	}
	for _, have := range ts.TraitsFor(t) {
		if have == trait {
			return true
		}
	}
	return false
}

// TraitsFor returns the sorted set of traits t implements, including traits
// implied by supertrait closure (a type registered for Ord also has Eq).
func (ts *TraitSystem) TraitsFor(t Type) []string {
	seen := map[string]bool{}
	for trait, types := range ts.impls {
		if types[t.String()] {
			ts.collectWithSupertraits(trait, seen)
		}
	}
	if con, ok := t.(TCon); ok && con == Numeric {
		seen[TraitNumeric] = true
	}
	if _, ok := t.(TVec); ok {
		seen[TraitCollection] = true
	}

	traits := make([]string, 0, len(seen))
	for trait := range seen {
		traits = append(traits, trait)
	}
	sort.Strings(traits)
	return traits
}

func (ts *TraitSystem) collectWithSupertraits(trait string, seen map[string]bool) {
	if seen[trait] {
		return
	}
	seen[trait] = true
	for _, super := range ts.defs[trait].Supertraits {
		ts.collectWithSupertraits(super, seen)
	}
}

// CheckBound verifies that t implements the named trait, returning a
// TraitBoundError describing the failure otherwise.
func (ts *TraitSystem) CheckBound(t Type, trait string) error {
	if ts.Implements(t, trait) {
		return nil
	}
	return &TraitBoundError{Type: t, Trait: trait, Available: ts.TraitsFor(t)}
}
