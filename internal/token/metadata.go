package token

import (
	"sort"

	"github.com/funvibe/funtac/internal/typesystem"
)

// ArgSpec describes one declared argument of a token kind.
type ArgSpec struct {
	Name     string
	Type     typesystem.Type
	Required bool
}

// Bound requires an argument's resolved type to implement a trait. When Elem
// is set the bound applies to the element type of a sequence argument.
type Bound struct {
	Arg   string
	Trait string
	Elem  bool
}

// Signature is the type schema of one token kind: its arguments in
// declaration order, its output type, and the inference facts the checker
// consumes. Arguments that receive a propagated element context must be
// declared after the "array" argument they depend on.
type Signature struct {
	Kind string
	Args []ArgSpec

	// Output is the declared output type; InferOutput, when set, computes
	// the output from the resolved argument types instead.
	Output      typesystem.Type
	InferOutput func(argTypes map[string]typesystem.Type) typesystem.Type

	// ContextArg names the argument checked under the element type of the
	// checked "array" sibling. Empty when the kind propagates no context.
	ContextArg string

	// EqualArgs lists argument pairs whose types must unify with each other.
	EqualArgs [][2]string

	// Bounds lists trait requirements verified after constraint solving.
	Bounds []Bound
}

// Arg returns the ArgSpec for the named argument.
func (s Signature) Arg(name string) (ArgSpec, bool) {
	for _, arg := range s.Args {
		if arg.Name == name {
			return arg, true
		}
	}
	return ArgSpec{}, false
}

// Registry maps token kinds to signatures.
type Registry struct {
	sigs map[string]Signature
}

// NewRegistry creates a registry populated with the built-in token kinds.
func NewRegistry() *Registry {
	r := &Registry{sigs: make(map[string]Signature)}
	for _, sig := range builtinSignatures() {
		r.Register(sig)
	}
	return r
}

// Register adds or replaces a signature.
func (r *Registry) Register(sig Signature) {
	r.sigs[sig.Kind] = sig
}

// Lookup returns the signature for a kind.
func (r *Registry) Lookup(kind string) (Signature, bool) {
	sig, ok := r.sigs[kind]
	return sig, ok
}

// Kinds returns all registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.sigs))
	for kind := range r.sigs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func builtinSignatures() []Signature {
	character := typesystem.Character
	anyVec := typesystem.TVec{Elem: typesystem.Any}
	numericVec := typesystem.TVec{Elem: typesystem.Numeric}

	return []Signature{
		{
			Kind:   KindStrike,
			Args:   []ArgSpec{{Name: "target", Type: character, Required: true}},
			Output: typesystem.Action,
		},
		{
			Kind:   KindHeal,
			Args:   []ArgSpec{{Name: "target", Type: character, Required: true}},
			Output: typesystem.Action,
		},
		{
			Kind: KindCheck,
			Args: []ArgSpec{
				{Name: "condition", Type: typesystem.Bool, Required: true},
				{Name: "then_action", Type: typesystem.Action, Required: true},
			},
			Output: typesystem.Action,
		},
		{
			Kind:   KindTrueOrFalseRandom,
			Output: typesystem.Bool,
		},
		{
			Kind: KindGreaterThan,
			Args: []ArgSpec{
				{Name: "left", Type: typesystem.Numeric, Required: true},
				{Name: "right", Type: typesystem.Numeric, Required: true},
			},
			Output: typesystem.Bool,
			Bounds: []Bound{
				{Arg: "left", Trait: typesystem.TraitNumeric},
				{Arg: "right", Trait: typesystem.TraitNumeric},
			},
		},
		{
			Kind: KindLessThan,
			Args: []ArgSpec{
				{Name: "left", Type: typesystem.Numeric, Required: true},
				{Name: "right", Type: typesystem.Numeric, Required: true},
			},
			Output: typesystem.Bool,
			Bounds: []Bound{
				{Arg: "left", Trait: typesystem.TraitNumeric},
				{Arg: "right", Trait: typesystem.TraitNumeric},
			},
		},
		{
			Kind: KindEq,
			Args: []ArgSpec{
				{Name: "left", Type: typesystem.Any, Required: true},
				{Name: "right", Type: typesystem.Any, Required: true},
			},
			Output:    typesystem.Bool,
			EqualArgs: [][2]string{{"left", "right"}},
			Bounds: []Bound{
				{Arg: "left", Trait: typesystem.TraitEq},
				{Arg: "right", Trait: typesystem.TraitEq},
			},
		},
		{
			Kind:   KindNumber,
			Output: typesystem.Int,
		},
		{
			Kind:   KindActingCharacter,
			Output: character,
		},
		{
			Kind:   KindAllCharacters,
			Output: typesystem.TVec{Elem: character},
		},
		{
			Kind:   KindCharacterToHp,
			Args:   []ArgSpec{{Name: "character", Type: character, Required: true}},
			Output: typesystem.CharacterHP,
		},
		{
			Kind:   KindCharacterHpToCharacter,
			Args:   []ArgSpec{{Name: "character_hp", Type: typesystem.CharacterHP, Required: true}},
			Output: character,
		},
		{
			Kind:   KindCharacterTeam,
			Args:   []ArgSpec{{Name: "character", Type: character, Required: true}},
			Output: typesystem.TeamSide,
		},
		{
			Kind:   KindTeamMembers,
			Args:   []ArgSpec{{Name: "team_side", Type: typesystem.TeamSide, Required: true}},
			Output: typesystem.TVec{Elem: character},
		},
		{
			Kind:   KindAllTeamSides,
			Output: typesystem.TVec{Elem: typesystem.TeamSide},
		},
		{
			Kind:   KindEnemy,
			Output: typesystem.TeamSide,
		},
		{
			Kind:   KindHero,
			Output: typesystem.TeamSide,
		},
		{
			// Element's output is not metadata-driven: the checker resolves
			// it from the innermost enclosing combinator context.
			Kind:   KindElement,
			Output: typesystem.Any,
		},
		{
			Kind: KindFilterList,
			Args: []ArgSpec{
				{Name: "array", Type: anyVec, Required: true},
				{Name: "condition", Type: typesystem.Bool, Required: true},
			},
			Output:      anyVec,
			InferOutput: filterListOutput,
			ContextArg:  "condition",
		},
		{
			Kind: KindMap,
			Args: []ArgSpec{
				{Name: "array", Type: anyVec, Required: true},
				{Name: "transform", Type: typesystem.Any, Required: true},
			},
			Output:      anyVec,
			InferOutput: mapOutput,
			ContextArg:  "transform",
		},
		{
			Kind:        KindRandomPick,
			Args:        []ArgSpec{{Name: "array", Type: anyVec, Required: true}},
			Output:      typesystem.Any,
			InferOutput: elementOutput,
		},
		{
			Kind:        KindMax,
			Args:        []ArgSpec{{Name: "array", Type: numericVec, Required: true}},
			Output:      typesystem.Numeric,
			InferOutput: numericElementOutput,
			Bounds:      []Bound{{Arg: "array", Trait: typesystem.TraitOrd, Elem: true}},
		},
		{
			Kind:        KindMin,
			Args:        []ArgSpec{{Name: "array", Type: numericVec, Required: true}},
			Output:      typesystem.Numeric,
			InferOutput: numericElementOutput,
			Bounds:      []Bound{{Arg: "array", Trait: typesystem.TraitOrd, Elem: true}},
		},
		{
			Kind:        KindNumericMax,
			Args:        []ArgSpec{{Name: "array", Type: numericVec, Required: true}},
			Output:      typesystem.Numeric,
			InferOutput: numericElementOutput,
			Bounds:      []Bound{{Arg: "array", Trait: typesystem.TraitNumeric, Elem: true}},
		},
		{
			Kind:        KindNumericMin,
			Args:        []ArgSpec{{Name: "array", Type: numericVec, Required: true}},
			Output:      typesystem.Numeric,
			InferOutput: numericElementOutput,
			Bounds:      []Bound{{Arg: "array", Trait: typesystem.TraitNumeric, Elem: true}},
		},
	}
}

// filterListOutput passes the array type through.
func filterListOutput(argTypes map[string]typesystem.Type) typesystem.Type {
	if t, ok := argTypes["array"]; ok {
		return t
	}
	return typesystem.TVec{Elem: typesystem.Any}
}

// mapOutput is a sequence of the transform type.
func mapOutput(argTypes map[string]typesystem.Type) typesystem.Type {
	if t, ok := argTypes["transform"]; ok {
		return typesystem.TVec{Elem: t}
	}
	return typesystem.TVec{Elem: typesystem.Any}
}

// elementOutput is the array's element type.
func elementOutput(argTypes map[string]typesystem.Type) typesystem.Type {
	if vec, ok := argTypes["array"].(typesystem.TVec); ok {
		return vec.Elem
	}
	return typesystem.Any
}

// numericElementOutput is the array's element type when concrete, otherwise
// the abstract Numeric marker.
func numericElementOutput(argTypes map[string]typesystem.Type) typesystem.Type {
	if vec, ok := argTypes["array"].(typesystem.TVec); ok {
		if typesystem.IsConcrete(vec.Elem) {
			return vec.Elem
		}
	}
	return typesystem.Numeric
}
