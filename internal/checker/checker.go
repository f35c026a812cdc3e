// Package checker turns raw token trees into typed ASTs. It is a
// unification-based engine: the walk records equality constraints between
// child types and declared argument types, one solve pass unifies them,
// and trait bounds are verified against the resolved types afterwards.
package checker

import (
	"errors"
	"fmt"

	"github.com/funvibe/funtac/internal/token"
	"github.com/funvibe/funtac/internal/typesystem"
)

// TypedNode is one checked token annotated with its resolved output type
// and its checked children. Built bottom-up, consumed by the generator.
type TypedNode struct {
	Token *token.Token
	Type  typesystem.Type
	Args  map[string]*TypedNode
}

// Arg returns the named checked child.
func (n *TypedNode) Arg(name string) (*TypedNode, bool) {
	child, ok := n.Args[name]
	return child, ok
}

// Checker validates token trees against the signature registry and the
// trait system.
type Checker struct {
	meta   *token.Registry
	traits *typesystem.TraitSystem
}

// New creates a checker over the given signatures and trait registrations.
func New(meta *token.Registry, traits *typesystem.TraitSystem) *Checker {
	return &Checker{meta: meta, traits: traits}
}

// NewDefault creates a checker over the built-in signatures and traits.
func NewDefault() *Checker {
	return New(token.NewRegistry(), typesystem.NewTraitSystem())
}

// Check type-checks one token tree. On success every node of the returned
// typed AST carries a resolved type; on failure the error is a
// *CompileError whose path leads from the root to the offending token.
func (c *Checker) Check(tok *token.Token) (*TypedNode, error) {
	p := &checkPass{
		meta:     c.meta,
		traits:   c.traits,
		visiting: make(map[*token.Token]bool),
	}

	root, err := p.infer(tok)
	if err != nil {
		return nil, err
	}

	subst, err := p.solve()
	if err != nil {
		return nil, err
	}

	if err := p.checkBounds(subst); err != nil {
		return nil, err
	}

	if err := p.resolve(root, subst); err != nil {
		return nil, err
	}
	return root, nil
}

// constraint is a pending equality between an inferred child type and the
// type its argument position expects, plus where it came from.
type constraint struct {
	actual   typesystem.Type
	expected typesystem.Type
	context  string // "Kind.arg"
	path     []string
	tok      *token.Token
}

// boundCheck is a capability requirement verified after the solve.
type boundCheck struct {
	typ     typesystem.Type
	trait   string
	elem    bool // check the element type, not the collection itself
	context string
	path    []string
	tok     *token.Token
}

// checkPass holds the per-Check state: the element-context stack for
// combinator operands, the descent path for diagnostics, the pending
// constraints and bounds, and the fresh-variable counter.
type checkPass struct {
	meta        *token.Registry
	traits      *typesystem.TraitSystem
	visiting    map[*token.Token]bool
	elemCtx     []typesystem.Type
	path        []string
	constraints []constraint
	bounds      []boundCheck
	varSeq      int
}

func (p *checkPass) infer(tok *token.Token) (*TypedNode, error) {
	if tok == nil {
		return nil, &CompileError{Err: errors.New("nil token")}
	}
	if p.visiting[tok] {
		return nil, &CompileError{Err: &CyclicReferenceError{Kind: tok.Kind}, Token: tok}
	}
	p.visiting[tok] = true
	defer delete(p.visiting, tok)

	// Element has no signature: its type comes solely from the nearest
	// enclosing combinator's propagated context.
	if tok.Kind == token.KindElement {
		if len(p.elemCtx) == 0 {
			return nil, &CompileError{
				Err:   &UnresolvedTypeError{Context: "Element used outside of list context"},
				Token: tok,
			}
		}
		return &TypedNode{Token: tok, Type: p.elemCtx[len(p.elemCtx)-1]}, nil
	}

	sig, ok := p.meta.Lookup(tok.Kind)
	if !ok {
		return nil, &CompileError{Err: &UndefinedTokenError{Kind: tok.Kind}, Token: tok}
	}
	sig = p.instantiateSig(sig)

	node := &TypedNode{Token: tok, Args: make(map[string]*TypedNode, len(sig.Args))}
	argTypes := make(map[string]typesystem.Type, len(sig.Args))

	for _, spec := range sig.Args {
		child := tok.Arg(spec.Name)
		if child == nil {
			if spec.Required {
				return nil, &CompileError{
					Err:   &MissingFieldError{Kind: tok.Kind, Field: spec.Name},
					Token: tok,
				}
			}
			continue
		}

		var checked *TypedNode
		var err error
		if spec.Name == sig.ContextArg {
			// The combinator's special operand is checked under the
			// element type of its already-checked array sibling.
			array, ok := node.Args["array"]
			if !ok {
				return nil, &CompileError{
					Err:   &MissingFieldError{Kind: tok.Kind, Field: "array"},
					Token: tok,
				}
			}
			elem := typesystem.Type(typesystem.Any)
			if e, ok := elementOf(array.Type); ok {
				elem = e
			}
			p.elemCtx = append(p.elemCtx, elem)
			checked, err = p.inferArg(tok, spec.Name, child)
			p.elemCtx = p.elemCtx[:len(p.elemCtx)-1]
		} else {
			checked, err = p.inferArg(tok, spec.Name, child)
		}
		if err != nil {
			return nil, wrap(err, tok).AddContext(tok.Kind, spec.Name)
		}

		p.constrain(checked.Type, spec.Type, tok, tok.Kind+"."+spec.Name)
		node.Args[spec.Name] = checked
		argTypes[spec.Name] = checked.Type
	}

	if len(tok.Args) > len(node.Args) {
		return nil, &CompileError{
			Err:   &ArgumentCountError{Kind: tok.Kind, Expected: len(sig.Args), Actual: len(tok.Args)},
			Token: tok,
		}
	}

	for _, pair := range sig.EqualArgs {
		a, aok := argTypes[pair[0]]
		b, bok := argTypes[pair[1]]
		if !aok || !bok {
			continue
		}
		// Mixed numeric operands stay legal: the generator projects
		// CharacterHP down to its numeric component.
		if numericLike(a) && numericLike(b) {
			continue
		}
		p.constrain(b, a, tok, tok.Kind+"."+pair[1])
	}

	for _, bound := range sig.Bounds {
		t, ok := argTypes[bound.Arg]
		if !ok {
			continue
		}
		p.bounds = append(p.bounds, boundCheck{
			typ:     t,
			trait:   bound.Trait,
			elem:    bound.Elem,
			context: tok.Kind + "." + bound.Arg,
			path:    p.snapshotPath(),
			tok:     tok,
		})
	}

	node.Type = sig.Output
	if sig.InferOutput != nil {
		node.Type = sig.InferOutput(argTypes)
	}
	return node, nil
}

// inferArg descends into one argument, keeping the path stack in step with
// the recursion.
func (p *checkPass) inferArg(parent *token.Token, name string, child *token.Token) (*TypedNode, error) {
	p.path = append(p.path, parent.Kind+"."+name)
	defer func() { p.path = p.path[:len(p.path)-1] }()
	return p.infer(child)
}

func (p *checkPass) constrain(actual, expected typesystem.Type, tok *token.Token, context string) {
	p.constraints = append(p.constraints, constraint{
		actual:   actual,
		expected: expected,
		context:  context,
		path:     p.snapshotPath(),
		tok:      tok,
	})
}

func (p *checkPass) snapshotPath() []string {
	if len(p.path) == 0 {
		return nil
	}
	path := make([]string, len(p.path))
	copy(path, p.path)
	return path
}

// solve unifies all recorded constraints in one pass, folding each
// resulting substitution into the global one.
func (p *checkPass) solve() (typesystem.Subst, error) {
	subst := make(typesystem.Subst)
	for _, c := range p.constraints {
		actual := c.actual.Apply(subst)
		expected := c.expected.Apply(subst)
		s, err := typesystem.Unify(actual, expected)
		if err != nil {
			var inf *typesystem.InfiniteTypeError
			if errors.As(err, &inf) {
				return nil, &CompileError{Err: inf, Path: append(c.path, c.context), Token: c.tok}
			}
			return nil, &CompileError{
				Err:   &TypeMismatchError{Expected: expected, Actual: actual, Context: c.context},
				Path:  c.path,
				Token: c.tok,
			}
		}
		subst = s.Compose(subst)
	}
	return subst, nil
}

// checkBounds verifies recorded capability requirements against the solved
// types. Types still abstract after the solve are left to the generator's
// concrete resolution.
func (p *checkPass) checkBounds(subst typesystem.Subst) error {
	for _, b := range p.bounds {
		t := b.typ.Apply(subst)
		if b.elem {
			e, ok := elementOf(t)
			if !ok {
				continue
			}
			t = e
		}
		if !typesystem.IsConcrete(t) {
			continue
		}
		if err := p.traits.CheckBound(t, b.trait); err != nil {
			return &CompileError{Err: err, Path: append(b.path, b.context), Token: b.tok}
		}
	}
	return nil
}

// resolve applies the final substitution to every node and rejects types
// the solver left open.
func (p *checkPass) resolve(n *TypedNode, subst typesystem.Subst) error {
	n.Type = n.Type.Apply(subst)
	if len(n.Type.FreeTypeVariables()) > 0 {
		return &CompileError{
			Err:   &UnresolvedTypeError{Context: fmt.Sprintf("%s has unresolved type %s", n.Token.Kind, n.Type)},
			Token: n.Token,
		}
	}
	for _, child := range n.Args {
		if err := p.resolve(child, subst); err != nil {
			return err
		}
	}
	return nil
}

// instantiateSig replaces the signature's type variables with fresh ones,
// one renaming shared across its arguments and output. Built-in signatures
// carry no variables, so this is the identity for them; it is the seam a
// variable-binding token kind would go through.
func (p *checkPass) instantiateSig(sig token.Signature) token.Signature {
	seen := make(typesystem.Subst)
	for _, arg := range sig.Args {
		for _, v := range arg.Type.FreeTypeVariables() {
			if _, ok := seen[v.Name]; !ok {
				seen[v.Name] = p.freshVar()
			}
		}
	}
	if sig.Output != nil {
		for _, v := range sig.Output.FreeTypeVariables() {
			if _, ok := seen[v.Name]; !ok {
				seen[v.Name] = p.freshVar()
			}
		}
	}
	if len(seen) == 0 {
		return sig
	}

	args := make([]token.ArgSpec, len(sig.Args))
	copy(args, sig.Args)
	for i := range args {
		args[i].Type = args[i].Type.Apply(seen)
	}
	sig.Args = args
	if sig.Output != nil {
		sig.Output = sig.Output.Apply(seen)
	}
	return sig
}

// generalize is instantiateSig's counterpart and is identity today: no
// token kind binds type variables.
func (p *checkPass) generalize(t typesystem.Type) typesystem.Type { return t }

func (p *checkPass) freshVar() typesystem.TVar {
	p.varSeq++
	return typesystem.TVar{Name: fmt.Sprintf("t%d", p.varSeq)}
}

func elementOf(t typesystem.Type) (typesystem.Type, bool) {
	switch v := t.(type) {
	case typesystem.TVec:
		return v.Elem, true
	case typesystem.TOption:
		return v.Elem, true
	}
	return nil, false
}

func numericLike(t typesystem.Type) bool {
	return typesystem.IsNumeric(t) || t == typesystem.Type(typesystem.Numeric)
}
