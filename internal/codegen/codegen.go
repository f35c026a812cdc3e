// Package codegen lowers checked token trees into evaluation nodes. The
// generator keeps one converter table per concrete output type and
// dispatches on token kind inside each table; converters request children
// at the types the engine nodes need, so every shape the checker admits is
// either realized or rejected here with a returned error, never during a
// live turn.
package codegen

import (
	"errors"

	"github.com/funvibe/funtac/internal/checker"
	"github.com/funvibe/funtac/internal/engine"
	"github.com/funvibe/funtac/internal/token"
	"github.com/funvibe/funtac/internal/typesystem"
)

// Registry converts checked rules into executable node trees.
type Registry struct{}

// NewRegistry creates a generator with the built-in converter tables.
func NewRegistry() *Registry {
	return &Registry{}
}

// GenerateRule lowers a checked rule into an executable action node. Only
// Action-typed roots are accepted.
func (r *Registry) GenerateRule(n *checker.TypedNode) (engine.Node[engine.Action], error) {
	if n == nil {
		return nil, errors.New("cannot generate a rule from an empty tree")
	}
	if n.Type != typesystem.Type(typesystem.Action) {
		return nil, &RootTypeError{Type: n.Type}
	}
	return r.convertAction(n)
}

func (r *Registry) convertAction(n *checker.TypedNode) (engine.Node[engine.Action], error) {
	switch n.Token.Kind {
	case token.KindStrike:
		target, err := convertChild(n, "target", r.convertCharacter)
		if err != nil {
			return nil, err
		}
		return &engine.StrikeNode{Target: target}, nil
	case token.KindHeal:
		target, err := convertChild(n, "target", r.convertCharacter)
		if err != nil {
			return nil, err
		}
		return &engine.HealNode{Target: target}, nil
	case token.KindCheck:
		condition, err := convertChild(n, "condition", r.convertBool)
		if err != nil {
			return nil, err
		}
		then, err := convertChild(n, "then_action", r.convertAction)
		if err != nil {
			return nil, err
		}
		return &engine.CheckNode{Condition: condition, Then: then}, nil
	default:
		return nil, &NoConverterError{Table: "action", Kind: n.Token.Kind}
	}
}

func (r *Registry) convertBool(n *checker.TypedNode) (engine.Node[bool], error) {
	switch n.Token.Kind {
	case token.KindTrueOrFalseRandom:
		return engine.RandomConditionNode{}, nil
	case token.KindGreaterThan:
		return r.convertComparison(n, engine.CompareGreater)
	case token.KindLessThan:
		return r.convertComparison(n, engine.CompareLess)
	case token.KindEq:
		return r.convertEquality(n)
	default:
		return nil, &NoConverterError{Table: "condition", Kind: n.Token.Kind}
	}
}

func (r *Registry) convertComparison(n *checker.TypedNode, op engine.CompareOp) (engine.Node[bool], error) {
	left, err := r.child(n, "left")
	if err != nil {
		return nil, err
	}
	right, err := r.child(n, "right")
	if err != nil {
		return nil, err
	}
	if !numericLike(left.Type) || !numericLike(right.Type) {
		return nil, &OperandTypesError{Kind: n.Token.Kind, Left: left.Type, Right: right.Type}
	}
	leftNode, err := r.numericOperand(left, right.Type)
	if err != nil {
		return nil, err
	}
	rightNode, err := r.numericOperand(right, left.Type)
	if err != nil {
		return nil, err
	}
	return &engine.CompareNode{Left: leftNode, Right: rightNode, Op: op}, nil
}

func (r *Registry) convertEquality(n *checker.TypedNode) (engine.Node[bool], error) {
	left, err := r.child(n, "left")
	if err != nil {
		return nil, err
	}
	right, err := r.child(n, "right")
	if err != nil {
		return nil, err
	}

	// Mixed hit-point and integer operands compare by numeric component.
	if numericLike(left.Type) && numericLike(right.Type) {
		leftNode, err := r.numericOperand(left, right.Type)
		if err != nil {
			return nil, err
		}
		rightNode, err := r.numericOperand(right, left.Type)
		if err != nil {
			return nil, err
		}
		return &engine.EqualNode[int]{Left: leftNode, Right: rightNode}, nil
	}

	switch {
	case left.Type == typesystem.Type(typesystem.Character) && right.Type == typesystem.Type(typesystem.Character):
		leftNode, err := r.convertCharacter(left)
		if err != nil {
			return nil, err
		}
		rightNode, err := r.convertCharacter(right)
		if err != nil {
			return nil, err
		}
		return &engine.EqualNode[engine.Character]{Left: leftNode, Right: rightNode}, nil
	case left.Type == typesystem.Type(typesystem.TeamSide) && right.Type == typesystem.Type(typesystem.TeamSide):
		leftNode, err := r.convertTeamSide(left)
		if err != nil {
			return nil, err
		}
		rightNode, err := r.convertTeamSide(right)
		if err != nil {
			return nil, err
		}
		return &engine.EqualNode[engine.TeamSide]{Left: leftNode, Right: rightNode}, nil
	case left.Type == typesystem.Type(typesystem.Bool) && right.Type == typesystem.Type(typesystem.Bool):
		leftNode, err := r.convertBool(left)
		if err != nil {
			return nil, err
		}
		rightNode, err := r.convertBool(right)
		if err != nil {
			return nil, err
		}
		return &engine.EqualNode[bool]{Left: leftNode, Right: rightNode}, nil
	default:
		return nil, &OperandTypesError{Kind: n.Token.Kind, Left: left.Type, Right: right.Type}
	}
}

func (r *Registry) convertInt(n *checker.TypedNode) (engine.Node[int], error) {
	switch n.Token.Kind {
	case token.KindNumber:
		return engine.ConstantNode[int]{Value: n.Token.Value}, nil
	case token.KindElement:
		return engine.NewElementNode[int]("int"), nil
	case token.KindRandomPick:
		array, err := convertChild(n, "array", r.convertIntArray)
		if err != nil {
			return nil, err
		}
		return &engine.RandomPickNode[int]{Array: array, Label: "int"}, nil
	case token.KindMax, token.KindNumericMax:
		array, err := convertChild(n, "array", r.convertIntArray)
		if err != nil {
			return nil, err
		}
		return engine.NewMaxNode(array, func(v int) int { return v }), nil
	case token.KindMin, token.KindNumericMin:
		array, err := convertChild(n, "array", r.convertIntArray)
		if err != nil {
			return nil, err
		}
		return engine.NewMinNode(array, func(v int) int { return v }), nil
	default:
		return nil, &NoConverterError{Table: "int", Kind: n.Token.Kind}
	}
}

func (r *Registry) convertCharacter(n *checker.TypedNode) (engine.Node[engine.Character], error) {
	switch n.Token.Kind {
	case token.KindActingCharacter:
		return engine.ActingCharacterNode{}, nil
	case token.KindElement:
		return engine.NewElementNode[engine.Character]("character"), nil
	case token.KindCharacterHpToCharacter:
		hp, err := convertChild(n, "character_hp", r.convertCharacterHP)
		if err != nil {
			return nil, err
		}
		return &engine.HPToCharacterNode{HP: hp}, nil
	case token.KindRandomPick:
		array, err := convertChild(n, "array", r.convertCharacterArray)
		if err != nil {
			return nil, err
		}
		return &engine.RandomPickNode[engine.Character]{Array: array, Label: "character"}, nil
	default:
		return nil, &NoConverterError{Table: "character", Kind: n.Token.Kind}
	}
}

func (r *Registry) convertCharacterHP(n *checker.TypedNode) (engine.Node[engine.CharacterHP], error) {
	switch n.Token.Kind {
	case token.KindCharacterToHp:
		character, err := convertChild(n, "character", r.convertCharacter)
		if err != nil {
			return nil, err
		}
		return &engine.CharacterToHPNode{Character: character}, nil
	case token.KindElement:
		return engine.NewElementNode[engine.CharacterHP]("character hp"), nil
	case token.KindRandomPick:
		array, err := convertChild(n, "array", r.convertCharacterHPArray)
		if err != nil {
			return nil, err
		}
		return &engine.RandomPickNode[engine.CharacterHP]{Array: array, Label: "character hp"}, nil
	case token.KindMax, token.KindNumericMax:
		array, err := convertChild(n, "array", r.convertCharacterHPArray)
		if err != nil {
			return nil, err
		}
		return engine.NewMaxNode(array, func(hp engine.CharacterHP) int { return hp.Value }), nil
	case token.KindMin, token.KindNumericMin:
		array, err := convertChild(n, "array", r.convertCharacterHPArray)
		if err != nil {
			return nil, err
		}
		return engine.NewMinNode(array, func(hp engine.CharacterHP) int { return hp.Value }), nil
	default:
		return nil, &NoConverterError{Table: "character hp", Kind: n.Token.Kind}
	}
}

func (r *Registry) convertTeamSide(n *checker.TypedNode) (engine.Node[engine.TeamSide], error) {
	switch n.Token.Kind {
	case token.KindEnemy:
		return engine.ConstantNode[engine.TeamSide]{Value: engine.SideEnemy}, nil
	case token.KindHero:
		return engine.ConstantNode[engine.TeamSide]{Value: engine.SidePlayer}, nil
	case token.KindCharacterTeam:
		character, err := convertChild(n, "character", r.convertCharacter)
		if err != nil {
			return nil, err
		}
		return &engine.CharacterTeamNode{Character: character}, nil
	case token.KindElement:
		return engine.NewElementNode[engine.TeamSide]("team side"), nil
	case token.KindRandomPick:
		array, err := convertChild(n, "array", r.convertTeamSideArray)
		if err != nil {
			return nil, err
		}
		return &engine.RandomPickNode[engine.TeamSide]{Array: array, Label: "team side"}, nil
	default:
		return nil, &NoConverterError{Table: "team side", Kind: n.Token.Kind}
	}
}

func (r *Registry) convertCharacterArray(n *checker.TypedNode) (engine.Node[[]engine.Character], error) {
	switch n.Token.Kind {
	case token.KindAllCharacters:
		return engine.AllCharactersNode{}, nil
	case token.KindTeamMembers:
		side, err := convertChild(n, "team_side", r.convertTeamSide)
		if err != nil {
			return nil, err
		}
		return &engine.TeamMembersNode{Side: side}, nil
	case token.KindFilterList:
		array, err := convertChild(n, "array", r.convertCharacterArray)
		if err != nil {
			return nil, err
		}
		condition, err := convertChild(n, "condition", r.convertBool)
		if err != nil {
			return nil, err
		}
		return &engine.FilterNode[engine.Character]{Array: array, Condition: condition}, nil
	case token.KindMap:
		array, err := r.child(n, "array")
		if err != nil {
			return nil, err
		}
		transform, err := convertChild(n, "transform", r.convertCharacter)
		if err != nil {
			return nil, err
		}
		switch elem, _ := elementType(array.Type); elem {
		case typesystem.Type(typesystem.Character):
			source, err := r.convertCharacterArray(array)
			if err != nil {
				return nil, err
			}
			return &engine.MapNode[engine.Character, engine.Character]{Array: source, Transform: transform}, nil
		case typesystem.Type(typesystem.CharacterHP):
			source, err := r.convertCharacterHPArray(array)
			if err != nil {
				return nil, err
			}
			return &engine.MapNode[engine.CharacterHP, engine.Character]{Array: source, Transform: transform}, nil
		default:
			return nil, &ElementTypeError{Kind: n.Token.Kind, Type: array.Type}
		}
	default:
		return nil, &NoConverterError{Table: "character array", Kind: n.Token.Kind}
	}
}

func (r *Registry) convertIntArray(n *checker.TypedNode) (engine.Node[[]int], error) {
	switch n.Token.Kind {
	case token.KindFilterList:
		array, err := convertChild(n, "array", r.convertIntArray)
		if err != nil {
			return nil, err
		}
		condition, err := convertChild(n, "condition", r.convertBool)
		if err != nil {
			return nil, err
		}
		return &engine.FilterNode[int]{Array: array, Condition: condition}, nil
	case token.KindMap:
		array, err := r.child(n, "array")
		if err != nil {
			return nil, err
		}
		transform, err := convertChild(n, "transform", r.convertInt)
		if err != nil {
			return nil, err
		}
		switch elem, _ := elementType(array.Type); elem {
		case typesystem.Type(typesystem.Character):
			source, err := r.convertCharacterArray(array)
			if err != nil {
				return nil, err
			}
			return &engine.MapNode[engine.Character, int]{Array: source, Transform: transform}, nil
		case typesystem.Type(typesystem.CharacterHP):
			source, err := r.convertCharacterHPArray(array)
			if err != nil {
				return nil, err
			}
			return &engine.MapNode[engine.CharacterHP, int]{Array: source, Transform: transform}, nil
		default:
			return nil, &ElementTypeError{Kind: n.Token.Kind, Type: array.Type}
		}
	default:
		return nil, &NoConverterError{Table: "int array", Kind: n.Token.Kind}
	}
}

func (r *Registry) convertCharacterHPArray(n *checker.TypedNode) (engine.Node[[]engine.CharacterHP], error) {
	switch n.Token.Kind {
	case token.KindFilterList:
		array, err := convertChild(n, "array", r.convertCharacterHPArray)
		if err != nil {
			return nil, err
		}
		condition, err := convertChild(n, "condition", r.convertBool)
		if err != nil {
			return nil, err
		}
		return &engine.FilterNode[engine.CharacterHP]{Array: array, Condition: condition}, nil
	case token.KindMap:
		array, err := r.child(n, "array")
		if err != nil {
			return nil, err
		}
		transform, err := convertChild(n, "transform", r.convertCharacterHP)
		if err != nil {
			return nil, err
		}
		if elem, _ := elementType(array.Type); elem != typesystem.Type(typesystem.Character) {
			return nil, &ElementTypeError{Kind: n.Token.Kind, Type: array.Type}
		}
		source, err := r.convertCharacterArray(array)
		if err != nil {
			return nil, err
		}
		return &engine.MapNode[engine.Character, engine.CharacterHP]{Array: source, Transform: transform}, nil
	default:
		return nil, &NoConverterError{Table: "character hp array", Kind: n.Token.Kind}
	}
}

func (r *Registry) convertTeamSideArray(n *checker.TypedNode) (engine.Node[[]engine.TeamSide], error) {
	switch n.Token.Kind {
	case token.KindAllTeamSides:
		return engine.AllTeamSidesNode{}, nil
	case token.KindFilterList:
		array, err := convertChild(n, "array", r.convertTeamSideArray)
		if err != nil {
			return nil, err
		}
		condition, err := convertChild(n, "condition", r.convertBool)
		if err != nil {
			return nil, err
		}
		return &engine.FilterNode[engine.TeamSide]{Array: array, Condition: condition}, nil
	default:
		return nil, &NoConverterError{Table: "team side array", Kind: n.Token.Kind}
	}
}

// child returns the named checked child, which converters inspect for its
// resolved type before choosing a table.
func (r *Registry) child(n *checker.TypedNode, name string) (*checker.TypedNode, error) {
	child, ok := n.Arg(name)
	if !ok {
		return nil, &MissingChildError{Kind: n.Token.Kind, Child: name}
	}
	return child, nil
}

// numericOperand lowers one comparison operand to its integer reading.
// Hit-point operands project to their numeric component; an operand the
// checker left abstract resolves against the other side's type, or to Int
// when both sides stay abstract.
func (r *Registry) numericOperand(n *checker.TypedNode, other typesystem.Type) (engine.Node[int], error) {
	if typesystem.ResolveConcrete(n.Type, other) == typesystem.Type(typesystem.CharacterHP) {
		hp, err := r.convertCharacterHP(n)
		if err != nil {
			return nil, err
		}
		return &engine.HPValueNode{HP: hp}, nil
	}
	return r.convertInt(n)
}

// convertChild looks up a named child and lowers it through the given table.
func convertChild[T any](n *checker.TypedNode, name string, table func(*checker.TypedNode) (engine.Node[T], error)) (engine.Node[T], error) {
	child, ok := n.Arg(name)
	if !ok {
		return nil, &MissingChildError{Kind: n.Token.Kind, Child: name}
	}
	return table(child)
}

func elementType(t typesystem.Type) (typesystem.Type, bool) {
	if vec, ok := t.(typesystem.TVec); ok {
		return vec.Elem, true
	}
	return nil, false
}

func numericLike(t typesystem.Type) bool {
	return typesystem.IsNumeric(t) || t == typesystem.Type(typesystem.Numeric)
}
