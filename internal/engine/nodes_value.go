package engine

// ConstantNode yields a fixed value: a Number literal or a team-side
// constant.
type ConstantNode[T any] struct {
	Value T
}

func (n ConstantNode[T]) Evaluate(*Context) (T, error) {
	return n.Value, nil
}

// ActingCharacterNode yields the character whose turn is being resolved.
type ActingCharacterNode struct{}

func (ActingCharacterNode) Evaluate(ctx *Context) (Character, error) {
	return ctx.View.Acting, nil
}

// ElementNode reads the combinator-bound current element and narrows it to
// the node's type. Outside a combinator operand, or under a binding of a
// different shape, evaluation fails hard.
type ElementNode[T any] struct {
	want string
}

// NewElementNode creates an element reference narrowing to T; want names
// the expected shape in failure messages.
func NewElementNode[T any](want string) ElementNode[T] {
	return ElementNode[T]{want: want}
}

func (n ElementNode[T]) Evaluate(ctx *Context) (T, error) {
	var zero T
	if ctx.Current == nil {
		return zero, evalErrorf("no current element in evaluation context")
	}
	v, ok := ctx.Current.(T)
	if !ok {
		return zero, evalErrorf("current element is %T, not %s", ctx.Current, n.want)
	}
	return v, nil
}

// CharacterToHPNode projects a character to its hit-point value.
type CharacterToHPNode struct {
	Character Node[Character]
}

func (n *CharacterToHPNode) Evaluate(ctx *Context) (CharacterHP, error) {
	c, err := n.Character.Evaluate(ctx)
	if err != nil {
		return CharacterHP{}, err
	}
	return c.CurrentHP(), nil
}

// HPToCharacterNode recovers the character a hit-point value belongs to.
type HPToCharacterNode struct {
	HP Node[CharacterHP]
}

func (n *HPToCharacterNode) Evaluate(ctx *Context) (Character, error) {
	hp, err := n.HP.Evaluate(ctx)
	if err != nil {
		return Character{}, err
	}
	return hp.Character, nil
}

// HPValueNode projects a hit-point value to its numeric component, the
// form mixed CharacterHP/Int comparisons reduce to.
type HPValueNode struct {
	HP Node[CharacterHP]
}

func (n *HPValueNode) Evaluate(ctx *Context) (int, error) {
	hp, err := n.HP.Evaluate(ctx)
	if err != nil {
		return 0, err
	}
	return hp.Value, nil
}

// CharacterTeamNode yields the side its character fights on.
type CharacterTeamNode struct {
	Character Node[Character]
}

func (n *CharacterTeamNode) Evaluate(ctx *Context) (TeamSide, error) {
	c, err := n.Character.Evaluate(ctx)
	if err != nil {
		return SidePlayer, err
	}
	return ctx.View.CharacterTeam(c.ID)
}
