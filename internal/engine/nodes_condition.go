package engine

// RandomConditionNode is true half the time.
type RandomConditionNode struct{}

func (RandomConditionNode) Evaluate(ctx *Context) (bool, error) {
	return ctx.Rand.Bool(), nil
}

// CompareOp selects the ordering a CompareNode tests.
type CompareOp int

const (
	CompareGreater CompareOp = iota
	CompareLess
)

// CompareNode orders two numeric operands. CharacterHP operands are
// projected to their numeric component before they reach this node.
type CompareNode struct {
	Left  Node[int]
	Right Node[int]
	Op    CompareOp
}

func (n *CompareNode) Evaluate(ctx *Context) (bool, error) {
	l, err := n.Left.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	r, err := n.Right.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	if n.Op == CompareLess {
		return l < r, nil
	}
	return l > r, nil
}

// EqualNode tests two like-typed operands for equality.
type EqualNode[T comparable] struct {
	Left  Node[T]
	Right Node[T]
}

func (n *EqualNode[T]) Evaluate(ctx *Context) (bool, error) {
	l, err := n.Left.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	r, err := n.Right.Evaluate(ctx)
	if err != nil {
		return false, err
	}
	return l == r, nil
}
