package engine

// AllCharactersNode yields both rosters, player side first.
type AllCharactersNode struct{}

func (AllCharactersNode) Evaluate(ctx *Context) ([]Character, error) {
	return ctx.View.AllCharacters(), nil
}

// TeamMembersNode yields one side's roster.
type TeamMembersNode struct {
	Side Node[TeamSide]
}

func (n *TeamMembersNode) Evaluate(ctx *Context) ([]Character, error) {
	side, err := n.Side.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return ctx.View.TeamMembers(side), nil
}

// AllTeamSidesNode yields both sides, player first.
type AllTeamSidesNode struct{}

func (AllTeamSidesNode) Evaluate(*Context) ([]TeamSide, error) {
	return []TeamSide{SidePlayer, SideEnemy}, nil
}

// FilterNode evaluates its source once, then keeps the elements whose
// condition holds under a derived current-element context. Order is
// preserved.
type FilterNode[T any] struct {
	Array     Node[[]T]
	Condition Node[bool]
}

func (n *FilterNode[T]) Evaluate(ctx *Context) ([]T, error) {
	items, err := n.Array.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := n.Condition.Evaluate(ctx.WithElement(item))
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

// MapNode applies its transform to each element under a derived
// current-element context, building a new ordered slice.
type MapNode[S, R any] struct {
	Array     Node[[]S]
	Transform Node[R]
}

func (n *MapNode[S, R]) Evaluate(ctx *Context) ([]R, error) {
	items, err := n.Array.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]R, 0, len(items))
	for _, item := range items {
		r, err := n.Transform.Evaluate(ctx.WithElement(item))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// RandomPickNode draws one uniformly random element from a non-empty
// source; label names the element shape in the empty-source failure.
type RandomPickNode[T any] struct {
	Array Node[[]T]
	Label string
}

func (n *RandomPickNode[T]) Evaluate(ctx *Context) (T, error) {
	var zero T
	items, err := n.Array.Evaluate(ctx)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return zero, evalErrorf("cannot pick from empty %s array", n.Label)
	}
	return items[ctx.Rand.IntN(len(items))], nil
}

// ExtremumNode folds a non-empty source to its maximum or minimum by the
// numeric projection of each element. Only a strictly better element
// replaces the running best, so the first occurrence wins ties.
type ExtremumNode[T any] struct {
	Array Node[[]T]
	Value func(T) int
	Max   bool
}

// NewMaxNode folds to the element with the greatest projected value.
func NewMaxNode[T any](array Node[[]T], value func(T) int) *ExtremumNode[T] {
	return &ExtremumNode[T]{Array: array, Value: value, Max: true}
}

// NewMinNode folds to the element with the smallest projected value.
func NewMinNode[T any](array Node[[]T], value func(T) int) *ExtremumNode[T] {
	return &ExtremumNode[T]{Array: array, Value: value}
}

func (n *ExtremumNode[T]) Evaluate(ctx *Context) (T, error) {
	var zero T
	items, err := n.Array.Evaluate(ctx)
	if err != nil {
		return zero, err
	}
	if len(items) == 0 {
		if n.Max {
			return zero, evalErrorf("cannot find max of empty array")
		}
		return zero, evalErrorf("cannot find min of empty array")
	}
	best := items[0]
	for _, item := range items[1:] {
		v, b := n.Value(item), n.Value(best)
		if (n.Max && v > b) || (!n.Max && v < b) {
			best = item
		}
	}
	return best, nil
}
