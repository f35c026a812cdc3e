package engine

// Context is the transient per-call bundle threaded through one evaluation:
// the read-only battle view, the caller-owned random stream, and the
// current-element slot list combinators bind for their operands.
type Context struct {
	View    *BattleView
	Rand    *RNG
	Current any
}

// NewContext creates an evaluation context with no current element bound.
func NewContext(view *BattleView, rng *RNG) *Context {
	return &Context{View: view, Rand: rng}
}

// WithElement returns a derived context overriding only the current
// element. The receiver is never mutated, so the previous binding is
// intact once the derived context is discarded.
func (c *Context) WithElement(v any) *Context {
	derived := *c
	derived.Current = v
	return &derived
}
