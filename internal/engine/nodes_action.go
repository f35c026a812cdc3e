package engine

// StrikeNode resolves a strike against its target. A dead acting character
// cannot act, so resolution Breaks rather than erroring.
type StrikeNode struct {
	Target Node[Character]
}

func (n *StrikeNode) Evaluate(ctx *Context) (Action, error) {
	if !ctx.View.Acting.Alive() {
		return nil, ErrBreak
	}
	target, err := n.Target.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return StrikeAction{TargetID: target.ID}, nil
}

// HealNode resolves a heal. The acting character must be alive and hold
// enough MP to pay the cost; otherwise the rule Breaks.
type HealNode struct {
	Target Node[Character]
}

func (n *HealNode) Evaluate(ctx *Context) (Action, error) {
	acting := ctx.View.Acting
	if !acting.Alive() || acting.MP < HealCost {
		return nil, ErrBreak
	}
	target, err := n.Target.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	return HealAction{TargetID: target.ID}, nil
}

// CheckNode gates an action behind a condition; a false condition Breaks.
type CheckNode struct {
	Condition Node[bool]
	Then      Node[Action]
}

func (n *CheckNode) Evaluate(ctx *Context) (Action, error) {
	ok, err := n.Condition.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBreak
	}
	return n.Then.Evaluate(ctx)
}
