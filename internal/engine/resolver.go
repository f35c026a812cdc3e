package engine

import "errors"

// Resolver iterates one character's compiled rules in order, once per
// turn. The first rule that yields an Action wins; a Break advances to the
// next rule; a hard error propagates: it is a defect in the rule set, not
// a recoverable condition.
type Resolver struct {
	Rules []Node[Action]
}

// Resolve returns the turn's action, or (nil, nil) when the list is empty
// or every rule Breaks. Entropy consumed by earlier rules is never
// refunded.
func (r *Resolver) Resolve(ctx *Context) (Action, error) {
	for _, rule := range r.Rules {
		action, err := rule.Evaluate(ctx)
		if err != nil {
			if errors.Is(err, ErrBreak) {
				continue
			}
			return nil, err
		}
		return action, nil
	}
	return nil, nil
}
