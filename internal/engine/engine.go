// Package engine is the evaluation runtime: compiled, immutable node trees
// evaluated once per turn against a battle view and a seeded random stream.
// Nodes are side-effect-free except for consuming entropy; battle-state
// mutation happens downstream once an Action is returned.
package engine

// Node is one compiled evaluation unit. A node owns its children, holds no
// per-call state, and may be evaluated any number of times.
type Node[T any] interface {
	Evaluate(ctx *Context) (T, error)
}

// Action is the closed result set a rule produces. The battle driver
// applies it; the engine only constructs it.
type Action interface {
	ActionName() string
	actionMarker()
}

// StrikeAction attacks the target with the acting character's attack stat.
type StrikeAction struct {
	TargetID int
}

func (StrikeAction) ActionName() string { return "Strike" }
func (StrikeAction) actionMarker()      {}

// HealAction heals the target, consuming the acting character's MP.
type HealAction struct {
	TargetID int
}

func (HealAction) ActionName() string { return "Heal" }
func (HealAction) actionMarker()      {}

// Heal economics, shared by the resolve guard and the battle driver.
const (
	HealCost   = 10
	HealAmount = 30
)
