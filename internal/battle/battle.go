// Package battle runs the turn loop. Each turn walks both rosters in order,
// player side first; every living character gets one battle view, one rule
// resolution and at most one applied action. The loop owns all state
// mutation; rule evaluation itself never writes anything.
package battle

import (
	"fmt"
	"log/slog"

	"github.com/funvibe/funtac/internal/engine"
	"github.com/funvibe/funtac/internal/storage"
)

// Options assembles one battle. Store may be nil to skip persistence.
// MaxTurns must be positive; config supplies its default upstream.
type Options struct {
	Player      *engine.Team
	Enemy       *engine.Team
	PlayerRules []engine.Node[engine.Action]
	EnemyRules  []engine.Node[engine.Action]
	Seed        int64
	MaxTurns    int
	Store       *storage.Store
}

// Event is one applied action, kept in order on the battle log.
type Event struct {
	Turn   int
	Actor  string
	Action string
	Target string
	Amount int // hit points removed or restored
}

// Result summarizes a finished battle.
type Result struct {
	Winner    string // winning team's name, empty on a turn-limit draw
	Turns     int
	SessionID string
}

// Battle is the mutable battle state plus everything needed to advance it.
type Battle struct {
	Player *engine.Team
	Enemy  *engine.Team
	Log    []Event

	playerResolver *engine.Resolver
	enemyResolver  *engine.Resolver
	playerRand     *engine.RNG
	enemyRand      *engine.RNG
	seed           int64
	maxTurns       int
	store          *storage.Store
}

// New prepares a battle. Each side gets its own random stream derived from
// the seed, so one side's draws never shift the other's.
func New(opts Options) *Battle {
	return &Battle{
		Player:         opts.Player,
		Enemy:          opts.Enemy,
		playerResolver: &engine.Resolver{Rules: opts.PlayerRules},
		enemyResolver:  &engine.Resolver{Rules: opts.EnemyRules},
		playerRand:     engine.NewRNG(opts.Seed),
		enemyRand:      engine.NewRNG(opts.Seed + 1),
		seed:           opts.Seed,
		maxTurns:       opts.MaxTurns,
		store:          opts.Store,
	}
}

// Run plays the battle to completion: a team defeat, the turn cap, or a
// hard rule evaluation error, whichever comes first.
func (b *Battle) Run() (*Result, error) {
	sessionID, err := b.store.NewSession(b.seed)
	if err != nil {
		return nil, err
	}

	result := &Result{SessionID: sessionID}
	for turn := 1; turn <= b.maxTurns; turn++ {
		result.Turns = turn
		done, err := b.playTurn(turn, sessionID)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}

	switch {
	case b.Enemy.Defeated() && !b.Player.Defeated():
		result.Winner = b.Player.Name
	case b.Player.Defeated() && !b.Enemy.Defeated():
		result.Winner = b.Enemy.Name
	}
	slog.Info("battle over", "winner", result.Winner, "turns", result.Turns)

	if err := b.store.FinishSession(sessionID, result.Winner, result.Turns); err != nil {
		return nil, err
	}
	return result, nil
}

// playTurn gives every living character one action slot, in roster order,
// player side first. A character killed earlier in the same turn loses its
// slot. Reports whether the battle is over.
func (b *Battle) playTurn(turn int, sessionID string) (bool, error) {
	for _, side := range [2]engine.TeamSide{engine.SidePlayer, engine.SideEnemy} {
		team := b.team(side)
		for i := range team.Members {
			actor := team.Members[i]
			if !actor.Alive() {
				continue
			}
			if err := b.act(turn, side, actor, sessionID); err != nil {
				return false, err
			}
			if b.over() {
				return true, nil
			}
		}
	}
	return b.over(), nil
}

// act resolves one character's rules and applies the outcome. A nil action
// means every rule broke; the character just stands there this turn.
func (b *Battle) act(turn int, side engine.TeamSide, actor engine.Character, sessionID string) error {
	view := &engine.BattleView{Acting: actor, ActingSide: side, Player: b.Player, Enemy: b.Enemy}
	ctx := engine.NewContext(view, b.rand(side))

	action, err := b.resolver(side).Resolve(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", actor.Name, err)
	}
	if action == nil {
		slog.Debug("no action", "turn", turn, "actor", actor.Name)
		return nil
	}
	return b.apply(turn, actor, action, sessionID)
}

func (b *Battle) apply(turn int, actor engine.Character, action engine.Action, sessionID string) error {
	switch act := action.(type) {
	case engine.StrikeAction:
		target := b.character(act.TargetID)
		if target == nil {
			return fmt.Errorf("%s strikes unknown character %d", actor.Name, act.TargetID)
		}
		damage := actor.Attack
		if damage > target.HP {
			damage = target.HP
		}
		target.HP -= damage
		slog.Info("strike", "turn", turn, "actor", actor.Name, "target", target.Name,
			"damage", damage, "target_hp", target.HP)
		return b.record(turn, actor, act.ActionName(), target, damage, sessionID)

	case engine.HealAction:
		target := b.character(act.TargetID)
		if target == nil {
			return fmt.Errorf("%s heals unknown character %d", actor.Name, act.TargetID)
		}
		// The resolve guard already checked MP against this same state.
		healer := b.character(actor.ID)
		healer.MP -= engine.HealCost
		healed := engine.HealAmount
		if target.HP+healed > target.MaxHP {
			healed = target.MaxHP - target.HP
		}
		target.HP += healed
		slog.Info("heal", "turn", turn, "actor", actor.Name, "target", target.Name,
			"healed", healed, "target_hp", target.HP, "actor_mp", healer.MP)
		return b.record(turn, actor, act.ActionName(), target, healed, sessionID)

	default:
		return fmt.Errorf("%s produced unknown action %s", actor.Name, action.ActionName())
	}
}

// record appends the applied action to the in-memory log and, when a store
// is attached, persists it.
func (b *Battle) record(turn int, actor engine.Character, action string, target *engine.Character, amount int, sessionID string) error {
	b.Log = append(b.Log, Event{
		Turn:   turn,
		Actor:  actor.Name,
		Action: action,
		Target: target.Name,
		Amount: amount,
	})

	var detail string
	switch action {
	case "Heal":
		detail = fmt.Sprintf("healed=%d", amount)
	default:
		detail = fmt.Sprintf("damage=%d", amount)
	}
	return b.store.RecordAction(&storage.ActionRecord{
		SessionID: sessionID,
		Turn:      turn,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    action,
		TargetID:  target.ID,
		Detail:    detail,
	})
}

func (b *Battle) over() bool {
	return b.Player.Defeated() || b.Enemy.Defeated()
}

func (b *Battle) team(side engine.TeamSide) *engine.Team {
	if side == engine.SideEnemy {
		return b.Enemy
	}
	return b.Player
}

func (b *Battle) resolver(side engine.TeamSide) *engine.Resolver {
	if side == engine.SideEnemy {
		return b.enemyResolver
	}
	return b.playerResolver
}

func (b *Battle) rand(side engine.TeamSide) *engine.RNG {
	if side == engine.SideEnemy {
		return b.enemyRand
	}
	return b.playerRand
}

// character returns a mutable reference to the identified roster member.
func (b *Battle) character(id int) *engine.Character {
	for _, team := range [2]*engine.Team{b.Player, b.Enemy} {
		for i := range team.Members {
			if team.Members[i].ID == id {
				return &team.Members[i]
			}
		}
	}
	return nil
}
