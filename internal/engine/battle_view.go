package engine

// TeamSide identifies one of the two fixed sides of a battle.
type TeamSide int

const (
	SidePlayer TeamSide = iota
	SideEnemy
)

func (s TeamSide) String() string {
	if s == SideEnemy {
		return "Enemy"
	}
	return "Player"
}

// Opposing returns the other side.
func (s TeamSide) Opposing() TeamSide {
	if s == SidePlayer {
		return SideEnemy
	}
	return SidePlayer
}

// Character is one combatant's stats as seen by rule evaluation.
type Character struct {
	ID     int
	Name   string
	HP     int
	MaxHP  int
	MP     int
	MaxMP  int
	Attack int
}

// Alive reports whether the character can still act.
func (c Character) Alive() bool { return c.HP > 0 }

// CurrentHP captures the character's hit points as a CharacterHP value.
func (c Character) CurrentHP() CharacterHP {
	return CharacterHP{Character: c, Value: c.HP}
}

// CharacterHP is a hit-point value that keeps its owning character, so a
// selection made by HP can recover the character it belongs to. Ordering
// and equality go by Value only.
type CharacterHP struct {
	Character Character
	Value     int
}

// Team is one side's roster.
type Team struct {
	Name    string
	Members []Character
}

// Alive returns the members still able to act, in roster order.
func (t *Team) Alive() []Character {
	var alive []Character
	for _, m := range t.Members {
		if m.Alive() {
			alive = append(alive, m)
		}
	}
	return alive
}

// Defeated reports whether no member can act.
func (t *Team) Defeated() bool {
	return len(t.Alive()) == 0
}

// BattleView is the read-only battle state one evaluation call sees: the
// acting character, its side, and both rosters. Built fresh per turn.
type BattleView struct {
	Acting     Character
	ActingSide TeamSide
	Player     *Team
	Enemy      *Team
}

// Team returns the roster for a side.
func (v *BattleView) Team(side TeamSide) *Team {
	if side == SideEnemy {
		return v.Enemy
	}
	return v.Player
}

// TeamMembers returns a side's members in roster order.
func (v *BattleView) TeamMembers(side TeamSide) []Character {
	return v.Team(side).Members
}

// AliveMembers returns a side's members still able to act.
func (v *BattleView) AliveMembers(side TeamSide) []Character {
	return v.Team(side).Alive()
}

// AllCharacters returns both rosters, player side first, order preserved.
func (v *BattleView) AllCharacters() []Character {
	all := make([]Character, 0, len(v.Player.Members)+len(v.Enemy.Members))
	all = append(all, v.Player.Members...)
	all = append(all, v.Enemy.Members...)
	return all
}

// CharacterTeam returns the side the identified character fights on.
func (v *BattleView) CharacterTeam(id int) (TeamSide, error) {
	for _, m := range v.Player.Members {
		if m.ID == id {
			return SidePlayer, nil
		}
	}
	for _, m := range v.Enemy.Members {
		if m.ID == id {
			return SideEnemy, nil
		}
	}
	return SidePlayer, evalErrorf("character with ID %d not found in any team", id)
}

// CharacterByID returns the identified character from either roster.
func (v *BattleView) CharacterByID(id int) (Character, error) {
	for _, m := range v.AllCharacters() {
		if m.ID == id {
			return m, nil
		}
	}
	return Character{}, evalErrorf("character with ID %d not found in any team", id)
}
