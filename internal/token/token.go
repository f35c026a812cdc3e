// Package token defines the raw rule tree and the metadata registry the
// checker consumes: one signature per token kind with argument types, output
// inference and context-propagation facts.
package token

import (
	"fmt"
	"sort"
	"strings"
)

// The closed set of token kinds.
const (
	KindStrike                 = "Strike"
	KindHeal                   = "Heal"
	KindCheck                  = "Check"
	KindTrueOrFalseRandom      = "TrueOrFalseRandom"
	KindGreaterThan            = "GreaterThan"
	KindLessThan               = "LessThan"
	KindEq                     = "Eq"
	KindNumber                 = "Number"
	KindActingCharacter        = "ActingCharacter"
	KindAllCharacters          = "AllCharacters"
	KindCharacterToHp          = "CharacterToHp"
	KindCharacterHpToCharacter = "CharacterHpToCharacter"
	KindCharacterTeam          = "CharacterTeam"
	KindTeamMembers            = "TeamMembers"
	KindAllTeamSides           = "AllTeamSides"
	KindEnemy                  = "Enemy"
	KindHero                   = "Hero"
	KindElement                = "Element"
	KindFilterList             = "FilterList"
	KindMap                    = "Map"
	KindRandomPick             = "RandomPick"
	KindMax                    = "Max"
	KindMin                    = "Min"
	KindNumericMax             = "NumericMax"
	KindNumericMin             = "NumericMin"
)

// Token is one node of a raw rule tree: a kind tag plus named child tokens.
// Number additionally carries its literal in Value. Tokens are built once per
// rule and never mutated afterwards.
type Token struct {
	Kind  string
	Args  map[string]*Token
	Value int
}

// Arg returns the named child, or nil.
func (t *Token) Arg(name string) *Token {
	if t.Args == nil {
		return nil
	}
	return t.Args[name]
}

// ArgNames returns the names of present children in sorted order.
func (t *Token) ArgNames() []string {
	names := make([]string, 0, len(t.Args))
	for name := range t.Args {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the token compactly for diagnostics, e.g.
// Strike{target: ActingCharacter}.
func (t *Token) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind == KindNumber {
		return fmt.Sprintf("%s{value: %d}", t.Kind, t.Value)
	}
	if len(t.Args) == 0 {
		return t.Kind
	}
	parts := make([]string, 0, len(t.Args))
	for _, name := range t.ArgNames() {
		parts = append(parts, fmt.Sprintf("%s: %s", name, t.Args[name]))
	}
	return fmt.Sprintf("%s{%s}", t.Kind, strings.Join(parts, ", "))
}

// Constructors for every kind. Rule builders and tests use these instead of
// struct literals so argument names stay consistent with the registry.

func Strike(target *Token) *Token {
	return &Token{Kind: KindStrike, Args: map[string]*Token{"target": target}}
}

func Heal(target *Token) *Token {
	return &Token{Kind: KindHeal, Args: map[string]*Token{"target": target}}
}

func Check(condition, thenAction *Token) *Token {
	return &Token{Kind: KindCheck, Args: map[string]*Token{"condition": condition, "then_action": thenAction}}
}

func TrueOrFalseRandom() *Token {
	return &Token{Kind: KindTrueOrFalseRandom}
}

func GreaterThan(left, right *Token) *Token {
	return &Token{Kind: KindGreaterThan, Args: map[string]*Token{"left": left, "right": right}}
}

func LessThan(left, right *Token) *Token {
	return &Token{Kind: KindLessThan, Args: map[string]*Token{"left": left, "right": right}}
}

func Eq(left, right *Token) *Token {
	return &Token{Kind: KindEq, Args: map[string]*Token{"left": left, "right": right}}
}

func Number(value int) *Token {
	return &Token{Kind: KindNumber, Value: value}
}

func ActingCharacter() *Token {
	return &Token{Kind: KindActingCharacter}
}

func AllCharacters() *Token {
	return &Token{Kind: KindAllCharacters}
}

func CharacterToHp(character *Token) *Token {
	return &Token{Kind: KindCharacterToHp, Args: map[string]*Token{"character": character}}
}

func CharacterHpToCharacter(characterHp *Token) *Token {
	return &Token{Kind: KindCharacterHpToCharacter, Args: map[string]*Token{"character_hp": characterHp}}
}

func CharacterTeam(character *Token) *Token {
	return &Token{Kind: KindCharacterTeam, Args: map[string]*Token{"character": character}}
}

func TeamMembers(teamSide *Token) *Token {
	return &Token{Kind: KindTeamMembers, Args: map[string]*Token{"team_side": teamSide}}
}

func AllTeamSides() *Token {
	return &Token{Kind: KindAllTeamSides}
}

func Enemy() *Token {
	return &Token{Kind: KindEnemy}
}

func Hero() *Token {
	return &Token{Kind: KindHero}
}

func Element() *Token {
	return &Token{Kind: KindElement}
}

func FilterList(array, condition *Token) *Token {
	return &Token{Kind: KindFilterList, Args: map[string]*Token{"array": array, "condition": condition}}
}

func Map(array, transform *Token) *Token {
	return &Token{Kind: KindMap, Args: map[string]*Token{"array": array, "transform": transform}}
}

func RandomPick(array *Token) *Token {
	return &Token{Kind: KindRandomPick, Args: map[string]*Token{"array": array}}
}

func Max(array *Token) *Token {
	return &Token{Kind: KindMax, Args: map[string]*Token{"array": array}}
}

func Min(array *Token) *Token {
	return &Token{Kind: KindMin, Args: map[string]*Token{"array": array}}
}

func NumericMax(array *Token) *Token {
	return &Token{Kind: KindNumericMax, Args: map[string]*Token{"array": array}}
}

func NumericMin(array *Token) *Token {
	return &Token{Kind: KindNumericMin, Args: map[string]*Token{"array": array}}
}
