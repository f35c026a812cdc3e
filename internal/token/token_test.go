package token

import (
	"testing"

	"github.com/funvibe/funtac/internal/typesystem"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		name string
		tok  *Token
		want string
	}{
		{"leaf", ActingCharacter(), "ActingCharacter"},
		{"number", Number(42), "Number{value: 42}"},
		{"strike", Strike(ActingCharacter()), "Strike{target: ActingCharacter}"},
		{
			"nested",
			GreaterThan(Number(1), Number(2)),
			"GreaterThan{left: Number{value: 1}, right: Number{value: 2}}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()

	sig, ok := r.Lookup(KindStrike)
	if !ok {
		t.Fatal("Strike should be registered")
	}
	if sig.Output != typesystem.Type(typesystem.Action) {
		t.Errorf("Strike output = %s, want Action", sig.Output)
	}
	arg, ok := sig.Arg("target")
	if !ok {
		t.Fatal("Strike should declare a target argument")
	}
	if arg.Type != typesystem.Type(typesystem.Character) {
		t.Errorf("target type = %s, want Character", arg.Type)
	}

	if _, ok := r.Lookup("Fireball"); ok {
		t.Error("unknown kind should not resolve")
	}
}

func TestRegistryCoversAllKinds(t *testing.T) {
	r := NewRegistry()

	kinds := []string{
		KindStrike, KindHeal, KindCheck, KindTrueOrFalseRandom,
		KindGreaterThan, KindLessThan, KindEq, KindNumber,
		KindActingCharacter, KindAllCharacters, KindCharacterToHp,
		KindCharacterHpToCharacter, KindCharacterTeam, KindTeamMembers,
		KindAllTeamSides, KindEnemy, KindHero, KindElement,
		KindFilterList, KindMap, KindRandomPick,
		KindMax, KindMin, KindNumericMax, KindNumericMin,
	}
	for _, kind := range kinds {
		if _, ok := r.Lookup(kind); !ok {
			t.Errorf("kind %s is not registered", kind)
		}
	}
	if got := len(r.Kinds()); got != len(kinds) {
		t.Errorf("registry has %d kinds, want %d", got, len(kinds))
	}
}

func TestOutputInference(t *testing.T) {
	r := NewRegistry()
	charVec := typesystem.TVec{Elem: typesystem.Character}
	hpVec := typesystem.TVec{Elem: typesystem.CharacterHP}

	tests := []struct {
		name     string
		kind     string
		argTypes map[string]typesystem.Type
		want     typesystem.Type
	}{
		{
			"filter list passes array type through",
			KindFilterList,
			map[string]typesystem.Type{"array": charVec},
			charVec,
		},
		{
			"map wraps transform type",
			KindMap,
			map[string]typesystem.Type{"array": charVec, "transform": typesystem.CharacterHP},
			hpVec,
		},
		{
			"random pick yields element",
			KindRandomPick,
			map[string]typesystem.Type{"array": charVec},
			typesystem.Character,
		},
		{
			"numeric max resolves concrete element",
			KindNumericMax,
			map[string]typesystem.Type{"array": hpVec},
			typesystem.CharacterHP,
		},
		{
			"numeric max stays abstract without resolution",
			KindNumericMax,
			map[string]typesystem.Type{"array": typesystem.TVec{Elem: typesystem.Numeric}},
			typesystem.Numeric,
		},
		{
			"max resolves int element",
			KindMax,
			map[string]typesystem.Type{"array": typesystem.TVec{Elem: typesystem.Int}},
			typesystem.Int,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, ok := r.Lookup(tt.kind)
			if !ok {
				t.Fatalf("kind %s not registered", tt.kind)
			}
			if sig.InferOutput == nil {
				t.Fatalf("kind %s has no output inference", tt.kind)
			}
			if got := sig.InferOutput(tt.argTypes); got != tt.want {
				t.Errorf("InferOutput = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestContextPropagationFacts(t *testing.T) {
	r := NewRegistry()

	filter, _ := r.Lookup(KindFilterList)
	if filter.ContextArg != "condition" {
		t.Errorf("FilterList context arg = %q, want condition", filter.ContextArg)
	}
	m, _ := r.Lookup(KindMap)
	if m.ContextArg != "transform" {
		t.Errorf("Map context arg = %q, want transform", m.ContextArg)
	}
	strike, _ := r.Lookup(KindStrike)
	if strike.ContextArg != "" {
		t.Errorf("Strike should propagate no context, got %q", strike.ContextArg)
	}
}
