package typesystem

import (
	"testing"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"atom", Character, "Character"},
		{"vec", TVec{Elem: Character}, "Vec<Character>"},
		{"nested vec", TVec{Elem: TVec{Elem: Int}}, "Vec<Vec<Int>>"},
		{"option", TOption{Elem: CharacterHP}, "Option<CharacterHP>"},
		{"var", TVar{Name: "t1"}, "t1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSubstApply(t *testing.T) {
	s := Subst{"t1": Character}

	got := TVec{Elem: TVar{Name: "t1"}}.Apply(s)
	want := TVec{Elem: Character}
	if got != Type(want) {
		t.Errorf("Apply = %s, want %s", got, want)
	}

	// Unbound variables survive application.
	if got := (TVar{Name: "t2"}).Apply(s); got != Type(TVar{Name: "t2"}) {
		t.Errorf("unbound var Apply = %s, want t2", got)
	}
}

func TestSubstCompose(t *testing.T) {
	s1 := Subst{"t1": TVec{Elem: TVar{Name: "t2"}}}
	s2 := Subst{"t2": Int}

	composed := s1.Compose(s2)

	got := (TVar{Name: "t1"}).Apply(composed)
	want := TVec{Elem: Int}
	if got != Type(want) {
		t.Errorf("composed apply = %s, want %s", got, want)
	}
	if got := (TVar{Name: "t2"}).Apply(composed); got != Type(Int) {
		t.Errorf("t2 apply = %s, want Int", got)
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		name     string
		expected Type
		actual   Type
		want     bool
	}{
		{"identical atoms", Int, Int, true},
		{"different atoms", Int, Bool, false},
		{"numeric accepts int", Numeric, Int, true},
		{"numeric accepts character hp", Numeric, CharacterHP, true},
		{"numeric rejects bool", Numeric, Bool, false},
		{"int accepts numeric", Int, Numeric, true},
		{"any accepts anything", Any, Team, true},
		{"anything accepts any", Team, Any, true},
		{"vec elementwise match", TVec{Elem: Character}, TVec{Elem: Character}, true},
		{"vec elementwise mismatch", TVec{Elem: Character}, TVec{Elem: Int}, false},
		{"vec of numeric accepts vec of int", TVec{Elem: Numeric}, TVec{Elem: Int}, true},
		{"vec vs atom", TVec{Elem: Int}, Int, false},
		{"option elementwise", TOption{Elem: Int}, TOption{Elem: Int}, true},
		{"action is nominal", Action, Condition, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.expected, tt.actual); got != tt.want {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.expected, tt.actual, got, tt.want)
			}
		})
	}
}

func TestResolveConcrete(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		hint Type
		want Type
	}{
		{"numeric defaults to int", Numeric, nil, Int},
		{"numeric takes numeric hint", Numeric, CharacterHP, CharacterHP},
		{"numeric ignores non-numeric hint", Numeric, Bool, Int},
		{"concrete passes through", Character, CharacterHP, Character},
		{"vec of numeric with hint", TVec{Elem: Numeric}, TVec{Elem: CharacterHP}, TVec{Elem: CharacterHP}},
		{"vec of numeric without hint", TVec{Elem: Numeric}, nil, TVec{Elem: Int}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveConcrete(tt.typ, tt.hint); got != tt.want {
				t.Errorf("ResolveConcrete(%s, %v) = %s, want %s", tt.typ, tt.hint, got, tt.want)
			}
		})
	}
}

func TestIsConcrete(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{Int, true},
		{CharacterHP, true},
		{Numeric, false},
		{Any, false},
		{TVec{Elem: Character}, true},
		{TVec{Elem: Numeric}, false},
		{TVar{Name: "t1"}, false},
	}

	for _, tt := range tests {
		if got := IsConcrete(tt.typ); got != tt.want {
			t.Errorf("IsConcrete(%s) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}
