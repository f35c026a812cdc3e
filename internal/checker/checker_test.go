package checker

import (
	"errors"
	"strings"
	"testing"

	"github.com/funvibe/funtac/internal/token"
	"github.com/funvibe/funtac/internal/typesystem"
)

func checkOK(t *testing.T, tok *token.Token) *TypedNode {
	t.Helper()
	node, err := NewDefault().Check(tok)
	if err != nil {
		t.Fatalf("check of %s failed: %v", tok, err)
	}
	return node
}

func checkFail(t *testing.T, tok *token.Token) *CompileError {
	t.Helper()
	_, err := NewDefault().Check(tok)
	if err == nil {
		t.Fatalf("expected check of %s to fail", tok)
	}
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CompileError, got %T: %v", err, err)
	}
	return ce
}

// ---------------------------------------------------------------------------
// Valid trees: resolved output types
// ---------------------------------------------------------------------------

func TestCheckOutputTypes(t *testing.T) {
	tests := []struct {
		name string
		tok  *token.Token
		want string
	}{
		{
			"strike acting character",
			token.Strike(token.ActingCharacter()),
			"Action",
		},
		{
			"guarded heal",
			token.Check(token.TrueOrFalseRandom(), token.Heal(token.ActingCharacter())),
			"Action",
		},
		{
			"hp above literal",
			token.GreaterThan(token.CharacterToHp(token.ActingCharacter()), token.Number(50)),
			"Bool",
		},
		{
			"filter keeps array type",
			token.FilterList(
				token.AllCharacters(),
				token.GreaterThan(token.CharacterToHp(token.Element()), token.Number(50)),
			),
			"Vec<Character>",
		},
		{
			"map projects to hp",
			token.Map(token.AllCharacters(), token.CharacterToHp(token.Element())),
			"Vec<CharacterHP>",
		},
		{
			"random pick yields element",
			token.RandomPick(token.TeamMembers(token.Enemy())),
			"Character",
		},
		{
			"numeric max resolves hp",
			token.NumericMax(token.Map(token.AllCharacters(), token.CharacterToHp(token.Element()))),
			"CharacterHP",
		},
		{
			"max over ints",
			token.Max(token.Map(token.AllCharacters(), token.Number(1))),
			"Int",
		},
		{
			"team side equality",
			token.Eq(token.CharacterTeam(token.ActingCharacter()), token.Enemy()),
			"Bool",
		},
		{
			"strike weakest enemy",
			token.Strike(token.CharacterHpToCharacter(token.NumericMin(
				token.Map(token.TeamMembers(token.Enemy()), token.CharacterToHp(token.Element())),
			))),
			"Action",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := checkOK(t, tt.tok)
			if got := node.Type.String(); got != tt.want {
				t.Errorf("output type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCheckMixedNumericComparisons(t *testing.T) {
	// CharacterHP against an Int literal is legal on both comparison forms;
	// the generator projects the hp operand down to its numeric component.
	trees := []*token.Token{
		token.GreaterThan(token.CharacterToHp(token.ActingCharacter()), token.Number(50)),
		token.LessThan(token.Number(50), token.CharacterToHp(token.ActingCharacter())),
		token.Eq(token.CharacterToHp(token.ActingCharacter()), token.Number(50)),
	}
	for _, tok := range trees {
		if got := checkOK(t, tok).Type.String(); got != "Bool" {
			t.Errorf("%s: output type = %s, want Bool", tok, got)
		}
	}
}

func TestCheckSharedSubtree(t *testing.T) {
	// The same token value in two argument positions is a DAG, not a cycle.
	n := token.Number(5)
	checkOK(t, token.GreaterThan(n, n))
}

// ---------------------------------------------------------------------------
// Element context propagation
// ---------------------------------------------------------------------------

func TestElementBindsInnermostContext(t *testing.T) {
	inner := token.FilterList(
		token.TeamMembers(token.Element()),
		token.GreaterThan(token.CharacterToHp(token.Element()), token.Number(50)),
	)
	node := checkOK(t, token.Map(token.AllTeamSides(), inner))

	if got := node.Type.String(); got != "Vec<Vec<Character>>" {
		t.Fatalf("output type = %s, want Vec<Vec<Character>>", got)
	}

	transform, ok := node.Arg("transform")
	if !ok {
		t.Fatal("transform missing from typed tree")
	}
	array, _ := transform.Arg("array")
	outerElem, ok := array.Arg("team_side")
	if !ok {
		t.Fatal("team_side missing from typed tree")
	}
	if got := outerElem.Type.String(); got != "TeamSide" {
		t.Errorf("outer Element type = %s, want TeamSide", got)
	}

	condition, _ := transform.Arg("condition")
	left, _ := condition.Arg("left")
	innerElem, ok := left.Arg("character")
	if !ok {
		t.Fatal("character missing from typed tree")
	}
	if got := innerElem.Type.String(); got != "Character" {
		t.Errorf("inner Element type = %s, want Character", got)
	}
}

func TestElementOutsideListContext(t *testing.T) {
	ce := checkFail(t, token.Element())
	var ute *UnresolvedTypeError
	if !errors.As(ce, &ute) {
		t.Fatalf("expected *UnresolvedTypeError, got: %v", ce)
	}
	if !strings.Contains(ute.Error(), "outside of list context") {
		t.Errorf("unexpected message: %s", ute.Error())
	}
}

func TestElementOutsideListContextNested(t *testing.T) {
	tok := token.GreaterThan(token.CharacterToHp(token.Element()), token.Number(50))
	ce := checkFail(t, tok)
	var ute *UnresolvedTypeError
	if !errors.As(ce, &ute) {
		t.Fatalf("expected *UnresolvedTypeError, got: %v", ce)
	}
	if want := "GreaterThan.left -> CharacterToHp.character"; !strings.Contains(ce.Error(), want) {
		t.Errorf("error %q does not carry path %q", ce.Error(), want)
	}
}

// ---------------------------------------------------------------------------
// Structural errors
// ---------------------------------------------------------------------------

func TestUndefinedToken(t *testing.T) {
	ce := checkFail(t, &token.Token{Kind: "Fireball"})
	var ute *UndefinedTokenError
	if !errors.As(ce, &ute) {
		t.Fatalf("expected *UndefinedTokenError, got: %v", ce)
	}
	if ute.Kind != "Fireball" {
		t.Errorf("Kind = %s, want Fireball", ute.Kind)
	}
}

func TestMissingField(t *testing.T) {
	ce := checkFail(t, &token.Token{Kind: token.KindStrike})
	var mfe *MissingFieldError
	if !errors.As(ce, &mfe) {
		t.Fatalf("expected *MissingFieldError, got: %v", ce)
	}
	if mfe.Field != "target" || mfe.Kind != token.KindStrike {
		t.Errorf("got %s.%s, want Strike.target", mfe.Kind, mfe.Field)
	}
}

func TestUnexpectedArgument(t *testing.T) {
	tok := token.Check(token.TrueOrFalseRandom(), token.Strike(token.ActingCharacter()))
	tok.Args["bonus"] = token.Number(1)

	ce := checkFail(t, tok)
	var ace *ArgumentCountError
	if !errors.As(ce, &ace) {
		t.Fatalf("expected *ArgumentCountError, got: %v", ce)
	}
	if ace.Expected != 2 || ace.Actual != 3 {
		t.Errorf("counts = (%d, %d), want (2, 3)", ace.Expected, ace.Actual)
	}
}

func TestCyclicReference(t *testing.T) {
	tok := token.Check(token.TrueOrFalseRandom(), token.Strike(token.ActingCharacter()))
	tok.Args["then_action"] = tok

	ce := checkFail(t, tok)
	var cre *CyclicReferenceError
	if !errors.As(ce, &cre) {
		t.Fatalf("expected *CyclicReferenceError, got: %v", ce)
	}
	if cre.Kind != token.KindCheck {
		t.Errorf("Kind = %s, want Check", cre.Kind)
	}
}

// ---------------------------------------------------------------------------
// Type mismatches
// ---------------------------------------------------------------------------

func TestTypeMismatchCarriesPath(t *testing.T) {
	tok := token.Check(
		token.GreaterThan(token.ActingCharacter(), token.Number(5)),
		token.Strike(token.ActingCharacter()),
	)

	ce := checkFail(t, tok)
	var tme *TypeMismatchError
	if !errors.As(ce, &tme) {
		t.Fatalf("expected *TypeMismatchError, got: %v", ce)
	}
	if tme.Expected.String() != "Numeric" || tme.Actual.String() != "Character" {
		t.Errorf("mismatch = (%s, %s), want (Numeric, Character)", tme.Expected, tme.Actual)
	}
	if tme.Context != "GreaterThan.left" {
		t.Errorf("context = %s, want GreaterThan.left", tme.Context)
	}
	if len(ce.Path) == 0 || ce.Path[0] != "Check.condition" {
		t.Errorf("path = %v, want it to start at Check.condition", ce.Path)
	}
	msg := ce.Error()
	for _, part := range []string{"Check.condition", "GreaterThan.left", "Numeric", "Character"} {
		if !strings.Contains(msg, part) {
			t.Errorf("error %q does not mention %q", msg, part)
		}
	}
}

func TestTypeMismatchCases(t *testing.T) {
	tests := []struct {
		name    string
		tok     *token.Token
		context string
	}{
		{
			"strike target must be a character",
			token.Strike(token.Number(1)),
			"Strike.target",
		},
		{
			"filter condition must be boolean",
			token.FilterList(token.AllCharacters(), token.Number(5)),
			"FilterList.condition",
		},
		{
			"max needs numeric elements",
			token.Max(token.AllCharacters()),
			"Max.array",
		},
		{
			"equality operands must agree",
			token.Eq(token.Enemy(), token.Number(1)),
			"Eq.right",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := checkFail(t, tt.tok)
			var tme *TypeMismatchError
			if !errors.As(ce, &tme) {
				t.Fatalf("expected *TypeMismatchError, got: %v", ce)
			}
			if tme.Context != tt.context {
				t.Errorf("context = %s, want %s", tme.Context, tt.context)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Trait bounds
// ---------------------------------------------------------------------------

func TestTraitBoundRejectsUncomparableOperands(t *testing.T) {
	ce := checkFail(t, token.Eq(token.AllCharacters(), token.AllCharacters()))
	var tbe *typesystem.TraitBoundError
	if !errors.As(ce, &tbe) {
		t.Fatalf("expected *TraitBoundError, got: %v", ce)
	}
	if tbe.Trait != typesystem.TraitEq {
		t.Errorf("Trait = %s, want Eq", tbe.Trait)
	}
	if tbe.Type.String() != "Vec<Character>" {
		t.Errorf("Type = %s, want Vec<Character>", tbe.Type)
	}
}
