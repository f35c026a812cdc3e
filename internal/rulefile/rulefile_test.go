package rulefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func parseOne(t *testing.T, doc string) Rule {
	t.Helper()
	set, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(set.Rules) != 1 {
		t.Fatalf("parsed %d rules, want 1", len(set.Rules))
	}
	return set.Rules[0]
}

// ---------------------------------------------------------------------------
// Decoding
// ---------------------------------------------------------------------------

func TestParseNestedTokens(t *testing.T) {
	rule := parseOne(t, `{
		"rules": [{
			"tokens": [{
				"type": "Strike",
				"target": {
					"type": "CharacterHpToCharacter",
					"character_hp": {
						"type": "NumericMin",
						"array": {
							"type": "Map",
							"array": {"type": "TeamMembers", "team_side": {"type": "Enemy"}},
							"transform": {"type": "CharacterToHp", "character": {"type": "Element"}}
						}
					}
				}
			}]
		}]
	}`)

	if len(rule.Tokens) != 1 {
		t.Fatalf("decoded %d tokens, want 1", len(rule.Tokens))
	}
	want := "Strike{target: CharacterHpToCharacter{character_hp: NumericMin{array: Map{array: TeamMembers{team_side: Enemy}, transform: CharacterToHp{character: Element}}}}}"
	if got := rule.Tokens[0].String(); got != want {
		t.Errorf("decoded tree\n got %s\nwant %s", got, want)
	}
}

func TestParseNumberLiteral(t *testing.T) {
	rule := parseOne(t, `{
		"rules": [{
			"tokens": [
				{"type": "GreaterThan", "left": {"type": "Number", "value": 42}, "right": {"type": "Number", "value": 7}},
				{"type": "Strike", "target": {"type": "ActingCharacter"}}
			]
		}]
	}`)

	left := rule.Tokens[0].Arg("left")
	if left == nil || left.Value != 42 {
		t.Fatalf("left literal = %v, want Number 42", left)
	}
}

func TestParseUnknownKindPreserved(t *testing.T) {
	// Vocabulary is the checker's concern: an unknown kind must survive
	// decoding so it can be reported as an undefined token.
	rule := parseOne(t, `{"rules": [{"tokens": [{"type": "Fireball", "target": {"type": "ActingCharacter"}}]}]}`)
	if rule.Tokens[0].Kind != "Fireball" {
		t.Errorf("kind = %q, want Fireball", rule.Tokens[0].Kind)
	}
	if rule.Tokens[0].Arg("target") == nil {
		t.Error("unknown kind lost its children")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			"malformed document",
			`{"rules": [`,
			"parse rules",
		},
		{
			"token without type",
			`{"rules": [{"tokens": [{"target": {"type": "ActingCharacter"}}]}]}`,
			`no "type" field`,
		},
		{
			"token not an object",
			`{"rules": [{"tokens": ["Strike"]}]}`,
			"token must be an object",
		},
		{
			"type not a string",
			`{"rules": [{"tokens": [{"type": 5}]}]}`,
			`"type" must be a string`,
		},
		{
			"value not an integer",
			`{"rules": [{"tokens": [{"type": "Number", "value": "many"}]}]}`,
			"value must be an integer",
		},
		{
			"nested failure names the path",
			`{"rules": [{"tokens": [{"type": "Strike", "target": {"no_type": true}}]}]}`,
			"Strike.target",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Chain folding
// ---------------------------------------------------------------------------

func TestTreeFoldsChainIntoChecks(t *testing.T) {
	rule := parseOne(t, `{
		"rules": [{
			"tokens": [
				{"type": "TrueOrFalseRandom"},
				{"type": "GreaterThan", "left": {"type": "Number", "value": 2}, "right": {"type": "Number", "value": 1}},
				{"type": "Strike", "target": {"type": "ActingCharacter"}}
			]
		}]
	}`)

	root, err := rule.Tree()
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	want := "Check{condition: TrueOrFalseRandom, then_action: Check{condition: GreaterThan{left: Number{value: 2}, right: Number{value: 1}}, then_action: Strike{target: ActingCharacter}}}"
	if got := root.String(); got != want {
		t.Errorf("folded tree\n got %s\nwant %s", got, want)
	}
}

func TestTreeSingleToken(t *testing.T) {
	rule := parseOne(t, `{"rules": [{"tokens": [{"type": "Strike", "target": {"type": "ActingCharacter"}}]}]}`)
	root, err := rule.Tree()
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	if root != rule.Tokens[0] {
		t.Error("single-token chain should fold to the token itself")
	}
}

func TestTreeEmptyChain(t *testing.T) {
	rule := parseOne(t, `{"rules": [{"tokens": []}]}`)
	if _, err := rule.Tree(); err == nil {
		t.Fatal("expected an error for an empty chain")
	}
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	doc := `{"rules": [{"tokens": [{"type": "Strike", "target": {"type": "ActingCharacter"}}]}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set.Rules) != 1 {
		t.Fatalf("loaded %d rules, want 1", len(set.Rules))
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
