package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/funvibe/funtac/internal/storage"
)

const heroRules = `{
  "rules": [
    {"tokens": [
      {"type": "LessThan", "left": {"type": "CharacterToHp", "character": {"type": "ActingCharacter"}}, "right": {"type": "Number", "value": 30}},
      {"type": "Heal", "target": {"type": "ActingCharacter"}}
    ]},
    {"tokens": [
      {"type": "Strike", "target": {"type": "RandomPick", "array": {"type": "TeamMembers", "team_side": {"type": "Enemy"}}}}
    ]}
  ]
}`

const monsterRules = `{
  "rules": [
    {"tokens": [
      {"type": "Strike", "target": {"type": "RandomPick", "array": {"type": "TeamMembers", "team_side": {"type": "Hero"}}}}
    ]}
  ]
}`

const badRules = `{
  "rules": [
    {"tokens": [{"type": "Strike", "target": {"type": "Number", "value": 5}}]}
  ]
}`

const battleConfig = `
seed: 11
max_turns: 20
player:
  name: Heroes
  rules: heroes.json
  members:
    - {id: 1, name: Alice, hp: 120, mp: 40, attack: 20}
enemy:
  name: Monsters
  rules: monsters.json
  members:
    - {id: 2, name: Imp, hp: 60, attack: 5}
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// writeBattleDir lays out a battle config with both rules files beside it.
func writeBattleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write(t, dir, "heroes.json", heroRules)
	write(t, dir, "monsters.json", monsterRules)
	return write(t, dir, "battle.yaml", battleConfig)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := write(t, dir, "good.json", heroRules)
	bad := write(t, dir, "bad.json", badRules)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"valid rules", []string{good}, 0},
		{"type error", []string{bad}, 1},
		{"missing file", []string{filepath.Join(dir, "absent.json")}, 1},
		{"no arguments", nil, 2},
		{"too many arguments", []string{good, bad}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmdCheck(tt.args); got != tt.want {
				t.Errorf("cmdCheck(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}

func TestBattleCommand(t *testing.T) {
	path := writeBattleDir(t)
	if got := cmdBattle([]string{path}); got != 0 {
		t.Fatalf("cmdBattle = %d, want 0", got)
	}
}

func TestBattleFlagsAfterPath(t *testing.T) {
	path := writeBattleDir(t)
	if got := cmdBattle([]string{path, "-seed", "3", "-turns", "5"}); got != 0 {
		t.Fatalf("cmdBattle = %d, want 0", got)
	}
}

func TestBattlePersistsSession(t *testing.T) {
	path := writeBattleDir(t)
	dbPath := filepath.Join(t.TempDir(), "battles.db")

	if got := cmdBattle([]string{"-db", dbPath, path}); got != 0 {
		t.Fatalf("cmdBattle = %d, want 0", got)
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	sessions, err := store.ListSessions()
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	sess := sessions[0]
	if sess.Winner != "Heroes" {
		t.Errorf("winner = %q, want Heroes", sess.Winner)
	}
	if sess.Seed != 11 {
		t.Errorf("seed = %d, want the configured 11", sess.Seed)
	}

	actions, err := store.SessionActions(sess.ID)
	if err != nil {
		t.Fatalf("session actions: %v", err)
	}
	if len(actions) == 0 {
		t.Error("expected recorded actions")
	}
}

func TestBattleErrors(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "heroes.json", badRules)
	write(t, dir, "monsters.json", monsterRules)
	badBattle := write(t, dir, "battle.yaml", battleConfig)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"missing config", []string{filepath.Join(dir, "absent.yaml")}, 1},
		{"rules fail to compile", []string{badBattle}, 1},
		{"unknown flag", []string{"-bogus", badBattle}, 2},
		{"no arguments", nil, 2},
		{"trailing argument", []string{badBattle, "extra"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmdBattle(tt.args); got != tt.want {
				t.Errorf("cmdBattle(%v) = %d, want %d", tt.args, got, tt.want)
			}
		})
	}
}
