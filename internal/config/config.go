// Package config loads and validates battle setup files.
//
// A battle file is YAML:
//
//	seed: 42
//	max_turns: 50
//	player:
//	  name: Heroes
//	  rules: heroes.json
//	  members:
//	    - {id: 1, name: Alice, hp: 100, mp: 50, attack: 15}
//	enemy:
//	  name: Monsters
//	  rules: monsters.json
//	  members:
//	    - {id: 2, name: Imp, hp: 60, attack: 8}
//
// Rules paths are resolved relative to the battle file's directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/funtac/internal/engine"
)

// DefaultMaxTurns caps a battle when neither side can finish the other.
const DefaultMaxTurns = 50

// Config is a parsed battle file.
type Config struct {
	// Seed drives both sides' random streams. 0 means seed from the clock.
	Seed int64 `yaml:"seed,omitempty"`

	// MaxTurns caps the battle length. 0 means DefaultMaxTurns.
	MaxTurns int `yaml:"max_turns,omitempty"`

	Player TeamConfig `yaml:"player"`
	Enemy  TeamConfig `yaml:"enemy"`

	// Dir is the directory containing the battle file, set by Load.
	Dir string `yaml:"-"`
}

// TeamConfig declares one side: its roster and the rules file its members
// act by.
type TeamConfig struct {
	Name    string            `yaml:"name,omitempty"`
	Rules   string            `yaml:"rules"`
	Members []CharacterConfig `yaml:"members"`
}

// CharacterConfig declares one combatant. hp and mp are both the starting
// and the maximum value.
type CharacterConfig struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	HP     int    `yaml:"hp"`
	MP     int    `yaml:"mp,omitempty"`
	Attack int    `yaml:"attack"`
}

// Load reads and parses a battle file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading battle file %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// Parse parses battle file content from bytes.
// The path argument is used only for error messages.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.Seed < 0 {
		return fmt.Errorf("%s: seed must not be negative", path)
	}
	if c.MaxTurns < 0 {
		return fmt.Errorf("%s: max_turns must not be negative", path)
	}

	ids := make(map[int]string) // id → member name (for duplicate detection)

	for _, side := range []struct {
		key  string
		team *TeamConfig
	}{
		{"player", &c.Player},
		{"enemy", &c.Enemy},
	} {
		if side.team.Rules == "" {
			return fmt.Errorf("%s: %s: rules is required", path, side.key)
		}
		if len(side.team.Members) == 0 {
			return fmt.Errorf("%s: %s: at least one member is required", path, side.key)
		}
		for i, m := range side.team.Members {
			if m.Name == "" {
				return fmt.Errorf("%s: %s.members[%d]: name is required", path, side.key, i)
			}
			if m.ID <= 0 {
				return fmt.Errorf("%s: %s.members[%d] (%s): id must be positive", path, side.key, i, m.Name)
			}
			if m.HP <= 0 {
				return fmt.Errorf("%s: %s.members[%d] (%s): hp must be positive", path, side.key, i, m.Name)
			}
			if m.MP < 0 {
				return fmt.Errorf("%s: %s.members[%d] (%s): mp must not be negative", path, side.key, i, m.Name)
			}
			if m.Attack <= 0 {
				return fmt.Errorf("%s: %s.members[%d] (%s): attack must be positive", path, side.key, i, m.Name)
			}
			if prev, dup := ids[m.ID]; dup {
				return fmt.Errorf("%s: %s.members[%d] (%s): id %d already used by %s",
					path, side.key, i, m.Name, m.ID, prev)
			}
			ids[m.ID] = m.Name
		}
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Seed == 0 {
		c.Seed = time.Now().UnixNano()
	}
	if c.MaxTurns == 0 {
		c.MaxTurns = DefaultMaxTurns
	}
	if c.Player.Name == "" {
		c.Player.Name = "Player"
	}
	if c.Enemy.Name == "" {
		c.Enemy.Name = "Enemy"
	}
}

// RulesPath resolves the team's rules file against the battle file's
// directory.
func (t *TeamConfig) RulesPath(dir string) string {
	if t.Rules == "" || filepath.IsAbs(t.Rules) || dir == "" {
		return t.Rules
	}
	return filepath.Join(dir, t.Rules)
}

// Team builds the roster this side starts the battle with.
func (t *TeamConfig) Team() *engine.Team {
	team := &engine.Team{Name: t.Name, Members: make([]engine.Character, len(t.Members))}
	for i, m := range t.Members {
		team.Members[i] = engine.Character{
			ID:     m.ID,
			Name:   m.Name,
			HP:     m.HP,
			MaxHP:  m.HP,
			MP:     m.MP,
			MaxMP:  m.MP,
			Attack: m.Attack,
		}
	}
	return team
}
