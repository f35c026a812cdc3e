// Package rulefile loads authored rule documents. A document is JSON:
//
//	{"rules": [{"tokens": [{"type": "Strike", "target": {"type": "ActingCharacter"}}]}]}
//
// Each token is a tagged object whose "type" names the kind and whose other
// fields are child tokens; Number carries its literal in "value". Unknown
// kinds decode fine here and are rejected by the checker, which owns the
// vocabulary.
package rulefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/funvibe/funtac/internal/token"
)

// RuleSet is a parsed rules document.
type RuleSet struct {
	Rules []Rule `json:"rules"`
}

// Rule is one authored rule: a chain of condition tokens ending in an
// action token.
type Rule struct {
	Tokens []*token.Token
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	var wire struct {
		Tokens []json.RawMessage `json:"tokens"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Tokens = make([]*token.Token, 0, len(wire.Tokens))
	for _, raw := range wire.Tokens {
		tok, err := decodeToken(raw)
		if err != nil {
			return err
		}
		r.Tokens = append(r.Tokens, tok)
	}
	return nil
}

// Tree folds the chain into one token: each leading token guards the rest
// as a Check condition, so a chain reads "when c1, when c2, ..., do action".
func (r Rule) Tree() (*token.Token, error) {
	if len(r.Tokens) == 0 {
		return nil, errors.New("rule has no tokens")
	}
	root := r.Tokens[len(r.Tokens)-1]
	for i := len(r.Tokens) - 2; i >= 0; i-- {
		root = token.Check(r.Tokens[i], root)
	}
	return root, nil
}

// Load reads and parses a rules document from disk.
func Load(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a rules document.
func Parse(data []byte) (*RuleSet, error) {
	var set RuleSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return &set, nil
}

func decodeToken(data []byte) (*token.Token, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("token must be an object: %w", err)
	}
	rawKind, ok := fields["type"]
	if !ok {
		return nil, errors.New(`token object has no "type" field`)
	}
	tok := &token.Token{}
	if err := json.Unmarshal(rawKind, &tok.Kind); err != nil {
		return nil, fmt.Errorf(`token "type" must be a string: %w`, err)
	}
	for name, raw := range fields {
		switch name {
		case "type":
		case "value":
			// The one non-token field on the wire; only Number carries it.
			if err := json.Unmarshal(raw, &tok.Value); err != nil {
				return nil, fmt.Errorf("%s value must be an integer: %w", tok.Kind, err)
			}
		default:
			child, err := decodeToken(raw)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", tok.Kind, name, err)
			}
			if tok.Args == nil {
				tok.Args = make(map[string]*token.Token)
			}
			tok.Args[name] = child
		}
	}
	return tok, nil
}
