// Package compiler wires checking and code generation into one pipeline
// and renders compile failures for rule authors.
package compiler

import (
	"fmt"

	"github.com/funvibe/funtac/internal/checker"
	"github.com/funvibe/funtac/internal/codegen"
	"github.com/funvibe/funtac/internal/engine"
	"github.com/funvibe/funtac/internal/rulefile"
	"github.com/funvibe/funtac/internal/token"
)

// Compiler runs the two compile phases over authored rules.
type Compiler struct {
	checker  *checker.Checker
	registry *codegen.Registry
}

// New creates a compiler with the built-in vocabulary.
func New() *Compiler {
	return &Compiler{
		checker:  checker.NewDefault(),
		registry: codegen.NewRegistry(),
	}
}

// Compile checks one rule tree and lowers it to an executable node.
func (c *Compiler) Compile(tok *token.Token) (engine.Node[engine.Action], error) {
	typed, err := c.checker.Check(tok)
	if err != nil {
		return nil, err
	}
	return c.registry.GenerateRule(typed)
}

// CompileRuleSet compiles every rule in a document. Each rule fails fast on
// its first error; across rules all errors are collected, so one bad rule
// never hides another.
func (c *Compiler) CompileRuleSet(set *rulefile.RuleSet) ([]engine.Node[engine.Action], []error) {
	rules := make([]engine.Node[engine.Action], 0, len(set.Rules))
	var errs []error
	for i, rule := range set.Rules {
		tree, err := rule.Tree()
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i+1, err))
			continue
		}
		node, err := c.Compile(tree)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i+1, err))
			continue
		}
		rules = append(rules, node)
	}
	return rules, errs
}
