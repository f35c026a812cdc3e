// Command funtac compiles token-tree combat rules and runs battles with
// them.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/funvibe/funtac/internal/battle"
	"github.com/funvibe/funtac/internal/compiler"
	"github.com/funvibe/funtac/internal/config"
	"github.com/funvibe/funtac/internal/engine"
	"github.com/funvibe/funtac/internal/rulefile"
	"github.com/funvibe/funtac/internal/storage"
)

const appName = "funtac"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "check":
		os.Exit(cmdCheck(os.Args[2:]))
	case "battle":
		os.Exit(cmdBattle(os.Args[2:]))
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`funtac - typed combat rules

Usage:
  %s check <rules.json>            Type-check and compile every rule in a rules file.
  %s battle <battle.yaml>          Run a battle between two rule-driven teams.
      [-db <path>]                 Persist the session to a SQLite database.
      [-seed <n>]                  Override the configured random seed.
      [-turns <n>]                 Override the configured turn cap.
      [-v]                         Log rule resolution details.

`, appName, appName)
}

// -----------------------------------------------------------------------------
// check
// -----------------------------------------------------------------------------

func cmdCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s check <rules.json>\n", appName)
		return 2
	}

	set, err := rulefile.Load(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	if len(set.Rules) == 0 {
		fmt.Println("no rules found")
		return 0
	}

	_, errs := compiler.New().CompileRuleSet(set)
	if len(errs) > 0 {
		fmt.Fprint(os.Stderr, compiler.NewReporter().FormatErrors(errs))
		return 1
	}
	for i := range set.Rules {
		fmt.Printf("rule %d: OK\n", i+1)
	}
	return 0
}

// -----------------------------------------------------------------------------
// battle
// -----------------------------------------------------------------------------

func cmdBattle(args []string) int {
	fs := flag.NewFlagSet("battle", flag.ContinueOnError)
	dbPath := fs.String("db", "", "persist the session to this SQLite database")
	seed := fs.Int64("seed", 0, "override the configured random seed")
	turns := fs.Int("turns", 0, "override the configured turn cap")
	verbose := fs.Bool("v", false, "log rule resolution details")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s battle <battle.yaml> [-db <path>] [-seed <n>] [-turns <n>] [-v]\n", appName)
		return 2
	}
	path := fs.Arg(0)
	// Flags may also follow the battle file.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s: unexpected argument %q\n", appName, fs.Arg(0))
		return 2
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *turns > 0 {
		cfg.MaxTurns = *turns
	}

	playerRules, ok := loadRules(cfg.Player.RulesPath(cfg.Dir))
	if !ok {
		return 1
	}
	enemyRules, ok := loadRules(cfg.Enemy.RulesPath(cfg.Dir))
	if !ok {
		return 1
	}

	var store *storage.Store
	if *dbPath != "" {
		store, err = storage.Open(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
		defer store.Close()
	}

	result, err := battle.New(battle.Options{
		Player:      cfg.Player.Team(),
		Enemy:       cfg.Enemy.Team(),
		PlayerRules: playerRules,
		EnemyRules:  enemyRules,
		Seed:        cfg.Seed,
		MaxTurns:    cfg.MaxTurns,
		Store:       store,
	}).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	if result.Winner != "" {
		fmt.Printf("Winner: %s (%d turns)\n", result.Winner, result.Turns)
	} else {
		fmt.Printf("Draw after %d turns\n", result.Turns)
	}
	if result.SessionID != "" {
		fmt.Printf("Session: %s\n", result.SessionID)
	}
	return 0
}

// loadRules reads and compiles one side's rules file, reporting any
// compile failures to stderr.
func loadRules(path string) ([]engine.Node[engine.Action], bool) {
	set, err := rulefile.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return nil, false
	}
	rules, errs := compiler.New().CompileRuleSet(set)
	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "%s:\n", path)
		fmt.Fprint(os.Stderr, compiler.NewReporter().FormatErrors(errs))
		return nil, false
	}
	return rules, true
}
