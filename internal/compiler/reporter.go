package compiler

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/funtac/internal/checker"
	"github.com/funvibe/funtac/internal/codegen"
	"github.com/funvibe/funtac/internal/token"
	"github.com/funvibe/funtac/internal/typesystem"
)

// Reporter renders compile failures in a form meant for rule authors, not
// for logs: header, message, location path, the offending subtree and a
// suggestion keyed to the error kind.
type Reporter struct {
	Color bool
}

// NewReporter detects color support on stderr.
func NewReporter() *Reporter {
	return &Reporter{Color: DetectColor(os.Stderr.Fd())}
}

// DetectColor reports whether the stream wants ANSI colors, honoring the
// NO_COLOR convention.
func DetectColor(fd uintptr) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (r *Reporter) paint(code, s string) string {
	if !r.Color {
		return s
	}
	return code + s + "\033[0m"
}

// FormatError renders one compile failure.
func (r *Reporter) FormatError(err error) string {
	var b strings.Builder

	b.WriteString("Compilation Error\n")
	b.WriteString("=================\n\n")

	message := err.Error()
	var ce *checker.CompileError
	if errors.As(err, &ce) {
		message = ce.Err.Error()
	}
	fmt.Fprintf(&b, "%s %s\n", r.paint("\033[31m", "Error:"), message)

	if ce != nil && len(ce.Path) > 0 {
		fmt.Fprintf(&b, "\n%s %s\n", r.paint("\033[36m", "Location:"), strings.Join(ce.Path, " -> "))
	}
	if ce != nil && ce.Token != nil {
		b.WriteString("\nToken:\n")
		b.WriteString(formatToken(ce.Token, 2))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s\n%s\n", r.paint("\033[32m", "Suggestion:"), suggestion(err))
	return b.String()
}

// FormatErrors renders a batch of compile failures with a count header.
func (r *Reporter) FormatErrors(errs []error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d compilation error(s):\n\n", len(errs))
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		b.WriteString(r.FormatError(err))
	}
	return b.String()
}

// FormatErrorLine renders one failure as a single line for list output.
func (r *Reporter) FormatErrorLine(err error) string {
	var ce *checker.CompileError
	if errors.As(err, &ce) && len(ce.Path) > 0 {
		return fmt.Sprintf("%s at %s", ce.Err, strings.Join(ce.Path, " -> "))
	}
	return err.Error()
}

// formatToken renders a token subtree with two-space structure indentation.
func formatToken(tok *token.Token, indent int) string {
	pad := strings.Repeat(" ", indent)
	if tok == nil {
		return pad + "<nil>"
	}
	if len(tok.Args) == 0 {
		if tok.Kind == token.KindNumber {
			return fmt.Sprintf("%s%s { value: %d }", pad, tok.Kind, tok.Value)
		}
		return pad + tok.Kind
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s {\n", pad, tok.Kind)
	for _, name := range tok.ArgNames() {
		fmt.Fprintf(&b, "%s  %s: %s\n", pad, name, strings.TrimSpace(formatToken(tok.Args[name], indent+4)))
	}
	fmt.Fprintf(&b, "%s}", pad)
	return b.String()
}

func suggestion(err error) string {
	var (
		mismatch   *checker.TypeMismatchError
		undefined  *checker.UndefinedTokenError
		argCount   *checker.ArgumentCountError
		missing    *checker.MissingFieldError
		unresolved *checker.UnresolvedTypeError
		cyclic     *checker.CyclicReferenceError
		bound      *typesystem.TraitBoundError
		infinite   *typesystem.InfiniteTypeError
		noConv     *codegen.NoConverterError
		rootType   *codegen.RootTypeError
	)

	switch {
	case errors.As(err, &mismatch):
		return fmt.Sprintf("The %s expects a value of type '%s', but you provided type '%s'.\n  Please ensure the argument matches the expected type.",
			mismatch.Context, mismatch.Expected, mismatch.Actual)
	case errors.As(err, &undefined):
		return fmt.Sprintf("The token '%s' is not recognized. Available tokens include:\n"+
			"  - Actions: Strike, Heal, Check\n"+
			"  - Conditions: GreaterThan, LessThan, Eq, TrueOrFalseRandom\n"+
			"  - Values: ActingCharacter, Number, Hero, Enemy, Element\n"+
			"  - Arrays: AllCharacters, AllTeamSides, TeamMembers, FilterList, Map, RandomPick\n"+
			"  - Aggregates: Max, Min, NumericMax, NumericMin",
			undefined.Kind)
	case errors.As(err, &argCount):
		return fmt.Sprintf("The token '%s' requires exactly %d argument(s), but %d were provided.\n  Please check the token reference for the correct arguments.",
			argCount.Kind, argCount.Expected, argCount.Actual)
	case errors.As(err, &missing):
		return fmt.Sprintf("The token '%s' is missing the required field '%s'.\n  Please add this field with an appropriate value.",
			missing.Kind, missing.Field)
	case errors.As(err, &unresolved):
		return fmt.Sprintf("Type resolution failed: %s.\n  Element only has a type inside a FilterList condition or a Map transform.",
			unresolved.Context)
	case errors.As(err, &cyclic):
		return fmt.Sprintf("The token '%s' contains a cyclic reference.\n  Tokens cannot reference themselves directly or indirectly.",
			cyclic.Kind)
	case errors.As(err, &bound):
		return fmt.Sprintf("Type %s does not implement the required trait %s.\n  This type cannot be used in this context.",
			bound.Type, bound.Trait)
	case errors.As(err, &infinite):
		return "A type would have to contain itself to satisfy these constraints.\n  Restructure the rule so the types stay finite."
	case errors.As(err, &noConv):
		return fmt.Sprintf("No %s converter accepts the token '%s'.\n  This token kind cannot be used in this position.",
			noConv.Table, noConv.Kind)
	case errors.As(err, &rootType):
		return "A rule must end in an action: Strike, Heal, or a Check chain leading to one."
	default:
		return "Please check the rule structure against the token reference."
	}
}
