// Package semantic rebuilds a symbol table by re-scanning the IR text the
// parser already emitted, and validates declarations, uses, and array vs.
// scalar typing against it in a single top-to-bottom pass.
package semantic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tacc-lang/tacc/internal/errors"
	"github.com/tacc-lang/tacc/internal/ir"
)

// callGlue matches an identifier immediately followed by '(' with no
// space, the textual marker for a function call operand.
var callGlue = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\(`)

// Analyzer walks emitted IR text and accumulates diagnostics. It never
// stops at the first violation: every offending line is reported, matching
// the accumulate-then-report shape used by the rest of this codebase.
type Analyzer struct {
	symbols  map[string]Kind
	errs     []*errors.SemanticError
	scope    string
	mainSeen bool
}

// NewAnalyzer returns an Analyzer with an empty symbol table.
func NewAnalyzer() *Analyzer {
	return &Analyzer{symbols: make(map[string]Kind)}
}

// Errors returns every diagnostic collected so far, rendered as plain
// messages. Diagnostics and the symbol table are not reset between Analyze
// calls on the same Analyzer.
func (a *Analyzer) Errors() []string {
	msgs := make([]string, len(a.errs))
	for i, e := range a.errs {
		msgs[i] = e.Error()
	}
	return msgs
}

// report records one violation of the given kind.
func (a *Analyzer) report(kind errors.SemanticKind, format string, args ...any) {
	a.errs = append(a.errs, &errors.SemanticError{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Analyze scans irText line by line and reports whether it is valid. On
// false, Errors holds at least one diagnostic.
func (a *Analyzer) Analyze(irText string) bool {
	for _, line := range strings.Split(irText, "\n") {
		a.analyzeLine(line)
	}
	if !a.mainSeen {
		a.report(errors.MissingMain, "Error: Main function not defined.")
	}
	return len(a.errs) == 0
}

func (a *Analyzer) analyzeLine(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}
	switch {
	case strings.HasPrefix(line, ir.OpFunc+" "):
		a.handleFunc(strings.TrimPrefix(line, ir.OpFunc+" "))
	case strings.HasPrefix(line, ir.OpIntArray+" "):
		a.handleArrayDecl(strings.TrimPrefix(line, ir.OpIntArray+" "))
	case strings.HasPrefix(line, ir.OpInt+" "):
		a.handleIntDecl(strings.TrimPrefix(line, ir.OpInt+" "))
	case line == ir.OpEndFunc:
		// Scope ends; nothing further to validate on this line.
	default:
		a.validateUsageLine(line)
	}
}

// handleFunc implements the "%func <name>[( %int p1, %int p2, ... )]" rule.
func (a *Analyzer) handleFunc(rest string) {
	name, paramsPart, hasParams := strings.Cut(rest, "(")
	name = strings.TrimSpace(name)

	key := name + "|main"
	if _, exists := a.symbols[key]; exists {
		a.report(errors.DuplicateFunction, "Error: Function %s already defined.", name)
	} else {
		a.symbols[key] = KindFunction
	}
	a.scope = name
	if name == "main" {
		a.mainSeen = true
	}

	if !hasParams {
		return
	}
	paramsPart = strings.TrimSuffix(paramsPart, ")")
	paramsPart = strings.ReplaceAll(paramsPart, ",", " ")
	fields := strings.Fields(paramsPart)
	for i := 0; i+1 < len(fields); i += 2 {
		pname := fields[i+1]
		pkey := pname + "|" + name
		if _, exists := a.symbols[pkey]; exists {
			a.report(errors.DuplicateParameter, "Error: Duplicate parameter %s declared in %s.", pname, name)
			continue
		}
		a.symbols[pkey] = KindInt
	}
}

// handleArrayDecl implements "%int[] <name>, <size>".
func (a *Analyzer) handleArrayDecl(rest string) {
	fields := strings.Fields(strings.ReplaceAll(rest, ",", " "))
	if len(fields) < 2 {
		return
	}
	name, sizeStr := fields[0], fields[1]

	if size, err := strconv.Atoi(sizeStr); err != nil || size <= 0 {
		a.report(errors.NonPositiveArraySize, "Error: Array size of %s must be greater than 0.", name)
	}

	key := name + "|" + a.scope
	if _, exists := a.symbols[key]; exists {
		a.report(errors.DuplicateVariable, "Error: Variable %s already declared.", name)
		return
	}
	a.symbols[key] = KindArray
}

// handleIntDecl implements "%int <name>" (scalars and compiler temporaries
// alike -- a temporary is just a scalar declared under the current scope).
func (a *Analyzer) handleIntDecl(rest string) {
	name := strings.TrimSpace(rest)
	key := name + "|" + a.scope
	if _, exists := a.symbols[key]; exists {
		a.report(errors.DuplicateVariable, "Error: Variable %s already declared.", name)
		return
	}
	a.symbols[key] = KindInt
}

// validateUsageLine handles every other IR line: arithmetic, moves,
// comparisons, calls, jumps, branches, and address forms. Commas are
// stripped first (syntactic only); brackets and parentheses are then
// normalized to whitespace so every operand becomes its own word, after a
// pre-pass over the unnormalized line records which identifiers were
// glued to '(' and therefore denote a function call.
func (a *Analyzer) validateUsageLine(line string) {
	workLine := strings.ReplaceAll(line, ",", " ")

	callNames := make(map[string]bool)
	for _, m := range callGlue.FindAllStringSubmatch(workLine, -1) {
		callNames[m[1]] = true
	}

	tokenLine := workLine
	for _, ch := range []string{"(", ")", "[", "]"} {
		tokenLine = strings.ReplaceAll(tokenLine, ch, " ")
	}
	fields := strings.Fields(tokenLine)

	var (
		seenArray     bool
		seenArrayName string
		lastKind      Kind
		lastKindKnown bool
		lastName      string
	)

	for _, word := range fields {
		if strings.HasPrefix(word, "%") || strings.HasPrefix(word, ":") {
			continue
		}

		if word == "+" {
			if !lastKindKnown || lastKind != KindArray {
				a.report(errors.ArrayExpectedForIndex, "Error: Type mismatch. '%s' is not an array.", lastName)
			}
			seenArray = false
			continue
		}

		if isDecimalLiteral(word) {
			continue
		}

		calledGlued := callNames[word]
		if calledGlued {
			delete(callNames, word)
		}
		kind, ok := a.resolve(word, calledGlued)

		if ok && seenArray {
			a.report(errors.ScalarExpectedNotArray, "Error: Type mismatch. Used '%s' as an integer.", seenArrayName)
			seenArray = false
		}
		if ok && kind == KindArray {
			seenArray = true
			seenArrayName = word
		}
		if ok {
			lastKind, lastKindKnown, lastName = kind, true, word
		} else {
			lastKindKnown = false
		}
	}
}

// resolve looks up a single operand word, reporting the appropriate
// "undefined function" or "undeclared variable" diagnostic on failure.
func (a *Analyzer) resolve(word string, calledGlued bool) (Kind, bool) {
	if calledGlued {
		if kind, ok := a.symbols[word+"|main"]; ok && kind == KindFunction {
			return KindFunction, true
		}
		a.report(errors.UndefinedFunction, "Error: Undefined function used: %s", word)
		return 0, false
	}
	if kind, ok := a.symbols[word+"|"+a.scope]; ok {
		return kind, true
	}
	a.report(errors.UndeclaredVariable, "Error: Undeclared variable used: %s", word)
	return 0, false
}

func isDecimalLiteral(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
