// Package interp supplies a runnable collaborator for the IR the compiler
// produces. The compiler's own responsibility ends at emitting
// semantically valid three-address IR; this package is what actually
// executes it, kept separate so the core pipeline has no dependency on an
// execution engine.
package interp

import "strings"

// Interpreter executes already-validated three-address IR text.
type Interpreter interface {
	Run(irText string) error
}

// function is one %func ... %endfunc block, parsed into directly
// addressable instructions.
type function struct {
	name   string
	params []string
	body   []line
	labels map[string]int
}

// line is a single non-blank IR line. A label-only line ("label" set, "op"
// empty) is a no-op that falls through to the next line.
type line struct {
	label string
	op    string
	args  []string
}

// parseProgram splits already-translated IR text into its functions, each
// with its instructions and label positions pre-resolved so execution
// never has to rescan text.
func parseProgram(irText string) map[string]*function {
	functions := make(map[string]*function)
	var cur *function

	for _, raw := range strings.Split(irText, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "%func") {
			cur = parseFuncHeader(trimmed)
			functions[cur.name] = cur
			continue
		}
		if trimmed == "%endfunc" {
			cur = nil
			continue
		}
		if cur == nil {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			label := trimmed[1:]
			cur.labels[label] = len(cur.body)
			cur.body = append(cur.body, line{label: label})
			continue
		}

		cur.body = append(cur.body, parseInstruction(trimmed))
	}
	return functions
}

func parseFuncHeader(trimmed string) *function {
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "%func"))
	name, paramsPart, hasParams := strings.Cut(rest, "(")
	name = strings.TrimSpace(name)

	fn := &function{name: name, labels: make(map[string]int)}
	if !hasParams {
		return fn
	}
	paramsPart = strings.TrimSuffix(paramsPart, ")")
	paramsPart = strings.ReplaceAll(paramsPart, ",", " ")
	fields := strings.Fields(paramsPart)
	for i := 0; i+1 < len(fields); i += 2 {
		fn.params = append(fn.params, fields[i+1])
	}
	return fn
}

// parseInstruction splits an opcode from its comma-separated operands. A
// %call's second operand is itself "name(a1,a2,...)" and must not be torn
// apart by a blind comma split, so it is kept as one field and parsed
// further at call time.
func parseInstruction(trimmed string) line {
	op, rest, _ := strings.Cut(trimmed, " ")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return line{op: op}
	}

	if op == "%call" {
		dst, callExpr, _ := strings.Cut(rest, ",")
		return line{op: op, args: []string{strings.TrimSpace(dst), strings.TrimSpace(callExpr)}}
	}

	var args []string
	for _, a := range strings.Split(rest, ",") {
		args = append(args, strings.TrimSpace(a))
	}
	return line{op: op, args: args}
}
