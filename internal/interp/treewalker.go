package interp

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tacc-lang/tacc/internal/ir"
)

// TreeWalker executes three-address IR directly, one instruction at a
// time, keeping a scalar/array binding per call frame. It is a reference
// collaborator for development and testing, not a performance-oriented
// execution engine.
type TreeWalker struct {
	functions map[string]*function
	in        io.Reader
	out       io.Writer
}

// NewTreeWalker creates a TreeWalker that writes %out values to out and
// reads %input values from stdin.
func NewTreeWalker(out io.Writer) *TreeWalker {
	return &TreeWalker{in: os.Stdin, out: out}
}

// SetInput overrides the reader %input draws from (tests use this to feed
// canned input instead of stdin).
func (w *TreeWalker) SetInput(in io.Reader) {
	w.in = in
}

// frame holds one call's local bindings.
type frame struct {
	scalars map[string]int32
	arrays  map[string][]int32
}

func newFrame() *frame {
	return &frame{scalars: make(map[string]int32), arrays: make(map[string][]int32)}
}

// Run parses and executes irText starting from its main function.
func (w *TreeWalker) Run(irText string) error {
	w.functions = parseProgram(irText)
	fn, ok := w.functions["main"]
	if !ok {
		return fmt.Errorf("main function not defined")
	}
	_, err := w.call(fn, nil)
	return err
}

// call executes fn's body to completion, returning the value of its %ret
// instruction (zero if it falls off the end without one).
func (w *TreeWalker) call(fn *function, args []int32) (int32, error) {
	fr := newFrame()
	for i, p := range fn.params {
		var v int32
		if i < len(args) {
			v = args[i]
		}
		fr.scalars[p] = v
	}

	pc := 0
	for pc < len(fn.body) {
		ln := fn.body[pc]
		if ln.op == "" {
			pc++
			continue
		}

		switch ln.op {
		case ir.OpInt:
			fr.scalars[ln.args[0]] = 0

		case ir.OpIntArray:
			size, err := strconv.Atoi(ln.args[1])
			if err != nil {
				return 0, fmt.Errorf("invalid array size %q", ln.args[1])
			}
			fr.arrays[ln.args[0]] = make([]int32, size)

		case ir.OpMov:
			if err := w.execMov(fr, ln.args); err != nil {
				return 0, err
			}

		case ir.OpAdd, ir.OpSub, ir.OpMult, ir.OpDiv, ir.OpMod:
			if err := w.execArith(fr, ln.op, ln.args); err != nil {
				return 0, err
			}

		case ir.OpLt, ir.OpLe, ir.OpGt, ir.OpGe, ir.OpEq, ir.OpNeq:
			if err := w.execCompare(fr, ln.op, ln.args); err != nil {
				return 0, err
			}

		case ir.OpOut:
			v, err := w.value(fr, ln.args[0])
			if err != nil {
				return 0, err
			}
			fmt.Fprintln(w.out, v)

		case ir.OpInput:
			var v int32
			if _, err := fmt.Fscan(w.in, &v); err != nil {
				return 0, fmt.Errorf("reading input: %w", err)
			}
			fr.scalars[ln.args[0]] = v

		case ir.OpRet:
			return w.value(fr, ln.args[0])

		case ir.OpCall:
			v, err := w.execCall(fr, ln.args)
			if err != nil {
				return 0, err
			}
			fr.scalars[ln.args[0]] = v

		case ir.OpJmp:
			pc = fn.labels[strings.TrimPrefix(ln.args[0], ":")]
			continue

		case ir.OpBranchIf:
			cond, err := w.value(fr, ln.args[0])
			if err != nil {
				return 0, err
			}
			if cond != 0 {
				pc = fn.labels[strings.TrimPrefix(ln.args[1], ":")]
				continue
			}

		case ir.OpBranchIfn:
			cond, err := w.value(fr, ln.args[0])
			if err != nil {
				return 0, err
			}
			if cond == 0 {
				pc = fn.labels[strings.TrimPrefix(ln.args[1], ":")]
				continue
			}

		default:
			return 0, fmt.Errorf("unknown opcode %s", ln.op)
		}
		pc++
	}
	return 0, nil
}

func (w *TreeWalker) execMov(fr *frame, args []string) error {
	dst, src := args[0], args[1]
	switch {
	case strings.HasPrefix(dst, "["):
		name, idx, err := w.address(fr, dst)
		if err != nil {
			return err
		}
		v, err := w.value(fr, src)
		if err != nil {
			return err
		}
		fr.arrays[name][idx] = v
		return nil
	default:
		v, err := w.value(fr, src)
		if err != nil {
			return err
		}
		fr.scalars[dst] = v
		return nil
	}
}

func (w *TreeWalker) execArith(fr *frame, op string, args []string) error {
	dst, a, b := args[0], args[1], args[2]
	av, err := w.value(fr, a)
	if err != nil {
		return err
	}
	bv, err := w.value(fr, b)
	if err != nil {
		return err
	}
	var result int32
	switch op {
	case ir.OpAdd:
		result = av + bv
	case ir.OpSub:
		result = av - bv
	case ir.OpMult:
		result = av * bv
	case ir.OpDiv:
		if bv == 0 {
			return fmt.Errorf("division by zero")
		}
		result = av / bv
	case ir.OpMod:
		if bv == 0 {
			return fmt.Errorf("division by zero")
		}
		result = av % bv
	}
	fr.scalars[dst] = result
	return nil
}

func (w *TreeWalker) execCompare(fr *frame, op string, args []string) error {
	dst, a, b := args[0], args[1], args[2]
	av, err := w.value(fr, a)
	if err != nil {
		return err
	}
	bv, err := w.value(fr, b)
	if err != nil {
		return err
	}
	var result bool
	switch op {
	case ir.OpLt:
		result = av < bv
	case ir.OpLe:
		result = av <= bv
	case ir.OpGt:
		result = av > bv
	case ir.OpGe:
		result = av >= bv
	case ir.OpEq:
		result = av == bv
	case ir.OpNeq:
		result = av != bv
	}
	if result {
		fr.scalars[dst] = 1
	} else {
		fr.scalars[dst] = 0
	}
	return nil
}

func (w *TreeWalker) execCall(fr *frame, args []string) (int32, error) {
	callExpr := args[1]
	name, argsPart, _ := strings.Cut(callExpr, "(")
	argsPart = strings.TrimSuffix(argsPart, ")")

	var argVals []int32
	if strings.TrimSpace(argsPart) != "" {
		for _, a := range strings.Split(argsPart, ",") {
			v, err := w.value(fr, strings.TrimSpace(a))
			if err != nil {
				return 0, err
			}
			argVals = append(argVals, v)
		}
	}

	fn, ok := w.functions[name]
	if !ok {
		return 0, fmt.Errorf("call to undefined function %s", name)
	}
	return w.call(fn, argVals)
}

// value resolves an operand: a bracketed array load, a decimal literal, or
// a scalar name.
func (w *TreeWalker) value(fr *frame, operand string) (int32, error) {
	if strings.HasPrefix(operand, "[") {
		name, idx, err := w.address(fr, operand)
		if err != nil {
			return 0, err
		}
		arr, ok := fr.arrays[name]
		if !ok {
			return 0, fmt.Errorf("undefined array %s", name)
		}
		if idx < 0 || idx >= len(arr) {
			return 0, fmt.Errorf("index %d out of range for array %s", idx, name)
		}
		return arr[idx], nil
	}
	if n, err := strconv.Atoi(operand); err == nil {
		return int32(n), nil
	}
	if v, ok := fr.scalars[operand]; ok {
		return v, nil
	}
	return 0, fmt.Errorf("undefined variable %s", operand)
}

// address resolves a "[name + idx]" operand to the array name and a
// concrete index.
func (w *TreeWalker) address(fr *frame, operand string) (string, int, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(operand, "["), "]")
	name, idxOperand, ok := strings.Cut(inner, "+")
	if !ok {
		return "", 0, fmt.Errorf("malformed address %q", operand)
	}
	idxVal, err := w.value(fr, strings.TrimSpace(idxOperand))
	if err != nil {
		return "", 0, err
	}
	return strings.TrimSpace(name), int(idxVal), nil
}
