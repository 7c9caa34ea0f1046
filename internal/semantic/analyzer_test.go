package semantic

import (
	"strings"
	"testing"
)

func containsMsg(errs []string, want string) bool {
	for _, e := range errs {
		if e == want {
			return true
		}
	}
	return false
}

func TestAnalyzeMinimalMainPasses(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze("%func main\n%ret 0\n%endfunc\n")
	if !ok {
		t.Fatalf("expected pass, got errors: %v", a.Errors())
	}
}

func TestAnalyzeMissingMain(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze("%func foo\n%ret 0\n%endfunc\n")
	if ok {
		t.Fatalf("expected failure")
	}
	want := []string{"Error: Main function not defined."}
	if len(a.Errors()) != len(want) || a.Errors()[0] != want[0] {
		t.Fatalf("got %v, want %v", a.Errors(), want)
	}
}

func TestAnalyzeDuplicateFunction(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func main",
		"%ret 0",
		"%endfunc",
		"",
		"%func main",
		"%ret 0",
		"%endfunc",
		"",
	}, "\n"))
	if ok {
		t.Fatalf("expected failure")
	}
	if !containsMsg(a.Errors(), "Error: Function main already defined.") {
		t.Fatalf("missing duplicate-function error, got %v", a.Errors())
	}
}

func TestAnalyzeDuplicateParameter(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func add(%int a, %int a)",
		"%ret a",
		"%endfunc",
		"",
	}, "\n"))
	if ok {
		t.Fatalf("expected failure")
	}
	if !containsMsg(a.Errors(), "Error: Duplicate parameter a declared in add.") {
		t.Fatalf("missing duplicate-parameter error, got %v", a.Errors())
	}
	// also missing main
	if !containsMsg(a.Errors(), "Error: Main function not defined.") {
		t.Fatalf("missing main-not-defined error, got %v", a.Errors())
	}
}

func TestAnalyzeNonPositiveArraySize(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func main",
		"%int[] a, 0",
		"%ret 0",
		"%endfunc",
		"",
	}, "\n"))
	if ok {
		t.Fatalf("expected failure")
	}
	if !containsMsg(a.Errors(), "Error: Array size of a must be greater than 0.") {
		t.Fatalf("missing array-size error, got %v", a.Errors())
	}
}

func TestAnalyzeDuplicateVariable(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func main",
		"%int x",
		"%int x",
		"%ret 0",
		"%endfunc",
		"",
	}, "\n"))
	if ok {
		t.Fatalf("expected failure")
	}
	if !containsMsg(a.Errors(), "Error: Variable x already declared.") {
		t.Fatalf("missing duplicate-variable error, got %v", a.Errors())
	}
}

func TestAnalyzeUndefinedFunction(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func main",
		"%int t",
		"%call t, foo()",
		"%ret t",
		"%endfunc",
		"",
	}, "\n"))
	if ok {
		t.Fatalf("expected failure")
	}
	if !containsMsg(a.Errors(), "Error: Undefined function used: foo") {
		t.Fatalf("missing undefined-function error, got %v", a.Errors())
	}
}

func TestAnalyzeUndeclaredVariable(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func main",
		"%mov y, 5",
		"%ret 0",
		"%endfunc",
		"",
	}, "\n"))
	if ok {
		t.Fatalf("expected failure")
	}
	if !containsMsg(a.Errors(), "Error: Undeclared variable used: y") {
		t.Fatalf("missing undeclared-variable error, got %v", a.Errors())
	}
}

func TestAnalyzeScalarUsedAsArrayAddress(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func main",
		"%int a",
		"%int i",
		"%int t",
		"%mov t, [a + i]",
		"%ret t",
		"%endfunc",
		"",
	}, "\n"))
	if ok {
		t.Fatalf("expected failure")
	}
	if !containsMsg(a.Errors(), "Error: Type mismatch. 'a' is not an array.") {
		t.Fatalf("missing scalar-not-array error, got %v", a.Errors())
	}
}

func TestAnalyzeArrayUsedDirectlyAsInteger(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func main",
		"%int[] a, 3",
		"%int b",
		"%int t",
		"%add t, a, b",
		"%ret t",
		"%endfunc",
		"",
	}, "\n"))
	if ok {
		t.Fatalf("expected failure")
	}
	if !containsMsg(a.Errors(), "Error: Type mismatch. Used 'a' as an integer.") {
		t.Fatalf("missing array-as-integer error, got %v", a.Errors())
	}
}

func TestAnalyzeArrayAddressFormIsValid(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func main",
		"%int[] a, 3",
		"%int i",
		"%int t",
		"%mov t, [a + i]",
		"%ret t",
		"%endfunc",
		"",
	}, "\n"))
	if !ok {
		t.Fatalf("expected pass, got errors: %v", a.Errors())
	}
}

func TestAnalyzeParametersScopedToTheirFunction(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func add(%int a, %int b)",
		"%int t",
		"%add t, a, b",
		"%ret t",
		"%endfunc",
		"",
		"%func main",
		"%int x",
		"%call x, add(1, 2)",
		"%ret x",
		"%endfunc",
		"",
	}, "\n"))
	if !ok {
		t.Fatalf("expected pass, got errors: %v", a.Errors())
	}
}

func TestAnalyzeCallGluedWithoutSpaceIsRecognized(t *testing.T) {
	a := NewAnalyzer()
	ok := a.Analyze(strings.Join([]string{
		"%func add(%int a1, %int a2)",
		"%int t",
		"%add t, a1, a2",
		"%ret t",
		"%endfunc",
		"",
		"%func main",
		"%int r",
		"%call r, add(a1,a2)",
		"%ret r",
		"%endfunc",
		"",
	}, "\n"))
	// a1 and a2 in main's %call are undeclared in main's scope (they belong
	// to add's scope), so this should fail on those, not on finding "add".
	if ok {
		t.Fatalf("expected failure due to undeclared a1/a2 in main's scope")
	}
	if containsMsg(a.Errors(), "Error: Undefined function used: add") {
		t.Fatalf("add should have resolved as a function, got %v", a.Errors())
	}
	if !containsMsg(a.Errors(), "Error: Undeclared variable used: a1") {
		t.Fatalf("expected undeclared a1 in main's scope, got %v", a.Errors())
	}
}
