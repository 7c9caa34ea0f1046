package parser

import (
	"strings"
	"testing"

	"github.com/tacc-lang/tacc/internal/lexer"
)

func parse(t *testing.T, src string) string {
	t.Helper()
	tokens, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", src, err)
	}
	code, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return code
}

func parseErr(t *testing.T, src string) error {
	t.Helper()
	tokens, err := lexer.Lex(src)
	if err != nil {
		t.Fatalf("Lex(%q) returned error: %v", src, err)
	}
	_, err = Parse(tokens)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", src)
	}
	return err
}

func TestParseMinimalMain(t *testing.T) {
	code := parse(t, `func main() {
	return 0;
}`)
	want := "%func main\n%ret 0\n%endfunc\n\n"
	if code != want {
		t.Fatalf("got:\n%s\nwant:\n%s", code, want)
	}
}

func TestParsePrecedenceMultipliesBeforeAdds(t *testing.T) {
	code := parse(t, `func main() {
	int x;
	x = 1 + 2 * 3;
	return x;
}`)
	// 2 * 3 must be computed into a temp before it combines with 1.
	if !strings.Contains(code, "%mult _temp0, 2, 3") {
		t.Fatalf("expected mult to run before add, got:\n%s", code)
	}
	if !strings.Contains(code, "%add _temp1, 1, _temp0") {
		t.Fatalf("expected add to use mult's temp, got:\n%s", code)
	}
	tempDeclIdx := strings.Index(code, "%int _temp0")
	multIdx := strings.Index(code, "%mult _temp0")
	if tempDeclIdx == -1 || multIdx == -1 || tempDeclIdx > multIdx {
		t.Fatalf("temp must be declared before use, got:\n%s", code)
	}
}

func TestParseArrayDeclAndWhileLoop(t *testing.T) {
	code := parse(t, `func main() {
	int[3] a;
	int i;
	i = 0;
	while i < 3 {
		i = i + 1;
	}
	return 0;
}`)
	for _, want := range []string{
		"%int[] a, 3",
		":loopbegin0",
		"%branch_ifn",
		"%jmp :loopbegin0",
		":endloop_0",
	} {
		if !strings.Contains(code, want) {
			t.Fatalf("expected %q in:\n%s", want, code)
		}
	}
}

func TestParseIfEmitsElseBranchFirst(t *testing.T) {
	code := parse(t, `func main() {
	int x;
	if x < 1 {
		x = 1;
	} else {
		x = 2;
	}
	return x;
}`)
	elseIdx := strings.Index(code, "%mov x, 2")
	iftrueIdx := strings.Index(code, "\n:iftrue0\n")
	thenIdx := strings.Index(code, "%mov x, 1")
	endifIdx := strings.Index(code, "\n:endif0\n")
	if elseIdx == -1 || iftrueIdx == -1 || thenIdx == -1 || endifIdx == -1 {
		t.Fatalf("missing expected fragments in:\n%s", code)
	}
	if !(elseIdx < iftrueIdx && iftrueIdx < thenIdx && thenIdx < endifIdx) {
		t.Fatalf("expected else-body, :iftrue, then-body, :endif order, got:\n%s", code)
	}
}

func TestParseIfWithoutElseStillEmitsElseSkeleton(t *testing.T) {
	code := parse(t, `func main() {
	int x;
	if x < 1 {
		x = 1;
	}
	return x;
}`)
	jmpIdx := strings.Index(code, "%jmp :endif0")
	iftrueIdx := strings.Index(code, "\n:iftrue0\n")
	if jmpIdx == -1 || iftrueIdx == -1 || jmpIdx > iftrueIdx {
		t.Fatalf("expected unconditional jump to :endif before :iftrue, got:\n%s", code)
	}
}

func TestParseStatementAsExpressionQuirk(t *testing.T) {
	code := parse(t, `func main() {
	int x;
	x < 1;
	return x;
}`)
	if !strings.Contains(code, "%int _temp0") || !strings.Contains(code, "%lt _temp0, x, 1") {
		t.Fatalf("expected discarded comparison temp, got:\n%s", code)
	}
}

func TestParseBreakAndContinueRejected(t *testing.T) {
	err := parseErr(t, `func main() {
	while 1 < 2 {
		break;
	}
	return 0;
}`)
	if err.Error() != "break is not supported" {
		t.Fatalf("got %q, want %q", err.Error(), "break is not supported")
	}

	err = parseErr(t, `func main() {
	while 1 < 2 {
		continue;
	}
	return 0;
}`)
	if err.Error() != "continue is not supported" {
		t.Fatalf("got %q, want %q", err.Error(), "continue is not supported")
	}
}

func TestParseFunctionWithParamsAndCall(t *testing.T) {
	code := parse(t, `func add(int a, int b) {
	return a + b;
}
func main() {
	int x;
	x = add(1, 2);
	return x;
}`)
	if !strings.Contains(code, "%func add(%int a, %int b)") {
		t.Fatalf("expected param list in func header, got:\n%s", code)
	}
	if !strings.Contains(code, "add(1,2)") || !strings.Contains(code, "%call _temp1, add(1,2)") {
		t.Fatalf("expected comma-joined, unspaced call args, got:\n%s", code)
	}
}

func TestParseArrayIndexReadAndWrite(t *testing.T) {
	code := parse(t, `func main() {
	int[2] a;
	a[0] = 5;
	int x;
	x = a[0];
	return x;
}`)
	if !strings.Contains(code, "%mov [a + 0], 5") {
		t.Fatalf("expected array store, got:\n%s", code)
	}
	if !strings.Contains(code, "%mov _temp0, [a + 0]") {
		t.Fatalf("expected array load into temp, got:\n%s", code)
	}
}

func TestParseReadNarrowsToIdentOrIndex(t *testing.T) {
	code := parse(t, `func main() {
	int x;
	read(x);
	return x;
}`)
	if !strings.Contains(code, "%input x") {
		t.Fatalf("expected input of plain identifier, got:\n%s", code)
	}

	err := parseErr(t, `func main() {
	int x;
	read(x + 1);
	return x;
}`)
	if err == nil {
		t.Fatalf("expected read() with a non-identifier destination to fail")
	}
}

func TestParseMissingFuncKeywordFails(t *testing.T) {
	err := parseErr(t, `main() { return 0; }`)
	if err.Error() != "expected 'func'" {
		t.Fatalf("got %q, want %q", err.Error(), "expected 'func'")
	}
}

func TestParseInvalidExpressionFails(t *testing.T) {
	err := parseErr(t, `func main() {
	return ;
}`)
	if err.Error() != "invalid expression" {
		t.Fatalf("got %q, want %q", err.Error(), "invalid expression")
	}
}

func TestParseMissingSemicolonFails(t *testing.T) {
	err := parseErr(t, `func main() {
	return 0
}`)
	if err.Error() != "expected ';'" {
		t.Fatalf("got %q, want %q", err.Error(), "expected ';'")
	}
}
