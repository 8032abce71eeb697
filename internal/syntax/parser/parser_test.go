package parser

import (
	"testing"

	"github.com/carbon-lang/carbonc/internal/syntax/ast"
	"github.com/carbon-lang/carbonc/internal/syntax/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, lexErrs := lexer.New(src).ScanTokens()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	prog, parseErrs := New(toks).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	return prog
}

func TestParseAssignment(t *testing.T) {
	prog := parseSource(t, "x = 1 + 2\n")
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Body))
	}
	assign, ok := prog.Body[0].(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected *ast.AssignStmt, got %T", prog.Body[0])
	}
	if assign.Target != "x" {
		t.Errorf("target = %q, want x", assign.Target)
	}
	bin, ok := assign.Value.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpr, got %T", assign.Value)
	}
	if bin.Op != "+" {
		t.Errorf("op = %q, want +", bin.Op)
	}
}

func TestParseIfElifElse(t *testing.T) {
	src := "if x < 1:\n    y = 1\nelif x < 2:\n    y = 2\nelse:\n    y = 3\n"
	prog := parseSource(t, src)
	ifStmt, ok := prog.Body[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", prog.Body[0])
	}
	if len(ifStmt.Else) != 1 {
		t.Fatalf("expected elif chain collapsed into single Else entry, got %d", len(ifStmt.Else))
	}
	elif, ok := ifStmt.Else[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected nested *ast.IfStmt for elif, got %T", ifStmt.Else[0])
	}
	if len(elif.Else) != 1 {
		t.Fatalf("expected final else body, got %d stmts", len(elif.Else))
	}
}

func TestParseForRange(t *testing.T) {
	prog := parseSource(t, "for i in range(0, 10):\n    print(i)\n")
	forStmt, ok := prog.Body[0].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", prog.Body[0])
	}
	if forStmt.Target != "i" {
		t.Errorf("target = %q, want i", forStmt.Target)
	}
	call, ok := forStmt.Iter.(*ast.CallExpr)
	if !ok || call.Func != "range" {
		t.Fatalf("expected range(...) call, got %#v", forStmt.Iter)
	}
}

func TestParseFuncDefAndReturn(t *testing.T) {
	prog := parseSource(t, "def add(a, b):\n    return a + b\n")
	fn, ok := prog.Body[0].(*ast.FuncDefStmt)
	if !ok {
		t.Fatalf("expected *ast.FuncDefStmt, got %T", prog.Body[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function header: %+v", fn)
	}
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fn.Body[0])
	}
	if ret.Value == nil {
		t.Fatalf("expected non-bare return value")
	}
}

func TestParseChainedComparison(t *testing.T) {
	prog := parseSource(t, "x = 1 < 2 < 3\n")
	assign := prog.Body[0].(*ast.AssignStmt)
	cmp, ok := assign.Value.(*ast.CompareExpr)
	if !ok {
		t.Fatalf("expected *ast.CompareExpr, got %T", assign.Value)
	}
	if len(cmp.Ops) != 2 || len(cmp.Comparators) != 2 {
		t.Fatalf("expected chained comparison with 2 ops, got %+v", cmp)
	}
}

func TestParseBoolOpChain(t *testing.T) {
	prog := parseSource(t, "x = a and b and c\n")
	assign := prog.Body[0].(*ast.AssignStmt)
	boolOp, ok := assign.Value.(*ast.BoolOpExpr)
	if !ok {
		t.Fatalf("expected *ast.BoolOpExpr, got %T", assign.Value)
	}
	if boolOp.Op != "and" || len(boolOp.Values) != 3 {
		t.Fatalf("expected 3-way and chain, got %+v", boolOp)
	}
}

func TestParseListLiteral(t *testing.T) {
	prog := parseSource(t, "x = [1, 2, 3]\n")
	assign := prog.Body[0].(*ast.AssignStmt)
	list, ok := assign.Value.(*ast.ListExpr)
	if !ok {
		t.Fatalf("expected *ast.ListExpr, got %T", assign.Value)
	}
	if len(list.Elts) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(list.Elts))
	}
}

func TestParseWhileLoop(t *testing.T) {
	prog := parseSource(t, "while x < 10:\n    x = x + 1\n")
	w, ok := prog.Body[0].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected *ast.WhileStmt, got %T", prog.Body[0])
	}
	if len(w.Body) != 1 {
		t.Fatalf("expected 1 body statement, got %d", len(w.Body))
	}
}

func TestParseUnaryNot(t *testing.T) {
	prog := parseSource(t, "x = not y\n")
	assign := prog.Body[0].(*ast.AssignStmt)
	u, ok := assign.Value.(*ast.UnaryExpr)
	if !ok || u.Op != "not" {
		t.Fatalf("expected unary not, got %#v", assign.Value)
	}
}

func TestParseRecoversFromMalformedStatement(t *testing.T) {
	toks, _ := lexer.New("x = \ny = 2\n").ScanTokens()
	_, errs := New(toks).Parse()
	if len(errs) == 0 {
		t.Fatalf("expected a parse error for the malformed statement")
	}
}
