package parser

import (
	"testing"

	cast "github.com/carbon-lang/carbonc/internal/compiler/ast"
	"github.com/carbon-lang/carbonc/internal/syntax/lexer"
	sparser "github.com/carbon-lang/carbonc/internal/syntax/parser"
)

func convertSource(t *testing.T, src string) *cast.Module {
	t.Helper()
	toks, lexErrs := lexer.New(src).ScanTokens()
	if len(lexErrs) != 0 {
		t.Fatalf("unexpected lex errors: %v", lexErrs)
	}
	prog, parseErrs := sparser.New(toks).Parse()
	if len(parseErrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", parseErrs)
	}
	return NewAdapter().Convert(prog)
}

func TestConvertAssignment(t *testing.T) {
	mod := convertSource(t, "x = 1 + 2\n")
	if len(mod.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(mod.Body))
	}
	assign, ok := mod.Body[0].(*cast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", mod.Body[0])
	}
	bin, ok := assign.Value.(*cast.BinaryOp)
	if !ok {
		t.Fatalf("expected *ast.BinaryOp, got %T", assign.Value)
	}
	if bin.Op != cast.ADD {
		t.Errorf("op = %v, want ADD", bin.Op)
	}
}

func TestConvertIfElifElse(t *testing.T) {
	src := "if x < 1:\n    y = 1\nelif x < 2:\n    y = 2\nelse:\n    y = 3\n"
	mod := convertSource(t, src)
	ifNode, ok := mod.Body[0].(*cast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", mod.Body[0])
	}
	if len(ifNode.Orelse) != 1 {
		t.Fatalf("expected nested elif in Orelse, got %d", len(ifNode.Orelse))
	}
	if _, ok := ifNode.Orelse[0].(*cast.If); !ok {
		t.Fatalf("expected nested *ast.If for elif, got %T", ifNode.Orelse[0])
	}
}

func TestConvertForRange(t *testing.T) {
	mod := convertSource(t, "for i in range(0, 10):\n    print(i)\n")
	forNode, ok := mod.Body[0].(*cast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", mod.Body[0])
	}
	if forNode.Target.ID != "i" {
		t.Errorf("target = %q, want i", forNode.Target.ID)
	}
	call, ok := forNode.Iter.(*cast.Call)
	if !ok || call.Func != "range" {
		t.Fatalf("expected range(...) call, got %#v", forNode.Iter)
	}
}

func TestConvertFunctionDef(t *testing.T) {
	mod := convertSource(t, "def add(a, b):\n    return a + b\n")
	fn, ok := mod.Body[0].(*cast.FunctionDef)
	if !ok {
		t.Fatalf("expected *ast.FunctionDef, got %T", mod.Body[0])
	}
	if fn.Name != "add" || len(fn.Args) != 2 {
		t.Fatalf("unexpected function header: %+v", fn)
	}
	ret, ok := fn.Body[0].(*cast.Return)
	if !ok {
		t.Fatalf("expected *ast.Return, got %T", fn.Body[0])
	}
	if ret.Value == nil {
		t.Fatalf("expected non-bare return")
	}
}

func TestConvertChainedComparison(t *testing.T) {
	mod := convertSource(t, "x = 1 < 2 < 3\n")
	assign := mod.Body[0].(*cast.Assignment)
	cmp, ok := assign.Value.(*cast.Compare)
	if !ok {
		t.Fatalf("expected *ast.Compare, got %T", assign.Value)
	}
	if len(cmp.Ops) != 2 {
		t.Fatalf("expected 2 chained ops, got %d", len(cmp.Ops))
	}
}

func TestConvertBareReturn(t *testing.T) {
	mod := convertSource(t, "def f():\n    return\n")
	fn := mod.Body[0].(*cast.FunctionDef)
	ret := fn.Body[0].(*cast.Return)
	if ret.Value != nil {
		t.Errorf("expected bare return to have nil Value, got %#v", ret.Value)
	}
}

func TestConvertListLiteral(t *testing.T) {
	mod := convertSource(t, "x = [1, 2, 3]\n")
	assign := mod.Body[0].(*cast.Assignment)
	list, ok := assign.Value.(*cast.ListNode)
	if !ok {
		t.Fatalf("expected *ast.ListNode, got %T", assign.Value)
	}
	if len(list.Elts) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(list.Elts))
	}
}
