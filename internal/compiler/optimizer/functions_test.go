package optimizer

import (
	"testing"

	"github.com/carbon-lang/carbonc/internal/compiler/ast"
)

func loc() ast.SourceLocation { return ast.SourceLocation{} }

func TestCollectFunctionsRecordsTopLevelAndNested(t *testing.T) {
	inner := &ast.FunctionDef{Name: "inner", Args: nil, Body: nil, Loc: loc()}
	outer := &ast.FunctionDef{Name: "outer", Args: nil, Body: []ast.StmtNode{inner}, Loc: loc()}

	o := New(nil)
	o.collectFunctions([]ast.StmtNode{outer})

	if o.functionDefs["outer"] != outer {
		t.Fatalf("expected outer to be recorded")
	}
	if o.functionDefs["inner"] != inner {
		t.Fatalf("expected inner to be recorded")
	}
}

func TestDetectRecursiveFunctionsFindsSelfCall(t *testing.T) {
	fn := &ast.FunctionDef{
		Name: "fact",
		Args: []string{"n"},
		Body: []ast.StmtNode{
			&ast.Return{
				Value: &ast.BinaryOp{
					Left:  &ast.Name{ID: "n", Loc: loc()},
					Op:    ast.MUL,
					Right: &ast.Call{Func: "fact", Args: []ast.ExprNode{&ast.Name{ID: "n", Loc: loc()}}, Loc: loc()},
					Loc:   loc(),
				},
				Loc: loc(),
			},
		},
		Loc: loc(),
	}
	module := &ast.Module{Body: []ast.StmtNode{fn}, Loc: loc()}

	o := New(nil)
	o.detectRecursiveFunctions(module)

	if !o.isRecursive("fact") {
		t.Fatalf("expected fact to be detected as recursive")
	}
	if o.isRecursive("other") {
		t.Fatalf("did not expect other to be recursive")
	}
}

func TestDetectRecursiveFunctionsIgnoresUnrelatedCalls(t *testing.T) {
	fn := &ast.FunctionDef{
		Name: "f",
		Args: nil,
		Body: []ast.StmtNode{
			&ast.Return{Value: &ast.Call{Func: "g", Args: nil, Loc: loc()}, Loc: loc()},
		},
		Loc: loc(),
	}
	module := &ast.Module{Body: []ast.StmtNode{fn}, Loc: loc()}

	o := New(nil)
	o.detectRecursiveFunctions(module)

	if o.isRecursive("f") {
		t.Fatalf("did not expect f to be recursive")
	}
}
