package optimizer

import (
	"testing"

	"github.com/carbon-lang/carbonc/internal/compiler/ast"
)

func TestInlineSubstitutesSimpleFunctionCall(t *testing.T) {
	square := &ast.FunctionDef{
		Name: "square",
		Args: []string{"n"},
		Body: []ast.StmtNode{
			&ast.Return{
				Value: &ast.BinaryOp{Left: &ast.Name{ID: "n", Loc: loc()}, Op: ast.MUL, Right: &ast.Name{ID: "n", Loc: loc()}, Loc: loc()},
				Loc:   loc(),
			},
		},
		Loc: loc(),
	}
	call := &ast.Assignment{
		Target: "y",
		Value:  &ast.Call{Func: "square", Args: []ast.ExprNode{ast.IntConst(4, loc())}, Loc: loc()},
		Loc:    loc(),
	}
	module := &ast.Module{Body: []ast.StmtNode{square, call}, Loc: loc()}

	o := New(nil)
	o.collectFunctions(module.Body)
	o.detectRecursiveFunctions(module)
	out := o.inlineFunctionsModule(module, 0)

	assign := out.Body[1].(*ast.Assignment)
	bin, ok := assign.Value.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("expected inlined BinaryOp, got %#v", assign.Value)
	}
	left, ok := bin.Left.(*ast.Constant)
	if !ok || left.Int != 4 {
		t.Fatalf("expected parameter substituted with 4, got %#v", bin.Left)
	}
}

func TestInlineSkipsRecursiveFunctions(t *testing.T) {
	fact := &ast.FunctionDef{
		Name: "fact",
		Args: []string{"n"},
		Body: []ast.StmtNode{
			&ast.Return{Value: &ast.Call{Func: "fact", Args: []ast.ExprNode{&ast.Name{ID: "n", Loc: loc()}}, Loc: loc()}, Loc: loc()},
		},
		Loc: loc(),
	}
	call := &ast.Assignment{
		Target: "y",
		Value:  &ast.Call{Func: "fact", Args: []ast.ExprNode{ast.IntConst(5, loc())}, Loc: loc()},
		Loc:    loc(),
	}
	module := &ast.Module{Body: []ast.StmtNode{fact, call}, Loc: loc()}

	o := New(nil)
	o.collectFunctions(module.Body)
	o.detectRecursiveFunctions(module)
	out := o.inlineFunctionsModule(module, 0)

	assign := out.Body[1].(*ast.Assignment)
	if _, ok := assign.Value.(*ast.Call); !ok {
		t.Fatalf("expected recursive call to remain a Call, got %#v", assign.Value)
	}
}

func TestInlineSkipsLargeFunctionBodies(t *testing.T) {
	body := make([]ast.StmtNode, 6)
	for i := range body {
		body[i] = &ast.Assignment{Target: "z", Value: ast.IntConst(int64(i), loc()), Loc: loc()}
	}
	big := &ast.FunctionDef{Name: "big", Args: nil, Body: body, Loc: loc()}
	call := &ast.Assignment{Target: "y", Value: &ast.Call{Func: "big", Args: nil, Loc: loc()}, Loc: loc()}
	module := &ast.Module{Body: []ast.StmtNode{big, call}, Loc: loc()}

	o := New(nil)
	o.collectFunctions(module.Body)
	o.detectRecursiveFunctions(module)
	out := o.inlineFunctionsModule(module, 0)

	assign := out.Body[1].(*ast.Assignment)
	if _, ok := assign.Value.(*ast.Call); !ok {
		t.Fatalf("expected oversized function call to remain a Call, got %#v", assign.Value)
	}
}
