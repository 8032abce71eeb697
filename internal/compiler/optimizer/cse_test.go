package optimizer

import (
	"testing"

	"github.com/carbon-lang/carbonc/internal/compiler/ast"
)

func TestCSEReplacesRepeatedExpressionWithName(t *testing.T) {
	expr := &ast.BinaryOp{Left: &ast.Name{ID: "a", Loc: loc()}, Op: ast.ADD, Right: &ast.Name{ID: "b", Loc: loc()}, Loc: loc()}
	module := &ast.Module{
		Body: []ast.StmtNode{
			&ast.Assignment{Target: "x", Value: expr, Loc: loc()},
			&ast.Assignment{Target: "y", Value: &ast.BinaryOp{
				Left: &ast.Name{ID: "a", Loc: loc()}, Op: ast.ADD, Right: &ast.Name{ID: "b", Loc: loc()}, Loc: loc(),
			}, Loc: loc()},
		},
		Loc: loc(),
	}

	o := New(nil)
	out := o.eliminateCommonSubexpressionsModule(module)

	second := out.Body[1].(*ast.Assignment)
	name, ok := second.Value.(*ast.Name)
	if !ok || name.ID != "x" {
		t.Fatalf("expected second assignment to reference x, got %#v", second.Value)
	}
}

func TestCSEDoesNotDedupConstantOrNameAssignments(t *testing.T) {
	module := &ast.Module{
		Body: []ast.StmtNode{
			&ast.Assignment{Target: "x", Value: ast.IntConst(1, loc()), Loc: loc()},
			&ast.Assignment{Target: "y", Value: ast.IntConst(1, loc()), Loc: loc()},
		},
		Loc: loc(),
	}

	o := New(nil)
	out := o.eliminateCommonSubexpressionsModule(module)

	second := out.Body[1].(*ast.Assignment)
	c, ok := second.Value.(*ast.Constant)
	if !ok || c.Int != 1 {
		t.Fatalf("expected the literal constant to survive untouched, got %#v", second.Value)
	}
}

func TestHashExprCanonicalizesIdenticalCalls(t *testing.T) {
	a := &ast.Call{Func: "f", Args: []ast.ExprNode{&ast.Name{ID: "x", Loc: loc()}}, Loc: loc()}
	b := &ast.Call{Func: "f", Args: []ast.ExprNode{&ast.Name{ID: "x", Loc: loc()}}, Loc: loc()}

	if hashExpr(a) != hashExpr(b) {
		t.Fatalf("expected identical call fingerprints, got %q vs %q", hashExpr(a), hashExpr(b))
	}
}
