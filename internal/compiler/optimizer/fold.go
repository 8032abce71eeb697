package optimizer

import "github.com/carbon-lang/carbonc/internal/compiler/ast"

// constantFoldModule runs constant folding over every top-level
// statement of module.
func (o *Optimizer) constantFoldModule(module *ast.Module) *ast.Module {
	return &ast.Module{Body: o.foldStmts(module.Body), Loc: module.Loc}
}

// foldStmts folds every statement in stmts, splicing in the selected
// branch's statements in place whenever folding collapses an If whose
// test evaluated to a Constant. This gives a literal-true/literal-false
// If the same compiled shape as its chosen branch alone.
func (o *Optimizer) foldStmts(stmts []ast.StmtNode) []ast.StmtNode {
	out := make([]ast.StmtNode, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, o.foldStmt(stmt)...)
	}
	return out
}

func (o *Optimizer) foldStmt(stmt ast.StmtNode) []ast.StmtNode {
	switch s := stmt.(type) {
	case *ast.Assignment:
		return []ast.StmtNode{&ast.Assignment{Target: s.Target, Value: o.foldExpr(s.Value), Loc: s.Loc}}

	case *ast.Expr:
		return []ast.StmtNode{&ast.Expr{Value: o.foldExpr(s.Value), Loc: s.Loc}}

	case *ast.If:
		test := o.foldExpr(s.Test)
		if c, ok := test.(*ast.Constant); ok {
			if truthy(c) {
				return o.foldStmts(s.Body)
			}
			return o.foldStmts(s.Orelse)
		}
		return []ast.StmtNode{&ast.If{
			Test:   test,
			Body:   o.foldStmts(s.Body),
			Orelse: o.foldStmts(s.Orelse),
			Loc:    s.Loc,
		}}

	case *ast.For:
		return []ast.StmtNode{&ast.For{
			Target: s.Target,
			Iter:   o.foldExpr(s.Iter),
			Body:   o.foldStmts(s.Body),
			Loc:    s.Loc,
		}}

	case *ast.While:
		test := o.foldExpr(s.Test)
		if c, ok := test.(*ast.Constant); ok && !truthy(c) {
			return []ast.StmtNode{&ast.Expr{Value: ast.NullConst(s.Loc), Loc: s.Loc}}
		}
		return []ast.StmtNode{&ast.While{Test: test, Body: o.foldStmts(s.Body), Loc: s.Loc}}

	case *ast.FunctionDef:
		return []ast.StmtNode{&ast.FunctionDef{
			Name: s.Name,
			Args: s.Args,
			Body: o.foldStmts(s.Body),
			Loc:  s.Loc,
		}}

	case *ast.Return:
		if s.Value == nil {
			return []ast.StmtNode{s}
		}
		return []ast.StmtNode{&ast.Return{Value: o.foldExpr(s.Value), Loc: s.Loc}}

	default:
		return []ast.StmtNode{stmt}
	}
}

// foldExpr folds an expression bottom-up. BoolOp, Name, Constant, and
// ListNode are passed through unchanged: the pass this is grounded on
// never recurses into them either, so `[a+b, f()]` keeps its elements
// unfolded even when they are foldable standalone.
func (o *Optimizer) foldExpr(expr ast.ExprNode) ast.ExprNode {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		left := o.foldExpr(e.Left)
		right := o.foldExpr(e.Right)
		if lc, ok := left.(*ast.Constant); ok {
			if rc, ok := right.(*ast.Constant); ok {
				if folded, ok := foldBinary(lc, e.Op, rc, e.Loc); ok {
					return folded
				}
			}
		}
		return &ast.BinaryOp{Left: left, Op: e.Op, Right: right, Loc: e.Loc}

	case *ast.UnaryOp:
		operand := o.foldExpr(e.Operand)
		if c, ok := operand.(*ast.Constant); ok {
			if folded, ok := foldUnary(c, e.Op, e.Loc); ok {
				return folded
			}
		}
		return &ast.UnaryOp{Op: e.Op, Operand: operand, Loc: e.Loc}

	case *ast.Compare:
		left := o.foldExpr(e.Left)
		comparators := make([]ast.ExprNode, len(e.Comparators))
		allConst := true
		if _, ok := left.(*ast.Constant); !ok {
			allConst = false
		}
		for i, c := range e.Comparators {
			folded := o.foldExpr(c)
			comparators[i] = folded
			if _, ok := folded.(*ast.Constant); !ok {
				allConst = false
			}
		}
		if allConst && len(e.Ops) == 1 {
			lc := left.(*ast.Constant)
			rc := comparators[0].(*ast.Constant)
			if folded, ok := foldCompare(lc, e.Ops[0], rc, e.Loc); ok {
				return folded
			}
		}
		return &ast.Compare{Left: left, Ops: e.Ops, Comparators: comparators, Loc: e.Loc}

	case *ast.Call:
		args := make([]ast.ExprNode, len(e.Args))
		allConst := isPureBuiltin(e.Func)
		for i, a := range e.Args {
			folded := o.foldExpr(a)
			args[i] = folded
			if _, ok := folded.(*ast.Constant); !ok {
				allConst = false
			}
		}
		if allConst {
			consts := make([]*ast.Constant, len(args))
			for i, a := range args {
				consts[i] = a.(*ast.Constant)
			}
			if folded, ok := foldBuiltinCall(e.Func, consts, e.Loc); ok {
				return folded
			}
		}
		return &ast.Call{Func: e.Func, Args: args, Loc: e.Loc}

	default:
		return expr
	}
}

func truthy(c *ast.Constant) bool {
	switch c.Kind {
	case ast.ConstNull:
		return false
	case ast.ConstBool:
		return c.Bool
	case ast.ConstInt:
		return c.Int != 0
	case ast.ConstFloat:
		return c.Float != 0
	case ast.ConstString:
		return c.String != ""
	}
	return false
}
