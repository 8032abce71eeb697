package optimizer

import "github.com/carbon-lang/carbonc/internal/compiler/ast"

// eliminateDeadCodeModule drops statements that can never execute or
// never have an effect: dead-marker Expr(NullConst) statements left
// behind by earlier passes, and If statements whose test folds to a
// constant, which collapse into the taken branch's statements spliced
// directly into the parent list. Anything not specially handled here
// falls back through constant folding once more, matching the pass this
// is grounded on.
func (o *Optimizer) eliminateDeadCodeModule(module *ast.Module) *ast.Module {
	return &ast.Module{Body: o.dceStmts(module.Body), Loc: module.Loc}
}

func (o *Optimizer) dceStmts(stmts []ast.StmtNode) []ast.StmtNode {
	out := make([]ast.StmtNode, 0, len(stmts))
	for _, stmt := range stmts {
		out = append(out, o.dceStmt(stmt)...)
	}
	return out
}

func (o *Optimizer) dceStmt(stmt ast.StmtNode) []ast.StmtNode {
	if isDeadCode(stmt) {
		return nil
	}

	switch s := stmt.(type) {
	case *ast.If:
		test := o.foldExpr(s.Test)
		if c, ok := test.(*ast.Constant); ok {
			if truthy(c) {
				return o.dceStmts(s.Body)
			}
			return o.dceStmts(s.Orelse)
		}
		return []ast.StmtNode{&ast.If{
			Test:   test,
			Body:   o.dceStmts(s.Body),
			Orelse: o.dceStmts(s.Orelse),
			Loc:    s.Loc,
		}}

	case *ast.For:
		return []ast.StmtNode{&ast.For{Target: s.Target, Iter: s.Iter, Body: o.dceStmts(s.Body), Loc: s.Loc}}

	case *ast.While:
		return []ast.StmtNode{&ast.While{Test: s.Test, Body: o.dceStmts(s.Body), Loc: s.Loc}}

	case *ast.FunctionDef:
		return []ast.StmtNode{&ast.FunctionDef{Name: s.Name, Args: s.Args, Body: o.dceStmts(s.Body), Loc: s.Loc}}

	default:
		return o.foldStmt(stmt)
	}
}

// isDeadCode reports whether stmt is the dead-statement marker left
// behind by earlier passes: an Expr statement discarding a null
// constant.
func isDeadCode(stmt ast.StmtNode) bool {
	expr, ok := stmt.(*ast.Expr)
	if !ok {
		return false
	}
	c, ok := expr.Value.(*ast.Constant)
	return ok && c.IsNull()
}
