package optimizer

import "github.com/carbon-lang/carbonc/internal/compiler/ast"

// collectFunctions walks the whole tree and records every FunctionDef
// by name; a duplicate name overwrites the earlier definition.
func (o *Optimizer) collectFunctions(stmts []ast.StmtNode) {
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.FunctionDef:
			o.functionDefs[s.Name] = s
			o.collectFunctions(s.Body)
		case *ast.If:
			o.collectFunctions(s.Body)
			o.collectFunctions(s.Orelse)
		case *ast.For:
			o.collectFunctions(s.Body)
		case *ast.While:
			o.collectFunctions(s.Body)
		case *ast.Module:
			o.collectFunctions(s.Body)
		}
	}
}

// detectRecursiveFunctions scans every top-level FunctionDef's body for
// calls back to itself, recording the set of self-recursive names.
func (o *Optimizer) detectRecursiveFunctions(module *ast.Module) {
	for _, stmt := range module.Body {
		if fd, ok := stmt.(*ast.FunctionDef); ok {
			o.findRecursiveCalls(fd.Body, fd.Name)
		}
	}
}

// findRecursiveCalls narrowly walks a statement list looking for Calls
// to currentFunc. The walk only descends into If/For/While bodies,
// Return values, and BinaryOp operands. It deliberately does not
// inspect Assignment values, Compare, BoolOp, or call arguments, so a
// self-call buried in those shapes goes undetected. This mirrors the
// narrow recursion scan the rest of the pipeline (inlining, tail-call
// conversion) is built to tolerate.
func (o *Optimizer) findRecursiveCalls(stmts []ast.StmtNode, currentFunc string) {
	for _, stmt := range stmts {
		o.findRecursiveCallsInStmt(stmt, currentFunc)
	}
}

func (o *Optimizer) findRecursiveCallsInStmt(stmt ast.StmtNode, currentFunc string) {
	switch s := stmt.(type) {
	case *ast.If:
		o.findRecursiveCalls(s.Body, currentFunc)
		o.findRecursiveCalls(s.Orelse, currentFunc)
	case *ast.For:
		o.findRecursiveCalls(s.Body, currentFunc)
	case *ast.While:
		o.findRecursiveCalls(s.Body, currentFunc)
	case *ast.Return:
		if s.Value != nil {
			o.findRecursiveCallsInExpr(s.Value, currentFunc)
		}
	case *ast.Module:
		o.findRecursiveCalls(s.Body, currentFunc)
	}
}

func (o *Optimizer) findRecursiveCallsInExpr(expr ast.ExprNode, currentFunc string) {
	switch e := expr.(type) {
	case *ast.Call:
		if e.Func == currentFunc {
			o.recursiveFunctions[currentFunc] = struct{}{}
		}
	case *ast.BinaryOp:
		o.findRecursiveCallsInExpr(e.Left, currentFunc)
		o.findRecursiveCallsInExpr(e.Right, currentFunc)
	}
}

// isRecursive reports whether name was recorded as self-recursive.
func (o *Optimizer) isRecursive(name string) bool {
	_, ok := o.recursiveFunctions[name]
	return ok
}
