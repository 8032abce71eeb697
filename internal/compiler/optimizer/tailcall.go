package optimizer

import "github.com/carbon-lang/carbonc/internal/compiler/ast"

// optimizeTailCallsModule rewrites self-recursive functions whose
// recursive calls appear only in tail position (Return(Call(self, ...)))
// into an equivalent loop. Functions outside the detected recursion set
// are left untouched.
func (o *Optimizer) optimizeTailCallsModule(module *ast.Module) *ast.Module {
	body := make([]ast.StmtNode, len(module.Body))
	for i, s := range module.Body {
		body[i] = o.tailStmt(s)
	}
	return &ast.Module{Body: body, Loc: module.Loc}
}

func (o *Optimizer) tailStmt(stmt ast.StmtNode) ast.StmtNode {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		if o.isRecursive(s.Name) && hasTailCall(s.Body, s.Name) {
			return convertTailCallsToLoop(s)
		}
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.tailStmt(b)
		}
		return &ast.FunctionDef{Name: s.Name, Args: s.Args, Body: body, Loc: s.Loc}

	case *ast.If:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.tailStmt(b)
		}
		orelse := make([]ast.StmtNode, len(s.Orelse))
		for i, b := range s.Orelse {
			orelse[i] = o.tailStmt(b)
		}
		return &ast.If{Test: s.Test, Body: body, Orelse: orelse, Loc: s.Loc}

	case *ast.For:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.tailStmt(b)
		}
		return &ast.For{Target: s.Target, Iter: s.Iter, Body: body, Loc: s.Loc}

	case *ast.While:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.tailStmt(b)
		}
		return &ast.While{Test: s.Test, Body: body, Loc: s.Loc}

	default:
		return stmt
	}
}

// hasTailCall reports whether any statement in body is a Return whose
// value is a direct self call. Only the top level of body is checked;
// a tail call nested inside an If is not detected, matching
// _find_tail_calls in the reference implementation this pass is
// grounded on.
func hasTailCall(body []ast.StmtNode, funcName string) bool {
	for _, stmt := range body {
		if isTailCallReturn(stmt, funcName) {
			return true
		}
	}
	return false
}

func isTailCallReturn(stmt ast.StmtNode, funcName string) bool {
	ret, ok := stmt.(*ast.Return)
	if !ok || ret.Value == nil {
		return false
	}
	call, ok := ret.Value.(*ast.Call)
	return ok && call.Func == funcName
}

// convertTailCallsToLoop rewrites fn's body into:
//
//	_p0_orig = p0
//	_p1_orig = p1
//	...
//	while true:
//	    <body, with every `return fn(a0, a1, ...)` replaced by>
//	    p0 = a0
//	    p1 = a1
//	    ...
//	    <the `return` falls through to the next loop iteration>
//
// Parameters are rebound in order, left to right, each by a plain
// assignment: an argument that reads a parameter already rebound earlier
// in the same sequence sees its new value, not the value it had at the
// recursive call.
func convertTailCallsToLoop(fn *ast.FunctionDef) *ast.FunctionDef {
	loc := fn.Loc
	newBody := make([]ast.StmtNode, 0, len(fn.Args)+1)

	for _, p := range fn.Args {
		newBody = append(newBody, &ast.Assignment{
			Target: "_" + p + "_orig",
			Value:  &ast.Name{ID: p, Loc: loc},
			Loc:    loc,
		})
	}

	loopBody := make([]ast.StmtNode, 0, len(fn.Body))
	for _, stmt := range fn.Body {
		loopBody = append(loopBody, rewriteTailCallStmt(stmt, fn.Name, fn.Args)...)
	}

	newBody = append(newBody, &ast.While{
		Test: ast.BoolConst(true, loc),
		Body: loopBody,
		Loc:  loc,
	})

	return &ast.FunctionDef{Name: fn.Name, Args: fn.Args, Body: newBody, Loc: fn.Loc}
}

// rewriteTailCallStmt replaces a top-level tail-call Return with the
// parameter rebinding sequence; every other statement, including an If
// (even one containing a tail call in one of its own branches), passes
// through unchanged. This matches the reference implementation's
// loop_body.append(stmt) fallback: only statements at the function
// body's own top level are ever rewritten.
func rewriteTailCallStmt(stmt ast.StmtNode, funcName string, params []string) []ast.StmtNode {
	if !isTailCallReturn(stmt, funcName) {
		return []ast.StmtNode{stmt}
	}

	call := stmt.(*ast.Return).Value.(*ast.Call)
	loc := stmt.Location()
	out := make([]ast.StmtNode, 0, len(params))
	for i, p := range params {
		var value ast.ExprNode = ast.NullConst(loc)
		if i < len(call.Args) {
			value = call.Args[i]
		}
		out = append(out, &ast.Assignment{Target: p, Value: value, Loc: loc})
	}
	return out
}
