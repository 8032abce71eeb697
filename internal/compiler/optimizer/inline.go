package optimizer

import "github.com/carbon-lang/carbonc/internal/compiler/ast"

const (
	maxInlineDepth     = 20
	maxCallInlineDepth = 10
)

// inlineFunctionsModule substitutes calls to small, non-recursive
// functions with their body expression wherever the shape allows it.
// inlinable funcs are computed once up front since neither the
// recursion set nor function_defs change during this pass.
func (o *Optimizer) inlineFunctionsModule(module *ast.Module, depth int) *ast.Module {
	if depth > maxInlineDepth {
		return module
	}
	o.inlinable = o.collectInlinableFuncs()
	body := make([]ast.StmtNode, len(module.Body))
	for i, s := range module.Body {
		body[i] = o.inlineStmt(s, depth+1)
	}
	return &ast.Module{Body: body, Loc: module.Loc}
}

// collectInlinableFuncs returns every function that is not
// self-recursive and whose body is at most 5 statements long.
func (o *Optimizer) collectInlinableFuncs() map[string]*ast.FunctionDef {
	out := make(map[string]*ast.FunctionDef)
	for name, fd := range o.functionDefs {
		if o.isRecursive(name) {
			continue
		}
		if len(fd.Body) <= 5 {
			out[name] = fd
		}
	}
	return out
}

func (o *Optimizer) inlineStmt(stmt ast.StmtNode, depth int) ast.StmtNode {
	if depth > maxInlineDepth {
		return stmt
	}
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.inlineStmt(b, depth+1)
		}
		return &ast.FunctionDef{Name: s.Name, Args: s.Args, Body: body, Loc: s.Loc}

	case *ast.If:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.inlineStmt(b, depth+1)
		}
		orelse := make([]ast.StmtNode, len(s.Orelse))
		for i, b := range s.Orelse {
			orelse[i] = o.inlineStmt(b, depth+1)
		}
		return &ast.If{Test: o.inlineExpr(s.Test, depth+1), Body: body, Orelse: orelse, Loc: s.Loc}

	case *ast.For:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.inlineStmt(b, depth+1)
		}
		return &ast.For{Target: s.Target, Iter: o.inlineExpr(s.Iter, depth+1), Body: body, Loc: s.Loc}

	case *ast.While:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.inlineStmt(b, depth+1)
		}
		return &ast.While{Test: o.inlineExpr(s.Test, depth+1), Body: body, Loc: s.Loc}

	case *ast.Assignment:
		return &ast.Assignment{Target: s.Target, Value: o.inlineExpr(s.Value, depth+1), Loc: s.Loc}

	case *ast.Expr:
		return &ast.Expr{Value: o.inlineExpr(s.Value, depth+1), Loc: s.Loc}

	case *ast.Return:
		if s.Value == nil {
			return s
		}
		return &ast.Return{Value: o.inlineExpr(s.Value, depth+1), Loc: s.Loc}

	default:
		return stmt
	}
}

// inlineExpr only recurses into Call and BinaryOp, matching the narrow
// expression surface the rest of this pass walks.
func (o *Optimizer) inlineExpr(expr ast.ExprNode, depth int) ast.ExprNode {
	if depth > maxInlineDepth {
		return expr
	}
	switch e := expr.(type) {
	case *ast.Call:
		fd, ok := o.inlinable[e.Func]
		if !ok || depth >= maxCallInlineDepth {
			args := make([]ast.ExprNode, len(e.Args))
			for i, a := range e.Args {
				args[i] = o.inlineExpr(a, depth+1)
			}
			return &ast.Call{Func: e.Func, Args: args, Loc: e.Loc}
		}

		processedArgs := make([]ast.ExprNode, len(e.Args))
		for i, a := range e.Args {
			processedArgs[i] = o.inlineExpr(a, depth+1)
		}

		if isEmptyOrNullReturn(fd.Body) {
			return &ast.Call{Func: e.Func, Args: processedArgs, Loc: e.Loc}
		}

		if len(fd.Body) == 1 {
			if ret, ok := fd.Body[0].(*ast.Return); ok && ret.Value != nil {
				returnExpr := ret.Value
				for i, argName := range fd.Args {
					if i < len(processedArgs) {
						returnExpr = replaceVarRefs(returnExpr, argName, processedArgs[i])
					}
				}
				return o.inlineExpr(returnExpr, depth+1)
			}
		}

		return &ast.Call{Func: e.Func, Args: processedArgs, Loc: e.Loc}

	case *ast.BinaryOp:
		return &ast.BinaryOp{Left: o.inlineExpr(e.Left, depth+1), Op: e.Op, Right: o.inlineExpr(e.Right, depth+1), Loc: e.Loc}

	default:
		return expr
	}
}

func isEmptyOrNullReturn(body []ast.StmtNode) bool {
	if len(body) == 0 {
		return true
	}
	if len(body) != 1 {
		return false
	}
	ret, ok := body[0].(*ast.Return)
	if !ok {
		return false
	}
	if ret.Value == nil {
		return true
	}
	if c, ok := ret.Value.(*ast.Constant); ok && c.IsNull() {
		return true
	}
	return false
}

// replaceVarRefs substitutes a parameter name with its bound argument
// expression. Like inlineExpr, this only descends through Name,
// BinaryOp, and Call, a shallow substitution sufficient for the
// single-return-statement bodies this pass inlines.
func replaceVarRefs(node ast.ExprNode, varName string, replacement ast.ExprNode) ast.ExprNode {
	switch n := node.(type) {
	case *ast.Name:
		if n.ID == varName {
			return replacement
		}
		return n
	case *ast.BinaryOp:
		return &ast.BinaryOp{
			Left:  replaceVarRefs(n.Left, varName, replacement),
			Op:    n.Op,
			Right: replaceVarRefs(n.Right, varName, replacement),
			Loc:   n.Loc,
		}
	case *ast.Call:
		args := make([]ast.ExprNode, len(n.Args))
		for i, a := range n.Args {
			args[i] = replaceVarRefs(a, varName, replacement)
		}
		return &ast.Call{Func: n.Func, Args: args, Loc: n.Loc}
	default:
		return node
	}
}
