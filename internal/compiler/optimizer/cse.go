package optimizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbon-lang/carbonc/internal/compiler/ast"
)

// eliminateCommonSubexpressionsModule performs CSE across the
// top-level module body only: a single fingerprint→binding-name map is
// threaded through the statement list. Nested blocks (If/For/While
// bodies, FunctionDef bodies) are still walked and rebuilt, but each
// gets no memoization of its own; only the outermost linear scan
// deduplicates.
func (o *Optimizer) eliminateCommonSubexpressionsModule(module *ast.Module) *ast.Module {
	exprMap := make(map[string]string)
	newBody := make([]ast.StmtNode, 0, len(module.Body))

	for _, stmt := range module.Body {
		assign, ok := stmt.(*ast.Assignment)
		if !ok {
			newBody = append(newBody, o.cseStmt(stmt))
			continue
		}
		if isConstOrName(assign.Value) {
			newBody = append(newBody, o.cseStmt(stmt))
			continue
		}

		fingerprint := hashExpr(assign.Value)
		if priorTarget, seen := exprMap[fingerprint]; seen {
			newBody = append(newBody, &ast.Assignment{
				Target: assign.Target,
				Value:  &ast.Name{ID: priorTarget, Loc: assign.Loc},
				Loc:    assign.Loc,
			})
			continue
		}

		newBody = append(newBody, o.cseStmt(stmt))
		exprMap[fingerprint] = assign.Target
	}

	return &ast.Module{Body: newBody, Loc: module.Loc}
}

func isConstOrName(e ast.ExprNode) bool {
	switch e.(type) {
	case *ast.Constant, *ast.Name:
		return true
	}
	return false
}

// cseStmt recurses into a statement's substructure without performing
// any deduplication of its own; dedup happens only in the top-level
// module loop above.
func (o *Optimizer) cseStmt(stmt ast.StmtNode) ast.StmtNode {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.cseStmt(b)
		}
		return &ast.FunctionDef{Name: s.Name, Args: s.Args, Body: body, Loc: s.Loc}

	case *ast.If:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.cseStmt(b)
		}
		orelse := make([]ast.StmtNode, len(s.Orelse))
		for i, b := range s.Orelse {
			orelse[i] = o.cseStmt(b)
		}
		return &ast.If{Test: o.cseExpr(s.Test), Body: body, Orelse: orelse, Loc: s.Loc}

	case *ast.For:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.cseStmt(b)
		}
		return &ast.For{Target: s.Target, Iter: o.cseExpr(s.Iter), Body: body, Loc: s.Loc}

	case *ast.While:
		body := make([]ast.StmtNode, len(s.Body))
		for i, b := range s.Body {
			body[i] = o.cseStmt(b)
		}
		return &ast.While{Test: o.cseExpr(s.Test), Body: body, Loc: s.Loc}

	case *ast.Assignment:
		return &ast.Assignment{Target: s.Target, Value: o.cseExpr(s.Value), Loc: s.Loc}

	case *ast.Expr:
		return &ast.Expr{Value: o.cseExpr(s.Value), Loc: s.Loc}

	case *ast.Return:
		if s.Value == nil {
			return s
		}
		return &ast.Return{Value: o.cseExpr(s.Value), Loc: s.Loc}

	default:
		return stmt
	}
}

// cseExpr only recurses into BinaryOp and Call, the same narrow
// surface the pass this is grounded on walks. Compare, BoolOp, UnaryOp,
// and ListNode pass through unchanged.
func (o *Optimizer) cseExpr(expr ast.ExprNode) ast.ExprNode {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		return &ast.BinaryOp{Left: o.cseExpr(e.Left), Op: e.Op, Right: o.cseExpr(e.Right), Loc: e.Loc}
	case *ast.Call:
		args := make([]ast.ExprNode, len(e.Args))
		for i, a := range e.Args {
			args[i] = o.cseExpr(a)
		}
		return &ast.Call{Func: e.Func, Args: args, Loc: e.Loc}
	default:
		return expr
	}
}

// hashExpr renders a canonical fingerprint for an expression, used as
// the CSE dedup key. Two syntactically identical expressions produce
// identical fingerprints.
func hashExpr(expr ast.ExprNode) string {
	switch e := expr.(type) {
	case *ast.BinaryOp:
		return "(" + hashExpr(e.Left) + string(e.Op) + hashExpr(e.Right) + ")"
	case *ast.Call:
		parts := make([]string, len(e.Args))
		for i, a := range e.Args {
			parts[i] = hashExpr(a)
		}
		return e.Func + "(" + strings.Join(parts, ",") + ")"
	case *ast.Name:
		return e.ID
	case *ast.Constant:
		return constantFingerprint(e)
	default:
		return fmt.Sprintf("%T", expr)
	}
}

func constantFingerprint(c *ast.Constant) string {
	switch c.Kind {
	case ast.ConstInt:
		return strconv.FormatInt(c.Int, 10)
	case ast.ConstFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case ast.ConstBool:
		return strconv.FormatBool(c.Bool)
	case ast.ConstString:
		return strconv.Quote(c.String)
	default:
		return "null"
	}
}
