// Package parser adapts the surface syntax tree (internal/syntax/ast)
// produced by the external syntactic collaborator onto the compiler's
// core AST (internal/compiler/ast). It is a thin, mostly mechanical
// 1:1 mapping, the one place in the pipeline allowed to know about
// both tree shapes.
package parser

import (
	cast "github.com/carbon-lang/carbonc/internal/compiler/ast"
	"github.com/carbon-lang/carbonc/internal/compiler/errors"
	sast "github.com/carbon-lang/carbonc/internal/syntax/ast"
)

// Adapter converts a surface Program into the compiler's core Module.
type Adapter struct{}

// NewAdapter constructs an Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// Convert maps the given surface Program onto a core ast.Module.
func (a *Adapter) Convert(prog *sast.Program) *cast.Module {
	body := make([]cast.StmtNode, 0, len(prog.Body))
	for _, stmt := range prog.Body {
		body = append(body, a.convertStmt(stmt))
	}
	return &cast.Module{Body: body, Loc: cast.SourceLocation{Line: 1, Column: 1}}
}

func loc(p sast.Pos) cast.SourceLocation {
	return cast.SourceLocation{Line: p.Line, Column: p.Column}
}

// convertStmt dispatches on the surface statement's concrete type. Any
// shape this adapter does not recognize falls through to a discarded
// null-constant expression statement rather than failing the whole
// compile. The surface parser is the layer responsible for rejecting
// malformed programs; by the time a tree reaches here, an unfamiliar
// node is treated the same way the original toolchain treats an
// unhandled Python ast node: silently as `None`.
func (a *Adapter) convertStmt(stmt sast.Stmt) cast.StmtNode {
	switch s := stmt.(type) {
	case *sast.AssignStmt:
		return &cast.Assignment{
			Target: s.Target,
			Value:  a.convertExpr(s.Value),
			Loc:    loc(s.At),
		}
	case *sast.ExprStmt:
		return &cast.Expr{Value: a.convertExpr(s.Value), Loc: loc(s.At)}
	case *sast.IfStmt:
		return &cast.If{
			Test:   a.convertExpr(s.Test),
			Body:   a.convertStmts(s.Body),
			Orelse: a.convertStmts(s.Else),
			Loc:    loc(s.At),
		}
	case *sast.ForStmt:
		return &cast.For{
			Target: &cast.Name{ID: s.Target, Loc: loc(s.At)},
			Iter:   a.convertExpr(s.Iter),
			Body:   a.convertStmts(s.Body),
			Loc:    loc(s.At),
		}
	case *sast.WhileStmt:
		return &cast.While{
			Test: a.convertExpr(s.Test),
			Body: a.convertStmts(s.Body),
			Loc:  loc(s.At),
		}
	case *sast.FuncDefStmt:
		return &cast.FunctionDef{
			Name: s.Name,
			Args: append([]string(nil), s.Params...),
			Body: a.convertStmts(s.Body),
			Loc:  loc(s.At),
		}
	case *sast.ReturnStmt:
		var value cast.ExprNode
		if s.Value != nil {
			value = a.convertExpr(s.Value)
		}
		return &cast.Return{Value: value, Loc: loc(s.At)}
	default:
		return &cast.Expr{Value: cast.NullConst(cast.SourceLocation{}), Loc: cast.SourceLocation{}}
	}
}

func (a *Adapter) convertStmts(stmts []sast.Stmt) []cast.StmtNode {
	if stmts == nil {
		return nil
	}
	out := make([]cast.StmtNode, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, a.convertStmt(s))
	}
	return out
}

var binOps = map[string]cast.BinOp{
	"+": cast.ADD,
	"-": cast.SUB,
	"*": cast.MUL,
	"/": cast.DIV,
	"%": cast.MOD,
}

var cmpOps = map[string]cast.CmpOp{
	"==": cast.EQ,
	"!=": cast.NE,
	"<":  cast.LT,
	"<=": cast.LE,
	">":  cast.GT,
	">=": cast.GE,
}

// convertExpr dispatches on the surface expression's concrete type,
// falling through to Constant(null) for anything unrecognized, the
// same leniency convertStmt applies.
func (a *Adapter) convertExpr(expr sast.Expr) cast.ExprNode {
	switch e := expr.(type) {
	case *sast.BinaryExpr:
		op, ok := binOps[e.Op]
		if !ok {
			return cast.NullConst(loc(e.At))
		}
		return &cast.BinaryOp{
			Left:  a.convertExpr(e.Left),
			Op:    op,
			Right: a.convertExpr(e.Right),
			Loc:   loc(e.At),
		}
	case *sast.UnaryExpr:
		var op cast.UnOp
		switch e.Op {
		case "not":
			op = cast.NOT
		case "-":
			op = cast.NEG
		default:
			return cast.NullConst(loc(e.At))
		}
		return &cast.UnaryOp{Op: op, Operand: a.convertExpr(e.Operand), Loc: loc(e.At)}
	case *sast.CompareExpr:
		ops := make([]cast.CmpOp, 0, len(e.Ops))
		for _, o := range e.Ops {
			mapped, ok := cmpOps[o]
			if !ok {
				mapped = cast.EQ
			}
			ops = append(ops, mapped)
		}
		comparators := make([]cast.ExprNode, 0, len(e.Comparators))
		for _, c := range e.Comparators {
			comparators = append(comparators, a.convertExpr(c))
		}
		return &cast.Compare{
			Left:        a.convertExpr(e.Left),
			Ops:         ops,
			Comparators: comparators,
			Loc:         loc(e.At),
		}
	case *sast.BoolOpExpr:
		var kind cast.BoolOpKind
		switch e.Op {
		case "and":
			kind = cast.AND
		case "or":
			kind = cast.OR
		default:
			kind = cast.AND
		}
		values := make([]cast.ExprNode, 0, len(e.Values))
		for _, v := range e.Values {
			values = append(values, a.convertExpr(v))
		}
		return &cast.BoolOp{Op: kind, Values: values, Loc: loc(e.At)}
	case *sast.CallExpr:
		args := make([]cast.ExprNode, 0, len(e.Args))
		for _, arg := range e.Args {
			args = append(args, a.convertExpr(arg))
		}
		return &cast.Call{Func: e.Func, Args: args, Loc: loc(e.At)}
	case *sast.NameExpr:
		return &cast.Name{ID: e.ID, Loc: loc(e.At)}
	case *sast.ConstExpr:
		l := loc(e.At)
		switch e.Kind {
		case sast.LitInt:
			return cast.IntConst(e.Int, l)
		case sast.LitFloat:
			return cast.FloatConst(e.Float, l)
		case sast.LitBool:
			return cast.BoolConst(e.Bool, l)
		case sast.LitString:
			return cast.StringConst(e.String, l)
		default:
			return cast.NullConst(l)
		}
	case *sast.ListExpr:
		elts := make([]cast.ExprNode, 0, len(e.Elts))
		for _, elt := range e.Elts {
			elts = append(elts, a.convertExpr(elt))
		}
		return &cast.ListNode{Elts: elts, Loc: loc(e.At)}
	default:
		return cast.NullConst(cast.SourceLocation{})
	}
}

// ConvertOrError is a convenience wrapper used by the driver: surface
// parse errors are already reported by internal/syntax/parser, so this
// only ever returns a compiler error if given a nil program.
func ConvertOrError(prog *sast.Program) (*cast.Module, error) {
	if prog == nil {
		return nil, errors.NewParseError(errors.ErrSyntax, "no program to convert", cast.SourceLocation{})
	}
	return NewAdapter().Convert(prog), nil
}
