package codegen

import (
	"github.com/carbon-lang/carbonc/internal/compiler/ast"
	"github.com/carbon-lang/carbonc/internal/compiler/errors"
)

// emitStmt lowers stmt, leaving the VM stack net-unchanged except where
// the node shape documents otherwise (STORE pops its one value).
func (g *Generator) emitStmt(stmt ast.StmtNode) error {
	switch s := stmt.(type) {
	case *ast.Assignment:
		if err := g.emitExpr(s.Value); err != nil {
			return err
		}
		g.buf.emitOp(STORE)
		return g.buf.emitString(s.Target)

	case *ast.Expr:
		if err := g.emitExpr(s.Value); err != nil {
			return err
		}
		if _, isCall := s.Value.(*ast.Call); !isCall {
			g.buf.emitOp(POP)
		}
		return nil

	case *ast.If:
		return g.emitIf(s)

	case *ast.While:
		return g.emitWhile(s)

	case *ast.For:
		return g.emitFor(s)

	case *ast.Return:
		if s.Value != nil {
			if err := g.emitExpr(s.Value); err != nil {
				return err
			}
		} else {
			g.buf.emitOp(LOAD_NULL)
		}
		g.buf.emitOp(RET)
		return nil

	case *ast.FunctionDef:
		// Nested FunctionDefs are not part of the module prologue scan,
		// which lays out top-level definitions only. The surface parser
		// accepts a def inside a block; no code is emitted for it here.
		return nil

	default:
		return nil
	}
}

func (g *Generator) emitIf(s *ast.If) error {
	if err := g.emitExpr(s.Test); err != nil {
		return err
	}
	p := g.buf.reserveJumpOperand(JMP_IF_FALSE)

	for _, stmt := range s.Body {
		if err := g.emitStmt(stmt); err != nil {
			return err
		}
	}

	if len(s.Orelse) > 0 {
		q := g.buf.reserveJumpOperand(JMP)
		g.buf.patch(p, g.buf.offset())
		for _, stmt := range s.Orelse {
			if err := g.emitStmt(stmt); err != nil {
				return err
			}
		}
		g.buf.patch(q, g.buf.offset())
	} else {
		g.buf.patch(p, g.buf.offset())
	}
	return nil
}

func (g *Generator) emitWhile(s *ast.While) error {
	loopStart := g.buf.offset()
	if err := g.emitExpr(s.Test); err != nil {
		return err
	}
	p := g.buf.reserveJumpOperand(JMP_IF_FALSE)

	for _, stmt := range s.Body {
		if err := g.emitStmt(stmt); err != nil {
			return err
		}
	}

	g.buf.emitOp(JMP)
	g.buf.emitU64(loopStart)
	g.buf.patch(p, g.buf.offset())
	return nil
}

// emitFor lowers the only supported iteration shape: `for target in
// range(s, e): body`. A synthetic counter variable drives the loop;
// target is rebound from the counter on every iteration.
func (g *Generator) emitFor(s *ast.For) error {
	call, ok := s.Iter.(*ast.Call)
	if !ok || call.Func != "range" || len(call.Args) != 2 {
		return unsupportedForShape(s)
	}

	counter := "__" + s.Target.ID + "_counter"

	if err := g.emitExpr(call.Args[0]); err != nil {
		return err
	}
	g.buf.emitOp(STORE)
	if err := g.buf.emitString(counter); err != nil {
		return err
	}

	loopStart := g.buf.offset()
	g.buf.emitOp(LOAD_VAR)
	if err := g.buf.emitString(counter); err != nil {
		return err
	}
	if err := g.emitExpr(call.Args[1]); err != nil {
		return err
	}
	g.buf.emitOp(GE)

	p := g.buf.reserveJumpOperand(JMP_IF_TRUE)

	g.buf.emitOp(LOAD_VAR)
	if err := g.buf.emitString(counter); err != nil {
		return err
	}
	g.buf.emitOp(STORE)
	if err := g.buf.emitString(s.Target.ID); err != nil {
		return err
	}

	for _, stmt := range s.Body {
		if err := g.emitStmt(stmt); err != nil {
			return err
		}
	}

	g.buf.emitOp(LOAD_VAR)
	if err := g.buf.emitString(counter); err != nil {
		return err
	}
	g.buf.emitOp(LOAD_INT)
	g.buf.emitI64(1)
	g.buf.emitOp(ADD)
	g.buf.emitOp(STORE)
	if err := g.buf.emitString(counter); err != nil {
		return err
	}
	g.buf.emitOp(JMP)
	g.buf.emitU64(loopStart)

	g.buf.patch(p, g.buf.offset())
	return nil
}

func unsupportedForShape(s *ast.For) error {
	return errors.NewCodeGenErrorAt(errors.ErrUnsupportedForShape, "for-loops only support `for x in range(s, e)`", s.Loc)
}
