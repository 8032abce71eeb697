package codegen

import (
	"github.com/carbon-lang/carbonc/internal/compiler/ast"
	"github.com/carbon-lang/carbonc/internal/compiler/errors"
)

var binOpcodes = map[ast.BinOp]OpCode{
	ast.ADD: ADD,
	ast.SUB: SUB,
	ast.MUL: MUL,
	ast.DIV: DIV,
	ast.MOD: MOD,
}

var cmpOpcodes = map[ast.CmpOp]OpCode{
	ast.EQ: EQ,
	ast.NE: NE,
	ast.LT: LT,
	ast.LE: LE,
	ast.GT: GT,
	ast.GE: GE,
}

var boolOpcodes = map[ast.BoolOpKind]OpCode{
	ast.AND: AND,
	ast.OR:  OR,
}

// emitExpr lowers expr so that it leaves exactly one value on the VM
// stack.
func (g *Generator) emitExpr(expr ast.ExprNode) error {
	switch e := expr.(type) {
	case *ast.Constant:
		return g.emitConstant(e)

	case *ast.Name:
		g.buf.emitOp(LOAD_VAR)
		return g.buf.emitString(e.ID)

	case *ast.BinaryOp:
		if err := g.emitExpr(e.Left); err != nil {
			return err
		}
		if err := g.emitExpr(e.Right); err != nil {
			return err
		}
		op, ok := binOpcodes[e.Op]
		if !ok {
			return errors.NewCodeGenErrorAt(errors.ErrUnknownNode, "unknown binary operator", e.Loc)
		}
		g.buf.emitOp(op)
		return nil

	case *ast.Compare:
		if err := g.emitExpr(e.Left); err != nil {
			return err
		}
		for i, comparator := range e.Comparators {
			if err := g.emitExpr(comparator); err != nil {
				return err
			}
			op, ok := cmpOpcodes[e.Ops[i]]
			if !ok {
				return errors.NewCodeGenErrorAt(errors.ErrUnknownNode, "unknown comparison operator", e.Loc)
			}
			g.buf.emitOp(op)
		}
		return nil

	case *ast.BoolOp:
		if err := g.emitExpr(e.Values[0]); err != nil {
			return err
		}
		op, ok := boolOpcodes[e.Op]
		if !ok {
			return errors.NewCodeGenErrorAt(errors.ErrUnknownNode, "unknown boolean operator", e.Loc)
		}
		for _, v := range e.Values[1:] {
			if err := g.emitExpr(v); err != nil {
				return err
			}
			g.buf.emitOp(op)
		}
		return nil

	case *ast.UnaryOp:
		if err := g.emitExpr(e.Operand); err != nil {
			return err
		}
		switch e.Op {
		case ast.NOT:
			g.buf.emitOp(NOT)
			return nil
		case ast.NEG:
			g.buf.emitOp(LOAD_INT)
			g.buf.emitI64(-1)
			g.buf.emitOp(MUL)
			return nil
		}
		return errors.NewCodeGenErrorAt(errors.ErrUnknownNode, "unknown unary operator", e.Loc)

	case *ast.Call:
		return g.emitCall(e)

	case *ast.ListNode:
		for _, elt := range e.Elts {
			if err := g.emitExpr(elt); err != nil {
				return err
			}
		}
		g.buf.emitOp(BUILD_LIST)
		g.buf.emitU64(uint64(len(e.Elts)))
		return nil

	default:
		return errors.NewCodeGenError(errors.ErrUnknownNode, "unsupported expression node")
	}
}

func (g *Generator) emitConstant(c *ast.Constant) error {
	switch c.Kind {
	case ast.ConstInt:
		g.buf.emitOp(LOAD_INT)
		g.buf.emitI64(c.Int)
		return nil
	case ast.ConstFloat:
		g.buf.emitOp(LOAD_FLOAT)
		g.buf.emitF64(c.Float)
		return nil
	case ast.ConstBool:
		g.buf.emitOp(LOAD_BOOL)
		g.buf.emitBool(c.Bool)
		return nil
	case ast.ConstString:
		g.buf.emitOp(LOAD_CONST)
		return g.buf.emitString(c.String)
	case ast.ConstNull:
		g.buf.emitOp(LOAD_NULL)
		return nil
	}
	return errors.NewCodeGenErrorAt(errors.ErrUnknownNode, "unknown constant kind", c.Loc)
}

func (g *Generator) emitCall(c *ast.Call) error {
	switch c.Func {
	case "print":
		if len(c.Args) == 0 {
			g.buf.emitOp(LOAD_CONST)
			if err := g.buf.emitString(""); err != nil {
				return err
			}
			g.buf.emitOp(PRINT)
			return nil
		}
		for _, a := range c.Args {
			if err := g.emitExpr(a); err != nil {
				return err
			}
		}
		g.buf.emitOp(PRINT)
		return nil

	case "input":
		g.buf.emitOp(STDIN)
		return nil

	case "len":
		if err := g.requireArgCount(c, 1); err != nil {
			return err
		}
		if err := g.emitExpr(c.Args[0]); err != nil {
			return err
		}
		g.buf.emitOp(ARRAY_LEN)
		return nil

	case "int":
		if err := g.requireArgCount(c, 1); err != nil {
			return err
		}
		if err := g.emitExpr(c.Args[0]); err != nil {
			return err
		}
		g.buf.emitOp(CAST_INT)
		return nil

	case "float":
		if err := g.requireArgCount(c, 1); err != nil {
			return err
		}
		if err := g.emitExpr(c.Args[0]); err != nil {
			return err
		}
		g.buf.emitOp(CAST_FLOAT)
		return nil

	case "range":
		return g.emitRangeAsList(c)

	default:
		fd, ok := g.knownFuncs[c.Func]
		if !ok {
			return errors.NewCodeGenErrorAt(errors.ErrUnknownNode, "call to unknown function "+c.Func, c.Loc)
		}
		for _, a := range c.Args {
			if err := g.emitExpr(a); err != nil {
				return err
			}
		}
		g.buf.emitOp(CALL)
		g.buf.emitU64(g.functionAddrs[fd.Name])
		return nil
	}
}

func (g *Generator) requireArgCount(c *ast.Call, n int) error {
	if len(c.Args) != n {
		return errors.NewCodeGenErrorAt(errors.ErrUnknownNode, "wrong argument count for "+c.Func, c.Loc)
	}
	return nil
}

// emitRangeAsList handles a bare range(...) call outside a for-loop
// target position: both bounds must be compile-time integer constants,
// folded eagerly into a BUILD_LIST of the materialized values.
func (g *Generator) emitRangeAsList(c *ast.Call) error {
	if len(c.Args) != 2 {
		return errors.NewCodeGenErrorAt(errors.ErrUnsupportedForShape, "range() outside for requires exactly two arguments", c.Loc)
	}
	startC, ok1 := c.Args[0].(*ast.Constant)
	endC, ok2 := c.Args[1].(*ast.Constant)
	if !ok1 || !ok2 || startC.Kind != ast.ConstInt || endC.Kind != ast.ConstInt {
		return errors.NewCodeGenErrorAt(errors.ErrUnsupportedForShape, "non-constant range() outside for is not supported", c.Loc)
	}
	for v := startC.Int; v < endC.Int; v++ {
		g.buf.emitOp(LOAD_INT)
		g.buf.emitI64(v)
	}
	count := int64(0)
	if endC.Int > startC.Int {
		count = endC.Int - startC.Int
	}
	g.buf.emitOp(BUILD_LIST)
	g.buf.emitU64(uint64(count))
	return nil
}

