package optimizer

import (
	"math"

	"github.com/carbon-lang/carbonc/internal/compiler/ast"
)

func isNumeric(c *ast.Constant) bool {
	return c.Kind == ast.ConstInt || c.Kind == ast.ConstFloat
}

func numericValue(c *ast.Constant) float64 {
	if c.Kind == ast.ConstInt {
		return float64(c.Int)
	}
	return c.Float
}

// foldBinary evaluates a binary op over two constants using host
// arithmetic. Integer ADD/SUB/MUL/MOD stay integral; DIV always
// promotes to float (true division). A zero right-hand side on
// DIV/MOD leaves the expression unfolded rather than failing.
func foldBinary(left *ast.Constant, op ast.BinOp, right *ast.Constant, loc ast.SourceLocation) (*ast.Constant, bool) {
	if !isNumeric(left) || !isNumeric(right) {
		return nil, false
	}
	bothInt := left.Kind == ast.ConstInt && right.Kind == ast.ConstInt
	lv, rv := numericValue(left), numericValue(right)

	switch op {
	case ast.ADD:
		if bothInt {
			return ast.IntConst(left.Int+right.Int, loc), true
		}
		return ast.FloatConst(lv+rv, loc), true
	case ast.SUB:
		if bothInt {
			return ast.IntConst(left.Int-right.Int, loc), true
		}
		return ast.FloatConst(lv-rv, loc), true
	case ast.MUL:
		if bothInt {
			return ast.IntConst(left.Int*right.Int, loc), true
		}
		return ast.FloatConst(lv*rv, loc), true
	case ast.DIV:
		if rv == 0 {
			return nil, false
		}
		return ast.FloatConst(lv/rv, loc), true
	case ast.MOD:
		if bothInt {
			if right.Int == 0 {
				return nil, false
			}
			return ast.IntConst(left.Int%right.Int, loc), true
		}
		if rv == 0 {
			return nil, false
		}
		return ast.FloatConst(math.Mod(lv, rv), loc), true
	}
	return nil, false
}

func foldUnary(operand *ast.Constant, op ast.UnOp, loc ast.SourceLocation) (*ast.Constant, bool) {
	switch op {
	case ast.NOT:
		return ast.BoolConst(!truthy(operand), loc), true
	case ast.NEG:
		switch operand.Kind {
		case ast.ConstInt:
			return ast.IntConst(-operand.Int, loc), true
		case ast.ConstFloat:
			return ast.FloatConst(-operand.Float, loc), true
		}
	}
	return nil, false
}

func foldCompare(left *ast.Constant, op ast.CmpOp, right *ast.Constant, loc ast.SourceLocation) (*ast.Constant, bool) {
	if isNumeric(left) && isNumeric(right) {
		return compareNumeric(numericValue(left), numericValue(right), op, loc)
	}
	if left.Kind != right.Kind {
		switch op {
		case ast.EQ:
			return ast.BoolConst(false, loc), true
		case ast.NE:
			return ast.BoolConst(true, loc), true
		}
		return nil, false
	}
	switch left.Kind {
	case ast.ConstBool:
		return compareOrdered(boolRank(left.Bool), boolRank(right.Bool), op, loc)
	case ast.ConstString:
		return compareStrings(left.String, right.String, op, loc)
	case ast.ConstNull:
		switch op {
		case ast.EQ:
			return ast.BoolConst(true, loc), true
		case ast.NE:
			return ast.BoolConst(false, loc), true
		}
	}
	return nil, false
}

func boolRank(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func compareNumeric(l, r float64, op ast.CmpOp, loc ast.SourceLocation) (*ast.Constant, bool) {
	return compareOrdered(l, r, op, loc)
}

func compareOrdered(l, r float64, op ast.CmpOp, loc ast.SourceLocation) (*ast.Constant, bool) {
	switch op {
	case ast.EQ:
		return ast.BoolConst(l == r, loc), true
	case ast.NE:
		return ast.BoolConst(l != r, loc), true
	case ast.LT:
		return ast.BoolConst(l < r, loc), true
	case ast.LE:
		return ast.BoolConst(l <= r, loc), true
	case ast.GT:
		return ast.BoolConst(l > r, loc), true
	case ast.GE:
		return ast.BoolConst(l >= r, loc), true
	}
	return nil, false
}

func compareStrings(l, r string, op ast.CmpOp, loc ast.SourceLocation) (*ast.Constant, bool) {
	switch op {
	case ast.EQ:
		return ast.BoolConst(l == r, loc), true
	case ast.NE:
		return ast.BoolConst(l != r, loc), true
	case ast.LT:
		return ast.BoolConst(l < r, loc), true
	case ast.LE:
		return ast.BoolConst(l <= r, loc), true
	case ast.GT:
		return ast.BoolConst(l > r, loc), true
	case ast.GE:
		return ast.BoolConst(l >= r, loc), true
	}
	return nil, false
}

func isPureBuiltin(name string) bool {
	switch name {
	case "len", "abs", "min", "max":
		return true
	}
	return false
}

// foldBuiltinCall evaluates a recognized pure builtin over already
// constant-folded arguments.
func foldBuiltinCall(name string, args []*ast.Constant, loc ast.SourceLocation) (*ast.Constant, bool) {
	switch name {
	case "len":
		if len(args) != 1 || args[0].Kind != ast.ConstString {
			return nil, false
		}
		return ast.IntConst(int64(len([]rune(args[0].String))), loc), true

	case "abs":
		if len(args) != 1 {
			return nil, false
		}
		switch args[0].Kind {
		case ast.ConstInt:
			v := args[0].Int
			if v < 0 {
				v = -v
			}
			return ast.IntConst(v, loc), true
		case ast.ConstFloat:
			v := args[0].Float
			if v < 0 {
				v = -v
			}
			return ast.FloatConst(v, loc), true
		}
		return nil, false

	case "min", "max":
		if len(args) == 0 {
			return nil, false
		}
		for _, a := range args {
			if !isNumeric(a) {
				return nil, false
			}
		}
		bestIsInt := args[0].Kind == ast.ConstInt
		bestInt := args[0].Int
		best := numericValue(args[0])
		for _, a := range args[1:] {
			v := numericValue(a)
			take := false
			if name == "min" {
				take = v < best
			} else {
				take = v > best
			}
			if take {
				best = v
				bestIsInt = a.Kind == ast.ConstInt
				bestInt = a.Int
			}
		}
		if bestIsInt {
			return ast.IntConst(bestInt, loc), true
		}
		return ast.FloatConst(best, loc), true
	}
	return nil, false
}
