package codegen

import (
	"encoding/binary"
	"testing"

	"github.com/carbon-lang/carbonc/internal/compiler/ast"
)

func tloc() ast.SourceLocation { return ast.SourceLocation{} }

func u64At(b []byte, offset int) uint64 {
	return binary.BigEndian.Uint64(b[offset : offset+8])
}

// S6: print(1); print(2) compiled without optimization produces exactly
// (JMP main_start), LOAD_INT 1, PRINT, LOAD_INT 2, PRINT.
func TestGenerateTwoPrintsNoOptimize(t *testing.T) {
	module := &ast.Module{
		Body: []ast.StmtNode{
			&ast.Expr{Value: &ast.Call{Func: "print", Args: []ast.ExprNode{ast.IntConst(1, tloc())}, Loc: tloc()}, Loc: tloc()},
			&ast.Expr{Value: &ast.Call{Func: "print", Args: []ast.ExprNode{ast.IntConst(2, tloc())}, Loc: tloc()}, Loc: tloc()},
		},
		Loc: tloc(),
	}

	out, err := Generate(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if OpCode(out[0]) != JMP {
		t.Fatalf("expected leading JMP, got opcode %d", out[0])
	}
	mainStart := u64At(out, 1)
	if mainStart != 9 {
		t.Fatalf("expected main_start 9 (no functions), got %d", mainStart)
	}

	i := int(mainStart)
	if OpCode(out[i]) != LOAD_INT {
		t.Fatalf("expected LOAD_INT at %d, got %d", i, out[i])
	}
	if u64At(out, i+1) != 1 {
		t.Fatalf("expected operand 1")
	}
	i += 9
	if OpCode(out[i]) != PRINT {
		t.Fatalf("expected PRINT after first LOAD_INT")
	}
	i++
	if OpCode(out[i]) != LOAD_INT {
		t.Fatalf("expected second LOAD_INT")
	}
	if u64At(out, i+1) != 2 {
		t.Fatalf("expected operand 2")
	}
	i += 9
	if OpCode(out[i]) != PRINT {
		t.Fatalf("expected trailing PRINT")
	}
	i++
	if i != len(out) {
		t.Fatalf("expected no trailing bytes, got %d remaining", len(out)-i)
	}
}

// S1: x = 2 + 3 (pre-folded by the optimizer); print(x). Expect
// LOAD_INT 5, STORE "x", LOAD_VAR "x", PRINT. No ADD opcode present.
func TestGenerateFoldedAssignmentThenPrint(t *testing.T) {
	module := &ast.Module{
		Body: []ast.StmtNode{
			&ast.Assignment{Target: "x", Value: ast.IntConst(5, tloc()), Loc: tloc()},
			&ast.Expr{Value: &ast.Call{Func: "print", Args: []ast.ExprNode{&ast.Name{ID: "x", Loc: tloc()}}, Loc: tloc()}, Loc: tloc()},
		},
		Loc: tloc(),
	}

	out, err := Generate(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Skip the entry JMP and its 8-byte operand: main_start is 9 here,
	// and that operand byte shares ADD's numeric value.
	for _, b := range out[9:] {
		if OpCode(b) == ADD {
			t.Fatalf("did not expect an ADD opcode in folded output")
		}
	}

	mainStart := int(u64At(out, 1))
	i := mainStart
	if OpCode(out[i]) != LOAD_INT || u64At(out, i+1) != 5 {
		t.Fatalf("expected LOAD_INT 5 at start of main")
	}
	i += 9
	if OpCode(out[i]) != STORE {
		t.Fatalf("expected STORE after LOAD_INT")
	}
	i++
	nameLen := int(out[i])
	i++
	if string(out[i:i+nameLen]) != "x" {
		t.Fatalf("expected STORE target x")
	}
	i += nameLen
	if OpCode(out[i]) != LOAD_VAR {
		t.Fatalf("expected LOAD_VAR x")
	}
}

// S5: while False: print(1) (pre-collapsed by DCE to no statements)
// compiles to an empty main region after the entry jump.
func TestGenerateDeadWhileProducesNoLoopCode(t *testing.T) {
	module := &ast.Module{Body: []ast.StmtNode{}, Loc: tloc()}

	out, err := Generate(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 9 {
		t.Fatalf("expected only the entry JMP, got %d bytes", len(out))
	}
}

// Function prologue/epilogue symmetry (testable property 5): k STORE
// instructions in reverse parameter order, then LOAD_NULL, RET at the end.
func TestGenerateFunctionPrologueAndEpilogue(t *testing.T) {
	fn := &ast.FunctionDef{
		Name: "add",
		Args: []string{"a", "b"},
		Body: []ast.StmtNode{
			&ast.Return{
				Value: &ast.BinaryOp{Left: &ast.Name{ID: "a", Loc: tloc()}, Op: ast.ADD, Right: &ast.Name{ID: "b", Loc: tloc()}, Loc: tloc()},
				Loc:   tloc(),
			},
		},
		Loc: tloc(),
	}
	module := &ast.Module{Body: []ast.StmtNode{fn}, Loc: tloc()}

	out, err := Generate(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	i := 9 // function starts right after the entry JMP
	if OpCode(out[i]) != STORE {
		t.Fatalf("expected first STORE (reverse param order: b)")
	}
	i++
	l := int(out[i])
	i++
	if string(out[i:i+l]) != "b" {
		t.Fatalf("expected first STORE target b, reverse order")
	}
	i += l
	if OpCode(out[i]) != STORE {
		t.Fatalf("expected second STORE (a)")
	}
	i++
	l = int(out[i])
	i++
	if string(out[i:i+l]) != "a" {
		t.Fatalf("expected second STORE target a")
	}

	mainStart := int(u64At(out, 1))
	if OpCode(out[mainStart-1]) != RET || OpCode(out[mainStart-2]) != LOAD_NULL {
		t.Fatalf("expected LOAD_NULL, RET immediately before main_start")
	}
}

// Jump validity (testable property 3): an If with both branches patches
// its JMP_IF_FALSE operand to a real, in-range offset.
func TestGenerateIfPatchesValidOffset(t *testing.T) {
	ifStmt := &ast.If{
		Test: ast.BoolConst(true, tloc()),
		Body: []ast.StmtNode{
			&ast.Expr{Value: &ast.Call{Func: "print", Args: []ast.ExprNode{ast.IntConst(1, tloc())}, Loc: tloc()}, Loc: tloc()},
		},
		Orelse: []ast.StmtNode{
			&ast.Expr{Value: &ast.Call{Func: "print", Args: []ast.ExprNode{ast.IntConst(2, tloc())}, Loc: tloc()}, Loc: tloc()},
		},
		Loc: tloc(),
	}
	module := &ast.Module{Body: []ast.StmtNode{ifStmt}, Loc: tloc()}

	out, err := Generate(module)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mainStart := int(u64At(out, 1))
	// LOAD_BOOL true
	i := mainStart + 2
	if OpCode(out[i]) != JMP_IF_FALSE {
		t.Fatalf("expected JMP_IF_FALSE at %d, got %d", i, out[i])
	}
	target := u64At(out, i+1)
	if target == 0 || target >= uint64(len(out)) {
		t.Fatalf("expected JMP_IF_FALSE target in range, got %d (len %d)", target, len(out))
	}
}
