package codegen

import "github.com/carbon-lang/carbonc/internal/compiler/ast"

// builtinFuncs are call targets with dedicated emission rules rather
// than a CALL to a user-defined address.
var builtinFuncs = map[string]bool{
	"print": true,
	"input": true,
	"len":   true,
	"int":   true,
	"float": true,
	"range": true,
}

// Generator lowers a Module into the VM's linear bytecode stream.
type Generator struct {
	buf           *buffer
	functionAddrs map[string]uint64
	knownFuncs    map[string]*ast.FunctionDef
}

// New constructs a Generator ready to emit a single Module.
func New() *Generator {
	return &Generator{
		buf:           newBuffer(),
		functionAddrs: make(map[string]uint64),
		knownFuncs:    make(map[string]*ast.FunctionDef),
	}
}

// Generate lowers module into bytecode following the fixed prologue and
// per-statement emission rules: a leading JMP placeholder, every
// FunctionDef's prologue/body/epilogue in declaration order, the
// back-patched jump to main, then every remaining top-level statement.
func Generate(module *ast.Module) ([]byte, error) {
	g := New()
	return g.generate(module)
}

func (g *Generator) generate(module *ast.Module) ([]byte, error) {
	for _, stmt := range module.Body {
		if fd, ok := stmt.(*ast.FunctionDef); ok {
			g.knownFuncs[fd.Name] = fd
		}
	}

	entrySite := g.buf.reserveJumpOperand(JMP)

	for _, stmt := range module.Body {
		fd, ok := stmt.(*ast.FunctionDef)
		if !ok {
			continue
		}
		g.functionAddrs[fd.Name] = g.buf.offset()
		if err := g.emitFunctionBody(fd); err != nil {
			return nil, err
		}
	}

	mainStart := g.buf.offset()
	g.buf.patch(entrySite, mainStart)

	for _, stmt := range module.Body {
		if _, ok := stmt.(*ast.FunctionDef); ok {
			continue
		}
		if err := g.emitStmt(stmt); err != nil {
			return nil, err
		}
	}

	return g.buf.bytes, nil
}

// emitFunctionBody emits a FunctionDef's prologue (reverse-order STORE
// per parameter), body, and epilogue (LOAD_NULL, RET).
func (g *Generator) emitFunctionBody(fd *ast.FunctionDef) error {
	for i := len(fd.Args) - 1; i >= 0; i-- {
		g.buf.emitOp(STORE)
		if err := g.buf.emitString(fd.Args[i]); err != nil {
			return err
		}
	}
	for _, stmt := range fd.Body {
		if err := g.emitStmt(stmt); err != nil {
			return err
		}
	}
	g.buf.emitOp(LOAD_NULL)
	g.buf.emitOp(RET)
	return nil
}
