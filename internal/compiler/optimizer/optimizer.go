// Package optimizer implements the seven ordered AST-to-AST rewrite
// passes that run between the parser adapter and the bytecode
// generator. Passes are correctness-preserving and each returns a
// fresh tree; none mutate the nodes they are given.
package optimizer

import (
	"github.com/carbon-lang/carbonc/internal/compiler/ast"
)

// ProgressLogger is the narrow slice of logging behavior the optimizer
// needs, satisfied by the driver's structured logger. A nil
// ProgressLogger is valid: Optimize no-ops all logging in that case.
type ProgressLogger interface {
	Phase(name string)
	Progress(message string, depth int)
	Result(success bool, message string, depth int)
}

type noopLogger struct{}

func (noopLogger) Phase(string)                  {}
func (noopLogger) Progress(string, int)          {}
func (noopLogger) Result(bool, string, int)      {}

// Optimizer runs the full pass pipeline over a parsed Module.
type Optimizer struct {
	logger             ProgressLogger
	functionDefs       map[string]*ast.FunctionDef
	recursiveFunctions map[string]struct{}
	inlinable          map[string]*ast.FunctionDef
}

// New constructs an Optimizer. Passing a nil logger is safe.
func New(logger ProgressLogger) *Optimizer {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Optimizer{
		logger:             logger,
		functionDefs:       make(map[string]*ast.FunctionDef),
		recursiveFunctions: make(map[string]struct{}),
	}
}

// Optimize runs every pass in order and returns the final tree. The
// order is load-bearing: folding must precede dead-code elimination
// (to expose dead branches), and recursion detection must precede both
// inlining (which must avoid recursive functions) and tail-call
// conversion (which targets them).
func (o *Optimizer) Optimize(module *ast.Module) *ast.Module {
	o.logger.Phase("Optimizer")

	o.logger.Progress("Analyzing functions", 1)
	o.collectFunctions(module.Body)
	o.detectRecursiveFunctions(module)
	o.logger.Result(true, "Function analysis complete", 2)

	o.logger.Progress("Constant folding", 1)
	folded := o.constantFoldModule(module)
	o.logger.Result(true, "Constant folding complete", 2)

	o.logger.Progress("Common subexpression elimination", 1)
	cse := o.eliminateCommonSubexpressionsModule(folded)
	o.logger.Result(true, "Common subexpression elimination complete", 2)

	o.logger.Progress("Function inlining", 1)
	inlined := o.inlineFunctionsModule(cse, 0)
	o.logger.Result(true, "Function inlining complete", 2)

	o.logger.Progress("Recursive function optimization", 1)
	recurOpt := o.optimizeRecursiveFunctionsModule(inlined)
	o.logger.Result(true, "Recursive function optimization complete", 2)

	o.logger.Progress("Tail call optimization", 1)
	tailOpt := o.optimizeTailCallsModule(recurOpt)
	o.logger.Result(true, "Tail call optimization complete", 2)

	o.logger.Progress("Dead code elimination", 1)
	dced := o.eliminateDeadCodeModule(tailOpt)
	o.logger.Result(true, "Dead code elimination complete", 2)

	return dced
}
