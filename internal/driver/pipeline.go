// Package driver wires the lexer, parser adapter, optimizer, and
// codegen packages into the single synchronous compile call the CLI
// invokes, plus the ambient config/logging concerns around it.
package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbon-lang/carbonc/internal/compiler/ast"
	"github.com/carbon-lang/carbonc/internal/compiler/codegen"
	cerrors "github.com/carbon-lang/carbonc/internal/compiler/errors"
	"github.com/carbon-lang/carbonc/internal/compiler/optimizer"
	cparser "github.com/carbon-lang/carbonc/internal/compiler/parser"
	"github.com/carbon-lang/carbonc/internal/syntax/lexer"
	"github.com/carbon-lang/carbonc/internal/syntax/parser"
)

// Options controls a single compile invocation.
type Options struct {
	Optimize bool
	Logger   *Logger
}

// Pipeline runs the full parse → optional-optimize → codegen chain.
// There is no concurrency anywhere in this call: the whole compile is
// one synchronous function call chain, matching the single-threaded
// resource model this compiler commits to.
type Pipeline struct{}

// NewPipeline constructs a Pipeline. It carries no state of its own;
// every compile is independent.
func NewPipeline() *Pipeline { return &Pipeline{} }

// Compile lexes, parses, optionally optimizes, and lowers source into
// bytecode. file is used only for error messages.
func (p *Pipeline) Compile(source []byte, file string, opts Options) ([]byte, error) {
	log := opts.Logger
	if log == nil {
		var err error
		log, err = NewLogger(os.Stdout, false, false)
		if err != nil {
			return nil, err
		}
	}

	log.Phase("Parse")
	lx := lexer.New(string(source))
	tokens, lexErrs := lx.ScanTokens()
	if len(lexErrs) > 0 {
		log.Result(false, "Lexing failed", 1)
		return nil, firstLexError(file, lexErrs)
	}
	log.Result(true, "Lexing complete", 1)

	ps := parser.New(tokens)
	surfaceProgram, synErrs := ps.Parse()
	if len(synErrs) > 0 {
		log.Result(false, "Parsing failed", 1)
		return nil, firstSyntaxError(file, synErrs)
	}
	log.Result(true, "Parsing complete", 1)

	module, err := cparser.ConvertOrError(surfaceProgram)
	if err != nil {
		return nil, err
	}

	if opts.Optimize {
		opt := optimizer.New(log)
		module = opt.Optimize(module)
	}

	log.Phase("Codegen")
	bytecode, err := codegen.Generate(module)
	if err != nil {
		log.Result(false, "Bytecode generation failed", 1)
		return nil, err
	}
	log.Result(true, "Bytecode generation complete", 1)

	return bytecode, nil
}

// CompileFile reads input, compiles it, and writes the resulting
// bytecode to output. The output path defaults to input's extension
// replaced with .crbn when output is empty.
func (p *Pipeline) CompileFile(input, output string, opts Options) (string, error) {
	source, err := os.ReadFile(input)
	if err != nil {
		return "", cerrors.NewIOError(cerrors.ErrInputUnreadable, fmt.Sprintf("cannot read %s: %v", input, err))
	}

	if output == "" {
		output = DefaultOutputPath(input)
	}

	bytecode, err := p.Compile(source, input, opts)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(output, bytecode, 0o644); err != nil {
		return "", cerrors.NewIOError(cerrors.ErrOutputUnwritable, fmt.Sprintf("cannot write %s: %v", output, err))
	}
	return output, nil
}

// DefaultOutputPath replaces input's extension with .crbn. Used whenever
// no explicit output path is given, whether by CompileFile or by a
// caller computing a path under a configured output directory.
func DefaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	return input[:len(input)-len(ext)] + ".crbn"
}

func firstLexError(file string, errs []lexer.LexError) error {
	e := errs[0]
	return cerrors.NewParseError(
		cerrors.ErrSyntax,
		fmt.Sprintf("%s: %s", file, e.Message),
		locFromLexError(e),
	)
}

func firstSyntaxError(file string, errs []parser.SyntaxError) error {
	e := errs[0]
	return cerrors.NewParseError(
		cerrors.ErrSyntax,
		fmt.Sprintf("%s: %s", file, e.Message),
		locFromSyntaxError(e),
	)
}

func locFromLexError(e lexer.LexError) ast.SourceLocation {
	return ast.SourceLocation{Line: e.Line, Column: e.Column}
}

func locFromSyntaxError(e parser.SyntaxError) ast.SourceLocation {
	return ast.SourceLocation{Line: e.Line, Column: e.Column}
}
