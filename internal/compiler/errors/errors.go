// Package errors provides the compiler's structured error model: a small
// closed set of error kinds, each carrying a stable code, a message, and
// an optional source location, plus JSON and colorized terminal
// renderings for human and machine consumers alike.
package errors

import (
	"encoding/json"
	"fmt"

	"github.com/carbon-lang/carbonc/internal/compiler/ast"
)

// Kind is the closed set of compiler error kinds (spec.md §7).
type Kind string

const (
	// KindParse is raised by the parser adapter when the surface tree
	// cannot be mapped onto a valid program.
	KindParse Kind = "parse"
	// KindCodeGen is raised by the bytecode generator when an AST node
	// cannot be emitted.
	KindCodeGen Kind = "codegen"
	// KindOptimization is raised by an optimizer pass whose rewrite
	// precondition is violated.
	KindOptimization Kind = "optimization"
	// KindIO is raised by the driver when the input is unreadable or the
	// output is unwritable.
	KindIO Kind = "io"
)

// CompilerError is a structured compiler failure.
type CompilerError struct {
	Kind     Kind               `json:"kind"`
	Code     string             `json:"code"`
	Message  string             `json:"message"`
	Location ast.SourceLocation `json:"location,omitempty"`
	HasLoc   bool               `json:"-"`
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	if e.HasLoc {
		return fmt.Sprintf("[%s] line %d, column %d: %s", e.Code, e.Location.Line, e.Location.Column, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ToJSON renders the error as an indented JSON object for machine
// consumption.
func (e *CompilerError) ToJSON() (string, error) {
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func newError(kind Kind, code, message string) *CompilerError {
	return &CompilerError{Kind: kind, Code: code, Message: message}
}

func newErrorAt(kind Kind, code, message string, loc ast.SourceLocation) *CompilerError {
	return &CompilerError{Kind: kind, Code: code, Message: message, Location: loc, HasLoc: true}
}

// NewParseError builds a KindParse error with a source location.
func NewParseError(code, message string, loc ast.SourceLocation) *CompilerError {
	return newErrorAt(KindParse, code, message, loc)
}

// NewCodeGenError builds a KindCodeGen error. Codegen errors are reported
// without a location when the offending node carries none.
func NewCodeGenError(code, message string) *CompilerError {
	return newError(KindCodeGen, code, message)
}

// NewCodeGenErrorAt builds a KindCodeGen error anchored to a node's
// source location.
func NewCodeGenErrorAt(code, message string, loc ast.SourceLocation) *CompilerError {
	return newErrorAt(KindCodeGen, code, message, loc)
}

// NewOptimizationError builds a KindOptimization error.
func NewOptimizationError(code, message string) *CompilerError {
	return newError(KindOptimization, code, message)
}

// NewIOError builds a KindIO error. IO failures never carry a source
// location; they occur before or after the AST exists.
func NewIOError(code, message string) *CompilerError {
	return newError(KindIO, code, message)
}

// ErrorList is an ordered collection of compiler errors.
type ErrorList []*CompilerError

// Error implements the error interface, joining every entry.
func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	msg := ""
	for i, e := range el {
		if i > 0 {
			msg += "\n"
		}
		msg += e.Error()
	}
	return msg
}
