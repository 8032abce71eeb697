package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

var (
	kindColor = map[Kind]*color.Color{
		KindParse:        color.New(color.FgRed, color.Bold),
		KindCodeGen:      color.New(color.FgMagenta, color.Bold),
		KindOptimization: color.New(color.FgYellow, color.Bold),
		KindIO:           color.New(color.FgRed, color.Bold),
	}
	codeColor = color.New(color.FgCyan)
)

// FormatForTerminal renders a CompilerError as a colorized, human-readable
// line suitable for stderr.
func (e *CompilerError) FormatForTerminal() string {
	var sb strings.Builder

	c, ok := kindColor[e.Kind]
	if !ok {
		c = color.New(color.FgRed, color.Bold)
	}

	sb.WriteString(c.Sprintf("%s error", strings.Title(string(e.Kind))))
	sb.WriteString(" ")
	sb.WriteString(codeColor.Sprintf("[%s]", e.Code))
	sb.WriteString(": ")
	sb.WriteString(e.Message)

	if e.HasLoc {
		sb.WriteString(fmt.Sprintf(" (line %d, column %d)", e.Location.Line, e.Location.Column))
	}

	return sb.String()
}

// FormatListForTerminal renders every error in the list, one per line.
func FormatListForTerminal(el ErrorList) string {
	var sb strings.Builder
	for i, e := range el {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.FormatForTerminal())
	}
	return sb.String()
}
