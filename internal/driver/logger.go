package driver

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logger prints the pipeline's nested progress tree ("[/] phase", then
// "├── [*] step" / "├── [+|-] result" lines at deeper nesting) and
// satisfies optimizer.ProgressLogger structurally so the optimizer
// package never imports this one. When debug is enabled it additionally
// emits one structured zap log record per call, tagged with a
// per-invocation run ID so every line from a single compile can be
// correlated.
type Logger struct {
	w       io.Writer
	noColor bool
	debug   bool
	runID   string
	zap     *zap.Logger
}

// NewLogger builds a Logger writing human-readable progress to w. When
// debug is true, a zap JSON logger is also started and every call below
// additionally emits a structured record carrying runID.
func NewLogger(w io.Writer, noColor, debug bool) (*Logger, error) {
	l := &Logger{w: w, noColor: noColor, debug: debug, runID: uuid.NewString()}
	if debug {
		zl, err := zap.NewProduction()
		if err != nil {
			return nil, fmt.Errorf("failed to create debug logger: %w", err)
		}
		l.zap = zl
	}
	return l, nil
}

// Sync flushes any buffered zap output. Safe to call even when debug
// logging is off.
func (l *Logger) Sync() {
	if l.zap != nil {
		_ = l.zap.Sync()
	}
}

func (l *Logger) indent(depth int) string {
	if depth <= 0 {
		return ""
	}
	return strings.Repeat("    │", depth-1)
}

// Phase announces the start of a top-level pipeline phase.
func (l *Logger) Phase(name string) {
	fmt.Fprintf(l.w, "[/] %s\n", name)
	if l.zap != nil {
		l.zap.Info("phase", zap.String("run_id", l.runID), zap.String("phase", name))
	}
}

// Progress announces a step within a phase, at the given nesting depth.
func (l *Logger) Progress(message string, depth int) {
	fmt.Fprintf(l.w, "%s    ├── [*] %s\n", l.indent(depth), message)
	if l.zap != nil {
		l.zap.Info("progress", zap.String("run_id", l.runID), zap.String("message", message), zap.Int("depth", depth))
	}
}

// Result announces the outcome of a step within a phase.
func (l *Logger) Result(success bool, message string, depth int) {
	marker := "[+] "
	c := color.New(color.FgGreen)
	if !success {
		marker = "[-] "
		c = color.New(color.FgRed)
	}
	if l.noColor {
		c.DisableColor()
	}

	prefix := "    ├── "
	if depth > 2 {
		prefix = "    └── "
	}
	c.Fprintf(l.w, "%s%s%s%s\n", l.indent(depth), prefix, marker, message)

	if l.zap != nil {
		l.zap.Info("result",
			zap.String("run_id", l.runID),
			zap.Bool("success", success),
			zap.String("message", message),
			zap.Int("depth", depth),
			zap.Duration("since_start", time.Since(startOfProcess)),
		)
	}
}

var startOfProcess = time.Now()
