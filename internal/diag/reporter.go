// Package diag implements the diagnostic sink shared by the scanner, the
// parser and the interpreter.
package diag

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/you-not-fish/glox/internal/interp"
	"github.com/you-not-fish/glox/internal/syntax"
)

// Reporter writes human-readable diagnostics and remembers whether any
// were reported. A Reporter is not safe for concurrent use.
type Reporter struct {
	w     io.Writer
	color bool

	errors        int // static (lexical and syntax) errors
	runtimeErrors int
}

// NewReporter returns a Reporter writing to w. If w is nil, os.Stderr is used.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{w: w}
}

// SetColor enables ANSI coloring of diagnostics.
func (r *Reporter) SetColor(on bool) {
	r.color = on
}

// Report writes "[line N] Error<where>: message" and records a static error.
func (r *Reporter) Report(line int, where, msg string) {
	r.errors++
	r.write(fmt.Sprintf("[line %d] Error%s: %s", line, where, msg))
}

// LexError reports a lexical error. Its signature matches the scanner's
// error handler.
func (r *Reporter) LexError(pos syntax.Pos, msg string) {
	r.Report(int(pos.Line()), "", msg)
}

// SyntaxError reports a syntax error at tok. Its signature matches the
// parser's error handler.
func (r *Reporter) SyntaxError(tok syntax.Token, msg string) {
	r.Report(tok.Line(), syntax.Where(tok), msg)
}

// RuntimeError reports a runtime error as "message\n[line N]".
func (r *Reporter) RuntimeError(err *interp.RuntimeError) {
	r.runtimeErrors++
	r.write(fmt.Sprintf("%s\n[line %d]", err.Msg, err.Tok.Line()))
}

// Error reports any error produced by the pipeline, dispatching on its type.
func (r *Reporter) Error(err error) {
	var rt *interp.RuntimeError
	var se *syntax.SyntaxError
	switch {
	case errors.As(err, &rt):
		r.RuntimeError(rt)
	case errors.As(err, &se):
		r.SyntaxError(se.Tok, se.Msg)
	default:
		r.errors++
		r.write("Error: " + err.Error())
	}
}

// HadError reports whether a static error was reported since the last Reset.
func (r *Reporter) HadError() bool {
	return r.errors > 0
}

// HadRuntimeError reports whether a runtime error was reported since the last Reset.
func (r *Reporter) HadRuntimeError() bool {
	return r.runtimeErrors > 0
}

// Errors returns the number of static errors since the last Reset.
func (r *Reporter) Errors() int {
	return r.errors
}

// RuntimeErrors returns the number of runtime errors since the last Reset.
func (r *Reporter) RuntimeErrors() int {
	return r.runtimeErrors
}

// Reset clears the error flags. The interactive loop calls it after each line.
func (r *Reporter) Reset() {
	r.errors = 0
	r.runtimeErrors = 0
}

func (r *Reporter) write(msg string) {
	if r.color {
		msg = "\x1b[31m" + msg + "\x1b[0m"
	}
	fmt.Fprintln(r.w, msg)
}
