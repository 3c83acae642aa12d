package diag

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/you-not-fish/glox/internal/interp"
	"github.com/you-not-fish/glox/internal/syntax"
)

func tok(kind syntax.Kind, lexeme string, line uint32) syntax.Token {
	return syntax.Token{Kind: kind, Lexeme: lexeme, Pos: syntax.NewPos("t.lox", line, 1)}
}

func TestReporterStaticErrors(t *testing.T) {
	tests := []struct {
		name   string
		report func(r *Reporter)
		want   string
	}{
		{
			"report",
			func(r *Reporter) { r.Report(3, "", "Something.") },
			"[line 3] Error: Something.\n",
		},
		{
			"lex",
			func(r *Reporter) { r.LexError(syntax.NewPos("t.lox", 2, 5), "Unexpected character.") },
			"[line 2] Error: Unexpected character.\n",
		},
		{
			"syntax_at_token",
			func(r *Reporter) { r.SyntaxError(tok(syntax.Rparen, ")", 1), "Expect expression.") },
			"[line 1] Error at ')': Expect expression.\n",
		},
		{
			"syntax_at_end",
			func(r *Reporter) { r.SyntaxError(tok(syntax.EOF, "", 7), "Expect ';' after value.") },
			"[line 7] Error at end: Expect ';' after value.\n",
		},
		{
			"syntax_error_value",
			func(r *Reporter) {
				r.Error(&syntax.SyntaxError{Tok: tok(syntax.Name, "x", 4), Msg: "Expect ';' after expression."})
			},
			"[line 4] Error at 'x': Expect ';' after expression.\n",
		},
		{
			"other_error",
			func(r *Reporter) { r.Error(errors.New("boom")) },
			"Error: boom\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			r := NewReporter(&buf)
			tt.report(r)
			if buf.String() != tt.want {
				t.Errorf("output = %q, want %q", buf.String(), tt.want)
			}
			if !r.HadError() || r.Errors() != 1 {
				t.Errorf("HadError = %v, Errors = %d; want true, 1", r.HadError(), r.Errors())
			}
			if r.HadRuntimeError() {
				t.Error("HadRuntimeError = true for a static error")
			}
		})
	}
}

func TestReporterRuntimeError(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	err := &interp.RuntimeError{Tok: tok(syntax.Sub, "-", 9), Msg: "Operand must be a number."}
	r.Error(fmt.Errorf("run: %w", err))

	if want := "Operand must be a number.\n[line 9]\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
	if !r.HadRuntimeError() || r.RuntimeErrors() != 1 {
		t.Errorf("HadRuntimeError = %v, RuntimeErrors = %d; want true, 1", r.HadRuntimeError(), r.RuntimeErrors())
	}
	if r.HadError() {
		t.Error("HadError = true for a runtime error")
	}
}

func TestReporterReset(t *testing.T) {
	r := NewReporter(&bytes.Buffer{})
	r.Report(1, "", "a")
	r.RuntimeError(&interp.RuntimeError{Tok: tok(syntax.Name, "x", 1), Msg: "b"})
	r.Reset()
	if r.HadError() || r.HadRuntimeError() {
		t.Errorf("after Reset: HadError = %v, HadRuntimeError = %v", r.HadError(), r.HadRuntimeError())
	}
}

func TestReporterColor(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.SetColor(true)
	r.Report(1, "", "red")
	if want := "\x1b[31m[line 1] Error: red\x1b[0m\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestReporterAsHandlers(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)

	toks := syntax.Scan("t.lox", "print @;", r.LexError)
	syntax.NewParser(toks, r.SyntaxError).Parse()

	want := "[line 1] Error: Unexpected character.\n" +
		"[line 1] Error at ';': Expect expression.\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
	if r.Errors() != 2 {
		t.Errorf("Errors = %d, want 2", r.Errors())
	}
}
