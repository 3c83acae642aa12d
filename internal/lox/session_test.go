package lox

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

type outputs struct {
	stdout, stderr, dump bytes.Buffer
}

func newSession(conf Config) (*Session, *outputs) {
	o := new(outputs)
	conf.Stdout = &o.stdout
	conf.Stderr = &o.stderr
	conf.DumpWriter = &o.dump
	return New(conf), o
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantErr    error
		wantStdout string
		wantStderr string
	}{
		{
			name:       "ok",
			src:        "var a = 2;\nprint a * 21;",
			wantStdout: "42\n",
		},
		{
			name:       "lex_error_stops_before_parse",
			src:        "print 1;\nprint @;",
			wantErr:    ErrStatic,
			wantStderr: "[line 2] Error: Unexpected character.\n",
		},
		{
			name:       "syntax_error_stops_before_interpret",
			src:        "print 1;\nprint 2",
			wantErr:    ErrStatic,
			wantStderr: "[line 2] Error at end: Expect ';' after value.\n",
		},
		{
			name:    "multiple_syntax_errors",
			src:     "print ;\nvar = 1;\nprint 3;",
			wantErr: ErrStatic,
			wantStderr: "[line 1] Error at ';': Expect expression.\n" +
				"[line 2] Error at '=': Expect variable name.\n",
		},
		{
			name:       "runtime_error_halts",
			src:        "print 1;\nprint -\"x\";\nprint 3;",
			wantErr:    ErrRuntime,
			wantStdout: "1\n",
			wantStderr: "Operand must be a number.\n[line 2]\n",
		},
		{
			name:       "undefined_variable",
			src:        "print y;",
			wantErr:    ErrRuntime,
			wantStderr: "Undefined variable 'y'.\n[line 1]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, o := newSession(Config{})
			err := s.Run("test.lox", tt.src)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Run error = %v, want %v", err, tt.wantErr)
			}
			if o.stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", o.stdout.String(), tt.wantStdout)
			}
			if o.stderr.String() != tt.wantStderr {
				t.Errorf("stderr = %q, want %q", o.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunEnvironmentPersists(t *testing.T) {
	s, o := newSession(Config{})

	inputs := []string{"var a = 1;", "print b;", "var b = a + 1;", "print a + b;"}
	for _, src := range inputs {
		s.Run("<stdin>", src)
		s.Reset()
	}

	if o.stdout.String() != "3\n" {
		t.Errorf("stdout = %q, want %q", o.stdout.String(), "3\n")
	}
	if s.Reporter().HadRuntimeError() {
		t.Error("Reset did not clear the runtime error flag")
	}
	if got := s.Env().Names(); len(got) != 2 {
		t.Errorf("Env names = %v, want [a b]", got)
	}
}

func TestRunWithoutResetKeepsFlags(t *testing.T) {
	s, _ := newSession(Config{})
	s.Run("a.lox", "print @;")
	if err := s.Run("b.lox", "print 1;"); !errors.Is(err, ErrStatic) {
		t.Errorf("second Run error = %v, want ErrStatic while the flag is still set", err)
	}
}

func TestRunMaxErrors(t *testing.T) {
	src := strings.Repeat("print ;\n", 5)

	s, o := newSession(Config{MaxErrors: 2})
	s.Run("test.lox", src)
	want := "[line 1] Error at ';': Expect expression.\n" +
		"[line 2] Error at ';': Expect expression.\n" +
		"[line 2] Error at ';': too many errors; aborting parse\n"
	if o.stderr.String() != want {
		t.Errorf("stderr = %q, want %q", o.stderr.String(), want)
	}

	s, _ = newSession(Config{})
	s.Run("test.lox", src)
	if n := s.Reporter().Errors(); n != 5 {
		t.Errorf("unlimited: Errors = %d, want 5", n)
	}
}

func TestRunDumpAfter(t *testing.T) {
	tests := []struct {
		name     string
		after    string
		format   string
		contains []string
		absent   []string
	}{
		{"scan", StageScan, "", []string{"--- after scan (d.lox) ---", "PRINT print null", "NUMBER 1 1", "EOF  null"}, []string{"after parse"}},
		{"parse_text", StageParse, "text", []string{"--- after parse (d.lox) ---", "PrintStmt d.lox:1:1", "Literal 1 d.lox:1:7"}, []string{"after scan"}},
		{"parse_sexpr", StageParse, "sexpr", []string{"(print 1)"}, nil},
		{"parse_json", StageParse, "json", []string{`"type": "PrintStmt"`}, nil},
		{"interpret", StageInterpret, "", []string{"--- after interpret (d.lox) ---", "env {\n}"}, nil},
		{"all", "*", "sexpr", []string{"after scan", "after parse", "after interpret"}, nil},
		{"none", "", "", nil, []string{"---"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, o := newSession(Config{DumpAfter: tt.after, ASTFormat: tt.format})
			if err := s.Run("d.lox", "print 1;"); err != nil {
				t.Fatalf("Run: %v", err)
			}
			dump := o.dump.String()
			for _, want := range tt.contains {
				if !strings.Contains(dump, want) {
					t.Errorf("dump missing %q:\n%s", want, dump)
				}
			}
			for _, bad := range tt.absent {
				if strings.Contains(dump, bad) {
					t.Errorf("dump contains %q:\n%s", bad, dump)
				}
			}
		})
	}
}

func TestRunDumpUnknownFormat(t *testing.T) {
	s, o := newSession(Config{DumpAfter: StageParse, ASTFormat: "yaml"})
	err := s.Run("d.lox", "print 1;")
	if err == nil || !strings.Contains(err.Error(), `unknown AST format "yaml"`) {
		t.Errorf("Run error = %v, want unknown format", err)
	}
	if o.stdout.Len() != 0 {
		t.Errorf("program ran after a failed dump: %q", o.stdout.String())
	}
}

func TestRunTrace(t *testing.T) {
	var trace bytes.Buffer
	s, _ := newSession(Config{Trace: log.New(&trace, "", 0)})
	s.Run("t.lox", "print -(1);")

	lines := strings.Split(strings.TrimSpace(trace.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("trace has %d lines, want 3:\n%s", len(lines), trace.String())
	}
	wantPrefix := []string{
		"scan: t.lox tokens=7 (",
		"parse: t.lox stmts=1 nodes=4 (",
		"interpret: t.lox (",
	}
	for i, want := range wantPrefix {
		if !strings.HasPrefix(lines[i], want) {
			t.Errorf("trace line %d = %q, want prefix %q", i, lines[i], want)
		}
	}
}

func TestCountNodes(t *testing.T) {
	s, _ := newSession(Config{})
	tests := []struct {
		src  string
		want int
	}{
		{"", 0},
		{"print 1;", 2},
		{"var a;", 1},
		{"var a = 1 + 2;", 4},
		{"print (a) * -b; a;", 8},
	}
	for _, tt := range tests {
		stmts := s.Parse(s.Scan("c.lox", tt.src))
		if got := CountNodes(stmts); got != tt.want {
			t.Errorf("CountNodes(%q) = %d, want %d", tt.src, got, tt.want)
		}
	}
}

func TestRunDumpHeaderWriteError(t *testing.T) {
	s := New(Config{
		Stdout:     &bytes.Buffer{},
		Stderr:     &bytes.Buffer{},
		DumpAfter:  StageScan,
		DumpWriter: &failFirstWriter{},
	})
	if err := s.Run("d.lox", "print 1;"); err == nil || !strings.Contains(err.Error(), "closed") {
		t.Errorf("Run error = %v, want the dump write error", err)
	}
}

// failFirstWriter fails its first write and accepts the rest.
type failFirstWriter struct {
	writes int
}

func (w *failFirstWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes == 1 {
		return 0, errors.New("closed")
	}
	return len(p), nil
}

func TestDumpTokens(t *testing.T) {
	s, _ := newSession(Config{})
	var buf bytes.Buffer
	if err := DumpTokens(&buf, s.Scan("x.lox", `var s = "hi";`)); err != nil {
		t.Fatal(err)
	}
	want := []string{"VAR var null", "NAME s null", "= = null", `STRING "hi" hi`, "; ; null", "EOF  null"}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i, w := range want {
		if !strings.HasSuffix(lines[i], w) {
			t.Errorf("line %d = %q, want suffix %q", i, lines[i], w)
		}
	}
}
