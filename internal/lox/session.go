// Package lox runs source text through the scan, parse and interpret
// stages, sharing one diagnostic sink and one global environment.
package lox

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/you-not-fish/glox/internal/diag"
	"github.com/you-not-fish/glox/internal/interp"
	"github.com/you-not-fish/glox/internal/syntax"
)

// Stage names, as accepted by Config.DumpAfter.
const (
	StageScan      = "scan"
	StageParse     = "parse"
	StageInterpret = "interpret"
)

var (
	// ErrStatic is returned by Run when a lexical or syntax error was reported.
	ErrStatic = errors.New("static error")

	// ErrRuntime is returned by Run when execution stopped on a runtime error.
	ErrRuntime = errors.New("runtime error")
)

// Config controls a Session.
type Config struct {
	Stdout io.Writer // output of print statements (default os.Stdout)
	Stderr io.Writer // diagnostics (default os.Stderr)

	MaxErrors int  // syntax error limit per Run; <= 0 means no limit
	Color     bool // color diagnostics

	DumpAfter  string    // dump tokens or AST after this stage ("*" for all)
	DumpWriter io.Writer // destination of dumps (default os.Stderr)
	ASTFormat  string    // "text" (default), "json" or "sexpr"

	Trace *log.Logger // if set, stage timings are logged here
}

// Session executes successive inputs against one Interpreter, so variables
// defined by one Run are visible to the next.
type Session struct {
	conf Config
	rep  *diag.Reporter
	in   *interp.Interpreter
}

// New creates a Session.
func New(conf Config) *Session {
	if conf.Stdout == nil {
		conf.Stdout = os.Stdout
	}
	if conf.Stderr == nil {
		conf.Stderr = os.Stderr
	}
	if conf.DumpWriter == nil {
		conf.DumpWriter = os.Stderr
	}

	rep := diag.NewReporter(conf.Stderr)
	rep.SetColor(conf.Color)

	s := &Session{conf: conf, rep: rep}
	s.in = interp.New(&interp.Config{
		Stdout: conf.Stdout,
		Error:  rep.RuntimeError,
	})
	return s
}

// Reporter returns the session's diagnostic sink.
func (s *Session) Reporter() *diag.Reporter { return s.rep }

// Env returns the global environment.
func (s *Session) Env() *interp.Environment { return s.in.Env() }

// Reset clears the error flags between interactive inputs.
// The environment is kept.
func (s *Session) Reset() { s.rep.Reset() }

// unit is the state threaded through the stages of one Run.
type unit struct {
	filename string
	src      string
	toks     []syntax.Token
	stmts    []syntax.Stmt
	stats    string // summary of the last stage for the trace
}

// stage is one step of the pipeline. fn returns a non-nil error to stop.
type stage struct {
	name string
	fn   func(s *Session, u *unit) error
}

var stages = []stage{
	{StageScan, (*Session).scanStage},
	{StageParse, (*Session).parseStage},
	{StageInterpret, (*Session).interpretStage},
}

// Run scans, parses and executes src. Each stage runs only if the previous
// one reported no error. Diagnostics go to the Reporter; the returned error
// is ErrStatic, ErrRuntime, or an I/O error from the output writers.
func (s *Session) Run(filename, src string) error {
	u := &unit{filename: filename, src: src}

	for _, st := range stages {
		start := time.Now()
		u.stats = ""
		err := st.fn(s, u)
		if s.conf.Trace != nil {
			s.conf.Trace.Printf("%s: %s %s(%v)", st.name, filename, u.stats, time.Since(start))
		}
		if err != nil {
			return err
		}
		if shouldDump(s.conf.DumpAfter, st.name) {
			if err := s.dump(st.name, u); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) scanStage(u *unit) error {
	u.toks = s.Scan(u.filename, u.src)
	u.stats = fmt.Sprintf("tokens=%d ", len(u.toks))
	if s.rep.HadError() {
		return ErrStatic
	}
	return nil
}

func (s *Session) parseStage(u *unit) error {
	u.stmts = s.Parse(u.toks)
	u.stats = fmt.Sprintf("stmts=%d nodes=%d ", len(u.stmts), CountNodes(u.stmts))
	if s.rep.HadError() {
		return ErrStatic
	}
	return nil
}

func (s *Session) interpretStage(u *unit) error {
	err := s.in.Interpret(u.stmts)
	var rerr *interp.RuntimeError
	if errors.As(err, &rerr) {
		return ErrRuntime
	}
	return err
}

// Scan tokenizes src, reporting lexical errors.
func (s *Session) Scan(filename, src string) []syntax.Token {
	return syntax.Scan(filename, src, s.rep.LexError)
}

// Parse builds statements from toks, reporting syntax errors.
func (s *Session) Parse(toks []syntax.Token) []syntax.Stmt {
	p := syntax.NewParser(toks, s.rep.SyntaxError)
	p.SetMaxErrors(s.conf.MaxErrors)
	return p.Parse()
}

func (s *Session) dump(name string, u *unit) error {
	w := s.conf.DumpWriter
	if _, err := fmt.Fprintf(w, "--- after %s (%s) ---\n", name, u.filename); err != nil {
		return err
	}
	switch name {
	case StageScan:
		return DumpTokens(w, u.toks)
	case StageParse:
		return DumpAST(w, u.stmts, s.conf.ASTFormat)
	case StageInterpret:
		_, err := io.WriteString(w, s.in.Env().String())
		return err
	}
	return nil
}

func shouldDump(pattern, name string) bool {
	return pattern == "*" || pattern == name
}

// CountNodes returns the number of AST nodes in stmts.
func CountNodes(stmts []syntax.Stmt) int {
	n := 0
	for _, st := range stmts {
		syntax.Inspect(st, func(syntax.Node) bool {
			n++
			return true
		})
	}
	return n
}

// DumpTokens writes one token per line.
func DumpTokens(w io.Writer, toks []syntax.Token) error {
	for _, tok := range toks {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", tok.Pos, tok); err != nil {
			return err
		}
	}
	return nil
}

// DumpAST writes stmts in the given format: "text" (or ""), "json" or "sexpr".
func DumpAST(w io.Writer, stmts []syntax.Stmt, format string) error {
	switch format {
	case "", "text":
		syntax.FprintProgram(w, stmts)
		return nil
	case "json":
		return syntax.FprintJSON(w, stmts)
	case "sexpr":
		for _, st := range stmts {
			if _, err := fmt.Fprintln(w, syntax.Sprint(st)); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown AST format %q", format)
}
