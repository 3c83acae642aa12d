// Package main implements the glox interpreter entry point.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/peterh/liner"

	"github.com/you-not-fish/glox/internal/config"
	"github.com/you-not-fish/glox/internal/lox"
)

// Interpreter flags
var (
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	astFormat  = flag.String("ast-format", "", "AST output format (text, json or sexpr)")
	dumpAfter  = flag.String("dump-after", "", "Dump tokens or AST after stage (scan, parse, interpret or \"*\")")
	configFile = flag.String("config", "", "Settings file (default ~/"+config.FileName+")")
	version    = flag.Bool("version", false, "Print version")
	trace      = flag.Bool("trace", false, "Output timing trace")
)

// Version information
const Version = "0.1.0-dev"

// Exit codes, following sysexits.h.
const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitNoInput  = 66
	exitSoftware = 70
	exitIOErr    = 74
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glox %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: glox [options] [script]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("glox version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(exitOK)
	}

	args := flag.Args()
	if len(args) > 1 {
		flag.Usage()
		os.Exit(exitUsage)
	}

	conf, err := config.Find(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitUsage)
	}
	opts := optionsFrom(conf)

	if len(args) == 0 {
		if *emitTokens || *emitAST {
			fmt.Fprintln(os.Stderr, "error: -emit-tokens and -emit-ast need a script")
			os.Exit(exitUsage)
		}
		os.Exit(runPrompt(opts))
	}

	filename := args[0]

	// Handle -emit-tokens
	if *emitTokens {
		os.Exit(runEmitTokens(filename, opts))
	}

	// Handle -emit-ast
	if *emitAST {
		os.Exit(runEmitAST(filename, opts))
	}

	os.Exit(runFile(filename, opts))
}

// options are the resolved settings for one invocation.
type options struct {
	conf      *config.Config
	astFormat string
	dumpAfter string
	trace     bool
}

// optionsFrom merges the settings file with the command line.
func optionsFrom(conf *config.Config) options {
	o := options{
		conf:      conf,
		astFormat: conf.ASTFormat,
		dumpAfter: *dumpAfter,
		trace:     *trace,
	}
	if *astFormat != "" {
		o.astFormat = *astFormat
	}
	return o
}

// newSession creates a session writing to the current os.Stdout and os.Stderr.
func newSession(o options) *lox.Session {
	lc := lox.Config{
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		MaxErrors:  o.conf.MaxErrors,
		Color:      o.conf.Color,
		DumpAfter:  o.dumpAfter,
		DumpWriter: os.Stderr,
		ASTFormat:  o.astFormat,
	}
	if o.trace {
		lc.Trace = log.New(os.Stderr, "glox: ", 0)
	}
	return lox.New(lc)
}

// exitCode maps the result of Session.Run to a process exit code.
// Errors other than ErrStatic and ErrRuntime have not been reported yet.
func exitCode(sess *lox.Session, err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, lox.ErrStatic):
		return exitDataErr
	case errors.Is(err, lox.ErrRuntime):
		return exitSoftware
	}
	sess.Reporter().Error(err)
	return exitIOErr
}

// runFile executes a script and returns an exit code.
func runFile(filename string, o options) int {
	sess := newSession(o)
	src, err := os.ReadFile(filename)
	if err != nil {
		sess.Reporter().Error(err)
		return exitNoInput
	}
	return exitCode(sess, sess.Run(filename, string(src)))
}

// lineReader is the part of liner.State used by the interactive loop.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// runPrompt runs the interactive loop with line editing and history.
func runPrompt(o options) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := o.conf.HistoryFile
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	return repl(ln, newSession(o), o.conf.Prompt)
}

// repl reads one line at a time and runs it as a complete program.
// Errors are reset after every line; variables persist.
func repl(r lineReader, sess *lox.Session, prompt string) int {
	for {
		line, err := r.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return exitOK
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			sess.Reporter().Error(err)
			return exitIOErr
		}

		cmd := strings.TrimSpace(line)
		if cmd == "" {
			continue
		}
		r.AppendHistory(line)

		if strings.HasPrefix(cmd, ":") {
			name, arg, _ := strings.Cut(cmd, " ")
			arg = strings.TrimSpace(arg)
			switch {
			case name == ":quit":
				return exitOK
			case name == ":env" && arg == "":
				fmt.Print(sess.Env())
			case name == ":env":
				printBinding(sess, arg)
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		if err := sess.Run("<stdin>", line); exitCode(sess, err) == exitIOErr {
			return exitIOErr
		}
		sess.Reset()
	}
}

// printBinding prints one variable for ":env name".
func printBinding(sess *lox.Session, name string) {
	v, ok := sess.Env().Lookup(name)
	if !ok {
		fmt.Printf("%s is not defined\n", name)
		return
	}
	fmt.Printf("%s: %s = %s\n", name, v.Kind(), v)
}

// runEmitTokens scans the input file and prints all tokens with positions.
func runEmitTokens(filename string, o options) int {
	sess := newSession(o)
	src, err := os.ReadFile(filename)
	if err != nil {
		sess.Reporter().Error(err)
		return exitNoInput
	}

	toks := sess.Scan(filename, string(src))

	// Print header
	fmt.Printf("%-12s %s\n", "POSITION", "TOKEN")
	fmt.Printf("%-12s %s\n", strings.Repeat("-", 12), strings.Repeat("-", 20))
	if err := lox.DumpTokens(os.Stdout, toks); err != nil {
		sess.Reporter().Error(err)
		return exitIOErr
	}

	if sess.Reporter().HadError() {
		return exitDataErr
	}
	return exitOK
}

// runEmitAST parses the input file and outputs the AST.
func runEmitAST(filename string, o options) int {
	sess := newSession(o)
	src, err := os.ReadFile(filename)
	if err != nil {
		sess.Reporter().Error(err)
		return exitNoInput
	}

	toks := sess.Scan(filename, string(src))
	if sess.Reporter().HadError() {
		return exitDataErr
	}
	stmts := sess.Parse(toks)

	if err := lox.DumpAST(os.Stdout, stmts, o.astFormat); err != nil {
		sess.Reporter().Error(err)
		return exitUsage
	}

	if sess.Reporter().HadError() {
		return exitDataErr
	}
	return exitOK
}
