package interp

import (
	"fmt"
	"io"
	"os"

	"github.com/you-not-fish/glox/internal/syntax"
)

// Config specifies how statements are executed.
type Config struct {
	// Stdout receives the output of print statements.
	// If nil, os.Stdout is used.
	Stdout io.Writer

	// Error is called with the runtime error that stops a batch.
	// If nil, the error is only returned from Interpret.
	Error ErrorHandler
}

// Interpreter executes statements against a global Environment that
// persists across calls to Interpret.
type Interpreter struct {
	conf Config
	out  io.Writer
	env  *Environment
}

// New creates an Interpreter with a fresh global environment.
func New(conf *Config) *Interpreter {
	if conf == nil {
		conf = new(Config)
	}
	in := &Interpreter{
		conf: *conf,
		out:  conf.Stdout,
		env:  NewEnvironment(),
	}
	if in.out == nil {
		in.out = os.Stdout
	}
	return in
}

// Env returns the global environment.
func (in *Interpreter) Env() *Environment {
	return in.env
}

// Interpret executes stmts in order. The first runtime error stops the
// batch: it is passed to the configured error handler and returned.
// Effects of statements before the failing one are kept.
func (in *Interpreter) Interpret(stmts []syntax.Stmt) error {
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			if rerr, ok := err.(*RuntimeError); ok && in.conf.Error != nil {
				in.conf.Error(rerr)
			}
			return err
		}
	}
	return nil
}

// Evaluate evaluates a single expression against the global environment.
func (in *Interpreter) Evaluate(x syntax.Expr) (Value, error) {
	return in.evaluate(x)
}

// ----------------------------------------------------------------------------
// Statements

func (in *Interpreter) execute(s syntax.Stmt) error {
	switch s := s.(type) {
	case nil:
		// statement dropped by the parser
		return nil

	case *syntax.ExprStmt:
		_, err := in.evaluate(s.X)
		return err

	case *syntax.PrintStmt:
		v, err := in.evaluate(s.X)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(in.out, v.String()); err != nil {
			return fmt.Errorf("print: %w", err)
		}
		return nil

	case *syntax.VarDecl:
		var v Value = Nil{}
		if s.Init != nil {
			var err error
			if v, err = in.evaluate(s.Init); err != nil {
				return err
			}
		}
		in.env.Define(s.Name.Lexeme, v)
		return nil
	}
	panic(fmt.Sprintf("interp: unexpected statement %T", s))
}

// ----------------------------------------------------------------------------
// Expressions

func (in *Interpreter) evaluate(x syntax.Expr) (Value, error) {
	switch x := x.(type) {
	case *syntax.Literal:
		return FromLiteral(x.Value), nil

	case *syntax.Grouping:
		return in.evaluate(x.X)

	case *syntax.Variable:
		return in.env.Get(x.Name)

	case *syntax.Unary:
		return in.unary(x)

	case *syntax.Binary:
		return in.binary(x)
	}
	panic(fmt.Sprintf("interp: unexpected expression %T", x))
}

func (in *Interpreter) unary(x *syntax.Unary) (Value, error) {
	v, err := in.evaluate(x.X)
	if err != nil {
		return nil, err
	}

	switch x.Op.Kind {
	case syntax.Not:
		return Bool(!Truthy(v)), nil
	case syntax.Sub:
		n, ok := v.(Number)
		if !ok {
			return nil, errorf(x.Op, "Operand must be a number.")
		}
		return -n, nil
	}
	return nil, errorf(x.Op, "Unknown unary operator '%s'.", x.Op.Lexeme)
}

// binary evaluates both operands left to right before applying the operator.
func (in *Interpreter) binary(x *syntax.Binary) (Value, error) {
	a, err := in.evaluate(x.X)
	if err != nil {
		return nil, err
	}
	b, err := in.evaluate(x.Y)
	if err != nil {
		return nil, err
	}

	switch x.Op.Kind {
	case syntax.Eql:
		return Bool(Equal(a, b)), nil
	case syntax.Neq:
		return Bool(!Equal(a, b)), nil

	case syntax.Add:
		switch a := a.(type) {
		case Number:
			if b, ok := b.(Number); ok {
				return a + b, nil
			}
		case String:
			if b, ok := b.(String); ok {
				return a + b, nil
			}
		}
		return nil, errorf(x.Op, "Operands must be two numbers or two strings.")
	}

	l, r, ok := numbers(a, b)
	if !ok {
		return nil, errorf(x.Op, "Operands must be numbers.")
	}
	switch x.Op.Kind {
	case syntax.Sub:
		return l - r, nil
	case syntax.Mul:
		return l * r, nil
	case syntax.Div:
		// IEEE division: x/0 yields an infinity or NaN.
		return l / r, nil
	case syntax.Gtr:
		return Bool(l > r), nil
	case syntax.Geq:
		return Bool(l >= r), nil
	case syntax.Lss:
		return Bool(l < r), nil
	case syntax.Leq:
		return Bool(l <= r), nil
	}
	return nil, errorf(x.Op, "Unknown binary operator '%s'.", x.Op.Lexeme)
}

func numbers(a, b Value) (Number, Number, bool) {
	l, ok1 := a.(Number)
	r, ok2 := b.(Number)
	return l, r, ok1 && ok2
}
