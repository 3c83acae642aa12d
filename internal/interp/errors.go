package interp

import (
	"fmt"

	"github.com/you-not-fish/glox/internal/syntax"
)

// RuntimeError is an error raised while executing a program. Tok is the
// operator or name token the error refers to.
type RuntimeError struct {
	Tok syntax.Token
	Msg string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Tok.Pos, e.Msg)
}

// ErrorHandler is called for the runtime error that ends a batch.
type ErrorHandler func(err *RuntimeError)

func errorf(tok syntax.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Tok: tok, Msg: fmt.Sprintf(format, args...)}
}
