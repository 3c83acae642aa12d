// Package syntax implements lexical and syntactic analysis for the Lox language.
package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind represents the type of a lexical token.
type Kind uint

const (
	// Special tokens
	EOF Kind = iota // end of file

	// Literals
	Name   // identifier: foo, bar, total
	Number // 123, 4.5, .5
	String // "hello"

	// Delimiters
	Lparen // (
	Rparen // )
	Lbrace // {
	Rbrace // }
	Comma  // ,
	Dot    // .
	Semi   // ;

	// Arithmetic operators
	Sub // -
	Add // +
	Div // /
	Mul // *

	// One or two character operators
	Not    // !
	Neq    // !=
	Assign // =
	Eql    // ==
	Gtr    // >
	Geq    // >=
	Lss    // <
	Leq    // <=

	// Keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	kindCount
)

// kindNames maps kinds to their string representation.
var kindNames = [...]string{
	EOF: "EOF",

	Name:   "NAME",
	Number: "NUMBER",
	String: "STRING",

	Lparen: "(",
	Rparen: ")",
	Lbrace: "{",
	Rbrace: "}",
	Comma:  ",",
	Dot:    ".",
	Semi:   ";",

	Sub: "-",
	Add: "+",
	Div: "/",
	Mul: "*",

	Not:    "!",
	Neq:    "!=",
	Assign: "=",
	Eql:    "==",
	Gtr:    ">",
	Geq:    ">=",
	Lss:    "<",
	Leq:    "<=",

	And:    "and",
	Class:  "class",
	Else:   "else",
	False:  "false",
	Fun:    "fun",
	For:    "for",
	If:     "if",
	Nil:    "nil",
	Or:     "or",
	Print:  "print",
	Return: "return",
	Super:  "super",
	This:   "this",
	True:   "true",
	Var:    "var",
	While:  "while",
}

// String returns the string representation of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// IsKeyword reports whether k is a keyword kind.
func (k Kind) IsKeyword() bool {
	return k >= And && k <= While
}

// IsLiteral reports whether k is a NUMBER or STRING literal kind.
func (k Kind) IsLiteral() bool {
	return k == Number || k == String
}

// startsStatement reports whether k begins a statement.
// The parser resynchronizes on these after a syntax error.
func (k Kind) startsStatement() bool {
	switch k {
	case Class, Fun, For, If, Print, Return, Var, While:
		return true
	}
	return false
}

// keywords maps reserved words to their kind.
var keywords = map[string]Kind{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"fun":    Fun,
	"for":    For,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// LookupKeyword returns the kind for the given identifier string.
// If the identifier is a keyword, returns the keyword kind.
// Otherwise, returns Name.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Name
}

// Token is a single lexical token.
// Tokens are created by the scanner and never modified afterwards.
type Token struct {
	Kind    Kind
	Lexeme  string // exact source text
	Literal any    // float64 for Number, string for String, nil otherwise
	Pos     Pos    // position of the first character
}

// Line returns the 1-based source line of the token.
func (t Token) Line() int {
	return int(t.Pos.Line())
}

// String returns a debugging representation: KIND lexeme literal.
// Keywords are shown upper-cased, e.g. "VAR var null".
func (t Token) String() string {
	kind := t.Kind.String()
	if t.Kind.IsKeyword() {
		kind = strings.ToUpper(kind)
	}
	lit := "null"
	if t.Kind.IsLiteral() {
		switch v := t.Literal.(type) {
		case float64:
			lit = strconv.FormatFloat(v, 'f', -1, 64)
		case string:
			lit = v
		}
	}
	return kind + " " + t.Lexeme + " " + lit
}
