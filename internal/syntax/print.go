package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Fprint writes an indented tree representation of node to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

// FprintProgram writes the tree representation of every statement to w.
func FprintProgram(w io.Writer, stmts []Stmt) {
	p := &printer{w: w}
	for _, s := range stmts {
		p.print(s)
	}
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// child prints n one level deeper under a label.
func (p *printer) child(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *PrintStmt:
		p.printf("PrintStmt %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *VarDecl:
		p.printf("VarDecl %s\n", n.pos)
		p.indent++
		p.printf("Name: %s\n", n.Name.Lexeme)
		if n.Init != nil {
			p.child("Init", n.Init)
		}
		p.indent--

	case *Binary:
		p.printf("Binary %s %s\n", n.Op.Kind, n.pos)
		p.indent++
		p.child("X", n.X)
		p.child("Y", n.Y)
		p.indent--

	case *Unary:
		p.printf("Unary %s %s\n", n.Op.Kind, n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Grouping:
		p.printf("Grouping %s\n", n.pos)
		p.indent++
		p.print(n.X)
		p.indent--

	case *Literal:
		p.printf("Literal %s %s\n", literalString(n.Value, true), n.pos)

	case *Variable:
		p.printf("Variable %s %s\n", n.Name.Lexeme, n.pos)

	default:
		panic(fmt.Sprintf("syntax.Fprint: unexpected node %T", node))
	}
}

// Sprint returns node in parenthesized prefix form, e.g.
// "(* (- 123) (group 45.67))". Statements are rendered as
// "(print x)", "(; x)" and "(var name x)".
func Sprint(node Node) string {
	var b strings.Builder
	sprint(&b, node)
	return b.String()
}

func sprint(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Binary:
		parenthesize(b, n.Op.Lexeme, n.X, n.Y)
	case *Grouping:
		parenthesize(b, "group", n.X)
	case *Unary:
		parenthesize(b, n.Op.Lexeme, n.X)
	case *Literal:
		b.WriteString(literalString(n.Value, false))
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *ExprStmt:
		parenthesize(b, ";", n.X)
	case *PrintStmt:
		parenthesize(b, "print", n.X)
	case *VarDecl:
		if n.Init == nil {
			parenthesize(b, "var "+n.Name.Lexeme)
		} else {
			parenthesize(b, "var "+n.Name.Lexeme, n.Init)
		}
	default:
		panic(fmt.Sprintf("syntax.Sprint: unexpected node %T", node))
	}
}

func parenthesize(b *strings.Builder, name string, nodes ...Node) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, n := range nodes {
		b.WriteByte(' ')
		sprint(b, n)
	}
	b.WriteByte(')')
}

// literalString formats a literal value. Strings are quoted when quote is set.
func literalString(v any, quote bool) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		if quote {
			return strconv.Quote(v)
		}
		return v
	}
	return fmt.Sprintf("%v", v)
}
