package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 classes of nodes: Expressions and Statements. Both sets are
// closed; the marker methods keep implementations inside this package, and
// consumers dispatch with a type switch over the concrete node types.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()   // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

// expr is embedded in all expression nodes.
type expr struct{ node }

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Expressions

// Binary represents a binary operation: X Op Y.
// Op is one of == != < <= > >= + - * /.
type Binary struct {
	expr
	X  Expr  // left operand
	Op Token // operator token
	Y  Expr  // right operand
}

// Grouping represents a parenthesized expression: (X)
type Grouping struct {
	expr
	X Expr // inner expression
}

// Literal represents a constant.
// Value is nil, a bool, a float64, or a string.
type Literal struct {
	expr
	Value any
}

// Unary represents a prefix operation: Op X, where Op is ! or -.
type Unary struct {
	expr
	Op Token // operator token
	X  Expr  // operand
}

// Variable represents a reference to a variable by name.
type Variable struct {
	expr
	Name Token // identifier token
}

// ----------------------------------------------------------------------------
// Statements

// ExprStmt represents an expression evaluated for its effects: X;
type ExprStmt struct {
	stmt
	X Expr
}

// PrintStmt represents: print X;
type PrintStmt struct {
	stmt
	X Expr
}

// VarDecl represents a variable declaration: var Name = Init;
type VarDecl struct {
	stmt
	Name Token // variable name
	Init Expr  // initializer (nil if none)
}

// ----------------------------------------------------------------------------
// Constructors

// NewBinary returns a Binary node positioned at its left operand.
func NewBinary(x Expr, op Token, y Expr) *Binary {
	b := &Binary{X: x, Op: op, Y: y}
	b.pos = x.Pos()
	return b
}

// NewGrouping returns a Grouping node at pos.
func NewGrouping(pos Pos, x Expr) *Grouping {
	g := &Grouping{X: x}
	g.pos = pos
	return g
}

// NewLiteral returns a Literal node at pos.
func NewLiteral(pos Pos, value any) *Literal {
	l := &Literal{Value: value}
	l.pos = pos
	return l
}

// NewUnary returns a Unary node positioned at its operator.
func NewUnary(op Token, x Expr) *Unary {
	u := &Unary{Op: op, X: x}
	u.pos = op.Pos
	return u
}

// NewVariable returns a Variable node for the name token.
func NewVariable(name Token) *Variable {
	v := &Variable{Name: name}
	v.pos = name.Pos
	return v
}

// NewExprStmt returns an ExprStmt positioned at its expression.
func NewExprStmt(x Expr) *ExprStmt {
	s := &ExprStmt{X: x}
	s.pos = x.Pos()
	return s
}

// NewPrintStmt returns a PrintStmt at pos.
func NewPrintStmt(pos Pos, x Expr) *PrintStmt {
	s := &PrintStmt{X: x}
	s.pos = pos
	return s
}

// NewVarDecl returns a VarDecl at pos. init may be nil.
func NewVarDecl(pos Pos, name Token, init Expr) *VarDecl {
	d := &VarDecl{Name: name, Init: init}
	d.pos = pos
	return d
}
