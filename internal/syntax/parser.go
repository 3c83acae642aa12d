package syntax

// DefaultMaxErrors is the number of syntax errors after which parsing stops.
const DefaultMaxErrors = 10

// SyntaxError represents a syntax error at a token.
type SyntaxError struct {
	Tok Token
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Tok.Pos.String() + ": " + e.Msg
}

// Where describes the offending token for diagnostics:
// " at end" for EOF, " at 'lexeme'" otherwise.
func (e *SyntaxError) Where() string {
	return Where(e.Tok)
}

// Where formats tok as the location part of a diagnostic.
func Where(tok Token) string {
	if tok.Kind == EOF {
		return " at end"
	}
	return " at '" + tok.Lexeme + "'"
}

// Parser builds statements from a token sequence by recursive descent.
//
// Grammar, loosest binding first:
//
//	program     = declaration* EOF .
//	declaration = "var" NAME [ "=" expression ] ";" | statement .
//	statement   = "print" expression ";" | expression ";" .
//	expression  = equality .
//	equality    = comparison { ( "!=" | "==" ) comparison } .
//	comparison  = term { ( ">" | ">=" | "<" | "<=" ) term } .
//	term        = factor { ( "-" | "+" ) factor } .
//	factor      = unary { ( "/" | "*" ) unary } .
//	unary       = ( "!" | "-" ) unary | primary .
//	primary     = NUMBER | STRING | "true" | "false" | "nil" | NAME | "(" expression ")" .
type Parser struct {
	toks []Token
	cur  int // index of the next unconsumed token

	// Error handling
	errh      func(tok Token, msg string)
	errcnt    int
	maxErrors int
	abort     bool // set to true when error limit reached
}

// NewParser creates a Parser over toks. If toks does not end with an EOF
// token, one is appended. The errh function is called once per syntax
// error; if nil, errors are only counted.
func NewParser(toks []Token, errh func(tok Token, msg string)) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Kind != EOF {
		eof := Token{Kind: EOF}
		if n > 0 {
			eof.Pos = toks[n-1].Pos
		}
		toks = append(toks[:n:n], eof)
	}
	return &Parser{
		toks:      toks,
		errh:      errh,
		maxErrors: DefaultMaxErrors,
	}
}

// SetMaxErrors sets the error limit. n <= 0 removes the limit.
func (p *Parser) SetMaxErrors(n int) {
	p.maxErrors = n
}

// ----------------------------------------------------------------------------
// Token navigation

// peek returns the next unconsumed token.
func (p *Parser) peek() Token {
	return p.toks[p.cur]
}

// previous returns the most recently consumed token.
func (p *Parser) previous() Token {
	return p.toks[p.cur-1]
}

// atEnd reports whether only EOF is left.
func (p *Parser) atEnd() bool {
	return p.peek().Kind == EOF
}

// advance consumes and returns the next token. EOF is never consumed.
func (p *Parser) advance() Token {
	if !p.atEnd() {
		p.cur++
	}
	return p.previous()
}

// check reports whether the next token has kind k.
func (p *Parser) check(k Kind) bool {
	return p.peek().Kind == k
}

// got consumes the next token if it has one of the given kinds.
func (p *Parser) got(kinds ...Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// want consumes a token of kind k or fails with msg at the next token.
func (p *Parser) want(k Kind, msg string) (Token, error) {
	if p.check(k) {
		return p.advance(), nil
	}
	return Token{}, p.errorAt(p.peek(), msg)
}

// ----------------------------------------------------------------------------
// Error handling

// errorAt reports a syntax error at tok and returns it.
func (p *Parser) errorAt(tok Token, msg string) error {
	err := &SyntaxError{Tok: tok, Msg: msg}
	if p.abort {
		return err
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(tok, msg)
	}

	p.errorLimitCheck(tok)
	return err
}

// errorLimitCheck aborts parsing if too many errors have occurred.
func (p *Parser) errorLimitCheck(tok Token) {
	if p.maxErrors > 0 && p.errcnt >= p.maxErrors {
		p.abort = true
		if p.errh != nil {
			p.errh(tok, "too many errors; aborting parse")
		}
	}
}

// synchronize discards tokens until a likely statement boundary: just past
// a ';', or before a keyword that starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == Semi {
			return
		}
		if p.peek().Kind.startsStatement() {
			return
		}
		p.advance()
	}
}

// Errors returns the number of errors encountered during parsing.
func (p *Parser) Errors() int {
	return p.errcnt
}


// ----------------------------------------------------------------------------
// Parsing entry point

// Parse parses the whole token sequence. Statements that fail to parse are
// reported and left out; the rest are returned in source order.
func (p *Parser) Parse() []Stmt {
	var stmts []Stmt
	for !p.abort && !p.atEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

// ----------------------------------------------------------------------------
// Statements

// declaration parses one declaration and recovers from any syntax error
// inside it. It returns nil for a statement that failed to parse.
func (p *Parser) declaration() Stmt {
	var s Stmt
	var err error
	if p.got(Var) {
		s, err = p.varDecl()
	} else {
		s, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return s
}

// varDecl parses the rest of: var Name [= Init] ;
func (p *Parser) varDecl() (Stmt, error) {
	pos := p.previous().Pos

	name, err := p.want(Name, "Expect variable name.")
	if err != nil {
		return nil, err
	}

	var init Expr
	if p.got(Assign) {
		if init, err = p.expr(); err != nil {
			return nil, err
		}
	}

	if _, err := p.want(Semi, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}

	return NewVarDecl(pos, name, init), nil
}

// statement parses a print or expression statement.
func (p *Parser) statement() (Stmt, error) {
	if p.got(Print) {
		return p.printStmt()
	}
	return p.exprStmt()
}

// printStmt parses the rest of: print X ;
func (p *Parser) printStmt() (Stmt, error) {
	pos := p.previous().Pos

	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.want(Semi, "Expect ';' after value."); err != nil {
		return nil, err
	}

	return NewPrintStmt(pos, x), nil
}

// exprStmt parses: X ;
func (p *Parser) exprStmt() (Stmt, error) {
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.want(Semi, "Expect ';' after expression."); err != nil {
		return nil, err
	}

	return NewExprStmt(x), nil
}

// ----------------------------------------------------------------------------
// Expressions

// expr parses an expression.
func (p *Parser) expr() (Expr, error) {
	return p.equality()
}

func (p *Parser) equality() (Expr, error) {
	return p.binaryExpr(p.comparison, Neq, Eql)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binaryExpr(p.term, Gtr, Geq, Lss, Leq)
}

func (p *Parser) term() (Expr, error) {
	return p.binaryExpr(p.factor, Sub, Add)
}

func (p *Parser) factor() (Expr, error) {
	return p.binaryExpr(p.unaryExpr, Div, Mul)
}

// binaryExpr parses one precedence level: operand { op operand }.
// Each new operator folds the tree built so far into its left operand,
// which makes every level left associative.
func (p *Parser) binaryExpr(operand func() (Expr, error), ops ...Kind) (Expr, error) {
	x, err := operand()
	if err != nil {
		return nil, err
	}

	for p.got(ops...) {
		op := p.previous()
		y, err := operand()
		if err != nil {
			return nil, err
		}
		x = NewBinary(x, op, y)
	}
	return x, nil
}

// unaryExpr parses a prefix ! or - expression.
func (p *Parser) unaryExpr() (Expr, error) {
	if p.got(Not, Sub) {
		op := p.previous()
		x, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		return NewUnary(op, x), nil
	}
	return p.primaryExpr()
}

// primaryExpr parses literals, names and parenthesized expressions.
func (p *Parser) primaryExpr() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case False, True, Nil, Number, String:
		p.advance()
		return NewLiteral(tok.Pos, literalValue(tok)), nil

	case Name:
		p.advance()
		return NewVariable(tok), nil

	case Lparen:
		p.advance()
		x, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.want(Rparen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return NewGrouping(tok.Pos, x), nil
	}

	return nil, p.errorAt(tok, "Expect expression.")
}

// literalValue returns the constant denoted by a literal token.
func literalValue(tok Token) any {
	switch tok.Kind {
	case True:
		return true
	case False:
		return false
	case Number, String:
		return tok.Literal
	}
	return nil
}
