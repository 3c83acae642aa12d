package syntax

import "strconv"

// Scanner performs lexical analysis on Lox source code.
type Scanner struct {
	source // embedded character reader

	tok Token // current token
}

// NewScanner creates a new Scanner for the given source text.
// The errh function is called for each lexical error; if nil, errors are silently ignored.
func NewScanner(filename, src string, errh func(pos Pos, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Scan tokenizes src completely. It never fails: malformed lexemes are
// reported through errh and skipped, and the result always ends with
// exactly one EOF token.
func Scan(filename, src string, errh func(pos Pos, msg string)) []Token {
	s := NewScanner(filename, src, errh)
	var toks []Token
	for {
		s.Next()
		toks = append(toks, s.tok)
		if s.tok.Kind == EOF {
			return toks
		}
	}
}

// Next advances to the next token.
// Once EOF has been reached, Next keeps producing EOF.
func (s *Scanner) Next() {
redo:
	s.skipWhitespace()

	pos := s.pos()
	start := s.chOffs

	switch {
	case s.ch < 0:
		s.tok = Token{Kind: EOF, Pos: pos}
		return

	case isAlpha(s.ch):
		s.scanIdent()

	case isDigit(s.ch), s.ch == '.' && isDigit(s.peek()):
		s.scanNumber(start, pos)
		return

	case s.ch == '"':
		if !s.scanString(start, pos) {
			goto redo
		}
		return

	default:
		if !s.scanOperator() {
			// comment or unexpected character
			goto redo
		}
	}

	s.tok = Token{Kind: s.tok.Kind, Lexeme: s.segment(start), Pos: pos}
}

// Token returns the current token.
func (s *Scanner) Token() Token {
	return s.tok
}

// Kind returns the current token's kind.
func (s *Scanner) Kind() Kind {
	return s.tok.Kind
}

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos {
	return s.tok.Pos
}

// skipWhitespace skips spaces, tabs, carriage returns and newlines.
func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.ch) {
		s.nextch()
	}
}

// scanIdent scans an identifier or keyword.
func (s *Scanner) scanIdent() {
	start := s.chOffs
	for isAlpha(s.ch) || isDigit(s.ch) {
		s.nextch()
	}
	s.tok.Kind = LookupKeyword(s.segment(start))
}

// scanNumber scans a number literal: digits with an optional fraction.
// A fraction is only taken when the '.' is followed by a digit, so "1."
// scans as NUMBER followed by DOT. A literal that starts with '.' gets a
// synthesized leading zero: ".5" has the value 0.5.
func (s *Scanner) scanNumber(start int, pos Pos) {
	leadingDot := s.ch == '.'
	if leadingDot {
		s.nextch()
	}
	s.scanDigits()

	if !leadingDot && s.ch == '.' && isDigit(s.peek()) {
		s.nextch()
		s.scanDigits()
	}

	lexeme := s.segment(start)
	text := lexeme
	if leadingDot {
		text = "0" + lexeme
	}

	// text is digits with an optional fraction, so the only possible error
	// is ErrRange on overflow, which comes with ±Inf; keep the infinity.
	v, _ := strconv.ParseFloat(text, 64)

	s.tok = Token{Kind: Number, Lexeme: lexeme, Literal: v, Pos: pos}
}

func (s *Scanner) scanDigits() {
	for isDigit(s.ch) {
		s.nextch()
	}
}

// scanString scans a string literal. Strings may span lines and have no
// escape sequences. It reports false if the string is not terminated; in
// that case no token is produced.
func (s *Scanner) scanString(start int, pos Pos) bool {
	s.nextch() // opening "
	for s.ch != '"' {
		if s.ch < 0 {
			s.errorAt(s.pos(), "Unterminated string.")
			return false
		}
		s.nextch()
	}
	s.nextch() // closing "

	lexeme := s.segment(start)
	s.tok = Token{Kind: String, Lexeme: lexeme, Literal: lexeme[1 : len(lexeme)-1], Pos: pos}
	return true
}

// match consumes the current character if it equals want.
func (s *Scanner) match(want rune) bool {
	if s.ch != want {
		return false
	}
	s.nextch()
	return true
}

// scanOperator scans punctuation and operators into s.tok.Kind.
// It reports false if nothing was produced: a comment was skipped or the
// character was not recognized.
func (s *Scanner) scanOperator() bool {
	pos := s.pos()
	ch := s.ch
	s.nextch()

	switch ch {
	case '(':
		s.tok.Kind = Lparen
	case ')':
		s.tok.Kind = Rparen
	case '{':
		s.tok.Kind = Lbrace
	case '}':
		s.tok.Kind = Rbrace
	case ',':
		s.tok.Kind = Comma
	case '.':
		s.tok.Kind = Dot
	case '-':
		s.tok.Kind = Sub
	case '+':
		s.tok.Kind = Add
	case ';':
		s.tok.Kind = Semi
	case '*':
		s.tok.Kind = Mul
	case '!':
		s.tok.Kind = s.pick('=', Neq, Not)
	case '=':
		s.tok.Kind = s.pick('=', Eql, Assign)
	case '<':
		s.tok.Kind = s.pick('=', Leq, Lss)
	case '>':
		s.tok.Kind = s.pick('=', Geq, Gtr)
	case '/':
		if s.ch == '/' {
			s.skipLineComment()
			return false
		}
		s.tok.Kind = Div
	default:
		s.errorAt(pos, "Unexpected character.")
		return false
	}
	return true
}

// pick returns yes and consumes the current character if it is next,
// otherwise returns no.
func (s *Scanner) pick(next rune, yes, no Kind) Kind {
	if s.match(next) {
		return yes
	}
	return no
}

// skipLineComment skips a comment up to (not including) the newline.
func (s *Scanner) skipLineComment() {
	for s.ch != '\n' && s.ch >= 0 {
		s.nextch()
	}
}
