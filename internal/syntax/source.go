package syntax

import "unicode/utf8"

// source is a character reader with position tracking.
// The whole input is held in memory; lexemes are sliced out of it.
type source struct {
	buf      []byte // source text
	filename string

	line uint32 // line of ch (1-based)
	col  uint32 // column of ch (1-based, byte offset)

	ch     rune // current character, -1 at EOF
	chOffs int  // byte offset of ch in buf
	offs   int  // byte offset just past ch

	errh func(pos Pos, msg string)
}

// newSource creates a source over text and reads the first character.
// The errh function is called for each error; if nil, errors are ignored.
func newSource(filename, text string, errh func(pos Pos, msg string)) *source {
	s := &source{
		buf:      []byte(text),
		filename: filename,
		line:     1,
		col:      0, // incremented to 1 by the first nextch
		ch:       -1,
		errh:     errh,
	}
	s.nextch()
	return s
}

// nextch advances to the next character.
// (line, col) always describe s.ch after nextch returns.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.chOffs = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	s.ch = r
	s.offs += width
}

// peek returns the character after ch without consuming anything.
// It returns -1 at end of input.
func (s *source) peek() rune {
	if s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.offs:])
	return r
}

// pos returns the position of the current character.
func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// segment returns the source text from byte offset start up to ch.
func (s *source) segment(start int) string {
	return string(s.buf[start:s.chOffs])
}

// errorAt reports a lexical error at pos.
func (s *source) errorAt(pos Pos, msg string) {
	if s.errh != nil {
		s.errh(pos, msg)
	}
}

// isAlpha reports whether r may start an identifier (a-z, A-Z, or _).
func isAlpha(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

// isDigit reports whether r is a decimal digit.
func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// isWhitespace reports whether r is skipped between tokens.
// Newline is included; the source tracks line changes itself.
func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
