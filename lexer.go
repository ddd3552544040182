package xdrls

import "fmt"

// lexer scans bytes rather than runes so token positions are byte
// offsets; XDR sources are ASCII and every downstream consumer works in
// byte spans.
type lexer struct {
	data      []byte
	len       int
	pos       int
	startPos  int
	startLine int
	startCol  int

	line   int
	column int

	onError func(error)
	tokens  []token
}

func lexFile(data []byte, onError func(error)) ([]token, []error) {
	var errors []error
	s := &lexer{
		data:   data,
		len:    len(data),
		line:   1,
		column: 1,
		onError: func(err error) {
			errors = append(errors, err)
			if onError != nil {
				onError(err)
			}
		},
	}

	s.scan()

	return s.tokens, errors
}

func (s *lexer) eof() bool {
	return s.pos >= s.len
}

func (s *lexer) peek() byte {
	return s.data[s.pos]
}

func (s *lexer) peek1() byte {
	if s.pos+1 >= s.len {
		return 0
	}
	return s.data[s.pos+1]
}

func (s *lexer) mark() {
	s.startPos = s.pos
	s.startLine = s.line
	s.startCol = s.column
}

func (s *lexer) marked() string {
	return string(s.data[s.startPos:s.pos])
}

func (s *lexer) advance() byte {
	v := s.data[s.pos]
	s.pos++
	s.column++
	if v == '\n' {
		s.line++
		s.column = 1
	}
	return v
}

func (s *lexer) errorf(msg string, args ...interface{}) {
	s.onError(fmt.Errorf("%s at %d:%d", fmt.Sprintf(msg, args...), s.startLine, s.startCol))
}

func (s *lexer) pushToken(t tokenType) {
	s.tokens = append(s.tokens, token{
		Type:   t,
		Value:  s.marked(),
		Pos:    s.startPos,
		Line:   s.startLine,
		Column: s.startCol,
	})
}

func (s *lexer) pushSimple(t tokenType) {
	s.mark()
	s.advance()
	s.pushToken(t)
}

func isAscii(r byte) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_'
}

func isDigit(r byte) bool {
	return r >= '0' && r <= '9'
}

func isHex(r byte) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isAlpha(r byte) bool {
	return isAscii(r) || isDigit(r)
}

var simpleTokens = map[byte]tokenType{
	'=': tokenTypeEqual,
	';': tokenTypeSemi,
	'(': tokenTypeLeftParen,
	')': tokenTypeRightParen,
	'{': tokenTypeLeftCurly,
	'}': tokenTypeRightCurly,
	'<': tokenTypeLeftAngled,
	'>': tokenTypeRightAngled,
	'[': tokenTypeLeftBracket,
	']': tokenTypeRightBracket,
	',': tokenTypeComma,
	':': tokenTypeColon,
	'*': tokenTypeStar,
}

func (s *lexer) scan() {
	for !s.eof() {
		p := s.peek()
		switch p {
		case ' ', '\n', '\t', '\r':
			s.advance()
		case '#', '%':
			// Preprocessor directives and pass-through lines run to
			// end of line and are kept as comments.
			s.advance()
			s.mark()
			for !s.eof() && s.peek() != '\n' {
				s.advance()
			}
			s.pushToken(tokenTypeComment)
		case '/':
			s.parseBlockComment()
		case '-':
			if isDigit(s.peek1()) {
				s.parseNumber()
			} else {
				s.mark()
				s.errorf("Unexpected '-'")
				s.advance()
			}
		default:
			if simple, ok := simpleTokens[p]; ok {
				s.pushSimple(simple)
			} else if isDigit(p) {
				s.parseNumber()
			} else if isAscii(p) {
				s.parseIdentifier()
			} else {
				s.mark()
				s.errorf("Unexpected '%c'", p)
				s.advance()
			}
		}
	}
	s.mark()
	s.tokens = append(s.tokens, token{Type: tokenTypeEOF, Pos: s.startPos, Line: s.line, Column: s.column})
}

func (s *lexer) parseBlockComment() {
	s.mark()
	s.advance() // Consume /
	if s.eof() || s.peek() != '*' {
		s.errorf("Unexpected '/'")
		return
	}
	s.advance() // Consume *
	start := s.pos
	for {
		if s.eof() {
			s.errorf("Unterminated comment")
			return
		}
		if s.peek() == '*' && s.peek1() == '/' {
			break
		}
		s.advance()
	}
	value := string(s.data[start:s.pos])
	s.advance() // Consume *
	s.advance() // Consume /
	s.tokens = append(s.tokens, token{
		Type:   tokenTypeComment,
		Value:  value,
		Pos:    s.startPos,
		Line:   s.startLine,
		Column: s.startCol,
	})
}

// parseNumber accepts decimal constants with an optional leading minus,
// hex constants with a 0x prefix, and octal constants with a leading
// zero. The raw spelling is kept; nothing is evaluated.
func (s *lexer) parseNumber() {
	s.mark()
	if s.peek() == '-' {
		s.advance()
	}
	if s.peek() == '0' && (s.peek1() == 'x' || s.peek1() == 'X') {
		s.advance() // Consume 0
		s.advance() // Consume x
		if s.eof() || !isHex(s.peek()) {
			s.errorf("Malformed hex constant")
		}
		for !s.eof() && isHex(s.peek()) {
			s.advance()
		}
	} else {
		for !s.eof() && isDigit(s.peek()) {
			s.advance()
		}
	}
	s.pushToken(tokenTypeNumber)
}

func (s *lexer) parseIdentifier() {
	s.mark()
	for !s.eof() && isAlpha(s.peek()) {
		s.advance()
	}
	s.pushToken(tokenTypeIdentifier)
}
