package parser

// Lexer tokenizes the position/inventory interchange grammar: decimal
// numbers, uppercase currency codes, ISO dates, and the few punctuation
// symbols of the cost annotation. Single pass, no backtracking.
type Lexer struct {
	source   string
	pos      int       // current byte position
	line     int       // current line (1-indexed)
	column   int       // current column (1-indexed)
	interner *Interner // canonical currency strings
}

// NewLexer creates a lexer over the given input.
func NewLexer(source string) *Lexer {
	return &Lexer{
		source:   source,
		line:     1,
		column:   1,
		interner: NewInterner(8),
	}
}

// Next scans and returns the next token, or an EOF token once the input is
// exhausted.
func (l *Lexer) Next() Token {
	l.skipWhitespace()

	if l.pos >= len(l.source) {
		return Token{Type: EOF, Line: l.line, Column: l.column}
	}

	line, column := l.line, l.column
	switch c := l.source[l.pos]; {
	case c == ',':
		l.advance()
		return Token{Type: COMMA, Value: ",", Line: line, Column: column}
	case c == '/':
		l.advance()
		return Token{Type: SLASH, Value: "/", Line: line, Column: column}
	case c == '{':
		l.advance()
		return Token{Type: LBRACE, Value: "{", Line: line, Column: column}
	case c == '}':
		l.advance()
		return Token{Type: RBRACE, Value: "}", Line: line, Column: column}
	case c == '+' || c == '-' || isDigit(c):
		return l.scanNumberOrDate(line, column)
	case isUpper(c):
		return l.scanCurrency(line, column)
	default:
		l.advance()
		return Token{Type: ILLEGAL, Value: string(c), Line: line, Column: column}
	}
}

func (l *Lexer) advance() {
	if l.pos < len(l.source) {
		if l.source[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// scanNumberOrDate disambiguates decimal literals from ISO dates. A date is
// an unsigned run of exactly four digits followed by "-MM-DD"; anything
// else starting with a digit or sign is lexed as a number.
func (l *Lexer) scanNumberOrDate(line, column int) Token {
	start := l.pos

	signed := l.source[l.pos] == '+' || l.source[l.pos] == '-'
	if signed {
		l.advance()
	}

	digits := 0
	for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
		l.advance()
		digits++
	}
	if digits == 0 {
		return Token{Type: ILLEGAL, Value: l.source[start:l.pos], Line: line, Column: column}
	}

	if !signed && digits == 4 && l.pos < len(l.source) && l.source[l.pos] == '-' {
		return l.scanDateRest(start, line, column)
	}

	if l.pos < len(l.source) && l.source[l.pos] == '.' {
		l.advance()
		frac := 0
		for l.pos < len(l.source) && isDigit(l.source[l.pos]) {
			l.advance()
			frac++
		}
		if frac == 0 {
			return Token{Type: ILLEGAL, Value: l.source[start:l.pos], Line: line, Column: column}
		}
	}

	return Token{Type: NUMBER, Value: l.source[start:l.pos], Line: line, Column: column}
}

// scanDateRest consumes "-MM-DD" after the four year digits.
func (l *Lexer) scanDateRest(start, line, column int) Token {
	for group := 0; group < 2; group++ {
		if l.pos >= len(l.source) || l.source[l.pos] != '-' {
			return Token{Type: ILLEGAL, Value: l.source[start:l.pos], Line: line, Column: column}
		}
		l.advance()
		for i := 0; i < 2; i++ {
			if l.pos >= len(l.source) || !isDigit(l.source[l.pos]) {
				return Token{Type: ILLEGAL, Value: l.source[start:l.pos], Line: line, Column: column}
			}
			l.advance()
		}
	}
	return Token{Type: DATE, Value: l.source[start:l.pos], Line: line, Column: column}
}

func (l *Lexer) scanCurrency(line, column int) Token {
	start := l.pos
	for l.pos < len(l.source) && (isUpper(l.source[l.pos]) || isDigit(l.source[l.pos])) {
		l.advance()
	}
	return Token{
		Type:   CURRENCY,
		Value:  l.interner.Intern(l.source[start:l.pos]),
		Line:   line,
		Column: column,
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
