package parser

// TokenType represents the type of token scanned from the input.
type TokenType uint8

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	NUMBER   // 123.45 or -123.45
	CURRENCY // USD, GOOG, uppercase alphanumeric
	DATE     // YYYY-MM-DD

	// Symbols
	COMMA  // ,
	SLASH  // /
	LBRACE // {
	RBRACE // }
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	NUMBER:   "NUMBER",
	CURRENCY: "CURRENCY",
	DATE:     "DATE",

	COMMA:  ",",
	SLASH:  "/",
	LBRACE: "{",
	RBRACE: "}",
}

// String returns the human-readable name of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is a single lexeme with its position in the input (1-indexed).
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}
