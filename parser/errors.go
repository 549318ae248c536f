package parser

import "fmt"

// Position locates an error in the parsed input. Filename is empty when
// parsing a bare string; callers embedding inventory text in a larger file
// fill it in when wrapping.
type Position struct {
	Filename string
	Line     int
	Column   int
}

// ParseError represents a syntax error in a position or inventory string.
// A failed parse never partially applies: the caller receives either a
// complete value or this error.
type ParseError struct {
	Pos     Position
	Message string
}

func (e *ParseError) Error() string {
	if e.Pos.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename, e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// GetPosition returns the error's input position for context rendering.
func (e *ParseError) GetPosition() Position {
	return e.Pos
}

// NewParseError creates a parse error at the given token position.
func NewParseError(tok Token, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     Position{Line: tok.Line, Column: tok.Column},
		Message: fmt.Sprintf(format, args...),
	}
}
