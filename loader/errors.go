package loader

import (
	"fmt"

	"github.com/robinvdvleuten/holdings/parser"
)

// InvalidAccountError is returned when a holdings line names an account
// that does not follow the CATEGORY:Segment[:Segment...] form.
type InvalidAccountError struct {
	Account string
	Reason  string
	Pos     parser.Position
}

func (e *InvalidAccountError) Error() string {
	return fmt.Sprintf("%s:%d: invalid account %q: %s",
		e.Pos.Filename, e.Pos.Line, e.Account, e.Reason)
}

// GetPosition returns the error's source position for context rendering.
func (e *InvalidAccountError) GetPosition() parser.Position {
	return e.Pos
}

// IncludeError is returned when an include directive cannot be resolved.
type IncludeError struct {
	Reason string
	Pos    parser.Position
}

func (e *IncludeError) Error() string {
	return fmt.Sprintf("%s:%d: invalid include: %s",
		e.Pos.Filename, e.Pos.Line, e.Reason)
}

// GetPosition returns the error's source position for context rendering.
func (e *IncludeError) GetPosition() parser.Position {
	return e.Pos
}
