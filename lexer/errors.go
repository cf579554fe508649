package lexer

import (
	"fmt"

	"github.com/shadowCow/ptk/token"
)

// LexerError reports that no registered rule could match at the current
// position, or that a Lexer was built with no rules at all.
type LexerError struct {
	Pos    token.Position
	Reason string
}

func (e *LexerError) Error() string {
	if e.Pos == (token.Position{}) {
		return fmt.Sprintf("lexer: %s", e.Reason)
	}
	return fmt.Sprintf("lexer: %s (%s)", e.Reason, e.Pos)
}
