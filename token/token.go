// Package token defines the lexical token and source-position types shared
// by the regex engine, the progressive lexer, and the grammar model.
package token

import "fmt"

// Type identifies a category of token. Host programs define their own
// Types via the string values they pass to rule callbacks; this package
// only reserves the two sentinel values below.
type Type string

const (
	// EOF is the reserved end-of-input sentinel type, distinct from any
	// host-defined Type. The lexer package does not emit it: Parse and the
	// token sinks receive only the tokens produced by rules and consumers.
	EOF Type = "$EOF"

	// None is returned by a rule callback to tell the lexer to swallow a
	// match silently instead of emitting a token — the idiomatic way to
	// write whitespace and comment rules without a separate ignore list.
	None Type = ""
)

// Position is a line and column into the source being lexed. Lines are
// 1-based. The lexer advances its internal counter before attaching it to
// each fed character, so the first character of a line is column 1. A
// newline advances Line and resets Column to 0, and the newline character
// itself is attached at column 0 of the new line; its successor climbs back
// to column 1.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// StartPosition is the lexer's pre-advance resting position: the counter
// value before any character of a fresh input has been attached to it.
// Feeding the first character advances Column to 1 before attaching it.
func StartPosition() Position { return Position{Line: 1, Column: 0} }

// Token is a single lexical unit: its category, the exact text matched,
// and where that text began in the source.
type Token struct {
	Type  Type
	Value string
	Pos   Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Type, t.Value, t.Pos)
}
