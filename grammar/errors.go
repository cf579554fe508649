package grammar

import "fmt"

// GrammarError reports a duplicate (LHS, RHS) production, in the teacher's
// GrammarNotLL1Error/Conflict idiom: a typed struct with a hand-written
// Error() rather than a bare errors.New string.
type GrammarError struct {
	LHS Symbol
	RHS []Symbol
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("grammar: duplicate production %s -> %v", e.LHS, e.RHS)
}

// GrammarParseError reports a malformed production string passed to
// GrammarBuilder.AddProduction: unparseable symbols, or a repeated `<name>`
// slot label within one production. GrammarBuilder.Build also returns it,
// with an empty Production, when no production was registered.
type GrammarParseError struct {
	Production string
	Reason     string
}

func (e *GrammarParseError) Error() string {
	return fmt.Sprintf("grammar: invalid production %q: %s", e.Production, e.Reason)
}
