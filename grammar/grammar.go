// Package grammar holds productions, operator-precedence declarations, and
// the FIRST-set fixed-point analysis an external LR table constructor
// consumes. Unlike the teacher's LL(1) grammar model — a tree of
// SynSequence/SynAlternative/SynZeroOrMore combinators — productions here
// are flat (lhs, rhs-sequence) records, since an LR builder wants the
// right-hand side as a plain symbol sequence rather than a nested
// expression tree.
package grammar

import "sync"

// Symbol names a terminal or non-terminal.
type Symbol string

// EOF is the sentinel end-of-input terminal, distinct from any
// user-defined symbol.
const EOF Symbol = "$EOF"

// Associativity is the associativity declared for a precedence block.
type Associativity int

const (
	LeftAssoc Associativity = iota
	RightAssoc
	NonAssoc
)

// Callback receives the matched child values of a production, keyed by
// slot name where the production string named them, positionally
// otherwise.
type Callback func(children []any, named map[string]any) any

// Production is one grammar rule: lhs derives the ordered rhs sequence.
// Equality and hashing are on (LHS, RHS) alone; two productions with the
// same (LHS, RHS) but different callbacks are still duplicates.
type Production struct {
	LHS      Symbol
	RHS      []Symbol
	Callback Callback
	Priority string
	// Slots maps an RHS position to the name a production string assigned
	// it (via a `<name>` suffix), so a callback can receive children by
	// name instead of position.
	Slots map[int]string
}

func (p Production) key() string {
	s := string(p.LHS) + "->"
	for _, sym := range p.RHS {
		s += string(sym) + " "
	}
	return s
}

// PrecedenceBlock groups terminals sharing an associativity. Its index in
// Grammar.Precedence is its precedence level: a higher index binds
// tighter.
type PrecedenceBlock struct {
	Assoc     Associativity
	Terminals []Symbol
}

// Grammar is an immutable collection of productions, precedence blocks,
// and a start symbol, plus a lazily computed and memoized FIRST table.
// Grammar is built once via GrammarBuilder and not mutated afterward;
// Grammar.First is safe to call concurrently.
type Grammar struct {
	productions []Production
	precedence  []PrecedenceBlock
	start       Symbol

	firstOnce  sync.Once
	firstTable *firstSets
}

// Productions returns every registered production, in registration order.
func (g *Grammar) Productions() []Production {
	return g.productions
}

// Start returns the grammar's start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Precedence returns the declared precedence blocks in ascending-binding
// order (index 0 binds loosest).
func (g *Grammar) Precedence() []PrecedenceBlock {
	return g.precedence
}

// PrecedenceOf reports the precedence level of a production: its declared
// Priority label if one was set and matches a terminal in some block by
// name; otherwise the precedence of its rightmost terminal; otherwise
// false.
func (g *Grammar) PrecedenceOf(p Production) (level int, assoc Associativity, ok bool) {
	if p.Priority != "" {
		if lvl, a, found := g.levelOf(Symbol(p.Priority)); found {
			return lvl, a, true
		}
	}
	for i := len(p.RHS) - 1; i >= 0; i-- {
		if g.isTerminal(p.RHS[i]) {
			if lvl, a, found := g.levelOf(p.RHS[i]); found {
				return lvl, a, true
			}
			return 0, LeftAssoc, false
		}
	}
	return 0, LeftAssoc, false
}

func (g *Grammar) levelOf(sym Symbol) (int, Associativity, bool) {
	for i, block := range g.precedence {
		for _, t := range block.Terminals {
			if t == sym {
				return i, block.Assoc, true
			}
		}
	}
	return 0, LeftAssoc, false
}

// NonTerminals returns every distinct production LHS, in first-registration
// order. An RHS symbol that is never used as an LHS anywhere in the grammar
// is a terminal by elimination and is not included.
func (g *Grammar) NonTerminals() []Symbol {
	lhs := make(map[Symbol]bool)
	for _, p := range g.productions {
		lhs[p.LHS] = true
	}
	seen := make(map[Symbol]bool)
	var out []Symbol
	for _, p := range g.productions {
		if !seen[p.LHS] {
			seen[p.LHS] = true
			out = append(out, p.LHS)
		}
	}
	return out
}

func (g *Grammar) isTerminal(sym Symbol) bool {
	for _, p := range g.productions {
		if p.LHS == sym {
			return false
		}
	}
	return true
}

// ProductionsFor returns every production whose LHS is sym, in
// registration order.
func (g *Grammar) ProductionsFor(sym Symbol) []Production {
	var out []Production
	for _, p := range g.productions {
		if p.LHS == sym {
			out = append(out, p)
		}
	}
	return out
}
