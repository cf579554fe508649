// Package keywordindex resolves a lexer's literal (non-regex) token rules
// through a single Aho-Corasick automaton over all of them instead of one
// NFA simulation per literal rule. The lexer package gives literal rules no
// NFA simulation of its own, so an Index is the only way such a rule is
// ever accepted: with a nil Index, literal rules never match.
package keywordindex

import "github.com/coregx/ahocorasick"

// Literal names one literal-pattern rule's exact text, tagged with the
// index the owning lexer uses to refer back to its rule.
type Literal struct {
	Text      string
	RuleIndex int
}

// Index is a compiled Aho-Corasick automaton over a lexer's literal rules.
type Index struct {
	automaton  *ahocorasick.Automaton
	ruleByText map[string]int
}

// Build compiles lits into an Index. It returns nil when there is nothing
// to index — callers must treat a nil *Index as "no prefilter available".
func Build(lits []Literal) *Index {
	if len(lits) == 0 {
		return nil
	}

	builder := ahocorasick.NewBuilder()
	ruleByText := make(map[string]int, len(lits))
	for _, lit := range lits {
		builder.AddPattern([]byte(lit.Text))
		ruleByText[lit.Text] = lit.RuleIndex
	}

	automaton, err := builder.Build()
	if err != nil {
		// A set of plain literal strings can never fail to compile into an
		// Aho-Corasick automaton; treat this as "no prefilter" instead of
		// surfacing a build-time error.
		return nil
	}
	return &Index{automaton: automaton, ruleByText: ruleByText}
}

// FindLiteralAt reports the registered literal rule, if any, whose exact
// text begins at byte offset at in data. It never reports a rule that
// wasn't registered via Build, so a caller can safely treat its result as
// an additional, always-correct match candidate alongside whatever its own
// NFA simulation finds.
func (idx *Index) FindLiteralAt(data []byte, at int) (ruleIndex int, ok bool) {
	if idx == nil {
		return 0, false
	}
	m := idx.automaton.Find(data, at)
	if m == nil || m.Start != at {
		return 0, false
	}
	ruleIndex, ok = idx.ruleByText[string(data[m.Start:m.End])]
	return ruleIndex, ok
}
