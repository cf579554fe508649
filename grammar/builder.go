package grammar

import (
	"strings"
)

// ProductionOption customizes a production at registration time.
type ProductionOption func(*Production)

// WithPriority tags a production with an explicit precedence label,
// overriding the default "precedence of the rightmost terminal" rule.
func WithPriority(label string) ProductionOption {
	return func(p *Production) { p.Priority = label }
}

// GrammarBuilder accumulates productions and precedence blocks and
// compiles them into an immutable Grammar. This is the builder-based
// replacement for the teacher's struct-literal declarative style
// (tooling/grammar/examples.go's ExampleSyntacticGrammar), generalized per
// spec §9's design note.
type GrammarBuilder struct {
	productions []Production
	precedence  []PrecedenceBlock
	start       Symbol
	startSet    bool
}

// NewGrammarBuilder creates an empty builder.
func NewGrammarBuilder() *GrammarBuilder {
	return &GrammarBuilder{}
}

// AddProduction parses a production string of the form
// "LHS -> Sym1 Sym2<slot> Sym3" and registers it with callback cb. A
// `<name>` suffix on a symbol assigns that symbol's position a name, so
// the callback can look it up in its named map instead of by position;
// repeating the same name twice in one production is a GrammarParseError.
// The first registered production's LHS becomes the grammar's start
// symbol unless StartSymbol overrides it.
func (b *GrammarBuilder) AddProduction(production string, cb Callback, opts ...ProductionOption) (*GrammarBuilder, error) {
	lhs, rhs, slots, err := parseProduction(production)
	if err != nil {
		return nil, err
	}

	p := Production{LHS: lhs, RHS: rhs, Callback: cb, Slots: slots}
	for _, opt := range opts {
		opt(&p)
	}

	for _, existing := range b.productions {
		if existing.key() == p.key() {
			return nil, &GrammarError{LHS: p.LHS, RHS: p.RHS}
		}
	}

	if !b.startSet {
		b.start = lhs
		b.startSet = true
	}

	b.productions = append(b.productions, p)
	return b, nil
}

// StartSymbol overrides the default "LHS of the first registered
// production" start symbol.
func (b *GrammarBuilder) StartSymbol(sym Symbol) *GrammarBuilder {
	b.start = sym
	b.startSet = true
	return b
}

// AddPrecedence appends a precedence block; blocks are declared from
// loosest to tightest binding, and a block's index in the resulting slice
// is its precedence level.
func (b *GrammarBuilder) AddPrecedence(assoc Associativity, terminals ...Symbol) *GrammarBuilder {
	b.precedence = append(b.precedence, PrecedenceBlock{Assoc: assoc, Terminals: terminals})
	return b
}

// Build freezes the builder into an immutable Grammar. FIRST sets are not
// computed here; they are computed lazily and memoized on first call to
// Grammar.First.
func (b *GrammarBuilder) Build() (*Grammar, error) {
	if len(b.productions) == 0 {
		return nil, &GrammarParseError{Production: "", Reason: "grammar has no registered productions"}
	}
	return &Grammar{
		productions: b.productions,
		precedence:  b.precedence,
		start:       b.start,
	}, nil
}

func parseProduction(production string) (Symbol, []Symbol, map[int]string, error) {
	arrow := "->"
	idx := strings.Index(production, arrow)
	if idx < 0 {
		return "", nil, nil, &GrammarParseError{Production: production, Reason: "missing '->' separator"}
	}

	lhsText := strings.TrimSpace(production[:idx])
	if lhsText == "" {
		return "", nil, nil, &GrammarParseError{Production: production, Reason: "empty left-hand side"}
	}
	if strings.ContainsAny(lhsText, " \t") {
		return "", nil, nil, &GrammarParseError{Production: production, Reason: "left-hand side must be a single symbol"}
	}

	rhsText := strings.TrimSpace(production[idx+len(arrow):])
	fields := strings.Fields(rhsText)

	rhs := make([]Symbol, 0, len(fields))
	slots := make(map[int]string)
	seenNames := make(map[string]bool)

	for i, field := range fields {
		sym, name, hasName, err := splitSlot(field)
		if err != nil {
			return "", nil, nil, &GrammarParseError{Production: production, Reason: err.Error()}
		}
		if hasName {
			if seenNames[name] {
				return "", nil, nil, &GrammarParseError{Production: production, Reason: "duplicate slot name " + name}
			}
			seenNames[name] = true
			slots[i] = name
		}
		rhs = append(rhs, sym)
	}

	return Symbol(lhsText), rhs, slots, nil
}

func splitSlot(field string) (Symbol, string, bool, error) {
	open := strings.IndexByte(field, '<')
	if open < 0 {
		return Symbol(field), "", false, nil
	}
	if !strings.HasSuffix(field, ">") {
		return "", "", false, &unterminatedSlotError{field}
	}
	name := field[open+1 : len(field)-1]
	if name == "" {
		return "", "", false, &unterminatedSlotError{field}
	}
	return Symbol(field[:open]), name, true, nil
}

type unterminatedSlotError struct{ field string }

func (e *unterminatedSlotError) Error() string {
	return "malformed slot name in " + e.field
}
