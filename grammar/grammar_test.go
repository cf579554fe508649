package grammar

import "testing"

const (
	symE  Symbol = "E"
	symT  Symbol = "T"
	symF  Symbol = "F"
	plus  Symbol = "PLUS"
	star  Symbol = "STAR"
	lpar  Symbol = "LPAREN"
	rpar  Symbol = "RPAREN"
	ident Symbol = "IDENT"
)

func exprGrammar(t *testing.T) *Grammar {
	t.Helper()
	b := NewGrammarBuilder()
	noop := func(children []any, named map[string]any) any { return nil }

	b, err := b.AddProduction("E -> E PLUS T", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	b, err = b.AddProduction("E -> T", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	b, err = b.AddProduction("T -> T STAR F", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	b, err = b.AddProduction("T -> F", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	b, err = b.AddProduction("F -> LPAREN E RPAREN", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	b, err = b.AddProduction("F -> IDENT", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}

	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestFirstSetsOfClassicExpressionGrammar(t *testing.T) {
	g := exprGrammar(t)

	for _, sym := range []Symbol{symE, symT, symF} {
		fs := g.First(sym)
		if !fs.Contains(lpar) {
			t.Errorf("FIRST(%s) missing %s", sym, lpar)
		}
		if !fs.Contains(ident) {
			t.Errorf("FIRST(%s) missing %s", sym, ident)
		}
		if len(fs) != 2 {
			t.Errorf("FIRST(%s) = %v, want exactly {%s,%s}", sym, fs, lpar, ident)
		}
	}
}

func TestFirstFixPointIsStableAcrossRecomputation(t *testing.T) {
	g := exprGrammar(t)
	first := g.First(symE)
	second := FirstSet(computeFirstSets(g).sets[symE])
	if len(first) != len(second) {
		t.Fatalf("FIRST(E) changed across calls: %v vs %v", first, second)
	}
	for t2 := range first {
		if !second[t2] {
			t.Errorf("FIRST(E) lost member %s on recomputation", t2)
		}
	}
}

func TestDuplicateProductionIsGrammarError(t *testing.T) {
	b := NewGrammarBuilder()
	noop := func(children []any, named map[string]any) any { return nil }
	b, err := b.AddProduction("E -> T", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	_, err = b.AddProduction("E -> T", noop)
	if err == nil {
		t.Fatal("expected GrammarError for duplicate production")
	}
	if _, ok := err.(*GrammarError); !ok {
		t.Errorf("err type = %T, want *GrammarError", err)
	}
}

func TestMalformedProductionStringIsParseError(t *testing.T) {
	b := NewGrammarBuilder()
	noop := func(children []any, named map[string]any) any { return nil }
	_, err := b.AddProduction("E T", noop)
	if err == nil {
		t.Fatal("expected GrammarParseError for missing '->'")
	}
	if _, ok := err.(*GrammarParseError); !ok {
		t.Errorf("err type = %T, want *GrammarParseError", err)
	}
}

func TestDuplicateSlotNameIsParseError(t *testing.T) {
	b := NewGrammarBuilder()
	noop := func(children []any, named map[string]any) any { return nil }
	_, err := b.AddProduction("E -> T<x> PLUS T<x>", noop)
	if err == nil {
		t.Fatal("expected GrammarParseError for duplicate slot name")
	}
	if _, ok := err.(*GrammarParseError); !ok {
		t.Errorf("err type = %T, want *GrammarParseError", err)
	}
}

func TestNamedSlotsAreRecorded(t *testing.T) {
	b := NewGrammarBuilder()
	noop := func(children []any, named map[string]any) any { return nil }
	b, err := b.AddProduction("E -> T<left> PLUS T<right>", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	prods := g.ProductionsFor(symE)
	if len(prods) != 1 {
		t.Fatalf("got %d productions for E, want 1", len(prods))
	}
	if prods[0].Slots[0] != "left" || prods[0].Slots[2] != "right" {
		t.Errorf("slots = %v, want {0:left, 2:right}", prods[0].Slots)
	}
}

func TestStartSymbolDefaultsToFirstProductionLHS(t *testing.T) {
	g := exprGrammar(t)
	if g.Start() != symE {
		t.Errorf("Start() = %s, want %s", g.Start(), symE)
	}
}

func TestPrecedenceOfRightmostTerminal(t *testing.T) {
	b := NewGrammarBuilder()
	noop := func(children []any, named map[string]any) any { return nil }
	b.AddPrecedence(LeftAssoc, plus)
	b.AddPrecedence(LeftAssoc, star)
	b, err := b.AddProduction("E -> E PLUS T", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	// T needs a production of its own to be a non-terminal; otherwise it
	// is a terminal by elimination and would be the rightmost terminal.
	b, err = b.AddProduction("T -> IDENT", noop)
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	level, assoc, ok := g.PrecedenceOf(g.Productions()[0])
	if !ok {
		t.Fatal("expected a resolvable precedence")
	}
	if level != 0 || assoc != LeftAssoc {
		t.Errorf("level=%d assoc=%v, want level=0 assoc=LeftAssoc", level, assoc)
	}
}

func TestExplicitPriorityOverridesRightmostTerminal(t *testing.T) {
	b := NewGrammarBuilder()
	noop := func(children []any, named map[string]any) any { return nil }
	b.AddPrecedence(LeftAssoc, plus)
	b.AddPrecedence(LeftAssoc, star)
	b, err := b.AddProduction("E -> E PLUS T", noop, WithPriority(string(star)))
	if err != nil {
		t.Fatalf("AddProduction: %v", err)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	level, _, ok := g.PrecedenceOf(g.Productions()[0])
	if !ok || level != 1 {
		t.Errorf("level=%d ok=%v, want level=1 (star's block) via explicit priority", level, ok)
	}
}
