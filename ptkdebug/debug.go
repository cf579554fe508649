// Package ptkdebug holds pretty-printers for diagnosing a grammar's FIRST
// sets and production list, in the teacher's tooling/ll1/debug.go idiom:
// plain fmt.Fprintf onto a caller-supplied io.Writer, no logging
// dependency. FOLLOW sets and a parse table have no counterpart here —
// this toolkit only specifies FIRST-set and production analysis, leaving
// table construction to an external LR driver.
package ptkdebug

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shadowCow/ptk/grammar"
)

// PrintFirstSets prints FIRST(X) for every non-terminal in g.
func PrintFirstSets(g *grammar.Grammar, out io.Writer) {
	fmt.Fprintln(out, "FIRST SETS:")
	fmt.Fprintln(out, "===========")

	symbols := sortedSymbols(g.NonTerminals())
	for _, sym := range symbols {
		firstSet := g.First(sym)
		terminals := make([]string, 0, len(firstSet))
		for t := range firstSet {
			terminals = append(terminals, string(t))
		}
		sort.Strings(terminals)

		nullable := ""
		if g.IsNullable(sym) {
			nullable = " [nullable]"
		}

		fmt.Fprintf(out, "  FIRST(%s) = {%s}%s\n", sym, strings.Join(terminals, ", "), nullable)
	}
	fmt.Fprintln(out)
}

// PrintGrammar prints the grammar's start symbol and every production.
func PrintGrammar(g *grammar.Grammar, out io.Writer) {
	fmt.Fprintln(out, "GRAMMAR:")
	fmt.Fprintln(out, "========")
	fmt.Fprintf(out, "Start symbol: %s\n\n", g.Start())
	fmt.Fprintln(out, "Productions:")

	for _, p := range g.Productions() {
		fmt.Fprintf(out, "  %s -> %s\n", p.LHS, formatRHS(p.RHS))
	}
	fmt.Fprintln(out)
}

// PrintPrecedence prints the declared precedence blocks, loosest to
// tightest.
func PrintPrecedence(g *grammar.Grammar, out io.Writer) {
	fmt.Fprintln(out, "PRECEDENCE (loosest to tightest):")
	fmt.Fprintln(out, "=================================")
	for i, block := range g.Precedence() {
		terms := make([]string, len(block.Terminals))
		for j, t := range block.Terminals {
			terms[j] = string(t)
		}
		fmt.Fprintf(out, "  %d: %s {%s}\n", i, assocString(block.Assoc), strings.Join(terms, ", "))
	}
	fmt.Fprintln(out)
}

func assocString(a grammar.Associativity) string {
	switch a {
	case grammar.LeftAssoc:
		return "left"
	case grammar.RightAssoc:
		return "right"
	default:
		return "nonassoc"
	}
}

func formatRHS(rhs []grammar.Symbol) string {
	if len(rhs) == 0 {
		return "ε"
	}
	parts := make([]string, len(rhs))
	for i, sym := range rhs {
		parts[i] = string(sym)
	}
	return strings.Join(parts, " ")
}

func sortedSymbols(syms []grammar.Symbol) []grammar.Symbol {
	out := append([]grammar.Symbol(nil), syms...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
