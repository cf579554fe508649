// Command ptk-demo wires a builder-constructed lexer and grammar together
// over an input file (or stdin) and tokenizes it, exercising the ptk
// toolkit end to end. Grounded on the teacher's lang/cmd/cow-lang/main.go
// + lang/in/cli/cli.go argument-parsing idiom.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shadowCow/ptk/grammar"
	"github.com/shadowCow/ptk/lexer"
	"github.com/shadowCow/ptk/ptkdebug"
	"github.com/shadowCow/ptk/token"
)

const (
	tokIdent  token.Type = "IDENT"
	tokNumber token.Type = "NUMBER"
	tokPlus   token.Type = "PLUS"
	tokMinus  token.Type = "MINUS"
	tokStar   token.Type = "STAR"
	tokSlash  token.Type = "SLASH"
	tokLParen token.Type = "LPAREN"
	tokRParen token.Type = "RPAREN"
)

func buildDemoLexer() (*lexer.Lexer, error) {
	b := lexer.NewLexerBuilder()
	simple := func(tt token.Type) lexer.RuleCallback {
		return func(lx *lexer.Lexer, v string, pos token.Position) token.Token {
			return token.Token{Type: tt, Value: v, Pos: pos}
		}
	}

	var err error
	if b, err = b.AddRule(`[a-zA-Z_][a-zA-Z0-9_]*`, simple(tokIdent), lexer.WithName("ident")); err != nil {
		return nil, err
	}
	if b, err = b.AddRule(`[0-9]+(\.[0-9]+)?`, simple(tokNumber), lexer.WithName("number")); err != nil {
		return nil, err
	}
	if b, err = b.AddRule(`\+`, simple(tokPlus), lexer.WithName("plus")); err != nil {
		return nil, err
	}
	if b, err = b.AddRule(`-`, simple(tokMinus), lexer.WithName("minus")); err != nil {
		return nil, err
	}
	if b, err = b.AddRule(`\*`, simple(tokStar), lexer.WithName("star")); err != nil {
		return nil, err
	}
	if b, err = b.AddRule(`/`, simple(tokSlash), lexer.WithName("slash")); err != nil {
		return nil, err
	}
	if b, err = b.AddRule(`\(`, simple(tokLParen), lexer.WithName("lparen")); err != nil {
		return nil, err
	}
	if b, err = b.AddRule(`\)`, simple(tokRParen), lexer.WithName("rparen")); err != nil {
		return nil, err
	}
	if b, err = b.AddRule(`[ \t\n]+`, func(lx *lexer.Lexer, v string, pos token.Position) token.Token {
		return token.Token{Type: token.None, Value: v, Pos: pos}
	}, lexer.WithName("whitespace")); err != nil {
		return nil, err
	}

	return b.Build()
}

func buildDemoGrammar() (*grammar.Grammar, error) {
	b := grammar.NewGrammarBuilder()
	noop := func(children []any, named map[string]any) any { return nil }

	b.AddPrecedence(grammar.LeftAssoc, tokPlusSym, tokMinusSym)
	b.AddPrecedence(grammar.LeftAssoc, tokStarSym, tokSlashSym)

	var err error
	if b, err = b.AddProduction("E -> E PLUS T", noop); err != nil {
		return nil, err
	}
	if b, err = b.AddProduction("E -> E MINUS T", noop); err != nil {
		return nil, err
	}
	if b, err = b.AddProduction("E -> T", noop); err != nil {
		return nil, err
	}
	if b, err = b.AddProduction("T -> T STAR F", noop); err != nil {
		return nil, err
	}
	if b, err = b.AddProduction("T -> T SLASH F", noop); err != nil {
		return nil, err
	}
	if b, err = b.AddProduction("T -> F", noop); err != nil {
		return nil, err
	}
	if b, err = b.AddProduction("F -> LPAREN E RPAREN", noop); err != nil {
		return nil, err
	}
	if b, err = b.AddProduction("F -> IDENT", noop); err != nil {
		return nil, err
	}
	if b, err = b.AddProduction("F -> NUMBER", noop); err != nil {
		return nil, err
	}

	return b.Build()
}

const (
	tokPlusSym  grammar.Symbol = "PLUS"
	tokMinusSym grammar.Symbol = "MINUS"
	tokStarSym  grammar.Symbol = "STAR"
	tokSlashSym grammar.Symbol = "SLASH"
)

func run(args []string, out io.Writer) error {
	debug := false
	var filePath string

	for _, arg := range args[1:] {
		if arg == "--debug" {
			debug = true
			continue
		}
		filePath = arg
	}

	var src []byte
	var err error
	if filePath == "" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(filePath)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	lx, err := buildDemoLexer()
	if err != nil {
		return fmt.Errorf("building lexer: %w", err)
	}
	g, err := buildDemoGrammar()
	if err != nil {
		return fmt.Errorf("building grammar: %w", err)
	}

	if debug {
		ptkdebug.PrintGrammar(g, out)
		ptkdebug.PrintFirstSets(g, out)
		ptkdebug.PrintPrecedence(g, out)
	}

	tokens, err := lx.Parse(string(src))
	if err != nil {
		return fmt.Errorf("tokenizing: %w", err)
	}

	for _, tok := range tokens {
		fmt.Fprintf(out, "%s\n", tok.String())
	}
	return nil
}

func main() {
	if len(os.Args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: ptk-demo [--debug] [file]")
		os.Exit(1)
	}
	if err := run(os.Args, os.Stdout); err != nil {
		log.Fatal(err)
	}
}
