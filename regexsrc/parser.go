// Package regexsrc implements this toolkit's regex surface: a scanner that
// turns pattern text into a flat token stream (CLASS, EXPONENT, LPAREN,
// RPAREN, UNION) and a recursive-descent parser that reduces that stream
// straight into an *nfa.NFA via Thompson's construction. There is no
// separate regex AST — each grammar reduction calls directly into the nfa
// package's construction primitives, exactly the way the automata this
// toolkit is grounded on compile a declarative pattern straight to an NFA
// in one pass.
package regexsrc

import "github.com/shadowCow/ptk/nfa"

// Compile parses pattern and returns the NFA it denotes.
//
// Grammar:
//
//	E1 -> E2 (UNION E2)*
//	E2 -> E3+
//	E3 -> E (EXPONENT)*
//	E  -> LPAREN E1 RPAREN | CLASS
func Compile(pattern string) (*nfa.NFA, error) {
	tokens, err := scan(pattern)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &RegexParseError{Column: 0, Reason: "empty pattern"}
	}

	p := &parser{tokens: tokens}
	result, err := p.parseE1()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		return nil, &RegexParseError{Column: p.tokens[p.pos].column, Reason: "unexpected trailing input"}
	}
	return result, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) endColumn() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].column + 1
}

// parseE1 parses a union of one or more E2 sequences.
func (p *parser) parseE1() (*nfa.NFA, error) {
	left, err := p.parseE2()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokUnion {
			return left, nil
		}
		p.pos++ // consume UNION
		right, err := p.parseE2()
		if err != nil {
			return nil, err
		}
		left = nfa.Union(left, right)
	}
}

// parseE2 parses one or more concatenated E3 terms.
func (p *parser) parseE2() (*nfa.NFA, error) {
	first, err := p.parseE3()
	if err != nil {
		return nil, err
	}

	result := first
	for {
		tok, ok := p.peek()
		if !ok || tok.kind == tokUnion || tok.kind == tokRParen {
			return result, nil
		}
		next, err := p.parseE3()
		if err != nil {
			return nil, err
		}
		result = nfa.Concat(result, next)
	}
}

// parseE3 parses a single atom followed by zero or more exponent suffixes.
func (p *parser) parseE3() (*nfa.NFA, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok := p.peek()
		if !ok || tok.kind != tokExponent {
			return atom, nil
		}
		p.pos++ // consume EXPONENT
		atom = nfa.Exponent(atom, tok.exponent.min, tok.exponent.max)
	}
}

// parseAtom parses "(" E1 ")" or a single CLASS token.
func (p *parser) parseAtom() (*nfa.NFA, error) {
	tok, ok := p.peek()
	if !ok {
		return nil, &RegexParseError{Column: p.endColumn(), Reason: "expected a character class or group, found end of pattern"}
	}

	switch tok.kind {
	case tokClass:
		p.pos++
		return nfa.NewFromClass(tok.class), nil
	case tokLParen:
		p.pos++
		inner, err := p.parseE1()
		if err != nil {
			return nil, err
		}
		close, ok := p.peek()
		if !ok || close.kind != tokRParen {
			return nil, &RegexParseError{Column: p.endColumn(), Reason: "expected closing ')'"}
		}
		p.pos++ // consume RPAREN
		return inner, nil
	default:
		return nil, &RegexParseError{Column: tok.column, Reason: "expected a character class or group"}
	}
}
