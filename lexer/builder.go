package lexer

import (
	"github.com/shadowCow/ptk/keywordindex"
	"github.com/shadowCow/ptk/nfa"
	"github.com/shadowCow/ptk/regexsrc"
	"github.com/shadowCow/ptk/token"
)

// RuleCallback turns a matched lexeme into a token. Returning a token whose
// Type is token.None tells the lexer to swallow the match silently — the
// idiomatic way to write whitespace and comment rules. The lexer handle lx
// is the same instance the rule matched against; a callback may call
// lx.InstallConsumer to hand control of subsequent raw characters to a
// Consumer before returning — the string-literal or block-comment case a
// regular-language rule can recognize the start of but not finish matching
// on its own. When a callback installs a consumer, the token it returns is
// discarded: emission is deferred to whatever token the consumer produces.
type RuleCallback func(lx *Lexer, value string, pos token.Position) token.Token

type rule struct {
	name        string
	source      string
	template    *nfa.NFA
	callback    RuleCallback
	priority    int
	literalText string
	isLiteral   bool
}

// RuleOption customizes a rule at registration time.
type RuleOption func(*rule)

// WithName attaches a diagnostic name to a rule, surfaced by ptkdebug and
// in error messages.
func WithName(name string) RuleOption {
	return func(r *rule) { r.name = name }
}

// metachars are the regex grammar's special characters; a pattern built
// from none of them denotes exactly its own text, making it eligible for
// the keywordindex fast path.
const metachars = `.*+?()|[]{}\`

func literalText(pattern string) (string, bool) {
	for _, r := range pattern {
		for _, m := range metachars {
			if r == m {
				return "", false
			}
		}
	}
	return pattern, true
}

// LexerBuilder accumulates rules and compiles them into an immutable
// Lexer. This is this toolkit's builder-based replacement for decorator-
// style registration: rules are added one call at a time and frozen by
// Build.
type LexerBuilder struct {
	rules  []*rule
	ignore func(token.Token) bool
}

// NewLexerBuilder creates an empty builder.
func NewLexerBuilder() *LexerBuilder {
	return &LexerBuilder{}
}

// AddRule compiles pattern (in this toolkit's regex grammar, see package
// regexsrc) into an NFA template and registers it. Rules are tried in
// registration order; when two rules produce the same longest match, the
// earliest-registered rule wins.
func (b *LexerBuilder) AddRule(pattern string, cb RuleCallback, opts ...RuleOption) (*LexerBuilder, error) {
	template, err := regexsrc.Compile(pattern)
	if err != nil {
		return nil, err
	}

	r := &rule{source: pattern, template: template, callback: cb, priority: len(b.rules)}
	if text, ok := literalText(pattern); ok {
		r.literalText = text
		r.isLiteral = true
	}
	for _, opt := range opts {
		opt(r)
	}

	b.rules = append(b.rules, r)
	return b, nil
}

// Ignore registers a predicate run against every finalized token before it
// reaches the sink; tokens it accepts are dropped silently. This is the
// builder-exposed ignore policy.
func (b *LexerBuilder) Ignore(pred func(token.Token) bool) *LexerBuilder {
	b.ignore = pred
	return b
}

// Build freezes the builder into an immutable Lexer. The returned Lexer
// owns read-only NFA templates shared by every clone made from it; call
// Clone to get an instance with its own live simulation state.
func (b *LexerBuilder) Build() (*Lexer, error) {
	if len(b.rules) == 0 {
		return nil, &LexerError{Reason: "lexer has no registered rules"}
	}

	var literals []keywordindex.Literal
	for _, r := range b.rules {
		if r.isLiteral {
			literals = append(literals, keywordindex.Literal{Text: r.literalText, RuleIndex: r.priority})
		}
	}

	lx := &Lexer{rules: b.rules, ignore: b.ignore, literalIndex: keywordindex.Build(literals)}
	lx.reset()
	return lx, nil
}
