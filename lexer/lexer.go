// Package lexer implements a progressive, longest-match tokenizer: every
// registered rule's NFA is simulated in parallel, one character at a time,
// and the earliest-registered rule among those tied for the longest match
// wins. Unlike a lexer built on a single precompiled DFA, this lets a
// caller feed characters as they arrive — from a socket, a REPL, anywhere
// the whole input isn't available up front — and still get exactly the
// tokenization a batch tool would have produced.
package lexer

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shadowCow/ptk/keywordindex"
	"github.com/shadowCow/ptk/nfa"
	"github.com/shadowCow/ptk/token"
)

// OnTokenFunc is the synchronous token sink a Lexer delivers finalized
// tokens to.
type OnTokenFunc func(token.Token)

// OnTokenAsyncFunc is the cooperative-task counterpart of OnTokenFunc.
type OnTokenAsyncFunc func(ctx context.Context, tok token.Token) error

// Lexer runs every registered rule's NFA in parallel over a stream of
// characters, with longest-match-then-earliest-registration tie breaking.
// A Lexer's rule templates are immutable and safe to share; its live
// simulation state is not, so concurrent tokenization of independent
// inputs should each use their own Clone.
type Lexer struct {
	rules        []*rule
	ignore       func(token.Token) bool
	literalIndex *keywordindex.Index

	sims           []*nfa.Sim
	active         []bool
	matchRunes     []rune
	matchPositions []token.Position
	pos            token.Position
	maxPos         int
	bestRule       int

	consumer     Consumer
	onToken      OnTokenFunc
	onTokenAsync OnTokenAsyncFunc
}

// OnToken installs the synchronous token sink.
func (lx *Lexer) OnToken(fn OnTokenFunc) { lx.onToken = fn }

// OnTokenAsync installs the asynchronous token sink.
func (lx *Lexer) OnTokenAsync(fn OnTokenAsyncFunc) { lx.onTokenAsync = fn }

// Clone returns a new Lexer sharing this Lexer's immutable rule templates
// but with its own live simulation state and position tracking, reset to
// the start of a fresh input.
func (lx *Lexer) Clone() *Lexer {
	clone := &Lexer{rules: lx.rules, ignore: lx.ignore, literalIndex: lx.literalIndex}
	clone.reset()
	return clone
}

func (lx *Lexer) reset() {
	if lx.pos == (token.Position{}) {
		lx.pos = token.StartPosition()
	}
	lx.consumer = NoConsumer()
	lx.resetSimsOnly()
}

// resetSimsOnly clears the live match-in-progress state (simulations,
// matched runes and positions, the current best candidate) without
// touching the consumer or the lexer's running position. finalize and the
// consumer-completion paths use this so that a consumer installed mid-
// finalize, or the position reached while a consumer was in control,
// survives the reset.
func (lx *Lexer) resetSimsOnly() {
	lx.sims = make([]*nfa.Sim, len(lx.rules))
	lx.active = make([]bool, len(lx.rules))
	for i, r := range lx.rules {
		if r.isLiteral {
			// Literal rules are driven by literalIndex instead of a private
			// NFA simulation; see recordRune.
			lx.active[i] = true
			continue
		}
		lx.sims[i] = r.template.Start()
		lx.active[i] = true
	}
	lx.matchRunes = lx.matchRunes[:0]
	lx.matchPositions = lx.matchPositions[:0]
	lx.maxPos = 0
	lx.bestRule = -1
}

func anyActive(active []bool) bool {
	for _, a := range active {
		if a {
			return true
		}
	}
	return false
}

// Feed advances the lexer by one character. If pos is non-nil it overrides
// the lexer's internally tracked position for this character (for hosts
// that already know line/column from elsewhere); otherwise the lexer
// tracks position itself, advancing Column (or Line, on '\n') before
// attaching the new position to r.
func (lx *Lexer) Feed(r rune, pos *token.Position) error {
	at := lx.resolvePos(r, pos)

	if lx.consumer.kind == ConsumerAsync {
		return &LexerError{Pos: at, Reason: "an asynchronous consumer is installed; use FeedAsync"}
	}
	if lx.consumer.kind == ConsumerSync {
		return lx.feedSyncConsumer(r, at)
	}

	lx.recordRune(r, at)

	if !anyActive(lx.active) {
		return lx.finalize()
	}
	return nil
}

// FeedAsync is the cooperative-task counterpart of Feed: it drives the same
// longest-match/finalize algorithm, but delivers tokens through
// OnTokenAsync (or an installed asynchronous Consumer) instead of the
// synchronous sink, so the sink may suspend on I/O between tokens.
func (lx *Lexer) FeedAsync(ctx context.Context, r rune, pos *token.Position) error {
	at := lx.resolvePos(r, pos)

	if lx.consumer.kind == ConsumerAsync {
		return lx.feedAsyncConsumer(ctx, r, at)
	}
	if lx.consumer.kind == ConsumerSync {
		return lx.feedSyncConsumer(r, at)
	}

	lx.recordRune(r, at)

	if !anyActive(lx.active) {
		return lx.finalizeAsync(ctx)
	}
	return nil
}

// resolvePos computes the position to attach to r and updates lx.pos to
// match, honoring an explicit override.
func (lx *Lexer) resolvePos(r rune, pos *token.Position) token.Position {
	if pos != nil {
		lx.pos = *pos
		return lx.pos
	}
	lx.advancePos(r)
	return lx.pos
}

func (lx *Lexer) advancePos(r rune) {
	if r == '\n' {
		lx.pos.Line++
		lx.pos.Column = 0
	} else {
		lx.pos.Column++
	}
}

// recordRune appends r to the in-progress match, steps every live rule
// simulation, and updates the best (longest, earliest-registered) accepting
// candidate found so far. Literal rules skip NFA simulation entirely: their
// liveness is a plain prefix check against their own registered text, and
// their acceptance is resolved through literalIndex's Aho-Corasick automaton
// — a single shared lookup standing in for what would otherwise be one tiny
// NFA stepped per keyword.
func (lx *Lexer) recordRune(r rune, at token.Position) int {
	lx.matchRunes = append(lx.matchRunes, r)
	lx.matchPositions = append(lx.matchPositions, at)

	length := len(lx.matchRunes)
	prefix := string(lx.matchRunes)

	for i, rl := range lx.rules {
		if !lx.active[i] {
			continue
		}
		if rl.isLiteral {
			if !strings.HasPrefix(rl.literalText, prefix) {
				lx.active[i] = false
			}
			continue
		}
		lx.sims[i].Feed(r)
		if lx.sims[i].IsDeadEnd() {
			lx.active[i] = false
		}
	}

	for i, rl := range lx.rules {
		if !lx.active[i] || rl.isLiteral {
			continue
		}
		if !lx.sims[i].IsAccepting() {
			continue
		}
		if length > lx.maxPos || lx.bestRule == -1 {
			lx.maxPos = length
			lx.bestRule = i
		}
		// length == lx.maxPos and lx.bestRule already set: since regex rules
		// are visited in registration order within this single call, the
		// earliest-registered accepting regex rule was already recorded
		// first. Literal rules are compared against it below.
	}

	if lx.literalIndex != nil {
		if ruleIdx, ok := lx.literalIndex.FindLiteralAt([]byte(prefix), 0); ok {
			if lx.active[ruleIdx] && utf8.RuneCountInString(lx.rules[ruleIdx].literalText) == length {
				// An equal-length regex candidate was recorded in this same
				// call; the literal takes over only if registered earlier.
				if length > lx.maxPos || lx.bestRule == -1 || ruleIdx < lx.bestRule {
					lx.maxPos = length
					lx.bestRule = ruleIdx
				}
			}
		}
	}

	return length
}

// feedSyncConsumer forwards a character to the installed synchronous
// Consumer instead of the rule simulations.
func (lx *Lexer) feedSyncConsumer(r rune, at token.Position) error {
	if lx.consumer.kind != ConsumerSync {
		return &LexerError{Pos: at, Reason: "an asynchronous consumer is installed; use FeedAsync"}
	}
	done, tok, err := lx.consumer.sync(r, at)
	if err != nil {
		return err
	}
	if !done {
		return nil
	}
	lx.consumer = NoConsumer()
	if tok != nil && tok.Type != token.None {
		if lx.ignore == nil || !lx.ignore(*tok) {
			lx.emit(*tok)
		}
	}
	lx.resetSimsOnly()
	return nil
}

// feedAsyncConsumer is the FeedAsync counterpart of feedSyncConsumer.
func (lx *Lexer) feedAsyncConsumer(ctx context.Context, r rune, at token.Position) error {
	if lx.consumer.kind != ConsumerAsync {
		return &LexerError{Pos: at, Reason: "a synchronous consumer is installed; use Feed"}
	}
	done, tok, err := lx.consumer.async(ctx, r, at)
	if err != nil {
		return err
	}
	if !done {
		return nil
	}
	lx.consumer = NoConsumer()
	if tok != nil && tok.Type != token.None {
		if lx.ignore == nil || !lx.ignore(*tok) {
			if err := lx.emitAsync(ctx, *tok); err != nil {
				return err
			}
		}
	}
	lx.resetSimsOnly()
	return nil
}

// InstallConsumer hands control of subsequent raw characters to c, bypassing
// NFA-driven matching until c reports it is done. It is meant to be called
// from within a RuleCallback, once a rule recognizes it has entered a
// context — such as the opening quote of a string literal — that a
// regular-language rule cannot finish matching on its own. A consumer
// installed this way survives the reset that follows the callback: finalize
// defers emission to the consumer instead of emitting the callback's
// returned token.
func (lx *Lexer) InstallConsumer(c Consumer) {
	lx.consumer = c
}

func (lx *Lexer) emit(tok token.Token) {
	if lx.onToken != nil {
		lx.onToken(tok)
	}
}

func (lx *Lexer) emitAsync(ctx context.Context, tok token.Token) error {
	if lx.onTokenAsync != nil {
		return lx.onTokenAsync(ctx, tok)
	}
	lx.emit(tok)
	return nil
}

// finalizeData is the longest accepting match pulled out of the live
// simulation state, ready to be handed to its rule's callback.
type finalizeData struct {
	value             string
	leftoverRunes     []rune
	leftoverPositions []token.Position
	rule              *rule
	tokenStart        token.Position
}

// prepareFinalize extracts the best accepting candidate (or reports a
// LexerError if none exists) and resets the simulation state for whatever
// comes next, without disturbing a consumer the rule's callback may
// install.
func (lx *Lexer) prepareFinalize() (finalizeData, error) {
	if lx.bestRule == -1 {
		pos := lx.pos
		bad := rune(0)
		if len(lx.matchPositions) > 0 {
			pos = lx.matchPositions[0]
		}
		if len(lx.matchRunes) > 0 {
			bad = lx.matchRunes[0]
		}
		return finalizeData{}, &LexerError{Pos: pos, Reason: "no rule matches input starting at " + string(bad)}
	}

	fd := finalizeData{
		value:             string(lx.matchRunes[:lx.maxPos]),
		leftoverRunes:     append([]rune(nil), lx.matchRunes[lx.maxPos:]...),
		leftoverPositions: append([]token.Position(nil), lx.matchPositions[lx.maxPos:]...),
		rule:              lx.rules[lx.bestRule],
		tokenStart:        lx.matchPositions[0],
	}
	lx.resetSimsOnly()
	return fd, nil
}

// finalize is called once every rule simulation has died (or, for literal
// rules, every candidate's prefix has diverged): it accepts the longest
// match found so far, hands its matched text to that rule's callback, and
// — unless the callback installed a consumer, in which case emission is
// its responsibility — emits the resulting token unless its Type is
// token.None or the ignore predicate drops it. Whatever characters were
// consumed past the accepted match length are then re-fed (through the
// NFAs, or through a freshly installed consumer) rather than lost: the
// characters a losing, longer-but-ultimately-dead candidate rule pulled in
// before dying still belong to the next token.
func (lx *Lexer) finalize() error {
	fd, err := lx.prepareFinalize()
	if err != nil {
		return err
	}

	tok := fd.rule.callback(lx, fd.value, fd.tokenStart)

	if lx.consumer.kind != ConsumerNone {
		for i, r := range fd.leftoverRunes {
			if err := lx.Feed(r, &fd.leftoverPositions[i]); err != nil {
				return err
			}
		}
		return nil
	}

	if tok.Type != token.None {
		if lx.ignore == nil || !lx.ignore(tok) {
			lx.emit(tok)
		}
	}

	for i, r := range fd.leftoverRunes {
		if err := lx.Feed(r, &fd.leftoverPositions[i]); err != nil {
			return err
		}
	}
	return nil
}

// finalizeAsync is the FeedAsync counterpart of finalize.
func (lx *Lexer) finalizeAsync(ctx context.Context) error {
	fd, err := lx.prepareFinalize()
	if err != nil {
		return err
	}

	tok := fd.rule.callback(lx, fd.value, fd.tokenStart)

	if lx.consumer.kind != ConsumerNone {
		for i, r := range fd.leftoverRunes {
			if err := lx.FeedAsync(ctx, r, &fd.leftoverPositions[i]); err != nil {
				return err
			}
		}
		return nil
	}

	if tok.Type != token.None {
		if lx.ignore == nil || !lx.ignore(tok) {
			if err := lx.emitAsync(ctx, tok); err != nil {
				return err
			}
		}
	}

	for i, r := range fd.leftoverRunes {
		if err := lx.FeedAsync(ctx, r, &fd.leftoverPositions[i]); err != nil {
			return err
		}
	}
	return nil
}

// flush finalizes whatever match is in progress at end of input. Parse
// calls this automatically. flush is unexported, so a caller outside this
// package that drives Feed or FeedAsync directly has no exported way to
// finalize the match still in progress when its input ends.
func (lx *Lexer) flush() error {
	if len(lx.matchRunes) == 0 {
		return nil
	}
	return lx.finalize()
}

// Parse tokenizes src in one call, returning every token the sink would
// have received. It is a convenience wrapper around Feed: position
// tracking, longest-match, and the consumer hook all behave exactly as
// they would driving Feed directly from an external source.
func (lx *Lexer) Parse(src string) ([]token.Token, error) {
	var tokens []token.Token
	prevSink := lx.onToken
	lx.onToken = func(t token.Token) { tokens = append(tokens, t) }
	defer func() { lx.onToken = prevSink }()

	for _, r := range src {
		if err := lx.Feed(r, nil); err != nil {
			return tokens, err
		}
	}
	if err := lx.flush(); err != nil {
		return tokens, err
	}
	return tokens, nil
}
