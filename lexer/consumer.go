package lexer

import (
	"context"

	"github.com/shadowCow/ptk/token"
)

// ConsumerKind tags the variant a Consumer carries.
type ConsumerKind int

const (
	// ConsumerNone means no consumer is installed: NFA-driven longest-match
	// stays in control of every fed character.
	ConsumerNone ConsumerKind = iota
	// ConsumerSync means a SyncConsumerFunc is in control.
	ConsumerSync
	// ConsumerAsync means an AsyncConsumerFunc is in control.
	ConsumerAsync
)

// SyncConsumerFunc receives raw characters once a rule callback has opted
// out of NFA-driven matching — the escape hatch a string-literal or
// block-comment rule uses to handle content a regular language can't
// express (balanced nesting, escape sequences, an arbitrary terminator).
// It returns done=true once it has consumed the token's closing character,
// optionally yielding the finished token; while done is false the consumer
// keeps receiving every subsequent character instead of the lexer's rule
// simulations.
type SyncConsumerFunc func(r rune, pos token.Position) (done bool, tok *token.Token, err error)

// AsyncConsumerFunc is the cooperative-task counterpart of
// SyncConsumerFunc, used when a host drives the lexer from asynchronous
// input.
type AsyncConsumerFunc func(ctx context.Context, r rune, pos token.Position) (done bool, tok *token.Token, err error)

// Consumer is a tagged union over "no consumer installed" / synchronous /
// asynchronous escape-hatch callbacks.
type Consumer struct {
	kind  ConsumerKind
	sync  SyncConsumerFunc
	async AsyncConsumerFunc
}

// NoConsumer is the zero Consumer.
func NoConsumer() Consumer { return Consumer{kind: ConsumerNone} }

// SyncConsumer installs a synchronous consumer hook.
func SyncConsumer(fn SyncConsumerFunc) Consumer { return Consumer{kind: ConsumerSync, sync: fn} }

// AsyncConsumer installs an asynchronous consumer hook.
func AsyncConsumer(fn AsyncConsumerFunc) Consumer { return Consumer{kind: ConsumerAsync, async: fn} }
