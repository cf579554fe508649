package regexsrc

import (
	"strconv"
	"strings"

	"github.com/shadowCow/ptk/charclass"
)

// tokenKind tags the regex grammar's terminal alphabet: CLASS, EXPONENT,
// LPAREN, RPAREN, UNION.
type tokenKind int

const (
	tokClass tokenKind = iota
	tokExponent
	tokLParen
	tokRParen
	tokUnion
)

// exponentRange is the {min,max} payload of an EXPONENT token. max == nil
// means unbounded ("*" -> {0,nil}, "+" -> {1,nil}). "{n,}" — a comma with
// no range-end digit — is rejected as an InvalidExponentError: the postfix
// grammar's '{' n [',' m] '}' only admits the comma together with m.
type exponentRange struct {
	min int
	max *int
}

type token struct {
	kind     tokenKind
	class    charclass.Class
	exponent exponentRange
	column   int
}

// shorthandClasses maps the backslash shorthand escapes this grammar
// recognizes to the host-regex fragment charclass.NewDelegated compiles.
var shorthandClasses = map[rune]string{
	'd': `\d`, 'D': `\D`,
	's': `\s`, 'S': `\S`,
	'w': `\w`, 'W': `\W`,
}

// literalEscapes maps backslash escapes that resolve to one specific
// literal rune rather than a delegated class.
var literalEscapes = map[rune]rune{
	'n': '\n',
	't': '\t',
}

// scan tokenizes a regex pattern into the flat token stream the recursive-
// descent parser consumes. It runs a single left-to-right pass, dispatching
// on each rune the way a hand-written scanner with one state per
// metacharacter context would: plain text, "\"-escape, "[...]" bracket
// expression, and "{...}" repetition count each have their own short
// sub-loop.
func scan(pattern string) ([]token, error) {
	runes := []rune(pattern)
	var tokens []token

	for i := 0; i < len(runes); {
		col := i
		r := runes[i]

		switch r {
		case '(':
			tokens = append(tokens, token{kind: tokLParen, column: col})
			i++
		case ')':
			tokens = append(tokens, token{kind: tokRParen, column: col})
			i++
		case '|':
			tokens = append(tokens, token{kind: tokUnion, column: col})
			i++
		case '.':
			tokens = append(tokens, token{kind: tokClass, class: charclass.Any{}, column: col})
			i++
		case '*':
			tokens = append(tokens, token{kind: tokExponent, exponent: exponentRange{min: 0, max: nil}, column: col})
			i++
		case '+':
			tokens = append(tokens, token{kind: tokExponent, exponent: exponentRange{min: 1, max: nil}, column: col})
			i++
		case '?':
			zero := 1
			tokens = append(tokens, token{kind: tokExponent, exponent: exponentRange{min: 0, max: &zero}, column: col})
			i++
		case '{':
			exp, next, err := scanExponent(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokExponent, exponent: exp, column: col})
			i = next
		case '[':
			cls, next, err := scanClass(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokClass, class: cls, column: col})
			i = next
		case '\\':
			cls, next, err := scanBackslash(runes, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokClass, class: cls, column: col})
			i = next
		case ']', '}':
			return nil, &TokenizeError{Column: col, Rune: r}
		default:
			tokens = append(tokens, token{kind: tokClass, class: charclass.Literal(r), column: col})
			i++
		}
	}

	return tokens, nil
}

// scanBackslash scans a single backslash escape starting at runes[i] (which
// must be '\\') and returns the class it denotes and the index just past
// it.
func scanBackslash(runes []rune, i int) (charclass.Class, int, error) {
	col := i
	if i+1 >= len(runes) {
		return nil, 0, &BackslashAtEndOfInputError{Column: col}
	}
	esc := runes[i+1]

	if src, ok := shorthandClasses[esc]; ok {
		cls, err := charclass.NewDelegated(src)
		if err != nil {
			return nil, 0, &InvalidClassError{Column: col, Reason: err.Error()}
		}
		return cls, i + 2, nil
	}
	if lit, ok := literalEscapes[esc]; ok {
		return charclass.Literal(lit), i + 2, nil
	}
	// Any other escaped rune (including the metacharacters themselves, and
	// a literal backslash or literal quantifier/paren character) stands
	// for itself.
	return charclass.Literal(esc), i + 2, nil
}

// scanClass scans a "[...]" bracket expression starting at runes[i] (which
// must be '[') up to its matching, unescaped "]", and delegates the whole
// bracket text to the host regex engine.
func scanClass(runes []rune, i int) (charclass.Class, int, error) {
	start := i
	var b strings.Builder
	b.WriteRune('[')
	j := i + 1

	closed := false
	for j < len(runes) {
		r := runes[j]
		if r == '\\' && j+1 < len(runes) {
			b.WriteRune(r)
			b.WriteRune(runes[j+1])
			j += 2
			continue
		}
		if r == ']' {
			b.WriteRune(r)
			j++
			closed = true
			break
		}
		b.WriteRune(r)
		j++
	}

	if !closed {
		return nil, 0, &UnterminatedClassError{Column: start}
	}

	cls, err := charclass.NewDelegated(b.String())
	if err != nil {
		return nil, 0, &InvalidClassError{Column: start, Reason: err.Error()}
	}
	return cls, j, nil
}

// scanExponent scans a "{n}" or "{n,m}" repetition count starting at
// runes[i] (which must be '{').
func scanExponent(runes []rune, i int) (exponentRange, int, error) {
	start := i
	j := i + 1
	digitsStart := j
	for j < len(runes) && isDigit(runes[j]) {
		j++
	}
	minText := string(runes[digitsStart:j])

	hasComma := j < len(runes) && runes[j] == ','
	var maxText string
	if hasComma {
		j++
		maxDigitsStart := j
		for j < len(runes) && isDigit(runes[j]) {
			j++
		}
		maxText = string(runes[maxDigitsStart:j])
	}

	if j >= len(runes) || runes[j] != '}' {
		return exponentRange{}, 0, &InvalidExponentError{Column: start, Text: string(runes[start:min(j+1, len(runes))])}
	}
	closingIdx := j
	j++ // consume '}'

	if minText == "" {
		return exponentRange{}, 0, &InvalidExponentError{Column: start, Text: string(runes[start : closingIdx+1])}
	}
	min, err := strconv.Atoi(minText)
	if err != nil {
		return exponentRange{}, 0, &InvalidExponentError{Column: start, Text: string(runes[start : closingIdx+1])}
	}

	if !hasComma {
		return exponentRange{min: min, max: &min}, j, nil
	}
	if maxText == "" {
		// "{n,}" — a comma with no range-end digit — is not part of this
		// grammar's postfix production (atom '{' n [',' m] '}'): the comma
		// only appears together with m. Unbounded repetition is spelled "*"
		// or "+" instead.
		return exponentRange{}, 0, &InvalidExponentError{Column: start, Text: string(runes[start : closingIdx+1])}
	}
	max, err := strconv.Atoi(maxText)
	if err != nil || max < min {
		return exponentRange{}, 0, &InvalidExponentError{Column: start, Text: string(runes[start : closingIdx+1])}
	}
	return exponentRange{min: min, max: &max}, j, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
