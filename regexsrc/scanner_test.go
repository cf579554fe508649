package regexsrc

import "testing"

func TestScanLiteralsAndMetachars(t *testing.T) {
	tokens, err := scan(`ab|c*`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	wantKinds := []tokenKind{tokClass, tokClass, tokUnion, tokClass, tokExponent}
	if len(tokens) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(wantKinds))
	}
	for i, k := range wantKinds {
		if tokens[i].kind != k {
			t.Errorf("token %d: kind = %v, want %v", i, tokens[i].kind, k)
		}
	}
}

func TestScanBackslashAtEnd(t *testing.T) {
	_, err := scan(`a\`)
	if _, ok := err.(*BackslashAtEndOfInputError); !ok {
		t.Fatalf("expected *BackslashAtEndOfInputError, got %T (%v)", err, err)
	}
}

func TestScanUnterminatedClass(t *testing.T) {
	_, err := scan(`[abc`)
	if _, ok := err.(*UnterminatedClassError); !ok {
		t.Fatalf("expected *UnterminatedClassError, got %T (%v)", err, err)
	}
}

func TestScanBareCloseBracketIsError(t *testing.T) {
	_, err := scan(`a]`)
	if _, ok := err.(*TokenizeError); !ok {
		t.Fatalf("expected *TokenizeError, got %T (%v)", err, err)
	}
}

func TestScanBareCloseBraceIsError(t *testing.T) {
	_, err := scan(`a}`)
	if _, ok := err.(*TokenizeError); !ok {
		t.Fatalf("expected *TokenizeError, got %T (%v)", err, err)
	}
}

func TestScanExponentExact(t *testing.T) {
	tokens, err := scan(`a{3}`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	exp := tokens[1].exponent
	if exp.max == nil || exp.min != 3 || *exp.max != 3 {
		t.Fatalf("a{3}: got min=%d max=%v, want min=3 max=3", exp.min, exp.max)
	}
}

func TestScanExponentRange(t *testing.T) {
	tokens, err := scan(`a{2,5}`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	exp := tokens[1].exponent
	if exp.max == nil || exp.min != 2 || *exp.max != 5 {
		t.Fatalf("a{2,5}: got min=%d max=%v, want min=2 max=5", exp.min, exp.max)
	}
}

func TestScanExponentMissingRangeEndIsError(t *testing.T) {
	// "{n,}" (a comma with no range-end digit) is not part of the postfix
	// grammar, which only admits the comma together with m; unbounded
	// repetition is spelled with "*" or "+" instead.
	_, err := scan(`a{2,}`)
	if _, ok := err.(*InvalidExponentError); !ok {
		t.Fatalf("expected *InvalidExponentError, got %T (%v)", err, err)
	}
}

func TestScanInvalidExponent(t *testing.T) {
	_, err := scan(`a{}`)
	if _, ok := err.(*InvalidExponentError); !ok {
		t.Fatalf("expected *InvalidExponentError, got %T (%v)", err, err)
	}
}

func TestScanShorthandEscape(t *testing.T) {
	tokens, err := scan(`\d`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(tokens) != 1 || tokens[0].kind != tokClass {
		t.Fatalf("expected a single CLASS token for \\d")
	}
	if !tokens[0].class.Contains('7') {
		t.Errorf("\\d should match digit 7")
	}
	if tokens[0].class.Contains('x') {
		t.Errorf("\\d should not match 'x'")
	}
}

func TestScanEscapedMetacharIsLiteral(t *testing.T) {
	tokens, err := scan(`\*`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if !tokens[0].class.Contains('*') {
		t.Errorf(`\* should match literal "*"`)
	}
}

func TestScanDelegatedBracketClass(t *testing.T) {
	tokens, err := scan(`[a-z]`)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(tokens) != 1 || tokens[0].kind != tokClass {
		t.Fatalf("expected a single CLASS token for [a-z]")
	}
	if !tokens[0].class.Contains('m') {
		t.Errorf("[a-z] should match 'm'")
	}
	if tokens[0].class.Contains('M') {
		t.Errorf("[a-z] should not match 'M'")
	}
}
