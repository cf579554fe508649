package regexsrc

import "testing"

func accepts(t *testing.T, pattern, input string) bool {
	t.Helper()
	n, err := Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	sim := n.Start()
	for _, r := range input {
		sim.Feed(r)
		if sim.IsDeadEnd() {
			return false
		}
	}
	return sim.IsAccepting()
}

func TestCompileUnion(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  bool
	}{
		{"cat", true},
		{"dog", true},
		{"bird", false},
	} {
		if got := accepts(t, `cat|dog`, tt.input); got != tt.want {
			t.Errorf("cat|dog accepts %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCompileGrouping(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  bool
	}{
		{"ab", true},
		{"ac", true},
		{"a", false},
		{"abc", false},
	} {
		if got := accepts(t, `a(b|c)`, tt.input); got != tt.want {
			t.Errorf("a(b|c) accepts %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCompileExponentStar(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  bool
	}{
		{"", true},
		{"a", true},
		{"aaaa", true},
		{"b", false},
	} {
		if got := accepts(t, `a*`, tt.input); got != tt.want {
			t.Errorf("a* accepts %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCompileExponentPlus(t *testing.T) {
	if accepts(t, `a+`, "") {
		t.Errorf("a+ should not accept empty string")
	}
	if !accepts(t, `a+`, "aaa") {
		t.Errorf("a+ should accept \"aaa\"")
	}
}

func TestCompileExponentRange(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  bool
	}{
		{"aa", true},
		{"aaa", true},
		{"a", false},
		{"aaaa", false},
	} {
		if got := accepts(t, `a{2,3}`, tt.input); got != tt.want {
			t.Errorf("a{2,3} accepts %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCompileDotMatchesAnyRune(t *testing.T) {
	if !accepts(t, `a.c`, "abc") {
		t.Errorf("a.c should accept \"abc\"")
	}
	if !accepts(t, `a.c`, "aXc") {
		t.Errorf("a.c should accept \"aXc\"")
	}
}

func TestCompileNestedGroupsAndExponent(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  bool
	}{
		{"", true},
		{"ab", true},
		{"abab", true},
		{"aba", false},
	} {
		if got := accepts(t, `(ab)*`, tt.input); got != tt.want {
			t.Errorf("(ab)* accepts %q = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCompileUnclosedParenIsParseError(t *testing.T) {
	_, err := Compile(`(ab`)
	if _, ok := err.(*RegexParseError); !ok {
		t.Fatalf("expected *RegexParseError, got %T (%v)", err, err)
	}
}

func TestCompileEmptyPatternIsParseError(t *testing.T) {
	_, err := Compile(``)
	if _, ok := err.(*RegexParseError); !ok {
		t.Fatalf("expected *RegexParseError, got %T (%v)", err, err)
	}
}

func TestCompileDanglingUnionIsParseError(t *testing.T) {
	_, err := Compile(`a|`)
	if _, ok := err.(*RegexParseError); !ok {
		t.Fatalf("expected *RegexParseError for trailing '|', got %T (%v)", err, err)
	}
}
