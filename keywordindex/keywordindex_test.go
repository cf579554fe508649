package keywordindex

import "testing"

func TestBuildWithNoLiteralsReturnsNil(t *testing.T) {
	if idx := Build(nil); idx != nil {
		t.Errorf("Build(nil) = %v, want nil", idx)
	}
}

func TestFindLiteralAtMatchesRegisteredRule(t *testing.T) {
	idx := Build([]Literal{
		{Text: "if", RuleIndex: 0},
		{Text: "else", RuleIndex: 1},
		{Text: "for", RuleIndex: 2},
	})
	if idx == nil {
		t.Fatal("Build returned nil for a non-empty literal set")
	}

	data := []byte("for (x) {}")
	ruleIdx, ok := idx.FindLiteralAt(data, 0)
	if !ok {
		t.Fatalf("FindLiteralAt(%q, 0) = false, want true", data)
	}
	if ruleIdx != 2 {
		t.Errorf("FindLiteralAt(%q, 0) rule = %d, want 2", data, ruleIdx)
	}
}

func TestFindLiteralAtNoMatch(t *testing.T) {
	idx := Build([]Literal{{Text: "if", RuleIndex: 0}})

	_, ok := idx.FindLiteralAt([]byte("while"), 0)
	if ok {
		t.Errorf("FindLiteralAt should not match unrelated input")
	}
}

func TestFindLiteralAtNilIndexIsSafe(t *testing.T) {
	var idx *Index
	if _, ok := idx.FindLiteralAt([]byte("anything"), 0); ok {
		t.Errorf("nil *Index should never report a match")
	}
}
