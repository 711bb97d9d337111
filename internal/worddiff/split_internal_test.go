package worddiff

import (
	"reflect"
	"testing"
)

// The backtrack tie-break prefers substitution over insertion, so some edit
// script shapes named by the conversion rules rarely surface through Compare.
// These tests drive detectSplits and toChanges with synthesized scripts to
// pin the behaviour of every shape.

func TestDetectSplits_SubstituteThenInserts(t *testing.T) {
	t.Parallel()

	orig := []string{"Charantandi", "is", "here"}
	edit := []string{"Charan", "Tandi", "is", "here"}
	ops := []Op{
		{Kind: OpSubstitute, OrigIndex: 0, EditIndex: 0},
		{Kind: OpInsert, EditIndex: 1},
		{Kind: OpMatch, OrigIndex: 1, EditIndex: 2},
		{Kind: OpMatch, OrigIndex: 2, EditIndex: 3},
	}

	d := New()
	got := d.detectSplits(ops, orig, edit)
	if len(got) != 3 {
		t.Fatalf("detectSplits = %+v, want split + two matches", got)
	}
	if got[0].Kind != OpSplit || got[0].Combined != "Charan Tandi" || got[0].OrigIndex != 0 {
		t.Errorf("first op = %+v, want Split{Charan Tandi}", got[0])
	}
}

func TestDetectSplits_ConcatSimilarityCondition(t *testing.T) {
	t.Parallel()

	d := New()
	// The substituted-to word is a prefix of the original run-on token.
	if !d.concatSplit("vanderberg", "van", []string{"der", "berg"}) {
		t.Error("concatSplit should accept a prefix of the original word")
	}
	// Not a prefix, but the concatenation is close enough to clear the
	// similarity threshold.
	if !d.concatSplit("wanderberg", "van", []string{"der", "berg"}) {
		t.Error("concatSplit should accept a close concatenation above the similarity threshold")
	}
	// Unrelated inserts must not be folded.
	if d.concatSplit("meeting", "the", []string{"finance", "team"}) {
		t.Error("concatSplit must reject unrelated replacements")
	}
}

func TestToChanges_DeleteThenInserts(t *testing.T) {
	t.Parallel()

	orig := []string{"send", "to", "accounting", "now"}
	edit := []string{"send", "to", "the", "finance", "team", "now"}
	ops := []Op{
		{Kind: OpMatch, OrigIndex: 0, EditIndex: 0},
		{Kind: OpMatch, OrigIndex: 1, EditIndex: 1},
		{Kind: OpDelete, OrigIndex: 2},
		{Kind: OpInsert, EditIndex: 2},
		{Kind: OpInsert, EditIndex: 3},
		{Kind: OpInsert, EditIndex: 4},
		{Kind: OpMatch, OrigIndex: 3, EditIndex: 5},
	}

	got := toChanges(ops, orig, edit)
	if len(got) != 1 {
		t.Fatalf("toChanges = %+v, want one combined change", got)
	}
	c := got[0]
	if c.Original != "accounting" || c.Corrected != "the finance team" {
		t.Errorf("change = %q -> %q, want accounting -> the finance team", c.Original, c.Corrected)
	}
	if want := []string{"send", "to"}; !reflect.DeepEqual(c.LeftContext, want) {
		t.Errorf("LeftContext = %v, want %v", c.LeftContext, want)
	}
	if want := []string{"now"}; !reflect.DeepEqual(c.RightContext, want) {
		t.Errorf("RightContext = %v, want %v", c.RightContext, want)
	}
}

func TestToChanges_BareDeleteAndInsert(t *testing.T) {
	t.Parallel()

	orig := []string{"well", "hello"}
	edit := []string{"hello", "there"}
	ops := []Op{
		{Kind: OpDelete, OrigIndex: 0},
		{Kind: OpMatch, OrigIndex: 1, EditIndex: 0},
		{Kind: OpInsert, EditIndex: 1},
	}

	// The delete is followed by a match, so it is a pure removal; the
	// trailing insert has no original anchor. Neither is learnable.
	if got := toChanges(ops, orig, edit); len(got) != 0 {
		t.Fatalf("toChanges = %+v, want none", got)
	}
}
