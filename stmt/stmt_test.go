package stmt

import (
	"testing"

	"github.com/archerbroler/fcd/arena"
)

func TestSequenceAppendAndLast(t *testing.T) {
	a := arena.New()
	seq := NewSequence(a)
	if seq.Last() != nil {
		t.Fatalf("expected empty sequence to have a nil Last")
	}
	e1 := NewExprStmt(a, nil)
	e2 := NewExprStmt(a, nil)
	seq.Append(e1)
	seq.Append(e2)
	if seq.Last() != Statement(e2) {
		t.Fatalf("expected Last to be the most recently appended statement")
	}
	if len(seq.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(seq.Children))
	}
}

func TestBreakIsASingleton(t *testing.T) {
	if Break != Break {
		t.Fatalf("expected Break to compare equal to itself")
	}
	a := arena.New()
	seq1 := NewSequence(a)
	seq1.Append(Break)
	seq2 := NewSequence(a)
	seq2.Append(Break)
	if seq1.Children[0] != seq2.Children[0] {
		t.Fatalf("expected every Break in every AST to be the same singleton pointer")
	}
}

func TestLoopPositionString(t *testing.T) {
	cases := map[LoopPosition]string{
		Endless:    "Endless",
		PreTested:  "PreTested",
		PostTested: "PostTested",
	}
	for pos, want := range cases {
		if got := pos.String(); got != want {
			t.Errorf("LoopPosition(%d).String() = %q, want %q", pos, got, want)
		}
	}
}

func TestIfElseElseDefaultsToNil(t *testing.T) {
	a := arena.New()
	then := NewSequence(a)
	ifElse := NewIfElse(a, nil, then)
	if ifElse.Else != nil {
		t.Fatalf("expected NewIfElse to leave Else nil")
	}
}
