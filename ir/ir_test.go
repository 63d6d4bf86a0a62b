package ir

import "testing"

// buildDiamond builds entry -c-> (left, right) -> join -> ret.
func buildDiamond() (*Function, *BasicBlock, *BasicBlock, *BasicBlock, *BasicBlock) {
	fn := NewFunction("diamond")
	entry := fn.NewBlock("entry")
	left := fn.NewBlock("left")
	right := fn.NewBlock("right")
	join := fn.NewBlock("join")

	fn.SetCondBr(entry, "c", left, right)
	fn.SetBr(left, join)
	fn.SetBr(right, join)
	fn.SetRet(join, nil)
	return fn, entry, left, right, join
}

func TestSuccsInTerminatorOrderAndPreds(t *testing.T) {
	_, entry, left, right, join := buildDiamond()

	succs := entry.Succs()
	if len(succs) != 2 || succs[0] != left || succs[1] != right {
		t.Fatalf("unexpected successors of entry: %v", succs)
	}

	if len(join.Succs()) != 0 {
		t.Fatalf("expected Ret block to have no successors")
	}

	preds := join.Preds()
	if len(preds) != 2 {
		t.Fatalf("expected join to have 2 predecessors, got %d", len(preds))
	}
}

func TestPredicateIsCanonicalized(t *testing.T) {
	fn := NewFunction("f")
	p1 := fn.Predicate("c")
	p2 := fn.Predicate("c")
	if p1 != p2 {
		t.Fatalf("expected repeated Predicate(\"c\") calls to return the same *Value")
	}
}

func TestPostOrderVisitsSuccessorsFirst(t *testing.T) {
	fn, entry, left, right, join := buildDiamond()
	order := fn.PostOrder()
	if order[len(order)-1] != entry {
		t.Fatalf("expected entry to be last in post-order, got %v", order)
	}

	pos := make(map[*BasicBlock]int)
	for i, b := range order {
		pos[b] = i
	}
	if pos[join] >= pos[left] || pos[join] >= pos[right] {
		t.Fatalf("expected join to precede left/right in post-order")
	}
}

func TestReversePostOrderIsEntryFirst(t *testing.T) {
	fn, entry, _, _, _ := buildDiamond()
	rpo := fn.ReversePostOrder()
	if rpo[0] != entry {
		t.Fatalf("expected entry to be first in reverse post-order, got %v", rpo[0])
	}
}

func TestSetTerminatorPanicsWhenAlreadySet(t *testing.T) {
	fn := NewFunction("f")
	b := fn.NewBlock("b")
	fn.SetRet(b, nil)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a second SetTerminator call to panic")
		}
	}()
	fn.SetRet(b, nil)
}

func TestGraphMirrorsSuccessors(t *testing.T) {
	fn, entry, left, right, _ := buildDiamond()
	g := fn.Graph()
	succs := g.Successors(g.Node(entry))
	if len(succs) != 2 {
		t.Fatalf("expected 2 successors in the graph, got %d", len(succs))
	}
	want := map[*BasicBlock]bool{left: true, right: true}
	for _, s := range succs {
		if !want[s.Value] {
			t.Fatalf("unexpected successor %v in graph", s.Value)
		}
	}
}
