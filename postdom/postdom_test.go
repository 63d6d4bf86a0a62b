package postdom

import (
	"testing"

	"github.com/archerbroler/fcd/ir"
)

// Diamond: entry -c-> (left, right) -> join -> ret.
func buildDiamond() (*ir.Function, *ir.BasicBlock, *ir.BasicBlock, *ir.BasicBlock, *ir.BasicBlock) {
	fn := ir.NewFunction("diamond")
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

func TestNilAlwaysPostDominates(t *testing.T) {
	fn, entry, _, _, _ := buildDiamond()
	tree := New(fn)
	if !tree.Dominates(nil, entry) {
		t.Fatalf("expected nil (end of function) to post-dominate every block")
	}
}

func TestJoinPostDominatesBothBranches(t *testing.T) {
	fn, _, left, right, join := buildDiamond()
	tree := New(fn)
	if !tree.Dominates(join, left) || !tree.Dominates(join, right) {
		t.Fatalf("expected join to post-dominate both branches")
	}
	if tree.Dominates(left, right) {
		t.Fatalf("expected left not to post-dominate right")
	}
}

func TestIDomOfEntryIsJoin(t *testing.T) {
	fn, entry, _, _, join := buildDiamond()
	tree := New(fn)
	if tree.IDom(entry) != join {
		t.Fatalf("expected entry's immediate post-dominator to be join, got %v", tree.IDom(entry))
	}
}

func TestIDomOfBlockBeforeEndOfFunctionIsNil(t *testing.T) {
	fn, _, _, _, join := buildDiamond()
	tree := New(fn)
	if tree.IDom(join) != nil {
		t.Fatalf("expected join's immediate post-dominator to be nil (end of function)")
	}
}
