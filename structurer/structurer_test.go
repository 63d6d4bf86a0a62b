package structurer

import (
	"testing"

	"github.com/archerbroler/fcd/arena"
	"github.com/archerbroler/fcd/expr"
	"github.com/archerbroler/fcd/grapher"
	"github.com/archerbroler/fcd/ir"
	"github.com/archerbroler/fcd/stmt"
)

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

func TestStructurizeRegionNestsBranchesUnderAnIf(t *testing.T) {
	a := arena.New()
	g := grapher.New(a)
	_, entry, left, right, join := buildDiamond()
	g.AddBasicBlock(entry)
	g.AddBasicBlock(left)
	g.AddBasicBlock(right)
	g.AddBasicBlock(join)

	body, err := StructurizeRegion(g, a, g.GraphNodeFromEntry(entry), g.GraphNodeFromEntry(join))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(body.Children) != 2 {
		t.Fatalf("expected 2 top-level statements (entry's body, then the branch), got %d", len(body.Children))
	}

	ifElse, ok := body.Children[1].(*stmt.IfElse)
	if !ok {
		t.Fatalf("expected the second statement to be an IfElse, got %T", body.Children[1])
	}
	if ifElse.Else == nil {
		t.Fatalf("expected the IfElse to have coalesced an else branch for the opposite condition")
	}

	// The condition must be single-layer LogicalNegate or bare, and the
	// then/else branches must each contain exactly one of left's or right's
	// AST, by reference to what the grapher registered for those blocks.
	leftAST := g.GraphNodeFromEntry(left).AST
	rightAST := g.GraphNodeFromEntry(right).AST
	thenSeq, ok := ifElse.Then.(*stmt.Sequence)
	if !ok || len(thenSeq.Children) != 1 {
		t.Fatalf("expected Then to be a single-statement Sequence, got %v", ifElse.Then)
	}
	elseSeq, ok := ifElse.Else.(*stmt.Sequence)
	if !ok || len(elseSeq.Children) != 1 {
		t.Fatalf("expected Else to be a single-statement Sequence, got %v", ifElse.Else)
	}

	branches := map[stmt.Statement]bool{thenSeq.Children[0]: true, elseSeq.Children[0]: true}
	if !branches[leftAST] || !branches[rightAST] {
		t.Fatalf("expected then/else to contain left's and right's AST exactly once each")
	}
}

func TestStructurizeRegionWithNilExitCoversWholeFunction(t *testing.T) {
	a := arena.New()
	g := grapher.New(a)
	_, entry, left, right, join := buildDiamond()
	g.AddBasicBlock(entry)
	g.AddBasicBlock(left)
	g.AddBasicBlock(right)
	g.AddBasicBlock(join)

	body, err := StructurizeRegion(g, a, g.GraphNodeFromEntry(entry), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// join is unconditionally reached from either branch, so it must appear
	// as a top-level statement alongside the conditional.
	found := false
	for _, c := range body.Children {
		if c == stmt.Statement(g.GraphNodeFromEntry(join).AST) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected join's AST to appear unconditionally in the structured body")
	}
}

func TestOpenIfCoalescesOppositeCondition(t *testing.T) {
	a := arena.New()
	body := stmt.NewSequence(a)
	c := expr.NewValue(a, "c")
	notC := expr.LogicalNegate(a, c)

	first := openIf(a, body, notC)
	first.Append(stmt.NewExprStmt(a, nil))

	second := openIf(a, body, c)
	if second == first {
		t.Fatalf("expected coalescing an inverted condition to open the else branch, not reuse the then branch")
	}
	ifElse := body.Children[0].(*stmt.IfElse)
	if ifElse.Else == nil {
		t.Fatalf("expected an else branch to have been created")
	}
}
