package cnf

import (
	"testing"

	"github.com/archerbroler/fcd/arena"
	"github.com/archerbroler/fcd/expr"
)

func TestSimplifySingleUnconditionalProduct(t *testing.T) {
	got := Simplify([][]expr.Expression{{}})
	if len(got) != 0 {
		t.Fatalf("expected an unconditional product to simplify to an empty CNF, got %v", got)
	}
}

func TestSimplifySingleProductEmitsOneLiteralPerFactor(t *testing.T) {
	a := arena.New()
	x := expr.NewValue(a, "x")
	y := expr.NewValue(a, "y")
	got := Simplify([][]expr.Expression{{x, y}})
	if len(got) != 2 {
		t.Fatalf("expected 2 singleton sums, got %d: %v", len(got), got)
	}
	for _, sum := range got {
		if len(sum) != 1 {
			t.Fatalf("expected every sum to be a singleton, got %v", sum)
		}
	}
}

func TestSimplifyExtractsCommonFactor(t *testing.T) {
	a := arena.New()
	c := expr.NewValue(a, "c")
	x := expr.NewValue(a, "x")
	y := expr.NewValue(a, "y")
	// (c && x) || (c && y) factors to c && (x || y).
	got := Simplify([][]expr.Expression{{c, x}, {c, y}})

	if len(got) != 2 {
		t.Fatalf("expected 2 sums (the factored singleton and the remainder), got %d: %v", len(got), got)
	}

	foundSingleton := false
	foundPair := false
	for _, sum := range got {
		switch len(sum) {
		case 1:
			if expr.ReferenceEqual(sum[0], c) {
				foundSingleton = true
			}
		case 2:
			foundPair = true
		}
	}
	if !foundSingleton || !foundPair {
		t.Fatalf("expected a singleton [c] and a pair sum, got %v", got)
	}
}

func TestSimplifyCartesianExpansion(t *testing.T) {
	a := arena.New()
	p := expr.NewValue(a, "p")
	q := expr.NewValue(a, "q")
	r := expr.NewValue(a, "r")
	s := expr.NewValue(a, "s")
	// (p && q) || (r && s) has no common factor; expands to 4 clauses.
	got := Simplify([][]expr.Expression{{p, q}, {r, s}})
	if len(got) != 4 {
		t.Fatalf("expected 4 clauses from cartesian expansion, got %d: %v", len(got), got)
	}
}

func TestSimplifyCancelsTautologicalSum(t *testing.T) {
	a := arena.New()
	x := expr.NewValue(a, "x")
	notX := expr.LogicalNegate(a, x)
	y := expr.NewValue(a, "y")
	z := expr.NewValue(a, "z")
	// (x && y) || (!x && z) expands to (x||!x) && (x||z) && (y||!x) && (y||z);
	// the (x||!x) clause is a tautology and must be dropped.
	got := Simplify([][]expr.Expression{{x, y}, {notX, z}})
	for _, sum := range got {
		if len(sum) == 0 {
			t.Fatalf("expected no empty sums to survive cancellation, got %v", got)
		}
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 surviving clauses after tautology cancellation, got %d: %v", len(got), got)
	}
}

func TestSimplifyDropsTautologicalClauseWithAThirdUnrelatedLiteral(t *testing.T) {
	a := arena.New()
	i := expr.NewValue(a, "i")
	notI := expr.LogicalNegate(a, i)
	j := expr.NewValue(a, "j")
	notJ := expr.LogicalNegate(a, j)
	// (i && j) || (i && !j) || !i, as reach.Build produces for S5's exit node,
	// cartesian-expands to 4 three-literal clauses, one of which is
	// [i, j, !i]: a tautology by its first and third literals even though
	// its second literal (j) has no complement in the clause. The whole
	// clause must be dropped, not reduced to [j].
	got := Simplify([][]expr.Expression{{i, j}, {i, notJ}, {notI}})
	if len(got) != 0 {
		t.Fatalf("expected S5's exit condition to simplify to an empty (always-true) CNF, got %v", got)
	}
}
