// Package cnf implements the DNF→CNF simplifier of spec.md §4.G: a
// targeted three-step heuristic (common-factor extraction, Cartesian
// expansion, tautology cancellation) suited to the common case of deeply
// nested conditions sharing prefixes. The teacher's own interval-structuring
// pass never needed this step; spec.md §4.G is new work, built in the
// teacher's multi-pass-heuristic texture (see structure.go's multi-stage
// findLatch/findLoopKind/findLoopFollow pipeline for the idiom).
package cnf

import "github.com/archerbroler/fcd/expr"

// Simplify converts a sum of products (DNF: outer OR, inner AND) into a
// product of sums (CNF: outer AND, inner OR).
func Simplify(products [][]expr.Expression) [][]expr.Expression {
	singles, remaining := extractCommonFactors(products)
	expanded := cartesianExpand(remaining)
	result := append(singles, expanded...)
	return cancelTautologies(result)
}

// extractCommonFactors implements step 1: for each term of the first
// product, check whether every other product also contains a
// reference-equal term; if so, remove it from every product (emitting it as
// a singleton sum) and delete any product that becomes empty as a result.
func extractCommonFactors(products [][]expr.Expression) (singles, remaining [][]expr.Expression) {
	if len(products) == 0 {
		return nil, nil
	}

	first := products[0]
	var extracted []expr.Expression
	for _, t := range first {
		if isCommonFactor(t, products) {
			extracted = append(extracted, t)
			singles = append(singles, []expr.Expression{t})
		}
	}

	for _, product := range products {
		reduced := removeAll(product, extracted)
		if len(reduced) > 0 {
			remaining = append(remaining, reduced)
		}
	}
	return singles, remaining
}

// isCommonFactor reports whether every product other than the first
// contains a term reference-equal to t.
func isCommonFactor(t expr.Expression, products [][]expr.Expression) bool {
	for _, other := range products[1:] {
		if !containsRef(other, t) {
			return false
		}
	}
	return true
}

func containsRef(terms []expr.Expression, t expr.Expression) bool {
	for _, o := range terms {
		if expr.ReferenceEqual(o, t) {
			return true
		}
	}
	return false
}

func removeAll(terms, remove []expr.Expression) []expr.Expression {
	var out []expr.Expression
	for _, t := range terms {
		if !containsRef(remove, t) {
			out = append(out, t)
		}
	}
	return out
}

// cartesianExpand implements step 2: choose one factor per remaining
// product and emit their concatenation as a sum, for every combination. If
// any remaining product is empty, there is no valid choice for it, so the
// whole expansion is empty (this only happens when the sole remaining
// product was already the empty product, i.e. the formula is "true").
func cartesianExpand(remaining [][]expr.Expression) [][]expr.Expression {
	if len(remaining) == 0 {
		return nil
	}

	combos := [][]expr.Expression{{}}
	for _, product := range remaining {
		if len(product) == 0 {
			return nil
		}
		var next [][]expr.Expression
		for _, combo := range combos {
			for _, factor := range product {
				sum := make([]expr.Expression, len(combo)+1)
				copy(sum, combo)
				sum[len(combo)] = factor
				next = append(next, sum)
			}
		}
		combos = next
	}
	return combos
}

// cancelTautologies implements step 3: a sum (OR-clause) containing any
// complementary pair (x, ¬x), found by reference equality up to one layer
// of LogicalNegate, is true regardless of its other literals (x ∨ ¬x ∨ ... ≡
// true) and contributes nothing to the surrounding AND, so the whole clause
// is dropped rather than just the matched pair.
func cancelTautologies(cnf [][]expr.Expression) [][]expr.Expression {
	var out [][]expr.Expression
	for _, sum := range cnf {
		if isTautology(sum) {
			continue
		}
		out = append(out, sum)
	}
	return out
}

func isTautology(sum []expr.Expression) bool {
	for i := range sum {
		for j := i + 1; j < len(sum); j++ {
			if match, inverted := expr.EqualUpToOneNegation(sum[i], sum[j]); match && inverted {
				return true
			}
		}
	}
	return false
}
