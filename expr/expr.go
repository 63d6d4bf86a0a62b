// Package expr implements the expression algebra of the AST back-end:
// value references, logical negation, and short-circuit and/or, compared
// only by reference identity. Grounded on ast_grapher.h's Expression
// hierarchy (ValueExpression / UnaryOperatorExpression /
// BinaryOperatorExpression) and program_output.cpp's coalesce helper.
package expr

import "github.com/archerbroler/fcd/arena"

// UnaryOp is the set of supported unary operators.
type UnaryOp uint8

const (
	// OpLogicalNegate negates a boolean expression.
	OpLogicalNegate UnaryOp = iota
)

// BinaryOp is the set of supported binary operators.
type BinaryOp uint8

const (
	// ShortCircuitAnd is logical AND (&&).
	ShortCircuitAnd BinaryOp = iota
	// ShortCircuitOr is logical OR (||).
	ShortCircuitOr
)

func (op BinaryOp) String() string {
	switch op {
	case ShortCircuitAnd:
		return "&&"
	case ShortCircuitOr:
		return "||"
	default:
		return "?"
	}
}

// Expression is a tagged variant over Value, Unary, and Binary nodes.
// Implementations are arena-allocated and compared only by pointer identity.
type Expression interface {
	// isExpression restricts the interface to this package's variants.
	isExpression()
}

// Value wraps an opaque lifted IR value. It is opaque to this package;
// equality is reference equality on the Expression pointer, not on V.
type Value struct {
	V any
}

func (*Value) isExpression() {}

// Unary is a unary operator expression.
type Unary struct {
	Op      UnaryOp
	Operand Expression
}

func (*Unary) isExpression() {}

// Binary is a binary operator expression.
type Binary struct {
	Op          BinaryOp
	Left, Right Expression
}

func (*Binary) isExpression() {}

// NewValue allocates a Value expression wrapping v.
func NewValue(a *arena.Arena, v any) *Value {
	return arena.AllocateValue(a, Value{V: v})
}

// negate allocates a LogicalNegate expression wrapping e.
func negate(a *arena.Arena, e Expression) *Unary {
	return arena.AllocateValue(a, Unary{Op: OpLogicalNegate, Operand: e})
}

// LogicalNegate returns the logical negation of e, folding away a double
// negation: LogicalNegate(LogicalNegate(e)) is reference-equal to e.
func LogicalNegate(a *arena.Arena, e Expression) Expression {
	if u, ok := e.(*Unary); ok && u.Op == OpLogicalNegate {
		return u.Operand
	}
	return negate(a, e)
}

// ReferenceEqual reports whether a and b are the same arena-allocated node.
func ReferenceEqual(a, b Expression) bool {
	return a == b
}

// Coalesce builds a left-associated Binary tree out of l and r: if either
// operand is nil, the other is returned unchanged; otherwise a new Binary
// node is allocated. Used to accumulate conjuncts/disjuncts without
// introducing unnecessary nesting when one side is empty.
func Coalesce(a *arena.Arena, op BinaryOp, l, r Expression) Expression {
	if l == nil {
		return r
	}
	if r == nil {
		return l
	}
	return arena.AllocateValue(a, Binary{Op: op, Left: l, Right: r})
}

// StripOneNegation returns the operand of e if e is a single-layer
// LogicalNegate, along with whether it was negated, and e itself (with
// negated=false) otherwise. Used when comparing two expressions "under at
// most one LogicalNegate wrapper on either side".
func StripOneNegation(e Expression) (operand Expression, negated bool) {
	if u, ok := e.(*Unary); ok && u.Op == OpLogicalNegate {
		return u.Operand, true
	}
	return e, false
}

// EqualUpToOneNegation compares a and b "under at most one LogicalNegate
// wrapper on either side, by reference equality of the underlying operand",
// per the region structurer's if-coalescing rule (spec §4.H). It reports
// whether the operands match and whether the two expressions have the same
// or inverted outer negation parity.
func EqualUpToOneNegation(a, b Expression) (match bool, inverted bool) {
	aOperand, aNeg := StripOneNegation(a)
	bOperand, bNeg := StripOneNegation(b)
	if ReferenceEqual(aOperand, bOperand) {
		return true, aNeg != bNeg
	}
	return false, false
}
