// Package ir provides the concrete lifted-IR stand-in the structuring core
// is written against: values, instructions, basic blocks, terminators, and
// functions. It plays the role spec.md §6 calls "inputs from collaborators"
// — instruction lifting, CFG construction, and everything upstream of
// structuring are out of scope for the core, but a real module needs a
// concrete implementation of that surface to run against.
//
// Grounded on thaliaarchi-nebula/ir's BasicBlock (Succs, Terminator split,
// predecessor bookkeeping), adapted to the conditional/unconditional/switch/
// return terminator closed set spec.md §3 and §7 require.
package ir

import (
	"fmt"

	"github.com/archerbroler/fcd/graph"
)

// Value is an opaque lifted IR value, compared by reference identity.
// Op/Operands are informational only; the core never inspects them except
// to canonicalize repeated references to the same predicate (see the memo
// table behind Function.Predicate).
type Value struct {
	Op       string
	Operands []any
}

func (v *Value) String() string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s%v", v.Op, v.Operands)
}

// Instruction is a non-terminator value recorded in a BasicBlock, in source
// order.
type Instruction = Value

// Terminator is a closed union of the ways a basic block can end.
type Terminator interface {
	successors() []*BasicBlock
	isTerminator()
}

// CondBr is a two-way conditional branch.
type CondBr struct {
	Cond        *Value
	True, False *BasicBlock
}

func (t *CondBr) successors() []*BasicBlock { return []*BasicBlock{t.True, t.False} }
func (*CondBr) isTerminator() {}

// Br is an unconditional branch.
type Br struct {
	Succ *BasicBlock
}

func (t *Br) successors() []*BasicBlock { return []*BasicBlock{t.Succ} }
func (*Br) isTerminator() {}

// Switch is a multi-way branch. The structuring core rejects it outright
// (spec.md §7's "Unsupported terminator"); a downstream pass must lower it
// first.
type Switch struct {
	Cond  *Value
	Cases []*BasicBlock
}

func (t *Switch) successors() []*BasicBlock { return t.Cases }
func (*Switch) isTerminator() {}

// Ret is a terminal sink: a function return with no successors.
type Ret struct {
	Value *Value // nil for a void return
}

func (*Ret) successors() []*BasicBlock { return nil }
func (*Ret) isTerminator()             {}

// BasicBlock is a maximal straight-line sequence of instructions with a
// single terminator.
type BasicBlock struct {
	Name       string
	Insts      []*Instruction
	Terminator Terminator

	fn *Function
}

// AppendInst appends a non-terminator instruction to the block.
func (b *BasicBlock) AppendInst(inst *Instruction) {
	b.Insts = append(b.Insts, inst)
}

// SetTerminator sets the block's terminator. Panics if already set, mirroring
// the teacher's "terminator already set" guard.
func (b *BasicBlock) SetTerminator(t Terminator) {
	if b.Terminator != nil {
		panic("ir: SetTerminator: terminator already set")
	}
	b.Terminator = t
}

// Succs returns the block's CFG successors in terminator order. For a
// CondBr this is [true, false]; for a Ret it is nil.
func (b *BasicBlock) Succs() []*BasicBlock {
	if b.Terminator == nil {
		return nil
	}
	succs := b.Terminator.successors()
	out := make([]*BasicBlock, 0, len(succs))
	for _, s := range succs {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Preds returns the block's CFG predecessors, computed from the function's
// reverse index.
func (b *BasicBlock) Preds() []*BasicBlock {
	if b.fn == nil {
		return nil
	}
	return b.fn.preds[b]
}

func (b *BasicBlock) String() string {
	if b == nil {
		return "<exit>"
	}
	return b.Name
}

// Function is a CFG of basic blocks with a single entry.
type Function struct {
	Name  string
	Entry *BasicBlock
	// Blocks holds every block in original insertion order.
	Blocks []*BasicBlock

	preds  map[*BasicBlock][]*BasicBlock
	memo   map[string]*Value
}

// NewFunction creates an empty function.
func NewFunction(name string) *Function {
	return &Function{
		Name:  name,
		preds: make(map[*BasicBlock][]*BasicBlock),
		memo:  make(map[string]*Value),
	}
}

// NewBlock creates a new basic block, appends it to fn.Blocks, and sets it
// as the entry block if fn has none yet.
func (fn *Function) NewBlock(name string) *BasicBlock {
	b := &BasicBlock{Name: name, fn: fn}
	fn.Blocks = append(fn.Blocks, b)
	if fn.Entry == nil {
		fn.Entry = b
	}
	fn.preds[b] = nil
	return b
}

// Predicate returns the canonical *Value for a named condition, creating it
// on first use. Two calls with the same name return the same pointer,
// modeling the upstream lifting's canonicalization of predicate creation
// (spec.md §9, "Value -> Expression* memo table").
func (fn *Function) Predicate(name string) *Value {
	if v, ok := fn.memo[name]; ok {
		return v
	}
	v := &Value{Op: name}
	fn.memo[name] = v
	return v
}

// SetCondBr sets block's terminator to a conditional branch on the named
// predicate and records the resulting edges in the predecessor index.
func (fn *Function) SetCondBr(block *BasicBlock, predicateName string, trueSucc, falseSucc *BasicBlock) {
	cond := fn.Predicate(predicateName)
	block.SetTerminator(&CondBr{Cond: cond, True: trueSucc, False: falseSucc})
	fn.addEdge(block, trueSucc)
	fn.addEdge(block, falseSucc)
}

// SetBr sets block's terminator to an unconditional branch.
func (fn *Function) SetBr(block *BasicBlock, succ *BasicBlock) {
	block.SetTerminator(&Br{Succ: succ})
	fn.addEdge(block, succ)
}

// SetSwitch sets block's terminator to a multi-way branch.
func (fn *Function) SetSwitch(block *BasicBlock, predicateName string, cases ...*BasicBlock) {
	cond := fn.Predicate(predicateName)
	block.SetTerminator(&Switch{Cond: cond, Cases: cases})
	for _, c := range cases {
		fn.addEdge(block, c)
	}
}

// SetRet sets block's terminator to a return.
func (fn *Function) SetRet(block *BasicBlock, value *Value) {
	block.SetTerminator(&Ret{Value: value})
}

func (fn *Function) addEdge(from, to *BasicBlock) {
	fn.preds[to] = append(fn.preds[to], from)
}

// PostOrder returns the function's blocks in CFG post-order from Entry.
func (fn *Function) PostOrder() []*BasicBlock {
	var order []*BasicBlock
	visited := make(map[*BasicBlock]bool)
	var visit func(b *BasicBlock)
	visit = func(b *BasicBlock) {
		if b == nil || visited[b] {
			return
		}
		visited[b] = true
		for _, s := range b.Succs() {
			visit(s)
		}
		order = append(order, b)
	}
	visit(fn.Entry)
	return order
}

// ReversePostOrder returns the function's blocks in CFG reverse post-order
// from Entry.
func (fn *Function) ReversePostOrder() []*BasicBlock {
	post := fn.PostOrder()
	rev := make([]*BasicBlock, len(post))
	for i, b := range post {
		rev[len(post)-1-i] = b
	}
	return rev
}

// Graph builds the forward CFG as a graph.Graph[*BasicBlock]; callers pass
// fn.Entry explicitly to dominator.New as the tree's root.
func (fn *Function) Graph() *graph.Graph[*BasicBlock] {
	g := graph.New[*BasicBlock]()
	for _, b := range fn.Blocks {
		g.Node(b)
	}
	for _, b := range fn.Blocks {
		from := g.Node(b)
		for _, s := range b.Succs() {
			g.SetEdge(from, g.Node(s))
		}
	}
	return g
}
