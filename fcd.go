// Package fcd ties the control-flow structuring core together: arena,
// grapher, and per-function loop-driving, exposed as a module-level pass
// over a set of functions. Grounded on decompile_test.go's top-level
// Decompile(cfg) entry point, generalized to a multi-function module run
// with the concurrency model spec.md §5 allows (one arena per worker when
// functions are partitioned across goroutines).
package fcd

import (
	"context"
	"errors"
	"fmt"

	"github.com/archerbroler/fcd/arena"
	"github.com/archerbroler/fcd/grapher"
	"github.com/archerbroler/fcd/ir"
	"github.com/archerbroler/fcd/loopdriver"
	"github.com/archerbroler/fcd/stmt"
	"golang.org/x/sync/errgroup"
)

// Module owns the arena and grapher state shared by the functions processed
// in a single run, and the ASTs produced for each.
type Module struct {
	arena       *arena.Arena
	grapher     *grapher.Grapher
	asts        map[*ir.Function]stmt.Statement
	processed   map[*ir.Function]bool
	diagnostics Diagnostics
}

// New creates an empty module backed by a fresh arena.
func New() *Module {
	a := arena.New()
	return &Module{
		arena:     a,
		grapher:   grapher.New(a),
		asts:      make(map[*ir.Function]stmt.Statement),
		processed: make(map[*ir.Function]bool),
	}
}

// Diagnostics collects the non-fatal failures accumulated across a module
// run: one entry per function that failed to structure, per spec.md §7's
// "fails the pass for that function; does not abort the module".
type Diagnostics []error

func (d Diagnostics) Error() string {
	return errors.Join([]error(d)...).Error()
}

// Run structures every function in fns sequentially, reusing m's arena and
// grapher. Empty functions are skipped; a function already processed in a
// prior call is skipped (the idempotence guard of spec.md §7). It returns a
// non-nil error aggregating every function's failure, or nil if every
// function structured cleanly.
func (m *Module) Run(fns []*ir.Function) error {
	var diags Diagnostics
	for _, fn := range fns {
		if err := m.runOne(fn); err != nil {
			diags = append(diags, err)
		}
	}
	m.diagnostics = append(m.diagnostics, diags...)
	if len(diags) == 0 {
		return nil
	}
	return diags
}

// RunParallel structures the functions in fns concurrently, partitioning
// the arena per worker as spec.md §5 allows: each goroutine gets its own
// Arena and Grapher, and results are merged into m afterward. workers <= 0
// means "one per function".
func (m *Module) RunParallel(ctx context.Context, fns []*ir.Function, workers int) error {
	type result struct {
		fn  *ir.Function
		ast stmt.Statement
		err error
	}

	results := make([]result, len(fns))
	g, _ := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, fn := range fns {
		i, fn := i, fn
		g.Go(func() error {
			if len(fn.Blocks) == 0 {
				return nil
			}
			a := arena.New()
			gr := grapher.New(a)
			ast, err := loopdriver.Run(a, gr, fn)
			results[i] = result{fn: fn, ast: ast, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var diags Diagnostics
	for _, r := range results {
		if r.fn == nil {
			continue
		}
		if r.err != nil {
			diags = append(diags, fmt.Errorf("fcd: function %q: %w", r.fn.Name, r.err))
			continue
		}
		m.asts[r.fn] = r.ast
		m.processed[r.fn] = true
	}
	m.diagnostics = append(m.diagnostics, diags...)
	if len(diags) == 0 {
		return nil
	}
	return diags
}

func (m *Module) runOne(fn *ir.Function) error {
	if len(fn.Blocks) == 0 {
		return nil
	}
	if m.processed[fn] {
		return nil
	}
	m.processed[fn] = true

	ast, err := loopdriver.Run(m.arena, m.grapher, fn)
	if err != nil {
		return fmt.Errorf("fcd: function %q: %w", fn.Name, err)
	}
	m.asts[fn] = ast
	return nil
}

// ASTForFunction returns the structured AST produced for fn, or nil if fn
// has not been processed (or failed to structure).
func (m *Module) ASTForFunction(fn *ir.Function) stmt.Statement {
	return m.asts[fn]
}

// Diagnostics returns every non-fatal failure accumulated across every Run
// and RunParallel call on m so far.
func (m *Module) Diagnostics() Diagnostics {
	return m.diagnostics
}
