// Package summary caches per-procedure tree summaries across fixpoint
// iterations. The interprocedural driver updates a procedure's summary
// each round; after a configured number of rounds the update switches
// from join to widen so iteration terminates.
package summary

import (
	"log/slog"
	goruntime "runtime"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sync/errgroup"

	"github.com/715d/treedomain/pkg/domain"
	"github.com/715d/treedomain/pkg/tree"
)

// entry is a cached summary plus the number of updates it has absorbed.
type entry[T domain.Element[T]] struct {
	tree       *tree.Tree[T]
	iterations int
}

// Cache holds per-procedure summaries. Concurrent readers and writers
// of distinct procedures are safe; a single procedure's summary is
// expected to have one writer at a time (the driver schedules each
// procedure on one worker).
type Cache[T domain.Element[T]] struct {
	d          *tree.Domain[T]
	entries    *xsync.Map[string, *entry[T]]
	widenAfter int
}

// New creates a cache over the given domain. widenAfter is the number
// of updates after which combining switches from join to widen; zero
// widens from the first combination.
func New[T domain.Element[T]](d *tree.Domain[T], widenAfter int) *Cache[T] {
	return &Cache[T]{
		d:          d,
		entries:    xsync.NewMap[string, *entry[T]](),
		widenAfter: widenAfter,
	}
}

// Get returns the cached summary for a procedure.
func (c *Cache[T]) Get(procedure string) (*tree.Tree[T], bool) {
	e, ok := c.entries.Load(procedure)
	if !ok {
		return c.d.Bottom(), false
	}
	return e.tree, true
}

// Update combines next into the procedure's summary and reports whether
// the summary changed. Past widenAfter updates the combination widens
// instead of joining.
func (c *Cache[T]) Update(procedure string, next *tree.Tree[T]) (*tree.Tree[T], bool) {
	prev, ok := c.entries.Load(procedure)
	if !ok {
		c.entries.Store(procedure, &entry[T]{tree: next, iterations: 1})
		return next, !next.IsBottom()
	}

	var combined *tree.Tree[T]
	if prev.iterations >= c.widenAfter {
		combined = c.d.Widen(prev.tree, next)
	} else {
		combined = c.d.Join(prev.tree, next)
	}
	changed := !c.d.Equal(combined, prev.tree)
	c.entries.Store(procedure, &entry[T]{tree: combined, iterations: prev.iterations + 1})

	if changed {
		slog.Debug("summary updated",
			"procedure", procedure,
			"iterations", prev.iterations+1,
			"depth", combined.MaxDepth())
	}
	return combined, changed
}

// Evict drops a procedure's summary, e.g. when its source changed.
func (c *Cache[T]) Evict(procedure string) {
	c.entries.Delete(procedure)
}

// Len returns the number of cached summaries.
func (c *Cache[T]) Len() int {
	return c.entries.Size()
}

// CombineAll joins every cached summary into a single tree, fanning the
// fold out over a bounded worker pool. Each worker writes its partial
// result to its own slice index, so no locks are needed; trees are
// immutable and safe to combine from independent goroutines.
func (c *Cache[T]) CombineAll() *tree.Tree[T] {
	var trees []*tree.Tree[T]
	c.entries.Range(func(_ string, e *entry[T]) bool {
		trees = append(trees, e.tree)
		return true
	})
	if len(trees) == 0 {
		return c.d.Bottom()
	}

	workers := goruntime.NumCPU()
	if workers > len(trees) {
		workers = len(trees)
	}
	chunk := (len(trees) + workers - 1) / workers
	partials := make([]*tree.Tree[T], workers)

	var wg errgroup.Group
	wg.SetLimit(workers)
	for i := range workers {
		wg.Go(func() error {
			start := i * chunk
			end := min(start+chunk, len(trees))
			acc := c.d.Bottom()
			for _, t := range trees[start:end] {
				acc = c.d.Join(acc, t)
			}
			partials[i] = acc
			return nil
		})
	}
	_ = wg.Wait()

	result := c.d.Bottom()
	for _, p := range partials {
		if p != nil {
			result = c.d.Join(result, p)
		}
	}
	return result
}
