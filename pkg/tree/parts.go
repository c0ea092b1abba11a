package tree

import (
	"github.com/715d/treedomain/pkg/domain"
	"github.com/715d/treedomain/pkg/label"
)

// Part selectors. Generic transform, reduce, and partition operations
// are keyed by which part of the tree they visit: the whole tree, the
// (path, element) pairs of stored non-bottom elements, the refined-path
// variant whose wildcards carry sibling-index exclusions, or the
// (path, ancestors, element) triples including accumulated coverage.
// Methods cannot introduce type parameters, so the per-part operations
// are top-level generic functions taking the Domain explicitly.

// ReducePaths folds f over every stored non-bottom element with its
// path, in depth-first label order.
func ReducePaths[T domain.Element[T], A any](d *Domain[T], t *Tree[T], init A, f func(acc A, path label.Path, element T) A) A {
	return reducePaths(t, nil, init, f)
}

func reducePaths[T domain.Element[T], A any](t *Tree[T], path label.Path, acc A, f func(A, label.Path, T) A) A {
	if !t.element.IsBottom() {
		acc = f(acc, append(label.Path(nil), path...), t.element)
	}
	for _, c := range t.children {
		acc = reducePaths(c.tree, append(path, c.label), acc, f)
	}
	return acc
}

// ReduceRefinedPaths folds f over stored elements keyed by refined
// paths: every wildcard segment carries the concrete sibling indices it
// does not cover, so consumers can report wildcard and explicit-index
// contributions without overlap.
func ReduceRefinedPaths[T domain.Element[T], A any](d *Domain[T], t *Tree[T], init A, f func(acc A, path label.RefinedPath, element T) A) A {
	return reduceRefinedPaths(t, nil, init, f)
}

func reduceRefinedPaths[T domain.Element[T], A any](t *Tree[T], path label.RefinedPath, acc A, f func(A, label.RefinedPath, T) A) A {
	if !t.element.IsBottom() {
		acc = f(acc, append(label.RefinedPath(nil), path...), t.element)
	}
	var siblings []string
	for _, c := range t.children {
		if c.label.IsIndex() {
			siblings = append(siblings, c.label.Name())
		}
	}
	for _, c := range t.children {
		var refined label.Refined
		switch {
		case c.label.IsAnyIndex():
			refined = label.RefinedAnyIndex(siblings)
		case c.label.IsIndex():
			refined = label.RefinedIndex(c.label.Name())
		default:
			refined = label.RefinedField(c.label.Name())
		}
		acc = reduceRefinedPaths(c.tree, append(path, refined), acc, f)
	}
	return acc
}

// ReducePathsWithAncestors folds f over (path, ancestors, element)
// triples, where ancestors is the coverage accumulated above the node
// (through the sink transform), for every stored non-bottom element.
func ReducePathsWithAncestors[T domain.Element[T], A any](d *Domain[T], t *Tree[T], init A, f func(acc A, path label.Path, ancestors, element T) A) A {
	return reduceWithAncestors(d, t, nil, d.ops.Bottom(), init, f)
}

func reduceWithAncestors[T domain.Element[T], A any](d *Domain[T], t *Tree[T], path label.Path, ancestors T, acc A, f func(A, label.Path, T, T) A) A {
	if !t.element.IsBottom() {
		acc = f(acc, append(label.Path(nil), path...), ancestors, t.element)
	}
	childAncestors := d.ops.TransformOnSink(d.ops.Join(ancestors, t.element))
	for _, c := range t.children {
		acc = reduceWithAncestors(d, c.tree, append(path, c.label), childAncestors, acc, f)
	}
	return acc
}

// TransformPaths rebuilds the tree with f applied to every stored
// (path, element) pair. Transformed elements are written back weakly at
// their paths, so the result is minimal regardless of what f returns.
func TransformPaths[T domain.Element[T]](d *Domain[T], t *Tree[T], f func(path label.Path, element T) T) *Tree[T] {
	return ReducePaths(d, t, d.Bottom(), func(acc *Tree[T], path label.Path, element T) *Tree[T] {
		return d.Assign(acc, path, d.CreateLeaf(f(path, element)), true)
	})
}

// PartitionPaths splits the tree by a key derived from each stored
// (path, element) pair. Pairs for which key reports false are dropped.
// Each partition is itself a minimal tree.
func PartitionPaths[T domain.Element[T], K comparable](d *Domain[T], t *Tree[T], key func(path label.Path, element T) (K, bool)) map[K]*Tree[T] {
	out := make(map[K]*Tree[T])
	ReducePaths(d, t, struct{}{}, func(_ struct{}, path label.Path, element T) struct{} {
		k, ok := key(path, element)
		if !ok {
			return struct{}{}
		}
		base, seen := out[k]
		if !seen {
			base = d.Bottom()
		}
		out[k] = d.Assign(base, path, d.CreateLeaf(element), true)
		return struct{}{}
	})
	return out
}
