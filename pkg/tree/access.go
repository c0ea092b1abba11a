package tree

import (
	"github.com/715d/treedomain/pkg/label"
)

// Read returns the effective subtree rooted at path. Stored trees are
// minimal, so the coverage accumulated along the path (each traversed
// element, passed through the sink transform) is joined back into the
// result: callers always see the semantic value, never the compressed
// storage form. A concrete index absent from the tree reads through the
// sibling wildcard.
func (d *Domain[T]) Read(path label.Path, t *Tree[T]) *Tree[T] {
	ancestors, sub := d.ReadRaw(path, t, false)
	if ancestors.IsBottom() {
		return sub
	}
	return d.orBottom(d.makeNode(d.ops.Join(sub.element, ancestors), sub.children))
}

// ReadRaw returns the accumulated ancestor coverage along path and the
// stored subtree at path, without joining the two. With usePreciseLabels
// set, wildcard matching is disabled: a concrete index matches only its
// exact key, and an AnyIndex path segment is rejected (use ReadRefined
// for structured wildcard queries).
func (d *Domain[T]) ReadRaw(path label.Path, t *Tree[T], usePreciseLabels bool) (T, *Tree[T]) {
	ancestors, sub := d.readRaw(d.ops.Bottom(), path, t, usePreciseLabels)
	return ancestors, d.orBottom(sub)
}

func (d *Domain[T]) readRaw(ancestors T, path label.Path, t *Tree[T], usePreciseLabels bool) (T, *Tree[T]) {
	if len(path) == 0 {
		return ancestors, t
	}
	ancestors = d.ops.TransformOnSink(d.ops.Join(ancestors, t.element))
	head, rest := path[0], path[1:]

	if head.IsAnyIndex() {
		if usePreciseLabels {
			// Precise wildcard projection needs refined labels to avoid
			// double-counting explicit indices; only ReadRefined
			// supports it.
			panic("tree: ReadRaw with precise labels does not support AnyIndex path segments; use ReadRefined")
		}
		// Semantically [*] covers the wildcard branch and every
		// concrete index; join the readings of all of them.
		resultAncestors := d.ops.Bottom()
		var result *Tree[T]
		matched := false
		for _, c := range t.children {
			if !c.label.IsAnyIndex() && !c.label.IsIndex() {
				continue
			}
			matched = true
			subAncestors, sub := d.readRaw(ancestors, rest, c.tree, usePreciseLabels)
			resultAncestors = d.ops.Join(resultAncestors, subAncestors)
			result = d.joinReadResults(result, sub)
		}
		if !matched {
			return ancestors, nil
		}
		return resultAncestors, result
	}

	child := t.children.get(head)
	if child == nil && head.IsIndex() && !usePreciseLabels {
		child = t.children.anyIndex()
	}
	if child == nil {
		return ancestors, nil
	}
	return d.readRaw(ancestors, rest, child, usePreciseLabels)
}

func (d *Domain[T]) joinReadResults(acc, sub *Tree[T]) *Tree[T] {
	switch {
	case sub == nil:
		return acc
	case acc == nil:
		return sub
	default:
		return d.joinTrees(d.ops.Bottom(), nil, identity[T], acc, sub)
	}
}

// ReadRefined reads along a refined path. A refined wildcard segment
// reads only the stored wildcard branch: its excluded sibling indices
// are accounted for by their own explicit children, so nothing is
// counted twice.
func (d *Domain[T]) ReadRefined(path label.RefinedPath, t *Tree[T]) *Tree[T] {
	ancestors, sub := d.ReadRawRefined(path, t)
	if ancestors.IsBottom() {
		return sub
	}
	return d.orBottom(d.makeNode(d.ops.Join(sub.element, ancestors), sub.children))
}

// ReadRawRefined is ReadRaw over a refined path.
func (d *Domain[T]) ReadRawRefined(path label.RefinedPath, t *Tree[T]) (T, *Tree[T]) {
	ancestors := d.ops.Bottom()
	cur := t
	for _, r := range path {
		ancestors = d.ops.TransformOnSink(d.ops.Join(ancestors, cur.element))
		var child *Tree[T]
		if r.IsAnyIndex() {
			child = cur.children.anyIndex()
		} else {
			child = cur.children.get(r.Label())
			if child == nil && r.IsIndex() {
				child = cur.children.anyIndex()
			}
		}
		if child == nil {
			return ancestors, d.bottom
		}
		cur = child
	}
	return ancestors, cur
}

// Assign writes subtree at path. The default is a strong update that
// overwrites the destination; with weak set the subtree is joined into
// whatever is already there. Writing through a wildcard segment is
// always weak, since the wildcard stands for many concrete cells. The
// written subtree is pruned against the coverage accumulated along path
// so the result stays minimal.
func (d *Domain[T]) Assign(t *Tree[T], path label.Path, subtree *Tree[T], weak bool) *Tree[T] {
	result := d.orBottom(d.assignTree(d.ops.Bottom(), t, path, subtree, weak))
	if d.cfg.CheckInvariants() {
		d.checkMinimal("assign", result)
	}
	return result
}

// assignTree walks the path, keeping nodes along the spine and replacing
// or joining at the destination. t may be nil (absent).
func (d *Domain[T]) assignTree(ancestors T, t *Tree[T], path label.Path, subtree *Tree[T], weak bool) *Tree[T] {
	if len(path) == 0 {
		if weak {
			return d.joinOption(ancestors, nil, identity[T], t, subtree)
		}
		return d.pruneTree(ancestors, subtree)
	}

	head, rest := path[0], path[1:]
	if head.IsAnyIndex() {
		// A strong kill of every index the wildcard covers would be
		// unsound; downgrade the rest of the write.
		weak = true
	}

	element := d.ops.Bottom()
	var children childMap[T]
	if t != nil {
		element = t.element
		children = t.children
	}

	childAncestors := d.ops.TransformOnSink(d.ops.Join(ancestors, element))
	newChild := d.assignTree(childAncestors, children.get(head), rest, subtree, weak)
	return d.makeNode(element, children.with(head, newChild))
}
