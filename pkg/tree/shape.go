package tree

import "github.com/715d/treedomain/pkg/label"

// Shape restricts t to the branch structure of mold. A branch present in
// t but absent from mold is collapsed into the nearest surviving
// ancestor's element (through the hoist transform and then transform, if
// given) rather than dropped, so the result stays sound while the
// structure normalizes. Concrete index branches not in mold but covered
// by mold's wildcard are shaped against the wildcard branch and merged
// into the result's wildcard child.
func (d *Domain[T]) Shape(t, mold *Tree[T], transform func(T) T) *Tree[T] {
	if t == mold || t.IsBottom() {
		return t
	}
	if transform == nil {
		transform = identity[T]
	}
	result := d.orBottom(d.shapeTree(d.ops.Bottom(), t, mold, transform))
	if d.cfg.CheckInvariants() {
		d.checkMinimal("shape", result)
	}
	return result
}

func (d *Domain[T]) shapeTree(ancestors T, t, mold *Tree[T], transform func(T) T) *Tree[T] {
	moldStar := mold.children.anyIndex()

	// First pass: decide each branch's fate and fold the mold-absent
	// ones into this node's element before minimizing it.
	element := t.element
	type survivor struct {
		entry childEntry[T]
		mold  *Tree[T]
	}
	var kept []survivor
	var starShaped []*Tree[T]
	for _, c := range t.children {
		switch moldChild := mold.children.get(c.label); {
		case moldChild != nil:
			kept = append(kept, survivor{entry: c, mold: moldChild})
		case c.label.IsIndex() && moldStar != nil:
			starShaped = append(starShaped, c.tree)
		default:
			folded := d.collapseInto(transform, c.tree, d.ops.Bottom())
			element = d.ops.Join(element, d.ops.TransformOnHoist(folded))
		}
	}

	stored, childAncestors := d.filterByAncestors(ancestors, element)

	var children childMap[T]

	// The wildcard child (if any) comes first in the label order, and it
	// absorbs the index branches shaped against the mold's wildcard.
	var star *Tree[T]
	if len(kept) > 0 && kept[0].entry.label.IsAnyIndex() {
		star = d.shapeTree(childAncestors, kept[0].entry.tree, kept[0].mold, transform)
		kept = kept[1:]
	}
	for _, sub := range starShaped {
		shaped := d.shapeTree(childAncestors, sub, moldStar, transform)
		star = d.joinReadResults(star, shaped)
	}
	if star != nil {
		// Re-minimize after the merge; joinReadResults joins under empty
		// ancestors.
		star = d.pruneTree(childAncestors, star)
	}
	if star != nil {
		children = append(children, childEntry[T]{label: label.AnyIndex(), tree: star})
	}

	for _, s := range kept {
		if shaped := d.shapeTree(childAncestors, s.entry.tree, s.mold, transform); shaped != nil {
			children = append(children, childEntry[T]{label: s.entry.label, tree: shaped})
		}
	}

	return d.makeNode(stored, children)
}
