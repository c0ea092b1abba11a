package tree

// widenIterations is the iteration count handed to Element.Widen when
// the tree applies widening internally. The tree carries no per-call
// iteration counter; element implementations that ramp precision down by
// iteration treat 2 as "past the first round".
const widenIterations = 2

// identity is the transform used when no collapse transform applies.
func identity[T any](e T) T { return e }

// Join combines two trees, over-approximating both. Unchanged operands
// are returned as-is.
func (d *Domain[T]) Join(a, b *Tree[T]) *Tree[T] {
	if a == b || b.IsBottom() {
		return a
	}
	if a.IsBottom() {
		return b
	}
	result := d.orBottom(d.joinTrees(d.ops.Bottom(), nil, identity[T], a, b))
	if d.cfg.CheckInvariants() {
		d.checkMinimal("join", result)
		d.checkDominates("join", result, a, b)
	}
	return result
}

// Widen combines the previous and next iterates of a fixpoint, bounding
// tree depth by the configured maximum so iteration terminates.
func (d *Domain[T]) Widen(prev, next *Tree[T]) *Tree[T] {
	if prev == next || next.IsBottom() {
		return prev
	}
	depth := d.cfg.MaxTreeDepthAfterWidening()
	result := d.orBottom(d.joinTrees(d.ops.Bottom(), &depth, d.ops.TransformOnWideningCollapse, prev, next))
	if d.cfg.CheckInvariants() {
		d.checkMinimal("widen", result)
		d.checkDominates("widen", result, prev, next)
	}
	return result
}

// elementJoin combines two elements, widening instead of joining when a
// depth bound is active.
func (d *Domain[T]) elementJoin(widenDepth *int, a, b T) T {
	if widenDepth != nil {
		return d.ops.Widen(widenIterations, a, b)
	}
	return d.ops.Join(a, b)
}

// filterByAncestors enforces minimality: the part of element already
// implied by ancestors is dropped, and the remainder extends the
// coverage passed down to children (through the sink transform).
func (d *Domain[T]) filterByAncestors(ancestors, element T) (stored, childAncestors T) {
	if element.LessOrEqual(ancestors) {
		return d.ops.Bottom(), ancestors
	}
	stored = d.ops.Subtract(ancestors, element)
	childAncestors = d.ops.TransformOnSink(d.ops.Join(ancestors, stored))
	return stored, childAncestors
}

// minimizedLeaf re-minimizes a scalar against ancestors into a single
// leaf, or nothing when the scalar is fully implied.
func (d *Domain[T]) minimizedLeaf(ancestors, element T) *Tree[T] {
	if element.LessOrEqual(ancestors) {
		return nil
	}
	return &Tree[T]{element: d.ops.Subtract(ancestors, element)}
}

// decrement steps the remaining widen depth for the next level down.
func decrement(widenDepth *int) *int {
	if widenDepth == nil {
		return nil
	}
	next := *widenDepth - 1
	return &next
}

// joinTrees is the core recursion. ancestors is the accumulated coverage
// above this node; widenDepth, when non-nil, is the remaining depth
// before both subtrees are forcibly collapsed; transform is applied to
// non-root elements during such a collapse. Returns nil for an empty
// result.
func (d *Domain[T]) joinTrees(ancestors T, widenDepth *int, transform func(T) T, left, right *Tree[T]) *Tree[T] {
	if widenDepth != nil && *widenDepth <= 0 {
		// Depth exhausted: fold both subtrees into scalars and widen
		// those. This is the only mechanism bounding tree growth.
		collapsedLeft := d.collapseTree(transform, left)
		collapsedRight := d.collapseTree(transform, right)
		return d.minimizedLeaf(ancestors, d.elementJoin(widenDepth, collapsedLeft, collapsedRight))
	}

	joined := d.elementJoin(widenDepth, left.element, right.element)
	stored, childAncestors := d.filterByAncestors(ancestors, joined)
	children := d.joinChildren(childAncestors, decrement(widenDepth), transform, left.children, right.children)
	return d.makeNode(stored, children)
}

// joinOption joins possibly absent subtrees at the same path. Without an
// active depth bound a one-sided subtree is merely re-minimized; with one
// it must still go through joinTrees so forced collapse applies.
func (d *Domain[T]) joinOption(ancestors T, widenDepth *int, transform func(T) T, left, right *Tree[T]) *Tree[T] {
	switch {
	case left == nil && right == nil:
		return nil
	case right == nil && widenDepth == nil:
		return d.pruneTree(ancestors, left)
	case left == nil && widenDepth == nil:
		return d.pruneTree(ancestors, right)
	}
	if left == nil {
		left = d.bottom
	}
	if right == nil {
		right = d.bottom
	}
	return d.joinTrees(ancestors, widenDepth, transform, left, right)
}

// joinChildren unifies two child maps. Concrete indices missing on one
// side fall back to the other side's wildcard branch; fields have no
// such fallback and are pruned against the ancestors alone.
func (d *Domain[T]) joinChildren(ancestors T, widenDepth *int, transform func(T) T, left, right childMap[T]) childMap[T] {
	leftStar := left.anyIndex()
	rightStar := right.anyIndex()

	var out childMap[T]
	for _, l := range mergedLabels(left, right) {
		lt := left.get(l)
		rt := right.get(l)

		var merged *Tree[T]
		switch {
		case lt != nil && rt != nil:
			merged = d.joinTrees(ancestors, widenDepth, transform, lt, rt)
		case l.IsAnyIndex():
			merged = d.joinOption(ancestors, widenDepth, transform, lt, rt)
		case l.IsIndex() && lt != nil:
			// The right wildcard implicitly stands in for the missing
			// concrete index.
			merged = d.joinOption(ancestors, widenDepth, transform, lt, rightStar)
		case l.IsIndex():
			merged = d.joinOption(ancestors, widenDepth, transform, leftStar, rt)
		default:
			// One-sided field: no wildcard fallback.
			merged = d.joinOption(ancestors, widenDepth, transform, lt, rt)
		}
		if merged != nil {
			out = append(out, childEntry[T]{label: l, tree: merged})
		}
	}
	return out
}

// pruneTree re-establishes minimality of a subtree against the given
// ancestors, dropping nodes that became fully implied.
func (d *Domain[T]) pruneTree(ancestors T, t *Tree[T]) *Tree[T] {
	stored, childAncestors := d.filterByAncestors(ancestors, t.element)
	var children childMap[T]
	for _, c := range t.children {
		if pruned := d.pruneTree(childAncestors, c.tree); pruned != nil {
			children = append(children, childEntry[T]{label: c.label, tree: pruned})
		}
	}
	return d.makeNode(stored, children)
}
