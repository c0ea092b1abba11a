package tree

// collapseInto joins every element of the subtree into acc, applying
// transform to each one.
func (d *Domain[T]) collapseInto(transform func(T) T, t *Tree[T], acc T) T {
	acc = d.ops.Join(acc, transform(t.element))
	for _, c := range t.children {
		acc = d.collapseInto(transform, c.tree, acc)
	}
	return acc
}

// collapseTree folds the whole tree into one scalar element. The root
// element is taken as-is; every descendant element passes through
// transform first.
func (d *Domain[T]) collapseTree(transform func(T) T, t *Tree[T]) T {
	acc := t.element
	for _, c := range t.children {
		acc = d.collapseInto(transform, c.tree, acc)
	}
	return acc
}

// Collapse folds the entire tree into one element, losing all path
// sensitivity. transform, when non-nil, is applied to every non-root
// element first (typically to strip precision markers before
// over-approximating). Sound because join only over-approximates.
func (d *Domain[T]) Collapse(t *Tree[T], transform func(T) T) T {
	if transform == nil {
		transform = identity[T]
	}
	return d.collapseTree(transform, t)
}

// CollapseTo bounds the tree's depth by folding everything below depth
// into the node at that level. It reuses the forced-collapse path of the
// join recursion by self-joining with an explicit depth bound; there is
// no separate truncation algorithm.
func (d *Domain[T]) CollapseTo(depth int, t *Tree[T], transform func(T) T) *Tree[T] {
	if t.MaxDepth() <= depth {
		return t
	}
	if transform == nil {
		transform = identity[T]
	}
	result := d.orBottom(d.joinTrees(d.ops.Bottom(), &depth, transform, t, t))
	if d.cfg.CheckInvariants() {
		d.checkMinimal("collapse_to", result)
	}
	return result
}

// LimitTo bounds the number of live leaves. It finds the deepest level
// at which collapsing would satisfy the width bound and collapses there;
// a tree already within bounds is returned unchanged.
func (d *Domain[T]) LimitTo(width int, t *Tree[T], transform func(T) T) *Tree[T] {
	if width < 1 {
		width = 1
	}

	// nodes[i] and leaves[i] count nodes and leaves at depth i. After
	// CollapseTo(i) the live leaves are the leaves above depth i plus
	// every node at depth i.
	var nodes, leaves []int
	level := []*Tree[T]{t}
	for len(level) > 0 {
		var next []*Tree[T]
		leafCount := 0
		for _, n := range level {
			if len(n.children) == 0 {
				leafCount++
			}
			for _, c := range n.children {
				next = append(next, c.tree)
			}
		}
		nodes = append(nodes, len(level))
		leaves = append(leaves, leafCount)
		level = next
	}

	total := 0
	for _, c := range leaves {
		total += c
	}
	if total <= width {
		return t
	}

	// leavesAfter(depth) is nondecreasing in depth, so take the largest
	// depth still within bounds; depth 0 always fits (a single leaf).
	depth := 0
	leavesAbove := 0
	for i := range nodes {
		if leavesAbove+nodes[i] <= width {
			depth = i
		}
		leavesAbove += leaves[i]
	}

	result := d.CollapseTo(depth, t, transform)
	if d.cfg.CheckInvariants() {
		d.checkMinimal("limit_to", result)
	}
	return result
}

// CutTreeAfter discards all structure below the given depth. Unlike
// CollapseTo this drops the deeper elements instead of folding them in;
// it is deliberately lossy and exists for callers that bound the length
// of reported access paths.
func (d *Domain[T]) CutTreeAfter(depth int, t *Tree[T]) *Tree[T] {
	return d.orBottom(d.cutAfter(depth, t))
}

func (d *Domain[T]) cutAfter(depth int, t *Tree[T]) *Tree[T] {
	if depth <= 0 {
		return d.makeNode(t.element, nil)
	}
	var children childMap[T]
	for _, c := range t.children {
		if cut := d.cutAfter(depth-1, c.tree); cut != nil {
			children = append(children, childEntry[T]{label: c.label, tree: cut})
		}
	}
	return d.makeNode(t.element, children)
}
