package tree

import (
	"fmt"

	"github.com/715d/treedomain/pkg/label"
)

// Invariant violations are programming bugs in this package or lattice
// law violations in the element implementation; they panic with a
// rendered witness and are never caught internally.

// checkMinimal asserts that no stored element is subsumed by the join of
// its ancestors and that no dangling empty nodes exist.
func (d *Domain[T]) checkMinimal(op string, t *Tree[T]) {
	d.checkMinimalAt(op, t, nil, d.ops.Bottom(), t)
}

func (d *Domain[T]) checkMinimalAt(op string, root *Tree[T], path label.Path, ancestors T, t *Tree[T]) {
	if t != root && t.element.IsBottom() && len(t.children) == 0 {
		panic(fmt.Sprintf("tree: %s produced a dangling empty node at %s:\n%s", op, renderPath(path), root))
	}
	if !t.element.IsBottom() && t.element.LessOrEqual(ancestors) {
		panic(fmt.Sprintf(
			"tree: %s violated minimality at %s: %s is implied by ancestors %s:\n%s",
			op, renderPath(path), t.element.Show(), ancestors.Show(), root,
		))
	}
	childAncestors := d.ops.TransformOnSink(d.ops.Join(ancestors, t.element))
	for _, c := range t.children {
		d.checkMinimalAt(op, root, append(path, c.label), childAncestors, c.tree)
	}
}

// checkDominates asserts that result covers both operands.
func (d *Domain[T]) checkDominates(op string, result, left, right *Tree[T]) {
	w := &witness{}
	if ok, _ := d.lessOrEqual(left, result, w); !ok {
		panic(fmt.Sprintf("tree: %s lost the left operand (%s)\nleft:\n%s\nresult:\n%s", op, w, left, result))
	}
	w = &witness{}
	if ok, _ := d.lessOrEqual(right, result, w); !ok {
		panic(fmt.Sprintf("tree: %s lost the right operand (%s)\nright:\n%s\nresult:\n%s", op, w, right, result))
	}
}

func renderPath(p label.Path) string {
	if len(p) == 0 {
		return "."
	}
	return p.String()
}
