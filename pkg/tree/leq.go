package tree

import (
	"fmt"

	"github.com/715d/treedomain/pkg/label"
)

// witness records the first counterexample found by a subsumption check,
// for rendering when invariant checking is enabled. A nil witness
// disables recording.
type witness struct {
	path    label.Path
	left    string
	covered string
}

func (w *witness) record(path label.Path, left, covered string) {
	if w == nil {
		return
	}
	w.path = append(label.Path(nil), path...)
	w.left = left
	w.covered = covered
}

func (w *witness) String() string {
	path := w.path.String()
	if path == "" {
		path = "."
	}
	return fmt.Sprintf("at %s: %s is not covered by %s", path, w.left, w.covered)
}

// LessOrEqual reports whether left is subsumed by right: every element
// of left is covered by the corresponding coverage of right, with the
// same wildcard asymmetry as Join. Short-circuits on the first
// counterexample.
func (d *Domain[T]) LessOrEqual(left, right *Tree[T]) bool {
	ok, _ := d.lessOrEqual(left, right, nil)
	return ok
}

func (d *Domain[T]) lessOrEqual(left, right *Tree[T], w *witness) (bool, *witness) {
	if left == right || left.IsBottom() {
		return true, nil
	}
	return d.lessOrEqualTree(nil, left, d.ops.Bottom(), right, w), w
}

// lessOrEqualTree checks one node: left's element must be subsumed by
// the accumulated right-side coverage plus right's own element, then the
// children must be pairwise subsumed under the wildcard rules.
func (d *Domain[T]) lessOrEqualTree(path label.Path, left *Tree[T], rightAncestors T, right *Tree[T], w *witness) bool {
	covered := d.ops.Join(rightAncestors, right.element)
	if !left.element.LessOrEqual(covered) {
		w.record(path, left.element.Show(), covered.Show())
		return false
	}
	return d.lessOrEqualChildren(path, left.children, d.ops.TransformOnSink(covered), right.children, w)
}

func (d *Domain[T]) lessOrEqualChildren(path label.Path, left childMap[T], rightAncestors T, right childMap[T], w *witness) bool {
	if len(left) == 0 {
		// Right-only children only add coverage; nothing to check.
		return true
	}

	rightStar := right.anyIndex()
	for _, c := range left {
		counterpart := right.get(c.label)
		switch {
		case counterpart != nil:
		case c.label.IsIndex() && rightStar != nil:
			// The right wildcard stands in for the missing index.
			counterpart = rightStar
		default:
			// Left-only AnyIndex or Field: only the accumulated
			// ancestors cover it (fields never fall back to a sibling
			// wildcard).
			counterpart = d.bottom
		}
		if !d.lessOrEqualTree(append(path, c.label), c.tree, rightAncestors, counterpart, w) {
			return false
		}
	}

	// A right-only concrete index refines coverage the left wildcard
	// claims for that index, so the wildcard must be subsumed by it.
	if leftStar := left.anyIndex(); leftStar != nil {
		for _, c := range right {
			if c.label.IsIndex() && left.get(c.label) == nil {
				if !d.lessOrEqualTree(append(path, c.label), leftStar, rightAncestors, c.tree, w) {
					return false
				}
			}
		}
	}
	return true
}
