// Package tree implements a generic abstract tree domain: a lattice over
// path-indexed trees used to summarize how a value's substructure carries
// an analysis fact without enumerating every concrete access path.
//
// Trees are persistent values. Every operation returns a new tree and
// shares unchanged subtrees; a published tree is never mutated. Stored
// trees are kept minimal: a node's element never repeats coverage already
// implied by the join of its ancestors, and a fully bottom child is
// simply absent.
package tree

import (
	"strings"

	"github.com/715d/treedomain/pkg/domain"
	"github.com/715d/treedomain/pkg/label"
)

// Tree is one node of the abstract tree: an element plus an ordered map
// of children. Construct trees through a Domain; the zero Tree is not
// meaningful because the zero element of T may not be bottom.
type Tree[T domain.Element[T]] struct {
	element  T
	children childMap[T]
}

// Domain binds the element operations and configuration to the tree
// algebra. All tree operations hang off a Domain so nested instantiation
// (trees of trees) needs no global state.
type Domain[T domain.Element[T]] struct {
	ops    domain.Operations[T]
	cfg    domain.Config
	bottom *Tree[T]
}

// New constructs a tree domain over the given element operations.
func New[T domain.Element[T]](cfg domain.Config, ops domain.Operations[T]) *Domain[T] {
	return &Domain[T]{
		ops:    ops,
		cfg:    cfg,
		bottom: &Tree[T]{element: ops.Bottom()},
	}
}

// Bottom returns the canonical empty tree.
func (d *Domain[T]) Bottom() *Tree[T] { return d.bottom }

// CreateLeaf returns a tree holding just the given element at its root.
func (d *Domain[T]) CreateLeaf(e T) *Tree[T] {
	if e.IsBottom() {
		return d.bottom
	}
	return &Tree[T]{element: e}
}

// makeNode builds a node, normalizing the empty case to nil so callers
// can drop dangling empties uniformly.
func (d *Domain[T]) makeNode(e T, children childMap[T]) *Tree[T] {
	if len(children) == 0 {
		if e.IsBottom() {
			return nil
		}
		return &Tree[T]{element: e}
	}
	return &Tree[T]{element: e, children: children}
}

// orBottom converts the internal nil-for-absent representation back to
// the canonical bottom tree at the API boundary.
func (d *Domain[T]) orBottom(t *Tree[T]) *Tree[T] {
	if t == nil {
		return d.bottom
	}
	return t
}

// IsBottom reports whether the tree is the empty tree.
func (t *Tree[T]) IsBottom() bool {
	return len(t.children) == 0 && t.element.IsBottom()
}

// Root returns the element stored at the root.
func (t *Tree[T]) Root() T { return t.element }

// Labels returns the labels of the root's children, in the label order.
func (t *Tree[T]) Labels() []label.Label {
	out := make([]label.Label, len(t.children))
	for i, c := range t.children {
		out[i] = c.label
	}
	return out
}

// MaxDepth returns the number of edges on the longest path in the tree.
func (t *Tree[T]) MaxDepth() int {
	depth := 0
	for _, c := range t.children {
		if d := 1 + c.tree.MaxDepth(); d > depth {
			depth = d
		}
	}
	return depth
}

// MinDepth returns the depth of the shallowest non-bottom element, or 0
// for the empty tree.
func (t *Tree[T]) MinDepth() int {
	if !t.element.IsBottom() || len(t.children) == 0 {
		return 0
	}
	depth := -1
	for _, c := range t.children {
		if d := 1 + c.tree.MinDepth(); depth < 0 || d < depth {
			depth = d
		}
	}
	return depth
}

// Prepend nests the tree underneath the given path.
func (d *Domain[T]) Prepend(path label.Path, t *Tree[T]) *Tree[T] {
	if t.IsBottom() {
		return d.bottom
	}
	for i := len(path) - 1; i >= 0; i-- {
		t = &Tree[T]{
			element:  d.ops.Bottom(),
			children: childMap[T]{{label: path[i], tree: t}},
		}
	}
	return t
}

// Equal reports structural equality of two trees under element equality.
func (d *Domain[T]) Equal(a, b *Tree[T]) bool {
	if a == b {
		return true
	}
	if !a.element.Equal(b.element) || len(a.children) != len(b.children) {
		return false
	}
	for i, c := range a.children {
		other := b.children[i]
		if !c.label.Equal(other.label) || !d.Equal(c.tree, other.tree) {
			return false
		}
	}
	return true
}

// String renders every non-bottom element annotated by its path, one per
// line. The empty tree renders as "{}".
func (t *Tree[T]) String() string {
	var b strings.Builder
	t.render(&b, nil)
	if b.Len() == 0 {
		return "{}"
	}
	return b.String()
}

func (t *Tree[T]) render(b *strings.Builder, path label.Path) {
	if !t.element.IsBottom() {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		if len(path) == 0 {
			b.WriteString(".")
		} else {
			b.WriteString(path.String())
		}
		b.WriteString(" -> ")
		b.WriteString(t.element.Show())
	}
	for _, c := range t.children {
		c.tree.render(b, append(path, c.label))
	}
}
