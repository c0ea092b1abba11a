package tree

import (
	"sort"

	"github.com/715d/treedomain/pkg/domain"
	"github.com/715d/treedomain/pkg/label"
)

// childEntry binds a label to a shared, immutable subtree.
type childEntry[T domain.Element[T]] struct {
	label label.Label
	tree  *Tree[T]
}

// childMap is a persistent ordered map from labels to subtrees, kept
// sorted by the label total order (AnyIndex first). Updates copy the
// entry slice; subtrees are shared, never mutated.
type childMap[T domain.Element[T]] []childEntry[T]

// search returns the position of l, or the insertion point and false.
func (m childMap[T]) search(l label.Label) (int, bool) {
	i := sort.Search(len(m), func(i int) bool {
		return m[i].label.Compare(l) >= 0
	})
	return i, i < len(m) && m[i].label.Equal(l)
}

// get returns the subtree stored at l, or nil when absent.
func (m childMap[T]) get(l label.Label) *Tree[T] {
	if i, ok := m.search(l); ok {
		return m[i].tree
	}
	return nil
}

// anyIndex returns the wildcard branch, or nil when absent.
func (m childMap[T]) anyIndex() *Tree[T] {
	if len(m) > 0 && m[0].label.IsAnyIndex() {
		return m[0].tree
	}
	return nil
}

// with returns a map with l bound to t. A nil t removes the binding.
func (m childMap[T]) with(l label.Label, t *Tree[T]) childMap[T] {
	i, ok := m.search(l)
	switch {
	case t == nil && !ok:
		return m
	case t == nil:
		out := make(childMap[T], 0, len(m)-1)
		out = append(out, m[:i]...)
		return append(out, m[i+1:]...)
	case ok:
		out := make(childMap[T], len(m))
		copy(out, m)
		out[i] = childEntry[T]{label: l, tree: t}
		return out
	default:
		out := make(childMap[T], 0, len(m)+1)
		out = append(out, m[:i]...)
		out = append(out, childEntry[T]{label: l, tree: t})
		return append(out, m[i:]...)
	}
}

// mergedLabels returns the sorted union of the keys of two maps.
func mergedLabels[T domain.Element[T]](a, b childMap[T]) []label.Label {
	out := make([]label.Label, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch c := a[i].label.Compare(b[j].label); {
		case c < 0:
			out = append(out, a[i].label)
			i++
		case c > 0:
			out = append(out, b[j].label)
			j++
		default:
			out = append(out, a[i].label)
			i++
			j++
		}
	}
	for ; i < len(a); i++ {
		out = append(out, a[i].label)
	}
	for ; j < len(b); j++ {
		out = append(out, b[j].label)
	}
	return out
}
