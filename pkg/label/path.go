package label

import "strings"

// Path is an ordered sequence of labels describing how a sub-value is
// reached from a root value.
type Path []Label

// String renders the path as a concatenation of its segments. The empty
// path renders as "" (callers display the root however they prefer).
func (p Path) String() string {
	var b strings.Builder
	for _, l := range p {
		b.WriteString(l.String())
	}
	return b.String()
}

// Equal reports whether two paths are segment-wise equal.
func (p Path) Equal(other Path) bool {
	return ComparePaths(p, other, nil) == 0
}

// ComparePaths orders paths lexicographically. A nil cmp falls back to the
// label total order; callers may supply their own segment comparator.
func ComparePaths(a, b Path, cmp func(Label, Label) int) int {
	if cmp == nil {
		cmp = Label.Compare
	}
	for i := range a {
		if i >= len(b) {
			return 1
		}
		if c := cmp(a[i], b[i]); c != 0 {
			return c
		}
	}
	if len(a) < len(b) {
		return -1
	}
	return 0
}

// CommonPrefix returns the longest shared prefix of two paths.
func CommonPrefix(a, b Path) Path {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i].Equal(b[i]) {
		i++
	}
	return a[:i]
}

// IsPrefix reports whether prefix is a (possibly equal) prefix of p.
func IsPrefix(prefix, p Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, l := range prefix {
		if !l.Equal(p[i]) {
			return false
		}
	}
	return true
}
