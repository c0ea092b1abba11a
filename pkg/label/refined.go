package label

import (
	"sort"
	"strings"

	set "github.com/hashicorp/go-set/v3"
)

// Refined is a label variant used during path-projection queries. A
// refined AnyIndex carries the set of sibling concrete indices it does
// not additionally cover, so precise read queries can avoid counting an
// index both under its explicit child and under the wildcard.
type Refined struct {
	label    Label
	excluded *set.Set[string]
}

// RefinedField wraps a field label; it carries no exclusions.
func RefinedField(name string) Refined {
	return Refined{label: Field(name)}
}

// RefinedIndex wraps a concrete index label; it carries no exclusions.
func RefinedIndex(name string) Refined {
	return Refined{label: Index(name)}
}

// RefinedAnyIndex builds a wildcard label excluding the given sibling
// concrete indices.
func RefinedAnyIndex(excluded []string) Refined {
	s := set.From(excluded)
	return Refined{label: AnyIndex(), excluded: s}
}

// Label returns the underlying plain label.
func (r Refined) Label() Label { return r.label }

func (r Refined) IsField() bool    { return r.label.IsField() }
func (r Refined) IsIndex() bool    { return r.label.IsIndex() }
func (r Refined) IsAnyIndex() bool { return r.label.IsAnyIndex() }

// Covers reports whether this label covers the given concrete index name.
// Only a wildcard covers indices beyond its own name, and never an index
// it explicitly excludes.
func (r Refined) Covers(name string) bool {
	if r.label.IsIndex() {
		return r.label.Name() == name
	}
	if !r.label.IsAnyIndex() {
		return false
	}
	return r.excluded == nil || !r.excluded.Contains(name)
}

// Excluded returns the excluded sibling indices in sorted order.
func (r Refined) Excluded() []string {
	if r.excluded == nil {
		return nil
	}
	names := r.excluded.Slice()
	sort.Strings(names)
	return names
}

func (r Refined) String() string {
	if !r.label.IsAnyIndex() || r.excluded == nil || r.excluded.Size() == 0 {
		return r.label.String()
	}
	return "[* except " + strings.Join(r.Excluded(), ",") + "]"
}

// RefinedPath is a path of refined labels.
type RefinedPath []Refined

func (p RefinedPath) String() string {
	var b strings.Builder
	for _, l := range p {
		b.WriteString(l.String())
	}
	return b.String()
}

// Plain strips the refinements, yielding the underlying label path.
func (p RefinedPath) Plain() Path {
	out := make(Path, len(p))
	for i, l := range p {
		out[i] = l.label
	}
	return out
}
