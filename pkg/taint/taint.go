// Package taint provides the concrete element lattice used by
// taint-style clients of the tree domain: a finite powerset of taint
// kinds, ordered by inclusion.
package taint

import (
	"sort"
	"strings"

	set "github.com/hashicorp/go-set/v3"
)

// Kinds is a set of taint kind names. The zero value and the empty set
// are both bottom. Kinds values are immutable; operations return new
// sets and never mutate their operands.
type Kinds struct {
	set *set.Set[string]
}

// NewKinds builds an element carrying the given kinds.
func NewKinds(names ...string) Kinds {
	if len(names) == 0 {
		return Kinds{}
	}
	return Kinds{set: set.From(names)}
}

func (k Kinds) IsBottom() bool {
	return k.set == nil || k.set.Size() == 0
}

// Contains reports whether the element carries the given kind.
func (k Kinds) Contains(name string) bool {
	return k.set != nil && k.set.Contains(name)
}

func (k Kinds) LessOrEqual(other Kinds) bool {
	if k.IsBottom() {
		return true
	}
	if other.IsBottom() {
		return false
	}
	for _, name := range k.set.Slice() {
		if !other.set.Contains(name) {
			return false
		}
	}
	return true
}

func (k Kinds) Equal(other Kinds) bool {
	return k.LessOrEqual(other) && other.LessOrEqual(k)
}

// Slice returns the kinds in sorted order.
func (k Kinds) Slice() []string {
	if k.set == nil {
		return nil
	}
	names := k.set.Slice()
	sort.Strings(names)
	return names
}

func (k Kinds) Show() string {
	if k.IsBottom() {
		return "{}"
	}
	return "{" + strings.Join(k.Slice(), ", ") + "}"
}

// Operations implements the lattice operations bundle for Kinds.
// BroadenedKind, when set, is added to every element folded away by a
// widening collapse, marking results whose paths were over-approximated.
type Operations struct {
	BroadenedKind string
}

func (Operations) Bottom() Kinds { return Kinds{} }

func (Operations) Join(a, b Kinds) Kinds {
	switch {
	case a.IsBottom():
		return b
	case b.IsBottom():
		return a
	case a.LessOrEqual(b):
		return b
	case b.LessOrEqual(a):
		return a
	}
	union := a.set.Copy()
	union.InsertSlice(b.set.Slice())
	return Kinds{set: union}
}

// Widen joins; a finite powerset has no infinite ascending chains, so
// join already converges.
func (o Operations) Widen(iteration int, prev, next Kinds) Kinds {
	return o.Join(prev, next)
}

// Subtract removes the kinds already implied by toRemove.
func (Operations) Subtract(toRemove, from Kinds) Kinds {
	if toRemove.IsBottom() || from.IsBottom() {
		return from
	}
	var remaining []string
	for _, name := range from.set.Slice() {
		if !toRemove.set.Contains(name) {
			remaining = append(remaining, name)
		}
	}
	return NewKinds(remaining...)
}

func (o Operations) TransformOnWideningCollapse(k Kinds) Kinds {
	if o.BroadenedKind == "" || k.IsBottom() || k.Contains(o.BroadenedKind) {
		return k
	}
	marked := k.set.Copy()
	marked.Insert(o.BroadenedKind)
	return Kinds{set: marked}
}

func (Operations) TransformOnSink(k Kinds) Kinds  { return k }
func (Operations) TransformOnHoist(k Kinds) Kinds { return k }
