package tree

import "github.com/715d/treedomain/pkg/domain"

// Value adapts a tree to the same Element capability its own element
// type satisfies, so trees can nest as elements of an outer tree
// (domains of domains) and generic combinators can treat every abstract
// domain uniformly. The zero Value is bottom.
type Value[T domain.Element[T]] struct {
	d *Domain[T]
	t *Tree[T]
}

// Wrap lifts a tree into an element of this domain.
func (d *Domain[T]) Wrap(t *Tree[T]) Value[T] {
	return Value[T]{d: d, t: t}
}

// Tree returns the underlying tree; the zero Value yields nil.
func (v Value[T]) Tree() *Tree[T] { return v.t }

func (v Value[T]) IsBottom() bool {
	return v.t == nil || v.t.IsBottom()
}

func (v Value[T]) LessOrEqual(other Value[T]) bool {
	if v.IsBottom() {
		return true
	}
	if other.IsBottom() {
		return false
	}
	return v.d.LessOrEqual(v.t, other.t)
}

func (v Value[T]) Equal(other Value[T]) bool {
	if v.IsBottom() || other.IsBottom() {
		return v.IsBottom() == other.IsBottom()
	}
	return v.d.Equal(v.t, other.t)
}

func (v Value[T]) Show() string {
	if v.t == nil {
		return "{}"
	}
	return v.t.String()
}

// ValueOperations makes the tree domain satisfy the Operations contract
// over its own wrapped trees.
type ValueOperations[T domain.Element[T]] struct {
	d *Domain[T]
}

// ValueOperations returns the operations bundle for nesting this domain
// inside another tree: tree.New(cfg, inner.ValueOperations()).
func (d *Domain[T]) ValueOperations() ValueOperations[T] {
	return ValueOperations[T]{d: d}
}

func (o ValueOperations[T]) Bottom() Value[T] {
	return Value[T]{d: o.d, t: o.d.bottom}
}

func (o ValueOperations[T]) lift(v Value[T]) *Tree[T] {
	if v.t == nil {
		return o.d.bottom
	}
	return v.t
}

func (o ValueOperations[T]) Join(a, b Value[T]) Value[T] {
	return Value[T]{d: o.d, t: o.d.Join(o.lift(a), o.lift(b))}
}

func (o ValueOperations[T]) Widen(iteration int, prev, next Value[T]) Value[T] {
	return Value[T]{d: o.d, t: o.d.Widen(o.lift(prev), o.lift(next))}
}

// Subtract conservatively keeps from unless it is entirely implied;
// partial tree difference would not be sound to approximate from below.
func (o ValueOperations[T]) Subtract(toRemove, from Value[T]) Value[T] {
	if from.LessOrEqual(toRemove) {
		return o.Bottom()
	}
	return from
}

func (o ValueOperations[T]) TransformOnWideningCollapse(v Value[T]) Value[T] { return v }
func (o ValueOperations[T]) TransformOnSink(v Value[T]) Value[T]            { return v }
func (o ValueOperations[T]) TransformOnHoist(v Value[T]) Value[T]           { return v }
