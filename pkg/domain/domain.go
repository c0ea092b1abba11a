// Package domain declares the capability contracts the tree domain is
// parameterized by: the element lattice it summarizes, the operations
// bundle acting on that lattice, and the analysis configuration.
package domain

// Element is the per-value part of the lattice contract. T is the
// implementing type itself, so elements compare against their own kind.
type Element[T any] interface {
	// IsBottom reports whether the element is the least lattice value.
	IsBottom() bool
	// LessOrEqual reports whether the element is subsumed by other.
	LessOrEqual(other T) bool
	// Equal reports lattice equality.
	Equal(other T) bool
	// Show renders the element for diagnostics and pretty-printing.
	Show() string
}

// Operations bundles the lattice operations that need no receiver value
// or that the tree invokes symmetrically on two elements. Implementations
// must keep Join commutative and associative; the tree relies on those
// laws but verifies them only under invariant checking.
type Operations[T Element[T]] interface {
	Bottom() T
	Join(a, b T) T
	// Widen bounds growth across fixpoint iterations. It must dominate
	// both prev and next.
	Widen(iteration int, prev, next T) T
	// Subtract removes the part of from already implied by toRemove. It
	// may over-approximate (returning from unchanged is always sound).
	Subtract(toRemove, from T) T

	// TransformOnWideningCollapse is applied to every non-root element
	// folded into a scalar when depth-bounded collapse fires.
	TransformOnWideningCollapse(T) T
	// TransformOnSink is applied to accumulated ancestor coverage as it
	// propagates down to child nodes.
	TransformOnSink(T) T
	// TransformOnHoist is applied to an element as it moves up toward
	// the root, e.g. when structure is folded into an ancestor.
	TransformOnHoist(T) T
}

// Config supplies the analysis-wide tuning the tree consults at runtime.
type Config interface {
	// MaxTreeDepthAfterWidening bounds tree depth whenever widening is
	// applied, guaranteeing fixpoint termination.
	MaxTreeDepthAfterWidening() int
	// CheckInvariants enables expensive runtime minimality and
	// subsumption assertions. Violations panic; they are programming
	// bugs, not recoverable errors.
	CheckInvariants() bool
}
