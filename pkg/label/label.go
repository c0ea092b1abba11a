// Package label defines the path segments used to address substructure of
// an analyzed value: named fields, concrete collection indices, and the
// wildcard index summarizing every index not explicitly refined.
package label

import "strings"

// kind discriminates the label variants. AnyIndex sorts first; the tree's
// child maps and pretty-printer depend on that order.
type kind uint8

const (
	kindAnyIndex kind = iota
	kindIndex
	kindField
)

// Label is one segment of an access path.
type Label struct {
	kind kind
	name string
}

// Field returns the label for a named field access.
func Field(name string) Label {
	return Label{kind: kindField, name: name}
}

// Index returns the label for a concrete collection index.
func Index(name string) Label {
	return Label{kind: kindIndex, name: name}
}

// AnyIndex returns the wildcard index label. It abstractly covers every
// concrete index not explicitly present as a sibling.
func AnyIndex() Label {
	return Label{kind: kindAnyIndex}
}

func (l Label) IsField() bool    { return l.kind == kindField }
func (l Label) IsIndex() bool    { return l.kind == kindIndex }
func (l Label) IsAnyIndex() bool { return l.kind == kindAnyIndex }

// Name returns the field or index name. It is empty for AnyIndex.
func (l Label) Name() string { return l.name }

// Compare orders labels: AnyIndex first, then indices by name, then fields
// by name. The result is negative, zero, or positive in the usual way.
func (l Label) Compare(other Label) int {
	if l.kind != other.kind {
		return int(l.kind) - int(other.kind)
	}
	return strings.Compare(l.name, other.name)
}

func (l Label) Equal(other Label) bool {
	return l.kind == other.kind && l.name == other.name
}

var nameEscaper = strings.NewReplacer(
	`\`, `\\`,
	`.`, `\.`,
	`[`, `\[`,
	`]`, `\]`,
	`*`, `\*`,
)

// escape makes a field or index name unambiguous inside a rendered path.
func escape(name string) string {
	return nameEscaper.Replace(name)
}

// String renders the label the way it appears in a displayed access path:
// ".field", "[index]", or "[*]".
func (l Label) String() string {
	switch l.kind {
	case kindAnyIndex:
		return "[*]"
	case kindIndex:
		return "[" + escape(l.name) + "]"
	default:
		return "." + escape(l.name)
	}
}
