package label

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelOrder(t *testing.T) {
	labels := []Label{
		Field("b"),
		Index("1"),
		Field("a"),
		AnyIndex(),
		Index("0"),
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].Compare(labels[j]) < 0 })

	want := []Label{AnyIndex(), Index("0"), Index("1"), Field("a"), Field("b")}
	require.Equal(t, want, labels, "AnyIndex sorts first, then indices, then fields")
}

func TestLabelString(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		want  string
	}{
		{name: "field", label: Field("user"), want: ".user"},
		{name: "index", label: Index("0"), want: "[0]"},
		{name: "wildcard", label: AnyIndex(), want: "[*]"},
		{name: "field needing escapes", label: Field("a.b[c]"), want: `.a\.b\[c\]`},
		{name: "index needing escapes", label: Index("x*y"), want: `[x\*y]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.label.String())
		})
	}
}

func TestPathString(t *testing.T) {
	p := Path{Field("request"), Index("0"), AnyIndex(), Field("body")}
	require.Equal(t, ".request[0][*].body", p.String())
	require.Equal(t, "", Path{}.String())
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		name string
		a, b Path
		want Path
	}{
		{
			name: "shared head",
			a:    Path{Field("x"), Index("0"), Field("y")},
			b:    Path{Field("x"), Index("0"), Field("z")},
			want: Path{Field("x"), Index("0")},
		},
		{
			name: "disjoint",
			a:    Path{Field("x")},
			b:    Path{Field("y")},
			want: Path{},
		},
		{
			name: "prefix of the other",
			a:    Path{Field("x")},
			b:    Path{Field("x"), Field("y")},
			want: Path{Field("x")},
		},
		{
			name: "wildcard does not match a concrete index",
			a:    Path{AnyIndex()},
			b:    Path{Index("0")},
			want: Path{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommonPrefix(tt.a, tt.b)
			require.True(t, got.Equal(tt.want), "got %s want %s", got, tt.want)
		})
	}
}

func TestIsPrefix(t *testing.T) {
	p := Path{Field("x"), Index("0")}
	require.True(t, IsPrefix(Path{}, p))
	require.True(t, IsPrefix(Path{Field("x")}, p))
	require.True(t, IsPrefix(p, p))
	require.False(t, IsPrefix(Path{Field("x"), Index("1")}, p))
	require.False(t, IsPrefix(Path{Field("x"), Index("0"), Field("y")}, p))
}

func TestComparePaths(t *testing.T) {
	a := Path{Field("x"), Index("0")}
	b := Path{Field("x"), Index("1")}

	require.Negative(t, ComparePaths(a, b, nil))
	require.Positive(t, ComparePaths(b, a, nil))
	require.Zero(t, ComparePaths(a, a, nil))
	require.Negative(t, ComparePaths(a, Path{Field("x"), Index("0"), Field("y")}, nil))

	// A custom comparator that treats all indices as equal.
	indexBlind := func(l, r Label) int {
		if l.IsIndex() && r.IsIndex() {
			return 0
		}
		return l.Compare(r)
	}
	require.Zero(t, ComparePaths(a, b, indexBlind))
}

func TestRefined(t *testing.T) {
	t.Run("wildcard with exclusions", func(t *testing.T) {
		r := RefinedAnyIndex([]string{"1", "0"})
		require.True(t, r.IsAnyIndex())
		require.Equal(t, []string{"0", "1"}, r.Excluded())
		require.False(t, r.Covers("0"))
		require.True(t, r.Covers("2"))
		require.Equal(t, "[* except 0,1]", r.String())
	})

	t.Run("wildcard without exclusions", func(t *testing.T) {
		r := RefinedAnyIndex(nil)
		require.True(t, r.Covers("anything"))
		require.Equal(t, "[*]", r.String())
	})

	t.Run("concrete index", func(t *testing.T) {
		r := RefinedIndex("3")
		require.True(t, r.Covers("3"))
		require.False(t, r.Covers("4"))
	})

	t.Run("plain projection", func(t *testing.T) {
		p := RefinedPath{RefinedField("x"), RefinedAnyIndex([]string{"0"})}
		require.True(t, p.Plain().Equal(Path{Field("x"), AnyIndex()}))
	})
}
