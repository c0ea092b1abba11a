package summary

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/715d/treedomain/pkg/domain"
	"github.com/715d/treedomain/pkg/label"
	"github.com/715d/treedomain/pkg/taint"
	"github.com/715d/treedomain/pkg/tree"
)

func newCache(t *testing.T, widenAfter int) (*tree.Domain[taint.Kinds], *Cache[taint.Kinds]) {
	t.Helper()
	cfg := domain.StaticConfig{MaxDepthAfterWidening: 2, Invariants: true}
	d := tree.New[taint.Kinds](cfg, taint.Operations{})
	return d, New(d, widenAfter)
}

func leafAt(d *tree.Domain[taint.Kinds], path label.Path, kinds ...string) *tree.Tree[taint.Kinds] {
	return d.Assign(d.Bottom(), path, d.CreateLeaf(taint.NewKinds(kinds...)), false)
}

func TestCacheUpdate(t *testing.T) {
	d, c := newCache(t, 3)

	_, ok := c.Get("proc")
	require.False(t, ok)

	first := leafAt(d, label.Path{label.Field("ret")}, "sql")
	combined, changed := c.Update("proc", first)
	require.True(t, changed)
	require.True(t, d.Equal(combined, first))

	// Re-submitting the same summary is a no-op.
	combined, changed = c.Update("proc", first)
	require.False(t, changed)
	require.True(t, d.Equal(combined, first))

	// New facts join in.
	second := leafAt(d, label.Path{label.Field("ret")}, "xss")
	combined, changed = c.Update("proc", second)
	require.True(t, changed)
	got := d.Read(label.Path{label.Field("ret")}, combined).Root()
	require.True(t, got.Equal(taint.NewKinds("sql", "xss")))

	cached, ok := c.Get("proc")
	require.True(t, ok)
	require.True(t, d.Equal(cached, combined))
}

func TestCacheWidensAfterThreshold(t *testing.T) {
	d, c := newCache(t, 1)

	// Summaries one level deeper each round; widening (depth bound 2)
	// must stabilize them.
	deeper := func(depth int) *tree.Tree[taint.Kinds] {
		path := make(label.Path, depth)
		for i := range path {
			path[i] = label.Field("f")
		}
		return leafAt(d, path, "sql")
	}

	stable := 0
	for i := 1; i <= 8; i++ {
		combined, changed := c.Update("grow", deeper(i))
		require.LessOrEqual(t, combined.MaxDepth(), 2)
		if !changed {
			stable++
		}
	}
	require.Positive(t, stable, "widening updates never stabilized")
}

func TestCacheEvict(t *testing.T) {
	d, c := newCache(t, 3)

	c.Update("proc", leafAt(d, label.Path{label.Field("ret")}, "sql"))
	require.Equal(t, 1, c.Len())

	c.Evict("proc")
	require.Equal(t, 0, c.Len())
	_, ok := c.Get("proc")
	require.False(t, ok)
}

func TestCombineAll(t *testing.T) {
	d, c := newCache(t, 3)

	t.Run("empty cache", func(t *testing.T) {
		require.True(t, c.CombineAll().IsBottom())
	})

	want := d.Bottom()
	for i := range 20 {
		summary := leafAt(d, label.Path{label.Field(fmt.Sprintf("ret%d", i%5))}, fmt.Sprintf("kind%d", i))
		c.Update(fmt.Sprintf("proc%d", i), summary)
		want = d.Join(want, summary)
	}

	got := c.CombineAll()
	require.True(t, d.LessOrEqual(want, got))
	require.True(t, d.LessOrEqual(got, want), "combined summary must not invent coverage")
}
