package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

func TestGraph_Reserve(t *testing.T) {
	g := NewGraph("/p/index.js")

	id, added := g.Reserve("/p/a.js")
	assert.True(t, added)
	assert.Equal(t, m.ModuleID(1), id)

	id, added = g.Reserve("/p/b.js")
	assert.True(t, added)
	assert.Equal(t, m.ModuleID(2), id)

	id, added = g.Reserve("/p/a.js")
	assert.False(t, added)
	assert.Equal(t, m.ModuleID(1), id)

	id, added = g.Reserve("/p/index.js")
	assert.False(t, added)
	assert.Equal(t, m.ModuleID(0), id)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []m.Path{"/p/index.js", "/p/a.js", "/p/b.js"}, g.Files())
}

func TestGraph_Lookup(t *testing.T) {
	g := NewGraph("/p/index.js")

	id, ok := g.Lookup("/p/index.js")
	assert.True(t, ok)
	assert.Equal(t, m.ModuleID(0), id)

	_, ok = g.Lookup("/p/missing.js")
	assert.False(t, ok)
}

func TestGraph_NextPendingFollowsIdentifierOrder(t *testing.T) {
	g := NewGraph("/p/index.js")

	record, ok := g.NextPending()
	require.True(t, ok)
	assert.Equal(t, m.ModuleRecord{ID: 0, Path: "/p/index.js"}, record)
	assert.False(t, g.Exhausted())

	g.Reserve("/p/a.js")
	g.Reserve("/p/b.js")
	g.MarkProcessed(0)

	record, ok = g.NextPending()
	require.True(t, ok)
	assert.Equal(t, m.ModuleID(1), record.ID)

	g.MarkProcessed(1)
	g.Reserve("/p/c.js")
	g.MarkProcessed(2)

	record, ok = g.NextPending()
	require.True(t, ok)
	assert.Equal(t, m.Path("/p/c.js"), record.Path)

	g.MarkProcessed(3)

	_, ok = g.NextPending()
	assert.False(t, ok)
	assert.True(t, g.Exhausted())
}

func TestGraph_MarkProcessedIgnoresUnknownIdentifiers(t *testing.T) {
	g := NewGraph("/p/index.js")

	g.MarkProcessed(-1)
	g.MarkProcessed(7)

	assert.False(t, g.Exhausted())
}

func TestDiagnostics_Snapshot(t *testing.T) {
	g := NewGraph("/p/index.js")
	d := NewDiagnostics()

	_, err := d.Snapshot(g)
	require.ErrorIs(t, err, m.ErrIncomplete)

	d.Record(m.RewriteOutcome{
		AddonsExcluded: []m.Path{"/p/addon.node", "/p/addon.node"},
		Unresolved:     []m.UnresolvedModule{{Parent: "/p/index.js", Module: "notfound"}},
	})
	d.Record(m.RewriteOutcome{AddonsExcluded: []m.Path{"/p/addon.node"}})
	g.MarkProcessed(0)

	stats, err := d.Snapshot(g)
	require.NoError(t, err)
	assert.Equal(t, []m.Path{"/p/index.js"}, stats.Files)
	assert.Equal(t, []m.Path{"/p/addon.node"}, stats.AddonsExcluded)
	assert.Equal(t, []m.UnresolvedModule{{Parent: "/p/index.js", Module: "notfound"}}, stats.UnresolvedModules)
}

func TestDiagnostics_SnapshotReturnsEmptyLists(t *testing.T) {
	g := NewGraph("/p/index.js")
	g.MarkProcessed(0)

	stats, err := NewDiagnostics().Snapshot(g)
	require.NoError(t, err)
	assert.NotNil(t, stats.AddonsExcluded)
	assert.Empty(t, stats.AddonsExcluded)
	assert.NotNil(t, stats.UnresolvedModules)
	assert.Empty(t, stats.UnresolvedModules)
}
