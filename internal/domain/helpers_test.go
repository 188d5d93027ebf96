package domain

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"modconcat.dev/pkg/modconcat/internal/adapter"
	m "modconcat.dev/pkg/modconcat/internal/model"
)

// writeProject lays out files (relative path to content) under a fresh
// temporary directory and returns its root.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	return root
}

func newTestEmitter(t *testing.T, entry string, opts m.BundleOptions, emitterOpts ...EmitterOption) *Emitter {
	t.Helper()

	policy, err := NewPolicy(opts)
	require.NoError(t, err)

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	resolver, err := adapter.NewLocalModuleResolver(fsAdapter)
	require.NoError(t, err)

	emitter, err := NewEmitter(context.Background(), m.Path(entry), policy, fsAdapter, resolver, emitterOpts...)
	require.NoError(t, err)

	return emitter
}

// bundle drains a fresh emitter and returns the artifact.
func bundle(t *testing.T, entry string, opts m.BundleOptions) (string, *Emitter) {
	t.Helper()

	emitter := newTestEmitter(t, entry, opts)

	out, err := io.ReadAll(emitter.Reader(context.Background()))
	require.NoError(t, err)

	return string(out), emitter
}

func newTestRewriter(t *testing.T, entry string, opts m.BundleOptions) (*Rewriter, *Graph) {
	t.Helper()

	policy, err := NewPolicy(opts)
	require.NoError(t, err)

	fsAdapter := adapter.NewLocalSourceFSAdapter()
	resolver, err := adapter.NewLocalModuleResolver(fsAdapter)
	require.NoError(t, err)

	graph := NewGraph(m.Path(entry))

	return NewRewriter(policy, graph, resolver, fsAdapter), graph
}
