package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "modconcat.dev/pkg/modconcat/internal/model"
	"modconcat.dev/pkg/modconcat/internal/shim"
)

var helloProject = map[string]string{
	"index.js": `var hello = require("./lib/hello");
var config = require("./config.json");
module.exports = hello(config.greeting);
`,
	"lib/hello.js": `var format = require("./func");
module.exports = function(name) { return format(name); };
`,
	"lib/func.js": `module.exports = function(s) { return s + "!"; };
`,
	"config.json": `{"greeting": "hello"}`,
}

func TestEmitter_BundlesProjectInDiscoveryOrder(t *testing.T) {
	root := writeProject(t, helloProject)

	out, emitter := bundle(t, filepath.Join(root, "index.js"), m.BundleOptions{})

	templates := shim.Default()
	assert.True(t, strings.HasPrefix(out, templates.Header))
	assert.True(t, strings.HasSuffix(out, templates.Footer))

	for id := 0; id < 4; id++ {
		assert.Contains(t, out, fmt.Sprintf("__modules[%d] = function(module, exports, require) {\n", id))
	}

	assert.Contains(t, out, `var hello = __require(1,0);`)
	assert.Contains(t, out, `var config = __require(2,0);`)
	assert.Contains(t, out, `var format = __require(3,1);`)
	assert.Contains(t, out, `module.exports = {"greeting": "hello"}`)

	// Module bodies appear in identifier order.
	assert.Less(t, strings.Index(out, "__modules[1] ="), strings.Index(out, "__modules[2] ="))
	assert.Less(t, strings.Index(out, "__modules[2] ="), strings.Index(out, "__modules[3] ="))

	stats, err := emitter.Stats()
	require.NoError(t, err)
	assert.Equal(t, []m.Path{
		m.Path(filepath.Join(root, "index.js")),
		m.Path(filepath.Join(root, "lib", "hello.js")),
		m.Path(filepath.Join(root, "config.json")),
		m.Path(filepath.Join(root, "lib", "func.js")),
	}, stats.Files)
	assert.Empty(t, stats.AddonsExcluded)
	assert.Empty(t, stats.UnresolvedModules)
}

func TestEmitter_CyclesKeepStableIdentifiers(t *testing.T) {
	root := writeProject(t, map[string]string{
		"a.js": `exports.b = require("./b");`,
		"b.js": `exports.a = require("./a"); exports.self = require("./b.js");`,
	})

	out, emitter := bundle(t, filepath.Join(root, "a.js"), m.BundleOptions{})

	assert.Contains(t, out, `exports.b = __require(1,0);`)
	assert.Contains(t, out, `exports.a = __require(0,1); exports.self = __require(1,1);`)
	assert.Equal(t, 1, strings.Count(out, "__modules[0] ="))
	assert.Equal(t, 1, strings.Count(out, "__modules[1] ="))

	stats, err := emitter.Stats()
	require.NoError(t, err)
	assert.Len(t, stats.Files, 2)
}

func TestEmitter_IsDeterministic(t *testing.T) {
	root := writeProject(t, helloProject)
	entry := filepath.Join(root, "index.js")
	opts := m.BundleOptions{OutputPath: m.Path(filepath.Join(root, "dist", "bundle.js"))}

	first, _ := bundle(t, entry, opts)
	second, _ := bundle(t, entry, opts)

	if first != second {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(first),
			B:        difflib.SplitLines(second),
			FromFile: "first",
			ToFile:   "second",
			Context:  3,
		})
		t.Fatalf("bundles differ between runs:\n%s", diff)
	}
}

func TestEmitter_ReportsNativeAddonOnce(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js":         `require("./a"); require("./b"); require("./build/addon");`,
		"a.js":             `module.exports = require("./build/addon.node");`,
		"b.js":             `module.exports = require("./build/addon");`,
		"build/addon.node": "binary",
	})

	out, emitter := bundle(t, filepath.Join(root, "index.js"), m.BundleOptions{})

	assert.Contains(t, out, `require("./build/addon.node")`)
	assert.NotContains(t, out, "binary")

	stats, err := emitter.Stats()
	require.NoError(t, err)
	assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "build", "addon.node"))}, stats.AddonsExcluded)
	assert.Len(t, stats.Files, 3)
}

func TestEmitter_ToleratesUnresolvedModules(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js": `var x = require("notfound");`,
	})
	entry := filepath.Join(root, "index.js")

	out, emitter := bundle(t, entry, m.BundleOptions{AllowUnresolved: true})

	assert.Contains(t, out, `var x = require("notfound");`)

	stats, err := emitter.Stats()
	require.NoError(t, err)
	assert.Equal(t, []m.UnresolvedModule{{Parent: m.Path(entry), Module: "notfound"}}, stats.UnresolvedModules)
}

func TestEmitter_RewritesPathTokensTwoDirectoriesDown(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js":    `require("./a/b/deep");`,
		"a/b/deep.js": `module.exports = __dirname;`,
	})

	out, _ := bundle(t, filepath.Join(root, "index.js"), m.BundleOptions{
		OutputPath: m.Path(filepath.Join(root, "bundle.js")),
	})

	assert.Contains(t, out, `module.exports = __getDirname("a/b/deep.js");`)
}

func TestEmitter_NextSequence(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js": `require("./a");`,
		"a.js":     `module.exports = 1;`,
	})

	var observed []m.ModuleID

	emitter := newTestEmitter(t, filepath.Join(root, "index.js"), m.BundleOptions{},
		WithModuleObserver(func(record m.ModuleRecord, size int) {
			assert.True(t, record.Processed)
			assert.Positive(t, size)
			observed = append(observed, record.ID)
		}),
	)
	ctx := context.Background()

	_, err := emitter.Stats()
	require.ErrorIs(t, err, m.ErrIncomplete)

	header, err := emitter.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, shim.Default().Header, string(header))

	// Nothing is read until a body chunk is pulled.
	assert.Empty(t, observed)

	chunk, err := emitter.Next(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(chunk), "__modules[0] =")
	assert.Equal(t, []m.ModuleID{0}, observed)

	_, err = emitter.Stats()
	require.ErrorIs(t, err, m.ErrIncomplete)

	chunk, err = emitter.Next(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(chunk), "__modules[1] =")

	footer, err := emitter.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, shim.Default().Footer, string(footer))

	_, err = emitter.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)

	_, err = emitter.Next(ctx)
	assert.ErrorIs(t, err, m.ErrStreamClosed)

	_, err = emitter.Stats()
	require.NoError(t, err)
	assert.Equal(t, []m.ModuleID{0, 1}, observed)
}

func TestEmitter_MissingEntryIsIOFailure(t *testing.T) {
	root := t.TempDir()
	emitter := newTestEmitter(t, filepath.Join(root, "missing.js"), m.BundleOptions{})
	ctx := context.Background()

	_, err := emitter.Next(ctx)
	require.NoError(t, err)

	_, err = emitter.Next(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrIO)

	_, err = emitter.Next(ctx)
	assert.ErrorIs(t, err, io.EOF)

	_, err = emitter.Next(ctx)
	assert.ErrorIs(t, err, m.ErrStreamClosed)
}

func TestEmitter_ReaderSurfacesFatalError(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js": `var x = require("notfound");`,
	})

	emitter := newTestEmitter(t, filepath.Join(root, "index.js"), m.BundleOptions{})

	out, err := io.ReadAll(emitter.Reader(context.Background()))
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrResolution)
	assert.Equal(t, shim.Default().Header, string(out))

	_, err = emitter.Stats()
	assert.ErrorIs(t, err, m.ErrIncomplete)
}

func TestEmitter_StreamDeliversChunksThenError(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js": `require("./ok");`,
		"ok.js":    `require("notfound");`,
	})

	emitter := newTestEmitter(t, filepath.Join(root, "index.js"), m.BundleOptions{})
	chunks, errs := emitter.Stream(context.Background())

	var received []string
	for chunk := range chunks {
		received = append(received, string(chunk))
	}

	err := <-errs
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrResolution)

	var bundleErr *m.BundleError
	require.True(t, errors.As(err, &bundleErr))
	assert.Equal(t, m.Path(filepath.Join(root, "ok.js")), bundleErr.Path)

	require.Len(t, received, 2)
	assert.Contains(t, received[1], "__modules[0] =")
}

func TestEmitter_StreamCompletes(t *testing.T) {
	root := writeProject(t, helloProject)
	entry := filepath.Join(root, "index.js")

	expected, _ := bundle(t, entry, m.BundleOptions{})

	emitter := newTestEmitter(t, entry, m.BundleOptions{})
	chunks, errs := emitter.Stream(context.Background())

	var b strings.Builder
	for chunk := range chunks {
		b.Write(chunk)
	}

	require.NoError(t, <-errs)
	assert.Equal(t, expected, b.String())
}

func TestEmitter_StreamStopsOnCancel(t *testing.T) {
	root := writeProject(t, helloProject)

	emitter := newTestEmitter(t, filepath.Join(root, "index.js"), m.BundleOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	chunks, errs := emitter.Stream(ctx)

	<-chunks
	cancel()

	for range chunks {
	}

	assert.ErrorIs(t, <-errs, context.Canceled)
}
