package domain

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

func TestRewriter_RewritesStaticRequires(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js":     "",
		"lib/hello.js": "",
		"lib/world.js": "",
	})
	entry := filepath.Join(root, "index.js")

	rewriter, graph := newTestRewriter(t, entry, m.BundleOptions{})

	src := `var a = require("./lib/hello");
var b = require( './lib/world' );
var c = require("./lib/hello.js");
`

	outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(entry), 0)
	require.NoError(t, err)

	assert.Equal(t, `var a = __require(1,0);
var b = __require(2,0);
var c = __require(1,0);
`, string(outcome.Code))
	assert.Equal(t, []m.ModuleID{1, 2}, outcome.Dependencies)
	assert.Equal(t, []m.Path{
		m.Path(entry),
		m.Path(filepath.Join(root, "lib", "hello.js")),
		m.Path(filepath.Join(root, "lib", "world.js")),
	}, graph.Files())
}

func TestRewriter_LeavesDynamicAndBuiltinReferences(t *testing.T) {
	root := writeProject(t, map[string]string{"index.js": ""})
	entry := filepath.Join(root, "index.js")

	rewriter, graph := newTestRewriter(t, entry, m.BundleOptions{})

	src := `var fs = require("fs");
var p = require("node:path");
var dyn = require(name);
var concat = require("./lib/" + name);
`

	outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(entry), 0)
	require.NoError(t, err)

	assert.Equal(t, src, string(outcome.Code))
	assert.Empty(t, outcome.Dependencies)
	assert.Equal(t, 1, graph.Len())
}

func TestRewriter_StripsWholeLineComments(t *testing.T) {
	root := writeProject(t, map[string]string{"index.js": ""})
	entry := filepath.Join(root, "index.js")

	rewriter, _ := newTestRewriter(t, entry, m.BundleOptions{})

	src := "var a = 1;\n  // require(\"./missing\")\nvar url = \"http://example.com\"; // trailing\n"

	outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(entry), 0)
	require.NoError(t, err)

	assert.Equal(t, "var a = 1;\nvar url = \"http://example.com\"; // trailing\n", string(outcome.Code))
}

func TestRewriter_UnescapesSpecifiers(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js": "",
		"it's.js":  "",
	})
	entry := filepath.Join(root, "index.js")

	rewriter, graph := newTestRewriter(t, entry, m.BundleOptions{})

	outcome, err := rewriter.Rewrite(context.Background(), []byte(`require('./it\'s')`), m.Path(entry), 0)
	require.NoError(t, err)

	assert.Equal(t, "__require(1,0)", string(outcome.Code))
	assert.Equal(t, m.Path(filepath.Join(root, "it's.js")), graph.Files()[1])
}

func TestRewriter_VendorExclusionWinsOverResolution(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js":                  "",
		"node_modules/cool/index.js": "",
		"lib/local.js":              "",
	})
	entry := filepath.Join(root, "index.js")

	rewriter, graph := newTestRewriter(t, entry, m.BundleOptions{VendorExclusion: m.ExcludeAllPackages})

	src := `var cool = require("cool");
var local = require("./lib/local");`

	outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(entry), 0)
	require.NoError(t, err)

	assert.Equal(t, `var cool = require("cool");
var local = __require(1,0);`, string(outcome.Code))
	assert.Equal(t, 2, graph.Len())
}

func TestRewriter_NamedVendorExclusion(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js":                   "",
		"node_modules/cool/index.js": "",
		"node_modules/fun/index.js":  "",
	})
	entry := filepath.Join(root, "index.js")

	rewriter, _ := newTestRewriter(t, entry, m.BundleOptions{
		VendorExclusion:  m.ExcludeNamedPackages,
		ExcludedPackages: []string{"cool"},
	})

	outcome, err := rewriter.Rewrite(context.Background(), []byte(`require("cool"); require("fun");`), m.Path(entry), 0)
	require.NoError(t, err)

	assert.Equal(t, `require("cool"); __require(1,0);`, string(outcome.Code))
}

func TestRewriter_ExcludedFiles(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js":      "",
		"lib/secret.js": "",
	})
	entry := filepath.Join(root, "index.js")

	rewriter, graph := newTestRewriter(t, entry, m.BundleOptions{
		ExcludeFiles: []m.Path{m.Path(filepath.Join(root, "lib", "secret.js"))},
	})

	src := `require("./lib/secret"); require("./lib/secret.js");`

	outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(entry), 0)
	require.NoError(t, err)

	assert.Equal(t, src, string(outcome.Code))
	assert.Equal(t, 1, graph.Len())
}

func TestRewriter_NativeAddons(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js":         "",
		"build/addon.node": "",
	})
	entry := filepath.Join(root, "index.js")

	rewriter, graph := newTestRewriter(t, entry, m.BundleOptions{})

	src := `require("./build/addon");`

	outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(entry), 0)
	require.NoError(t, err)

	assert.Equal(t, src, string(outcome.Code))
	assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "build", "addon.node"))}, outcome.AddonsExcluded)
	assert.Equal(t, 1, graph.Len())
}

func TestRewriter_UnresolvedModules(t *testing.T) {
	root := writeProject(t, map[string]string{"index.js": ""})
	entry := filepath.Join(root, "index.js")
	src := `var x = require("notfound");`

	t.Run("tolerated", func(t *testing.T) {
		rewriter, _ := newTestRewriter(t, entry, m.BundleOptions{AllowUnresolved: true})

		outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(entry), 0)
		require.NoError(t, err)

		assert.Equal(t, src, string(outcome.Code))
		assert.Equal(t, []m.UnresolvedModule{{Parent: m.Path(entry), Module: "notfound"}}, outcome.Unresolved)
	})

	t.Run("fatal", func(t *testing.T) {
		rewriter, _ := newTestRewriter(t, entry, m.BundleOptions{})

		_, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(entry), 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, m.ErrResolution)
		assert.ErrorIs(t, err, m.ErrNotFound)

		var bundleErr *m.BundleError
		require.True(t, errors.As(err, &bundleErr))
		assert.Equal(t, "notfound", bundleErr.Specifier)
		assert.Equal(t, m.Path(entry), bundleErr.Path)
		assert.Equal(t, 1, strings.Count(err.Error(), "cannot find module"))
	})
}

func TestRewriter_PathTokens(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js":    "",
		"a/b/deep.js": "",
	})
	entry := filepath.Join(root, "index.js")
	deep := filepath.Join(root, "a", "b", "deep.js")

	src := `var dir = __dirname; var file = __filename;`

	t.Run("rewritten relative to the output", func(t *testing.T) {
		rewriter, _ := newTestRewriter(t, entry, m.BundleOptions{OutputPath: m.Path(filepath.Join(root, "bundle.js"))})

		outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(deep), 1)
		require.NoError(t, err)

		assert.Equal(t, `var dir = __getDirname("a/b/deep.js"); var file = __getFilename("a/b/deep.js");`, string(outcome.Code))
	})

	t.Run("output in a sibling directory", func(t *testing.T) {
		rewriter, _ := newTestRewriter(t, entry, m.BundleOptions{OutputPath: m.Path(filepath.Join(root, "dist", "bundle.js"))})

		outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(deep), 1)
		require.NoError(t, err)

		assert.Contains(t, string(outcome.Code), `__getDirname("../a/b/deep.js")`)
	})

	t.Run("untouched without output path", func(t *testing.T) {
		rewriter, _ := newTestRewriter(t, entry, m.BundleOptions{})

		outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(deep), 1)
		require.NoError(t, err)

		assert.Equal(t, src, string(outcome.Code))
	})

	t.Run("untouched in browser mode", func(t *testing.T) {
		rewriter, _ := newTestRewriter(t, entry, m.BundleOptions{
			Browser:    true,
			OutputPath: m.Path(filepath.Join(root, "bundle.js")),
		})

		outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(deep), 1)
		require.NoError(t, err)

		assert.Equal(t, src, string(outcome.Code))
	})
}

func TestRewriter_BrowserMode(t *testing.T) {
	root := writeProject(t, map[string]string{
		"index.js":                       "",
		"node_modules/events/index.js":   "",
		"node_modules/dual/package.json": `{"main":"node.js","browser":{"./node.js":"./browser.js","./server.js":false}}`,
		"node_modules/dual/node.js":      "",
		"node_modules/dual/browser.js":   "",
		"node_modules/dual/server.js":    "",
	})
	entry := filepath.Join(root, "index.js")

	rewriter, graph := newTestRewriter(t, entry, m.BundleOptions{Browser: true})

	src := `require("events"); require("dual"); require("fs");`

	outcome, err := rewriter.Rewrite(context.Background(), []byte(src), m.Path(entry), 0)
	require.NoError(t, err)

	assert.Equal(t, `__require(1,0); __require(2,0); require("fs");`, string(outcome.Code))
	assert.Equal(t, m.Path(filepath.Join(root, "node_modules", "events", "index.js")), graph.Files()[1])
	assert.Equal(t, m.Path(filepath.Join(root, "node_modules", "dual", "browser.js")), graph.Files()[2])

	dualDir := filepath.Join(root, "node_modules", "dual")
	outcome, err = rewriter.Rewrite(context.Background(), []byte(`require("./server");`), m.Path(filepath.Join(dualDir, "browser.js")), 2)
	require.NoError(t, err)

	assert.Equal(t, `require("./server");`, string(outcome.Code))
	assert.Equal(t, 3, graph.Len())
}

func TestRewriter_TransformFailure(t *testing.T) {
	root := writeProject(t, map[string]string{"data.json": ""})
	path := filepath.Join(root, "data.json")

	rewriter, _ := newTestRewriter(t, path, m.BundleOptions{})

	_, err := rewriter.Rewrite(context.Background(), []byte(`{"broken":`), m.Path(path), 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, m.ErrTransform)
}
