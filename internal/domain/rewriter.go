package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"modconcat.dev/pkg/modconcat/internal/adapter"
	m "modconcat.dev/pkg/modconcat/internal/model"
)

var (
	// Whole-line "//" comments only. Trailing comments after code are kept
	// because they may sit inside string literals.
	lineCommentRegex = regexp.MustCompile(`(?:\r\n?|\n)\s*//.*`)

	// require("x") or require('x') with a literal argument. Group 1 holds a
	// double-quoted specifier, group 2 a single-quoted one.
	requireRegex = regexp.MustCompile(`require\s*\(\s*(?:"((?:[^"\\\n]|\\.)*)"|'((?:[^'\\\n]|\\.)*)')\s*\)`)

	specifierUnescaper = strings.NewReplacer(`\\`, `\`, `\"`, `"`, `\'`, `'`)
)

const (
	dirnameToken  = "__dirname"
	filenameToken = "__filename"
)

// Rewriter transforms the source of one module: it compiles by extension,
// strips whole-line comments, replaces static require() calls with
// identifier lookups and rewrites path tokens.
type Rewriter struct {
	policy   *Policy
	graph    *Graph
	resolver adapter.ModuleResolver
	fs       adapter.SourceFSAdapter
}

// NewRewriter binds a rewriter to the state of one bundle.
func NewRewriter(policy *Policy, graph *Graph, resolver adapter.ModuleResolver, fsAdapter adapter.SourceFSAdapter) *Rewriter {
	return &Rewriter{
		policy:   policy,
		graph:    graph,
		resolver: resolver,
		fs:       fsAdapter,
	}
}

// Rewrite transforms src, the content of module id at path. Newly found
// dependencies are registered in the graph as a side effect.
func (r *Rewriter) Rewrite(ctx context.Context, src []byte, path m.Path, id m.ModuleID) (m.RewriteOutcome, error) {
	code := src

	if compiler, ok := r.policy.CompilerFor(path); ok {
		compiled, err := compiler(src, path)
		if err != nil {
			return m.RewriteOutcome{}, &m.BundleError{Kind: m.ErrTransform, Path: path, Cause: err}
		}

		code = compiled
	}

	code = lineCommentRegex.ReplaceAll(code, nil)

	outcome := m.RewriteOutcome{}

	code, err := r.rewriteRequires(ctx, code, path, id, &outcome)
	if err != nil {
		return m.RewriteOutcome{}, err
	}

	if r.policy.PathTokensEnabled() {
		code, err = r.rewritePathTokens(ctx, code, path)
		if err != nil {
			return m.RewriteOutcome{}, err
		}
	}

	outcome.Code = code

	return outcome, nil
}

func (r *Rewriter) rewriteRequires(ctx context.Context, code []byte, path m.Path, id m.ModuleID, outcome *m.RewriteOutcome) ([]byte, error) {
	matches := requireRegex.FindAllSubmatchIndex(code, -1)
	if len(matches) == 0 {
		return code, nil
	}

	var (
		out  bytes.Buffer
		last int
		seen = make(map[m.ModuleID]struct{})
	)

	out.Grow(len(code))

	for _, match := range matches {
		raw := submatch(code, match)
		specifier := specifierUnescaper.Replace(raw)

		depID, ok, err := r.classify(ctx, specifier, path, outcome)
		if err != nil {
			return nil, err
		}

		if !ok {
			continue
		}

		if _, dup := seen[depID]; !dup {
			seen[depID] = struct{}{}
			outcome.Dependencies = append(outcome.Dependencies, depID)
		}

		out.Write(code[last:match[0]])
		fmt.Fprintf(&out, "__require(%d,%d)", depID, id)
		last = match[1]
	}

	out.Write(code[last:])

	return out.Bytes(), nil
}

// submatch returns whichever quoted alternative matched.
func submatch(code []byte, match []int) string {
	if match[2] >= 0 {
		return string(code[match[2]:match[3]])
	}

	return string(code[match[4]:match[5]])
}

// classify decides what happens to one reference. It returns the target
// identifier and true when the reference must be rewritten, false when it is
// left for the host runtime.
func (r *Rewriter) classify(ctx context.Context, specifier string, path m.Path, outcome *m.RewriteOutcome) (m.ModuleID, bool, error) {
	if r.policy.BuiltinsEnabled() && r.resolver.IsCore(specifier) {
		return 0, false, nil
	}

	if r.policy.IsVendorExcluded(specifier) {
		slog.Debug("Leaving excluded package", "specifier", specifier, "parent", path)
		return 0, false, nil
	}

	baseDir := path.Dir()

	estimated := m.Path(filepath.Join(string(baseDir), specifier))
	if strings.HasPrefix(specifier, "/") {
		estimated = m.Path(filepath.Clean(specifier))
	}

	if r.policy.IsProbablyExcluded(estimated) {
		return 0, false, nil
	}

	resolved, err := r.resolver.Resolve(ctx, specifier, baseDir, r.policy.ResolveOptions())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return 0, false, err
		}

		if r.policy.AllowUnresolved() {
			slog.Warn("Unresolved module left in place", "module", specifier, "parent", path, "error", err)
			outcome.Unresolved = append(outcome.Unresolved, m.UnresolvedModule{Parent: path, Module: specifier})

			return 0, false, nil
		}

		return 0, false, &m.BundleError{Kind: m.ErrResolution, Path: path, Specifier: specifier, Cause: err}
	}

	if r.resolver.IsCore(string(resolved)) {
		return 0, false, nil
	}

	if r.policy.IsNativeAddon(resolved) {
		outcome.AddonsExcluded = append(outcome.AddonsExcluded, resolved)
		return 0, false, nil
	}

	if depID, ok := r.graph.Lookup(resolved); ok {
		return depID, true, nil
	}

	if r.policy.IsExcluded(resolved) {
		return 0, false, nil
	}

	depID, _ := r.graph.Reserve(resolved)
	slog.Debug("Discovered module", "id", depID, "path", resolved, "parent", path)

	return depID, true, nil
}

func (r *Rewriter) rewritePathTokens(ctx context.Context, code []byte, path m.Path) ([]byte, error) {
	if !bytes.Contains(code, []byte(dirnameToken)) && !bytes.Contains(code, []byte(filenameToken)) {
		return code, nil
	}

	rel, err := r.fs.RelPath(ctx, r.policy.OutputDir(), path)
	if err != nil {
		return nil, &m.BundleError{Kind: m.ErrIO, Path: path, Cause: err}
	}

	literal := strconv.Quote(filepath.ToSlash(string(rel)))

	code = bytes.ReplaceAll(code, []byte(dirnameToken), []byte("__getDirname("+literal+")"))
	code = bytes.ReplaceAll(code, []byte(filenameToken), []byte("__getFilename("+literal+")"))

	return code, nil
}
