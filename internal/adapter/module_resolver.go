package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

const (
	defaultManifestCacheSize = 512
	packageManifestName      = "package.json"
	vendorDirName            = "node_modules"
	indexBaseName            = "index"
	coreSchemePrefix         = "node:"
)

// ModuleResolver maps a require() specifier to an absolute file path using
// Node's resolution rules.
type ModuleResolver interface {
	// Resolve returns the absolute path of specifier as seen from baseDir. For
	// builtin modules the specifier itself is returned. A failure wraps
	// model.ErrNotFound.
	Resolve(ctx context.Context, specifier string, baseDir m.Path, opts m.ResolveOptions) (m.Path, error)

	// IsCore reports whether name is a builtin module of the host runtime.
	IsCore(name string) bool
}

// coreModules lists the builtin module names of Node.js.
var coreModules = map[string]struct{}{
	"assert": {}, "assert/strict": {}, "async_hooks": {}, "buffer": {}, "child_process": {},
	"cluster": {}, "console": {}, "constants": {}, "crypto": {}, "dgram": {},
	"diagnostics_channel": {}, "dns": {}, "dns/promises": {}, "domain": {}, "events": {},
	"fs": {}, "fs/promises": {}, "http": {}, "http2": {}, "https": {}, "inspector": {},
	"module": {}, "net": {}, "os": {}, "path": {}, "path/posix": {}, "path/win32": {},
	"perf_hooks": {}, "process": {}, "punycode": {}, "querystring": {}, "readline": {},
	"readline/promises": {}, "repl": {}, "stream": {}, "stream/consumers": {},
	"stream/promises": {}, "stream/web": {}, "string_decoder": {}, "sys": {}, "timers": {},
	"timers/promises": {}, "tls": {}, "trace_events": {}, "tty": {}, "url": {}, "util": {},
	"util/types": {}, "v8": {}, "vm": {}, "wasi": {}, "worker_threads": {}, "zlib": {},
}

// LocalModuleResolver resolves specifiers against the local filesystem.
type LocalModuleResolver struct {
	fs        SourceFSAdapter
	manifests *lru.Cache[m.Path, m.PackageManifest]
}

// NewLocalModuleResolver constructs a resolver reading through fsAdapter.
// Parsed package.json files are cached, so one resolver can be shared by
// several bundles.
func NewLocalModuleResolver(fsAdapter SourceFSAdapter) (*LocalModuleResolver, error) {
	cache, err := lru.New[m.Path, m.PackageManifest](defaultManifestCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create manifest cache: %w", err)
	}

	return &LocalModuleResolver{
		fs:        fsAdapter,
		manifests: cache,
	}, nil
}

// IsCore reports whether name is a Node.js builtin.
func (r *LocalModuleResolver) IsCore(name string) bool {
	if strings.HasPrefix(name, coreSchemePrefix) {
		return len(name) > len(coreSchemePrefix)
	}

	_, ok := coreModules[name]

	return ok
}

// Resolve implements ModuleResolver.
func (r *LocalModuleResolver) Resolve(ctx context.Context, specifier string, baseDir m.Path, opts m.ResolveOptions) (m.Path, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if !opts.SkipCore && r.IsCore(specifier) {
		return m.Path(specifier), nil
	}

	var (
		found m.Path
		ok    bool
		err   error
	)

	if IsPathSpecifier(specifier) {
		target := specifier
		if !filepath.IsAbs(target) {
			target = filepath.Join(string(baseDir), target)
		}

		found, ok, err = r.loadAsFileOrDirectory(ctx, m.Path(filepath.Clean(target)), opts)
	} else {
		found, ok, err = r.loadVendorModule(ctx, specifier, baseDir, opts)
	}

	if err != nil {
		return "", err
	}

	if ok {
		return found, nil
	}

	// With the builtin shortcut disabled a package on disk wins, but a bare
	// builtin name must still not be reported as missing.
	if opts.SkipCore && r.IsCore(specifier) {
		return m.Path(specifier), nil
	}

	return "", fmt.Errorf("%w (searched from %s)", m.ErrNotFound, baseDir)
}

// IsPathSpecifier reports whether specifier names a file by relative or
// absolute path rather than by package name.
func IsPathSpecifier(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") ||
		strings.HasPrefix(specifier, "../") ||
		strings.HasPrefix(specifier, "/")
}

func (r *LocalModuleResolver) loadAsFileOrDirectory(ctx context.Context, target m.Path, opts m.ResolveOptions) (m.Path, bool, error) {
	if found, ok := r.loadAsFile(ctx, target, opts); ok {
		return found, true, nil
	}

	return r.loadAsDirectory(ctx, target, opts)
}

func (r *LocalModuleResolver) loadVendorModule(ctx context.Context, specifier string, baseDir m.Path, opts m.ResolveOptions) (m.Path, bool, error) {
	for _, dir := range vendorDirs(baseDir) {
		found, ok, err := r.loadAsFileOrDirectory(ctx, m.Path(filepath.Join(string(dir), specifier)), opts)
		if err != nil || ok {
			return found, ok, err
		}
	}

	return "", false, nil
}

// vendorDirs lists every node_modules directory from baseDir up to the root.
func vendorDirs(baseDir m.Path) []m.Path {
	var dirs []m.Path

	dir := filepath.Clean(string(baseDir))

	for {
		if filepath.Base(dir) != vendorDirName {
			dirs = append(dirs, m.Path(filepath.Join(dir, vendorDirName)))
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return dirs
		}

		dir = parent
	}
}

func (r *LocalModuleResolver) loadAsFile(ctx context.Context, target m.Path, opts m.ResolveOptions) (m.Path, bool) {
	if r.isFile(ctx, target) {
		return target, true
	}

	for _, ext := range opts.Extensions {
		candidate := target + m.Path(ext)
		if r.isFile(ctx, candidate) {
			return candidate, true
		}
	}

	return "", false
}

func (r *LocalModuleResolver) loadAsDirectory(ctx context.Context, dir m.Path, opts m.ResolveOptions) (m.Path, bool, error) {
	manifestPath := m.Path(filepath.Join(string(dir), packageManifestName))

	if r.isFile(ctx, manifestPath) {
		pkg, err := r.readManifest(ctx, manifestPath)
		if err != nil {
			return "", false, err
		}

		if opts.PackageFilter != nil {
			opts.PackageFilter(&pkg, dir)
		}

		if pkg.Main != "" {
			mainPath := m.Path(filepath.Join(string(dir), pkg.Main))
			if found, ok := r.loadAsFile(ctx, mainPath, opts); ok {
				return found, true, nil
			}

			if found, ok := r.loadAsFile(ctx, m.Path(filepath.Join(string(mainPath), indexBaseName)), opts); ok {
				return found, true, nil
			}
		}
	}

	found, ok := r.loadAsFile(ctx, m.Path(filepath.Join(string(dir), indexBaseName)), opts)

	return found, ok, nil
}

// readManifest returns a private copy of the parsed package.json so a
// PackageFilter cannot corrupt the cache.
func (r *LocalModuleResolver) readManifest(ctx context.Context, path m.Path) (m.PackageManifest, error) {
	if cached, ok := r.manifests.Get(path); ok {
		return cached, nil
	}

	content, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		return m.PackageManifest{}, fmt.Errorf("read %s: %w", path, err)
	}

	var pkg m.PackageManifest
	if err := json.Unmarshal(content, &pkg); err != nil {
		return m.PackageManifest{}, fmt.Errorf("parse %s: %w", path, err)
	}

	r.manifests.Add(path, pkg)
	slog.Debug("Parsed package manifest", "path", path, "main", pkg.Main)

	return pkg, nil
}

func (r *LocalModuleResolver) isFile(ctx context.Context, path m.Path) bool {
	info, err := r.fs.FileInfo(ctx, path)
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}
