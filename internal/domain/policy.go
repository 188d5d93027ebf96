package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"modconcat.dev/pkg/modconcat/internal/adapter"
	m "modconcat.dev/pkg/modconcat/internal/model"
)

// NativeAddonExtension marks compiled modules that cannot be inlined.
const NativeAddonExtension = ".node"

// DefaultExtensions are probed when no extensions are configured.
var DefaultExtensions = []string{".js", ".json"}

// Policy is the resolution policy of one bundle: accepted extensions,
// compilers, exclusions and the browser remap. Apart from files excluded
// through a package's "browser" field it does not change after NewPolicy.
type Policy struct {
	extensions       []string
	compilers        map[string]m.Compiler
	excluded         map[m.Path]struct{}
	vendorExclusion  m.VendorExclusion
	excludedPackages map[string]struct{}
	browser          bool
	allowUnresolved  bool
	outputPath       m.Path
}

// NewPolicy normalises opts into a Policy. Excluded files and the output path
// are made absolute relative to the working directory.
func NewPolicy(opts m.BundleOptions) (*Policy, error) {
	p := &Policy{
		compilers:        make(map[string]m.Compiler, len(opts.Compilers)+1),
		excluded:         make(map[m.Path]struct{}, len(opts.ExcludeFiles)),
		vendorExclusion:  opts.VendorExclusion,
		excludedPackages: make(map[string]struct{}, len(opts.ExcludedPackages)),
		browser:          opts.Browser,
		allowUnresolved:  opts.AllowUnresolved,
	}

	p.extensions = normalizeExtensions(opts.Extensions)

	for ext, compiler := range opts.Compilers {
		if compiler == nil {
			continue
		}

		p.compilers[normalizeExtension(ext)] = compiler
	}

	if _, ok := p.compilers[".json"]; !ok {
		p.compilers[".json"] = adapter.CompileJSON
	}

	for _, file := range opts.ExcludeFiles {
		abs, err := filepath.Abs(string(file))
		if err != nil {
			return nil, fmt.Errorf("resolve excluded file %s: %w", file, err)
		}

		p.excluded[m.Path(abs)] = struct{}{}
	}

	for _, name := range opts.ExcludedPackages {
		p.excludedPackages[name] = struct{}{}
	}

	if opts.OutputPath != "" {
		abs, err := filepath.Abs(string(opts.OutputPath))
		if err != nil {
			return nil, fmt.Errorf("resolve output path %s: %w", opts.OutputPath, err)
		}

		p.outputPath = m.Path(abs)
	}

	return p, nil
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	out := make([]string, 0, len(exts)+1)
	seen := make(map[string]struct{}, len(exts)+1)

	for _, ext := range exts {
		ext = normalizeExtension(ext)
		if ext == "" {
			continue
		}

		if _, ok := seen[ext]; ok {
			continue
		}

		seen[ext] = struct{}{}
		out = append(out, ext)
	}

	// Probed last so native addons are found and reported instead of
	// silently resolving to something else.
	if _, ok := seen[NativeAddonExtension]; !ok {
		out = append(out, NativeAddonExtension)
	}

	return out
}

func normalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		return ""
	}

	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}

// Extensions returns the extension probe order.
func (p *Policy) Extensions() []string {
	return p.extensions
}

// CompilerFor returns the compiler configured for path's extension.
func (p *Policy) CompilerFor(path m.Path) (m.Compiler, bool) {
	compiler, ok := p.compilers[path.Ext()]
	return compiler, ok
}

// IsExcluded reports whether path was explicitly excluded.
func (p *Policy) IsExcluded(path m.Path) bool {
	_, ok := p.excluded[path]
	return ok
}

// IsProbablyExcluded is the cheap pre-resolution check: the estimated path
// itself, or the estimated path plus any accepted extension, is excluded.
func (p *Policy) IsProbablyExcluded(estimated m.Path) bool {
	if p.IsExcluded(estimated) {
		return true
	}

	for _, ext := range p.extensions {
		if p.IsExcluded(estimated + m.Path(ext)) {
			return true
		}
	}

	return false
}

// ExcludeFile adds path to the exclusion set.
func (p *Policy) ExcludeFile(path m.Path) {
	p.excluded[m.Path(filepath.Clean(string(path)))] = struct{}{}
}

// IsVendorExcluded reports whether a bare-name specifier must be left alone.
func (p *Policy) IsVendorExcluded(specifier string) bool {
	if adapter.IsPathSpecifier(specifier) {
		return false
	}

	switch p.vendorExclusion {
	case m.ExcludeAllPackages:
		return true
	case m.ExcludeNamedPackages:
		_, ok := p.excludedPackages[specifier]
		return ok
	default:
		return false
	}
}

// IsNativeAddon reports whether path is a compiled addon.
func (p *Policy) IsNativeAddon(path m.Path) bool {
	return strings.EqualFold(path.Ext(), NativeAddonExtension)
}

// BuiltinsEnabled reports whether builtin names are left untouched without
// looking on disk. Browser bundles have no builtins.
func (p *Policy) BuiltinsEnabled() bool {
	return !p.browser
}

// PathTokensEnabled reports whether __dirname/__filename are rewritten.
func (p *Policy) PathTokensEnabled() bool {
	return p.outputPath != "" && !p.browser
}

// OutputDir is the directory the artifact is written to.
func (p *Policy) OutputDir() m.Path {
	return p.outputPath.Dir()
}

// AllowUnresolved reports whether unresolvable references are tolerated.
func (p *Policy) AllowUnresolved() bool {
	return p.allowUnresolved
}

// ResolveOptions builds the options handed to the module resolver.
func (p *Policy) ResolveOptions() m.ResolveOptions {
	opts := m.ResolveOptions{
		Extensions: p.extensions,
		SkipCore:   p.browser,
	}

	if p.browser {
		opts.PackageFilter = p.browserFilter
	}

	return opts
}

// browserFilter gives limited support of the package.json "browser" field:
// a string replaces "main", an object may remap "main" or disable files.
func (p *Policy) browserFilter(pkg *m.PackageManifest, pkgDir m.Path) {
	if pkg.Browser.Entry != "" {
		pkg.Main = pkg.Browser.Entry
		return
	}

	for _, key := range pkg.Browser.Disabled {
		p.ExcludeFile(m.Path(filepath.Join(string(pkgDir), key)))
	}

	if pkg.Main == "" {
		return
	}

	main := filepath.Clean(pkg.Main)
	for key, target := range pkg.Browser.Replacements {
		if filepath.Clean(key) == main {
			pkg.Main = target
			return
		}
	}
}
