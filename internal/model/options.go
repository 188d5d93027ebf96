package model

// VendorExclusion selects which vendor (bare-name) packages are left out of the bundle.
type VendorExclusion int

const (
	// ExcludeNoPackages bundles every resolvable vendor package.
	ExcludeNoPackages VendorExclusion = iota
	// ExcludeAllPackages leaves every vendor require untouched.
	ExcludeAllPackages
	// ExcludeNamedPackages leaves only the listed vendor packages untouched.
	ExcludeNamedPackages
)

// String returns a human readable name for the exclusion mode.
func (v VendorExclusion) String() string {
	switch v {
	case ExcludeAllPackages:
		return "all"
	case ExcludeNamedPackages:
		return "named"
	default:
		return "none"
	}
}

// Compiler turns the raw contents of a file into CommonJS source text.
type Compiler func(src []byte, filename Path) ([]byte, error)

// BundleOptions is the configuration surface consumed by the bundler engine.
type BundleOptions struct {
	// Extensions are probed in order when resolving a specifier.
	Extensions []string
	// Compilers maps a file extension (".json", ".ts") to its compiler.
	Compilers map[string]Compiler
	// ExcludeFiles are paths never inlined into the bundle.
	ExcludeFiles []Path
	// VendorExclusion and ExcludedPackages control vendor package exclusion.
	VendorExclusion  VendorExclusion
	ExcludedPackages []string
	// Browser prefers the package.json "browser" field and disables builtin handling.
	Browser bool
	// AllowUnresolved records unresolvable references instead of failing.
	AllowUnresolved bool
	// OutputPath is where the artifact will live; empty disables __dirname/__filename rewriting.
	OutputPath Path
}

// ResolveOptions is the subset of the policy handed to a module resolver.
type ResolveOptions struct {
	Extensions []string
	// SkipCore makes the resolver look on disk before treating a name as a builtin.
	SkipCore bool
	// PackageFilter may rewrite a parsed package.json before its entry point is used.
	PackageFilter func(pkg *PackageManifest, pkgDir Path)
}
