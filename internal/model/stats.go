package model

// UnresolvedModule records a reference that could not be resolved but was tolerated.
type UnresolvedModule struct {
	Parent Path   `yaml:"parent"`
	Module string `yaml:"module"`
}

// Stats is the manifest of a finished bundle.
type Stats struct {
	Files             []Path             `yaml:"files"`
	AddonsExcluded    []Path             `yaml:"addons_excluded"`
	UnresolvedModules []UnresolvedModule `yaml:"unresolved_modules"`
}

// Manifest is the persisted form of one or more bundle runs.
type Manifest struct {
	Version int              `yaml:"version"`
	Bundles []BundleManifest `yaml:"bundles"`
}

// BundleManifest is the persisted result of a single target.
type BundleManifest struct {
	Entry  Path   `yaml:"entry"`
	Output Path   `yaml:"output"`
	SHA256 string `yaml:"sha256,omitempty"`
	Stats  Stats  `yaml:",inline"`
}
