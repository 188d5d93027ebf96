package domain

import (
	"slices"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

// Diagnostics accumulates excluded addons and tolerated resolution failures
// for a single bundle.
type Diagnostics struct {
	addons     []m.Path
	addonSeen  map[m.Path]struct{}
	unresolved []m.UnresolvedModule
}

// NewDiagnostics returns an empty accumulator.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{addonSeen: make(map[m.Path]struct{})}
}

// Record merges the diagnostics of one rewritten file.
func (d *Diagnostics) Record(outcome m.RewriteOutcome) {
	for _, addon := range outcome.AddonsExcluded {
		d.AddAddon(addon)
	}

	d.unresolved = append(d.unresolved, outcome.Unresolved...)
}

// AddAddon records an excluded native addon once, however often it is
// referenced.
func (d *Diagnostics) AddAddon(path m.Path) bool {
	if _, ok := d.addonSeen[path]; ok {
		return false
	}

	d.addonSeen[path] = struct{}{}
	d.addons = append(d.addons, path)

	return true
}

// Snapshot returns the bundle statistics. It fails with model.ErrIncomplete
// while graph still has pending modules.
func (d *Diagnostics) Snapshot(graph *Graph) (m.Stats, error) {
	if !graph.Exhausted() {
		return m.Stats{}, m.ErrIncomplete
	}

	addons := slices.Clone(d.addons)
	if addons == nil {
		addons = []m.Path{}
	}

	unresolved := slices.Clone(d.unresolved)
	if unresolved == nil {
		unresolved = []m.UnresolvedModule{}
	}

	return m.Stats{
		Files:             graph.Files(),
		AddonsExcluded:    addons,
		UnresolvedModules: unresolved,
	}, nil
}
