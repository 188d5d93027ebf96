package controller

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

// palette decorates the plain text renderings. SimpleUI uses plainPalette,
// the TUI swaps in lipgloss styles.
type palette struct {
	title   func(string) string
	success func(string) string
	warning func(string) string
	faint   func(string) string
}

func identity(s string) string { return s }

var plainPalette = palette{
	title:   identity,
	success: identity,
	warning: identity,
	faint:   identity,
}

// renderBundleResult renders the CLI summary of one bundle.
func renderBundleResult(result m.BundleManifest, p palette) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d files written to %s.\n", len(result.Stats.Files), result.Output)

	if len(result.Stats.UnresolvedModules) > 0 {
		b.WriteString(p.warning("The following modules were not found:") + "\n")

		for _, unresolved := range result.Stats.UnresolvedModules {
			fmt.Fprintf(&b, "  %q from %s\n", unresolved.Module, unresolved.Parent)
		}
	}

	if len(result.Stats.AddonsExcluded) > 0 {
		b.WriteString(p.warning("The following native addons were excluded:") + "\n")

		for _, addon := range result.Stats.AddonsExcluded {
			fmt.Fprintf(&b, "  %s\n", addon)
		}
	}

	if result.SHA256 != "" {
		b.WriteString(p.faint("sha256 "+result.SHA256) + "\n")
	}

	b.WriteString(p.success("Completed successfully.") + "\n")

	return b.String()
}

// renderModuleTable lists the bundle members by identifier, relative to the
// entry's directory where possible.
func renderModuleTable(entry m.Path, files []m.Path) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"ID", "Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	base := entryDir(entry)

	for id, file := range files {
		table.Append([]string{fmt.Sprintf("%d", id), displayPath(base, file)})
	}

	table.SetFooter([]string{"Total Files", fmt.Sprintf("%d", len(files))})
	table.Render()

	return tableBuffer.String()
}

// renderDiagnosticsTable lists unresolved references and excluded addons.
// It returns an empty string when there is nothing to report.
func renderDiagnosticsTable(entry m.Path, stats m.Stats) string {
	if len(stats.UnresolvedModules) == 0 && len(stats.AddonsExcluded) == 0 {
		return ""
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Kind", "Module", "Parent"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	base := entryDir(entry)

	for _, unresolved := range stats.UnresolvedModules {
		table.Append([]string{"unresolved", unresolved.Module, displayPath(base, unresolved.Parent)})
	}

	for _, addon := range stats.AddonsExcluded {
		table.Append([]string{"addon", displayPath(base, addon), ""})
	}

	table.Render()

	return tableBuffer.String()
}

// renderManifest renders every bundle recorded in a manifest.
func renderManifest(manifest m.Manifest, p palette) string {
	var b strings.Builder

	if len(manifest.Bundles) == 0 {
		b.WriteString("No bundles recorded.\n")
		return b.String()
	}

	for i, bundle := range manifest.Bundles {
		if i > 0 {
			b.WriteString("\n")
		}

		b.WriteString(p.title(fmt.Sprintf("%s -> %s", bundle.Entry, bundle.Output)) + "\n")

		if bundle.SHA256 != "" {
			b.WriteString(p.faint("sha256 "+bundle.SHA256) + "\n")
		}

		b.WriteString(renderModuleTable(bundle.Entry, bundle.Stats.Files))
		b.WriteString(renderDiagnosticsTable(bundle.Entry, bundle.Stats))
	}

	return b.String()
}

func entryDir(entry m.Path) string {
	abs, err := filepath.Abs(string(entry))
	if err != nil {
		return filepath.Dir(string(entry))
	}

	return filepath.Dir(abs)
}

func displayPath(base string, path m.Path) string {
	rel, err := filepath.Rel(base, string(path))
	if err != nil || strings.HasPrefix(rel, "..") {
		return string(path)
	}

	return rel
}
