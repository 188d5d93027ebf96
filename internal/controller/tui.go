package controller

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

// Colors used by the interactive output.
var (
	colorCyan    = lipgloss.Color("14")
	colorGreen   = lipgloss.Color("10")
	colorYellow  = lipgloss.Color("220")
	colorDimGray = lipgloss.Color("240")
)

var (
	styleNoun    = lipgloss.NewStyle().Foreground(colorCyan)
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim     = lipgloss.NewStyle().Foreground(colorDimGray)
)

var colorPalette = palette{
	title:   renderWith(styleTitle),
	success: renderWith(styleSuccess),
	warning: renderWith(styleWarning),
	faint:   renderWith(styleDim),
}

// renderWith narrows lipgloss' variadic Render to a palette entry.
func renderWith(style lipgloss.Style) func(string) string {
	return func(s string) string { return style.Render(s) }
}

// TUI implements UI using Bubble Tea for live bundling progress.
type TUI struct {
	output io.Writer

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
	results []m.BundleManifest
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress display in bundle mode. Other modes render
// once and need no running program.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := newStartConfig(options)
	if cfg.mode != ModeBundle {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	t.results = nil
	t.done = make(chan struct{})
	t.program = tea.NewProgram(
		newProgressModel(cfg.targets),
		tea.WithOutput(t.output),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	program, done := t.program, t.done

	go func() {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Error("Progress display failed", "error", err)
		}
	}()

	return nil
}

// Close stops the progress display and prints the collected summaries.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	results := t.results
	t.program, t.done, t.results = nil, nil, nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done

	for _, result := range results {
		_, _ = fmt.Fprint(t.output, renderBundleResult(result, colorPalette))
	}
}

// DisplayModuleEmitted forwards progress to the running program.
func (t *TUI) DisplayModuleEmitted(_ context.Context, target m.Target, record m.ModuleRecord, size int) {
	t.send(moduleEmittedMsg{target: target, record: record, size: size})
}

// DisplayBundleResult marks a target done. The summary is printed on Close
// so it does not interleave with the live display.
func (t *TUI) DisplayBundleResult(ctx context.Context, result m.BundleManifest) {
	if err := ctx.Err(); err != nil {
		return
	}

	t.mu.Lock()
	running := t.program != nil
	if running {
		t.results = append(t.results, result)
	}
	t.mu.Unlock()

	if !running {
		_, _ = fmt.Fprint(t.output, renderBundleResult(result, colorPalette))
		return
	}

	t.send(bundleDoneMsg{entry: result.Entry, files: len(result.Stats.Files)})
}

// DisplayModuleList prints the modules a bundle would contain.
func (t *TUI) DisplayModuleList(ctx context.Context, entry m.Path, stats m.Stats) {
	if err := ctx.Err(); err != nil {
		return
	}

	var b strings.Builder

	b.WriteString(styleTitle.Render("Modules reachable from ") + styleNoun.Render(string(entry)) + "\n\n")
	b.WriteString(renderModuleTable(entry, stats.Files))

	if diagnostics := renderDiagnosticsTable(entry, stats); diagnostics != "" {
		b.WriteString("\n" + styleWarning.Render("Diagnostics") + "\n")
		b.WriteString(diagnostics)
	}

	_, _ = fmt.Fprint(t.output, b.String())
}

// DisplayManifest prints a stored manifest.
func (t *TUI) DisplayManifest(ctx context.Context, manifest m.Manifest) {
	if err := ctx.Err(); err != nil {
		return
	}

	_, _ = fmt.Fprint(t.output, renderManifest(manifest, colorPalette))
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

type moduleEmittedMsg struct {
	target m.Target
	record m.ModuleRecord
	size   int
}

type bundleDoneMsg struct {
	entry m.Path
	files int
}

// targetProgress is the live state of one bundle.
type targetProgress struct {
	target  m.Target
	modules int
	bytes   int
	last    m.Path
	done    bool
}

// progressModel is the Bubble Tea model showing one line per target.
type progressModel struct {
	spinner spinner.Model
	order   []m.Path
	byEntry map[m.Path]*targetProgress
}

func newProgressModel(targets []m.Target) progressModel {
	model := progressModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styleNoun)),
		byEntry: make(map[m.Path]*targetProgress, len(targets)),
	}

	for _, target := range targets {
		model = model.track(target)
	}

	return model
}

func (pm progressModel) track(target m.Target) progressModel {
	if _, ok := pm.byEntry[target.Entry]; ok {
		return pm
	}

	pm.byEntry[target.Entry] = &targetProgress{target: target}
	pm.order = append(pm.order, target.Entry)

	return pm
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd

		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd

	case moduleEmittedMsg:
		pm = pm.track(msg.target)

		progress := pm.byEntry[msg.target.Entry]
		progress.modules++
		progress.bytes += msg.size
		progress.last = msg.record.Path

		return pm, nil

	case bundleDoneMsg:
		if progress, ok := pm.byEntry[msg.entry]; ok {
			progress.done = true
			progress.modules = msg.files
		}

		return pm, nil
	}

	return pm, nil
}

func (pm progressModel) View() string {
	var b strings.Builder

	for _, entry := range pm.order {
		progress := pm.byEntry[entry]

		status := pm.spinner.View()
		if progress.done {
			status = styleSuccess.Render("✔")
		}

		fmt.Fprintf(&b, "%s %s %s %d modules, %s",
			status,
			styleNoun.Render(string(progress.target.Entry)),
			styleDim.Render("->"),
			progress.modules,
			formatBytes(progress.bytes),
		)

		if !progress.done && progress.last != "" {
			b.WriteString(" " + styleDim.Render(filepath.Base(string(progress.last))))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func formatBytes(n int) string {
	const unit = 1024

	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := unit, 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
