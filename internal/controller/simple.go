package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
	mu  sync.Mutex
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayModuleEmitted logs progress; plain output stays quiet until a bundle completes.
func (s *SimpleUI) DisplayModuleEmitted(_ context.Context, target m.Target, record m.ModuleRecord, size int) {
	slog.Debug("Module written", "output", target.Output, "id", record.ID, "path", record.Path, "bytes", size)
}

// DisplayBundleResult prints the summary of a finished bundle.
func (s *SimpleUI) DisplayBundleResult(ctx context.Context, result m.BundleManifest) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s", renderBundleResult(result, plainPalette))
}

// DisplayModuleList prints the modules a bundle would contain.
func (s *SimpleUI) DisplayModuleList(ctx context.Context, entry m.Path, stats m.Stats) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s", renderModuleTable(entry, stats.Files))

	if diagnostics := renderDiagnosticsTable(entry, stats); diagnostics != "" {
		s.printf("\n%s", diagnostics)
	}
}

// DisplayManifest prints a stored manifest.
func (s *SimpleUI) DisplayManifest(ctx context.Context, manifest m.Manifest) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s", renderManifest(manifest, plainPalette))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
