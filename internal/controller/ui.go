// Package controller provides output adapters for displaying bundling progress and results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeBundle StartMode = iota
	ModeList
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode    StartMode
	targets []m.Target
}

// WithBundleMode sets the UI to bundling mode for the given targets.
func WithBundleMode(targets ...m.Target) StartOption {
	return func(c *StartConfig) {
		c.mode = ModeBundle
		c.targets = targets
	}
}

// WithListMode sets the UI to dry-run listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithViewMode sets the UI to manifest viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func newStartConfig(options []StartOption) StartConfig {
	cfg := StartConfig{mode: ModeBundle}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for reporting bundling activity.
// Implementations can use different output methods (simple text, TUI, etc).
// Display methods may be called from several goroutines.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayModuleEmitted(ctx context.Context, target m.Target, record m.ModuleRecord, size int)
	DisplayBundleResult(ctx context.Context, result m.BundleManifest)
	DisplayModuleList(ctx context.Context, entry m.Path, stats m.Stats)
	DisplayManifest(ctx context.Context, manifest m.Manifest)
}

// NewUI picks the interactive UI when stdout is a terminal.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
