package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"modconcat.dev/pkg/modconcat/internal/adapter"
	"modconcat.dev/pkg/modconcat/internal/controller"
	m "modconcat.dev/pkg/modconcat/internal/model"
)

// BundleArgs contains the arguments for bundling one or more targets.
type BundleArgs struct {
	Targets  []m.Target
	Options  m.BundleOptions
	Parallel int
	// Manifest, when set, receives a YAML record of every bundle written.
	Manifest m.Path
}

// ListArgs contains the arguments for a dry run over one entry.
type ListArgs struct {
	Entry   m.Path
	Options m.BundleOptions
}

// ViewArgs contains the arguments for displaying a stored manifest.
type ViewArgs struct {
	Manifest m.Path
}

// Workflow defines the bundling operations exposed to the CLI.
type Workflow interface {
	Bundle(ctx context.Context, args BundleArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ModuleResolver
	adapter.ManifestStore
	controller.UI
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	resolver adapter.ModuleResolver,
	manifestStore adapter.ManifestStore,
	ui controller.UI,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ModuleResolver:  resolver,
		ManifestStore:   manifestStore,
		UI:              ui,
	}
}

func (w *workflow) Bundle(ctx context.Context, args BundleArgs) error {
	if len(args.Targets) == 0 {
		return errors.New("no targets to bundle")
	}

	if err := w.Start(ctx, controller.WithBundleMode(args.Targets...)); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	results := make([]m.BundleManifest, len(args.Targets))

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Parallel > 0 {
		group.SetLimit(args.Parallel)
	}

	for i, target := range args.Targets {
		group.Go(func() error {
			result, err := w.bundleTarget(groupCtx, target, args.Options)
			if err != nil {
				return fmt.Errorf("bundle %s: %w", target.Entry, err)
			}

			results[i] = result
			w.DisplayBundleResult(groupCtx, result)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if args.Manifest == "" {
		return nil
	}

	manifest := m.Manifest{Version: adapter.ManifestVersion, Bundles: results}
	if err := w.SaveManifest(ctx, args.Manifest, manifest); err != nil {
		return fmt.Errorf("save manifest: %w", err)
	}

	slog.Info("Manifest written", "path", args.Manifest, "bundles", len(results))

	return nil
}

// bundleTarget writes one artifact. The output only appears once the whole
// bundle has been produced; on failure nothing is left behind.
func (w *workflow) bundleTarget(ctx context.Context, target m.Target, opts m.BundleOptions) (m.BundleManifest, error) {
	output, err := w.AbsPath(ctx, target.Output)
	if err != nil {
		return m.BundleManifest{}, fmt.Errorf("resolve output: %w", err)
	}

	opts.OutputPath = output

	policy, err := NewPolicy(opts)
	if err != nil {
		return m.BundleManifest{}, err
	}

	emitter, err := NewEmitter(ctx, target.Entry, policy, w.SourceFSAdapter, w.ModuleResolver,
		WithModuleObserver(func(record m.ModuleRecord, size int) {
			w.DisplayModuleEmitted(ctx, target, record, size)
		}),
	)
	if err != nil {
		return m.BundleManifest{}, err
	}

	out, err := w.CreateOutput(ctx, output)
	if err != nil {
		return m.BundleManifest{}, &m.BundleError{Kind: m.ErrIO, Path: output, Cause: err}
	}

	if _, err := io.Copy(out, emitter.Reader(ctx)); err != nil {
		if abortErr := out.Abort(); abortErr != nil {
			slog.Warn("Failed to discard partial output", "path", output, "error", abortErr)
		}

		return m.BundleManifest{}, err
	}

	if err := out.Commit(); err != nil {
		return m.BundleManifest{}, &m.BundleError{Kind: m.ErrIO, Path: output, Cause: err}
	}

	stats, err := emitter.Stats()
	if err != nil {
		return m.BundleManifest{}, err
	}

	hash, err := w.HashFile(ctx, output)
	if err != nil {
		return m.BundleManifest{}, &m.BundleError{Kind: m.ErrIO, Path: output, Cause: err}
	}

	slog.Info("Bundle written", "entry", target.Entry, "output", output, "files", len(stats.Files))

	return m.BundleManifest{
		Entry:  target.Entry,
		Output: target.Output,
		SHA256: hash,
		Stats:  stats,
	}, nil
}

func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	// No output path: the dry run must not depend on where a bundle would go.
	args.Options.OutputPath = ""

	policy, err := NewPolicy(args.Options)
	if err != nil {
		return err
	}

	emitter, err := NewEmitter(ctx, args.Entry, policy, w.SourceFSAdapter, w.ModuleResolver)
	if err != nil {
		return err
	}

	if _, err := io.Copy(io.Discard, emitter.Reader(ctx)); err != nil {
		return fmt.Errorf("list %s: %w", args.Entry, err)
	}

	stats, err := emitter.Stats()
	if err != nil {
		return err
	}

	w.DisplayModuleList(ctx, args.Entry, stats)

	return nil
}

func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return fmt.Errorf("start ui: %w", err)
	}
	defer w.Close(ctx)

	manifest, err := w.LoadManifest(ctx, args.Manifest)
	if err != nil {
		return fmt.Errorf("load manifest: %w", err)
	}

	w.DisplayManifest(ctx, manifest)

	return nil
}
