// Package adapter contains UI and infrastructure adapters for the modconcat CLI.
package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when reading a project and writing the artifact. It hides direct `os`
// access so the bundler logic can be tested without touching the disk.
type SourceFSAdapter interface {
	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// FileInfo returns metadata for a path so callers can check existence or
	// distinguish between files and directories.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)

	// HashFile returns a stable fingerprint (SHA-256) for the file at path.
	HashFile(ctx context.Context, path m.Path) (string, error)

	// AbsPath returns the cleaned absolute form of path.
	AbsPath(ctx context.Context, path m.Path) (m.Path, error)

	// RelPath returns the relative path from base to target.
	RelPath(ctx context.Context, base, target m.Path) (m.Path, error)

	// CreateOutput opens a staging file for path. Nothing appears at path
	// until Commit is called.
	CreateOutput(ctx context.Context, path m.Path) (OutputFile, error)
}

// OutputFile is an artifact being written. Exactly one of Commit or Abort
// must be called.
type OutputFile interface {
	io.Writer
	Commit() error
	Abort() error
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - reading project files is the point of the tool
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// AbsPath returns the absolute, cleaned form of path.
func (a *LocalSourceFSAdapter) AbsPath(_ context.Context, path m.Path) (m.Path, error) {
	abs, err := filepath.Abs(string(path))
	if err != nil {
		return "", err
	}

	return m.Path(abs), nil
}

// RelPath returns the relative path from base to target.
func (a *LocalSourceFSAdapter) RelPath(_ context.Context, base, target m.Path) (m.Path, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", err
	}

	return m.Path(rel), nil
}

// CreateOutput stages the artifact in a temp file next to path and renames it
// into place on Commit.
func (a *LocalSourceFSAdapter) CreateOutput(ctx context.Context, path m.Path) (OutputFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(string(path))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(string(path))+".*.tmp")
	if err != nil {
		return nil, err
	}

	return &stagedFile{File: tmp, target: string(path)}, nil
}

type stagedFile struct {
	*os.File
	target string
}

// Commit closes the staging file and moves it over the target.
func (s *stagedFile) Commit() error {
	if err := s.Close(); err != nil {
		_ = os.Remove(s.Name())
		return err
	}

	if err := os.Chmod(s.Name(), 0o644); err != nil { //nolint:gosec // bundles are meant to be readable
		_ = os.Remove(s.Name())
		return err
	}

	if err := os.Rename(s.Name(), s.target); err != nil {
		_ = os.Remove(s.Name())
		return err
	}

	return nil
}

// Abort discards the staging file.
func (s *stagedFile) Abort() error {
	_ = s.Close()

	if err := os.Remove(s.Name()); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
