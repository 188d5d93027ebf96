package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "modconcat.dev/pkg/modconcat/internal/model"
)

// ManifestVersion is the current manifest file format version.
const ManifestVersion = 1

// ManifestStore persists bundle manifests.
type ManifestStore interface {
	SaveManifest(ctx context.Context, path m.Path, manifest m.Manifest) error
	LoadManifest(ctx context.Context, path m.Path) (m.Manifest, error)
}

// YAMLManifestStore stores manifests as YAML documents.
type YAMLManifestStore struct{}

// NewManifestStore constructs a YAMLManifestStore.
func NewManifestStore() *YAMLManifestStore {
	return &YAMLManifestStore{}
}

// SaveManifest writes manifest to path, creating parent directories.
func (s *YAMLManifestStore) SaveManifest(ctx context.Context, path m.Path, manifest m.Manifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if manifest.Version == 0 {
		manifest.Version = ManifestVersion
	}

	data, err := yaml.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return nil
}

// LoadManifest reads a manifest previously written by SaveManifest.
func (s *YAMLManifestStore) LoadManifest(ctx context.Context, path m.Path) (m.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return m.Manifest{}, err
	}

	// #nosec G304 - manifest path comes from the user on purpose
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest m.Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return m.Manifest{}, fmt.Errorf("decode manifest %s: %w", path, err)
	}

	if manifest.Version > ManifestVersion {
		return m.Manifest{}, fmt.Errorf("manifest %s has unsupported version %d", path, manifest.Version)
	}

	return manifest, nil
}
