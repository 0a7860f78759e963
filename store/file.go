package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"surveillance-map/be/models"
)

// FileBackend keeps the collection as a single pretty-printed JSON array.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Name() string { return "file:" + b.path }

// Load returns an empty collection when the file does not exist yet.
func (b *FileBackend) Load(_ context.Context) ([]models.Camera, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Camera{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}

	cameras := []models.Camera{}
	if err := json.Unmarshal(data, &cameras); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.path, err)
	}
	return cameras, nil
}

// Save writes to a temp file in the same directory and renames it over the
// document, so a failed write leaves the previous collection intact.
func (b *FileBackend) Save(_ context.Context, cameras []models.Camera) error {
	if cameras == nil {
		cameras = []models.Camera{}
	}
	data, err := json.MarshalIndent(cameras, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cameras: %w", err)
	}

	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cameras: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", b.path, err)
	}
	return nil
}

func (b *FileBackend) Close() error { return nil }
