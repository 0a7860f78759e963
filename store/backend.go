// Package store persists the camera collection. Every backend reads and
// writes the whole collection as one unit; callers do load-modify-save.
package store

import (
	"context"
	"fmt"

	"surveillance-map/be/config"
	"surveillance-map/be/models"
)

// Backend loads and saves the entire ordered camera collection.
type Backend interface {
	Load(ctx context.Context) ([]models.Camera, error)
	Save(ctx context.Context, cameras []models.Camera) error
	Name() string
	Close() error
}

// Open builds the backend selected by cfg.Backend. The postgres backend is
// created by the caller from a gorm connection, see NewGormBackend.
func Open(cfg config.StoreConfig) (Backend, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileBackend(cfg.FilePath), nil
	case "badger":
		return OpenBadgerBackend(cfg.BadgerDir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
