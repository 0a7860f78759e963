package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"surveillance-map/be/models"
)

// GormBackend keeps one row per camera in the cameras table.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend expects a connection whose schema was migrated by
// database.Initialize.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

func (b *GormBackend) Name() string { return "postgres" }

func (b *GormBackend) Load(ctx context.Context) ([]models.Camera, error) {
	var rows []models.CameraRecord
	if err := b.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cameras: %w", err)
	}

	cameras := make([]models.Camera, 0, len(rows))
	for _, row := range rows {
		cameras = append(cameras, row.Camera())
	}
	return cameras, nil
}

// Save replaces the table contents inside one transaction.
func (b *GormBackend) Save(ctx context.Context, cameras []models.Camera) error {
	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.CameraRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear cameras: %w", err)
		}
		if len(cameras) == 0 {
			return nil
		}

		rows := make([]models.CameraRecord, 0, len(cameras))
		for i, cam := range cameras {
			rows = append(rows, models.NewCameraRecord(cam, i))
		}
		if err := tx.CreateInBatches(rows, 500).Error; err != nil {
			return fmt.Errorf("failed to insert cameras: %w", err)
		}
		return nil
	})
}

func (b *GormBackend) Close() error {
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
