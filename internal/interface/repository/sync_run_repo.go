package repository

import (
	"context"
	"time"

	"placewatch-service/internal/domain/entity"
	"placewatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormSyncRunRepository implements the SyncRunRepository interface
type GormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GORM sync run repository
func NewGormSyncRunRepository(db *gorm.DB) (repository.SyncRunRepository, error) {
	if err := db.AutoMigrate(&SyncRunRow{}); err != nil {
		return nil, err
	}
	return &GormSyncRunRepository{
		db: db,
	}, nil
}

// SyncRunRow GORM model for database mapping
type SyncRunRow struct {
	ID          uint   `gorm:"primaryKey"`
	Trigger     string `gorm:"column:trigger_kind;index"`
	Status      string `gorm:"column:status"`
	Attempted   int    `gorm:"column:attempted"`
	Succeeded   int    `gorm:"column:succeeded"`
	Failed      int    `gorm:"column:failed"`
	Changed     int    `gorm:"column:changed"`
	ErrorDetail string `gorm:"column:error_detail"`
	StartedAt   time.Time
	FinishedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (SyncRunRow) TableName() string {
	return "sync_runs"
}

// Create journals the start of a run and backfills the generated ID.
func (r *GormSyncRunRepository) Create(ctx context.Context, run *entity.SyncRun) error {
	row := SyncRunRow{
		Trigger:   run.Trigger,
		Status:    run.Status,
		StartedAt: run.StartedAt,
	}
	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return result.Error
	}
	run.ID = row.ID
	run.CreatedAt = row.CreatedAt
	return nil
}

// Finish records the run's final status and aggregate counts.
func (r *GormSyncRunRepository) Finish(ctx context.Context, run *entity.SyncRun) error {
	result := r.db.WithContext(ctx).Model(&SyncRunRow{}).
		Where("id = ?", run.ID).
		Updates(map[string]interface{}{
			"status":       run.Status,
			"attempted":    run.Attempted,
			"succeeded":    run.Succeeded,
			"failed":       run.Failed,
			"changed":      run.Changed,
			"error_detail": run.ErrorDetail,
			"finished_at":  run.FinishedAt,
		})
	return result.Error
}
