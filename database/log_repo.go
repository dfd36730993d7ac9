package database

import (
	"context"

	"github.com/pvn-digital/initiative-catalog/models"
	"gorm.io/gorm"
)

type LogRepo struct {
	db *gorm.DB
}

func NewLogRepo(db *gorm.DB) *LogRepo {
	return &LogRepo{db}
}

// Add appends a log entry
func (r *LogRepo) Add(ctx context.Context, entry *models.LogEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindRecent returns at most limit entries, newest first
func (r *LogRepo) FindRecent(ctx context.Context, limit int) ([]models.LogEntry, error) {
	var entries []models.LogEntry
	err := r.db.WithContext(ctx).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
