package database

import (
	"context"

	"github.com/pvn-digital/initiative-catalog/models"
	"gorm.io/gorm"
)

// ExternalDatabaseRepo reads the database catalog owned by another team. It
// never writes.
type ExternalDatabaseRepo struct {
	db *gorm.DB
}

func NewExternalDatabaseRepo(db *gorm.DB) *ExternalDatabaseRepo {
	return &ExternalDatabaseRepo{db}
}

// Names returns every catalog database name in storage order
func (r *ExternalDatabaseRepo) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.ExternalDatabase{}).
		Pluck("ten_csdl", &names).Error
	return names, err
}

// FindByNames loads the named databases with their tables and fields
func (r *ExternalDatabaseRepo) FindByNames(ctx context.Context, names []string) ([]models.ExternalDatabase, error) {
	if len(names) == 0 {
		return []models.ExternalDatabase{}, nil
	}
	var databases []models.ExternalDatabase
	err := r.db.WithContext(ctx).
		Preload("Tables", func(db *gorm.DB) *gorm.DB { return db.Order("ten_bang") }).
		Preload("Tables.Fields", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("ten_csdl IN ?", names).
		Order("ten_csdl").
		Find(&databases).Error
	return databases, err
}
