package database

import (
	"context"

	"github.com/pvn-digital/initiative-catalog/models"
	"gorm.io/gorm"
)

type AdminRepo struct {
	db *gorm.DB
}

func NewAdminRepo(db *gorm.DB) *AdminRepo {
	return &AdminRepo{db}
}

// FindAll returns the allow-list ordered by email
func (r *AdminRepo) FindAll(ctx context.Context) ([]models.Admin, error) {
	var admins []models.Admin
	err := r.db.WithContext(ctx).Order("email").Find(&admins).Error
	return admins, err
}

func (r *AdminRepo) Add(ctx context.Context, admin *models.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

// Delete removes email from the allow-list and reports how many rows went
func (r *AdminRepo) Delete(ctx context.Context, email string) (int64, error) {
	result := r.db.WithContext(ctx).Where("email = ?", email).Delete(&models.Admin{})
	return result.RowsAffected, result.Error
}

// Exists compares emails case-insensitively
func (r *AdminRepo) Exists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("LOWER(email) = LOWER(?)", email).
		Count(&count).Error
	return count > 0, err
}
