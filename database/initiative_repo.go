package database

import (
	"context"
	"slices"

	"github.com/pvn-digital/initiative-catalog/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	officialNameColumn = "ten_chinh_thuc"
	ownedByClause      = "created_by <> '' AND LOWER(created_by) = LOWER(?)"
)

type InitiativeRepo struct {
	db *gorm.DB
}

func NewInitiativeRepo(db *gorm.DB) *InitiativeRepo {
	return &InitiativeRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *InitiativeRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns every initiative in storage order
func (r *InitiativeRepo) FindAll(ctx context.Context) ([]models.Initiative, error) {
	var initiatives []models.Initiative
	err := r.db.WithContext(ctx).Find(&initiatives).Error
	return initiatives, err
}

// Add inserts a new initiative
func (r *InitiativeRepo) Add(ctx context.Context, initiative *models.Initiative) error {
	return r.db.WithContext(ctx).Create(initiative).Error
}

// FindByOfficialName reads the stored row keyed by officialName. A missing
// row is gorm.ErrRecordNotFound.
func (r *InitiativeRepo) FindByOfficialName(ctx context.Context, officialName string) (models.Initiative, error) {
	var initiative models.Initiative
	err := r.db.WithContext(ctx).Where(officialNameColumn+" = ?", officialName).Take(&initiative).Error
	return initiative, err
}

// UpdateByOfficialName overwrites every column of the row keyed by
// officialName, including the key itself when the initiative was renamed.
// Only a row created by owner (case-insensitive) is written; zero rows
// affected is not an error here.
func (r *InitiativeRepo) UpdateByOfficialName(ctx context.Context, officialName, owner string, initiative models.Initiative) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Initiative{}).
		Where(officialNameColumn+" = ?", officialName).
		Where(ownedByClause, owner).
		Updates(columns(initiative))
	return result.RowsAffected, result.Error
}

// AddLinks appends the database names the stored row does not link yet.
// The row is re-read inside the transaction so links written since the
// caller's read are kept.
func (r *InitiativeRepo) AddLinks(ctx context.Context, officialName string, links []string) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where(officialNameColumn+" = ?", officialName)
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var current models.Initiative
		result := query.Limit(1).Find(&current)
		if result.Error != nil || result.RowsAffected == 0 {
			return result.Error
		}

		merged := append(models.StringList{}, current.LinkedDatabases...)
		for _, link := range links {
			if !slices.Contains(merged, link) {
				merged = append(merged, link)
			}
		}

		result = tx.Model(&models.Initiative{}).
			Where(officialNameColumn+" = ?", officialName).
			Update("lien_ket_csdl", merged)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// DeleteByOfficialName removes the row keyed by officialName if owner created it
func (r *InitiativeRepo) DeleteByOfficialName(ctx context.Context, officialName, owner string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where(officialNameColumn+" = ?", officialName).
		Where(ownedByClause, owner).
		Delete(&models.Initiative{})
	return result.RowsAffected, result.Error
}

// columns lists every column explicitly so empty strings are written too.
func columns(i models.Initiative) map[string]any {
	return map[string]any{
		"ten_chinh_thuc":    i.OfficialName,
		"ten_ngan_gon":      i.ShortName,
		"mo_ta":             i.Description,
		"phan_loai":         i.Classification,
		"cong_nghe":         i.Technology,
		"doi_tuong":         i.Audience,
		"giai_doan":         i.Stage,
		"linh_vuc":          i.Field,
		"link_truy_cap":     i.AccessLink,
		"ban_chu_tri":       i.Department,
		"nhan_su_dau_moi":   i.PointOfContact,
		"nhan_su_phu_trach": i.ResponsibleStaff,
		"file_urls":         i.FileURLs,
		"lien_ket_csdl":     i.LinkedDatabases,
		"created_by":        i.CreatedBy,
	}
}
