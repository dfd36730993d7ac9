package models

import (
	"strings"
	"time"
)

// ExternalDatabase is a row of the separately owned database catalog. Only
// Name takes part in linking; the rest backs the detail view.
type ExternalDatabase struct {
	Name            string          `json:"ten_csdl" db:"ten_csdl" gorm:"column:ten_csdl;type:text;primaryKey"`
	Description     string          `json:"mo_ta" db:"mo_ta" gorm:"column:mo_ta;type:text"`
	Domain          string          `json:"linh_vuc" db:"linh_vuc" gorm:"column:linh_vuc;type:text"`
	Keywords        string          `json:"tu_khoa" db:"tu_khoa" gorm:"column:tu_khoa;type:text"`
	ResponsibleDept string          `json:"ban_phu_trach" db:"ban_phu_trach" gorm:"column:ban_phu_trach;type:text"`
	Creator         string          `json:"nguoi_tao" db:"nguoi_tao" gorm:"column:nguoi_tao;type:text"`
	CreatedAt       *time.Time      `json:"ngay_tao,omitempty" db:"ngay_tao" gorm:"column:ngay_tao"`
	UpdatedAt       *time.Time      `json:"ngay_cap_nhat,omitempty" db:"ngay_cap_nhat" gorm:"column:ngay_cap_nhat"`
	Tables          []ExternalTable `json:"thong_tin_bang" gorm:"foreignKey:DatabaseName;references:Name"`
}

func (ExternalDatabase) TableName() string {
	return "co_so_du_lieu"
}

// ExternalTable describes one table of an external database.
type ExternalTable struct {
	ID              int64           `json:"id" db:"id" gorm:"column:id;primaryKey"`
	DatabaseName    string          `json:"ten_csdl" db:"ten_csdl" gorm:"column:ten_csdl;type:text;index"`
	Name            string          `json:"ten_bang" db:"ten_bang" gorm:"column:ten_bang;type:text"`
	Description     string          `json:"mo_ta" db:"mo_ta" gorm:"column:mo_ta;type:text"`
	Source          string          `json:"nguon" db:"nguon" gorm:"column:nguon;type:text"`
	UpdateFrequency string          `json:"tan_suat_cap_nhat" db:"tan_suat_cap_nhat" gorm:"column:tan_suat_cap_nhat;type:text"`
	Fields          []ExternalField `json:"thong_tin_truong" gorm:"foreignKey:TableID;references:ID"`
}

func (ExternalTable) TableName() string {
	return "thong_tin_bang"
}

// ExternalField describes one column of an external table.
type ExternalField struct {
	ID            int64  `json:"id" db:"id" gorm:"column:id;primaryKey"`
	TableID       int64  `json:"bang_id" db:"bang_id" gorm:"column:bang_id;index"`
	Name          string `json:"ten_truong" db:"ten_truong" gorm:"column:ten_truong;type:text"`
	Description   string `json:"mo_ta" db:"mo_ta" gorm:"column:mo_ta;type:text"`
	Source        string `json:"nguon" db:"nguon" gorm:"column:nguon;type:text"`
	StoragePeriod string `json:"thoi_gian_luu_tru" db:"thoi_gian_luu_tru" gorm:"column:thoi_gian_luu_tru;type:text"`
	DataRange     string `json:"khoang_du_lieu" db:"khoang_du_lieu" gorm:"column:khoang_du_lieu;type:text"`
	Format        string `json:"dinh_dang" db:"dinh_dang" gorm:"column:dinh_dang;type:text"`
	Unit          string `json:"don_vi" db:"don_vi" gorm:"column:don_vi;type:text"`
	KeyType       string `json:"loai_khoa" db:"loai_khoa" gorm:"column:loai_khoa;type:text"`
	Relationship  string `json:"quan_he" db:"quan_he" gorm:"column:quan_he;type:text"`
}

func (ExternalField) TableName() string {
	return "thong_tin_truong"
}

// KeywordList splits the comma separated keyword column.
func (d ExternalDatabase) KeywordList() []string {
	return splitKeywords(d.Keywords)
}

func splitKeywords(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
