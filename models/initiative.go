package models

import "strings"

// Deployment stage labels the dashboard counts on.
const (
	StageDeployed     = "Đã đưa vào sử dụng"
	StageRollingOut   = "Đang triển khai"
	StageDeveloping   = "Đang phát triển"
	StagePlanned      = "Kế hoạch"
	StageUnclassified = "Chưa xác định"
)

// InProgressStages are the stages counted as "in progress".
var InProgressStages = []string{StageRollingOut, StageDeveloping}

// Initiative is one cataloged digital tool. OfficialName is the row key used
// for update and delete; empty strings mean "unset".
type Initiative struct {
	OfficialName     string     `json:"ten_chinh_thuc" db:"ten_chinh_thuc" gorm:"column:ten_chinh_thuc;type:text;primaryKey;not null"`
	ShortName        string     `json:"ten_ngan_gon" db:"ten_ngan_gon" gorm:"column:ten_ngan_gon;type:text"`
	Description      string     `json:"mo_ta" db:"mo_ta" gorm:"column:mo_ta;type:text"`
	Classification   string     `json:"phan_loai" db:"phan_loai" gorm:"column:phan_loai;type:text"`
	Technology       string     `json:"cong_nghe" db:"cong_nghe" gorm:"column:cong_nghe;type:text"`
	Audience         string     `json:"doi_tuong" db:"doi_tuong" gorm:"column:doi_tuong;type:text"`
	Stage            string     `json:"giai_doan" db:"giai_doan" gorm:"column:giai_doan;type:text"`
	Field            string     `json:"linh_vuc" db:"linh_vuc" gorm:"column:linh_vuc;type:text"`
	AccessLink       string     `json:"link_truy_cap" db:"link_truy_cap" gorm:"column:link_truy_cap;type:text"`
	Department       string     `json:"ban_chu_tri" db:"ban_chu_tri" gorm:"column:ban_chu_tri;type:text"`
	PointOfContact   string     `json:"nhan_su_dau_moi" db:"nhan_su_dau_moi" gorm:"column:nhan_su_dau_moi;type:text"`
	ResponsibleStaff string     `json:"nhan_su_phu_trach" db:"nhan_su_phu_trach" gorm:"column:nhan_su_phu_trach;type:text"`
	FileURLs         StringList `json:"file_urls" db:"file_urls" gorm:"column:file_urls"`
	LinkedDatabases  StringList `json:"lien_ket_csdl" db:"lien_ket_csdl" gorm:"column:lien_ket_csdl"`
	CreatedBy        string     `json:"created_by" db:"created_by" gorm:"column:created_by;type:text"`
}

func (Initiative) TableName() string {
	return "Catalog_data"
}

// DisplayName is the short name, falling back to the official name.
func (i Initiative) DisplayName() string {
	if strings.TrimSpace(i.ShortName) != "" {
		return i.ShortName
	}
	return i.OfficialName
}

// OwnedBy reports whether email recorded the initiative. Comparison ignores case.
func (i Initiative) OwnedBy(email string) bool {
	return i.CreatedBy != "" && strings.EqualFold(i.CreatedBy, email)
}

// InitiativeInput is the editable part of an initiative as submitted by the
// add and edit forms.
type InitiativeInput struct {
	OfficialName     string     `json:"ten_chinh_thuc"`
	ShortName        string     `json:"ten_ngan_gon"`
	Description      string     `json:"mo_ta"`
	Classification   string     `json:"phan_loai"`
	Technology       string     `json:"cong_nghe"`
	Audience         string     `json:"doi_tuong"`
	Stage            string     `json:"giai_doan"`
	Field            string     `json:"linh_vuc"`
	AccessLink       string     `json:"link_truy_cap"`
	Department       string     `json:"ban_chu_tri"`
	PointOfContact   string     `json:"nhan_su_dau_moi"`
	ResponsibleStaff string     `json:"nhan_su_phu_trach"`
	FileURLs         StringList `json:"file_urls"`
	LinkedDatabases  StringList `json:"lien_ket_csdl"`
}

// Apply copies the input onto an initiative, keeping CreatedBy.
func (in InitiativeInput) Apply(to Initiative) Initiative {
	to.OfficialName = strings.TrimSpace(in.OfficialName)
	to.ShortName = in.ShortName
	to.Description = in.Description
	to.Classification = in.Classification
	to.Technology = in.Technology
	to.Audience = in.Audience
	to.Stage = in.Stage
	to.Field = in.Field
	to.AccessLink = in.AccessLink
	to.Department = in.Department
	to.PointOfContact = in.PointOfContact
	to.ResponsibleStaff = in.ResponsibleStaff
	to.FileURLs = append(StringList{}, in.FileURLs...)
	to.LinkedDatabases = append(StringList{}, in.LinkedDatabases...)
	return to
}
