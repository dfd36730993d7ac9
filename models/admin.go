package models

// Admin is one entry of the admin allow-list.
type Admin struct {
	Email string `json:"email" db:"email" gorm:"column:email;type:text;primaryKey;not null"`
}

func (Admin) TableName() string {
	return "admins"
}
