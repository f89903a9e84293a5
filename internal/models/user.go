package models

// User represents a registered community member.
type User struct {
	BaseModel

	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
	Name     string `gorm:"type:varchar(64)" json:"name"`
	Nickname string `gorm:"type:varchar(64);uniqueIndex;not null" json:"nickname"`
}
