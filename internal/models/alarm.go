package models

import (
	"time"

	"gorm.io/datatypes"
)

// Alarm is a persisted in-app notification for a single recipient. Rows are
// append-only; the only permitted mutation is the is_read false→true flip.
type Alarm struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"index;not null" json:"user_id"`

	Type    string         `gorm:"type:varchar(32);not null" json:"type"`
	Title   string         `gorm:"type:varchar(255);not null" json:"title"`
	Content string         `gorm:"type:text;not null" json:"content"`
	Meta    datatypes.JSON `gorm:"column:metadata" json:"metadata"`

	IsRead bool      `gorm:"default:false;index" json:"is_read"`
	SentAt time.Time `gorm:"autoCreateTime;index" json:"sent_at"`
}
