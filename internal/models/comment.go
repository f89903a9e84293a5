package models

// Comment represents a comment left on a board post.
type Comment struct {
	BaseModel

	PostID   int64  `gorm:"index;not null" json:"post_id"`
	AuthorID int64  `gorm:"index;not null" json:"author_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
}
