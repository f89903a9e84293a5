package models

// BoardType identifies the community board a post belongs to.
type BoardType string

// Known boards. The set is closed; clients deep-link with it.
const (
	BoardFree    BoardType = "FREE"
	BoardGather  BoardType = "GATHER"
	BoardMarket  BoardType = "MARKET"
	BoardIT      BoardType = "IT"
	BoardProject BoardType = "PROJECT"
)

// Valid reports whether the board type is one of the known boards.
func (b BoardType) Valid() bool {
	switch b {
	case BoardFree, BoardGather, BoardMarket, BoardIT, BoardProject:
		return true
	}
	return false
}

// Post represents a board post authored by a user.
type Post struct {
	BaseModel

	AuthorID  int64     `gorm:"index;not null" json:"author_id"`
	BoardType BoardType `gorm:"type:varchar(32);index;not null" json:"board_type"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
}
