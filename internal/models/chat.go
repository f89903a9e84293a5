package models

// ChatRoom is a direct-message room between two users.
type ChatRoom struct {
	BaseModel

	Participants []ChatParticipant `gorm:"foreignKey:RoomID" json:"participants,omitempty"`
}

// ChatParticipant links a user to a chat room.
type ChatParticipant struct {
	BaseModel

	RoomID int64 `gorm:"index;not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID int64 `gorm:"index;not null;uniqueIndex:idx_room_user" json:"user_id"`
}

// ChatMessage is a single direct message inside a room.
type ChatMessage struct {
	BaseModel

	RoomID   int64  `gorm:"index;not null" json:"room_id"`
	SenderID int64  `gorm:"index;not null" json:"sender_id"`
	Content  string `gorm:"type:text;not null" json:"content"`
}
