package alarm

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
)

// Metadata carries the identifiers clients need for deep-linking. One variant
// exists per event type; the union is sealed so adding a type is an exhaustive,
// compile-time-checked change.
type Metadata interface {
	isMetadata()
}

// CommentMetadata deep-links to the commented post.
type CommentMetadata struct {
	PostID    int64            `json:"postId"`
	BoardType models.BoardType `json:"boardType"`
	CommentID int64            `json:"commentId"`
}

func (CommentMetadata) isMetadata() {}

// DirectMessageMetadata deep-links to the chat room.
type DirectMessageMetadata struct {
	RoomID    int64 `json:"roomId"`
	MessageID int64 `json:"messageId"`
}

func (DirectMessageMetadata) isMetadata() {}

func encodeMetadata(meta Metadata) (datatypes.JSON, error) {
	if meta == nil {
		return nil, nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("alarm: marshal metadata: %w", err)
	}
	return datatypes.JSON(data), nil
}
