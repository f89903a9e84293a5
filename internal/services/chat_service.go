package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/alarm"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
	apperrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
)

// CreateRoomInput identifies the two participants of a direct message room.
type CreateRoomInput struct {
	UserID    int64
	PartnerID int64
}

// SendMessageInput defines attributes required to send a direct message.
type SendMessageInput struct {
	RoomID   int64
	SenderID int64
	Content  string
}

// ChatService manages direct message rooms and messages. Sending a message
// triggers the alarm pipeline after the message is committed.
type ChatService struct {
	db       *gorm.DB
	pipeline *alarm.Pipeline
}

// NewChatService constructs a ChatService. The pipeline may be nil, in which
// case messages emit no alarms.
func NewChatService(db *gorm.DB, pipeline *alarm.Pipeline) (*ChatService, error) {
	if db == nil {
		return nil, errors.New("chat service: db is required")
	}
	return &ChatService{db: db, pipeline: pipeline}, nil
}

// CreateRoom returns the existing room between the two users or creates a new
// one. A user cannot open a room with themselves.
func (s *ChatService) CreateRoom(ctx context.Context, input CreateRoomInput) (*models.ChatRoom, error) {
	ctx = ensureContext(ctx)

	if input.PartnerID == input.UserID {
		return nil, apperrors.NewBadRequest("cannot open a chat room with yourself")
	}

	var partnerCount int64
	if err := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", input.PartnerID).
		Count(&partnerCount).Error; err != nil {
		return nil, fmt.Errorf("chat service: check partner: %w", err)
	}
	if partnerCount == 0 {
		return nil, apperrors.ErrNotFound
	}

	if room, err := s.findRoomBetween(ctx, input.UserID, input.PartnerID); err != nil {
		return nil, err
	} else if room != nil {
		return room, nil
	}

	room := models.ChatRoom{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return fmt.Errorf("create room: %w", err)
		}
		participants := []models.ChatParticipant{
			{RoomID: room.ID, UserID: input.UserID},
			{RoomID: room.ID, UserID: input.PartnerID},
		}
		if err := tx.Create(&participants).Error; err != nil {
			return fmt.Errorf("create participants: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("chat service: %w", err)
	}
	return &room, nil
}

// SendMessage persists a message in a room the sender belongs to and, once
// committed, dispatches a DirectMessageSent event.
func (s *ChatService) SendMessage(ctx context.Context, input SendMessageInput) (*models.ChatMessage, error) {
	ctx = ensureContext(ctx)

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperrors.NewBadRequest("content is required")
	}

	var memberCount int64
	if err := s.db.WithContext(ctx).
		Model(&models.ChatParticipant{}).
		Where("room_id = ? AND user_id = ?", input.RoomID, input.SenderID).
		Count(&memberCount).Error; err != nil {
		return nil, fmt.Errorf("chat service: check participant: %w", err)
	}
	if memberCount == 0 {
		return nil, apperrors.ErrForbidden
	}

	message := models.ChatMessage{
		RoomID:   input.RoomID,
		SenderID: input.SenderID,
		Content:  content,
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, fmt.Errorf("chat service: create message: %w", err)
	}

	if s.pipeline != nil {
		s.pipeline.Dispatch(ctx, alarm.DirectMessageSent{
			MessageID: message.ID,
			RoomID:    message.RoomID,
			SenderID:  message.SenderID,
		})
	}

	return &message, nil
}

// findRoomBetween looks for a room whose participant set is exactly the two
// given users.
func (s *ChatService) findRoomBetween(ctx context.Context, a, b int64) (*models.ChatRoom, error) {
	var roomIDs []int64
	err := s.db.WithContext(ctx).
		Model(&models.ChatParticipant{}).
		Select("room_id").
		Where("user_id IN ?", []int64{a, b}).
		Group("room_id").
		Having("COUNT(DISTINCT user_id) = 2").
		Find(&roomIDs).Error
	if err != nil {
		return nil, fmt.Errorf("chat service: find room: %w", err)
	}
	if len(roomIDs) == 0 {
		return nil, nil
	}

	var room models.ChatRoom
	if err := s.db.WithContext(ctx).First(&room, roomIDs[0]).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("chat service: load room: %w", err)
	}
	return &room, nil
}
