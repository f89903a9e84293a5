package alarm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
)

// DirectMessageProcessor handles DirectMessageSent events: the other
// participant of the chat room is notified about the new message.
type DirectMessageProcessor struct {
	db *gorm.DB
}

// NewDirectMessageProcessor constructs a DirectMessageProcessor.
func NewDirectMessageProcessor(db *gorm.DB) (*DirectMessageProcessor, error) {
	if db == nil {
		return nil, errors.New("alarm: direct message processor requires a database handle")
	}
	return &DirectMessageProcessor{db: db}, nil
}

// EventType implements Processor.
func (p *DirectMessageProcessor) EventType() EventType { return EventDirectMessage }

// ResolveRecipient finds the room participant other than the sender.
func (p *DirectMessageProcessor) ResolveRecipient(ctx context.Context, event Event) (int64, error) {
	ev, err := p.messageEvent(event)
	if err != nil {
		return 0, err
	}

	var participants []models.ChatParticipant
	if err := p.db.WithContext(ctx).
		Where("room_id = ?", ev.RoomID).
		Find(&participants).Error; err != nil {
		return 0, fmt.Errorf("alarm: load room participants: %w", err)
	}

	for _, participant := range participants {
		if participant.UserID != ev.SenderID {
			return participant.UserID, nil
		}
	}
	return 0, fmt.Errorf("%w: room %d has no participant besides sender %d",
		ErrRecipientNotResolved, ev.RoomID, ev.SenderID)
}

// BuildContent renders "<nickname>님이 쪽지를 보냈습니다."
func (p *DirectMessageProcessor) BuildContent(ctx context.Context, event Event) (string, error) {
	ev, err := p.messageEvent(event)
	if err != nil {
		return "", err
	}

	var sender models.User
	if err := p.db.WithContext(ctx).First(&sender, ev.SenderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: sender %d", ErrRecipientNotResolved, ev.SenderID)
		}
		return "", fmt.Errorf("alarm: load sender: %w", err)
	}

	return fmt.Sprintf("%s님이 쪽지를 보냈습니다.", sender.Nickname), nil
}

// BuildMetadata returns the direct message deep-link variant.
func (p *DirectMessageProcessor) BuildMetadata(_ context.Context, event Event) (Metadata, error) {
	ev, err := p.messageEvent(event)
	if err != nil {
		return nil, err
	}

	return DirectMessageMetadata{
		RoomID:    ev.RoomID,
		MessageID: ev.MessageID,
	}, nil
}

func (p *DirectMessageProcessor) messageEvent(event Event) (DirectMessageSent, error) {
	ev, ok := event.(DirectMessageSent)
	if !ok {
		return DirectMessageSent{}, fmt.Errorf("%w: got %T, want alarm.DirectMessageSent", ErrUnsupportedEvent, event)
	}
	return ev, nil
}
