package alarm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
	apperrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/metrics"
)

// AlarmDTO is the wire representation of a persisted alarm, shared by the
// listing endpoints and the live push frame.
type AlarmDTO struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"-"`
	Type     EventType       `json:"type"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	IsRead   bool            `json:"isRead"`
	SentAt   time.Time       `json:"sentAt"`
}

// CreateAlarmInput defines the attributes required to persist an alarm.
type CreateAlarmInput struct {
	UserID   int64
	Type     EventType
	Content  string
	Metadata Metadata
}

// Page is one page of a recipient's alarms, most recent first.
type Page struct {
	Items   []AlarmDTO `json:"items"`
	Page    int        `json:"page"`
	Size    int        `json:"size"`
	Total   int64      `json:"total"`
	HasNext bool       `json:"hasNext"`
}

// Store persists alarms append-only and serves recipient-scoped queries. Reads
// never mutate; the only write after creation is the idempotent is_read flip.
type Store struct {
	db *gorm.DB
}

// NewStore constructs a Store.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("alarm: store requires a database handle")
	}
	return &Store{db: db}, nil
}

// Create appends a single alarm and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, input CreateAlarmInput) (*AlarmDTO, error) {
	if input.UserID <= 0 {
		return nil, errors.New("alarm: recipient user id is required")
	}
	if input.Content == "" {
		return nil, errors.New("alarm: content must not be empty")
	}

	meta, err := encodeMetadata(input.Metadata)
	if err != nil {
		return nil, err
	}

	row := models.Alarm{
		UserID:  input.UserID,
		Type:    string(input.Type),
		Title:   input.Type.Title(),
		Content: input.Content,
		Meta:    meta,
	}

	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("alarm: create: %w", err)
	}

	metrics.AlarmsCreated.WithLabelValues(row.Type).Inc()

	dto := mapAlarm(row)
	return &dto, nil
}

// FindPage returns one page of the user's alarms ordered by sent_at descending.
// A user with no alarms gets an empty page, not an error.
func (s *Store) FindPage(ctx context.Context, userID int64, page, size int) (*Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}

	query := s.db.WithContext(ctx).Model(&models.Alarm{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("alarm: count: %w", err)
	}

	var rows []models.Alarm
	if err := query.
		Order("sent_at DESC, id DESC").
		Limit(size).
		Offset(page * size).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("alarm: find page: %w", err)
	}

	items := make([]AlarmDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapAlarm(row))
	}

	return &Page{
		Items:   items,
		Page:    page,
		Size:    size,
		Total:   total,
		HasNext: int64((page+1)*size) < total,
	}, nil
}

// UnreadCount returns the number of unread alarms for the user.
func (s *Store) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Alarm{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("alarm: unread count: %w", err)
	}
	return count, nil
}

// MarkRead flips a single alarm to read. Re-applying to an already-read alarm
// is a no-op; only a missing alarm is an error.
func (s *Store) MarkRead(ctx context.Context, userID, alarmID int64) error {
	result := s.db.WithContext(ctx).
		Model(&models.Alarm{}).
		Where("id = ? AND user_id = ? AND is_read = ?", alarmID, userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return fmt.Errorf("alarm: mark read: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&models.Alarm{}).
			Where("id = ? AND user_id = ?", alarmID, userID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("alarm: mark read: %w", err)
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}
	}
	return nil
}

// MarkAllRead flips every unread alarm of the user in a single set-based
// update. Idempotent: a second call affects zero rows and succeeds.
func (s *Store) MarkAllRead(ctx context.Context, userID int64) error {
	if err := s.db.WithContext(ctx).
		Model(&models.Alarm{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return fmt.Errorf("alarm: mark all read: %w", err)
	}
	return nil
}

func mapAlarm(row models.Alarm) AlarmDTO {
	return AlarmDTO{
		ID:       row.ID,
		UserID:   row.UserID,
		Type:     EventType(row.Type),
		Title:    row.Title,
		Content:  row.Content,
		Metadata: json.RawMessage(row.Meta),
		IsRead:   row.IsRead,
		SentAt:   row.SentAt,
	}
}
