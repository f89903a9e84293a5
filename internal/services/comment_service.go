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

// CreateCommentInput defines attributes required to create a comment.
type CreateCommentInput struct {
	PostID   int64
	AuthorID int64
	Content  string
}

// CommentService creates comments on posts. A successful create triggers the
// alarm pipeline; the comment's own commit is never affected by the pipeline.
type CommentService struct {
	db       *gorm.DB
	pipeline *alarm.Pipeline
}

// NewCommentService constructs a CommentService. The pipeline may be nil, in
// which case comments emit no alarms.
func NewCommentService(db *gorm.DB, pipeline *alarm.Pipeline) (*CommentService, error) {
	if db == nil {
		return nil, errors.New("comment service: db is required")
	}
	return &CommentService{db: db, pipeline: pipeline}, nil
}

// Create persists a comment and, once committed, dispatches a CommentCreated
// event at the end of the success path.
func (s *CommentService) Create(ctx context.Context, input CreateCommentInput) (*models.Comment, error) {
	ctx = ensureContext(ctx)

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, apperrors.NewBadRequest("content is required")
	}

	var postCount int64
	if err := s.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", input.PostID).
		Count(&postCount).Error; err != nil {
		return nil, fmt.Errorf("comment service: check post: %w", err)
	}
	if postCount == 0 {
		return nil, apperrors.ErrNotFound
	}

	comment := models.Comment{
		PostID:   input.PostID,
		AuthorID: input.AuthorID,
		Content:  content,
	}
	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("comment service: create comment: %w", err)
	}

	if s.pipeline != nil {
		s.pipeline.Dispatch(ctx, alarm.CommentCreated{
			CommentID: comment.ID,
			PostID:    comment.PostID,
			AuthorID:  comment.AuthorID,
		})
	}

	return &comment, nil
}
