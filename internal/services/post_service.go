package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
	apperrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
)

// CreatePostInput defines attributes required to create a board post.
type CreatePostInput struct {
	AuthorID  int64
	BoardType models.BoardType
	Title     string
	Content   string
}

// PostService manages board posts. Posting itself emits no alarms; posts exist
// here as the target of the comment flow.
type PostService struct {
	db *gorm.DB
}

// NewPostService constructs a PostService.
func NewPostService(db *gorm.DB) (*PostService, error) {
	if db == nil {
		return nil, errors.New("post service: db is required")
	}
	return &PostService{db: db}, nil
}

// Create persists a new post.
func (s *PostService) Create(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	ctx = ensureContext(ctx)

	if !input.BoardType.Valid() {
		return nil, apperrors.NewBadRequest("unknown board type")
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}

	post := models.Post{
		AuthorID:  input.AuthorID,
		BoardType: input.BoardType,
		Title:     title,
		Content:   input.Content,
	}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, fmt.Errorf("post service: create post: %w", err)
	}
	return &post, nil
}

// Get loads a single post by id.
func (s *PostService) Get(ctx context.Context, postID int64) (*models.Post, error) {
	ctx = ensureContext(ctx)

	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("post service: load post: %w", err)
	}
	return &post, nil
}
