package alarm

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
)

// CommentProcessor handles CommentCreated events: the post author is notified
// that someone commented on their post.
type CommentProcessor struct {
	db *gorm.DB
}

// NewCommentProcessor constructs a CommentProcessor.
func NewCommentProcessor(db *gorm.DB) (*CommentProcessor, error) {
	if db == nil {
		return nil, errors.New("alarm: comment processor requires a database handle")
	}
	return &CommentProcessor{db: db}, nil
}

// EventType implements Processor.
func (p *CommentProcessor) EventType() EventType { return EventComment }

// ResolveRecipient loads the commented post and returns its author.
func (p *CommentProcessor) ResolveRecipient(ctx context.Context, event Event) (int64, error) {
	ev, err := p.commentEvent(event)
	if err != nil {
		return 0, err
	}

	post, err := p.loadPost(ctx, ev.PostID)
	if err != nil {
		return 0, err
	}
	return post.AuthorID, nil
}

// BuildContent renders "<nickname>님이 작성하신 "<title>"에 댓글을 달았습니다."
// with the post title truncated for long titles.
func (p *CommentProcessor) BuildContent(ctx context.Context, event Event) (string, error) {
	ev, err := p.commentEvent(event)
	if err != nil {
		return "", err
	}

	post, err := p.loadPost(ctx, ev.PostID)
	if err != nil {
		return "", err
	}

	var commenter models.User
	if err := p.db.WithContext(ctx).First(&commenter, ev.AuthorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: commenter %d", ErrRecipientNotResolved, ev.AuthorID)
		}
		return "", fmt.Errorf("alarm: load commenter: %w", err)
	}

	return fmt.Sprintf("%s님이 작성하신 \"%s\"에 댓글을 달았습니다.",
		commenter.Nickname, truncateTitle(post.Title)), nil
}

// BuildMetadata returns the comment deep-link variant.
func (p *CommentProcessor) BuildMetadata(ctx context.Context, event Event) (Metadata, error) {
	ev, err := p.commentEvent(event)
	if err != nil {
		return nil, err
	}

	post, err := p.loadPost(ctx, ev.PostID)
	if err != nil {
		return nil, err
	}

	return CommentMetadata{
		PostID:    post.ID,
		BoardType: post.BoardType,
		CommentID: ev.CommentID,
	}, nil
}

func (p *CommentProcessor) commentEvent(event Event) (CommentCreated, error) {
	ev, ok := event.(CommentCreated)
	if !ok {
		return CommentCreated{}, fmt.Errorf("%w: got %T, want alarm.CommentCreated", ErrUnsupportedEvent, event)
	}
	return ev, nil
}

func (p *CommentProcessor) loadPost(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post
	if err := p.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post %d", ErrRecipientNotResolved, postID)
		}
		return nil, fmt.Errorf("alarm: load post: %w", err)
	}
	return &post, nil
}
