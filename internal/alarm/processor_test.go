package alarm

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/database/testutil"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
)

func seedUser(t *testing.T, db *gorm.DB, nickname string) *models.User {
	t.Helper()
	user := models.User{
		Email:    nickname + "@example.com",
		Password: "hashed",
		Nickname: nickname,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedPost(t *testing.T, db *gorm.DB, author *models.User, title string) *models.Post {
	t.Helper()
	post := models.Post{
		AuthorID:  author.ID,
		BoardType: models.BoardFree,
		Title:     title,
		Content:   "본문",
	}
	require.NoError(t, db.Create(&post).Error)
	return &post
}

func TestTruncateTitle(t *testing.T) {
	require.Equal(t, "짧은 제목", truncateTitle("짧은 제목"))

	exactly20 := strings.Repeat("가", 20)
	require.Equal(t, exactly20, truncateTitle(exactly20))

	long := strings.Repeat("가", 30)
	truncated := truncateTitle(long)
	require.Equal(t, strings.Repeat("가", 17)+"...", truncated)
	require.Equal(t, 20, len([]rune(truncated)))
}

func TestCommentProcessorResolvesPostAuthor(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "commenter")
	post := seedPost(t, db, author, "자유게시판 첫 글")

	processor, err := NewCommentProcessor(db)
	require.NoError(t, err)

	event := CommentCreated{CommentID: 99, PostID: post.ID, AuthorID: commenter.ID}

	recipient, err := processor.ResolveRecipient(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, author.ID, recipient)
}

func TestCommentProcessorContentTruncatesLongTitle(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "kim")
	longTitle := strings.Repeat("가", 30)
	post := seedPost(t, db, author, longTitle)

	processor, err := NewCommentProcessor(db)
	require.NoError(t, err)

	event := CommentCreated{CommentID: 1, PostID: post.ID, AuthorID: commenter.ID}

	content, err := processor.BuildContent(context.Background(), event)
	require.NoError(t, err)
	require.Contains(t, content, "kim님이 작성하신")
	require.Contains(t, content, strings.Repeat("가", 17)+"...")
	require.NotContains(t, content, strings.Repeat("가", 18))
	require.Contains(t, content, "에 댓글을 달았습니다.")
}

func TestCommentProcessorContentKeepsShortTitle(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	author := seedUser(t, db, "author")
	commenter := seedUser(t, db, "kim")
	post := seedPost(t, db, author, "짧은 제목")

	processor, err := NewCommentProcessor(db)
	require.NoError(t, err)

	content, err := processor.BuildContent(context.Background(),
		CommentCreated{CommentID: 1, PostID: post.ID, AuthorID: commenter.ID})
	require.NoError(t, err)
	require.Contains(t, content, "\"짧은 제목\"")
}

func TestCommentProcessorMetadataMatchesPost(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	author := seedUser(t, db, "author")
	post := seedPost(t, db, author, "제목")

	processor, err := NewCommentProcessor(db)
	require.NoError(t, err)

	meta, err := processor.BuildMetadata(context.Background(),
		CommentCreated{CommentID: 42, PostID: post.ID, AuthorID: author.ID})
	require.NoError(t, err)

	commentMeta, ok := meta.(CommentMetadata)
	require.True(t, ok)
	require.Equal(t, post.ID, commentMeta.PostID)
	require.Equal(t, models.BoardFree, commentMeta.BoardType)
	require.Equal(t, int64(42), commentMeta.CommentID)
}

func TestCommentProcessorMissingPost(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	commenter := seedUser(t, db, "kim")

	processor, err := NewCommentProcessor(db)
	require.NoError(t, err)

	_, err = processor.ResolveRecipient(context.Background(),
		CommentCreated{CommentID: 1, PostID: 404, AuthorID: commenter.ID})
	require.ErrorIs(t, err, ErrRecipientNotResolved)
}

func TestCommentProcessorRejectsForeignEvent(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	processor, err := NewCommentProcessor(db)
	require.NoError(t, err)

	_, err = processor.ResolveRecipient(context.Background(), DirectMessageSent{MessageID: 1})
	require.ErrorIs(t, err, ErrUnsupportedEvent)
}

func seedRoom(t *testing.T, db *gorm.DB, users ...*models.User) *models.ChatRoom {
	t.Helper()
	room := models.ChatRoom{}
	require.NoError(t, db.Create(&room).Error)
	for _, user := range users {
		require.NoError(t, db.Create(&models.ChatParticipant{RoomID: room.ID, UserID: user.ID}).Error)
	}
	return &room
}

func TestDirectMessageProcessorResolvesOtherParticipant(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	sender := seedUser(t, db, "sender")
	receiver := seedUser(t, db, "receiver")
	room := seedRoom(t, db, sender, receiver)

	processor, err := NewDirectMessageProcessor(db)
	require.NoError(t, err)

	event := DirectMessageSent{MessageID: 1, RoomID: room.ID, SenderID: sender.ID}

	recipient, err := processor.ResolveRecipient(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, receiver.ID, recipient)

	content, err := processor.BuildContent(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, "sender님이 쪽지를 보냈습니다.", content)

	meta, err := processor.BuildMetadata(context.Background(), event)
	require.NoError(t, err)
	dmMeta, ok := meta.(DirectMessageMetadata)
	require.True(t, ok)
	require.Equal(t, room.ID, dmMeta.RoomID)
	require.Equal(t, int64(1), dmMeta.MessageID)
}

func TestDirectMessageProcessorNoOtherParticipant(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	sender := seedUser(t, db, "sender")
	room := seedRoom(t, db, sender) // data inconsistency: nobody else in the room

	processor, err := NewDirectMessageProcessor(db)
	require.NoError(t, err)

	_, err = processor.ResolveRecipient(context.Background(),
		DirectMessageSent{MessageID: 1, RoomID: room.ID, SenderID: sender.ID})
	require.ErrorIs(t, err, ErrRecipientNotResolved)
}

func TestDirectMessageProcessorRejectsForeignEvent(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	processor, err := NewDirectMessageProcessor(db)
	require.NoError(t, err)

	_, err = processor.BuildContent(context.Background(), CommentCreated{CommentID: 1})
	require.ErrorIs(t, err, ErrUnsupportedEvent)
}
