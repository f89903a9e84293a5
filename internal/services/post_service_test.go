package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/database/testutil"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
	apperrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
)

func TestPostServiceCreateAndGet(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	author := seedServiceUser(t, db, "글쓴이")

	svc, err := NewPostService(db)
	require.NoError(t, err)

	post, err := svc.Create(context.Background(), CreatePostInput{
		AuthorID:  author.ID,
		BoardType: models.BoardGather,
		Title:     "스터디 모집",
		Content:   "주 2회 온라인",
	})
	require.NoError(t, err)
	require.NotZero(t, post.ID)

	loaded, err := svc.Get(context.Background(), post.ID)
	require.NoError(t, err)
	require.Equal(t, "스터디 모집", loaded.Title)
	require.Equal(t, models.BoardGather, loaded.BoardType)
}

func TestPostServiceCreateInvalidBoard(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	author := seedServiceUser(t, db, "글쓴이")

	svc, err := NewPostService(db)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CreatePostInput{
		AuthorID:  author.ID,
		BoardType: models.BoardType("NOPE"),
		Title:     "제목",
		Content:   "내용",
	})
	require.Error(t, err)
}

func TestPostServiceGetUnknown(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	svc, err := NewPostService(db)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 777)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
