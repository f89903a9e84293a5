package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/alarm"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/auth"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
)

func newTestJWT(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(auth.JWTConfig{
		Secret: "service-test-secret",
		Issuer: "amateurs-test",
		TTL:    time.Minute,
	})
	require.NoError(t, err)
	return svc
}

func seedServiceUser(t *testing.T, db *gorm.DB, nickname string) *models.User {
	t.Helper()
	user := models.User{
		Email:    nickname + "@example.com",
		Password: "hashed",
		Name:     nickname,
		Nickname: nickname,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedServicePost(t *testing.T, db *gorm.DB, author *models.User, title string) *models.Post {
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

// newAlarmPipeline wires the real registry, processors and store with no live
// pusher, the way the server does minus the websocket side.
func newAlarmPipeline(t *testing.T, db *gorm.DB) *alarm.Pipeline {
	t.Helper()

	commentProc, err := alarm.NewCommentProcessor(db)
	require.NoError(t, err)
	dmProc, err := alarm.NewDirectMessageProcessor(db)
	require.NoError(t, err)

	registry, err := alarm.NewRegistry(commentProc, dmProc)
	require.NoError(t, err)

	store, err := alarm.NewStore(db)
	require.NoError(t, err)

	pipeline, err := alarm.NewPipeline(registry, store, nil)
	require.NoError(t, err)
	return pipeline
}

// newEmptyPipeline has no processors registered, so every dispatch fails
// inside the pipeline. Useful to assert source operations stay unaffected.
func newEmptyPipeline(t *testing.T, db *gorm.DB) *alarm.Pipeline {
	t.Helper()

	registry, err := alarm.NewRegistry()
	require.NoError(t, err)
	store, err := alarm.NewStore(db)
	require.NoError(t, err)

	pipeline, err := alarm.NewPipeline(registry, store, nil)
	require.NoError(t, err)
	return pipeline
}

func alarmsFor(t *testing.T, db *gorm.DB, userID int64) []models.Alarm {
	t.Helper()
	var alarms []models.Alarm
	require.NoError(t, db.Where("user_id = ?", userID).Order("id").Find(&alarms).Error)
	return alarms
}
