package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/database/testutil"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
	apperrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
)

func newChatService(t *testing.T, db *gorm.DB) *ChatService {
	t.Helper()
	svc, err := NewChatService(db, newAlarmPipeline(t, db))
	require.NoError(t, err)
	return svc
}

func TestChatServiceCreateRoomReusesExisting(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	alice := seedServiceUser(t, db, "앨리스")
	bob := seedServiceUser(t, db, "밥")
	svc := newChatService(t, db)

	room, err := svc.CreateRoom(context.Background(), CreateRoomInput{UserID: alice.ID, PartnerID: bob.ID})
	require.NoError(t, err)
	require.NotZero(t, room.ID)

	var participants []models.ChatParticipant
	require.NoError(t, db.Where("room_id = ?", room.ID).Find(&participants).Error)
	require.Len(t, participants, 2)

	// Opening from the other side returns the same room.
	again, err := svc.CreateRoom(context.Background(), CreateRoomInput{UserID: bob.ID, PartnerID: alice.ID})
	require.NoError(t, err)
	require.Equal(t, room.ID, again.ID)
}

func TestChatServiceCreateRoomValidation(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	alice := seedServiceUser(t, db, "앨리스")
	svc := newChatService(t, db)

	_, err := svc.CreateRoom(context.Background(), CreateRoomInput{UserID: alice.ID, PartnerID: alice.ID})
	require.Error(t, err)

	_, err = svc.CreateRoom(context.Background(), CreateRoomInput{UserID: alice.ID, PartnerID: 999})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChatServiceSendMessageTriggersAlarm(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	alice := seedServiceUser(t, db, "앨리스")
	bob := seedServiceUser(t, db, "밥")
	svc := newChatService(t, db)

	room, err := svc.CreateRoom(context.Background(), CreateRoomInput{UserID: alice.ID, PartnerID: bob.ID})
	require.NoError(t, err)

	message, err := svc.SendMessage(context.Background(), SendMessageInput{
		RoomID:   room.ID,
		SenderID: alice.ID,
		Content:  "안녕하세요",
	})
	require.NoError(t, err)
	require.NotZero(t, message.ID)

	alarms := alarmsFor(t, db, bob.ID)
	require.Len(t, alarms, 1)
	require.Equal(t, "DIRECT_MESSAGE", alarms[0].Type)
	require.Equal(t, "앨리스님이 쪽지를 보냈습니다.", alarms[0].Content)

	require.Empty(t, alarmsFor(t, db, alice.ID))
}

func TestChatServiceSendMessageNonParticipant(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	alice := seedServiceUser(t, db, "앨리스")
	bob := seedServiceUser(t, db, "밥")
	eve := seedServiceUser(t, db, "이브")
	svc := newChatService(t, db)

	room, err := svc.CreateRoom(context.Background(), CreateRoomInput{UserID: alice.ID, PartnerID: bob.ID})
	require.NoError(t, err)

	_, err = svc.SendMessage(context.Background(), SendMessageInput{
		RoomID:   room.ID,
		SenderID: eve.ID,
		Content:  "끼어들기",
	})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestChatServiceSendMessageSurvivesPipelineFailure(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	alice := seedServiceUser(t, db, "앨리스")
	bob := seedServiceUser(t, db, "밥")

	full := newChatService(t, db)
	room, err := full.CreateRoom(context.Background(), CreateRoomInput{UserID: alice.ID, PartnerID: bob.ID})
	require.NoError(t, err)

	svc, err := NewChatService(db, newEmptyPipeline(t, db))
	require.NoError(t, err)

	message, err := svc.SendMessage(context.Background(), SendMessageInput{
		RoomID:   room.ID,
		SenderID: alice.ID,
		Content:  "쪽지는 남는다",
	})
	require.NoError(t, err)
	require.NotZero(t, message.ID)

	require.Empty(t, alarmsFor(t, db, bob.ID))
}
