package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/middleware"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/services"
	appErrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/response"
)

// ChatHandler manages direct message rooms and messages.
type ChatHandler struct {
	chat *services.ChatService
}

func NewChatHandler(chat *services.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

type createRoomRequest struct {
	PartnerID int64 `json:"partner_id" validate:"required,gt=0"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// POST /api/chat/rooms
func (h *ChatHandler) CreateRoom(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req createRoomRequest
	if !bindAndValidate(c, &req) {
		return
	}

	room, err := h.chat.CreateRoom(c.Request.Context(), services.CreateRoomInput{
		UserID:    userID,
		PartnerID: req.PartnerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, room)
}

// POST /api/chat/rooms/:roomId/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	roomID, ok := parseIDParam(c, "roomId")
	if !ok {
		return
	}

	var req sendMessageRequest
	if !bindAndValidate(c, &req) {
		return
	}

	message, err := h.chat.SendMessage(c.Request.Context(), services.SendMessageInput{
		RoomID:   roomID,
		SenderID: userID,
		Content:  req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, message)
}
