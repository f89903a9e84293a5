package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/alarm"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/live"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/middleware"
	appErrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/logger"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/response"
)

// AlarmHandler serves a user's alarm inbox and the live stream endpoint.
type AlarmHandler struct {
	store           *alarm.Store
	live            *live.Registry
	defaultPageSize int
}

func NewAlarmHandler(store *alarm.Store, liveReg *live.Registry, defaultPageSize int) *AlarmHandler {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &AlarmHandler{store: store, live: liveReg, defaultPageSize: defaultPageSize}
}

// GET /api/alarms?page=&size=
func (h *AlarmHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	page := parseIntQuery(c, "page", 0)
	size := parseIntQuery(c, "size", h.defaultPageSize)

	result, err := h.store.FindPage(c.Request.Context(), userID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	totalPages := 0
	if result.Size > 0 {
		totalPages = int((result.Total + int64(result.Size) - 1) / int64(result.Size))
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Items, &response.Meta{
		Page:       result.Page,
		Size:       result.Size,
		Total:      result.Total,
		TotalPages: totalPages,
		HasNext:    result.HasNext,
	})
}

// GET /api/alarms/unread-count
func (h *AlarmHandler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	count, err := h.store.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unreadCount": count})
}

// POST /api/alarms/:alarmId/read
func (h *AlarmHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	alarmID, ok := parseIDParam(c, "alarmId")
	if !ok {
		return
	}

	if err := h.store.MarkRead(c.Request.Context(), userID, alarmID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// POST /api/alarms/read-all
func (h *AlarmHandler) MarkAllRead(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.store.MarkAllRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GET /api/alarms/stream
//
// Browsers cannot set Authorization headers on WebSocket upgrades, so the
// auth middleware also accepts the token query parameter for this route.
func (h *AlarmHandler) Stream(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.live.Serve(userID, c.Writer, c.Request); err != nil {
		// The upgrader already wrote the handshake failure to the client.
		logger.Warn("alarm stream upgrade failed", zap.Int64("user_id", userID), zap.Error(err))
		return
	}
}
