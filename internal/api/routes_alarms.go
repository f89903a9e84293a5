package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/alarm"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/app"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/handlers"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/live"
)

func registerAlarmRoutes(api *gin.RouterGroup, db *gorm.DB, liveReg *live.Registry, cfg *app.Config) error {
	store, err := alarm.NewStore(db)
	if err != nil {
		return err
	}
	handler := handlers.NewAlarmHandler(store, liveReg, cfg.Alarm.DefaultPageSize)

	alarms := api.Group("/alarms")
	{
		alarms.GET("", handler.List)
		alarms.GET("/unread-count", handler.UnreadCount)
		alarms.GET("/stream", handler.Stream)
		alarms.POST("/read-all", handler.MarkAllRead)
		alarms.POST("/:alarmId/read", handler.MarkRead)
	}
	return nil
}
