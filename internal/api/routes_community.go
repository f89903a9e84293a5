package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/alarm"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/handlers"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/services"
)

// registerCommunityRoutes mounts the alarm source operations: posts, comments
// and direct message chat.
func registerCommunityRoutes(api *gin.RouterGroup, db *gorm.DB, pipeline *alarm.Pipeline) error {
	postSvc, err := services.NewPostService(db)
	if err != nil {
		return err
	}
	commentSvc, err := services.NewCommentService(db, pipeline)
	if err != nil {
		return err
	}
	chatSvc, err := services.NewChatService(db, pipeline)
	if err != nil {
		return err
	}

	postHandler := handlers.NewPostHandler(postSvc)
	commentHandler := handlers.NewCommentHandler(commentSvc)
	chatHandler := handlers.NewChatHandler(chatSvc)

	posts := api.Group("/posts")
	{
		posts.POST("", postHandler.Create)
		posts.GET("/:postId", postHandler.Get)
		posts.POST("/:postId/comments", commentHandler.Create)
	}

	chat := api.Group("/chat")
	{
		chat.POST("/rooms", chatHandler.CreateRoom)
		chat.POST("/rooms/:roomId/messages", chatHandler.SendMessage)
	}
	return nil
}
