package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	iauth "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/auth"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/handlers"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/services"
)

func registerAuthRoutes(r *gin.Engine, db *gorm.DB, jwt *iauth.JWTService) error {
	users, err := services.NewUserService(db, jwt)
	if err != nil {
		return err
	}
	handler := handlers.NewAuthHandler(users)

	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", handler.Signup)
		auth.POST("/login", handler.Login)
	}
	return nil
}
