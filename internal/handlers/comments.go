package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/middleware"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/services"
	appErrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/response"
)

// CommentHandler manages comments on board posts.
type CommentHandler struct {
	comments *services.CommentService
}

func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

// POST /api/posts/:postId/comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}

	var req createCommentRequest
	if !bindAndValidate(c, &req) {
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), services.CreateCommentInput{
		PostID:   postID,
		AuthorID: userID,
		Content:  req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, comment)
}
