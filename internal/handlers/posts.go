package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/middleware"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/models"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/internal/services"
	appErrors "github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/errors"
	"github.com/prgrms-aibe-devcourse/AIBE1-FinalProject-Team01-BE-sub002/pkg/response"
)

// PostHandler manages board posts.
type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

type createPostRequest struct {
	BoardType string `json:"board_type" validate:"required"`
	Title     string `json:"title" validate:"required,max=255"`
	Content   string `json:"content"`
}

// POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req createPostRequest
	if !bindAndValidate(c, &req) {
		return
	}

	post, err := h.posts.Create(c.Request.Context(), services.CreatePostInput{
		AuthorID:  userID,
		BoardType: models.BoardType(req.BoardType),
		Title:     req.Title,
		Content:   req.Content,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, post)
}

// GET /api/posts/:postId
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := parseIDParam(c, "postId")
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, post)
}
