package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/api/middleware"
	"tubeshare-go/internal/api/response"
	"tubeshare-go/internal/service"
	"tubeshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create POST /api/videos/:id/comments
// @Summary Post a comment
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video id"
// @Param request body dto.CommentCreateRequest true "Comment body"
// @Success 201 {object} dto.CommentView
// @Failure 404 {object} response.ErrorResponse
// @Router /videos/{id}/comments [post]
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	var req dto.CommentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	identity, _ := middleware.CurrentIdentity(c)

	view, err := h.commentService.Create(identity.UserID, videoID, req.Content)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// ListByVideo GET /api/videos/:id/comments
// @Summary List a video's comments
// @Description Comments ranked by likes descending, then dislikes ascending
// @Tags comments
// @Produce json
// @Param id path int true "Video id"
// @Success 200 {array} dto.CommentView
// @Failure 404 {object} response.ErrorResponse
// @Router /videos/{id}/comments [get]
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	views, err := h.commentService.ListByVideo(videoID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// Like POST /api/comments/:id/like
// @Summary Like a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment id"
// @Success 200 {object} map[string]int64
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{id}/like [post]
func (h *CommentHandler) Like(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	likes, err := h.commentService.Like(commentID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"likes": likes})
}

// Dislike POST /api/comments/:id/dislike
// @Summary Dislike a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment id"
// @Success 200 {object} map[string]int64
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{id}/dislike [post]
func (h *CommentHandler) Dislike(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	dislikes, err := h.commentService.Dislike(commentID)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dislikes": dislikes})
}

// Delete DELETE /api/comments/:id
// @Summary Delete own comment
// @Description Only the comment's author may delete it
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)

	if err := h.commentService.Delete(commentID, identity.UserID); err != nil {
		handleCommentError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

func handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrCommentNoPermission):
		response.Forbidden(c, err.Error())
	default:
		logger.Error("Comment operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please retry later")
	}
}
