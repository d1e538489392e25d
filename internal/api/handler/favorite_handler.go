package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tubeshare-go/internal/api/middleware"
	"tubeshare-go/internal/api/response"
	"tubeshare-go/internal/service"
	"tubeshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Toggle POST /api/videos/:id/favorite
// @Summary Toggle a favorite
// @Description Adds the video to the caller's favorites if absent, removes it if present
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param id path int true "Video id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} response.ErrorResponse
// @Router /videos/{id}/favorite [post]
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	identity, _ := middleware.CurrentIdentity(c)

	added, err := h.favoriteService.Toggle(identity.UserID, videoID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVideoNotFound):
			response.NotFound(c, err.Error())
		default:
			logger.Error("Toggle favorite failed",
				zap.Int64("userID", identity.UserID),
				zap.Int64("videoID", videoID),
				zap.Error(err))
			response.InternalError(c, "failed to toggle favorite")
		}
		return
	}

	message := "Video removed from favorites"
	if added {
		message = "Video added to favorites"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}
