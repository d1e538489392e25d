package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/api/middleware"
	"tubeshare-go/internal/api/response"
	"tubeshare-go/internal/service"
	"tubeshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxVideoSize = 500 * 1024 * 1024 // 500MB
const maxThumbnailSize = 5 * 1024 * 1024

var allowedVideoExts = map[string]string{
	".mp4":  "video/mp4",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
}

var allowedThumbnailExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type VideoHandler struct {
	videoService    *service.VideoService
	favoriteService *service.FavoriteService
}

func NewVideoHandler(videoService *service.VideoService, favoriteService *service.FavoriteService) *VideoHandler {
	return &VideoHandler{videoService: videoService, favoriteService: favoriteService}
}

// ListVideos GET /api/videos
// @Summary List the video catalog
// @Description Paginated catalog with optional title search; authenticated callers get isFavorite per row, and showFavorites=true returns their full favorited set
// @Tags videos
// @Produce json
// @Param page query int false "Page (1-indexed)" default(1)
// @Param limit query int false "Page size" default(10)
// @Param searchTerm query string false "Case-insensitive title substring"
// @Param showFavorites query bool false "Only the caller's favorites"
// @Success 200 {object} dto.CatalogData
// @Router /videos [get]
func (h *VideoHandler) ListVideos(c *gin.Context) {
	page, limit := parsePagination(c)
	searchTerm := c.Query("searchTerm")
	showFavorites := c.Query("showFavorites") == "true"

	identity, authed := middleware.CurrentIdentity(c)

	if showFavorites && authed {
		data, err := h.favoriteService.ListFavoritedVideos(identity.UserID)
		if err != nil {
			logger.Error("List favorited videos failed", zap.Error(err))
			response.InternalError(c, "failed to list favorited videos")
			return
		}
		c.JSON(http.StatusOK, data)
		return
	}

	var viewerID *int64
	if authed {
		viewerID = &identity.UserID
	}

	data, err := h.videoService.ListCatalog(page, limit, searchTerm, viewerID)
	if err != nil {
		logger.Error("List videos failed", zap.Error(err))
		response.InternalError(c, "failed to list videos")
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetVideo GET /api/videos/:id
// @Summary Get one video
// @Description Returns the video with nested comments and the caller's favorite status, and counts the view
// @Tags videos
// @Produce json
// @Param id path int true "Video id"
// @Success 200 {object} dto.VideoView
// @Failure 404 {object} response.ErrorResponse
// @Router /videos/{id} [get]
func (h *VideoHandler) GetVideo(c *gin.Context) {
	videoID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid video id")
		return
	}

	var viewerID *int64
	if identity, ok := middleware.CurrentIdentity(c); ok {
		viewerID = &identity.UserID
	}

	view, err := h.videoService.GetDetail(videoID, viewerID)
	if err != nil {
		handleVideoError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// Upload POST /api/videos/upload
// @Summary Upload a video
// @Description Multipart upload: stores media to the object store and persists the catalog row
// @Tags videos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param video formData file true "Video file"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 201 {object} dto.VideoView
// @Failure 400 {object} response.ErrorResponse
// @Router /videos/upload [post]
func (h *VideoHandler) Upload(c *gin.Context) {
	var req dto.VideoUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	file, err := c.FormFile("video")
	if err != nil {
		response.BadRequest(c, "video file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType, ok := allowedVideoExts[ext]
	if !ok {
		response.BadRequest(c, "unsupported video format, allowed: mp4, avi, mov, mkv, webm")
		return
	}
	if file.Size == 0 || file.Size > maxVideoSize {
		response.BadRequest(c, "invalid video size (must be non-empty, at most 500MB)")
		return
	}

	f, err := file.Open()
	if err != nil {
		response.InternalError(c, "failed to open uploaded video")
		return
	}
	defer f.Close()

	media := service.UploadMedia{Reader: f, Size: file.Size, ContentType: contentType, Ext: ext}

	var thumb *service.UploadMedia
	if thumbFile, err := c.FormFile("thumbnail"); err == nil {
		thumbExt := strings.ToLower(filepath.Ext(thumbFile.Filename))
		thumbType, ok := allowedThumbnailExts[thumbExt]
		if !ok {
			response.BadRequest(c, "unsupported thumbnail format, allowed: jpg, jpeg, png, webp")
			return
		}
		if thumbFile.Size == 0 || thumbFile.Size > maxThumbnailSize {
			response.BadRequest(c, "invalid thumbnail size (must be non-empty, at most 5MB)")
			return
		}

		tf, err := thumbFile.Open()
		if err != nil {
			response.InternalError(c, "failed to open uploaded thumbnail")
			return
		}
		defer tf.Close()
		thumb = &service.UploadMedia{Reader: tf, Size: thumbFile.Size, ContentType: thumbType, Ext: thumbExt}
	}

	identity, _ := middleware.CurrentIdentity(c)

	view, err := h.videoService.Upload(identity.UserID, &req, media, thumb)
	if err != nil {
		logger.Error("Upload video failed", zap.Error(err))
		response.InternalError(c, "failed to upload video")
		return
	}

	c.JSON(http.StatusCreated, view)
}

func handleVideoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrVideoNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Video operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please retry later")
	}
}

// parsePagination reads page and limit, clamping to positive integers and
// falling back to page=1, limit=10 on malformed values.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = service.DefaultPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 100 {
		limit = service.DefaultPageSize
	}
	return page, limit
}
