package handler

import (
	"net/http"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/api/response"
	"tubeshare-go/internal/service"
	"tubeshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchVideos GET /api/search/videos
// @Summary Full-text video search
// @Description Searches titles and descriptions via Elasticsearch, falling back to the database when the index is unavailable
// @Tags search
// @Produce json
// @Param q query string true "Search query"
// @Param page query int false "Page (1-indexed)" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.SearchVideosData
// @Failure 400 {object} response.ErrorResponse
// @Router /search/videos [get]
func (h *SearchHandler) SearchVideos(c *gin.Context) {
	var req dto.SearchVideosRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	data, err := h.searchService.SearchVideos(&req)
	if err != nil {
		logger.Error("Search videos failed", zap.String("query", req.Query), zap.Error(err))
		response.InternalError(c, "search failed, please retry later")
		return
	}

	c.JSON(http.StatusOK, data)
}
