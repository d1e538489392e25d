package handler

import (
	"errors"
	"net/http"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/api/middleware"
	"tubeshare-go/internal/api/response"
	"tubeshare-go/internal/service"
	"tubeshare-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	identityService *service.IdentityService
}

func NewUserHandler(identityService *service.IdentityService) *UserHandler {
	return &UserHandler{identityService: identityService}
}

// GetProfile GET /api/users/profile
// @Summary Get the caller's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileView
// @Failure 401 {object} response.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	identity, _ := middleware.CurrentIdentity(c)

	view, err := h.identityService.GetProfile(identity.UserID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// UpdateProfile POST /api/users/updateProfile
// @Summary Update the caller's display name
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileUpdateRequest true "New display name"
// @Success 200 {object} dto.ProfileView
// @Failure 400 {object} response.ErrorResponse
// @Router /users/updateProfile [post]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	identity, _ := middleware.CurrentIdentity(c)

	view, err := h.identityService.UpdateDisplayName(identity.UserID, req.DisplayName)
	if err != nil {
		handleUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "operation failed, please retry later")
	}
}
