package router

import (
	"tubeshare-go/internal/api/handler"
	"tubeshare-go/internal/api/middleware"
	"tubeshare-go/internal/service"

	"github.com/gin-gonic/gin"
)

// Setup registers all business routes.
func Setup(
	r *gin.Engine,
	identityService *service.IdentityService,
	videoHandler *handler.VideoHandler,
	favoriteHandler *handler.FavoriteHandler,
	commentHandler *handler.CommentHandler,
	userHandler *handler.UserHandler,
	searchHandler *handler.SearchHandler,
) {
	authRequired := middleware.AuthRequired(identityService)
	authOptional := middleware.AuthOptional(identityService)
	rateLimited := middleware.RateLimit()

	api := r.Group("/api")

	videos := api.Group("/videos")
	{
		// Catalog and detail are public; a token, when present, annotates
		// favorite status and resolves showFavorites.
		videos.GET("", authOptional, videoHandler.ListVideos)
		videos.GET("/:id", authOptional, videoHandler.GetVideo)
		videos.GET("/:id/comments", commentHandler.ListByVideo)

		videosAuth := videos.Group("", authRequired)
		{
			videosAuth.POST("/upload", rateLimited, videoHandler.Upload)
			videosAuth.POST("/:id/favorite", rateLimited, favoriteHandler.Toggle)
			videosAuth.POST("/:id/comments", rateLimited, commentHandler.Create)
		}
	}

	comments := api.Group("/comments", authRequired)
	{
		comments.POST("/:id/like", rateLimited, commentHandler.Like)
		comments.POST("/:id/dislike", rateLimited, commentHandler.Dislike)
		comments.DELETE("/:id", rateLimited, commentHandler.Delete)
	}

	users := api.Group("/users", authRequired)
	{
		users.GET("/profile", userHandler.GetProfile)
		users.POST("/updateProfile", rateLimited, userHandler.UpdateProfile)
	}

	search := api.Group("/search")
	{
		search.GET("/videos", searchHandler.SearchVideos)
	}
}
