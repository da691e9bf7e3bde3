package server

import (
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/savvy/internal/config"
	"github.com/justsurfingit/savvy/internal/handlers"
	"go.uber.org/zap"
)

type Handlers struct {
	Users  *handlers.UserHandler
	Posts  *handlers.PostHandler
	Tags   *handlers.TagHandler
	Images *handlers.ImageHandler
}

func NewRouter(cfg *config.Config, logger *zap.Logger, h Handlers) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(logger, true))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/", handlers.Welcome)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		users := api.Group("/users")
		users.POST("", h.Users.CreateUser)
		users.GET("/:id", h.Users.GetUser)
		users.GET("/:id/saved_posts", h.Users.GetSavedPosts)
		users.POST("/:id/saved_posts", h.Users.AddSavedPost)
		users.DELETE("/:id/saved_posts/:post_id", h.Users.RemoveSavedPost)
		users.GET("/:id/applied_posts", h.Users.GetAppliedPosts)
		users.POST("/:id/applied_posts", h.Users.AddAppliedPost)
		users.DELETE("/:id/applied_posts/:post_id", h.Users.RemoveAppliedPost)
		users.GET("/:id/tags", h.Users.GetTags)
		users.POST("/:id/tags", h.Users.AddTag)
		users.DELETE("/:id/tags/:tag_id", h.Users.RemoveTag)

		posts := api.Group("/posts")
		posts.GET("", h.Posts.ListPosts)
		posts.GET("/:id", h.Posts.GetPost)
		posts.GET("/:id/savers", h.Posts.GetSavers)
		posts.GET("/:id/applicants", h.Posts.GetApplicants)

		tags := api.Group("/tags")
		tags.GET("", h.Tags.ListTags)
		tags.GET("/:id", h.Tags.GetTag)

		api.POST("/images", h.Images.UploadImage)
	}

	return r
}
