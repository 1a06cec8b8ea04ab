package routes

import (
	"io"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"traveling_help/internal/controllers"
	"traveling_help/internal/devapi"
	"traveling_help/internal/middleware"
)

// SetupAPIRouter builds the development backend under /api.
func SetupAPIRouter(h *devapi.Handler, accessLog io.Writer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(ginlog.SetLogger(
		ginlog.WithWriter(accessLog),
		ginlog.WithSkipPath([]string{"/healthz"}),
	))

	r.GET("/healthz", controllers.Health)

	api := r.Group("/api")
	APIAuthRoutes(api, h)
	APIPostRoutes(api, h)

	return r
}

func APIPostRoutes(api *gin.RouterGroup, h *devapi.Handler) {
	posts := api.Group("/posts")
	{
		posts.GET("", h.ListPosts)
	}

	owned := posts.Group("")
	owned.Use(middleware.RequireAuth(h.Secret))
	{
		owned.GET("/driver/my-posts", h.MyPosts)
		owned.POST("", h.CreatePost)
		owned.PUT("/:id", h.UpdatePost)
		owned.DELETE("/:id", h.DeletePost)
	}
}
