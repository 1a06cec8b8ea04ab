package routes

import (
	"github.com/gin-gonic/gin"

	"traveling_help/internal/controllers"
	"traveling_help/internal/devapi"
)

func AuthRoutes(r *gin.Engine, ctl *controllers.Controller) {
	auth := r.Group("/driver/auth")
	{
		auth.GET("", ctl.ShowAuth)
		auth.POST("/login", ctl.Login)
		auth.POST("/register", ctl.Register)
	}
	r.POST("/driver/logout", ctl.Logout)
}

// APIAuthRoutes mounts the development backend's sign-up and sign-in.
func APIAuthRoutes(api *gin.RouterGroup, h *devapi.Handler) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
}
