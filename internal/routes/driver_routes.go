package routes

import (
	"github.com/gin-gonic/gin"

	"traveling_help/internal/controllers"
	"traveling_help/internal/session"
)

// DriverRoutes mounts the dashboard. Every route needs a session.
func DriverRoutes(r *gin.Engine, ctl *controllers.Controller) {
	driver := r.Group("/driver")
	driver.Use(session.Require(ctl.Sessions, controllers.AuthPath))
	{
		driver.GET("/dashboard", ctl.ShowDashboard)
		driver.POST("/posts", ctl.CreatePost)
		driver.POST("/posts/:id", ctl.UpdatePost)
		driver.POST("/posts/:id/delete", ctl.DeletePost)
	}
}
