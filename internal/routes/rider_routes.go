package routes

import (
	"github.com/gin-gonic/gin"

	"traveling_help/internal/controllers"
)

func RiderRoutes(r *gin.Engine, ctl *controllers.Controller) {
	rides := r.Group("/rides")
	{
		rides.GET("", ctl.ShowRides)
		rides.GET("/results", ctl.RideResults)
	}
}
