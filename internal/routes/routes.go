package routes

import (
	"html/template"
	"io"
	"net/http"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"traveling_help/internal/controllers"
	"traveling_help/internal/middleware"
	"traveling_help/internal/views"
)

// SetupRouter builds the web frontend. Access logs go to accessLog.
func SetupRouter(ctl *controllers.Controller, tmpl *template.Template, accessLog io.Writer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(ginlog.SetLogger(
		ginlog.WithWriter(accessLog),
		ginlog.WithSkipPath([]string{"/healthz"}),
	))
	r.Use(middleware.SecurityHeaders())

	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(views.Static()))
	r.GET("/healthz", controllers.Health)
	r.GET("/", ctl.ShowHome)

	RiderRoutes(r, ctl)
	AuthRoutes(r, ctl)
	DriverRoutes(r, ctl)

	return r
}
