package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"traveling_help/internal/views"
)

// ShowHome renders the marketing homepage.
func (ctl *Controller) ShowHome(c *gin.Context) {
	c.HTML(http.StatusOK, "home.tmpl", views.HomePage{Base: ctl.base(c, "")})
}
