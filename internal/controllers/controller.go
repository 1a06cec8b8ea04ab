package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"traveling_help/internal/api"
	"traveling_help/internal/session"
	"traveling_help/internal/views"
)

// Backend is the part of the REST client the pages use.
type Backend interface {
	Register(ctx context.Context, req api.RegisterRequest) api.Result[api.AuthData]
	Login(ctx context.Context, req api.LoginRequest) api.Result[api.AuthData]
	ListPosts(ctx context.Context, q api.ListQuery) api.Result[api.PostPage]
	MyPosts(ctx context.Context, token string) api.Result[[]api.Post]
	CreatePost(ctx context.Context, token string, in api.PostInput) api.Result[api.Post]
	UpdatePost(ctx context.Context, token, id string, in api.PostInput) api.Result[api.Post]
	DeletePost(ctx context.Context, token, id string) api.Result[struct{}]
}

// Controller serves every page of the site.
type Controller struct {
	API      Backend
	Sessions session.Factory
	// Location renders and reads ride times.
	Location *time.Location
	PageSize int
	// CookieSecure marks the flash cookie Secure, like the session cookies.
	CookieSecure bool
}

// Paths other handlers redirect to.
const (
	HomePath      = "/"
	AuthPath      = "/driver/auth"
	DashboardPath = "/driver/dashboard"
)

const flashCookie = "flash"

// base builds the fields every page shares and consumes any pending notice.
func (ctl *Controller) base(c *gin.Context, title string) views.Base {
	b := views.Base{Title: title, Notice: ctl.takeFlash(c)}
	if s, ok := ctl.Sessions(c).Load(); ok {
		profile := s.Profile
		b.Driver = &profile
	}
	return b
}

// flash stores a notice for the next page view, surviving a redirect.
func (ctl *Controller) flash(c *gin.Context, n *views.Notice) {
	raw, err := json.Marshal(n)
	if err != nil {
		logrus.WithError(err).Error("flash: could not encode notice")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, string(raw), 60, "/", "", ctl.CookieSecure, true)
}

func (ctl *Controller) takeFlash(c *gin.Context) *views.Notice {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", ctl.CookieSecure, true)
	var n views.Notice
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil
	}
	return &n
}

// redirect sends the browser to path after a form post.
func redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusSeeOther, path)
}

// failureNotice picks the notice for a failed backend call: the backend's
// message when it refused, a network error when it could not be reached.
func failureNotice[T any](res api.Result[T], title, fallback string) *views.Notice {
	if res.Kind == api.KindUnreachable {
		return views.Failure("Network Error", api.UnreachableMessage)
	}
	return views.Failure(title, res.MessageOr(fallback))
}

// expire drops a session the backend no longer accepts.
func (ctl *Controller) expire(c *gin.Context) {
	ctl.Sessions(c).Clear()
	redirect(c, AuthPath)
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
