package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"traveling_help/internal/api"
	"traveling_help/internal/forms"
	"traveling_help/internal/session"
	"traveling_help/internal/views"
)

const loadPostsFailed = "Failed to load your posts"

// ShowDashboard lists the driver's posts. The query selects the tab and any
// open dialog: ?modal=create, ?edit=<id> or ?delete=<id>.
func (ctl *Controller) ShowDashboard(c *gin.Context) {
	s, _ := session.FromContext(c)
	page, ok := ctl.dashboard(c, s)
	if !ok {
		return
	}

	switch {
	case c.Query("modal") == views.ModalCreate:
		page.Modal = views.ModalCreate
		page.Form = forms.NewRidePost(s.Profile)
	case c.Query("edit") != "":
		if p := findPost(page.Posts, c.Query("edit")); p != nil {
			page.Modal = views.ModalEdit
			page.EditID = p.ID
			page.Form = forms.RidePostFromPost(*p, ctl.Location)
		}
	case c.Query("delete") != "":
		page.DeleteTarget = findPost(page.Posts, c.Query("delete"))
	}
	c.HTML(http.StatusOK, "dashboard.tmpl", page)
}

// CreatePost submits the create dialog.
func (ctl *Controller) CreatePost(c *gin.Context) {
	ctl.savePost(c, "")
}

// UpdatePost submits the edit dialog of post :id.
func (ctl *Controller) UpdatePost(c *gin.Context) {
	ctl.savePost(c, c.Param("id"))
}

// DeletePost removes post :id. Either way the driver lands back on the
// dashboard with the confirmation closed.
func (ctl *Controller) DeletePost(c *gin.Context) {
	s, _ := session.FromContext(c)
	res := ctl.API.DeletePost(c.Request.Context(), s.Token, c.Param("id"))
	switch {
	case res.OK():
		ctl.flash(c, views.Success("Post Deleted!", "Your ride post has been removed"))
	case res.Unauthorized():
		ctl.expire(c)
		return
	default:
		ctl.flash(c, failureNotice(res, "Error", "Failed to delete post"))
	}
	redirect(c, DashboardPath)
}

// savePost validates the ride form and creates (editID empty) or updates a
// post. Invalid input is sent back without calling the backend; a backend
// failure keeps the dialog open with the entered values.
func (ctl *Controller) savePost(c *gin.Context, editID string) {
	s, _ := session.FromContext(c)
	form, errs := forms.DecodeRidePost(c)
	errs = errs.Merge(forms.ValidateRidePost(form))

	var notice *views.Notice
	if errs.Valid() {
		in, err := form.Input(ctl.Location)
		if err != nil {
			logrus.WithError(err).Warn("ride form passed validation but could not be converted")
			errs["time"] = "Date and time must form a valid point in time"
		} else {
			res := ctl.submitPost(c.Request.Context(), s.Token, editID, in)
			switch {
			case res.OK() && editID == "":
				ctl.flash(c, views.Success("Post Created!", "Your ride has been posted successfully"))
				redirect(c, DashboardPath)
				return
			case res.OK():
				ctl.flash(c, views.Success("Post Updated!", "Your ride post has been updated"))
				redirect(c, DashboardPath)
				return
			case res.Unauthorized():
				ctl.expire(c)
				return
			case editID == "":
				notice = failureNotice(res, "Error", "Failed to create post")
			default:
				notice = failureNotice(res, "Error", "Failed to update post")
			}
		}
	}

	page, ok := ctl.dashboard(c, s)
	if !ok {
		return
	}
	page.Modal, page.EditID = views.ModalCreate, editID
	if editID != "" {
		page.Modal = views.ModalEdit
	}
	page.Form, page.Errors = form, errs
	if notice != nil {
		page.Notice = notice
	}

	status := http.StatusOK
	if !errs.Valid() {
		status = http.StatusUnprocessableEntity
	}
	c.HTML(status, "dashboard.tmpl", page)
}

func (ctl *Controller) submitPost(ctx context.Context, token, editID string, in api.PostInput) api.Result[api.Post] {
	if editID == "" {
		return ctl.API.CreatePost(ctx, token, in)
	}
	return ctl.API.UpdatePost(ctx, token, editID, in)
}

// dashboard fetches the driver's posts and builds the page around them.
// It returns false when the backend refused the token and the driver was
// sent back to sign in.
func (ctl *Controller) dashboard(c *gin.Context, s session.Session) (views.DashboardPage, bool) {
	st := views.Load(c.Request.Context(), func(ctx context.Context) api.Result[[]api.Post] {
		return ctl.API.MyPosts(ctx, s.Token)
	})
	if st.Unauthorized {
		ctl.expire(c)
		return views.DashboardPage{}, false
	}

	page := views.DashboardPage{
		Base:    ctl.base(c, "Driver dashboard"),
		Profile: s.Profile,
		Tab:     views.TabPosts,
	}
	if c.Query("tab") == views.TabStats {
		page.Tab = views.TabStats
	}

	switch st.Phase {
	case views.Ready:
		page.Posts = st.Value
		page.Stats = views.ComputeStats(st.Value)
	case views.Failed:
		page.LoadMessage = loadPostsFailed
		if page.Notice == nil {
			page.Notice = views.Failure("Error", loadPostsFailed)
		}
	default:
		// The browser went away before the list arrived.
		page.LoadMessage = loadPostsFailed
	}
	return page, true
}

func findPost(posts []api.Post, id string) *api.Post {
	for i := range posts {
		if posts[i].ID == id {
			return &posts[i]
		}
	}
	return nil
}
