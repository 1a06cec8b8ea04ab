package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"traveling_help/internal/api"
	"traveling_help/internal/views"
)

const (
	ridesFailed      = "Failed to fetch rides"
	ridesUnreachable = "Unable to connect to server. Please try again later."
)

// ShowRides renders the listing shell with skeleton cards. The results
// fragment is pulled in by the page script.
func (ctl *Controller) ShowRides(c *gin.Context) {
	from, to, page := rideQuery(c)
	c.HTML(http.StatusOK, "rides.tmpl", views.RidesPage{
		Base:       ctl.base(c, "Available rides"),
		From:       from,
		To:         to,
		Page:       page,
		ResultsURL: views.RidesURL("/rides/results", page, from, to),
		Skeletons:  make([]int, views.SkeletonCards),
	})
}

// RideResults renders one page of rides as an HTML fragment.
func (ctl *Controller) RideResults(c *gin.Context) {
	from, to, page := rideQuery(c)
	st := views.Load(c.Request.Context(), func(ctx context.Context) api.Result[api.PostPage] {
		return ctl.API.ListPosts(ctx, api.ListQuery{Page: page, Limit: ctl.PageSize, From: from, To: to})
	})

	res := views.RidesResults{Phase: st.Phase, From: from, To: to}
	switch st.Phase {
	case views.Ready:
		res.Posts = st.Value.Posts
		res.Pager = views.NewPager(st.Value.Pagination)
	case views.Failed:
		res.Message = ridesFailed
		if st.Kind == api.KindUnreachable {
			res.Message = ridesUnreachable
		}
	default:
		// Nobody is waiting for the fragment any more.
		c.Status(http.StatusNoContent)
		return
	}
	c.HTML(http.StatusOK, "rides_results.tmpl", res)
}

func rideQuery(c *gin.Context) (from, to string, page int) {
	from = strings.TrimSpace(c.Query("from"))
	to = strings.TrimSpace(c.Query("to"))
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return from, to, page
}
