package views

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"traveling_help/internal/api"
)

// SkeletonCards is how many placeholder cards the listing shows while
// loading, independent of the page size.
const SkeletonCards = 6

// Pager is the pagination bar of the rider listing.
type Pager struct {
	Current    int
	Pages      []int // empty when there is a single page
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
	TotalPosts int
	Visible    bool
}

// NewPager derives the pagination bar from the backend's pagination block.
func NewPager(p api.Pagination) Pager {
	pg := Pager{
		Current:    p.Current,
		HasPrev:    p.Current > 1,
		HasNext:    p.Current < p.Total,
		PrevPage:   p.Current - 1,
		NextPage:   p.Current + 1,
		TotalPosts: p.TotalPosts,
	}
	if p.Total > 1 {
		pg.Visible = true
		pg.Pages = make([]int, 0, p.Total)
		for i := 1; i <= p.Total; i++ {
			pg.Pages = append(pg.Pages, i)
		}
	}
	return pg
}

// Contact holds the two deep links offered by the contact dialog.
type Contact struct {
	Call     string
	WhatsApp string
	Message  string
}

// ContactFor builds the dial and messaging links for a post. The messaging
// link falls back to the mobile number when no WhatsApp number is set.
func ContactFor(p api.Post, loc *time.Location) Contact {
	msg := fmt.Sprintf(
		"Hi %s! I'm interested in booking your ride from %s to %s on %s at %s. Price: ₹%s per seat. Is it still available?",
		p.OwnerName, p.From, p.To, FormatDate(p.Date), FormatTime(p.Time, loc), FormatPrice(p.Price),
	)
	number := p.WhatsAppNumber
	if number == "" {
		number = p.Mobile
	}
	return Contact{
		Call:     "tel:" + p.Mobile,
		WhatsApp: "https://wa.me/" + url.PathEscape(number) + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20"),
		Message:  msg,
	}
}

// Stats are the dashboard figures, derived from the fetched list.
type Stats struct {
	TotalPosts int
	TotalSeats int
	Routes     int
}

// ComputeStats counts posts, seats and distinct (from, to) routes.
func ComputeStats(posts []api.Post) Stats {
	routes := make(map[[2]string]struct{}, len(posts))
	s := Stats{TotalPosts: len(posts)}
	for _, p := range posts {
		s.TotalSeats += p.AvailableSeats
		routes[[2]string{p.From, p.To}] = struct{}{}
	}
	s.Routes = len(routes)
	return s
}

// FormatDate renders a ride date like "01 Jan 2030".
func FormatDate(t time.Time) string {
	return t.UTC().Format("02 Jan 2006")
}

// FormatTime renders a departure like "10:00 AM" in loc.
func FormatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("03:04 PM")
}

// FormatPrice drops a zero fractional part: 450 → "450", 99.5 → "99.50".
func FormatPrice(p float64) string {
	if p == float64(int64(p)) {
		return strconv.FormatInt(int64(p), 10)
	}
	return strconv.FormatFloat(p, 'f', 2, 64)
}
