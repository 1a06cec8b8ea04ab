// Package devapi is a development implementation of the ride-sharing REST
// backend. It lets the web frontend run end to end without the production
// service.
package devapi

import (
	"context"
	"errors"

	"traveling_help/internal/models"
)

var (
	// ErrDuplicate is returned when an email or mobile is already registered.
	ErrDuplicate = errors.New("driver already registered")
	// ErrNotFound is returned for a missing record, including a post owned
	// by somebody else.
	ErrNotFound = errors.New("record not found")
)

// PostFilter selects one page of the public listing. From and To are
// case-insensitive substring filters.
type PostFilter struct {
	From   string
	To     string
	Offset int
	Limit  int
}

// Store persists drivers and posts.
type Store interface {
	CreateDriver(ctx context.Context, d *models.Driver) error
	// FindDriver matches identifier against email or mobile.
	FindDriver(ctx context.Context, identifier string) (models.Driver, error)

	// ListPosts returns the newest posts first, with Driver populated, and
	// the number of posts matching the filter.
	ListPosts(ctx context.Context, f PostFilter) ([]models.Post, int64, error)
	PostsByDriver(ctx context.Context, driverID string) ([]models.Post, error)
	CreatePost(ctx context.Context, p *models.Post) error
	// UpdatePost overwrites the editable fields of a post owned by p.DriverID.
	UpdatePost(ctx context.Context, p *models.Post) error
	DeletePost(ctx context.Context, driverID, id string) error
}
