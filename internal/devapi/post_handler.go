package devapi

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"traveling_help/internal/middleware"
	"traveling_help/internal/models"
)

const (
	defaultLimit = 10
	maxLimit     = 50
)

type postInput struct {
	OwnerName      string  `json:"ownerName" binding:"required"`
	Mobile         string  `json:"mobile" binding:"required"`
	WhatsAppNumber string  `json:"whatsAppNumber"`
	From           string  `json:"from" binding:"required"`
	To             string  `json:"to" binding:"required"`
	Date           string  `json:"date" binding:"required"`
	Time           string  `json:"time" binding:"required"`
	AvailableSeats int     `json:"availableSeats" binding:"min=1"`
	Price          float64 `json:"price" binding:"min=0"`
}

// ListPosts is the public, paginated listing.
func (h *Handler) ListPosts(c *gin.Context) {
	page := queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(c, "limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	posts, total, err := h.Store.ListPosts(c.Request.Context(), PostFilter{
		From:   strings.TrimSpace(c.Query("from")),
		To:     strings.TrimSpace(c.Query("to")),
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		serverError(c, err, "could not list posts")
		return
	}

	respond(c, http.StatusOK, "", gin.H{
		"posts": postsResponse(posts, true),
		"pagination": gin.H{
			"current":    page,
			"total":      int(math.Ceil(float64(total) / float64(limit))),
			"count":      len(posts),
			"totalPosts": total,
		},
	})
}

// MyPosts lists the caller's own posts.
func (h *Handler) MyPosts(c *gin.Context) {
	posts, err := h.Store.PostsByDriver(c.Request.Context(), middleware.DriverID(c))
	if err != nil {
		serverError(c, err, "could not list driver posts")
		return
	}
	respond(c, http.StatusOK, "", postsResponse(posts, false))
}

func (h *Handler) CreatePost(c *gin.Context) {
	post, ok := bindPost(c)
	if !ok {
		return
	}
	post.DriverID = middleware.DriverID(c)

	if err := h.Store.CreatePost(c.Request.Context(), &post); err != nil {
		serverError(c, err, "could not create post")
		return
	}
	respond(c, http.StatusCreated, "Post created successfully", postResponse(post, false))
}

func (h *Handler) UpdatePost(c *gin.Context) {
	post, ok := bindPost(c)
	if !ok {
		return
	}
	post.ID = c.Param("id")
	post.DriverID = middleware.DriverID(c)

	if err := h.Store.UpdatePost(c.Request.Context(), &post); err != nil {
		if errors.Is(err, ErrNotFound) {
			fail(c, http.StatusNotFound, "Post not found")
			return
		}
		serverError(c, err, "could not update post")
		return
	}
	respond(c, http.StatusOK, "Post updated successfully", postResponse(post, false))
}

func (h *Handler) DeletePost(c *gin.Context) {
	err := h.Store.DeletePost(c.Request.Context(), middleware.DriverID(c), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		fail(c, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		serverError(c, err, "could not delete post")
		return
	}
	respond(c, http.StatusOK, "Post deleted successfully", nil)
}

// bindPost decodes and validates a create/update body. On failure the
// response has already been written.
func bindPost(c *gin.Context) (models.Post, bool) {
	var input postInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, bindingMessage(err))
		return models.Post{}, false
	}

	date, err := time.Parse(time.RFC3339, input.Date)
	if err != nil {
		fail(c, http.StatusBadRequest, "date must be an ISO-8601 timestamp")
		return models.Post{}, false
	}
	at, err := time.Parse(time.RFC3339, input.Time)
	if err != nil {
		fail(c, http.StatusBadRequest, "time must be an ISO-8601 timestamp")
		return models.Post{}, false
	}

	return models.Post{
		OwnerName:      strings.TrimSpace(input.OwnerName),
		Mobile:         strings.TrimSpace(input.Mobile),
		WhatsAppNumber: strings.TrimSpace(input.WhatsAppNumber),
		From:           strings.TrimSpace(input.From),
		To:             strings.TrimSpace(input.To),
		Date:           date.UTC(),
		Time:           at.UTC(),
		AvailableSeats: input.AvailableSeats,
		Price:          input.Price,
	}, true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// bindingMessage turns the first validation failure into a readable message.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required", "required_with":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
