package devapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"traveling_help/internal/models"
)

// Handler serves the REST contract the web frontend consumes.
type Handler struct {
	Store    Store
	Secret   []byte
	TokenTTL time.Duration
}

func NewHandler(store Store, secret []byte, ttl time.Duration) *Handler {
	return &Handler{Store: store, Secret: secret, TokenTTL: ttl}
}

// respond writes the {success, message, data} envelope.
func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// serverError logs err and hides it from the caller.
func serverError(c *gin.Context, err error, what string) {
	logrus.WithError(err).WithField("path", c.FullPath()).Error(what)
	fail(c, http.StatusInternalServerError, "Server error")
}

func driverResponse(d models.Driver) gin.H {
	resp := gin.H{
		"id":           d.ID,
		"email":        d.Email,
		"carOwnerName": d.CarOwnerName,
		"mobile":       d.Mobile,
	}
	if d.CarType != "" {
		resp["carType"] = d.CarType
		resp["carNo"] = d.CarNo
	}
	return resp
}

// postResponse renders a post. With populate, driverId is the {_id, email}
// object the public listing carries; otherwise it is the bare id.
func postResponse(p models.Post, populate bool) gin.H {
	resp := gin.H{
		"_id":            p.ID,
		"driverId":       p.DriverID,
		"ownerName":      p.OwnerName,
		"mobile":         p.Mobile,
		"from":           p.From,
		"to":             p.To,
		"date":           p.Date.UTC(),
		"time":           p.Time.UTC(),
		"availableSeats": p.AvailableSeats,
		"price":          p.Price,
		"createdAt":      p.CreatedAt.UTC(),
		"updatedAt":      p.UpdatedAt.UTC(),
	}
	if p.WhatsAppNumber != "" {
		resp["whatsAppNumber"] = p.WhatsAppNumber
	}
	if populate {
		resp["driverId"] = gin.H{"_id": p.DriverID, "email": p.Driver.Email}
	}
	return resp
}

func postsResponse(posts []models.Post, populate bool) []gin.H {
	out := make([]gin.H, 0, len(posts))
	for _, p := range posts {
		out = append(out, postResponse(p, populate))
	}
	return out
}
