// Package session keeps the driver's bearer token and a cached copy of the
// driver profile on the client.
package session

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"traveling_help/internal/api"
)

// Expiries for a stored session, in days.
const (
	DefaultTTLDays  = 7
	RememberTTLDays = 30
)

// Session is the client-held proof of authentication. Profile is for display
// only; the backend decides authorization from Token.
type Session struct {
	Token   string
	Profile api.Driver
}

// Provider persists one session.
type Provider interface {
	Save(token string, profile api.Driver, ttlDays int) error
	Load() (Session, bool)
	Clear()
}

// Factory returns the Provider bound to a request.
type Factory func(c *gin.Context) Provider

// decode turns the two stored values into a Session, treating anything
// unusable as absent.
func decode(token, profile string, now time.Time) (Session, bool) {
	if token == "" || profile == "" {
		return Session{}, false
	}
	if tokenExpired(token, now) {
		return Session{}, false
	}
	var d api.Driver
	if err := json.Unmarshal([]byte(profile), &d); err != nil {
		return Session{}, false
	}
	return Session{Token: token, Profile: d}, true
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Opaque tokens never expire here; the signature is the backend's business.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
