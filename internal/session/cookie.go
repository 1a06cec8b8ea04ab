package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"traveling_help/internal/api"
)

// Cookie names shared with the browser.
const (
	TokenCookie   = "driverToken"
	ProfileCookie = "driverData"
)

// CookieStore keeps the session in two cookies with independent expiry.
type CookieStore struct {
	c      *gin.Context
	secure bool
	now    func() time.Time
}

// CookieFactory binds a CookieStore to each request.
func CookieFactory(secure bool) Factory {
	return func(c *gin.Context) Provider {
		return &CookieStore{c: c, secure: secure, now: time.Now}
	}
}

func (s *CookieStore) Save(token string, profile api.Driver, ttlDays int) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode driver profile: %w", err)
	}
	maxAge := ttlDays * 24 * 60 * 60
	s.set(TokenCookie, token, maxAge)
	s.set(ProfileCookie, string(raw), maxAge)
	return nil
}

func (s *CookieStore) Load() (Session, bool) {
	token, err := s.c.Cookie(TokenCookie)
	if err != nil {
		return Session{}, false
	}
	profile, err := s.c.Cookie(ProfileCookie)
	if err != nil {
		return Session{}, false
	}
	return decode(token, profile, s.now())
}

func (s *CookieStore) Clear() {
	s.set(TokenCookie, "", -1)
	s.set(ProfileCookie, "", -1)
}

func (s *CookieStore) set(name, value string, maxAge int) {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(name, value, maxAge, "/", "", s.secure, true)
}
