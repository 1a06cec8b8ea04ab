package session

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const contextKey = "session"

// Require loads the session once per request and redirects to loginPath
// before any protected handler runs when it is absent.
func Require(sessions Factory, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := sessions(c).Load()
		if !ok {
			c.Redirect(http.StatusSeeOther, loginPath)
			c.Abort()
			return
		}
		c.Set(contextKey, s)
		c.Next()
	}
}

// FromContext returns the session stored by Require.
func FromContext(c *gin.Context) (Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok
}
