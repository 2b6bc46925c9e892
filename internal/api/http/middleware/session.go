package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "mermaid_session"
	ctxSessionID  = "session_id"
	sessionMaxAge = 60 * 60 * 24 * 365
)

// SessionMiddleware gives every browser an anonymous editor session, the server-side
// counterpart of a browser profile. Unknown or malformed cookies are replaced.
func SessionMiddleware(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err == nil {
			_, err = uuid.Parse(sid)
		}
		if err != nil {
			sid = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sid, sessionMaxAge, "/", "", secure, true)
		}
		c.Set(ctxSessionID, sid)
		c.Next()
	}
}

// SessionID returns the editor session for the request, or "" outside SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
