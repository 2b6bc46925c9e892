package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID   = "user_id"
	CtxEmail    = "email"
	CtxUserDBID = "user_db_id"
)

// UserID returns the authenticated identity set by the identity middleware, or "" for
// anonymous callers.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

func Email(c *gin.Context) string {
	return c.GetString(CtxEmail)
}

// UserDBID is the users table row for the caller when user sync is enabled.
func UserDBID(c *gin.Context) string {
	return c.GetString(CtxUserDBID)
}
