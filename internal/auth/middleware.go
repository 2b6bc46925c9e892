package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/logging"
	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/users"
)

// UserSyncer records verified callers in the users table.
type UserSyncer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (string, error)
}

// Identify resolves the caller from an "Authorization: Bearer" token. Requests without
// a token continue anonymously; handlers decide whether they need an identity. An
// invalid token is rejected outright. sync may be nil.
func Identify(v Verifier, sync UserSyncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		id, err := v.Verify(c.Request.Context(), token)
		if err != nil {
			logging.NewLogger(c.Request.Context()).LogWarnf("auth.identify", "%v", err)
			msg := "invalid token"
			if !errors.Is(err, ErrInvalidToken) {
				msg = "token verification failed"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
			return
		}

		if !setIdentity(c, v.Provider(), id, sync) {
			return
		}
		c.Next()
	}
}

// HeaderIdentity trusts X-User-Id (plus X-User-Email / X-User-Name / X-User-Photo).
// Use this ONLY for development/testing.
func HeaderIdentity(sync UserSyncer) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			c.Next()
			return
		}

		id := &Identity{
			UID:         uid,
			Email:       c.GetHeader("X-User-Email"),
			DisplayName: c.GetHeader("X-User-Name"),
			PhotoURL:    c.GetHeader("X-User-Photo"),
		}
		if !setIdentity(c, "header", id, sync) {
			return
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, provider string, id *Identity, sync UserSyncer) bool {
	if sync != nil {
		dbID, err := sync.EnsureUser(c.Request.Context(), users.UpsertUser{
			Provider:    provider,
			ExternalID:  id.UID,
			Email:       id.Email,
			DisplayName: id.DisplayName,
			PhotoURL:    id.PhotoURL,
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			return false
		}
		c.Set(CtxUserDBID, dbID)
	}

	c.Set(CtxUserID, id.UID)
	if id.Email != "" {
		c.Set(CtxEmail, id.Email)
	}
	return true
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
