package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/auth"
)

// Me returns the caller's identity so the client can tell whether it is signed in.
func Me(c *gin.Context) {
	uid := auth.UserID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"user": gin.H{
			"id":    uid,
			"email": auth.Email(c),
		},
	})
}

func Register(rg *gin.RouterGroup) {
	rg.GET("/me", Me)
}
