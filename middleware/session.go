package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// SessionHeader identifies the browsing session that owns the cart and
	// customer records. The client generates and keeps it, the way a browser
	// owns its storage partition.
	SessionHeader = "X-Session-ID"

	// SessionKey is the gin context key the session id is stored under.
	SessionKey = "session_id"
)

// Session requires the session header on every request of the group.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := c.GetHeader(SessionHeader)
		if session == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + SessionHeader + " header"})
			c.Abort()
			return
		}
		c.Set(SessionKey, session)
		c.Next()
	}
}
