package middleware

import (
	"net/http"
	"strings"

	"bookflow/utils"

	"github.com/gin-gonic/gin"
)

// SessionIDKey is the gin context key under which the authenticated
// session id is stored.
const SessionIDKey = "sessionID"

// SessionAuthMiddleware validates the bearer token and checks that it is
// bound to the session addressed by the :id path parameter.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "Missing authorization", "Bearer token required")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		sessionID, err := utils.ExtractSessionIDFromToken(token)
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "Invalid token", err.Error())
			c.Abort()
			return
		}
		if pathID := c.Param("id"); pathID != "" && pathID != sessionID {
			utils.JSONError(c, http.StatusForbidden, "Session mismatch", "token is not bound to this session")
			c.Abort()
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}
