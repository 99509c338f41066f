package middleware

import (
	"net/http"

	"bookflow/models"

	"github.com/gin-gonic/gin"
)

// RoleLookup resolves the role currently held by a session id.
type RoleLookup func(sessionID string) (models.Role, bool)

// RequireRole rejects requests whose session has not chosen a role yet.
// The response tells the client which screen to redirect to, mirroring the
// in-store gate that role-restricted screens apply on mount.
func RequireRole(lookup RoleLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetString(SessionIDKey)
		if id == "" {
			id = c.Param("id")
		}
		role, ok := lookup(id)
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown session"})
			return
		}
		if role == models.RoleAnonymous {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "role required",
				"redirect": string(models.ScreenRole),
			})
			return
		}
		c.Next()
	}
}

// RequireAdmin rejects requests whose session is not admin-authenticated.
type AdminLookup func(sessionID string) bool

func RequireAdmin(lookup AdminLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetString(SessionIDKey)
		if id == "" {
			id = c.Param("id")
		}
		if !lookup(id) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin authentication required"})
			return
		}
		c.Next()
	}
}
