package middleware

import (
	"net/http"

	"inkwell/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// LoadUser resolves the session's user_id to a *models.User and sets it in
// the gin context. The context value is the only source of "current actor"
// downstream; a missing or stale user_id just means anonymous.
func LoadUser(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get("user_id").(uint)
		if ok {
			user, err := identity.FindByID(userID)
			if err == nil {
				c.Set(CheckUserKey, user)
			}
		}
		c.Next()
	}
}

// AuthRequired ensures a user is logged in, redirecting to /login otherwise.
// Runs after LoadUser, so it only has to check the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
