package auth

import (
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/gin-gonic/gin"
)

// Identity headers are set by the gateway after it has authenticated and
// authorised the caller.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type UserContext struct {
	UserID string
	Role   model.Role
}

// Middleware copies the gateway identity headers into the gin context.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(HeaderUserID); id != "" {
			c.Set("user_id", id)
		}
		if role := c.GetHeader(HeaderUserRole); role != "" {
			c.Set("user_role", role)
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	if val, ok := c.Get("user_id"); ok {
		if id, ok := val.(string); ok {
			return id
		}
	}
	return c.GetHeader(HeaderUserID)
}

func GetUser(c *gin.Context) UserContext {
	role := c.GetString("user_role")
	if role == "" {
		role = c.GetHeader(HeaderUserRole)
	}
	return UserContext{UserID: GetUserID(c), Role: model.Role(role)}
}
