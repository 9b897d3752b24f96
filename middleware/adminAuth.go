package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"partnerhub/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware accepts requests bearing the configured static admin token.
// An optional X-Admin-User header names the operator in audit fields.
func AdminAuthMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(tokenString), []byte(adminToken)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Unauthorized admin access"})
			return
		}

		adminID := strings.TrimSpace(c.GetHeader("X-Admin-User"))
		if adminID == "" {
			adminID = "admin"
		}
		c.Set("adminID", adminID)
		c.Set("isAdmin", true)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}
