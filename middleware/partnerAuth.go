package middleware

import (
	"net/http"

	"partnerhub/utils"

	"github.com/gin-gonic/gin"
)

// PartnerAuthMiddleware requires a session token issued at login whose subject is the
// :partnerId of the route.
func PartnerAuthMiddleware(tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Missing or invalid Authorization header"})
			return
		}

		partnerID, err := tokens.ExtractIDFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{Message: "Invalid token"})
			return
		}
		if partnerID != c.Param("partnerId") {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				Message: "Token does not belong to this partner",
				Kind:    utils.KindForbidden,
			})
			return
		}

		c.Set("partnerID", partnerID)
		c.Next()
	}
}
