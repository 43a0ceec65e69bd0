package middlewares

import (
	"log/slog"
	"net/http"

	jwthandling "github.com/crarsdecor/CRM/pkg/jwt-handling"
	umTypes "github.com/crarsdecor/CRM/pkg/user-management/types"
	"github.com/gin-gonic/gin"
)

func IsAdminUser() gin.HandlerFunc {
	return RequireRole(umTypes.ROLE_ADMIN)
}

// RequireRole aborts the request if the validated token does not carry one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the validated token from the context
		tokenValue, ok := c.Get("validatedToken")
		if !ok {
			slog.Warn("RequireRole: validatedToken not found in context")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
			return
		}
		parsedToken := tokenValue.(*jwthandling.CRMUserClaims)

		for _, role := range roles {
			if parsedToken.Role == role {
				return
			}
		}
		slog.Warn("RequireRole Middleware: user tried to access restricted endpoint", slog.String("userID", parsedToken.Subject), slog.String("role", parsedToken.Role))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
	}
}
