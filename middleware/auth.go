package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marga/database/repository/records"
	"marga/models"
	"marga/utils"
)

// CallerKey is the gin context key holding the authenticated models.Caller.
const CallerKey = "caller"

// JWTAuthMiddleware validates the bearer token, confirms the therapist
// account still exists and stores the resulting Caller on the context.
func JWTAuthMiddleware(repo records.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, roleClaim, err := utils.ExtractCallerFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		role, err := models.ParseRole(roleClaim)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if _, err := repo.GetTherapistByID(c.Request.Context(), subject); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set(CallerKey, models.Caller{ID: subject, Role: role})
		c.Next()
	}
}

// CallerFromContext retrieves the Caller placed by JWTAuthMiddleware.
func CallerFromContext(c *gin.Context) (models.Caller, bool) {
	v, ok := c.Get(CallerKey)
	if !ok {
		return models.Caller{}, false
	}
	caller, ok := v.(models.Caller)
	return caller, ok
}
