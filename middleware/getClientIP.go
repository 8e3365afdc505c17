package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// getClientIP prefers the first X-Forwarded-For hop so limits apply to the
// originating client when the service sits behind a proxy.
func getClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return c.ClientIP()
}
