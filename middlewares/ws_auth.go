package middlewares

import (
	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware also accepts ?token= because browsers cannot set headers on
// WebSocket or EventSource requests.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return authenticate(secret, true, nil)
}
