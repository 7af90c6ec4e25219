package middlewares

import (
	"strings"

	"github.com/Hemachand25/FreshGrocery/entity"
	"github.com/Hemachand25/FreshGrocery/pkg/resp"
	"github.com/Hemachand25/FreshGrocery/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks the bearer token and, when roles are given, the caller's role.
func AuthMiddleware(secret string, requiredRoles ...entity.Role) gin.HandlerFunc {
	return authenticate(secret, false, requiredRoles)
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

func authenticate(secret string, allowQuery bool, requiredRoles []entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearer(c)
		if tokenStr == "" && allowQuery {
			tokenStr = c.Query("token")
		}
		if tokenStr == "" {
			resp.Unauthorized(c, "missing or invalid token")
			return
		}

		p, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid token")
			return
		}
		utils.SetPrincipal(c, p)

		if len(requiredRoles) > 0 {
			allowed := false
			for _, r := range requiredRoles {
				if p.Role == r {
					allowed = true
					break
				}
			}
			if !allowed {
				resp.Forbidden(c, "forbidden")
				return
			}
		}

		c.Next()
	}
}
