package utils

import (
	"github.com/Hemachand25/FreshGrocery/entity"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

func SetPrincipal(c *gin.Context, p entity.Principal) {
	c.Set(principalKey, p)
	c.Set("userId", p.ID)
	c.Set("role", string(p.Role))
}

// CurrentPrincipal returns the zero principal when the request is anonymous.
func CurrentPrincipal(c *gin.Context) entity.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(entity.Principal); ok {
			return p
		}
	}
	return entity.Principal{}
}

func CurrentUserID(c *gin.Context) uint {
	return CurrentPrincipal(c).ID
}
