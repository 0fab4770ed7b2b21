package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/tanmayd/user_platform_app/internal/core/domain"
)

// identityKey is the key used to store the verified identity in the request
// context.
const identityKey = contextKey("identity")

// GetIdentityFromContext retrieves the verified identity from the Gin context.
// It returns the identity and a boolean indicating if it was found.
func GetIdentityFromContext(c *gin.Context) (*domain.Identity, bool) {
	identity, ok := c.Request.Context().Value(identityKey).(*domain.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}
