package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// UserIDKey is where Auth stores the caller's id in the gin context.
const UserIDKey = "userID"

// TokenValidator is satisfied by *token.Service.
type TokenValidator interface {
	Validate(raw string) (int64, error)
}

// Auth extracts a Bearer token from the Authorization header, validates it,
// and sets the caller's user id in the gin context. The header is the only
// supported transport; there is no cookie/session fallback.
func Auth(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")

		userID, err := tokens.Validate(rawToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
