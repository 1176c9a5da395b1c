package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const errNotFound = "Resource not found"

// OwnerGuard runs after Auth on routes carrying a :user_id path segment.
// The path value is a client-supplied redundancy: it must equal the verified
// identity, and a mismatch is answered with 404 — indistinguishable from the
// resource not existing, so other users' data cannot be enumerated.
func OwnerGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		if c.Param("user_id") != ident.UserID.String() {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": errNotFound})
			return
		}
		c.Next()
	}
}
