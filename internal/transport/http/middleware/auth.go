package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/domain"
	"github.com/taskhive/taskhive/internal/metrics"
)

const (
	errUnauthorized = "Unauthorized"

	identityKey = "identity"
)

// Machine-checkable rejection reasons, returned alongside the 401 body and
// used as the auth_rejections_total metric label.
const (
	ReasonHeaderMissing    = "HEADER_MISSING"
	ReasonHeaderMalformed  = "HEADER_MALFORMED"
	ReasonTokenMalformed   = "TOKEN_MALFORMED"
	ReasonInvalidSignature = "INVALID_SIGNATURE"
	ReasonTokenExpired     = "TOKEN_EXPIRED"
	ReasonMissingClaims    = "MISSING_CLAIMS"
)

// Auth runs the two-step gate on the Authorization header: verify the bearer
// token cryptographically, then extract the application identity from its
// claims. On success the identity is stored in the gin context; every failure
// is terminal for the request and answered with 401.
func Auth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			reject(c, ReasonHeaderMissing)
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			reject(c, ReasonHeaderMalformed)
			return
		}

		rawToken := strings.TrimPrefix(header, "Bearer ")
		if rawToken == "" {
			reject(c, ReasonHeaderMalformed)
			return
		}

		claims, err := verifier.Verify(rawToken)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenSignature):
				reject(c, ReasonInvalidSignature)
			case errors.Is(err, domain.ErrTokenExpired):
				reject(c, ReasonTokenExpired)
			default:
				reject(c, ReasonTokenMalformed)
			}
			return
		}

		// A valid signature is not enough: the token must also carry the
		// claims this system requires.
		ident, err := auth.ExtractIdentity(claims)
		if err != nil {
			reject(c, ReasonMissingClaims)
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

func reject(c *gin.Context, reason string) {
	metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":  errUnauthorized,
		"reason": reason,
	})
}

// IdentityFrom returns the verified identity set by Auth.
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	ident, ok := v.(domain.Identity)
	return ident, ok
}
