package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/taskhive/internal/domain"
)

// ExtractIdentity builds the caller's identity from a verified claim set.
// Both user_id and email must be present and non-empty; everything else is
// informational. Expiry is already enforced by the Verifier.
func ExtractIdentity(claims jwt.MapClaims) (domain.Identity, error) {
	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	if userID == "" || email == "" {
		return domain.Identity{}, domain.ErrMissingClaims
	}

	ident := domain.Identity{
		UserID: domain.UserID(userID),
		Email:  email,
	}
	if exp, ok := claims["exp"].(float64); ok {
		t := time.Unix(int64(exp), 0)
		ident.ExpiresAt = &t
	}
	if iat, ok := claims["iat"].(float64); ok {
		t := time.Unix(int64(iat), 0)
		ident.IssuedAt = &t
	}
	return ident, nil
}
