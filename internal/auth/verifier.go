// Package auth implements the two-step authentication gate: cryptographic
// token verification followed by application-claim extraction. The steps are
// deliberately separate — a token can carry a valid signature and still lack
// the claims this system requires.
package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/taskhive/internal/domain"
)

// Verifier validates bearer tokens against a single shared HS256 secret.
// It is pure: same token, secret, and clock always produce the same outcome.
type Verifier struct {
	key []byte
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{key: secret}
}

// Verify decodes the token, checks the signature and expiry, and returns the
// claim set. A token without an exp claim is rejected as expired — absence of
// expiry never means "never expires". Failures map to exactly one of
// domain.ErrTokenMalformed, ErrTokenSignature, or ErrTokenExpired.
func (v *Verifier) Verify(rawToken string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.key, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			// keyfunc refused the signing method
			return nil, domain.ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	return claims, nil
}
