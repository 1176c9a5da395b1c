package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/transport/http/middleware"
)

const testKey = "middleware-test-secret-32-chars!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler writes the identity's user ID so we can assert
// it was set.
func newEngine() *gin.Engine {
	verifier := auth.NewVerifier([]byte(testKey))
	r := gin.New()
	r.GET("/protected", middleware.Auth(verifier), func(c *gin.Context) {
		ident, _ := middleware.IdentityFrom(c)
		c.String(http.StatusOK, "%s", ident.UserID)
	})
	return r
}

func makeJWT(t *testing.T, key []byte, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return s
}

func doRequest(authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	newEngine().ServeHTTP(w, req)
	return w
}

func assertRejected(t *testing.T, w *httptest.ResponseRecorder, reason string) {
	t.Helper()
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), reason) {
		t.Errorf("body %q does not carry reason %q", w.Body.String(), reason)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	assertRejected(t, doRequest(""), middleware.ReasonHeaderMissing)
}

func TestAuth_NonBearerScheme(t *testing.T) {
	assertRejected(t, doRequest("Basic dXNlcjpwYXNz"), middleware.ReasonHeaderMalformed)
}

func TestAuth_EmptyBearerToken(t *testing.T) {
	assertRejected(t, doRequest("Bearer "), middleware.ReasonHeaderMalformed)
}

func TestAuth_GarbageToken(t *testing.T) {
	assertRejected(t, doRequest("Bearer not.a.jwt"), middleware.ReasonTokenMalformed)
}

func TestAuth_ExpiredToken(t *testing.T) {
	tok := makeJWT(t, []byte(testKey), jwt.MapClaims{
		"user_id": "user-1",
		"email":   "user-1@example.com",
		"exp":     time.Now().Add(-time.Hour).Unix(),
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
	})
	assertRejected(t, doRequest("Bearer "+tok), middleware.ReasonTokenExpired)
}

func TestAuth_TokenWithoutExp(t *testing.T) {
	tok := makeJWT(t, []byte(testKey), jwt.MapClaims{
		"user_id": "user-1",
		"email":   "user-1@example.com",
		"iat":     time.Now().Unix(),
	})
	assertRejected(t, doRequest("Bearer "+tok), middleware.ReasonTokenExpired)
}

func TestAuth_WrongSigningKey(t *testing.T) {
	tok := makeJWT(t, []byte("different-key-that-is-32-chars!!"), jwt.MapClaims{
		"user_id": "user-1",
		"email":   "user-1@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	assertRejected(t, doRequest("Bearer "+tok), middleware.ReasonInvalidSignature)
}

func TestAuth_ValidSignatureMissingEmail(t *testing.T) {
	tok := makeJWT(t, []byte(testKey), jwt.MapClaims{
		"user_id": "user-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	assertRejected(t, doRequest("Bearer "+tok), middleware.ReasonMissingClaims)
}

func TestAuth_ValidToken_SetsIdentity(t *testing.T) {
	const userID = "user-abc"
	tok := makeJWT(t, []byte(testKey), jwt.MapClaims{
		"user_id": userID,
		"email":   "abc@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	})

	w := doRequest("Bearer " + tok)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != userID {
		t.Errorf("body = %q, want %q", got, userID)
	}
}
