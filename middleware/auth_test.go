package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return token
}

func invokeJWTMiddleware(authHeader string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := JWTMiddleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	handler(c)

	return rec
}

func TestJWTMiddlewareRejectsMalformedTokens(t *testing.T) {
	viper.Set("JWT_SECRET", testSecret)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "token-without-prefix"},
		{"wrong segment count", "Bearer only.two"},
		{"garbage token", "Bearer aaa.bbb.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := invokeJWTMiddleware(tt.header)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

// A token signed with the right secret but missing or mistyping the identity
// claims must come back 401, never panic on the claim extraction.
func TestJWTMiddlewareRejectsIncompleteClaims(t *testing.T) {
	viper.Set("JWT_SECRET", testSecret)

	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"no claims at all", jwt.MapClaims{}},
		{"missing user_id", jwt.MapClaims{"email": "a@b.test", "role_id": float64(1)}},
		{"missing role_id", jwt.MapClaims{"user_id": float64(1), "email": "a@b.test"}},
		{"missing email", jwt.MapClaims{"user_id": float64(1), "role_id": float64(1)}},
		{"user_id wrong type", jwt.MapClaims{"user_id": "1", "email": "a@b.test", "role_id": float64(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := invokeJWTMiddleware("Bearer " + signToken(t, tt.claims))
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}
