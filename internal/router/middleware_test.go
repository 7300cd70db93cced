package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/aurelia-jewelry/aurelia/internal/config"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, getRequestID(c))
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	if w.Body.String() != "req-123" {
		t.Fatalf("context request id want req-123 got %s", w.Body.String())
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	if w2.Header().Get(requestIDHeader) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func signUserToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	claims := userClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newOptionalJWTRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(OptionalUserJWTMiddleware(secret))
	r.GET("/whoami", func(c *gin.Context) {
		if value, ok := c.Get("user_id"); ok {
			c.JSON(http.StatusOK, gin.H{"user_id": value})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": 0})
	})
	return r
}

func TestOptionalUserJWTMiddlewareValidToken(t *testing.T) {
	r := newOptionalJWTRouter("secret-key")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signUserToken(t, "secret-key", 7))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"user_id":7}` {
		t.Fatalf("expected user id 7, got %s", body)
	}
}

func TestOptionalUserJWTMiddlewareGuestFallbacks(t *testing.T) {
	r := newOptionalJWTRouter("secret-key")

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"wrong secret", "Bearer " + signUserToken(t, "other-secret", 7)},
		{"garbage token", "Bearer not.a.jwt"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: guest must pass through, got status %d", tc.name, w.Code)
		}
		if body := w.Body.String(); body != `{"user_id":0}` {
			t.Fatalf("%s: expected guest, got %s", tc.name, body)
		}
	}
}

func TestOptionalUserJWTMiddlewareNoSecretConfigured(t *testing.T) {
	r := newOptionalJWTRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signUserToken(t, "secret-key", 7))
	r.ServeHTTP(w, req)

	if body := w.Body.String(); body != `{"user_id":0}` {
		t.Fatalf("no secret means everyone is a guest, got %s", body)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(config.CORSConfig{
		AllowedOrigins: []string{"https://shop.example"},
	}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://shop.example")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight want 204 got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://shop.example" {
		t.Fatalf("unexpected allow-origin %s", w.Header().Get("Access-Control-Allow-Origin"))
	}
}
