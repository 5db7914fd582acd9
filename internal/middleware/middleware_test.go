package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nikhil4123/Brocker/pkg/config"
	"github.com/Nikhil4123/Brocker/pkg/jwtutil"
	"github.com/Nikhil4123/Brocker/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestIDMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := echo.New()
	e.Use(RequestIDMiddleware(zap.New(core)))
	e.GET("/", func(c echo.Context) error {
		logger.FromContext(c).Info("inside")
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	id := rec.Header().Get(HeaderRequestID)
	if id == "" {
		t.Fatal("expected a generated request id")
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].ContextMap()["request_id"] != id {
		t.Fatalf("expected log line tagged with %s, got %v", id, entries)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if got := rec.Header().Get(HeaderRequestID); got != "abc-123" {
		t.Fatalf("expected incoming id to be kept, got %q", got)
	}
}

func TestAuthAndRequireAdmin(t *testing.T) {
	tokens := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "k", ExpirationHours: 1})
	admin, _ := tokens.GenerateToken("admin-1", "a@example.com", "admin")
	user, _ := tokens.GenerateToken("user-1", "u@example.com", "user")
	other, _ := jwtutil.NewJWTUtil(&config.JWTConfig{SigningKey: "other", ExpirationHours: 1}).
		GenerateToken("admin-1", "a@example.com", "admin")

	e := echo.New()
	e.POST("/", func(c echo.Context) error {
		id, ok := UserIDFromContext(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, id)
	}, AuthMiddleware(tokens), RequireAdmin)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"wrong key", "Bearer " + other, http.StatusUnauthorized},
		{"user role", "Bearer " + user, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
		{"lowercase scheme", "bearer " + admin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
			if tt.want == http.StatusOK && rec.Body.String() != "admin-1" {
				t.Fatalf("expected user id admin-1, got %q", rec.Body.String())
			}
		})
	}
}

func TestRequireAdminWithoutAuth(t *testing.T) {
	e := echo.New()
	e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireAdmin)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
