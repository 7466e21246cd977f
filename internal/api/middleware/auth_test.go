package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/pkg/token"
)

func runSignIn(t *testing.T, header string) (*httptest.ResponseRecorder, bool, any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	var userID any
	mw := RequireSignIn(token.NewManager("secret", time.Hour), zerolog.Nop())
	h := mw(func(c echo.Context) error {
		called = true
		userID = c.Get(UserIDKey)
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called, userID
}

func TestRequireSignIn_ValidToken(t *testing.T) {
	signed, err := token.NewManager("secret", time.Hour).Issue("user123")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, called, userID := runSignIn(t, signed)
	if !called {
		t.Fatalf("next not called")
	}
	if userID != "user123" {
		t.Fatalf("expected user123 in context, got %v", userID)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSignIn_Rejections(t *testing.T) {
	expired, _ := token.NewManager("secret", time.Hour, token.WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	})).Issue("user123")
	foreign, _ := token.NewManager("other-secret", time.Hour).Issue("user123")
	valid, _ := token.NewManager("secret", time.Hour).Issue("user123")

	cases := map[string]string{
		"missing header": "",
		"garbage":        "not-a-jwt",
		"bearer prefix":  "Bearer " + valid,
		"expired":        expired,
		"wrong secret":   foreign,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called, _ := runSignIn(t, header)
			if called {
				t.Fatalf("next must not be called")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["success"] != false {
				t.Fatalf("expected success=false, got %v", body)
			}
		})
	}
}
