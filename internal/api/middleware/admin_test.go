package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
)

type stubFinder struct {
	user  *domain.User
	err   error
	calls []string
}

func (f *stubFinder) FindByID(_ context.Context, id string) (*domain.User, error) {
	f.calls = append(f.calls, id)
	return f.user, f.err
}

func runAdmin(t *testing.T, finder *stubFinder) (*httptest.ResponseRecorder, bool, map[string]any) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(UserIDKey, "admin123")

	called := false
	h := IsAdmin(finder, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var body map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
	}
	return rec, called, body
}

func TestIsAdmin_AdminPasses(t *testing.T) {
	finder := &stubFinder{user: &domain.User{ID: "admin123", Role: domain.RoleAdmin}}

	rec, called, _ := runAdmin(t, finder)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected next to run, got code %d", rec.Code)
	}
	if len(finder.calls) != 1 || finder.calls[0] != "admin123" {
		t.Fatalf("expected a lookup of admin123, got %v", finder.calls)
	}
}

func TestIsAdmin_RoleReloadedEveryRequest(t *testing.T) {
	finder := &stubFinder{user: &domain.User{ID: "admin123", Role: domain.RoleAdmin}}
	if _, called, _ := runAdmin(t, finder); !called {
		t.Fatalf("first request should pass")
	}

	finder.user = &domain.User{ID: "admin123", Role: domain.RoleUser}
	if _, called, _ := runAdmin(t, finder); called {
		t.Fatalf("demoted user must be rejected on the next request")
	}
	if len(finder.calls) != 2 {
		t.Fatalf("expected a lookup per request, got %d", len(finder.calls))
	}
}

func TestIsAdmin_Rejections(t *testing.T) {
	cases := []struct {
		name        string
		finder      *stubFinder
		wantMessage string
		wantError   bool
	}{
		{"ordinary user", &stubFinder{user: &domain.User{Role: domain.RoleUser}}, "UnAuthorized Access", false},
		{"unknown user", &stubFinder{err: domain.ErrUserNotFound}, "UnAuthorized Access", false},
		{"storage failure", &stubFinder{err: errors.New("DB connection failed")}, "Error in admin middleware", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, called, body := runAdmin(t, tc.finder)
			if called {
				t.Fatalf("next must not be called")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if body["success"] != false || body["message"] != tc.wantMessage {
				t.Fatalf("unexpected body %v", body)
			}
			if _, has := body["error"]; has != tc.wantError {
				t.Fatalf("error field presence = %v, want %v", has, tc.wantError)
			}
		})
	}
}
