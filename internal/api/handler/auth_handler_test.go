package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/virtualvault/storefront/internal/core/domain"
	"github.com/virtualvault/storefront/internal/core/ports"
)

var discardLogger = zerolog.Nop()

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	forgotFn   func(ctx context.Context, email, answer, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email, answer, newPassword string) error {
	return s.forgotFn(ctx, email, answer, newPassword)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

// --- Register

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Name != "Alice" || in.Answer != "blue" {
				t.Fatalf("unexpected input: %+v", in)
			}
			addr, ok := in.Address.(map[string]any)
			if !ok || addr["city"] != "Springfield" {
				t.Fatalf("expected structured address, got %#v", in.Address)
			}
			return &domain.User{ID: "u1", Name: in.Name, Email: in.Email, PasswordHash: "$2a$10$hash", Answer: in.Answer}, nil
		},
	}
	h := NewAuthHandler(stub, false, discardLogger)

	body := `{"name":"Alice","email":"alice@example.com","password":"secret1","phone":"555","address":{"city":"Springfield"},"answer":"blue"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/register", body), rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user object in %v", resp)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password must not be serialised")
	}
	if _, leaked := user["answer"]; leaked {
		t.Fatalf("security answer must not be serialised")
	}
	if resp["message"] != "User Register Successfully" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
}

func TestAuthHandler_Register_FirstMissingFieldOnly(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"password":"x"}`, "Name is Required"},
		{`{"name":"A"}`, "Email is Required"},
		{`{"name":"A","email":"a@b.c"}`, "Password is Required"},
		{`{"name":"A","email":"a@b.c","password":"p"}`, "Phone no is Required"},
		{`{"name":"A","email":"a@b.c","password":"p","phone":"1"}`, "Address is Required"},
		{`{"name":"A","email":"a@b.c","password":"p","phone":"1","address":""}`, "Address is Required"},
		{`{"name":"A","email":"a@b.c","password":"p","phone":"1","address":"   "}`, "Address is Required"},
		{`{"name":"A","email":"a@b.c","password":"p","phone":"1","address":{}}`, "Address is Required"},
		{`{"name":"A","email":"a@b.c","password":"p","phone":"1","address":null}`, "Address is Required"},
		{`{"name":"A","email":"a@b.c","password":"p","phone":"1","address":"x"}`, "Answer is Required"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
				t.Fatalf("service must not be called")
				return nil, nil
			}}
			h := NewAuthHandler(stub, false, discardLogger)

			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/register", tc.body), rec)
			if err := h.Register(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			resp := decodeBody(t, rec)
			if resp["message"] != tc.want || len(resp) != 1 {
				t.Fatalf("expected only {message:%q}, got %v", tc.want, resp)
			}
		})
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{registerFn: func(context.Context, ports.RegisterInput) (*domain.User, error) {
		return nil, domain.ErrUserExists
	}}
	h := NewAuthHandler(stub, false, discardLogger)

	body := `{"name":"A","email":"a@b.c","password":"p","phone":"1","address":"x","answer":"y"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/register", body), rec)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["success"] != false || resp["message"] != "Already Register please login" {
		t.Fatalf("unexpected body %v", resp)
	}
}

// --- Login

func loginStub() *stubAuthService {
	return &stubAuthService{loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
		switch {
		case email != "alice@example.com":
			return "", nil, domain.ErrUserNotFound
		case password != "secret1":
			return "", nil, domain.ErrInvalidCredentials
		}
		return "signed.token.value", &domain.User{ID: "u1", Email: email, PasswordHash: "$2a$10$hash"}, nil
	}}
}

func TestAuthHandler_Login(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		wantCode    int
		wantMessage string
		wantSuccess bool
	}{
		{"missing email", `{"password":"x"}`, http.StatusNotFound, "Invalid email or password", false},
		{"missing password", `{"email":"alice@example.com"}`, http.StatusNotFound, "Invalid email or password", false},
		{"unknown email", `{"email":"bob@example.com","password":"x"}`, http.StatusNotFound, "Email is not registered", false},
		{"wrong password", `{"email":"alice@example.com","password":"x"}`, http.StatusOK, "Invalid Password", false},
		{"success", `{"email":"alice@example.com","password":"secret1"}`, http.StatusOK, "login successfully", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			h := NewAuthHandler(loginStub(), false, discardLogger)

			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", tc.body), rec)
			if err := h.Login(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			resp := decodeBody(t, rec)
			if resp["message"] != tc.wantMessage || resp["success"] != tc.wantSuccess {
				t.Fatalf("unexpected body %v", resp)
			}
			if tc.wantSuccess {
				if resp["token"] != "signed.token.value" {
					t.Fatalf("expected token, got %v", resp["token"])
				}
				user := resp["user"].(map[string]any)
				if _, leaked := user["password"]; leaked {
					t.Fatalf("password must not be serialised")
				}
			}
		})
	}
}

func TestAuthHandler_Login_GenericErrors(t *testing.T) {
	for _, body := range []string{
		`{"email":"bob@example.com","password":"x"}`,
		`{"email":"alice@example.com","password":"x"}`,
	} {
		e := newTestEcho()
		h := NewAuthHandler(loginStub(), true, discardLogger)

		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", body), rec)
		if err := h.Login(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if resp := decodeBody(t, rec); resp["message"] != "Invalid email or password" {
			t.Fatalf("expected generic message, got %v", resp["message"])
		}
	}
}

func TestAuthHandler_Login_StorageError(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{loginFn: func(context.Context, string, string) (string, *domain.User, error) {
		return "", nil, errors.New("connection reset")
	}}
	h := NewAuthHandler(stub, false, discardLogger)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"a@b.c","password":"x"}`), rec)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

// --- ForgotPassword

func TestAuthHandler_ForgotPassword(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		serviceErr  error
		wantCode    int
		wantMessage string
	}{
		{"missing email", `{"answer":"a","newPassword":"p"}`, nil, http.StatusBadRequest, "Email is required"},
		{"missing answer", `{"email":"a@b.c","newPassword":"p"}`, nil, http.StatusBadRequest, "Answer is required"},
		{"missing new password", `{"email":"a@b.c","answer":"a"}`, nil, http.StatusBadRequest, "New Password is required"},
		{"no match", `{"email":"a@b.c","answer":"a","newPassword":"p"}`, domain.ErrWrongAnswer, http.StatusNotFound, "Wrong Email Or Answer"},
		{"success", `{"email":"a@b.c","answer":"a","newPassword":"p"}`, nil, http.StatusOK, "Password Reset Successfully"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubAuthService{forgotFn: func(context.Context, string, string, string) error {
				return tc.serviceErr
			}}
			h := NewAuthHandler(stub, false, discardLogger)

			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/auth/forgot-password", tc.body), rec)
			if err := h.ForgotPassword(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if resp := decodeBody(t, rec); resp["message"] != tc.wantMessage {
				t.Fatalf("expected %q, got %v", tc.wantMessage, resp["message"])
			}
		})
	}
}

func TestAuthHandler_AuthChecks(t *testing.T) {
	e := newTestEcho()
	h := NewAuthHandler(&stubAuthService{}, false, discardLogger)

	rec := httptest.NewRecorder()
	if err := h.UserAuth(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatalf("UserAuth: %v", err)
	}
	if resp := decodeBody(t, rec); resp["ok"] != true {
		t.Fatalf("expected ok=true, got %v", resp)
	}

	rec = httptest.NewRecorder()
	if err := h.Protected(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)); err != nil {
		t.Fatalf("Protected: %v", err)
	}
	if rec.Body.String() != "Protected Routes" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
