package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestManager_IssueVerify_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	signed, err := m.Issue("user123")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	id, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if id != "user123" {
		t.Fatalf("expected user123, got %s", id)
	}

	again, err := m.Verify(signed)
	if err != nil || again != id {
		t.Fatalf("second verify diverged: %s %v", again, err)
	}
}

func TestManager_DefaultTTLIsSevenDays(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager("secret", 0, WithClock(fixedClock(issuedAt)))

	signed, err := m.Issue("u1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(signed, &claims); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := claims.ExpiresAt.Time.Sub(issuedAt); got != 7*24*time.Hour {
		t.Fatalf("expected 7 day expiry, got %s", got)
	}
}

func TestManager_Verify_Expired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := NewManager("secret", DefaultTTL, WithClock(fixedClock(issuedAt)))
	signed, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	later := NewManager("secret", DefaultTTL, WithClock(fixedClock(issuedAt.Add(8*24*time.Hour))))
	_, err = later.Verify(signed)

	var ite *InvalidTokenError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTokenError, got %v", err)
	}
	if ite.Reason != "expired" {
		t.Fatalf("expected reason expired, got %s", ite.Reason)
	}
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	signed, err := NewManager("secret", time.Hour).Issue("u1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = NewManager("other", time.Hour).Verify(signed)
	var ite *InvalidTokenError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTokenError, got %v", err)
	}
}

func TestManager_Verify_Tampered(t *testing.T) {
	m := NewManager("secret", time.Hour)
	signed, err := m.Issue("u1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	parts := strings.Split(signed, ".")
	forged, err := NewManager("attacker", time.Hour).Issue("admin")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	// Swap in another payload while keeping the original signature.
	parts[1] = strings.Split(forged, ".")[1]

	if _, err := m.Verify(strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected tampered token to fail verification")
	}
}

func TestManager_Verify_RejectsMissingAndMalformed(t *testing.T) {
	m := NewManager("secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(raw)
		var ite *InvalidTokenError
		if !errors.As(err, &ite) {
			t.Fatalf("Verify(%q): expected InvalidTokenError, got %v", raw, err)
		}
	}
}

func TestManager_Verify_RejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewManager("secret", time.Hour).Verify(signed); err == nil {
		t.Fatalf("expected HS512 token to be rejected")
	}
}

func TestManager_Issue_EmptyUserID(t *testing.T) {
	if _, err := NewManager("secret", time.Hour).Issue(""); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}
