package redis

import "testing"

func TestCheckoutKey_ScopedPerBuyer(t *testing.T) {
	a := checkoutKey("u1", "retry-1")
	b := checkoutKey("u2", "retry-1")

	if a != "idempotency:checkout:u1:retry-1" {
		t.Fatalf("unexpected key format %q", a)
	}
	if a == b {
		t.Fatalf("the same client key must not collide across buyers")
	}
}

func TestNewIdempotencyStore_DefaultTTL(t *testing.T) {
	if s := NewIdempotencyStore(nil, 0); s.ttl != defaultIdempotencyTTL {
		t.Fatalf("expected default ttl, got %s", s.ttl)
	}
}
