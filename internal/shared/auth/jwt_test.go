package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignValidateRoundTrip(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)
	token, err := codec.Sign("jill", []string{"manager"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := codec.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "jill" {
		t.Fatalf("subject = %q, want jill", claims.Subject)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "manager" {
		t.Fatalf("roles = %v, want [manager]", claims.Roles)
	}
}

func TestValidateRejections(t *testing.T) {
	codec := NewJWTCodec("secret", time.Hour)

	if _, err := codec.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("empty token: got %v", err)
	}
	if _, err := codec.Validate("   "); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("blank token: got %v", err)
	}
	if _, err := codec.Validate("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: got %v", err)
	}

	otherSecret := NewJWTCodec("another-secret", time.Hour)
	token, err := otherSecret.Sign("jill", nil)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := codec.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("foreign signature: got %v", err)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	codec := NewJWTCodec("secret", time.Minute)
	issued := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return issued }

	token, err := codec.Sign("jill", nil)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	codec.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if _, err := codec.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: got %v", err)
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc123", "abc123"},
		{"bearer abc123", "abc123"},
		{"  BEARER abc123  ", "abc123"},
		{"Basic abc123", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExtractBearerToken(c.header); got != c.want {
			t.Fatalf("ExtractBearerToken(%q) = %q, want %q", c.header, got, c.want)
		}
	}
}

func TestExtractTokenPrefersHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/reserves/customer?token=from-query", nil)
	r.Header.Set("Authorization", "Bearer from-header")
	if got := ExtractToken(r); got != "from-header" {
		t.Fatalf("ExtractToken() = %q, want from-header", got)
	}

	r = httptest.NewRequest("GET", "/reserves/customer?token=from-query", nil)
	if got := ExtractToken(r); got != "from-query" {
		t.Fatalf("ExtractToken() = %q, want from-query", got)
	}

	if got := ExtractToken(nil); got != "" {
		t.Fatalf("ExtractToken(nil) = %q, want empty", got)
	}
}
