package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndVerify(t *testing.T) {
	m, err := NewManager("test-secret", SessionTTL)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.now = func() time.Time { return fixed }

	token, exp, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}

	if want := fixed.Add(7 * 24 * time.Hour); !exp.Equal(want) {
		t.Fatalf("expiresAt = %v, want %v", exp, want)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if claims.UserID() != "user-1" {
		t.Fatalf("subject = %q", claims.UserID())
	}

	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != SessionTTL {
		t.Fatalf("validity = %v, want %v", got, SessionTTL)
	}
}

func TestVerifyRejects(t *testing.T) {
	m, _ := NewManager("test-secret", SessionTTL)
	other, _ := NewManager("other-secret", SessionTTL)

	good, _, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	expired, _ := NewManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, _ := expired.Issue("user-1")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	// right secret, wrong HMAC variant
	hs512, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}).SignedString([]byte("test-secret"))

	tests := []struct {
		name  string
		token string
		by    *Manager
	}{
		{name: "garbage", token: "not-a-token", by: m},
		{name: "wrong secret", token: good, by: other},
		{name: "expired", token: stale, by: m},
		{name: "alg none", token: unsigned, by: m},
		{name: "hs512", token: hs512, by: m},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.by.Verify(tc.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("got %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("", SessionTTL); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("got %v, want ErrEmptySecret", err)
	}
}
