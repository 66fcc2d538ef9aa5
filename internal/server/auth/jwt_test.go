package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	authID := "c9d2841e-7696-4360-bce4-9f9f3e2469cd"

	tok, err := GenerateToken(authID, secret, 1200*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.AuthID != authID {
		t.Fatalf("authID mismatch: got %q want %q", claims.AuthID, authID)
	}

	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if ttl != 1200*time.Second {
		t.Fatalf("expected exp-iat == ttl, got %v", ttl)
	}
	if IsExpired(claims, time.Now()) {
		t.Fatalf("freshly issued token must not be expired")
	}
}

func TestGenerateToken_MissingSecret(t *testing.T) {
	t.Parallel()

	_, err := GenerateToken("u1", nil, time.Hour)
	if !errors.Is(err, common.ErrorMissingSecret) {
		t.Fatalf("expected ErrorMissingSecret, got %v", err)
	}
}

func TestParseToken_ExpiredStillParses(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateToken("u1", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	// expiry is the caller's decision, not the parser's
	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("expected expired token to parse, got %v", err)
	}
	if !IsExpired(claims, time.Now()) {
		t.Fatalf("expected IsExpired to report true")
	}
	if ExpiresIn(claims, time.Now()) > 0 {
		t.Fatalf("expected non-positive remaining lifetime")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	_, err = ParseToken(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseToken_MissingExpClaim(t *testing.T) {
	t.Parallel()

	secret := []byte("k")

	// a well-signed token without exp is a protocol error, not "never expires"
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{AuthID: "u3"})
	tok, err := raw.SignedString(secret)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = ParseToken(tok, secret)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing exp, got %v", err)
	}
}

func TestParseToken_RejectsUnexpectedSigningMethod(t *testing.T) {
	t.Parallel()

	raw := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		AuthID: "u4",
	})
	tok, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString error: %v", err)
	}

	_, err = ParseToken(tok, []byte("k"))
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}
