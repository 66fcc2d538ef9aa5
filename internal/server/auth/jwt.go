package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed token payload: the registered claim set plus the
// credential identifier the token was issued for.
type Claims struct {
	jwt.RegisteredClaims
	AuthID string `json:"auth_id"`
}

// GenerateToken issues an HS256 token for the given credential id, valid for
// validityDuration from now.
func GenerateToken(authID string, secretKey []byte, validityDuration time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", common.ErrorMissingSecret
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		AuthID: authID,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the token signature and structure and returns the
// decoded claims. Expiry is deliberately not checked here: the liveness
// endpoint reports expired tokens as valid:false instead of rejecting them,
// so the expiry decision belongs to the caller (see IsExpired). A token
// without an exp claim is malformed, not eternal.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// IsExpired reports whether the claims expired before the given moment.
func IsExpired(claims *Claims, now time.Time) bool {
	return claims.ExpiresAt.Time.Before(now)
}

// ExpiresIn returns how long the claims remain valid from the given moment.
// Negative results mean the token already expired.
func ExpiresIn(claims *Claims, now time.Time) time.Duration {
	return claims.ExpiresAt.Time.Sub(now)
}
