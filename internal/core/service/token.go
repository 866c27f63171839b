package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/startkit/accounts-api/internal/core/domain"
)

// TokenIssuer signs and verifies HS256 bearer tokens carrying a subject
// and an absolute expiry. There is no server-side revocation: validity is
// purely a function of the signature and the clock.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue returns a compact signed token for the given subject, expiring
// after the issuer's TTL.
func (t *TokenIssuer) Issue(subject string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the subject claim.
// Every failure mode collapses into domain.ErrInvalidToken; callers map it
// to an unauthenticated response.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return "", domain.ErrInvalidToken
	}
	return subject, nil
}
