package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"myduka.app/pos/internal/shared/apperr"
)

const tokenIssuer = "myduka-pos"

// TokenService issues and verifies the bearer tokens that gate every
// protected endpoint. Subject is the user's email.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperr.Wrap(err)
	}
	return signed, nil
}

// Verify returns the subject email, or an unauthorized error for anything
// missing, malformed, expired or signed with the wrong key.
func (s *TokenService) Verify(tokenString string) (string, error) {
	if strings.TrimSpace(tokenString) == "" {
		return "", apperr.UnauthorizedErr("authentication required")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method in token")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperr.UnauthorizedErr("invalid or expired token")
	}
	if claims.Subject == "" {
		return "", apperr.UnauthorizedErr("invalid or expired token")
	}
	return claims.Subject, nil
}
