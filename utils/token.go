package utils

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenManager mints and verifies the signed session tokens that gate the
// admin routes. There is a single configured operator, so the claims carry
// only their email.
type TokenManager struct {
	secretKey string
	ttl       time.Duration
}

type adminClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func NewTokenManager(secretKey string, ttl time.Duration) *TokenManager {
	return &TokenManager{secretKey: secretKey, ttl: ttl}
}

// CreateToken returns a signed token for the operator.
func (tm *TokenManager) CreateToken(email string) (string, error) {
	claims := &adminClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.secretKey))
}

// CheckToken verifies the token signature and expiry and returns the
// operator's email.
func (tm *TokenManager) CheckToken(requestToken string) (string, error) {
	claims := adminClaims{}
	_, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (any, error) {
		return []byte(tm.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("invalid session token: %w", err)
	}
	if claims.Email == "" {
		return "", errors.New("invalid session token: missing subject")
	}
	return claims.Email, nil
}
