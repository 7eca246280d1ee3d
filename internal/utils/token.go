// Package utils provides token and hashing helpers shared by the auth
// handlers and middleware.
package utils

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthToken is a signed HS256 JWT plus its expiry.
type AuthToken struct {
	Token string
	Exp   time.Time
}

// NewAuthToken signs a JWT carrying the user id, email and role. The ttl
// comes from configuration (JWT_EXPIRES, one week by default).
func NewAuthToken(secret string, userID uint64, email, rol string, ttl time.Duration) (AuthToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"userId": userID,
		"email":  email,
		"rol":    rol,
		"exp":    exp.Unix(),
		"iat":    now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: signed, Exp: exp}, nil
}

// RandomHex returns n bytes of cryptographically secure random data as a
// hex string. Used for password-reset tokens.
func RandomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
