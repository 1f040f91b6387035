package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims carried by an admin API session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UID string `json:"uid"`
}

// NewSessionToken signs an HS256 session token for uid.
func NewSessionToken(uid string, secret []byte, validity time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UID: uid,
	})
	return token.SignedString(secret)
}

// UIDFromSessionToken validates a session token and returns its UID.
func UIDFromSessionToken(tokenString string, secret []byte) (string, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.UID, nil
}
